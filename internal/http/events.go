package http

import (
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/events"
)

// streamedEvents are forwarded to every connected client.
var streamedEvents = []string{events.BooksUpdated, events.SettingsUpdated, events.DataImported}

const (
	eventBufferSize   = 32
	heartbeatInterval = 30 * time.Second
)

// EventsController streams bus events to the browser as server-sent events.
type EventsController struct {
	bus       *events.Bus
	heartbeat time.Duration
}

func NewEventsController(bus *events.Bus) *EventsController {
	return &EventsController{bus: bus, heartbeat: heartbeatInterval}
}

// Stream handles GET /api/events
// A "ready" event is sent once the client is subscribed.
func (ec *EventsController) Stream(c *gin.Context) {
	ch := make(chan events.Event, eventBufferSize)
	forward := func(e events.Event) error {
		select {
		case ch <- e:
		default:
			log.Printf("[EVENTS] client buffer full, dropping %s", e.Name)
		}
		return nil
	}

	subs := make([]events.Subscription, 0, len(streamedEvents))
	for _, name := range streamedEvents {
		subs = append(subs, ec.bus.Subscribe(name, forward))
	}
	defer func() {
		for _, sub := range subs {
			ec.bus.Unsubscribe(sub)
		}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("ready", gin.H{"events": streamedEvents})
	c.Writer.Flush()

	ticker := time.NewTicker(ec.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case e := <-ch:
			payload := e.Payload
			if payload == nil {
				payload = gin.H{}
			}
			c.SSEvent(e.Name, payload)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
}
