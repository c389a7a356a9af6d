// Package events is a synchronous in-process publish/subscribe bus.
//
// Publish invokes every handler registered for the event name, in
// subscription order, before it returns. Events are never buffered: a
// handler subscribed after a Publish does not see that event.
package events

import (
	"fmt"
	"log"
	"sync"
)

const (
	BooksUpdated    = "booksUpdated"
	SettingsUpdated = "settingsUpdated"
	DataImported    = "dataImported"
)

type Event struct {
	Name    string
	Payload any
}

type Handler func(Event) error

// Subscription identifies one registration. The zero value is not registered.
type Subscription struct {
	name string
	id   uint64
}

type subscriber struct {
	id      uint64
	handler Handler
}

type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscriber)}
}

// Subscribe registers handler for name. Registering the same function twice
// yields two independent subscriptions.
func (b *Bus) Subscribe(name string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[name] = append(b.subs[name], subscriber{id: b.nextID, handler: handler})
	return Subscription{name: name, id: b.nextID}
}

// Unsubscribe removes sub. Unknown or already removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.name]
	for i, s := range list {
		if s.id == sub.id {
			next := make([]subscriber, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(b.subs, sub.name)
			} else {
				b.subs[sub.name] = next
			}
			return
		}
	}
}

// Publish delivers the event to the handlers registered at the moment of the
// call. Handler errors and panics are logged and do not reach the publisher
// or the remaining handlers.
func (b *Bus) Publish(name string, payload any) {
	b.mu.RLock()
	handlers := b.subs[name]
	b.mu.RUnlock()

	evt := Event{Name: name, Payload: payload}
	for _, s := range handlers {
		if err := invoke(s.handler, evt); err != nil {
			log.Printf("[EVENTS] handler for %s failed: %v", name, err)
		}
	}
}

// Count reports how many handlers are registered for name.
func (b *Bus) Count(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}

func invoke(h Handler, evt Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(evt)
}
