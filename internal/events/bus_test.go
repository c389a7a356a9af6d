package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_Publish(t *testing.T) {
	t.Run("delivers to every subscriber in order", func(t *testing.T) {
		bus := NewBus()
		var order []int
		bus.Subscribe(BooksUpdated, func(Event) error { order = append(order, 1); return nil })
		bus.Subscribe(BooksUpdated, func(Event) error { order = append(order, 2); return nil })
		bus.Subscribe(SettingsUpdated, func(Event) error { order = append(order, 99); return nil })

		bus.Publish(BooksUpdated, "payload")

		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("passes name and payload", func(t *testing.T) {
		bus := NewBus()
		var got Event
		bus.Subscribe(DataImported, func(e Event) error { got = e; return nil })

		bus.Publish(DataImported, 42)

		assert.Equal(t, DataImported, got.Name)
		assert.Equal(t, 42, got.Payload)
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		bus := NewBus()
		assert.NotPanics(t, func() { bus.Publish(BooksUpdated, nil) })
	})

	t.Run("events are not buffered for late subscribers", func(t *testing.T) {
		bus := NewBus()
		bus.Publish(BooksUpdated, nil)

		calls := 0
		bus.Subscribe(BooksUpdated, func(Event) error { calls++; return nil })
		assert.Equal(t, 0, calls)

		bus.Publish(BooksUpdated, nil)
		assert.Equal(t, 1, calls)
	})

	t.Run("failing and panicking handlers do not stop others", func(t *testing.T) {
		bus := NewBus()
		calls := 0
		bus.Subscribe(BooksUpdated, func(Event) error { return errors.New("boom") })
		bus.Subscribe(BooksUpdated, func(Event) error { panic("kaboom") })
		bus.Subscribe(BooksUpdated, func(Event) error { calls++; return nil })

		assert.NotPanics(t, func() { bus.Publish(BooksUpdated, nil) })
		assert.Equal(t, 1, calls)
	})
}

func TestBus_Unsubscribe(t *testing.T) {
	t.Run("removes only that subscription", func(t *testing.T) {
		bus := NewBus()
		a, b := 0, 0
		handler := func(Event) error { a++; return nil }
		subA := bus.Subscribe(BooksUpdated, handler)
		bus.Subscribe(BooksUpdated, handler)
		bus.Subscribe(BooksUpdated, func(Event) error { b++; return nil })

		bus.Unsubscribe(subA)
		bus.Publish(BooksUpdated, nil)

		assert.Equal(t, 1, a, "duplicate registration of the same function stays")
		assert.Equal(t, 1, b)
		assert.Equal(t, 2, bus.Count(BooksUpdated))
	})

	t.Run("unknown subscription is ignored", func(t *testing.T) {
		bus := NewBus()
		sub := bus.Subscribe(BooksUpdated, func(Event) error { return nil })
		bus.Unsubscribe(sub)
		assert.NotPanics(t, func() {
			bus.Unsubscribe(sub)
			bus.Unsubscribe(Subscription{})
		})
		assert.Equal(t, 0, bus.Count(BooksUpdated))
	})

	t.Run("handler may unsubscribe itself during publish", func(t *testing.T) {
		bus := NewBus()
		calls := 0
		var sub Subscription
		sub = bus.Subscribe(BooksUpdated, func(Event) error {
			calls++
			bus.Unsubscribe(sub)
			return nil
		})

		bus.Publish(BooksUpdated, nil)
		bus.Publish(BooksUpdated, nil)

		assert.Equal(t, 1, calls)
	})
}
