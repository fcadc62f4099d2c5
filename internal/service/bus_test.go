package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusFanOut(t *testing.T) {
	bus := NewEventBus()
	a := bus.Subscribe()
	b := bus.Subscribe()

	ev := Event{Resource: ResourceOverlays, Action: ActionReloaded}
	bus.Publish(ev)
	assert.Equal(t, ev, <-a)
	assert.Equal(t, ev, <-b)

	bus.Unsubscribe(a)
	_, open := <-a
	assert.False(t, open)

	bus.Publish(ev)
	assert.Equal(t, ev, <-b)
	bus.Unsubscribe(b)
}

func TestEventBusSlowSubscriber(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe()
	defer bus.Unsubscribe(ch)

	for i := 0; i < cap(ch)+5; i++ {
		bus.Publish(Event{Resource: ResourceOverlays, Action: ActionReloaded})
	}
	assert.Len(t, ch, cap(ch))
}

func TestNilEventBusPublish(t *testing.T) {
	var bus *EventBus
	assert.NotPanics(t, func() { bus.Publish(Event{}) })
}
