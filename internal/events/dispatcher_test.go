package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventEmployeeCreated, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	d.Publish(context.Background(), Event{ID: "1", Type: EventEmployeeCreated, EmployeeID: 7})
	d.Publish(context.Background(), Event{ID: "2", Type: EventEmployeeDeleted, EmployeeID: 7})

	assert.Len(t, got, 1, "only the subscribed type is delivered")
	assert.Equal(t, "1", got[0].ID)
}

func TestDispatcherIsolatesHandlerFailures(t *testing.T) {
	d := NewInMemoryDispatcher()

	secondRan := false
	d.Subscribe(EventEmployeeLogin, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventEmployeeLogin, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	d.Publish(context.Background(), Event{Type: EventEmployeeLogin})
	assert.True(t, secondRan, "a failing handler must not block the rest")
}
