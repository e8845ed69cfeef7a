package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/workbench/internal/core/notify"
)

func TestEventBuffer_Drain_preserves_order(t *testing.T) {
	b := NewEventBuffer()

	b.Push(notify.Event{Kind: notify.EventPublished, Record: notify.Record{ID: "a"}})
	b.Push(notify.Event{Kind: notify.EventClosed, Record: notify.Record{ID: "a"}})
	b.Push(notify.Event{Kind: notify.EventPublished, Record: notify.Record{ID: "b"}})

	events := b.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, notify.EventPublished, events[0].Kind)
	assert.Equal(t, notify.EventClosed, events[1].Kind)
	assert.Equal(t, "b", events[2].Record.ID)

	assert.Nil(t, b.Drain())
}

func TestEventBuffer_WaitForSignal(t *testing.T) {
	b := NewEventBuffer()
	cmd := b.WaitForSignal()

	done := make(chan any, 1)
	go func() { done <- cmd() }()

	b.Push(notify.Event{Kind: notify.EventPublished})
	b.Push(notify.Event{Kind: notify.EventClosed}) // coalesced into the same signal

	select {
	case msg := <-done:
		assert.IsType(t, drainEventsMsg{}, msg)
	case <-time.After(time.Second):
		t.Fatal("WaitForSignal did not return")
	}

	assert.Len(t, b.Drain(), 2)
}
