package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/workbench/internal/core/notify"
)

// EventBuffer collects coordinator events from any goroutine (including the
// grace-delay timer) and hands them to the update loop in order.
type EventBuffer struct {
	mu     sync.Mutex
	events []notify.Event
	signal chan struct{}
}

// NewEventBuffer constructs an empty buffer.
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{
		events: make([]notify.Event, 0),
		signal: make(chan struct{}, 1),
	}
}

// Push appends an event and emits a non-blocking drain signal. It never
// blocks, so it is safe to call from inside Update.
func (b *EventBuffer) Push(e notify.Event) {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered events and clears the buffer.
func (b *EventBuffer) Drain() []notify.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == 0 {
		return nil
	}

	out := make([]notify.Event, len(b.events))
	copy(out, b.events)
	b.events = b.events[:0]
	return out
}

// WaitForSignal blocks until there are events ready to drain.
func (b *EventBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainEventsMsg{}
	}
}
