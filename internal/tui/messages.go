package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/readiness"
)

// readinessMsg carries the terminal detection result.
type readinessMsg struct {
	available bool
	elapsed   time.Duration
}

// drainEventsMsg signals that coordinator events are waiting in the buffer.
type drainEventsMsg struct{}

// snackbarTimeoutMsg fires when the auto-hide delay for key has elapsed.
type snackbarTimeoutMsg struct {
	key string
}

type channelsLoadedMsg struct {
	channels []interop.Channel
	err      error
}

type listenerReadyMsg struct {
	listener interop.Listener
	err      error
}

type contextReceivedMsg struct {
	context interop.Context
}

type channelJoinedMsg struct {
	channel interop.Channel
	err     error
}

type channelLeftMsg struct {
	channel *interop.Channel
	err     error
}

type broadcastResultMsg struct {
	context interop.Context
	channel *interop.Channel
	err     error
}

type intentRaisedMsg struct {
	intent     string
	context    interop.Context
	resolution interop.IntentResolution
	err        error
}

type intentFoundMsg struct {
	intent string
	found  interop.AppIntent
	err    error
}

// detect runs the readiness probe once.
func detect(d *readiness.Detector) tea.Cmd {
	return func() tea.Msg {
		ok := d.Detect(context.Background())
		return readinessMsg{available: ok, elapsed: d.Elapsed()}
	}
}

func loadChannels(agent interop.Agent) tea.Cmd {
	return func() tea.Msg {
		channels, err := agent.SystemChannels(context.Background())
		return channelsLoadedMsg{channels: channels, err: err}
	}
}

// listenForContexts registers a catch-all context listener that forwards into ch.
func listenForContexts(agent interop.Agent, ch chan<- interop.Context) tea.Cmd {
	return func() tea.Msg {
		l, err := agent.AddContextListener("", func(c interop.Context) {
			select {
			case ch <- c:
			default:
			}
		})
		return listenerReadyMsg{listener: l, err: err}
	}
}

// waitForContext returns a command that waits for the next received context.
func waitForContext(ch <-chan interop.Context) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return contextReceivedMsg{context: c}
	}
}

func joinChannel(agent interop.Agent, ch interop.Channel) tea.Cmd {
	return func() tea.Msg {
		err := agent.JoinChannel(context.Background(), ch.ID)
		return channelJoinedMsg{channel: ch, err: err}
	}
}

func leaveChannel(agent interop.Agent) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		current, err := agent.CurrentChannel(ctx)
		if err != nil {
			return channelLeftMsg{err: err}
		}
		err = agent.LeaveCurrentChannel(ctx)
		return channelLeftMsg{channel: current, err: err}
	}
}

func broadcast(agent interop.Agent, c interop.Context) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := agent.Broadcast(ctx, c); err != nil {
			return broadcastResultMsg{context: c, err: err}
		}

		current, err := agent.CurrentChannel(ctx)
		if err != nil {
			log.Warn().Err(err).Str("context_type", c.Type).Msg("read current channel after broadcast")
		}
		return broadcastResultMsg{context: c, channel: current}
	}
}

func raiseIntent(agent interop.Agent, intent string, c interop.Context) tea.Cmd {
	return func() tea.Msg {
		res, err := agent.RaiseIntent(context.Background(), intent, c)
		return intentRaisedMsg{intent: intent, context: c, resolution: res, err: err}
	}
}

func findIntent(agent interop.Agent, intent string, c interop.Context) tea.Cmd {
	return func() tea.Msg {
		found, err := agent.FindIntent(context.Background(), intent, c)
		return intentFoundMsg{intent: intent, found: found, err: err}
	}
}

// ConfigReloadedMsg carries a config reloaded from disk while the workbench
// is running.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
