package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/interop/local"
	"github.com/colonyops/workbench/internal/core/notify"
	"github.com/colonyops/workbench/internal/core/notify/notifytest"
	"github.com/colonyops/workbench/internal/core/readiness"
	"github.com/colonyops/workbench/pkg/tuitest"
)

type harness struct {
	model Model
	coord *notify.Coordinator
	sched *notifytest.Scheduler
	agent *local.Agent
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

func newHarnessWith(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Agent.AttachDelay = 0
	cfg.Readiness.Timeout = time.Second
	if mutate != nil {
		mutate(&cfg)
	}

	agent := local.New(cfg.Agent, zerolog.Nop())
	t.Cleanup(agent.Close)

	sched := notifytest.New()
	coord := notify.New(notify.Options{
		GraceDelay: cfg.Notifications.GraceDelay,
		Scheduler:  sched,
	})

	m := New(Deps{
		Config:      &cfg,
		Agent:       agent,
		Detector:    readiness.NewDetector(agent, cfg.Readiness.Timeout, zerolog.Nop()),
		Coordinator: coord,
	})

	return &harness{model: m, coord: coord, sched: sched, agent: agent}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// ready marks the api as detected and loads the system channels.
func (h *harness) ready(t *testing.T) {
	t.Helper()
	h.send(readinessMsg{available: true, elapsed: 10 * time.Millisecond})
	h.send(channelsLoadedMsg{channels: interop.DefaultSystemChannels()})
	require.Equal(t, readiness.Available, h.model.readiness)
}

// drain delivers buffered coordinator events to the model.
func (h *harness) drain() {
	h.send(drainEventsMsg{})
}

// run executes a single (non-batched) command and feeds its message back.
func (h *harness) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	h.send(cmd())
}

func (h *harness) message(t *testing.T) string {
	t.Helper()
	rec, ok := h.coord.Current()
	require.True(t, ok, "expected a current notification")
	return rec.Message
}

func TestModel_readiness(t *testing.T) {
	h := newHarness(t)

	view := tuitest.StripANSI(h.model.render())
	assert.Contains(t, view, "Detecting")

	cmd := h.send(readinessMsg{available: false, elapsed: 5 * time.Second})
	assert.Nil(t, cmd)
	assert.Equal(t, readiness.Unavailable, h.model.readiness)
	assert.Contains(t, tuitest.StripANSI(h.model.render()), "FDC3 API not detected!")
}

// captureLog redirects the global logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Logger
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

// flakyAgent fails selected calls of an otherwise working local agent.
type flakyAgent struct {
	*local.Agent
	currentErr error
}

func (a flakyAgent) CurrentChannel(ctx context.Context) (*interop.Channel, error) {
	if a.currentErr != nil {
		return nil, a.currentErr
	}
	return a.Agent.CurrentChannel(ctx)
}

func TestModel_detect_without_agent_shows_fallback(t *testing.T) {
	h := newHarnessWith(t, func(cfg *config.Config) {
		disabled := false
		cfg.Agent.Enabled = &disabled
		cfg.Readiness.Timeout = 20 * time.Millisecond
	})
	require.NotNil(t, h.model.Init())

	msg := detect(h.model.detector)()
	require.IsType(t, readinessMsg{}, msg)
	assert.False(t, msg.(readinessMsg).available)

	h.send(msg)

	assert.Equal(t, readiness.Unavailable, h.model.readiness)
	assert.Contains(t, tuitest.StripANSI(h.model.render()), "FDC3 API not detected!")

	_, ok := h.coord.Current()
	assert.False(t, ok, "detection failure must not publish a notification")
	assert.Empty(t, h.coord.History())
}

func TestModel_readiness_leaves_logging_to_detector(t *testing.T) {
	buf := captureLog(t)

	h := newHarness(t)
	h.send(readinessMsg{available: false, elapsed: time.Second})
	h.send(readinessMsg{available: true, elapsed: time.Second})

	assert.NotContains(t, buf.String(), "interop api")
}

func TestModel_unavailable_ignores_workbench_keys(t *testing.T) {
	h := newHarness(t)
	h.send(readinessMsg{available: false})

	assert.Nil(t, h.send(tuitest.KeyTab()))
	assert.Equal(t, tabChannels, h.model.activeTab)
}

func TestModel_join_channel(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(tuitest.KeyDown())
	h.run(t, h.send(tuitest.KeyEnter()))

	assert.Equal(t, "Joined channel Channel 2", h.message(t))
	require.NotNil(t, h.model.current)
	assert.Equal(t, "orange", h.model.current.ID)

	h.run(t, h.send(tuitest.KeyPress('l')))
	assert.Equal(t, "Left channel Channel 2", h.message(t))
	assert.Nil(t, h.model.current)
}

func TestModel_broadcast_without_channel(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(tuitest.KeyTab())
	require.Equal(t, tabContext, h.model.activeTab)

	h.run(t, h.send(tuitest.Ctrl('s')))

	rec, ok := h.coord.Current()
	require.True(t, ok)
	assert.Equal(t, notify.SeverityWarning, rec.Severity)
	assert.Nil(t, h.model.lastBroadcast)
}

func TestModel_broadcast_on_joined_channel(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.run(t, h.send(tuitest.KeyEnter()))
	h.send(tuitest.KeyTab())
	h.run(t, h.send(tuitest.Ctrl('s')))

	assert.Equal(t, "Broadcast fdc3.instrument on Channel 1", h.message(t))
	require.NotNil(t, h.model.lastBroadcast)
	assert.Equal(t, "fdc3.instrument", h.model.lastBroadcast.Type)
}

func TestModel_broadcast_current_channel_error_is_logged(t *testing.T) {
	buf := captureLog(t)

	h := newHarness(t)
	h.ready(t)
	require.NoError(t, h.agent.JoinChannel(context.Background(), "red"))
	h.model.agent = flakyAgent{Agent: h.agent, currentErr: interop.ErrAccessDenied}

	h.send(tuitest.KeyTab())
	h.run(t, h.send(tuitest.Ctrl('s')))

	assert.Equal(t, "Broadcast fdc3.instrument on channel", h.message(t))
	assert.Contains(t, buf.String(), "read current channel after broadcast")
}

func TestModel_broadcast_invalid_context(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(tuitest.KeyTab())
	h.model.editor.SetValue(`{"name": "missing type"}`)

	assert.Nil(t, h.send(tuitest.Ctrl('s')))

	rec, ok := h.coord.Current()
	require.True(t, ok)
	assert.Equal(t, notify.SeverityError, rec.Severity)
	assert.Contains(t, rec.Message, "Invalid context")
}

func TestModel_raise_intent(t *testing.T) {
	tests := []struct {
		name     string
		intent   string
		template string
		want     string
		severity notify.Severity
	}{
		{
			name:     "resolved",
			intent:   "ViewChart",
			want:     "ViewChart resolved by chart-app",
			severity: notify.SeveritySuccess,
		},
		{
			name:     "no listener",
			intent:   "ViewOrders",
			want:     "Intent resolution failed: no listener",
			severity: notify.SeverityError,
		},
		{
			name:     "context type not handled",
			intent:   "ViewContact",
			want:     "Intent resolution failed: no listener",
			severity: notify.SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.ready(t)

			h.send(tuitest.ShiftTab())
			require.Equal(t, tabIntents, h.model.activeTab)
			h.model.intents.SetIntent(tt.intent)

			h.run(t, h.send(tuitest.KeyEnter()))

			rec, ok := h.coord.Current()
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Message)
			assert.Equal(t, tt.severity, rec.Severity)
		})
	}
}

func TestModel_raise_intent_requires_name(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(tuitest.ShiftTab())
	h.model.intents.SetIntent("   ")

	assert.Nil(t, h.send(tuitest.KeyEnter()))
	assert.Equal(t, "Enter an intent name", h.message(t))
}

func TestModel_find_intent(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(tuitest.ShiftTab())
	h.model.intents.SetIntent("ViewNews")
	h.run(t, h.send(tuitest.Ctrl('f')))

	assert.Equal(t, "ViewNews is handled by news-app", h.message(t))
}

func TestModel_config_reloaded(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	cfg := config.DefaultConfig()
	cfg.Agent.Apps = []config.AppConfig{
		{AppID: "alt-chart", Intents: []config.IntentConfig{{Name: "ViewChart"}}},
	}
	h.send(ConfigReloadedMsg{Config: &cfg})

	assert.Equal(t, "Configuration reloaded", h.message(t))
	assert.Equal(t, []string{"ViewChart"}, h.model.intents.known)

	h.send(tuitest.ShiftTab())
	h.model.intents.SetIntent("ViewChart")
	h.run(t, h.send(tuitest.KeyEnter()))

	assert.Equal(t, "ViewChart resolved by alt-chart", h.message(t))
}

func TestModel_config_reload_failed(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(ConfigReloadedMsg{Err: errors.New("parse config file: boom")})

	rec, ok := h.coord.Current()
	require.True(t, ok)
	assert.Equal(t, notify.SeverityError, rec.Severity)
	assert.Equal(t, "Config reload failed: parse config file: boom", rec.Message)
}

func TestModel_find_intent_errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		severity notify.Severity
	}{
		{
			name:     "no apps",
			err:      interop.ErrNoAppsFound,
			want:     "No apps handle ViewChart",
			severity: notify.SeverityWarning,
		},
		{
			name:     "not attached",
			err:      interop.ErrNotAttached,
			want:     "Find intent failed: " + interop.ErrNotAttached.Error(),
			severity: notify.SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.ready(t)

			h.send(intentFoundMsg{intent: "ViewChart", err: tt.err})

			rec, ok := h.coord.Current()
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Message)
			assert.Equal(t, tt.severity, rec.Severity)
		})
	}
}

func TestModel_context_received(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	c := interop.Context{Type: "fdc3.instrument"}
	cmd := h.send(contextReceivedMsg{context: c})

	assert.NotNil(t, cmd, "the model keeps listening after each context")
	require.Len(t, h.model.received, 1)
	assert.Equal(t, c, h.model.received[0])

	for range maxReceived + 5 {
		h.send(contextReceivedMsg{context: c})
	}
	assert.Len(t, h.model.received, maxReceived)
}

// Error notification is dismissed and cleared after the grace delay.
func TestModel_dismiss_clears_after_grace(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.coord.Errorf("Intent resolution failed: no listener")
	h.drain()
	assert.Equal(t, h.coord.Key(), h.model.snackbar.Key())
	assert.Contains(t, tuitest.StripANSI(h.model.render()), "Intent resolution failed: no listener")

	h.send(tuitest.KeyEsc())
	assert.False(t, h.coord.Open())

	h.sched.Advance(500 * time.Millisecond)
	_, ok := h.coord.Current()
	assert.False(t, ok)

	h.drain()
	assert.Empty(t, h.model.snackbar.Key())
	assert.Empty(t, h.model.snackbarView())
}

// A publish during the grace delay survives the pending clear.
func TestModel_publish_during_grace(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.coord.Infof("first")
	h.drain()
	h.send(tuitest.KeyEsc())

	fresh := h.coord.Successf("second")
	h.drain()

	h.sched.Advance(time.Second)

	rec, ok := h.coord.Current()
	require.True(t, ok)
	assert.Equal(t, fresh.ID, rec.ID)
	assert.True(t, h.coord.Open())
	assert.Equal(t, fresh.ID, h.model.snackbar.Key())
}

func TestModel_auto_hide_timeout(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	rec := h.coord.Warnf("careful")
	h.drain()

	h.send(snackbarTimeoutMsg{key: rec.ID})
	assert.False(t, h.coord.Open())
}

func TestModel_stale_auto_hide_is_ignored(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	old := h.coord.Infof("old")
	h.drain()
	fresh := h.coord.Infof("new")
	h.drain()

	h.send(snackbarTimeoutMsg{key: old.ID})

	assert.True(t, h.coord.Open())
	assert.Equal(t, fresh.ID, h.coord.Key())
	assert.Equal(t, 0, h.sched.Pending())
}

func TestModel_tab_switching(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	h.send(tuitest.KeyTab())
	assert.Equal(t, tabContext, h.model.activeTab)
	h.send(tuitest.KeyTab())
	assert.Equal(t, tabIntents, h.model.activeTab)
	h.send(tuitest.KeyTab())
	assert.Equal(t, tabChannels, h.model.activeTab)
	h.send(tuitest.ShiftTab())
	assert.Equal(t, tabIntents, h.model.activeTab)
}

func TestModel_View_workbench(t *testing.T) {
	h := newHarness(t)
	h.send(tuitest.WindowSize(120, 40))
	h.ready(t)

	view := tuitest.StripANSI(h.model.render())
	for _, want := range []string{"{workbench}", "System Channels", "Context", "Intent", "Workbench", "Channel 1"} {
		assert.Contains(t, view, want)
	}
}

func TestModel_quit(t *testing.T) {
	h := newHarness(t)
	h.ready(t)

	cmd := h.send(tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl}))
	require.NotNil(t, cmd)
	assert.True(t, h.model.quitting)

	h.coord.Infof("after quit")
	assert.Nil(t, h.model.events.Drain(), "the model unsubscribes on quit")
}
