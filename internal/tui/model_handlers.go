package tui

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/readiness"
	"github.com/colonyops/workbench/internal/core/styles"
)

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.editor.SetWidth(m.mainPanelWidth() - 4)
	if m.readiness == readiness.Unavailable {
		m.fallback = renderFallback(msg.Width - 2)
	}
	return m, nil
}

func (m Model) handleReadiness(msg readinessMsg) (tea.Model, tea.Cmd) {
	m.elapsed = msg.elapsed
	if !msg.available {
		m.readiness = readiness.Unavailable
		w, _ := m.dimensions()
		m.fallback = renderFallback(w - 2)
		return m, nil
	}

	m.readiness = readiness.Available

	return m, tea.Batch(
		loadChannels(m.agent),
		listenForContexts(m.agent, m.recv),
		waitForContext(m.recv),
	)
}

// handleDrainEvents remounts the snackbar for whatever record is current once
// the coordinator reports a transition.
func (m Model) handleDrainEvents() (tea.Model, tea.Cmd) {
	for _, e := range m.events.Drain() {
		log.Debug().Str("event", e.Kind.String()).Str("record_id", e.Record.ID).Msg("notification event")
	}

	cmds := []tea.Cmd{m.events.WaitForSignal()}
	if cmd := m.snackbar.Mount(m.coordinator.Key()); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSnackbarTimeout(msg snackbarTimeoutMsg) (tea.Model, tea.Cmd) {
	if !m.snackbar.Expired(msg) || m.coordinator.Key() != msg.key {
		return m, nil
	}
	m.coordinator.RequestClose()
	return m, nil
}

// appDirectory is implemented by agents whose app directory can change at
// runtime.
type appDirectory interface {
	SetApps(apps []config.AppConfig)
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.coordinator.Errorf("Config reload failed: %v", msg.Err)
		return m, nil
	}

	cfg := msg.Config
	m.cfg = cfg
	m.editor.SetTemplates(cfg.ContextTemplates)
	m.intents.SetKnown(cfg.IntentNames())
	m.snackbar.SetAutoHide(cfg.Notifications.AutoHide)
	if dir, ok := m.agent.(appDirectory); ok {
		dir.SetApps(cfg.Agent.Apps)
	}
	if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
		styles.SetTheme(palette)
	}

	m.coordinator.Infof("Configuration reloaded")
	return m, nil
}

func (m Model) handleListenerReady(msg listenerReadyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.coordinator.Errorf("Failed to add context listener: %v", msg.err)
		return m, nil
	}
	m.listener = msg.listener
	return m, nil
}

func (m Model) handleContextReceived(msg contextReceivedMsg) (tea.Model, tea.Cmd) {
	m.received = append([]interop.Context{msg.context}, m.received...)
	if len(m.received) > maxReceived {
		m.received = m.received[:maxReceived]
	}
	return m, waitForContext(m.recv)
}

func (m Model) handleChannelJoined(msg channelJoinedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.coordinator.Errorf("Failed to join channel: %v", msg.err)
		return m, nil
	}

	ch := msg.channel
	m.current = &ch
	m.channels.SetCurrent(ch.ID)
	m.coordinator.Successf("Joined channel %s", ch.Title())
	return m, nil
}

func (m Model) handleChannelLeft(msg channelLeftMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.coordinator.Errorf("Failed to leave channel: %v", msg.err)
		return m, nil
	}

	m.current = nil
	m.channels.SetCurrent("")
	if msg.channel == nil {
		m.coordinator.Infof("Not joined to a channel")
		return m, nil
	}
	m.coordinator.Infof("Left channel %s", msg.channel.Title())
	return m, nil
}

func (m Model) handleBroadcastResult(msg broadcastResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, interop.ErrNoChannelFound):
		m.coordinator.Warnf("Join a channel before broadcasting")
		return m, nil
	case msg.err != nil:
		m.coordinator.Errorf("Broadcast failed: %v", msg.err)
		return m, nil
	}

	c := msg.context
	m.lastBroadcast = &c
	channel := "channel"
	if msg.channel != nil {
		channel = msg.channel.Title()
	}
	m.coordinator.Successf("Broadcast %s on %s", c.Type, channel)
	return m, nil
}

func (m Model) handleIntentRaised(msg intentRaisedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, interop.ErrNoAppsFound):
		m.coordinator.Errorf("Intent resolution failed: no listener")
		return m, nil
	case errors.Is(msg.err, interop.ErrResolverUnavailable):
		m.coordinator.Errorf("Intent resolution failed: multiple apps and no resolver")
		return m, nil
	case msg.err != nil:
		m.coordinator.Errorf("Intent resolution failed: %v", msg.err)
		return m, nil
	}

	res := msg.resolution
	m.lastResolution = &res
	m.coordinator.Successf("%s resolved by %s", msg.intent, res.Source.AppID)
	return m, nil
}

func (m Model) handleIntentFound(msg intentFoundMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, interop.ErrNoAppsFound):
		m.coordinator.Warnf("No apps handle %s", msg.intent)
		return m, nil
	case msg.err != nil:
		m.coordinator.Errorf("Find intent failed: %v", msg.err)
		return m, nil
	}

	ids := make([]string, 0, len(msg.found.Apps))
	for _, app := range msg.found.Apps {
		ids = append(ids, app.AppID)
	}
	m.coordinator.Infof("%s is handled by %s", msg.intent, strings.Join(ids, ", "))
	return m, nil
}

func (m Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.readiness != readiness.Unknown {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Dismiss):
		m.coordinator.RequestClose()
		return m, nil
	}

	if m.readiness != readiness.Available {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.activeTab + 1) % tab(len(tabNames)))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.activeTab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
	}

	switch m.activeTab {
	case tabChannels:
		return m.handleChannelsKey(msg)
	case tabContext:
		return m.handleContextKey(msg)
	case tabIntents:
		return m.handleIntentsKey(msg)
	}
	return m, nil
}

func (m Model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.activeTab = t
	m.editor.Blur()
	m.intents.Blur()

	switch t {
	case tabContext:
		return m, m.editor.Focus()
	case tabIntents:
		return m, m.intents.Focus()
	}
	return m, nil
}

func (m Model) handleChannelsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.channels.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.channels.MoveDown()
	case key.Matches(msg, m.keys.Join):
		if ch, ok := m.channels.Selected(); ok {
			return m, joinChannel(m.agent, ch)
		}
	case key.Matches(msg, m.keys.Leave):
		return m, leaveChannel(m.agent)
	}
	return m, nil
}

func (m Model) handleContextKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Broadcast):
		c, ok := m.parseContext()
		if !ok {
			return m, nil
		}
		return m, broadcast(m.agent, c)
	case key.Matches(msg, m.keys.Template):
		m.editor.NextTemplate()
		return m, nil
	}
	return m, m.editor.Update(msg)
}

func (m Model) handleIntentsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleUp):
		m.intents.Cycle(-1)
		return m, nil
	case key.Matches(msg, m.keys.CycleDown):
		m.intents.Cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.Raise), key.Matches(msg, m.keys.FindIntent):
		intent := m.intents.Intent()
		if intent == "" {
			m.coordinator.Warnf("Enter an intent name")
			return m, nil
		}
		c, ok := m.parseContext()
		if !ok {
			return m, nil
		}
		if key.Matches(msg, m.keys.FindIntent) {
			return m, findIntent(m.agent, intent, c)
		}
		return m, raiseIntent(m.agent, intent, c)
	}
	return m, m.intents.Update(msg)
}

// parseContext reads the editor, publishing an error notification when the
// payload is not a valid context.
func (m Model) parseContext() (interop.Context, bool) {
	c, err := m.editor.Parse()
	if err != nil {
		m.coordinator.Errorf("Invalid context: %v", err)
		return interop.Context{}, false
	}
	return c, true
}

// updateFocused forwards non-key messages such as cursor blinks to the
// focused input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case tabContext:
		return m, m.editor.Update(msg)
	case tabIntents:
		return m, m.intents.Update(msg)
	}
	return m, nil
}
