package tui

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/notify"
	"github.com/colonyops/workbench/internal/core/readiness"
	"github.com/colonyops/workbench/internal/core/styles"
)

// maxReceived bounds the received-context log shown in the workbench panel.
const maxReceived = 20

type tab int

const (
	tabChannels tab = iota
	tabContext
	tabIntents
)

var tabNames = []string{"System Channels", "Context", "Intent"}

func (t tab) String() string {
	return tabNames[t]
}

// Deps are the collaborators the workbench renders and drives.
type Deps struct {
	Config      *config.Config
	Agent       interop.Agent
	Detector    *readiness.Detector
	Coordinator *notify.Coordinator
}

// Model is the root Bubble Tea model for the workbench.
type Model struct {
	cfg         *config.Config
	agent       interop.Agent
	detector    *readiness.Detector
	coordinator *notify.Coordinator
	events      *EventBuffer
	unsubscribe func()

	keys    KeyMap
	spinner spinner.Model

	// Readiness
	readiness readiness.State
	elapsed   time.Duration
	fallback  string

	// Panels
	activeTab tab
	channels  *ChannelsPanel
	editor    *ContextPanel
	intents   *IntentsPanel
	snackbar  *Snackbar

	// Workbench state
	current        *interop.Channel
	lastBroadcast  *interop.Context
	received       []interop.Context
	lastResolution *interop.IntentResolution
	listener       interop.Listener
	recv           chan interop.Context

	width    int
	height   int
	quitting bool
}

// New creates the root model and subscribes it to the coordinator.
func New(deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	events := NewEventBuffer()

	return Model{
		cfg:         cfg,
		agent:       deps.Agent,
		detector:    deps.Detector,
		coordinator: deps.Coordinator,
		events:      events,
		unsubscribe: deps.Coordinator.Subscribe(events.Push),
		keys:        DefaultKeyMap(),
		spinner:     s,
		readiness:   readiness.Unknown,
		activeTab:   tabChannels,
		channels:    NewChannelsPanel(),
		editor:      NewContextPanel(cfg.ContextTemplates),
		intents:     NewIntentsPanel(cfg.IntentNames()),
		snackbar:    NewSnackbar(cfg.Notifications.AutoHide),
		recv:        make(chan interop.Context, maxReceived),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		detect(m.detector),
		m.spinner.Tick,
		m.events.WaitForSignal(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// Window
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	// Readiness and notifications
	case readinessMsg:
		return m.handleReadiness(msg)
	case drainEventsMsg:
		return m.handleDrainEvents()
	case snackbarTimeoutMsg:
		return m.handleSnackbarTimeout(msg)
	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	// Agent results
	case channelsLoadedMsg:
		m.channels.SetChannels(msg.channels, msg.err)
		return m, nil
	case listenerReadyMsg:
		return m.handleListenerReady(msg)
	case contextReceivedMsg:
		return m.handleContextReceived(msg)
	case channelJoinedMsg:
		return m.handleChannelJoined(msg)
	case channelLeftMsg:
		return m.handleChannelLeft(msg)
	case broadcastResultMsg:
		return m.handleBroadcastResult(msg)
	case intentRaisedMsg:
		return m.handleIntentRaised(msg)
	case intentFoundMsg:
		return m.handleIntentFound(msg)

	// Input
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	if m.listener != nil {
		m.listener.Unsubscribe()
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}
