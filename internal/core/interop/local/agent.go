// Package local implements an in-process desktop agent so the workbench can
// be exercised without an external one. It models attachment timing, system
// channel membership and intent resolution against a configured app
// directory.
package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/logging"
)

var _ interop.Agent = (*Agent)(nil)

// Agent is an in-process interop.Agent.
type Agent struct {
	apps     []config.AppConfig
	resolver bool
	logger   zerolog.Logger

	attachOnce sync.Once
	attached   chan struct{}
	timer      *time.Timer

	mu          sync.Mutex
	channels    []interop.Channel
	current     *interop.Channel
	lastContext map[string]interop.Context
	listeners   map[int]*listener
	nextID      int
}

type listener struct {
	agent       *Agent
	id          int
	contextType string
	fn          interop.ContextHandler
}

func (l *listener) Unsubscribe() {
	l.agent.mu.Lock()
	defer l.agent.mu.Unlock()
	delete(l.agent.listeners, l.id)
}

// New creates a local agent. When cfg is enabled the API attaches after
// cfg.AttachDelay; otherwise it never attaches.
func New(cfg config.AgentConfig, logger zerolog.Logger) *Agent {
	a := &Agent{
		apps:        cfg.Apps,
		resolver:    cfg.Resolver,
		logger:      logger,
		attached:    make(chan struct{}),
		channels:    interop.DefaultSystemChannels(),
		lastContext: make(map[string]interop.Context),
		listeners:   make(map[int]*listener),
	}

	if !cfg.IsEnabled() {
		logger.Debug().Msg("local agent disabled, api will not attach")
		return a
	}

	if cfg.AttachDelay <= 0 {
		a.Attach()
	} else {
		a.timer = time.AfterFunc(cfg.AttachDelay, a.Attach)
	}

	return a
}

// Attach makes the API available immediately. Safe to call more than once.
func (a *Agent) Attach() {
	a.attachOnce.Do(func() {
		close(a.attached)
		a.logger.Info().Msg("interop api attached")
	})
}

// Close stops a pending attachment.
func (a *Agent) Close() {
	if a.timer != nil {
		a.timer.Stop()
	}
}

// Ready blocks until the API attaches or ctx is done.
func (a *Agent) Ready(ctx context.Context) error {
	select {
	case <-a.attached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Agent) ensureAttached() error {
	select {
	case <-a.attached:
		return nil
	default:
		return interop.ErrNotAttached
	}
}

// SystemChannels returns the user channels.
func (a *Agent) SystemChannels(_ context.Context) ([]interop.Channel, error) {
	if err := a.ensureAttached(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]interop.Channel, len(a.channels))
	copy(out, a.channels)
	return out, nil
}

// JoinChannel makes channelID the current channel. Listeners receive the
// channel's last broadcast context, if any.
func (a *Agent) JoinChannel(ctx context.Context, channelID string) error {
	if err := a.ensureAttached(); err != nil {
		return err
	}

	ctx = logging.WithChannelID(ctx, channelID)

	a.mu.Lock()
	var found *interop.Channel
	for i := range a.channels {
		if a.channels[i].ID == channelID {
			ch := a.channels[i]
			found = &ch
			break
		}
	}
	if found == nil {
		a.mu.Unlock()
		return fmt.Errorf("%w: %q", interop.ErrNoChannelFound, channelID)
	}
	a.current = found
	last, hasLast := a.lastContext[channelID]
	handlers := a.handlersLocked(last.Type)
	a.mu.Unlock()

	a.logger.Info().Ctx(ctx).Msg("joined channel")

	if hasLast {
		for _, fn := range handlers {
			fn(last)
		}
	}
	return nil
}

// LeaveCurrentChannel leaves the current channel, if any.
func (a *Agent) LeaveCurrentChannel(ctx context.Context) error {
	if err := a.ensureAttached(); err != nil {
		return err
	}

	a.mu.Lock()
	prev := a.current
	a.current = nil
	a.mu.Unlock()

	if prev != nil {
		a.logger.Info().Ctx(logging.WithChannelID(ctx, prev.ID)).Msg("left channel")
	}
	return nil
}

// CurrentChannel returns the joined channel or nil.
func (a *Agent) CurrentChannel(_ context.Context) (*interop.Channel, error) {
	if err := a.ensureAttached(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return nil, nil
	}
	ch := *a.current
	return &ch, nil
}

// Broadcast publishes c on the current channel and delivers it to matching
// listeners.
func (a *Agent) Broadcast(ctx context.Context, c interop.Context) error {
	if err := a.ensureAttached(); err != nil {
		return err
	}
	if c.Type == "" {
		return fmt.Errorf("%w: missing type", interop.ErrMalformedContext)
	}

	a.mu.Lock()
	if a.current == nil {
		a.mu.Unlock()
		return fmt.Errorf("%w: not joined to a channel", interop.ErrNoChannelFound)
	}
	channelID := a.current.ID
	a.lastContext[channelID] = c
	handlers := a.handlersLocked(c.Type)
	a.mu.Unlock()

	a.logger.Info().
		Ctx(logging.WithChannelID(ctx, channelID)).
		Str("context_type", c.Type).
		Int("listeners", len(handlers)).
		Msg("broadcast context")

	for _, fn := range handlers {
		fn(c)
	}
	return nil
}

// AddContextListener registers fn for contexts of contextType. An empty
// contextType receives every context.
func (a *Agent) AddContextListener(contextType string, fn interop.ContextHandler) (interop.Listener, error) {
	if err := a.ensureAttached(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	l := &listener{agent: a, id: a.nextID, contextType: contextType, fn: fn}
	a.nextID++
	a.listeners[l.id] = l
	return l, nil
}

func (a *Agent) handlersLocked(contextType string) []interop.ContextHandler {
	var out []interop.ContextHandler
	for i := 0; i < a.nextID; i++ {
		l, ok := a.listeners[i]
		if !ok {
			continue
		}
		if l.contextType == "" || l.contextType == contextType {
			out = append(out, l.fn)
		}
	}
	return out
}

// SetApps replaces the app directory used to resolve intents.
func (a *Agent) SetApps(apps []config.AppConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.apps = apps
}

// FindIntent lists the apps that handle intent for c's type.
func (a *Agent) FindIntent(_ context.Context, intent string, c interop.Context) (interop.AppIntent, error) {
	if err := a.ensureAttached(); err != nil {
		return interop.AppIntent{}, err
	}

	a.mu.Lock()
	apps := a.apps
	a.mu.Unlock()

	result := interop.AppIntent{Intent: intent}
	for _, app := range apps {
		if handles(app, intent, c.Type) {
			result.Apps = append(result.Apps, interop.AppMetadata{
				AppIdentifier: interop.AppIdentifier{AppID: app.AppID},
				Name:          app.Name,
			})
		}
	}

	if len(result.Apps) == 0 {
		return result, fmt.Errorf("%w: no app handles %s for %s", interop.ErrNoAppsFound, intent, c.Type)
	}
	return result, nil
}

// RaiseIntent resolves intent to a single app. Several candidates fail with
// ErrResolverUnavailable unless the resolver is enabled, in which case the
// first declared app wins.
func (a *Agent) RaiseIntent(ctx context.Context, intent string, c interop.Context) (interop.IntentResolution, error) {
	if c.Type == "" {
		return interop.IntentResolution{}, fmt.Errorf("%w: missing type", interop.ErrMalformedContext)
	}

	ctx = logging.WithIntent(ctx, intent)

	found, err := a.FindIntent(ctx, intent, c)
	if err != nil {
		a.logger.Warn().Ctx(ctx).Err(err).Msg("intent not resolved")
		return interop.IntentResolution{}, err
	}

	if len(found.Apps) > 1 && !a.resolver {
		err := fmt.Errorf("%w: %d apps handle %s", interop.ErrResolverUnavailable, len(found.Apps), intent)
		a.logger.Warn().Ctx(ctx).Err(err).Msg("intent not resolved")
		return interop.IntentResolution{}, err
	}

	target := found.Apps[0]
	res := interop.IntentResolution{
		Source: interop.AppIdentifier{
			AppID:      target.AppID,
			InstanceID: uuid.NewString(),
		},
		Intent: intent,
	}

	a.logger.Info().
		Ctx(ctx).
		Str("app_id", res.Source.AppID).
		Str("instance_id", res.Source.InstanceID).
		Msg("intent resolved")

	return res, nil
}

func handles(app config.AppConfig, intent, contextType string) bool {
	for _, decl := range app.Intents {
		if decl.Name != intent {
			continue
		}
		if len(decl.Contexts) == 0 {
			return true
		}
		for _, pattern := range decl.Contexts {
			if ok, err := doublestar.Match(pattern, contextType); err == nil && ok {
				return true
			}
		}
	}
	return false
}
