// Package interop describes the desktop interop API the workbench exercises:
// system channels, context broadcast and intents. Only the surface the
// workbench consumes is modelled; no wire protocol lives here.
package interop

import (
	"context"
	"errors"
)

// Errors mirror the resolve and channel error names of the interop standard.
var (
	ErrNotAttached         = errors.New("interop api not attached")
	ErrNoAppsFound         = errors.New("NoAppsFound")
	ErrResolverUnavailable = errors.New("ResolverUnavailable")
	ErrNoChannelFound      = errors.New("NoChannelFound")
	ErrAccessDenied        = errors.New("AccessDenied")
	ErrMalformedContext    = errors.New("MalformedContext")
)

// Agent is the desktop agent surface used by the workbench panels.
type Agent interface {
	// Ready returns nil once the API has attached, or ctx's error.
	Ready(ctx context.Context) error

	SystemChannels(ctx context.Context) ([]Channel, error)
	JoinChannel(ctx context.Context, channelID string) error
	LeaveCurrentChannel(ctx context.Context) error
	CurrentChannel(ctx context.Context) (*Channel, error)
	Broadcast(ctx context.Context, c Context) error

	FindIntent(ctx context.Context, intent string, c Context) (AppIntent, error)
	RaiseIntent(ctx context.Context, intent string, c Context) (IntentResolution, error)

	// AddContextListener registers fn for contexts of contextType received
	// on the current channel. An empty contextType receives every context.
	AddContextListener(contextType string, fn ContextHandler) (Listener, error)
}

// ContextHandler receives broadcast contexts.
type ContextHandler func(Context)

// Listener is a registered handler.
type Listener interface {
	Unsubscribe()
}

// AppIdentifier names an application instance.
type AppIdentifier struct {
	AppID      string `json:"appId"`
	InstanceID string `json:"instanceId,omitempty"`
}

// AppMetadata describes an application that can handle an intent.
type AppMetadata struct {
	AppIdentifier
	Name string `json:"name,omitempty"`
}

// AppIntent lists the apps able to handle an intent.
type AppIntent struct {
	Intent string        `json:"intent"`
	Apps   []AppMetadata `json:"apps"`
}

// IntentResolution reports which app handled a raised intent.
type IntentResolution struct {
	Source AppIdentifier `json:"source"`
	Intent string        `json:"intent"`
}
