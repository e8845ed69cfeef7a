// Package config handles configuration loading and validation for the workbench.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Readiness        ReadinessConfig     `yaml:"readiness"`
	Notifications    NotificationsConfig `yaml:"notifications"`
	Agent            AgentConfig         `yaml:"agent"`
	TUI              TUIConfig           `yaml:"tui"`
	ContextTemplates []ContextTemplate   `yaml:"context_templates"`
}

// ReadinessConfig controls interop API detection.
type ReadinessConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// NotificationsConfig controls the snackbar lifecycle.
type NotificationsConfig struct {
	GraceDelay  time.Duration `yaml:"grace_delay"` // time a closed record stays readable
	AutoHide    time.Duration `yaml:"auto_hide"`   // how long a record stays visible
	HistorySize int           `yaml:"history_size"`
}

// AgentConfig configures the built-in local desktop agent.
type AgentConfig struct {
	Enabled     *bool         `yaml:"enabled"`      // nil = enabled
	AttachDelay time.Duration `yaml:"attach_delay"` // delay before the API attaches
	Resolver    bool          `yaml:"resolver"`     // pick the first app when several match
	Apps        []AppConfig   `yaml:"apps"`
}

// IsEnabled reports whether the local agent should ever attach.
func (a AgentConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// AppConfig is an app directory entry of the local agent.
type AppConfig struct {
	AppID   string         `yaml:"app_id"`
	Name    string         `yaml:"name"`
	Intents []IntentConfig `yaml:"intents"`
}

// IntentConfig declares an intent an app handles and the context types
// (glob patterns) it accepts. No patterns means any context.
type IntentConfig struct {
	Name     string   `yaml:"name"`
	Contexts []string `yaml:"contexts"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// ContextTemplate is a named JSON payload offered by the context editor.
type ContextTemplate struct {
	Name string `yaml:"name"`
	JSON string `yaml:"json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Readiness: ReadinessConfig{
			Timeout: 5 * time.Second,
		},
		Notifications: NotificationsConfig{
			GraceDelay:  500 * time.Millisecond,
			AutoHide:    4 * time.Second,
			HistorySize: 50,
		},
		Agent: AgentConfig{
			AttachDelay: time.Second,
			Apps:        defaultApps(),
		},
		TUI: TUIConfig{
			Theme: "finos",
		},
		ContextTemplates: defaultContextTemplates(),
	}
}

func defaultApps() []AppConfig {
	return []AppConfig{
		{
			AppID: "chart-app",
			Name:  "Chart",
			Intents: []IntentConfig{
				{Name: "ViewChart", Contexts: []string{"fdc3.instrument"}},
			},
		},
		{
			AppID: "news-app",
			Name:  "News",
			Intents: []IntentConfig{
				{Name: "ViewNews", Contexts: []string{"fdc3.instrument", "fdc3.organization"}},
			},
		},
		{
			AppID: "crm-app",
			Name:  "CRM",
			Intents: []IntentConfig{
				{Name: "ViewContact", Contexts: []string{"fdc3.contact"}},
				{Name: "StartCall", Contexts: []string{"fdc3.contact", "fdc3.contactList"}},
			},
		},
	}
}

func defaultContextTemplates() []ContextTemplate {
	return []ContextTemplate{
		{Name: "Instrument", JSON: `{"type":"fdc3.instrument","name":"Apple","id":{"ticker":"AAPL"}}`},
		{Name: "Contact", JSON: `{"type":"fdc3.contact","name":"Jane Doe","id":{"email":"jane.doe@example.com"}}`},
		{Name: "Organization", JSON: `{"type":"fdc3.organization","name":"FINOS","id":{"LEI":"549300X3YHVPJD3B4A09"}}`},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Readiness.Timeout == 0 {
		c.Readiness.Timeout = defaults.Readiness.Timeout
	}
	if c.Notifications.GraceDelay == 0 {
		c.Notifications.GraceDelay = defaults.Notifications.GraceDelay
	}
	if c.Notifications.AutoHide == 0 {
		c.Notifications.AutoHide = defaults.Notifications.AutoHide
	}
	if c.Notifications.HistorySize == 0 {
		c.Notifications.HistorySize = defaults.Notifications.HistorySize
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Readiness.Timeout < 0 {
		return fmt.Errorf("readiness.timeout must be positive")
	}

	if c.Notifications.GraceDelay < 0 {
		return fmt.Errorf("notifications.grace_delay cannot be negative")
	}

	if c.Notifications.AutoHide < 0 {
		return fmt.Errorf("notifications.auto_hide cannot be negative")
	}

	if c.Notifications.HistorySize < 1 {
		return fmt.Errorf("notifications.history_size must be at least 1")
	}

	if c.Agent.AttachDelay < 0 {
		return fmt.Errorf("agent.attach_delay cannot be negative")
	}

	appIDs := make(map[string]bool)
	for i, app := range c.Agent.Apps {
		if app.AppID == "" {
			return fmt.Errorf("agent.apps[%d]: app_id is required", i)
		}
		if appIDs[app.AppID] {
			return fmt.Errorf("agent.apps[%d]: duplicate app_id %q", i, app.AppID)
		}
		appIDs[app.AppID] = true

		for j, intent := range app.Intents {
			if intent.Name == "" {
				return fmt.Errorf("agent.apps[%d].intents[%d]: name is required", i, j)
			}
		}
	}

	for i, tmpl := range c.ContextTemplates {
		if tmpl.Name == "" {
			return fmt.Errorf("context_templates[%d]: name is required", i)
		}
	}

	return nil
}

// IntentNames returns every intent declared in the app directory, in
// declaration order without duplicates.
func (c *Config) IntentNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, app := range c.Agent.Apps {
		for _, intent := range app.Intents {
			if !seen[intent.Name] {
				seen[intent.Name] = true
				names = append(names, intent.Name)
			}
		}
	}
	return names
}
