package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration,
// including the config file itself, glob patterns and context templates.
// It calls Validate() first for basic structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		c.validateIntentPatterns(),
		c.validateContextTemplates(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if !c.Agent.IsEnabled() {
		warnings = append(warnings, ValidationWarning{
			Category: "Agent",
			Message:  "local agent is disabled; the interop api will never be detected",
		})
	} else if c.Agent.AttachDelay >= c.Readiness.Timeout {
		warnings = append(warnings, ValidationWarning{
			Category: "Agent",
			Item:     "attach_delay",
			Message:  fmt.Sprintf("attach delay %s is not below readiness timeout %s", c.Agent.AttachDelay, c.Readiness.Timeout),
		})
	}

	for i, app := range c.Agent.Apps {
		if len(app.Intents) == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Apps",
				Item:     fmt.Sprintf("apps[%d] (%s)", i, app.AppID),
				Message:  "app declares no intents",
			})
		}
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

// validateIntentPatterns checks that every declared context type is a valid
// glob pattern.
func (c *Config) validateIntentPatterns() error {
	var errs criterio.FieldErrorsBuilder
	for i, app := range c.Agent.Apps {
		for j, intent := range app.Intents {
			for k, pattern := range intent.Contexts {
				if !doublestar.ValidatePattern(pattern) {
					field := fmt.Sprintf("agent.apps[%d].intents[%d].contexts[%d]", i, j, k)
					errs = errs.Append(field, fmt.Errorf("invalid pattern %q", pattern))
				}
			}
		}
	}
	return errs.ToError()
}

// validateContextTemplates checks that every template parses as a context.
func (c *Config) validateContextTemplates() error {
	var errs criterio.FieldErrorsBuilder
	for i, tmpl := range c.ContextTemplates {
		if _, err := interop.ParseContext([]byte(tmpl.JSON)); err != nil {
			errs = errs.Append(fmt.Sprintf("context_templates[%d]", i), err)
		}
	}
	return errs.ToError()
}
