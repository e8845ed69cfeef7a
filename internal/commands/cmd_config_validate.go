package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/styles"
	"github.com/colonyops/workbench/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// ValidationIssue is a single field-level validation failure.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationReport is the result of validating a configuration.
type ValidationReport struct {
	Valid    bool                       `json:"valid"`
	Errors   []ValidationIssue          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "workbench config validate [options]",
				Description: "Validates the configuration file, checking the theme, intent context patterns, and context templates.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	report := validate(cmd.flags.Config, cmd.flags.ConfigPath)

	w := c.Root().Writer
	var err error
	if cmd.format == "json" {
		err = iojson.WriteWith(w, os.Stderr, report)
	} else {
		err = writeValidationText(w, report)
	}
	if err != nil {
		return err
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func validate(cfg *config.Config, configPath string) ValidationReport {
	report := ValidationReport{
		Valid:    true,
		Warnings: cfg.Warnings(),
	}

	err := cfg.ValidateDeep(configPath)
	if err == nil {
		return report
	}

	report.Valid = false

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			report.Errors = append(report.Errors, ValidationIssue{Field: fe.Field, Message: fe.Err.Error()})
		}
		return report
	}

	report.Errors = append(report.Errors, ValidationIssue{Field: "config", Message: err.Error()})
	return report
}

func writeValidationText(w io.Writer, report ValidationReport) error {
	for _, warn := range report.Warnings {
		item := ""
		if warn.Item != "" {
			item = " " + styles.TextMutedStyle.Render(warn.Item)
		}
		_, _ = fmt.Fprintf(w, "%s %s: %s%s\n", styles.TextWarningStyle.Render("●"), warn.Category, warn.Message, item)
	}

	for _, issue := range report.Errors {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("✘"), issue.Field, issue.Message)
	}

	if len(report.Warnings) > 0 || len(report.Errors) > 0 {
		_, _ = fmt.Fprintln(w)
	}

	if report.Valid {
		_, err := fmt.Fprintln(w, styles.TextSuccessStyle.Render("✔ Configuration is valid"))
		return err
	}

	_, err := fmt.Fprintln(w, styles.TextErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(report.Errors))))
	return err
}
