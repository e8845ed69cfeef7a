package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(_ context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	agent := newAgent(cfg)
	defer agent.Close()

	coordinator := newCoordinator(cfg)

	m := tui.New(tui.Deps{
		Config:      cfg,
		Agent:       agent,
		Detector:    newDetector(cfg, agent, 0),
		Coordinator: coordinator,
	})

	log.Info().
		Dur("timeout", cfg.Readiness.Timeout).
		Bool("agent_enabled", cfg.Agent.IsEnabled()).
		Msg("starting workbench")

	p := tea.NewProgram(m)

	if path := cmd.flags.ConfigPath; path != "" {
		w, err := config.Watch(path, log.Logger, func(cfg *config.Config, err error) {
			p.Send(tui.ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("config hot reload disabled")
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
