package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/workbench/internal/core/styles"
	"github.com/colonyops/workbench/pkg/iojson"
)

type ProbeCmd struct {
	flags   *Flags
	timeout time.Duration
	json    bool
}

// ProbeReport is the machine-readable result of a readiness probe.
type ProbeReport struct {
	State     string `json:"state"`
	Available bool   `json:"available"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Timeout   string `json:"timeout"`
	Error     string `json:"error,omitempty"`
}

// NewProbeCmd creates a new probe command
func NewProbeCmd(flags *Flags) *ProbeCmd {
	return &ProbeCmd{flags: flags}
}

// Register adds the probe command to the application
func (cmd *ProbeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "probe",
		Usage:     "Check whether the interop API becomes available",
		UsageText: "workbench probe [options]",
		Description: `Runs the readiness detection once without the TUI and reports the result.

Output is JSON when stdout is not a terminal or --json is set.
Exits with status 1 when the API is not detected before the timeout.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "timeout",
				Aliases:     []string{"t"},
				Usage:       "detection timeout (defaults to readiness.timeout from config)",
				Destination: &cmd.timeout,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "force JSON output",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ProbeCmd) run(ctx context.Context, c *cli.Command) error {
	report := cmd.probe(ctx)

	w := c.Root().Writer
	if err := writeProbeReport(w, report, cmd.json || !isTerminal(w)); err != nil {
		return err
	}

	if !report.Available {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ProbeCmd) probe(ctx context.Context) ProbeReport {
	cfg := cmd.flags.Config

	agent := newAgent(cfg)
	defer agent.Close()

	d := newDetector(cfg, agent, cmd.timeout)
	ok := d.Detect(ctx)

	report := ProbeReport{
		State:     d.State().String(),
		Available: ok,
		ElapsedMS: d.Elapsed().Milliseconds(),
		Timeout:   d.Timeout().String(),
	}
	if err := d.Err(); err != nil {
		report.Error = err.Error()
	}
	return report
}

func writeProbeReport(w io.Writer, report ProbeReport, asJSON bool) error {
	if asJSON {
		return iojson.WriteWith(w, os.Stderr, report)
	}

	if report.Available {
		_, err := fmt.Fprintf(w, "%s interop api available %s\n",
			styles.TextSuccessStyle.Render(styles.IconSuccess),
			styles.TextMutedStyle.Render(fmt.Sprintf("(%dms)", report.ElapsedMS)),
		)
		return err
	}

	_, err := fmt.Fprintf(w, "%s interop api not detected within %s\n",
		styles.TextErrorStyle.Render(styles.IconError),
		report.Timeout,
	)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
