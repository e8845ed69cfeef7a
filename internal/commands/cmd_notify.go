package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/workbench/internal/core/notify"
	"github.com/colonyops/workbench/internal/core/styles"
)

type NotifyCmd struct {
	flags *Flags
	hold  time.Duration
}

// NewNotifyCmd creates a new notify command
func NewNotifyCmd(flags *Flags) *NotifyCmd {
	return &NotifyCmd{flags: flags}
}

// Register adds the notify command to the application
func (cmd *NotifyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notify",
		Usage:     "Publish a notification and print its lifecycle",
		UsageText: "workbench notify [options] <success|error|warning|info> <message>",
		Description: `Publishes one notification through the coordinator, keeps it open for the
hold duration, requests close, and waits for the grace delay to clear it.
Each transition is printed as it happens.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "hold",
				Usage:       "how long the notification stays open (defaults to notifications.auto_hide)",
				Destination: &cmd.hold,
			},
		},
		ShellComplete: SeverityCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *NotifyCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("expected <severity> <message>, got %d argument(s)", c.Args().Len())
	}

	severity, err := notify.ParseSeverity(c.Args().First())
	if err != nil {
		return err
	}
	message := strings.Join(c.Args().Tail(), " ")

	hold := cmd.hold
	if hold <= 0 {
		hold = cmd.flags.Config.Notifications.AutoHide
	}

	return runLifecycle(ctx, c.Root().Writer, newCoordinator(cmd.flags.Config), severity, message, hold)
}

// runLifecycle publishes a record on c, closes it after hold, and returns
// once the coordinator clears it or ctx is done.
func runLifecycle(ctx context.Context, w io.Writer, c *notify.Coordinator, severity notify.Severity, message string, hold time.Duration) error {
	var (
		mu      sync.Mutex
		cleared = make(chan struct{})
	)

	unsubscribe := c.Subscribe(func(e notify.Event) {
		mu.Lock()
		defer mu.Unlock()

		_, _ = fmt.Fprintf(w, "%s %-9s %s %s\n",
			styles.TextMutedStyle.Render(time.Now().Format("15:04:05.000")),
			e.Kind.String(),
			e.Record.Message,
			styles.TextMutedStyle.Render(e.Record.ID),
		)
		if e.Kind == notify.EventCleared {
			close(cleared)
		}
	})
	defer unsubscribe()

	c.Publish(severity, message)

	select {
	case <-time.After(hold):
	case <-ctx.Done():
		return ctx.Err()
	}

	c.RequestClose()

	select {
	case <-cleared:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
