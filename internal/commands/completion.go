package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/workbench/internal/core/notify"
)

// SeverityCompleter returns a ShellCompleteFunc that suggests notification
// severities for the first positional argument.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func SeverityCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		args := cmd.Args()
		if args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
			// Severity already given; the rest is free-form message text.
			return
		}

		w := cmd.Root().Writer
		for _, sev := range notify.Severities {
			_, _ = fmt.Fprintln(w, string(sev))
		}
	}
}
