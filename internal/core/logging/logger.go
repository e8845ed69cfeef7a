// Package logging provides component loggers that carry interop context
// fields.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger derived from the global logger with a component
// identifier under the "cmp" key. Events logged with Ctx(ctx) pick up the
// channel and intent stored in ctx.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
