package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts channel_id and intent from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if channelID := GetChannelID(ctx); channelID != "" {
		e.Str("channel_id", channelID)
	}

	if intent := GetIntent(ctx); intent != "" {
		e.Str("intent", intent)
	}
}
