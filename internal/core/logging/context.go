package logging

import "context"

type contextKey string

const (
	channelIDKey contextKey = "channel_id"
	intentKey    contextKey = "intent"
)

// WithChannelID adds the channel an interop operation targets to the context.
func WithChannelID(ctx context.Context, channelID string) context.Context {
	return context.WithValue(ctx, channelIDKey, channelID)
}

// WithIntent adds the intent name being raised to the context.
func WithIntent(ctx context.Context, intent string) context.Context {
	return context.WithValue(ctx, intentKey, intent)
}

// GetChannelID retrieves the channel ID from the context.
// Returns empty string if not present.
func GetChannelID(ctx context.Context) string {
	if id, ok := ctx.Value(channelIDKey).(string); ok {
		return id
	}
	return ""
}

// GetIntent retrieves the intent name from the context.
// Returns empty string if not present.
func GetIntent(ctx context.Context) string {
	if name, ok := ctx.Value(intentKey).(string); ok {
		return name
	}
	return ""
}
