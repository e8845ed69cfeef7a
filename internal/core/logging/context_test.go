package logging

import (
	"context"
	"testing"
)

func TestWithChannelID(t *testing.T) {
	ctx := WithChannelID(context.Background(), "red")

	if got := GetChannelID(ctx); got != "red" {
		t.Errorf("GetChannelID() = %q, want %q", got, "red")
	}
}

func TestWithIntent(t *testing.T) {
	ctx := WithIntent(context.Background(), "ViewChart")

	if got := GetIntent(ctx); got != "ViewChart" {
		t.Errorf("GetIntent() = %q, want %q", got, "ViewChart")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetChannelID(ctx); got != "" {
		t.Errorf("GetChannelID() = %q, want empty string", got)
	}
	if got := GetIntent(ctx); got != "" {
		t.Errorf("GetIntent() = %q, want empty string", got)
	}
}
