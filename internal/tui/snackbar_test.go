package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/workbench/internal/core/notify"
	"github.com/colonyops/workbench/pkg/tuitest"
)

func TestSnackbar_Mount(t *testing.T) {
	s := NewSnackbar(20 * time.Millisecond)

	cmd := s.Mount("a")
	require.NotNil(t, cmd)
	assert.Equal(t, "a", s.Key())

	msg := cmd()
	timeout, ok := msg.(snackbarTimeoutMsg)
	require.True(t, ok)
	assert.Equal(t, "a", timeout.key)
	assert.True(t, s.Expired(timeout))
}

func TestSnackbar_Mount_same_key_keeps_timer(t *testing.T) {
	s := NewSnackbar(time.Second)

	require.NotNil(t, s.Mount("a"))
	assert.Nil(t, s.Mount("a"), "remounting the same key must not restart the timer")
}

func TestSnackbar_Mount_empty_key(t *testing.T) {
	s := NewSnackbar(time.Second)

	s.Mount("a")
	assert.Nil(t, s.Mount(""))
	assert.Empty(t, s.Key())
	assert.False(t, s.Expired(snackbarTimeoutMsg{}))
}

func TestSnackbar_auto_hide_disabled(t *testing.T) {
	s := NewSnackbar(0)

	assert.Nil(t, s.Mount("a"))
	assert.Equal(t, "a", s.Key())
}

func TestSnackbar_Expired_ignores_stale_timeout(t *testing.T) {
	s := NewSnackbar(time.Second)

	s.Mount("a")
	s.Mount("b")

	assert.False(t, s.Expired(snackbarTimeoutMsg{key: "a"}))
	assert.True(t, s.Expired(snackbarTimeoutMsg{key: "b"}))
}

func TestSnackbar_View(t *testing.T) {
	s := NewSnackbar(time.Second)
	rec := notify.Record{ID: "a", Severity: notify.SeverityError, Message: "Intent resolution failed: no listener"}

	assert.Empty(t, s.View(rec, false, false))

	open := tuitest.StripANSI(s.View(rec, true, true))
	assert.Contains(t, open, "Intent resolution failed: no listener")

	closing := tuitest.StripANSI(s.View(rec, true, false))
	assert.Contains(t, closing, "Intent resolution failed: no listener", "closing records stay readable during the grace delay")
}

func TestOverlaySnackbar(t *testing.T) {
	bg := "line one\nline two\nline three"

	assert.Equal(t, bg, overlaySnackbar(bg, "", 20, 3))
	assert.Contains(t, tuitest.StripANSI(overlaySnackbar(bg, "hi", 20, 3)), "hi")
}
