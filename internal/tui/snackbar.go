package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/workbench/internal/core/notify"
	"github.com/colonyops/workbench/internal/core/styles"
)

const snackbarWidth = 50

// Snackbar is the display surface for the coordinator's current record. It is
// mounted with the record id as its key; remounting with a new key restarts
// the auto-hide timer so a replaced record never inherits a stale one.
type Snackbar struct {
	autoHide time.Duration
	key      string
}

// NewSnackbar creates a surface that requests close after autoHide. A zero
// autoHide disables automatic dismissal.
func NewSnackbar(autoHide time.Duration) *Snackbar {
	return &Snackbar{autoHide: autoHide}
}

// SetAutoHide changes the delay used by the next mount.
func (s *Snackbar) SetAutoHide(d time.Duration) {
	s.autoHide = d
}

// Key returns the key the surface is currently mounted with.
func (s *Snackbar) Key() string {
	return s.key
}

// Mount remounts the surface when key differs from the mounted one and
// returns the auto-hide timer for the new key.
func (s *Snackbar) Mount(key string) tea.Cmd {
	if key == s.key {
		return nil
	}
	s.key = key
	if key == "" || s.autoHide <= 0 {
		return nil
	}
	return tea.Tick(s.autoHide, func(time.Time) tea.Msg {
		return snackbarTimeoutMsg{key: key}
	})
}

// Expired reports whether msg belongs to the mounted surface. Timeouts from
// earlier mounts are stale and must be ignored.
func (s *Snackbar) Expired(msg snackbarTimeoutMsg) bool {
	return msg.key != "" && msg.key == s.key
}

// View renders rec. A closing record is rendered muted while its grace
// delay runs, then disappears once the coordinator clears it.
func (s *Snackbar) View(rec notify.Record, exists, open bool) string {
	if !exists {
		return ""
	}

	icon, style := severityStyle(rec.Severity)
	if !open {
		style = style.Background(styles.CurrentPalette.Surface).Foreground(styles.CurrentPalette.Muted)
	}

	content := icon + " " + rec.Message + "  " + styles.IconDot + " esc"
	return style.Width(snackbarWidth).Render(content)
}

func severityStyle(sev notify.Severity) (string, lipgloss.Style) {
	switch sev {
	case notify.SeveritySuccess:
		return styles.IconSuccess, styles.SnackbarSuccessStyle
	case notify.SeverityError:
		return styles.IconError, styles.SnackbarErrorStyle
	case notify.SeverityWarning:
		return styles.IconWarning, styles.SnackbarWarningStyle
	default:
		return styles.IconInfo, styles.SnackbarInfoStyle
	}
}

// overlaySnackbar composites content over background in the lower-right corner.
func overlaySnackbar(background, content string, width, height int) string {
	if content == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	snackLayer := lipgloss.NewLayer(content)

	w := lipgloss.Width(content)
	h := lipgloss.Height(content)

	x := max(width-w-1, 0)
	y := max(height-h-1, 0)

	snackLayer.X(x).Y(y).Z(2)

	return lipgloss.NewCompositor(bgLayer, snackLayer).Render()
}
