// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Status glyphs.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
	IconChannel = "●"
	IconDot     = "•"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports. Rebuilt by SetTheme.
var (
	TitleStyle       lipgloss.Style
	TextMutedStyle   lipgloss.Style
	TextPrimaryStyle lipgloss.Style
	TextErrorStyle   lipgloss.Style
	TextSuccessStyle lipgloss.Style
	TextWarningStyle lipgloss.Style
	CodeStyle        lipgloss.Style

	PanelStyle       lipgloss.Style
	PanelTitleStyle  lipgloss.Style
	TabStyle         lipgloss.Style
	TabActiveStyle   lipgloss.Style
	BadgeStyle       lipgloss.Style
	FieldStyle       lipgloss.Style
	FieldFocusStyle  lipgloss.Style
	SelectedRowStyle lipgloss.Style
	FooterStyle      lipgloss.Style

	SnackbarSuccessStyle lipgloss.Style
	SnackbarErrorStyle   lipgloss.Style
	SnackbarWarningStyle lipgloss.Style
	SnackbarInfoStyle    lipgloss.Style
)

// SetTheme applies p to every exported style.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	TextWarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	CodeStyle = lipgloss.NewStyle().Foreground(p.Secondary)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Padding(0, 1)
	PanelTitleStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true).MarginBottom(1)
	TabStyle = lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 2)
	TabActiveStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Bold(true).
		Padding(0, 2)
	BadgeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	FieldStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Surface)
	FieldFocusStyle = FieldStyle.BorderForeground(p.Primary)
	SelectedRowStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	FooterStyle = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)

	snackbar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1).
		Bold(true)
	SnackbarSuccessStyle = snackbar.Background(p.Success)
	SnackbarErrorStyle = snackbar.Background(p.Error)
	SnackbarWarningStyle = snackbar.Background(p.Warning)
	SnackbarInfoStyle = snackbar.Background(p.Info)
}

// ChannelColor parses a channel's display color, falling back to muted.
func ChannelColor(hex string) color.Color {
	if hex == "" {
		return CurrentPalette.Muted
	}
	return lipgloss.Color(hex)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
