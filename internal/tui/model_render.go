package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/workbench/internal/core/readiness"
	"github.com/colonyops/workbench/internal/core/styles"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the workbench with the snackbar composited on top.
func (m Model) render() string {
	w, h := m.dimensions()

	var body string
	switch m.readiness {
	case readiness.Available:
		body = m.renderWorkbench()
	case readiness.Unavailable:
		body = m.fallback
	default:
		body = styles.TextMutedStyle.Render(m.spinner.View() + " Detecting interop API...")
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(w),
		"",
		body,
		"",
		m.renderFooter(),
	)

	background := lipgloss.NewStyle().Width(w).Height(h).Render(mainView)
	return overlaySnackbar(background, m.snackbarView(), w, h)
}

func (m Model) snackbarView() string {
	rec, exists := m.coordinator.Current()
	return m.snackbar.View(rec, exists, m.coordinator.Open())
}

func (m Model) dimensions() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}
	return w, h
}

// mainPanelWidth is the width of the tabbed panel; the rest goes to the
// workbench sidebar.
func (m Model) mainPanelWidth() int {
	w, _ := m.dimensions()
	return w * 3 / 5
}

func (m Model) renderHeader(width int) string {
	title := styles.TitleStyle.Render("{workbench}")

	var badge string
	switch m.readiness {
	case readiness.Available:
		badge = styles.BadgeStyle.
			Foreground(styles.CurrentPalette.Success).
			Render(fmt.Sprintf("%s interop api (%s)", styles.IconSuccess, m.elapsed.Round(time.Millisecond)))
	case readiness.Unavailable:
		badge = styles.BadgeStyle.
			Foreground(styles.CurrentPalette.Error).
			Render(styles.IconError + " interop api not detected")
	default:
		badge = styles.BadgeStyle.
			Foreground(styles.CurrentPalette.Muted).
			Render(m.spinner.View() + " detecting")
	}

	gap := max(width-lipgloss.Width(title)-lipgloss.Width(badge), 1)
	return title + strings.Repeat(" ", gap) + badge
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.activeTab {
			parts = append(parts, styles.TabActiveStyle.Render(name))
		} else {
			parts = append(parts, styles.TabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderWorkbench() string {
	mainWidth := m.mainPanelWidth()
	w, _ := m.dimensions()
	sideWidth := max(w-mainWidth-2, 20)

	var panel string
	switch m.activeTab {
	case tabChannels:
		panel = m.channels.View()
	case tabContext:
		panel = m.editor.View()
	case tabIntents:
		summary := ""
		if c, err := m.editor.Parse(); err == nil {
			summary = c.Summary()
		}
		panel = m.intents.View(summary)
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		styles.PanelStyle.Width(mainWidth).Render(panel),
	)
	side := styles.PanelStyle.Width(sideWidth).Render(m.renderSidebar(sideWidth - 4))

	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side)
}

func (m Model) renderFooter() string {
	if m.readiness != readiness.Available {
		return styles.FooterStyle.Render("esc dismiss • ctrl+c quit")
	}
	return renderHelp(m.keys.helpFor(m.activeTab))
}
