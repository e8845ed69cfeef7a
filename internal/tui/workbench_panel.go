package tui

import (
	"encoding/json"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/styles"
	"github.com/colonyops/workbench/internal/tui/jsoncolor"
)

const (
	sidebarHistory = 5
	payloadLines   = 8
)

// renderSidebar summarises the workbench state: the joined channel, the last
// broadcast, received contexts and recent notifications.
func (m Model) renderSidebar(width int) string {
	var b strings.Builder

	b.WriteString(styles.PanelTitleStyle.Render("Workbench"))
	b.WriteString("\n")

	b.WriteString(styles.TextMutedStyle.Render("Channel: "))
	if m.current != nil {
		dot := lipgloss.NewStyle().Foreground(styles.ChannelColor(m.current.DisplayMetadata.Color)).Render(styles.IconChannel)
		b.WriteString(dot + " " + m.current.Title())
	} else {
		b.WriteString(styles.TextMutedStyle.Render("none"))
	}
	b.WriteString("\n")

	b.WriteString(styles.TextMutedStyle.Render("Broadcast: "))
	if m.lastBroadcast != nil {
		b.WriteString(styles.CodeStyle.Render(ansi.Truncate(m.lastBroadcast.Summary(), width-11, "…")))
	} else {
		b.WriteString(styles.TextMutedStyle.Render("none"))
	}
	b.WriteString("\n")

	if m.lastResolution != nil {
		b.WriteString(styles.TextMutedStyle.Render("Resolved: "))
		b.WriteString(m.lastResolution.Intent + " → " + m.lastResolution.Source.AppID)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.PanelTitleStyle.Render("Received"))
	b.WriteString("\n")
	if len(m.received) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("no contexts yet"))
		b.WriteString("\n")
	}
	for i, c := range m.received {
		if i == sidebarHistory {
			break
		}
		b.WriteString(ansi.Truncate(styles.IconDot+" "+c.Summary(), width, "…"))
		b.WriteString("\n")
	}
	if len(m.received) > 0 {
		b.WriteString(renderPayload(m.received[0], width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.PanelTitleStyle.Render("Notifications"))
	b.WriteString("\n")
	history := m.coordinator.History()
	if len(history) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("none"))
	}
	for i, rec := range history {
		if i == sidebarHistory {
			break
		}
		icon, _ := severityStyle(rec.Severity)
		line := icon + " " + rec.CreatedAt.Format("15:04:05") + " " + rec.Message
		b.WriteString(styles.TextMutedStyle.Render(ansi.Truncate(line, width, "…")))
		if i < min(len(history), sidebarHistory)-1 {
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderPayload shows the head of c as colored JSON.
func renderPayload(c interop.Context, width int) string {
	data, err := json.Marshal(c)
	if err != nil {
		return styles.TextErrorStyle.Render(err.Error())
	}

	lines := strings.Split(jsoncolor.Colorize(data), "\n")
	if len(lines) > payloadLines {
		lines = append(lines[:payloadLines], styles.TextMutedStyle.Render("…"))
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}
