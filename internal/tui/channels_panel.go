package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/styles"
)

// ChannelsPanel lists the system channels and tracks the selection.
type ChannelsPanel struct {
	channels []interop.Channel
	cursor   int
	current  string
	loadErr  error
}

func NewChannelsPanel() *ChannelsPanel {
	return &ChannelsPanel{}
}

// SetChannels replaces the channel list, keeping the cursor in range.
func (p *ChannelsPanel) SetChannels(channels []interop.Channel, err error) {
	p.channels = channels
	p.loadErr = err
	if p.cursor >= len(channels) {
		p.cursor = max(len(channels)-1, 0)
	}
}

// SetCurrent marks channelID as joined. Empty means no channel.
func (p *ChannelsPanel) SetCurrent(channelID string) {
	p.current = channelID
}

func (p *ChannelsPanel) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *ChannelsPanel) MoveDown() {
	if p.cursor < len(p.channels)-1 {
		p.cursor++
	}
}

// Selected returns the channel under the cursor.
func (p *ChannelsPanel) Selected() (interop.Channel, bool) {
	if len(p.channels) == 0 {
		return interop.Channel{}, false
	}
	return p.channels[p.cursor], true
}

func (p *ChannelsPanel) View() string {
	if p.loadErr != nil {
		return styles.TextErrorStyle.Render("Failed to load system channels: " + p.loadErr.Error())
	}
	if len(p.channels) == 0 {
		return styles.TextMutedStyle.Render("Loading system channels...")
	}

	var b strings.Builder
	for i, ch := range p.channels {
		dot := lipgloss.NewStyle().Foreground(styles.ChannelColor(ch.DisplayMetadata.Color)).Render(styles.IconChannel)

		label := ch.Title() + " " + styles.TextMutedStyle.Render("("+ch.ID+")")
		if ch.ID == p.current {
			label += " " + styles.TextSuccessStyle.Render("joined")
		}

		prefix := "  "
		if i == p.cursor {
			prefix = styles.SelectedRowStyle.Render("> ")
			label = styles.SelectedRowStyle.Render(ch.Title()) + " " + styles.TextMutedStyle.Render("("+ch.ID+")")
			if ch.ID == p.current {
				label += " " + styles.TextSuccessStyle.Render("joined")
			}
		}

		b.WriteString(prefix + dot + " " + label)
		if i < len(p.channels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
