package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/workbench/internal/core/styles"
)

// IntentsPanel selects an intent to raise with the current context.
type IntentsPanel struct {
	input textinput.Model
	known []string
	index int
}

func NewIntentsPanel(known []string) *IntentsPanel {
	ti := textinput.New()
	ti.Placeholder = "Intent name, e.g. ViewChart"
	ti.Prompt = "intent: "
	ti.SetWidth(40)

	p := &IntentsPanel{input: ti, known: known}
	if len(known) > 0 {
		p.input.SetValue(known[0])
	}
	return p
}

// Cycle moves through the known intents by delta and fills the input.
func (p *IntentsPanel) Cycle(delta int) {
	if len(p.known) == 0 {
		return
	}
	n := len(p.known)
	p.index = ((p.index+delta)%n + n) % n
	p.input.SetValue(p.known[p.index])
	p.input.CursorEnd()
}

// SetKnown replaces the intents Cycle moves through. The input keeps its
// current value.
func (p *IntentsPanel) SetKnown(known []string) {
	p.known = known
	if p.index >= len(known) {
		p.index = 0
	}
}

// Intent returns the trimmed intent name.
func (p *IntentsPanel) Intent() string {
	return strings.TrimSpace(p.input.Value())
}

// SetIntent replaces the input value.
func (p *IntentsPanel) SetIntent(s string) {
	p.input.SetValue(s)
}

func (p *IntentsPanel) Focus() tea.Cmd {
	return p.input.Focus()
}

func (p *IntentsPanel) Blur() {
	p.input.Blur()
}

func (p *IntentsPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the input, the known intents and the context summary the
// intent would be raised with.
func (p *IntentsPanel) View(contextSummary string) string {
	fieldStyle := styles.FieldStyle
	if p.input.Focused() {
		fieldStyle = styles.FieldFocusStyle
	}

	var known strings.Builder
	for i, name := range p.known {
		if name == p.Intent() {
			known.WriteString(styles.SelectedRowStyle.Render(styles.IconDot + " " + name))
		} else {
			known.WriteString(styles.TextMutedStyle.Render("  " + name))
		}
		if i < len(p.known)-1 {
			known.WriteString("\n")
		}
	}

	ctxLine := styles.TextMutedStyle.Render("context: ")
	if contextSummary == "" {
		ctxLine += styles.TextErrorStyle.Render("invalid (fix it in the Context tab)")
	} else {
		ctxLine += styles.CodeStyle.Render(contextSummary)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fieldStyle.Render(p.input.View()),
		ctxLine,
		"",
		styles.TextMutedStyle.Render("Known intents:"),
		known.String(),
	)
}
