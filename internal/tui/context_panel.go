package tui

import (
	"bytes"
	"encoding/json"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/workbench/internal/core/config"
	"github.com/colonyops/workbench/internal/core/interop"
	"github.com/colonyops/workbench/internal/core/styles"
)

// ContextPanel edits an ad-hoc context payload as JSON.
type ContextPanel struct {
	editor    textarea.Model
	templates []config.ContextTemplate
	template  int
}

func NewContextPanel(templates []config.ContextTemplate) *ContextPanel {
	ta := textarea.New()
	ta.Placeholder = `{"type": "fdc3.instrument", "id": {"ticker": "AAPL"}}`
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(10)

	p := &ContextPanel{
		editor:    ta,
		templates: templates,
	}
	if len(templates) > 0 {
		p.editor.SetValue(prettyJSON(templates[0].JSON))
	}
	return p
}

// NextTemplate loads the next configured template into the editor.
func (p *ContextPanel) NextTemplate() {
	if len(p.templates) == 0 {
		return
	}
	p.template = (p.template + 1) % len(p.templates)
	p.editor.SetValue(prettyJSON(p.templates[p.template].JSON))
}

// SetTemplates replaces the configured templates without touching the
// editor content.
func (p *ContextPanel) SetTemplates(templates []config.ContextTemplate) {
	p.templates = templates
	if p.template >= len(templates) {
		p.template = 0
	}
}

// TemplateName returns the name of the last loaded template.
func (p *ContextPanel) TemplateName() string {
	if len(p.templates) == 0 {
		return ""
	}
	return p.templates[p.template].Name
}

// SetValue replaces the editor content.
func (p *ContextPanel) SetValue(s string) {
	p.editor.SetValue(s)
}

// Value returns the raw editor content.
func (p *ContextPanel) Value() string {
	return p.editor.Value()
}

// Parse decodes the editor content as a context.
func (p *ContextPanel) Parse() (interop.Context, error) {
	return interop.ParseContext([]byte(p.editor.Value()))
}

func (p *ContextPanel) Focus() tea.Cmd {
	return p.editor.Focus()
}

func (p *ContextPanel) Blur() {
	p.editor.Blur()
}

func (p *ContextPanel) SetWidth(w int) {
	p.editor.SetWidth(max(w, 20))
}

func (p *ContextPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.editor, cmd = p.editor.Update(msg)
	return cmd
}

func (p *ContextPanel) View() string {
	title := styles.TextMutedStyle.Render("Template: ")
	if name := p.TemplateName(); name != "" {
		title += styles.TextPrimaryStyle.Render(name)
	} else {
		title += styles.TextMutedStyle.Render("none")
	}

	fieldStyle := styles.FieldStyle
	if p.editor.Focused() {
		fieldStyle = styles.FieldFocusStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, fieldStyle.Render(p.editor.View()))
}

// prettyJSON indents s, returning it unchanged if it is not valid JSON.
func prettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}
