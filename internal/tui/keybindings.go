package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/workbench/internal/core/styles"
)

// KeyMap holds the workbench keybindings.
type KeyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Dismiss    key.Binding
	Up         key.Binding
	Down       key.Binding
	CycleUp    key.Binding
	CycleDown  key.Binding
	Join       key.Binding
	Leave      key.Binding
	Broadcast  key.Binding
	Template   key.Binding
	Raise      key.Binding
	FindIntent key.Binding
}

// DefaultKeyMap returns the built-in keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		CycleUp:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev intent")),
		CycleDown:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next intent")),
		Join:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "join")),
		Leave:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "leave")),
		Broadcast:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "broadcast")),
		Template:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next template")),
		Raise:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "raise")),
		FindIntent: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find apps")),
	}
}

// helpFor returns the bindings shown in the footer for tab t.
func (k KeyMap) helpFor(t tab) []key.Binding {
	var local []key.Binding
	switch t {
	case tabChannels:
		local = []key.Binding{k.Up, k.Down, k.Join, k.Leave}
	case tabContext:
		local = []key.Binding{k.Broadcast, k.Template}
	case tabIntents:
		local = []key.Binding{k.CycleUp, k.CycleDown, k.Raise, k.FindIntent}
	}
	return append(local, k.NextTab, k.Dismiss, k.Quit)
}

// renderHelp renders bindings as a single muted line.
func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.TextMutedStyle.Render(strings.Join(parts, " • "))
}
