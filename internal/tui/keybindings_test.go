package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/workbench/pkg/tuitest"
)

func TestKeyMap_helpFor(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		tab  tab
		want []string
	}{
		{tab: tabChannels, want: []string{"join", "leave"}},
		{tab: tabContext, want: []string{"broadcast", "next template"}},
		{tab: tabIntents, want: []string{"raise", "find apps"}},
	}

	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			help := tuitest.StripANSI(renderHelp(keys.helpFor(tt.tab)))
			for _, want := range tt.want {
				assert.Contains(t, help, want)
			}
			assert.Contains(t, help, "dismiss")
			assert.Contains(t, help, "quit")
		})
	}
}
