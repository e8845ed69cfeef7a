package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/workbench/internal/core/styles"
)

const fallbackMarkdown = `# FDC3 API not detected!

The workbench talks to a desktop agent through the FDC3 interop API, and none
attached before the detection timeout elapsed.

- Launch the workbench from inside a desktop agent, or
- enable the local agent with ` + "`agent.enabled: true`" + ` in the config file.

Learn more at https://fdc3.finos.org
`

// renderFallback renders the not-detected screen, falling back to the raw
// markdown when it cannot be styled.
func renderFallback(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width, 40)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return fallbackMarkdown
	}

	rendered, err := renderer.Render(fallbackMarkdown)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return fallbackMarkdown
	}
	return rendered
}
