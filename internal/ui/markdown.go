// ABOUTME: Markdown rendering for capability descriptions and doc bodies
// ABOUTME: Wraps glamour with a width suited to prose tool descriptions
package ui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

// maxDescriptionWidth caps the wrap width. Capability descriptions are
// short prose paragraphs and read poorly stretched across a wide
// monitor, so narrow terminals get their real width and wide ones get
// a readable column.
const maxDescriptionWidth = 100

// RenderMarkdown renders a capability's markdown body for terminal
// display. When raw is true, returns content unchanged (for piping).
// Falls back to raw content on rendering errors.
func RenderMarkdown(content string, raw bool) string {
	if raw {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(descriptionWidth()),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}

func descriptionWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return 80
	}
	if width > maxDescriptionWidth {
		return maxDescriptionWidth
	}
	return width
}
