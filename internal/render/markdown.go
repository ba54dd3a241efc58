package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/foliate/pkg/api"
)

// Renderer turns raw markdown into styled terminal output. It is a
// pass-through collaborator: content goes in, renderable text comes out,
// and nothing here inspects session state.
type Renderer struct {
	width int
}

func New(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	return &Renderer{width: width}
}

// Render produces the preview for content under the given display
// settings. A renderer failure yields a visible placeholder instead of
// an error so editing is never blocked by the preview.
func (r *Renderer) Render(content string, s api.Settings) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styleFor(s.Theme)),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return placeholder(err)
	}
	out, err := tr.Render(content)
	if err != nil {
		return placeholder(err)
	}
	return out
}

func styleFor(t api.Theme) string {
	if t == api.ThemeDark {
		return "dark"
	}
	return "light"
}

func placeholder(err error) string {
	var b strings.Builder
	b.WriteString("preview unavailable: ")
	b.WriteString(fmt.Sprint(err))
	b.WriteString("\n\nyour text is safe; keep editing and try again\n")
	return b.String()
}
