package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts accumulating markdown into HTML for the editor surface.
// It always re-parses the whole buffer: partial constructs (unclosed fences,
// half-built lists) cannot be rendered correctly from a delta alone.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer with GitHub-flavored extensions and hard line
// breaks, matching how the editor treats single newlines.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
	}
}

// Render converts the full markdown buffer to HTML. If conversion fails on a
// partial buffer, the raw markdown is returned so the caller still has
// something to display.
func (r *Renderer) Render(md string) string {
	var out bytes.Buffer
	if err := r.md.Convert([]byte(md), &out); err != nil {
		return md
	}
	return out.String()
}
