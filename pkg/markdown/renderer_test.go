package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading and emphasis",
			input:    "# Title\n\nSome **bold** text",
			contains: []string{"<h1>", "Title", "<strong>bold</strong>"},
		},
		{
			name:     "gfm strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "hard line break",
			input:    "line one\nline two",
			contains: []string{"<br"},
		},
		{
			name:     "unclosed code fence on partial buffer",
			input:    "```go\nfunc main() {",
			contains: []string{"<pre>", "func main() {"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Render(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%q) = %q, missing %q", tt.input, got, want)
				}
			}
		})
	}
}
