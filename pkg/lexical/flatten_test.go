package lexical

import "testing"

func TestToMarkdownPassthrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "just some notes"},
		{"markdown", "# Heading\n\n- item"},
		{"invalid json with root prefix", `{"root": not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMarkdown(tt.input); got != tt.input {
				t.Errorf("ToMarkdown(%q) = %q, want passthrough", tt.input, got)
			}
		})
	}
}

func TestToMarkdownFlattensTree(t *testing.T) {
	input := `{"root":{"type":"root","children":[
		{"type":"heading","tag":"h2","children":[{"type":"text","text":"Plan"}]},
		{"type":"paragraph","children":[
			{"type":"text","text":"Read "},
			{"type":"text","text":"carefully","format":1}
		]},
		{"type":"list","listType":"check","children":[
			{"type":"listitem","checked":true,"children":[{"type":"text","text":"done"}]},
			{"type":"listitem","children":[{"type":"text","text":"todo"}]}
		]}
	]}}`

	want := "## Plan\n\nRead **carefully**\n\n- [x] done\n- [ ] todo\n"
	if got := ToMarkdown(input); got != want {
		t.Errorf("ToMarkdown() =\n%q\nwant\n%q", got, want)
	}
}

func TestToMarkdownLink(t *testing.T) {
	input := `{"root":{"type":"root","children":[
		{"type":"paragraph","children":[
			{"type":"link","url":"https://example.com","children":[{"type":"text","text":"site"}]}
		]}
	]}}`

	want := "[site](https://example.com)\n"
	if got := ToMarkdown(input); got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}
