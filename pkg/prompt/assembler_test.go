package prompt

import (
	"strings"
	"testing"

	"ai-noteflow-be/pkg/editor"
)

func TestAssembleBodyOnly(t *testing.T) {
	got := NewAssembler("X").Assemble()
	if got != "<notes>X</notes>" {
		t.Fatalf("Assemble() = %q, want %q", got, "<notes>X</notes>")
	}
	for _, tag := range []string{"<context>", "<selection>"} {
		if strings.Contains(got, tag) {
			t.Errorf("empty category emitted wrapper %s", tag)
		}
	}
}

func TestAssembleOrdering(t *testing.T) {
	sel := &editor.SelectionRange{Text: "S"}
	got := NewAssembler("B").
		WithSelection(sel).
		WithAttachments([]Attachment{{Name: "f.txt", Content: "C"}}).
		Assemble()

	notesIdx := strings.Index(got, "<notes>")
	ctxIdx := strings.Index(got, "<context>")
	selIdx := strings.Index(got, "<selection>")

	if notesIdx < 0 || ctxIdx < 0 || selIdx < 0 {
		t.Fatalf("missing wrapper in %q", got)
	}
	if !(notesIdx < ctxIdx && ctxIdx < selIdx) {
		t.Errorf("wrapper order wrong in %q", got)
	}
	if !strings.Contains(got[ctxIdx:selIdx], "C") {
		t.Errorf("attachment content not inside context wrapper: %q", got)
	}
	if !strings.Contains(got[ctxIdx:selIdx], "f.txt") {
		t.Errorf("attachment name not inside context wrapper: %q", got)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	build := func() string {
		return NewAssembler("body").
			WithAttachments([]Attachment{{Name: "a.txt", Content: "one"}, {Name: "b.txt", Content: "two"}}).
			WithTranscripts([]Transcript{{VideoID: "dQw4w9WgXcQ", Text: "hello world"}}).
			Assemble()
	}
	first := build()
	for i := 0; i < 5; i++ {
		if build() != first {
			t.Fatal("Assemble() is not deterministic")
		}
	}
}

func TestAssembleSkipsEmptyContent(t *testing.T) {
	got := NewAssembler("body").
		WithAttachments([]Attachment{{Name: "img.png"}}).
		WithTranscripts([]Transcript{{VideoID: "x"}}).
		Assemble()

	if strings.Contains(got, "<context>") {
		t.Errorf("content-less attachments/transcripts should not emit a context block: %q", got)
	}
}

func TestAssembleFlattensRichTextBody(t *testing.T) {
	body := `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"hi"}]}]}}`
	got := NewAssembler(body).Assemble()

	if strings.Contains(got, `"root"`) {
		t.Errorf("editor JSON leaked into prompt: %q", got)
	}
	if !strings.Contains(got, "hi") {
		t.Errorf("flattened text missing from prompt: %q", got)
	}
}
