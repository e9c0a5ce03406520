package editor

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "marker with body",
			input:     "TITLE: Meeting Notes\nAgenda for today",
			wantTitle: "Meeting Notes",
			wantBody:  "Agenda for today",
		},
		{
			name:      "case insensitive marker",
			input:     "title: lowercase\nbody",
			wantTitle: "lowercase",
			wantBody:  "body",
		},
		{
			name:      "marker only, no newline yet",
			input:     "TITLE: Partial",
			wantTitle: "Partial",
			wantBody:  "",
		},
		{
			name:      "no marker",
			input:     "Just a body\nwith lines",
			wantTitle: "",
			wantBody:  "Just a body\nwith lines",
		},
		{
			name:      "marker not at start is ignored",
			input:     "Body first\nTITLE: Not A Title",
			wantTitle: "",
			wantBody:  "Body first\nTITLE: Not A Title",
		},
		{
			name:      "blank lines after marker trimmed",
			input:     "TITLE: Hi\n\n\nBody text",
			wantTitle: "Hi",
			wantBody:  "Body text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := ExtractTitle(tt.input)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestExtractTitleIdempotent(t *testing.T) {
	input := "TITLE: Stable\nBody content here"

	title1, body1 := ExtractTitle(input)
	title2, body2 := ExtractTitle(body1)

	if title1 != "Stable" {
		t.Fatalf("first extraction title = %q", title1)
	}
	if title2 != "" {
		t.Errorf("second extraction found a title %q in stripped body", title2)
	}
	if body2 != body1 {
		t.Errorf("second extraction changed body: %q -> %q", body1, body2)
	}
}

func TestDocumentReplaceRange(t *testing.T) {
	doc := NewDocument("01234567890123456789")

	got := doc.ReplaceRange(5, 10, "XY")

	if doc.Content() != "01234XY0123456789" {
		t.Errorf("content = %q", doc.Content())
	}
	if got.From != 5 || got.To != 7 {
		t.Errorf("new range = [%d,%d), want [5,7)", got.From, got.To)
	}
}

func TestDocumentReplaceRangeClampsStaleBounds(t *testing.T) {
	doc := NewDocument("short")

	// Range captured against a longer document before concurrent edits.
	got := doc.ReplaceRange(3, 50, "END")

	if doc.Content() != "shoEND" {
		t.Errorf("content = %q, want %q", doc.Content(), "shoEND")
	}
	if got.To != 6 {
		t.Errorf("range end = %d, want 6", got.To)
	}
}

func TestReconcilerSelectionMode(t *testing.T) {
	doc := NewDocument("aaaa SELECTED bbbb")
	sel := doc.Selection(5, 13)
	if sel.Text != "SELECTED" {
		t.Fatalf("selection text = %q", sel.Text)
	}

	r := NewReconciler(doc, &sel)

	// Streamed render steps grow the replacement; each step targets the span
	// produced by the previous one.
	r.Write("new")
	r.Write("new text")
	r.Write("new text, final")

	if doc.Content() != "aaaa new text, final bbbb" {
		t.Errorf("content = %q", doc.Content())
	}
}

func TestReconcilerWholeDocumentMode(t *testing.T) {
	doc := NewDocument("old content")
	r := NewReconciler(doc, nil)

	r.Write("fresh")
	if doc.Content() != "fresh" {
		t.Errorf("content = %q", doc.Content())
	}
}

func TestSelectionValidate(t *testing.T) {
	if err := (SelectionRange{From: 2, To: 1}).Validate(); err == nil {
		t.Error("inverted range should fail validation")
	}
	if err := (SelectionRange{From: -1, To: 3}).Validate(); err == nil {
		t.Error("negative bound should fail validation")
	}
	if err := (SelectionRange{From: 0, To: 0}).Validate(); err != nil {
		t.Errorf("empty range should validate, got %v", err)
	}
}
