package prompt

import (
	"fmt"
	"strings"

	"ai-noteflow-be/pkg/editor"
	"ai-noteflow-be/pkg/lexical"
)

// Attachment is one uploaded file offered as prompt context. Content is empty
// for binary files with no extracted text; those are skipped.
type Attachment struct {
	Name    string
	Content string
}

// Transcript is extracted video caption text offered as prompt context.
type Transcript struct {
	VideoID string
	Text    string
}

// Assembler builds the outbound prompt from the note body, optional captured
// selection, attachments, and transcripts. Block emission order is fixed
// (notes, context, selection) to match the server-side prompt contract, and
// empty categories produce no wrapper at all. Same inputs always produce
// byte-identical output.
type Assembler struct {
	body        string
	selection   *editor.SelectionRange
	attachments []Attachment
	transcripts []Transcript
}

func NewAssembler(body string) *Assembler {
	return &Assembler{body: body}
}

func (a *Assembler) WithSelection(sel *editor.SelectionRange) *Assembler {
	a.selection = sel
	return a
}

func (a *Assembler) WithAttachments(attachments []Attachment) *Assembler {
	a.attachments = attachments
	return a
}

func (a *Assembler) WithTranscripts(transcripts []Transcript) *Assembler {
	a.transcripts = transcripts
	return a
}

// Assemble renders the prompt. Rich-text note bodies are flattened to
// markdown first so the model never sees editor JSON.
func (a *Assembler) Assemble() string {
	var sb strings.Builder

	a.writeNotes(&sb)
	a.writeContext(&sb)
	a.writeSelection(&sb)

	return sb.String()
}

func (a *Assembler) writeNotes(sb *strings.Builder) {
	if a.body == "" {
		return
	}
	sb.WriteString("<notes>")
	sb.WriteString(lexical.ToMarkdown(a.body))
	sb.WriteString("</notes>")
}

func (a *Assembler) writeContext(sb *strings.Builder) {
	var parts []string

	for _, att := range a.attachments {
		if att.Content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("File: %s\n%s", att.Name, att.Content))
	}
	for _, tr := range a.transcripts {
		if tr.Text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Video transcript (%s):\n%s", tr.VideoID, tr.Text))
	}

	if len(parts) == 0 {
		return
	}
	sb.WriteString("<context>")
	sb.WriteString(strings.Join(parts, "\n\n"))
	sb.WriteString("</context>")
}

func (a *Assembler) writeSelection(sb *strings.Builder) {
	if a.selection == nil || a.selection.Text == "" {
		return
	}
	sb.WriteString("<selection>")
	sb.WriteString(a.selection.Text)
	sb.WriteString("</selection>")
}
