package streaming

import "testing"

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantNil    bool
		wantErr    bool
		wantDone   bool
		wantDelta  string
		wantFinish string
	}{
		{
			name:      "payload record with delta",
			line:      `data: {"choices":[{"delta":{"content":"Hello"}}]}`,
			wantDelta: "Hello",
		},
		{
			name:     "done sentinel",
			line:     "data: [DONE]",
			wantDone: true,
		},
		{
			name:       "finish reason without content",
			line:       `data: {"choices":[{"delta":{},"finish_reason":"stop"}]}`,
			wantFinish: "stop",
		},
		{
			name:    "blank line ignored",
			line:    "",
			wantNil: true,
		},
		{
			name:    "comment line ignored",
			line:    ": keep-alive",
			wantNil: true,
		},
		{
			name:    "malformed json reported",
			line:    `data: {"choices":[`,
			wantErr: true,
		},
		{
			name:      "crlf terminated record",
			line:      "data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\r",
			wantDelta: "x",
		},
		{
			name:    "empty choices tolerated",
			line:    `data: {"choices":[]}`,
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := DecodeLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected decode error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLine() error: %v", err)
			}
			if tt.wantNil {
				if evt != nil {
					t.Fatalf("expected skipped line, got %+v", evt)
				}
				return
			}
			if evt == nil {
				t.Fatal("expected event, got nil")
			}
			if evt.Done != tt.wantDone {
				t.Errorf("Done = %v, want %v", evt.Done, tt.wantDone)
			}
			if evt.Delta != tt.wantDelta {
				t.Errorf("Delta = %q, want %q", evt.Delta, tt.wantDelta)
			}
			if evt.FinishReason != tt.wantFinish {
				t.Errorf("FinishReason = %q, want %q", evt.FinishReason, tt.wantFinish)
			}
		})
	}
}

func TestAccumulatorEditModeDropsLeadingNewline(t *testing.T) {
	a := NewAccumulator(ModeEdit)
	a.Append("\n")
	if a.Markdown() != "" {
		t.Fatalf("leading newline should be discarded, got %q", a.Markdown())
	}

	a.Append("Improved text")
	a.Append("\n")
	if got := a.Markdown(); got != "Improved text\n" {
		t.Fatalf("Markdown() = %q, want %q", got, "Improved text\n")
	}
}

func TestAccumulatorGenerateModeKeepsNewline(t *testing.T) {
	a := NewAccumulator(ModeGenerate)
	a.Append("\n")
	a.Append("body")
	if got := a.Markdown(); got != "\nbody" {
		t.Fatalf("Markdown() = %q, want %q", got, "\nbody")
	}
}
