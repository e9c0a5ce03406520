package streaming

import (
	"errors"
	"io"
	"testing"
)

// chunkedReader serves predefined chunks one Read at a time, regardless of the
// caller's buffer size, to exercise boundary handling.
type chunkedReader struct {
	chunks []string
	pos    int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.chunks) {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[r.pos])
	r.pos++
	return n, nil
}

func collectLines(t *testing.T, chunks []string) []string {
	t.Helper()
	s := NewLineSplitter(&chunkedReader{chunks: chunks})
	var lines []string
	for {
		line, err := s.Next()
		if err == ErrDone {
			return lines
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		lines = append(lines, line)
	}
}

func TestLineSplitter(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{
			name:   "separator split across chunks",
			chunks: []string{"data: 1\nda", "ta: 2\n"},
			want:   []string{"data: 1", "data: 2"},
		},
		{
			name:   "single line across three chunks",
			chunks: []string{"ab", "c\nde", "f\n"},
			want:   []string{"abc", "def"},
		},
		{
			name:   "trailing line without separator flushed at EOF",
			chunks: []string{"alpha\nbet", "a"},
			want:   []string{"alpha", "beta"},
		},
		{
			name:   "multiple separators in one chunk",
			chunks: []string{"a\nb\nc\n"},
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "empty lines preserved",
			chunks: []string{"a\n\nb\n"},
			want:   []string{"a", "", "b"},
		},
		{
			name:   "empty stream",
			chunks: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectLines(t, tt.chunks)
			if len(got) != len(tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestLineSplitterPropagatesTransportError(t *testing.T) {
	wantErr := errors.New("connection reset")
	s := NewLineSplitter(&failingReader{data: "partial line", err: wantErr})

	_, err := s.Next()
	if !errors.Is(err, wantErr) {
		t.Fatalf("Next() error = %v, want %v", err, wantErr)
	}
}
