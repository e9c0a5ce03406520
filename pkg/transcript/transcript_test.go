package transcript

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url with extra params", "https://www.youtube.com/watch?list=PL1&v=dQw4w9WgXcQ&t=1s", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"unrelated url", "https://example.com/video", "", true},
		{"too short id", "abc123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVideoID(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("err = %v, want ErrInvalidURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveVideoID() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveVideoID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeSubtitlesVTT(t *testing.T) {
	fixture := strings.Join([]string{
		"WEBVTT",
		"Kind: captions",
		"Language: en",
		"",
		"1",
		"00:00:01.000 --> 00:00:04.000",
		"Hello <b>world</b>",
		"",
		"2",
		"01:05.000 --> 01:08.500",
		"this  is   a test",
		"",
	}, "\n")

	want := "Hello world this is a test"
	if got := NormalizeSubtitles(fixture); got != want {
		t.Errorf("NormalizeSubtitles() = %q, want %q", got, want)
	}
}

func TestNormalizeSubtitlesSRT(t *testing.T) {
	fixture := strings.Join([]string{
		"1",
		"00:00:01,000 --> 00:00:03,000",
		"First cue",
		"",
		"2",
		"00:00:03,000 --> 00:00:05,000",
		"{\\an8}Second <i>cue</i>",
		"",
	}, "\n")

	want := "First cue Second cue"
	if got := NormalizeSubtitles(fixture); got != want {
		t.Errorf("NormalizeSubtitles() = %q, want %q", got, want)
	}
}

// stubRunner fakes yt-dlp invocations. For caption runs it drops a subtitle
// file next to the -o template; for --dump-json it returns canned metadata.
type stubRunner struct {
	subtitleSuffix string // e.g. ".en.vtt"; empty writes nothing
	subtitleData   string
	metadataJSON   string
	calls          [][]string
}

func (s *stubRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, args)

	for _, a := range args {
		if a == "--dump-json" {
			return []byte(s.metadataJSON), nil
		}
	}

	if s.subtitleSuffix != "" {
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				if err := os.WriteFile(args[i+1]+s.subtitleSuffix, []byte(s.subtitleData), 0o644); err != nil {
					return nil, err
				}
			}
		}
	}
	return nil, nil
}

func TestExtractUsesFirstMatchingLanguage(t *testing.T) {
	stub := &stubRunner{
		subtitleSuffix: ".en.vtt",
		subtitleData:   "WEBVTT\n\n00:01.000 --> 00:02.000\nhello there\n",
	}
	e := NewExtractor([]string{"en", "id"})
	e.runCommand = stub.run

	res, err := e.Extract(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if res.Method != MethodCaptions {
		t.Errorf("Method = %q, want %q", res.Method, MethodCaptions)
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en", res.Language)
	}
	if res.Text != "hello there" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestExtractFallsBackToMetadata(t *testing.T) {
	stub := &stubRunner{
		metadataJSON: `{"title":"Some Talk","uploader":"conf","duration":60,"upload_date":"20240101","view_count":42}`,
	}
	e := NewExtractor(nil)
	e.runCommand = stub.run

	res, err := e.Extract(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if res.Method != MethodMetadata {
		t.Errorf("Method = %q, want %q", res.Method, MethodMetadata)
	}
	if !strings.Contains(res.Text, "Some Talk") {
		t.Errorf("summary missing title: %q", res.Text)
	}
	if !strings.Contains(res.Text, "No transcript was available") {
		t.Errorf("summary missing fallback notice: %q", res.Text)
	}
}

func TestExtractInvalidURL(t *testing.T) {
	e := NewExtractor(nil)
	_, err := e.Extract(context.Background(), "https://example.com/x")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("err = %v, want ErrInvalidURL", err)
	}
}

func TestExtractToolUnavailable(t *testing.T) {
	e := NewExtractor(nil)
	e.runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}

	_, err := e.Extract(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrToolUnavailable) {
		t.Fatalf("err = %v, want ErrToolUnavailable", err)
	}
}

func TestCandidateFileOrder(t *testing.T) {
	got := candidateFiles("/tmp/vid", "en")
	want := []string{"/tmp/vid.en.srt", "/tmp/vid.en.vtt", "/tmp/vid.srt", "/tmp/vid.vtt"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
