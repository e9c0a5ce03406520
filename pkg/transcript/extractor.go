package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Method values reported in a Result.
const (
	MethodCaptions = "yt-dlp"          // real caption track
	MethodMetadata = "yt-dlp-metadata" // metadata-only fallback summary
)

// Result is the outcome of one extraction. Ephemeral; callers fold the text
// into a prompt context block and discard it.
type Result struct {
	VideoID  string `json:"video_id"`
	Text     string `json:"transcript"`
	Language string `json:"language,omitempty"`
	Method   string `json:"method"`
}

// videoMetadata is the subset of yt-dlp --dump-json output used by the
// fallback summary.
type videoMetadata struct {
	Title       string `json:"title"`
	Uploader    string `json:"uploader"`
	Duration    int    `json:"duration"`
	UploadDate  string `json:"upload_date"`
	Description string `json:"description"`
	ViewCount   int64  `json:"view_count"`
}

// Extractor retrieves video transcripts with yt-dlp. Caption languages are
// tried in preference order; each language checks several candidate subtitle
// file variants and the first hit wins. When no captions exist the extractor
// falls back to a metadata-only summary.
type Extractor struct {
	Languages []string
	binary    string
	workDir   string

	// runCommand is swapped out by tests.
	runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewExtractor(languages []string) *Extractor {
	if len(languages) == 0 {
		languages = []string{"en", "en-US", "en-GB"}
	}
	return &Extractor{
		Languages: languages,
		binary:    "yt-dlp",
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// Extract resolves the video ID and retrieves a transcript.
// Failure taxonomy: ErrInvalidURL when no identifier resolves,
// ErrToolUnavailable when yt-dlp is missing, ErrNoTranscript when neither
// captions nor the metadata fallback produced anything.
func (e *Extractor) Extract(ctx context.Context, url string) (*Result, error) {
	videoID, err := ResolveVideoID(url)
	if err != nil {
		return nil, err
	}

	res, err := e.fetchCaptions(ctx, videoID)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrToolUnavailable) {
		return nil, err
	}

	return e.fetchMetadataSummary(ctx, videoID)
}

func (e *Extractor) fetchCaptions(ctx context.Context, videoID string) (*Result, error) {
	dir, err := os.MkdirTemp(e.workDir, "captions-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	outTemplate := filepath.Join(dir, videoID)
	args := []string{
		"--skip-download",
		"--write-subs", "--write-auto-subs",
		"--sub-langs", strings.Join(e.Languages, ","),
		"--sub-format", "srt/vtt",
		"-o", outTemplate,
		"https://www.youtube.com/watch?v=" + videoID,
	}

	if _, err := e.runCommand(ctx, e.binary, args...); err != nil {
		if isToolMissing(err) {
			return nil, fmt.Errorf("%w: %s", ErrToolUnavailable, e.binary)
		}
		return nil, fmt.Errorf("caption fetch failed: %w", err)
	}

	var attempted []string
	for _, lang := range e.Languages {
		for _, candidate := range candidateFiles(outTemplate, lang) {
			data, err := os.ReadFile(candidate)
			if err != nil {
				attempted = append(attempted, filepath.Base(candidate))
				continue
			}
			text := NormalizeSubtitles(string(data))
			if text == "" {
				continue
			}
			return &Result{
				VideoID:  videoID,
				Text:     text,
				Language: lang,
				Method:   MethodCaptions,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %s", ErrNoTranscript, strings.Join(attempted, ", "))
}

// candidateFiles lists subtitle filenames to probe for one language, most
// specific first.
func candidateFiles(base, lang string) []string {
	return []string{
		base + "." + lang + ".srt",
		base + "." + lang + ".vtt",
		base + ".srt",
		base + ".vtt",
	}
}

func (e *Extractor) fetchMetadataSummary(ctx context.Context, videoID string) (*Result, error) {
	out, err := e.runCommand(ctx, e.binary,
		"--dump-json", "--skip-download",
		"https://www.youtube.com/watch?v="+videoID,
	)
	if err != nil {
		if isToolMissing(err) {
			return nil, fmt.Errorf("%w: %s", ErrToolUnavailable, e.binary)
		}
		return nil, fmt.Errorf("%w: metadata fallback failed: %v", ErrNoTranscript, err)
	}

	var meta videoMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("%w: parse metadata: %v", ErrNoTranscript, err)
	}

	return &Result{
		VideoID: videoID,
		Text:    summarizeMetadata(meta),
		Method:  MethodMetadata,
	}, nil
}

func summarizeMetadata(meta videoMetadata) string {
	var sb strings.Builder
	sb.WriteString("No transcript was available for this video. Video metadata:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", meta.Title))
	sb.WriteString(fmt.Sprintf("Uploader: %s\n", meta.Uploader))
	sb.WriteString(fmt.Sprintf("Duration: %ds\n", meta.Duration))
	sb.WriteString(fmt.Sprintf("Upload date: %s\n", meta.UploadDate))
	sb.WriteString(fmt.Sprintf("Views: %d\n", meta.ViewCount))
	if meta.Description != "" {
		sb.WriteString("Description: " + meta.Description + "\n")
	}
	return sb.String()
}

func isToolMissing(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)
}
