package transcript

import "regexp"

// Recognized URL shapes, tried in order: canonical watch URL, short URL,
// embed URL, bare 11-character identifier.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?.*v=)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ResolveVideoID extracts the platform video identifier from a URL or bare ID.
func ResolveVideoID(url string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", ErrInvalidURL
}
