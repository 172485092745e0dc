package transform

import "strings"

// Extract strips one surrounding markdown code fence from a provider
// response. Providers frequently wrap their output in ```lang ... ```
// even when asked not to. Input without a fence pair is returned unchanged.
func Extract(s string) string {
	trimmed := strings.TrimSpace(s)
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return s
	}

	first := strings.TrimSpace(lines[0])
	last := strings.TrimSpace(lines[len(lines)-1])
	if !strings.HasPrefix(first, "```") || last != "```" {
		return s
	}

	return strings.Join(lines[1:len(lines)-1], "\n")
}
