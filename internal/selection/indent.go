package selection

import "strings"

// LeadingIndent returns the run of spaces and tabs at the start of line.
func LeadingIndent(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

// PreserveIndent re-derives the indentation of each replacement line from the
// positionally corresponding original line. Line i of the result takes the
// indentation of original line i; replacement lines past the end of the
// original keep the last original indentation. Blank lines stay blank.
func PreserveIndent(original, replacement []string) []string {
	if len(original) == 0 {
		out := make([]string, len(replacement))
		copy(out, replacement)
		return out
	}

	out := make([]string, len(replacement))
	for i, line := range replacement {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}

		src := i
		if src >= len(original) {
			src = len(original) - 1
		}
		out[i] = LeadingIndent(original[src]) + strings.TrimLeft(line, " \t")
	}
	return out
}
