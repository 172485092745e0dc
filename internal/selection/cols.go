package selection

// Codepoint column helpers. A column is an index into the line's codepoint
// sequence, not its bytes.

// PrefixCols returns the first col codepoints of line.
func PrefixCols(line string, col int) string {
	if col <= 0 {
		return ""
	}
	i := 0
	for pos := range line {
		if i == col {
			return line[:pos]
		}
		i++
	}
	return line
}

// SuffixCols returns the codepoints of line from column col to the end.
func SuffixCols(line string, col int) string {
	if col <= 0 {
		return line
	}
	i := 0
	for pos := range line {
		if i == col {
			return line[pos:]
		}
		i++
	}
	return ""
}

// SliceCols returns the codepoints of line in columns [from, to], inclusive.
// A line shorter than from yields the empty string.
func SliceCols(line string, from, to int) string {
	if to < from {
		return ""
	}
	return PrefixCols(SuffixCols(line, from), to-from+1)
}
