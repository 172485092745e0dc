package selection

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/revise/internal/engine/buffer"
)

// Errors returned by capture.
var (
	// ErrNoSelection indicates the editor supplied no selection marks.
	ErrNoSelection = errors.New("no selection marks")
)

// Pos is a raw mark position: 1-based line, 0-based codepoint column.
// A zero Line means the mark is unset.
type Pos struct {
	Line int
	Col  int
}

// Selection is an immutable snapshot of one captured region.
//
// StartLine/EndLine are 1-based and inclusive with StartLine <= EndLine.
// Column semantics depend on Mode. Text is always re-derivable from the
// coordinates at capture time; the snapshot does not track later buffer
// edits.
type Selection struct {
	Buf       *buffer.Buffer
	StartLine int
	EndLine   int
	StartCol  int
	EndCol    int
	Mode      Mode
	Text      string
	Indent    string
}

// Capture normalizes raw selection marks into a Selection.
//
// If the marks are reversed (start after end), they are swapped first; block
// selections additionally swap columns so the rectangle is direction-agnostic.
func Capture(buf *buffer.Buffer, start, end Pos, mode Mode) (Selection, error) {
	if start.Line == 0 || end.Line == 0 {
		return Selection{}, ErrNoSelection
	}

	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col && mode == ModeChar) {
		start, end = end, start
	}

	lines, err := buf.Lines(start.Line, end.Line)
	if err != nil {
		return Selection{}, fmt.Errorf("capture lines %d-%d: %w", start.Line, end.Line, err)
	}

	sel := Selection{
		Buf:       buf,
		StartLine: start.Line,
		EndLine:   end.Line,
		StartCol:  start.Col,
		EndCol:    end.Col,
		Mode:      mode,
		Indent:    LeadingIndent(lines[0]),
	}

	switch mode {
	case ModeChar:
		sel.Text = captureChar(lines, start.Col, end.Col)

	case ModeLine:
		sel.StartCol = 0
		sel.EndCol = utf8.RuneCountInString(lines[len(lines)-1])
		sel.Text = strings.Join(lines, "\n")

	case ModeBlock:
		if sel.StartCol > sel.EndCol {
			sel.StartCol, sel.EndCol = sel.EndCol, sel.StartCol
		}
		cut := make([]string, len(lines))
		for i, line := range lines {
			cut[i] = SliceCols(line, sel.StartCol, sel.EndCol)
		}
		sel.Text = strings.Join(cut, "\n")

	default:
		return Selection{}, fmt.Errorf("capture: unknown mode %v", mode)
	}

	return sel, nil
}

// captureChar extracts character-wise text with inclusive column bounds.
func captureChar(lines []string, startCol, endCol int) string {
	if len(lines) == 1 {
		return SliceCols(lines[0], startCol, endCol)
	}

	out := make([]string, len(lines))
	out[0] = SuffixCols(lines[0], startCol)
	copy(out[1:len(lines)-1], lines[1:len(lines)-1])
	out[len(lines)-1] = PrefixCols(lines[len(lines)-1], endCol+1)
	return strings.Join(out, "\n")
}

// Lines returns the captured text split into lines.
func (s Selection) Lines() []string {
	return strings.Split(s.Text, "\n")
}

// Height returns the number of lines the selection spans.
func (s Selection) Height() int {
	return s.EndLine - s.StartLine + 1
}

// String returns a short description for diagnostics.
func (s Selection) String() string {
	return fmt.Sprintf("%s %d.%d-%d.%d", s.Mode, s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}
