package selection

import "fmt"

// Mode is the selection style, governing how columns are interpreted.
type Mode uint8

const (
	// ModeChar is a character-wise selection with inclusive column bounds.
	ModeChar Mode = iota
	// ModeLine is a line-wise selection; columns are ignored.
	ModeLine
	// ModeBlock is a rectangular selection applied per line.
	ModeBlock
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeChar:
		return "char"
	case ModeLine:
		return "line"
	case ModeBlock:
		return "block"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. It accepts the long names used in
// configuration ("char", "line", "block") and the single-letter editor
// conventions ("v", "V", "b").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "char", "c", "v":
		return ModeChar, nil
	case "line", "l", "V":
		return ModeLine, nil
	case "block", "b":
		return ModeBlock, nil
	default:
		return ModeChar, fmt.Errorf("unknown selection mode %q", s)
	}
}
