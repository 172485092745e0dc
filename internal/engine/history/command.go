package history

import (
	"fmt"

	"github.com/dshills/revise/internal/engine/buffer"
)

// Command represents a composable edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// SpliceCommand replaces an inclusive line range with new lines.
// It records the old lines on first execution so it can be undone.
type SpliceCommand struct {
	Start    int // 1-based first line of the replaced range
	End      int // 1-based last line of the replaced range, inclusive
	NewLines []string

	oldLines  []string
	applied   bool
	collapsed bool // the splice emptied the buffer, leaving the implicit empty line
}

// NewSplice creates a splice command for lines [start, end].
func NewSplice(start, end int, newLines []string) *SpliceCommand {
	return &SpliceCommand{Start: start, End: end, NewLines: newLines}
}

// Execute applies the splice to the buffer.
func (c *SpliceCommand) Execute(buf *buffer.Buffer) error {
	old, err := buf.Lines(c.Start, c.End)
	if err != nil {
		return fmt.Errorf("splice lines %d-%d: %w", c.Start, c.End, err)
	}

	wholeBuffer := c.Start == 1 && c.End == buf.LineCount()

	if err := buf.SetLines(c.Start, c.End, c.NewLines); err != nil {
		return fmt.Errorf("splice lines %d-%d: %w", c.Start, c.End, err)
	}

	c.oldLines = old
	c.applied = true
	c.collapsed = len(c.NewLines) == 0 && wholeBuffer
	return nil
}

// Undo restores the original lines.
func (c *SpliceCommand) Undo(buf *buffer.Buffer) error {
	if !c.applied {
		return nil
	}

	if c.collapsed {
		// Deleting every line leaves the implicit empty line behind; replace
		// it instead of inserting around it.
		if err := buf.SetLines(1, 1, c.oldLines); err != nil {
			return fmt.Errorf("undo splice: %w", err)
		}
		return nil
	}

	if len(c.NewLines) == 0 {
		// The splice removed the range; the old lines go back in front of
		// what used to follow them.
		if err := buf.InsertLines(c.Start, c.oldLines); err != nil {
			return fmt.Errorf("undo splice: %w", err)
		}
		return nil
	}

	end := c.Start + len(c.NewLines) - 1
	if err := buf.SetLines(c.Start, end, c.oldLines); err != nil {
		return fmt.Errorf("undo splice: %w", err)
	}
	return nil
}

// Description returns a human-readable description.
func (c *SpliceCommand) Description() string {
	if c.Start == c.End {
		return fmt.Sprintf("replace line %d", c.Start)
	}
	return fmt.Sprintf("replace lines %d-%d", c.Start, c.End)
}

// CompoundCommand groups multiple commands into one undo unit.
type CompoundCommand struct {
	name string
	cmds []Command
}

// NewCompoundCommand creates a compound command from the given commands.
func NewCompoundCommand(name string, cmds ...Command) *CompoundCommand {
	return &CompoundCommand{name: name, cmds: cmds}
}

// Execute runs all commands in order. On failure, already-executed commands
// are undone so the buffer is left unchanged.
func (c *CompoundCommand) Execute(buf *buffer.Buffer) error {
	for i, cmd := range c.cmds {
		if err := cmd.Execute(buf); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.cmds[j].Undo(buf)
			}
			return err
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer) error {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the group name.
func (c *CompoundCommand) Description() string {
	return c.name
}

// Len returns the number of grouped commands.
func (c *CompoundCommand) Len() int {
	return len(c.cmds)
}
