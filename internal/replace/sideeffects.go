package replace

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dshills/revise/internal/engine/buffer"
)

// Formatter formats a line range in a buffer after a replacement.
type Formatter interface {
	Format(ctx context.Context, buf *buffer.Buffer, startLine, endLine int) error
}

// Saver persists a buffer after a replacement.
type Saver interface {
	Save(ctx context.Context, buf *buffer.Buffer) error
}

// FormatFunc adapts a function to the Formatter interface.
type FormatFunc func(ctx context.Context, buf *buffer.Buffer, startLine, endLine int) error

// Format calls f.
func (f FormatFunc) Format(ctx context.Context, buf *buffer.Buffer, startLine, endLine int) error {
	return f(ctx, buf, startLine, endLine)
}

// SaveFunc adapts a function to the Saver interface.
type SaveFunc func(ctx context.Context, buf *buffer.Buffer) error

// Save calls f.
func (f SaveFunc) Save(ctx context.Context, buf *buffer.Buffer) error {
	return f(ctx, buf)
}

// CommandFormatter pipes the replaced line range through an external
// formatting command (stdin in, stdout out).
type CommandFormatter struct {
	Command string
	Args    []string
}

// Format runs the command over the given line range and writes the output
// back. The range is left untouched when the command fails.
func (c *CommandFormatter) Format(ctx context.Context, buf *buffer.Buffer, startLine, endLine int) error {
	if c.Command == "" {
		return nil
	}

	lines, err := buf.Lines(startLine, endLine)
	if err != nil {
		return fmt.Errorf("format range: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Command, c.Args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("formatter %s: %w", c.Command, err)
		}
		return fmt.Errorf("formatter %s: %s: %w", c.Command, msg, err)
	}

	formatted := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	return buf.SetLines(startLine, endLine, formatted)
}

// FileSaver persists the buffer to its associated path.
type FileSaver struct {
	// Perm is the file mode for newly created files. Zero means 0644.
	Perm os.FileMode
}

// Save writes the full buffer content to the buffer's path.
func (s *FileSaver) Save(_ context.Context, buf *buffer.Buffer) error {
	path := buf.Path()
	if path == "" {
		return fmt.Errorf("save: buffer has no path")
	}

	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	return os.WriteFile(path, []byte(buf.Text()), perm)
}
