package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrClosed       = errors.New("buffer closed")
	ErrReadOnly     = errors.New("buffer not editable")
	ErrLineRange    = errors.New("line out of range")
	ErrRangeInvalid = errors.New("invalid line range")
)

// Revision identifies a buffer state. It increases by one on every mutation.
type Revision uint64

// Buffer is a line-oriented text buffer.
// All methods are safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	lines    []string
	path     string
	filetype string
	readOnly bool
	closed   bool
	revision Revision
}

// New creates an empty buffer containing a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines: []string{""},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// FromString creates a buffer from text. Line endings are normalized to LF
// before splitting.
func FromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	b.lines = strings.Split(s, "\n")
	return b
}

// FromLines creates a buffer from a slice of lines. The slice is copied.
func FromLines(lines []string, opts ...Option) *Buffer {
	b := New(opts...)
	if len(lines) > 0 {
		b.lines = make([]string, len(lines))
		copy(b.lines, lines)
	}
	return b
}

// Read Operations

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of line n (1-based, without newline).
func (b *Buffer) Line(n int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return "", ErrClosed
	}
	if n < 1 || n > len(b.lines) {
		return "", ErrLineRange
	}
	return b.lines[n-1], nil
}

// Lines returns a copy of lines [start, end], both 1-based and inclusive.
func (b *Buffer) Lines(start, end int) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, ErrClosed
	}
	if err := b.checkRange(start, end); err != nil {
		return nil, err
	}

	out := make([]string, end-start+1)
	copy(out, b.lines[start-1:end])
	return out, nil
}

// Text returns the full buffer content with lines joined by \n.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// Write Operations

// SetLines replaces lines [start, end] (1-based, inclusive) with repl.
// The replacement may have any length; the buffer grows or shrinks to fit.
// Replacing every line with nothing leaves one empty line behind.
func (b *Buffer) SetLines(start, end int, repl []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.readOnly {
		return ErrReadOnly
	}
	if err := b.checkRange(start, end); err != nil {
		return err
	}

	next := make([]string, 0, len(b.lines)-(end-start+1)+len(repl))
	next = append(next, b.lines[:start-1]...)
	next = append(next, repl...)
	next = append(next, b.lines[end:]...)
	if len(next) == 0 {
		next = []string{""}
	}

	b.lines = next
	b.revision++
	return nil
}

// InsertLines inserts lines before line n (1-based). n may be LineCount()+1
// to append at the end.
func (b *Buffer) InsertLines(n int, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.readOnly {
		return ErrReadOnly
	}
	if n < 1 || n > len(b.lines)+1 {
		return ErrLineRange
	}
	if len(lines) == 0 {
		return nil
	}

	next := make([]string, 0, len(b.lines)+len(lines))
	next = append(next, b.lines[:n-1]...)
	next = append(next, lines...)
	next = append(next, b.lines[n-1:]...)

	b.lines = next
	b.revision++
	return nil
}

// Buffer State

// Revision returns the current revision.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Path returns the file path associated with the buffer, if any.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Filetype returns the filetype hint associated with the buffer, if any.
func (b *Buffer) Filetype() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filetype
}

// ReadOnly returns true if the buffer rejects mutations.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly toggles the read-only flag.
func (b *Buffer) SetReadOnly(ro bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = ro
}

// Valid returns true while the buffer has not been closed.
func (b *Buffer) Valid() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.closed
}

// Close invalidates the buffer. All subsequent reads and writes fail with
// ErrClosed. Closing twice is a no-op.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// checkRange validates a 1-based inclusive line range. Caller holds the lock.
func (b *Buffer) checkRange(start, end int) error {
	if start < 1 || end > len(b.lines) {
		return ErrLineRange
	}
	if start > end {
		return ErrRangeInvalid
	}
	return nil
}
