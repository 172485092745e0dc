package preview

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen shows a diff in the terminal and waits for an accept or reject
// keypress.
type Screen struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewScreen creates a screen on the real terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("preview screen: %w", err)
	}
	return &Screen{screen: s}, nil
}

// NewWithScreen wraps an existing tcell screen. Used by tests with a
// simulation screen.
func NewWithScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

var (
	styleHeader = tcell.StyleDefault.Reverse(true)
	styleDelete = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleInsert = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFooter = tcell.StyleDefault.Dim(true)
)

// Confirm displays the diff and blocks until the user accepts (y, Enter) or
// rejects (n, q, Escape). It returns true on accept. The screen is restored
// before returning.
func (s *Screen) Confirm(title string, ops []Op) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return false, fmt.Errorf("preview screen: %w", err)
	}
	defer s.screen.Fini()

	offset := 0
	for {
		s.draw(title, ops, offset)

		ev := s.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		_, height := s.screen.Size()
		body := height - 2 // header and footer rows
		switch {
		case key.Key() == tcell.KeyEnter || key.Rune() == 'y':
			return true, nil
		case key.Key() == tcell.KeyEscape || key.Rune() == 'n' || key.Rune() == 'q':
			return false, nil
		case key.Key() == tcell.KeyDown || key.Rune() == 'j':
			if offset < len(ops)-body {
				offset++
			}
		case key.Key() == tcell.KeyUp || key.Rune() == 'k':
			if offset > 0 {
				offset--
			}
		}
	}
}

func (s *Screen) draw(title string, ops []Op, offset int) {
	s.screen.Clear()
	width, height := s.screen.Size()

	s.puts(0, 0, width, title, styleHeader)

	body := height - 2
	for row := 0; row < body; row++ {
		i := offset + row
		if i >= len(ops) {
			break
		}
		op := ops[i]

		style := tcell.StyleDefault
		switch op.Kind {
		case OpDelete:
			style = styleDelete
		case OpInsert:
			style = styleInsert
		}
		s.puts(0, row+1, width, string(op.Marker())+" "+op.Text, style)
	}

	s.puts(0, height-1, width, "y/enter apply   n/q discard   j/k scroll", styleFooter)
	s.screen.Show()
}

func (s *Screen) puts(x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			break
		}
		s.screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.screen.SetContent(col, y, ' ', nil, style)
	}
}
