package replace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/revise/internal/engine/buffer"
	"github.com/dshills/revise/internal/engine/history"
	"github.com/dshills/revise/internal/logging"
	"github.com/dshills/revise/internal/selection"
)

// Errors returned by Apply.
var (
	// ErrStaleSelection indicates the buffer changed between capture and
	// replacement, so the stored bounds no longer match the original text.
	ErrStaleSelection = errors.New("selection is stale")
)

// Spec describes one write-back: the target selection, the replacement text
// split into lines, and whether to re-derive indentation from the original.
type Spec struct {
	Sel      selection.Selection
	Lines    []string
	Reindent bool
}

// NewSpec builds a Spec from replacement text, splitting on \n.
func NewSpec(sel selection.Selection, text string, reindent bool) Spec {
	return Spec{
		Sel:      sel,
		Lines:    strings.Split(text, "\n"),
		Reindent: reindent,
	}
}

// Engine applies replacement specs to buffers.
type Engine struct {
	hist         *history.History
	formatter    Formatter
	saver        Saver
	log          *logging.Logger
	preserveUndo bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistory attaches an undo history. Replacements are recorded as single
// undo units.
func WithHistory(h *history.History) Option {
	return func(e *Engine) {
		e.hist = h
	}
}

// WithFormatter attaches a post-replacement formatting collaborator.
func WithFormatter(f Formatter) Option {
	return func(e *Engine) {
		e.formatter = f
	}
}

// WithSaver attaches a post-replacement persistence collaborator.
func WithSaver(s Saver) Option {
	return func(e *Engine) {
		e.saver = s
	}
}

// WithLogger sets the logger used for side-effect failures.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithoutUndo disables undo recording even when a history is attached.
func WithoutUndo() Option {
	return func(e *Engine) {
		e.preserveUndo = false
	}
}

// New creates a replacement engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:          logging.Null,
		preserveUndo: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Apply writes the replacement into the selection's buffer.
//
// Nothing is mutated if the buffer is closed or read-only, or if the buffer
// content under the selection no longer matches the captured text. On
// success, configured formatter and saver collaborators run best-effort.
func (e *Engine) Apply(ctx context.Context, spec Spec) error {
	buf := spec.Sel.Buf
	if buf == nil || !buf.Valid() {
		return fmt.Errorf("apply: %w", buffer.ErrClosed)
	}
	if buf.ReadOnly() {
		return fmt.Errorf("apply: %w", buffer.ErrReadOnly)
	}

	if err := e.validate(spec.Sel); err != nil {
		return err
	}

	lines := spec.Lines
	if len(lines) == 0 {
		lines = []string{""}
	}
	if spec.Reindent {
		lines = selection.PreserveIndent(spec.Sel.Lines(), lines)
	}

	cmds, err := buildCommands(spec.Sel, lines)
	if err != nil {
		return err
	}

	if err := e.execute(buf, cmds); err != nil {
		return err
	}

	endLine := spec.Sel.StartLine + len(lines) - 1
	if spec.Sel.Mode == selection.ModeBlock {
		endLine = spec.Sel.EndLine
	}
	e.runSideEffects(ctx, buf, spec.Sel.StartLine, endLine)
	return nil
}

// validate re-captures the selection bounds and compares against the stored
// text, failing before any mutation if the buffer moved underneath us.
func (e *Engine) validate(sel selection.Selection) error {
	current, err := selection.Capture(sel.Buf,
		selection.Pos{Line: sel.StartLine, Col: sel.StartCol},
		selection.Pos{Line: sel.EndLine, Col: sel.EndCol},
		sel.Mode)
	if err != nil {
		return fmt.Errorf("apply: %w", ErrStaleSelection)
	}
	if current.Text != sel.Text {
		return fmt.Errorf("apply: %w", ErrStaleSelection)
	}
	return nil
}

// buildCommands translates a mode-specific replacement into splice commands.
func buildCommands(sel selection.Selection, lines []string) ([]history.Command, error) {
	switch sel.Mode {
	case selection.ModeLine:
		region := make([]string, len(lines))
		copy(region, lines)
		return []history.Command{history.NewSplice(sel.StartLine, sel.EndLine, region)}, nil

	case selection.ModeChar:
		first, err := sel.Buf.Line(sel.StartLine)
		if err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}
		last, err := sel.Buf.Line(sel.EndLine)
		if err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}

		before := selection.PrefixCols(first, sel.StartCol)
		after := selection.SuffixCols(last, sel.EndCol+1)

		region := make([]string, len(lines))
		copy(region, lines)
		region[0] = before + region[0]
		region[len(region)-1] += after
		return []history.Command{history.NewSplice(sel.StartLine, sel.EndLine, region)}, nil

	case selection.ModeBlock:
		orig, err := sel.Buf.Lines(sel.StartLine, sel.EndLine)
		if err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}

		cmds := make([]history.Command, len(orig))
		for i, line := range orig {
			repl := ""
			if i < len(lines) {
				repl = lines[i]
			}
			next := selection.PrefixCols(line, sel.StartCol) + repl + selection.SuffixCols(line, sel.EndCol+1)
			cmds[i] = history.NewSplice(sel.StartLine+i, sel.StartLine+i, []string{next})
		}
		return cmds, nil

	default:
		return nil, fmt.Errorf("apply: unknown mode %v", sel.Mode)
	}
}

// execute runs the commands, grouped into one undo unit when a history is
// attached and undo preservation is enabled.
func (e *Engine) execute(buf *buffer.Buffer, cmds []history.Command) error {
	if e.hist == nil || !e.preserveUndo {
		for _, cmd := range cmds {
			if err := cmd.Execute(buf); err != nil {
				return err
			}
		}
		return nil
	}

	return e.hist.Transaction("ai replace", func() error {
		for _, cmd := range cmds {
			if err := e.hist.Execute(cmd, buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// runSideEffects invokes the optional formatter and saver. Failures are
// logged and never propagated; the replacement has already landed.
func (e *Engine) runSideEffects(ctx context.Context, buf *buffer.Buffer, startLine, endLine int) {
	if e.formatter != nil {
		if err := e.formatter.Format(ctx, buf, startLine, endLine); err != nil {
			e.log.WithComponent("replace").Warn("format after replace: %v", err)
		}
	}
	if e.saver != nil {
		if err := e.saver.Save(ctx, buf); err != nil {
			e.log.WithComponent("replace").Warn("save after replace: %v", err)
		}
	}
}
