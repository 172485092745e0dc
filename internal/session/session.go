package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/revise/internal/engine/buffer"
	"github.com/dshills/revise/internal/hook"
	"github.com/dshills/revise/internal/logging"
	"github.com/dshills/revise/internal/replace"
	"github.com/dshills/revise/internal/selection"
	"github.com/dshills/revise/internal/transform"
)

// Errors returned by session operations.
var (
	// ErrBusy indicates a cycle is already outstanding.
	ErrBusy = errors.New("transformation already in progress")

	// ErrNoJob indicates Wait or Apply was called with no cycle started.
	ErrNoJob = errors.New("no transformation in progress")

	// ErrRejected indicates the user discarded the preview.
	ErrRejected = errors.New("replacement rejected")
)

// ConfirmFunc decides whether a proposed replacement is applied. It receives
// the original and replacement lines.
type ConfirmFunc func(original, replacement []string) (bool, error)

// Session drives edit cycles against one provider and one replace engine.
type Session struct {
	provider transform.Provider
	engine   *replace.Engine
	hooks    *hook.Runner
	log      *logging.Logger
	timeout  time.Duration
	reindent bool

	mu   sync.Mutex
	busy bool
	sel  selection.Selection
	job  *transform.Job

	metrics Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each transformation. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithHooks attaches Lua request/response hooks.
func WithHooks(r *hook.Runner) Option {
	return func(s *Session) {
		s.hooks = r
	}
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithReindent re-derives replacement indentation from the original lines.
func WithReindent() Option {
	return func(s *Session) {
		s.reindent = true
	}
}

// New creates a session.
func New(p transform.Provider, e *replace.Engine, opts ...Option) *Session {
	s := &Session{
		provider: p,
		engine:   e,
		log:      logging.Null,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Begin captures the selection and starts the transformation in the
// background. It fails with ErrBusy while a cycle is outstanding.
func (s *Session) Begin(ctx context.Context, buf *buffer.Buffer, start, end selection.Pos, mode selection.Mode, instruction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}

	sel, err := selection.Capture(buf, start, end, mode)
	if err != nil {
		return err
	}

	req := transform.Request{
		Text:        sel.Text,
		Instruction: instruction,
		Filetype:    buf.Filetype(),
		Path:        buf.Path(),
	}
	if s.hooks != nil {
		req, err = s.hooks.OnRequest(req)
		if err != nil {
			return err
		}
	}

	s.sel = sel
	s.job = transform.Start(ctx, s.provider, req, s.timeout)
	s.busy = true
	s.metrics.requests.Add(1)

	s.log.WithComponent("session").Debug("transform started: provider=%s lines=%d-%d mode=%s",
		s.provider.Name(), sel.StartLine, sel.EndLine, mode)
	return nil
}

// Wait blocks until the outstanding transformation finishes and returns the
// proposed replacement text, fences stripped and response hooks applied.
// The outstanding flag clears only when the job itself reaches a terminal
// outcome; if the caller's context expires first the cycle stays outstanding
// and the caller must Wait again or Cancel.
func (s *Session) Wait(ctx context.Context) (string, error) {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()

	if job == nil {
		return "", ErrNoJob
	}

	text, err := job.Wait(ctx)
	if err != nil && job.Running() {
		// Caller context expired while the transform is still in flight.
		return "", err
	}

	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, transform.ErrTimeout):
			s.metrics.timedOut.Add(1)
		case errors.Is(err, transform.ErrCanceled):
			s.metrics.canceled.Add(1)
		}
		return "", err
	}

	text = transform.Extract(text)
	if s.hooks != nil {
		text, err = s.hooks.OnResponse(text)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// Apply writes the replacement text into the captured selection as one undo
// unit. Requires a prior Begin in this cycle.
func (s *Session) Apply(ctx context.Context, text string) error {
	s.mu.Lock()
	sel := s.sel
	started := s.job != nil
	s.mu.Unlock()

	if !started {
		return ErrNoJob
	}

	spec := replace.NewSpec(sel, text, s.reindent)
	if err := s.engine.Apply(ctx, spec); err != nil {
		return err
	}
	s.metrics.applied.Add(1)
	return nil
}

// Cancel aborts the outstanding transformation, if any. Idempotent; safe
// with no cycle in flight.
func (s *Session) Cancel() {
	s.mu.Lock()
	job := s.job
	s.busy = false
	s.mu.Unlock()

	if job != nil {
		job.Cancel()
	}
}

// Busy reports whether a cycle is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Run executes a full cycle: capture, transform, optional confirmation,
// replace. A nil confirm applies unconditionally; a rejecting confirm leaves
// the buffer untouched and returns ErrRejected.
func (s *Session) Run(ctx context.Context, buf *buffer.Buffer, start, end selection.Pos, mode selection.Mode, instruction string, confirm ConfirmFunc) error {
	if err := s.Begin(ctx, buf, start, end, mode, instruction); err != nil {
		return err
	}

	text, err := s.Wait(ctx)
	if err != nil {
		return err
	}

	if confirm != nil {
		s.mu.Lock()
		sel := s.sel
		s.mu.Unlock()

		// Show the lines exactly as Apply will write them.
		lines := replace.NewSpec(sel, text, s.reindent).Lines
		if s.reindent {
			lines = selection.PreserveIndent(sel.Lines(), lines)
		}

		ok, err := confirm(sel.Lines(), lines)
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			return ErrRejected
		}
	}

	return s.Apply(ctx, text)
}

// Metrics returns a snapshot of the session counters.
func (s *Session) Metrics() MetricsSnapshot {
	return s.metrics.snapshot()
}
