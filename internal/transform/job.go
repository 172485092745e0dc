package transform

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Terminal job errors.
var (
	// ErrTimeout indicates the job exceeded its deadline and was cancelled.
	ErrTimeout = errors.New("transform timed out")

	// ErrCanceled indicates the job was cancelled by the caller.
	ErrCanceled = errors.New("transform canceled")
)

// Job is one in-flight transformation. It completes exactly once: with a
// result, a cancellation, or a timeout.
type Job struct {
	provider string
	started  time.Time
	cancel   context.CancelFunc
	done     chan struct{}

	mu   sync.RWMutex
	text string
	err  error
}

// Start runs the request against the provider in the background.
// A timeout of zero means no deadline.
func Start(ctx context.Context, p Provider, req Request, timeout time.Duration) *Job {
	var jobCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		jobCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		jobCtx, cancel = context.WithCancel(ctx)
	}

	j := &Job{
		provider: p.Name(),
		started:  time.Now(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		defer cancel()

		text, err := p.Transform(jobCtx, req)
		if err != nil {
			// Map context termination onto the job's terminal outcomes.
			// The deadline check comes first: a timed-out context reports
			// DeadlineExceeded even after cancel() fires during cleanup.
			switch {
			case errors.Is(err, context.DeadlineExceeded) || jobCtx.Err() == context.DeadlineExceeded:
				err = ErrTimeout
			case errors.Is(err, context.Canceled) || jobCtx.Err() == context.Canceled:
				err = ErrCanceled
			}
		}

		j.mu.Lock()
		j.text = text
		j.err = err
		j.mu.Unlock()
		close(j.done)
	}()

	return j
}

// Done returns a channel closed when the job reaches a terminal outcome.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel aborts the job. It is idempotent and safe to call after the job has
// already finished; in that case it has no observable effect.
func (j *Job) Cancel() {
	j.cancel()
}

// Result blocks until the job finishes and returns its outcome.
func (j *Job) Result() (string, error) {
	<-j.done
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.text, j.err
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (string, error) {
	select {
	case <-j.done:
		return j.Result()
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Provider returns the name of the provider serving the job.
func (j *Job) Provider() string {
	return j.provider
}

// Running returns true while the job has not reached a terminal outcome.
func (j *Job) Running() bool {
	select {
	case <-j.done:
		return false
	default:
		return true
	}
}

// Duration returns how long the job has been running, or its total runtime
// once finished.
func (j *Job) Duration() time.Duration {
	return time.Since(j.started)
}
