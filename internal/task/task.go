// Package task owns the single background conversion a caller may run at a time.
package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"species-matrix/internal/matrix"
	"species-matrix/internal/model"
	"species-matrix/internal/parser"
	"species-matrix/internal/processor"
)

// State of the runner
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCancelling
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelling:
		return "cancelling"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when a task is started while another one is live
var ErrBusy = errors.New("a task is already running")

// Result is delivered to the completion callback
type Result struct {
	ID       string
	Input    string
	Matrix   *matrix.Matrix
	Summary  model.Summary
	Outputs  []string
	Err      error // nil on success; parser.ErrCancelled when cancelled
	State    State // Final state: StateDone, StateFailed, or StateIdle after a cancellation
	Duration time.Duration
}

// Cancelled reports whether the run was stopped by the caller
func (r *Result) Cancelled() bool {
	return r.Err != nil && parser.IsCancelled(r.Err)
}

// RunFunc performs the work of a task
type RunFunc func(ctx context.Context, input string, opts processor.Options, events parser.Events) (*processor.Result, error)

// Runner runs at most one conversion at a time
type Runner struct {
	mu     sync.Mutex
	state  State
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	last   *Result
	run    RunFunc
}

// NewRunner creates a Runner backed by processor.Run
func NewRunner() *Runner {
	return NewRunnerWith(processor.Run)
}

// NewRunnerWith creates a Runner with a custom run function
func NewRunnerWith(run RunFunc) *Runner {
	return &Runner{run: run}
}

// Start launches a conversion in a background goroutine and returns its ID.
// onComplete, if set, is called from that goroutine once the run ended.
func (r *Runner) Start(ctx context.Context, input string, opts processor.Options, events parser.Events, onComplete func(*Result)) (string, error) {
	r.mu.Lock()
	if r.state == StateRunning || r.state == StateCancelling {
		r.mu.Unlock()
		return "", ErrBusy
	}

	id := newID()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.state = StateRunning
	r.id = id
	r.cancel = cancel
	r.done = done
	r.last = nil
	r.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		started := time.Now()
		res, err := r.run(runCtx, input, opts, events)

		result := &Result{ID: id, Input: input, Err: err, Duration: time.Since(started)}
		switch {
		case err == nil:
			result.State = StateDone
			result.Matrix = res.Matrix
			result.Summary = res.Summary
			result.Outputs = res.Outputs
		case parser.IsCancelled(err):
			result.State = StateIdle
			result.Err = parser.ErrCancelled
		default:
			result.State = StateFailed
		}

		r.mu.Lock()
		r.state = result.State
		r.cancel = nil
		r.last = result
		r.mu.Unlock()

		if onComplete != nil {
			onComplete(result)
		}
	}()

	return id, nil
}

// Cancel requests cooperative cancellation of the live task.
// It returns false when nothing is running.
func (r *Runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning || r.cancel == nil {
		return false
	}
	r.state = StateCancelling
	r.cancel()
	return true
}

// Wait blocks until the current task finished, or ctx ends, and returns its result
func (r *Runner) Wait(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil, nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, nil
}

// State returns the current state
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// ID returns the ID of the current or last task
func (r *Runner) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}

// newID returns a time-ordered run ID
func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
