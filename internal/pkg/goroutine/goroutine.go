package goroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/orgdesk/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by the CPU count when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrPanic wraps a value recovered from a job.
var ErrPanic = errors.New("goroutine: job panicked")

// Job is a unit of background work, such as a message consumer loop.
type Job func(ctx context.Context) error

// Manager runs background jobs under a concurrency limit and gathers the
// errors they return. After Wait it refuses new jobs.
type Manager struct {
	wg    sync.WaitGroup
	slots chan struct{}

	mu     sync.Mutex
	closed bool
	errs   []error
}

// NewManager returns a Manager that runs at most limit jobs at once.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{slots: make(chan struct{}, limit)}
}

// Go starts job when a slot is free and reports whether it was started.
// A job whose context is already done is skipped.
func (m *Manager) Go(ctx context.Context, job Job) bool {
	if m == nil {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, job skipped")
		return false
	}

	select {
	case m.slots <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, job skipped", "limit", cap(m.slots))
		return false
	}

	m.wg.Go(func() {
		defer func() { <-m.slots }()
		defer m.recover(ctx)

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "job skipped, context done", "because", err)
			return
		}

		if err := job(ctx); err != nil {
			m.collect(err)
		}
	})

	return true
}

func (m *Manager) recover(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "stack", paths)
	} else {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "stack", string(stack))
	}

	m.collect(fmt.Errorf("%w: %v", ErrPanic, rvr))
}

func (m *Manager) collect(err error) {
	m.mu.Lock()
	m.errs = append(m.errs, err)
	m.mu.Unlock()
}

// Wait closes the manager, blocks until every started job returns and
// joins their errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
