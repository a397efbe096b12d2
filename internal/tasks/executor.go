package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrExecutorClosed is returned when scheduling on a closed executor
var ErrExecutorClosed = errors.New("executor closed")

// Executor tracks delayed tasks so they can be cancelled individually or
// all at once when their owner goes away.
type Executor struct {
	mu        sync.RWMutex
	contexts  map[string]context.CancelFunc
	closed    bool
	closeOnce sync.Once
}

// NewExecutor creates an empty executor
func NewExecutor() *Executor {
	return &Executor{
		contexts: make(map[string]context.CancelFunc),
	}
}

// After registers a task that becomes due after d. The returned wait blocks
// until then and returns nil, or returns the context error if the task was
// cancelled first. wait must be called exactly once; it releases the task.
func (e *Executor) After(ctx context.Context, d time.Duration) (string, func() error, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", nil, ErrExecutorClosed
	}

	id := uuid.New().String()
	taskCtx, cancel := context.WithCancel(ctx)
	e.contexts[id] = cancel

	wait := func() error {
		defer e.release(id)

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			// A cancel racing with expiry still wins
			if err := taskCtx.Err(); err != nil {
				return err
			}
			return nil
		case <-taskCtx.Done():
			return taskCtx.Err()
		}
	}
	return id, wait, nil
}

func (e *Executor) release(id string) {
	e.mu.Lock()
	cancel, ok := e.contexts[id]
	delete(e.contexts, id)
	e.mu.Unlock()

	if ok {
		cancel()
	}
}

// Cancel cancels a specific task
func (e *Executor) Cancel(id string) {
	e.mu.RLock()
	cancel, ok := e.contexts[id]
	e.mu.RUnlock()

	if ok {
		cancel()
	}
}

// CancelAll cancels all pending tasks
func (e *Executor) CancelAll() {
	e.mu.RLock()
	cancels := make([]context.CancelFunc, 0, len(e.contexts))
	for _, cancel := range e.contexts {
		cancels = append(cancels, cancel)
	}
	e.mu.RUnlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Close refuses new tasks and cancels pending ones
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()
		e.CancelAll()
	})
}

// Seal refuses new tasks but lets pending ones run to completion
func (e *Executor) Seal() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// Active reports the number of tasks not yet released
func (e *Executor) Active() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.contexts)
}
