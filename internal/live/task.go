// Package live runs the simulated real-time sources: the insight feed and the
// power meter. Both are driven by a cancellable periodic Task.
package live

import (
	"context"
	"sync"
	"time"
)

// Task calls fn every interval until stopped. The zero value is not usable.
type Task struct {
	interval time.Duration
	fn       func(context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTask(interval time.Duration, fn func(context.Context)) *Task {
	return &Task{interval: interval, fn: fn}
}

// Start launches the ticker goroutine. It returns false if the task is already running.
func (t *Task) Start(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel, t.done = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.fn(ctx)
			}
		}
	}()
	return true
}

// Stop cancels the task and waits for the goroutine to exit. It returns false
// if the task was not running.
func (t *Task) Stop() bool {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	<-done
	return true
}

func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}
