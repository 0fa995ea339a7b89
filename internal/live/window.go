package live

import "sync"

// DefaultWindow is the number of insights kept on screen.
const DefaultWindow = 10

// Window is a fixed-size, newest-first sliding window.
type Window[T any] struct {
	mu    sync.RWMutex
	size  int
	items []T
}

// NewWindow builds a window holding at most size items, pre-filled with the
// first size entries of initial.
func NewWindow[T any](size int, initial ...T) *Window[T] {
	if size <= 0 {
		size = DefaultWindow
	}
	if len(initial) > size {
		initial = initial[:size]
	}
	items := make([]T, len(initial), size)
	copy(items, initial)
	return &Window[T]{size: size, items: items}
}

// Push prepends v and drops the oldest entry once the window is full.
func (w *Window[T]) Push(v T) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.items) < w.size {
		w.items = append(w.items, v)
	}
	copy(w.items[1:], w.items[:len(w.items)-1])
	w.items[0] = v
}

// Items returns a copy, newest first.
func (w *Window[T]) Items() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]T(nil), w.items...)
}

func (w *Window[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}

func (w *Window[T]) Size() int { return w.size }
