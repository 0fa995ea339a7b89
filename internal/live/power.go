package live

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	PowerStart = 2847.0
	PowerMin   = 2400.0
	PowerMax   = 3200.0
	// PowerSpan is the full width of one random step, centred on zero.
	PowerSpan            = 80.0
	DefaultPowerInterval = 2 * time.Second
)

// PowerMeter is a bounded random walk standing in for the site's live load in kW.
type PowerMeter struct {
	rngMu sync.Mutex
	rng   Rand

	mu        sync.RWMutex
	value     float64
	listeners []func(float64)

	task *Task
}

func NewPowerMeter(interval time.Duration, r Rand) *PowerMeter {
	if interval <= 0 {
		interval = DefaultPowerInterval
	}
	if r == nil {
		r = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x90e7))
	}
	m := &PowerMeter{rng: r, value: PowerStart}
	m.task = NewTask(interval, func(context.Context) { m.Step() })
	return m
}

// Step advances the walk once and returns the new reading.
func (m *PowerMeter) Step() float64 {
	m.rngMu.Lock()
	delta := (m.rng.Float64() - 0.5) * PowerSpan
	m.rngMu.Unlock()

	m.mu.Lock()
	m.value = min(PowerMax, max(PowerMin, m.value+delta))
	v := m.value
	listeners := append(([]func(float64))(nil), m.listeners...)
	m.mu.Unlock()

	for _, l := range listeners {
		l(v)
	}
	return v
}

func (m *PowerMeter) Value() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Subscribe registers fn to receive every reading.
func (m *PowerMeter) Subscribe(fn func(float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *PowerMeter) Start(ctx context.Context) { m.task.Start(ctx) }

func (m *PowerMeter) Stop() { m.task.Stop() }
