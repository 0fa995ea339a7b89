// Package state owns the in-memory fleet and the resolve-alert transition.
package state

import (
	"fmt"
	"sync"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// Resolve returns a copy of alerts with the record matching id marked resolved.
// It reports false when id is absent or already resolved; alerts is never mutated.
func Resolve(alerts []domain.Alert, id string) ([]domain.Alert, bool) {
	out := append([]domain.Alert(nil), alerts...)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if out[i].Resolved {
			return out, false
		}
		out[i].Resolved = true
		return out, true
	}
	return out, false
}

// Fleet is the process-wide owner of device records. It is safe for concurrent use.
type Fleet struct {
	mu      sync.RWMutex
	devices []domain.Device
	owner   map[string]int
}

func NewFleet(devices []domain.Device) (*Fleet, error) {
	f := &Fleet{
		devices: make([]domain.Device, len(devices)),
		owner:   make(map[string]int),
	}
	for i, d := range devices {
		for _, a := range d.Alerts {
			if _, dup := f.owner[a.ID]; dup {
				return nil, fmt.Errorf("alert %s: %w", a.ID, domain.ErrDuplicateID)
			}
			f.owner[a.ID] = i
		}
		f.devices[i] = d.Clone()
	}
	return f, nil
}

// Devices returns deep copies of every device in seed order.
func (f *Fleet) Devices() []domain.Device {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Device, len(f.devices))
	for i, d := range f.devices {
		out[i] = d.Clone()
	}
	return out
}

func (f *Fleet) Device(id int) (domain.Device, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, d := range f.devices {
		if d.ID == id {
			return d.Clone(), nil
		}
	}
	return domain.Device{}, fmt.Errorf("device %d: %w", id, domain.ErrNotFound)
}

// ResolveAlert marks one alert resolved and returns the updated record.
// Resolving an already-resolved alert is a no-op that still succeeds.
func (f *Fleet) ResolveAlert(id string) (domain.Alert, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.owner[id]
	if !ok {
		return domain.Alert{}, false, fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
	}
	alerts, changed := Resolve(f.devices[i].Alerts, id)
	f.devices[i].Alerts = alerts
	for _, a := range alerts {
		if a.ID == id {
			return a, changed, nil
		}
	}
	return domain.Alert{}, false, fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
}
