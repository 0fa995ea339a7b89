package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
)

func TestResolve(t *testing.T) {
	in := []domain.Alert{{ID: "a"}, {ID: "b"}, {ID: "c", Resolved: true}}

	out, ok := Resolve(in, "b")
	require.True(t, ok)
	assert.True(t, out[1].Resolved)
	assert.False(t, out[0].Resolved)
	assert.True(t, out[2].Resolved)
	assert.False(t, in[1].Resolved, "input must not change")

	out, ok = Resolve(in, "c")
	assert.False(t, ok)
	assert.Equal(t, in, out)

	out, ok = Resolve(in, "zzz")
	assert.False(t, ok)
	assert.Equal(t, in, out)
}

func TestResolveNeverUnresolves(t *testing.T) {
	in := []domain.Alert{{ID: "a"}, {ID: "b", Resolved: true}}
	for _, id := range []string{"a", "b", "a", "x"} {
		next, _ := Resolve(in, id)
		for i := range in {
			if in[i].Resolved {
				assert.True(t, next[i].Resolved)
			}
		}
		in = next
	}
}

func newSeedFleet(t *testing.T) *Fleet {
	t.Helper()
	devs, err := seed.Devices()
	require.NoError(t, err)
	f, err := NewFleet(devs)
	require.NoError(t, err)
	return f
}

func TestNewFleetRejectsDuplicateIDs(t *testing.T) {
	devs := []domain.Device{
		{ID: 1, Name: "A", Alerts: []domain.Alert{{ID: "x"}}},
		{ID: 2, Name: "B", Alerts: []domain.Alert{{ID: "x"}}},
	}
	_, err := NewFleet(devs)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestFleetResolveAlert(t *testing.T) {
	f := newSeedFleet(t)

	a, changed, err := f.ResolveAlert("i4-1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, a.Resolved)
	assert.Equal(t, "Grid Inverter C", a.Device)

	d, err := f.Device(4)
	require.NoError(t, err)
	assert.True(t, d.Alerts[0].Resolved)
	assert.False(t, d.Alerts[1].Resolved)

	_, changed, err = f.ResolveAlert("i4-1")
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = f.ResolveAlert("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFleetReturnsCopies(t *testing.T) {
	f := newSeedFleet(t)
	devs := f.Devices()
	devs[0].Alerts[0].Resolved = true
	devs[0].Name = "changed"

	again := f.Devices()
	assert.False(t, again[0].Alerts[0].Resolved)
	assert.Equal(t, "Solar Panel Array 1", again[0].Name)
}

func TestFleetDeviceNotFound(t *testing.T) {
	_, err := newSeedFleet(t).Device(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFleetConcurrentResolve(t *testing.T) {
	f := newSeedFleet(t)
	ids := []string{"s1-1", "b3-1", "i4-1", "i4-2", "s5-1", "s5-2"}

	var wg sync.WaitGroup
	for range 4 {
		for _, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := f.ResolveAlert(id)
				assert.NoError(t, err)
				_ = f.Devices()
			}()
		}
	}
	wg.Wait()

	for _, d := range f.Devices() {
		for _, a := range d.Alerts {
			assert.True(t, a.Resolved, a.ID)
		}
	}
}
