package live

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
)

// fixedRand always returns the lowest option and the given float.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return 0 }

func TestWindowKeepsNewestFirst(t *testing.T) {
	w := NewWindow[int](3, 1, 2)
	w.Push(3)
	assert.Equal(t, []int{3, 1, 2}, w.Items())
	w.Push(4)
	w.Push(5)
	assert.Equal(t, []int{5, 4, 3}, w.Items())
	assert.Equal(t, 3, w.Len())
}

func TestWindowTruncatesInitial(t *testing.T) {
	w := NewWindow[int](2, 1, 2, 3)
	assert.Equal(t, []int{1, 2}, w.Items())
	assert.Equal(t, DefaultWindow, NewWindow[int](0).Size())
}

func TestComposeFirstTemplate(t *testing.T) {
	got := Compose(fixedRand{f: 0.5})
	assert.Equal(t, "Predicted 15.0% demand spike in 6 PM - Recommend battery discharge to save $70", got)
}

func TestComposeFillsEveryToken(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		text := Compose(r)
		assert.NotContains(t, text, "{", text)
		assert.NotContains(t, text, "}", text)
	}
}

func TestGenerateShape(t *testing.T) {
	at := time.Date(2025, 12, 17, 15, 0, 0, 0, time.UTC)
	g := NewInsightGenerator(seed.Insights(),
		WithRand(rand.New(rand.NewPCG(7, 7))),
		WithClock(func() time.Time { return at }))

	seen := map[string]bool{}
	for range 50 {
		in := g.Generate()
		assert.GreaterOrEqual(t, in.Confidence, 85)
		assert.LessOrEqual(t, in.Confidence, 99)
		assert.Contains(t, domain.InsightCategories, in.Category)
		assert.Equal(t, at, in.Timestamp)
		assert.NotEmpty(t, in.Text)
		assert.False(t, seen[in.ID], "duplicate id")
		seen[in.ID] = true
		assert.LessOrEqual(t, len(g.Insights()), DefaultWindow)
	}
}

func TestGeneratePrependsAndEvicts(t *testing.T) {
	initial := seed.Insights()
	g := NewInsightGenerator(initial, WithRand(fixedRand{}))
	require.Len(t, g.Insights(), 5)
	assert.Equal(t, "1", g.Insights()[0].ID)

	first := g.Generate()
	assert.Equal(t, first.ID, g.Insights()[0].ID)
	assert.Equal(t, "1", g.Insights()[1].ID)

	for range 10 {
		g.Generate()
	}
	got := g.Insights()
	require.Len(t, got, DefaultWindow)
	for _, in := range got {
		assert.NotContains(t, []string{"1", "2", "3", "4", "5"}, in.ID, "seed insight should be evicted")
	}
}

func TestGenerateNotifiesListeners(t *testing.T) {
	g := NewInsightGenerator(nil, WithRand(fixedRand{}))
	var got []domain.Insight
	g.Subscribe(func(in domain.Insight) { got = append(got, in) })

	in := g.Generate()
	require.Len(t, got, 1)
	assert.Equal(t, in, got[0])
}

func TestLiveModeStartsAndStops(t *testing.T) {
	g := NewInsightGenerator(nil, WithRand(fixedRand{}), WithInterval(5*time.Millisecond))
	var n atomic.Int32
	g.Subscribe(func(domain.Insight) { n.Add(1) })

	g.SetLive(context.Background(), true)
	g.SetLive(context.Background(), true)
	assert.True(t, g.Live())
	assert.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)

	g.SetLive(context.Background(), false)
	assert.False(t, g.Live())
	stopped := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, n.Load(), "no generation after live mode is off")

	g.SetLive(context.Background(), false)
	g.Close()
}

func TestTaskStopsWithContext(t *testing.T) {
	var n atomic.Int32
	task := NewTask(time.Millisecond, func(context.Context) { n.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())

	require.True(t, task.Start(ctx))
	assert.False(t, task.Start(ctx))
	assert.Eventually(t, func() bool { return n.Load() > 0 }, time.Second, time.Millisecond)

	cancel()
	assert.True(t, task.Stop())
	assert.False(t, task.Stop())
	assert.False(t, task.Running())
}

func TestPowerMeterClamps(t *testing.T) {
	up := NewPowerMeter(time.Second, fixedRand{f: 1})
	for range 100 {
		up.Step()
	}
	assert.Equal(t, PowerMax, up.Value())

	down := NewPowerMeter(time.Second, fixedRand{f: 0})
	for range 100 {
		down.Step()
	}
	assert.Equal(t, PowerMin, down.Value())
}

func TestPowerMeterStepSize(t *testing.T) {
	m := NewPowerMeter(time.Second, rand.New(rand.NewPCG(3, 4)))
	assert.Equal(t, PowerStart, m.Value())

	var readings []float64
	m.Subscribe(func(v float64) { readings = append(readings, v) })
	prev := m.Value()
	for range 500 {
		v := m.Step()
		assert.LessOrEqual(t, v, PowerMax)
		assert.GreaterOrEqual(t, v, PowerMin)
		assert.LessOrEqual(t, abs(v-prev), PowerSpan/2)
		prev = v
	}
	assert.Len(t, readings, 500)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
