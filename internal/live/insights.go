package live

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// DefaultInsightInterval is the live-mode generation period.
const DefaultInsightInterval = 15 * time.Second

// Rand is the randomness the simulators draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

var templates = []string{
	"Predicted {percent}% demand spike in {time} - Recommend {action} to save ${savings}",
	"Anomaly in {component}: {percent}% {metric} drop - {recommendation}",
	"Optimize {system}: {percent}% energy reduction via {method}",
	"Predictive maintenance for {device}: {percent}% wear detected - {action}",
	"{asset} efficiency trending {trend} - {recommendation}",
}

type substitution struct {
	token string
	value func(Rand) string
}

func pick(options ...string) func(Rand) string {
	return func(r Rand) string { return options[r.IntN(len(options))] }
}

// Substitutions run in this order and each replaces only the first occurrence
// of its token, so a template can hold a token twice.
var substitutions = []substitution{
	{"{percent}", func(r Rand) string { return fmt.Sprintf("%.1f", r.Float64()*20+5) }},
	{"{time}", pick("6 PM", "noon", "evening peak")},
	{"{action}", pick("battery discharge", "load shifting")},
	{"{savings}", func(r Rand) string { return fmt.Sprintf("%.0f", r.Float64()*100+20) }},
	{"{component}", pick("Y Phase", "R Phase", "Grid Inverter")},
	{"{metric}", pick("efficiency", "voltage stability")},
	{"{recommendation}", pick("Auto-adjust loads", "Reroute power")},
	{"{system}", pick("HVAC in Factory 2", "Lighting in Warehouse")},
	{"{method}", pick("predictive cooling", "smart scheduling")},
	{"{device}", pick("Inverter C", "Wind Turbine A")},
	{"{asset}", pick("Solar Array 1", "Battery Bank B")},
	{"{trend}", pick("+3%", "-2%", "+5%")},
	{"{recommendation}", pick("Continue schedule", "Investigate further")},
}

// Compose fills a random template. Every substitution draws from r even when
// its token is absent.
func Compose(r Rand) string {
	text := templates[r.IntN(len(templates))]
	for _, s := range substitutions {
		text = strings.Replace(text, s.token, s.value(r), 1)
	}
	return text
}

type Listener func(domain.Insight)

// InsightGenerator keeps the on-screen insight window and, in live mode,
// prepends a freshly composed insight every interval.
type InsightGenerator struct {
	rngMu sync.Mutex
	rng   Rand
	now   func() time.Time

	window *Window[domain.Insight]
	task   *Task
	log    zerolog.Logger

	mu        sync.RWMutex
	listeners []Listener
}

type Option func(*InsightGenerator)

func WithRand(r Rand) Option                { return func(g *InsightGenerator) { g.rng = r } }
func WithClock(now func() time.Time) Option { return func(g *InsightGenerator) { g.now = now } }
func WithLogger(l zerolog.Logger) Option    { return func(g *InsightGenerator) { g.log = l } }

// WithWindow sets how many insights are kept.
func WithWindow(size int) Option {
	return func(g *InsightGenerator) { g.window = NewWindow[domain.Insight](size) }
}

// WithInterval sets the live-mode period.
func WithInterval(d time.Duration) Option {
	return func(g *InsightGenerator) { g.task = NewTask(d, g.tick) }
}

func NewInsightGenerator(initial []domain.Insight, opts ...Option) *InsightGenerator {
	g := &InsightGenerator{
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:    time.Now,
		window: NewWindow[domain.Insight](DefaultWindow),
		log:    zerolog.Nop(),
	}
	g.task = NewTask(DefaultInsightInterval, g.tick)
	for _, o := range opts {
		o(g)
	}
	g.log = g.log.With().Str("component", "insights").Logger()

	for i := len(initial) - 1; i >= 0; i-- {
		g.window.Push(initial[i])
	}
	return g
}

func (g *InsightGenerator) tick(context.Context) { g.Generate() }

// Subscribe registers l to receive every generated insight.
func (g *InsightGenerator) Subscribe(l Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, l)
}

// Generate composes one insight, prepends it to the window and notifies listeners.
func (g *InsightGenerator) Generate() domain.Insight {
	g.rngMu.Lock()
	in := domain.Insight{
		ID:         uuid.NewString(),
		Category:   domain.InsightCategories[g.rng.IntN(len(domain.InsightCategories))],
		Text:       Compose(g.rng),
		Confidence: g.rng.IntN(15) + 85,
		Timestamp:  g.now(),
		Actions:    []string{"Action 1", "Action 2"},
	}
	g.rngMu.Unlock()

	g.window.Push(in)
	g.log.Debug().Str("id", in.ID).Str("type", string(in.Category)).Int("confidence", in.Confidence).Msg("insight generated")

	g.mu.RLock()
	listeners := append([]Listener(nil), g.listeners...)
	g.mu.RUnlock()
	for _, l := range listeners {
		l(in)
	}
	return in
}

// Insights returns the current window, newest first.
func (g *InsightGenerator) Insights() []domain.Insight { return g.window.Items() }

// SetLive turns live mode on or off. Turning it off cancels the pending tick.
func (g *InsightGenerator) SetLive(ctx context.Context, enabled bool) {
	if enabled {
		if g.task.Start(ctx) {
			g.log.Info().Msg("live mode on")
		}
		return
	}
	if g.task.Stop() {
		g.log.Info().Msg("live mode off")
	}
}

func (g *InsightGenerator) Live() bool { return g.task.Running() }

// Close stops live mode.
func (g *InsightGenerator) Close() { g.task.Stop() }
