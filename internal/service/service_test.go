package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/analysis"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/export"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/live"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/state"
)

var fixedNow = time.Date(2025, 12, 17, 15, 0, 0, 0, time.UTC)

type fakeNotifier struct {
	mu          sync.Mutex
	resolved    []string
	maintenance []string
	err         error
}

func (n *fakeNotifier) AlertResolved(_ context.Context, a domain.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, a.ID)
	return n.err
}

func (n *fakeNotifier) MaintenanceDue(_ context.Context, device string, _ int, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.maintenance = append(n.maintenance, device)
	return n.err
}

type fakeArchiver struct {
	files map[string][]byte
}

func (a *fakeArchiver) Archive(_ context.Context, name string, data []byte, _ string) (string, error) {
	if a.files == nil {
		a.files = map[string][]byte{}
	}
	a.files[name] = data
	return "https://reports.example/" + name, nil
}

func (a *fakeArchiver) Archived(context.Context) ([]string, error) {
	out := make([]string, 0, len(a.files))
	for k := range a.files {
		out = append(out, k)
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, t := range p.topics {
		if t == topic {
			n++
		}
	}
	return n
}

type fixture struct {
	svcs     *Services
	notifier *fakeNotifier
	archiver *fakeArchiver
	pub      *recordingPublisher
}

func newFixture(t *testing.T, withArchive bool) fixture {
	t.Helper()
	devs, err := seed.Devices()
	require.NoError(t, err)
	fleet, err := state.NewFleet(devs)
	require.NoError(t, err)

	fx := fixture{notifier: &fakeNotifier{}, pub: &recordingPublisher{}}
	d := Deps{
		Fleet:     fleet,
		Insights:  live.NewInsightGenerator(seed.Insights(), live.WithClock(func() time.Time { return fixedNow })),
		Power:     live.NewPowerMeter(time.Hour, nil),
		Notifier:  fx.notifier,
		Publisher: fx.pub,
		Log:       zerolog.Nop(),
		Now:       func() time.Time { return fixedNow },
	}
	if withArchive {
		fx.archiver = &fakeArchiver{}
		d.Archiver = fx.archiver
	}
	ctx, cancel := context.WithCancel(context.Background())
	fx.svcs = New(ctx, d)
	t.Cleanup(func() {
		fx.svcs.Live.Stop()
		cancel()
	})
	return fx
}

func TestResolveNotifiesOnce(t *testing.T) {
	fx := newFixture(t, false)

	a, err := fx.svcs.Alerts.Resolve(context.Background(), "i4-1")
	require.NoError(t, err)
	assert.True(t, a.Resolved)

	_, err = fx.svcs.Alerts.Resolve(context.Background(), "i4-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"i4-1"}, fx.notifier.resolved)
	assert.Equal(t, 1, fx.pub.count("dashboard/alerts"))

	res := fx.svcs.Alerts.List(pipeline.DefaultQuery())
	assert.Equal(t, 5, res.Summary.Unresolved)
}

func TestResolveUnknownAlert(t *testing.T) {
	fx := newFixture(t, false)
	_, err := fx.svcs.Alerts.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, fx.notifier.resolved)
}

func TestResolveSurvivesNotifierFailure(t *testing.T) {
	fx := newFixture(t, false)
	fx.notifier.err = errors.New("sns down")

	a, err := fx.svcs.Alerts.Resolve(context.Background(), "s5-1")
	require.NoError(t, err)
	assert.True(t, a.Resolved)
}

func TestForDevice(t *testing.T) {
	fx := newFixture(t, false)

	d, res, err := fx.svcs.Alerts.ForDevice(4, pipeline.DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, "Grid Inverter C", d.Name)
	assert.Equal(t, 3, res.Summary.Total)
	assert.Equal(t, 2, res.Summary.High)

	_, _, err = fx.svcs.Alerts.ForDevice(99, pipeline.DefaultQuery())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeviceListStatsCoverFleet(t *testing.T) {
	fx := newFixture(t, false)

	q, err := pipeline.ParseDeviceQuery("", "Critical", "")
	require.NoError(t, err)
	list := fx.svcs.Devices.List(q)
	require.Len(t, list.Devices, 1)
	assert.Equal(t, 6, list.Stats.Total)

	detail, err := fx.svcs.Devices.Get(5)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Summary.Total)
	assert.Len(t, detail.Severity, 3)
}

func TestForecastNotifiesAtRiskDevice(t *testing.T) {
	fx := newFixture(t, false)

	p, err := fx.svcs.Maintenance.Forecast(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Grid Inverter C", p.Device)
	assert.Equal(t, 32, p.CurrentHealth)
	assert.Equal(t, "URGENT: Schedule immediate maintenance inspection", p.Recommendation)
	assert.Contains(t, fx.notifier.maintenance, "Grid Inverter C")

	_, err = fx.svcs.Maintenance.Forecast(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateRecommendation(t *testing.T) {
	cases := []struct {
		risk   float64
		health int
		want   string
	}{
		{0.6, 95, "URGENT: Schedule immediate maintenance inspection"},
		{0.0, 50, "URGENT: Schedule immediate maintenance inspection"},
		{0.35, 95, "Schedule maintenance within next 30 days"},
		{0.0, 70, "Schedule maintenance within next 30 days"},
		{0.2, 95, "Plan maintenance within next 90 days"},
		{0.0, 80, "Plan maintenance within next 90 days"},
		{0.05, 95, "Equipment operating normally"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, generateRecommendation(c.risk, c.health), "%v/%d", c.risk, c.health)
	}
}

func TestAlertsCSVExport(t *testing.T) {
	fx := newFixture(t, false)

	q, err := pipeline.ParseQuery("", "High", "", "", "")
	require.NoError(t, err)
	f, err := fx.svcs.Exports.AlertsCSV(q)
	require.NoError(t, err)
	assert.Equal(t, "alerts_report_2025-12-17.csv", f.Name)
	assert.Equal(t, export.MIMECSV, f.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
}

func TestPDFExports(t *testing.T) {
	fx := newFixture(t, false)

	f, err := fx.svcs.Exports.AlertsPDF(pipeline.DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, "alerts_report_2025-12-17.pdf", f.Name)
	assert.True(t, bytes.HasPrefix(f.Data, []byte("%PDF")))

	f, err = fx.svcs.Exports.DevicePDF(4, pipeline.DefaultQuery())
	require.NoError(t, err)
	assert.Equal(t, "Grid_Inverter_C_alerts_report_2025-12-17.pdf", f.Name)

	_, err = fx.svcs.Exports.DevicePDF(77, pipeline.DefaultQuery())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchive(t *testing.T) {
	fx := newFixture(t, true)

	filter, err := analysis.ParseFilter("", "", "", "")
	require.NoError(t, err)
	f, err := fx.svcs.Exports.AnalysisCSV(analysis.KindTrend, filter)
	require.NoError(t, err)
	assert.Equal(t, "trend_analysis_2025-01-01_to_2025-12-17.csv", f.Name)
	url, err := fx.svcs.Exports.Archive(context.Background(), f)
	require.NoError(t, err)
	assert.Contains(t, url, f.Name)

	names, err := fx.svcs.Exports.Archived(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{f.Name}, names)
}

func TestArchiveUnavailable(t *testing.T) {
	fx := newFixture(t, false)
	_, err := fx.svcs.Exports.Archive(context.Background(), File{Name: "x.csv"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	_, err = fx.svcs.Exports.Archived(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestLiveInsightsPublish(t *testing.T) {
	fx := newFixture(t, false)

	feed := fx.svcs.Live.Insights()
	assert.False(t, feed.Live)
	require.NotEmpty(t, feed.Insights)

	fx.svcs.Live.insights.Generate()
	assert.Equal(t, 1, fx.pub.count("dashboard/insights"))

	feed = fx.svcs.Live.SetLive(true)
	assert.True(t, feed.Live)
	feed = fx.svcs.Live.SetLive(false)
	assert.False(t, feed.Live)
}

func TestEnergySnapshot(t *testing.T) {
	fx := newFixture(t, false)

	e := fx.svcs.Live.Energy()
	assert.Equal(t, live.PowerStart, e.CurrentPower)
	assert.Equal(t, fixedNow, e.Timestamp)
	assert.Len(t, e.Mix, 4)

	fx.svcs.Live.power.Step()
	assert.Equal(t, 1, fx.pub.count("dashboard/power"))
}
