package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/analysis"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/broker"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/live"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
)

type AnalysisService struct{}

func (AnalysisService) Report(kind analysis.Kind, f analysis.Filter) analysis.Report {
	return analysis.Build(kind, f)
}

// LiveService exposes the insight feed and the power meter.
type LiveService struct {
	ctx      context.Context
	insights *live.InsightGenerator
	power    *live.PowerMeter
	now      func() time.Time
	log      zerolog.Logger
}

type EnergySnapshot struct {
	CurrentPower float64               `json:"current_power"`
	Summary      domain.EnergySummary  `json:"summary"`
	Mix          []domain.EnergySource `json:"energy_mix"`
	Timestamp    time.Time             `json:"timestamp"`
}

type InsightFeed struct {
	Live     bool             `json:"live"`
	Insights []domain.Insight `json:"insights"`
}

func newLiveService(ctx context.Context, d Deps) *LiveService {
	s := &LiveService{
		ctx:      ctx,
		insights: d.Insights,
		power:    d.Power,
		now:      d.Now,
		log:      d.Log.With().Str("component", "live").Logger(),
	}
	pub := d.Publisher

	s.insights.Subscribe(func(in domain.Insight) {
		metrics.InsightsGenerated.WithLabelValues(string(in.Category)).Inc()
		if err := pub.Publish(broker.TopicInsights, in); err != nil {
			s.log.Warn().Err(err).Msg("publish insight failed")
		}
	})
	s.power.Subscribe(func(kw float64) {
		metrics.LivePower.Set(kw)
		if err := pub.Publish(broker.TopicPower, broker.PowerReading{PowerKW: kw, Timestamp: s.now().Unix()}); err != nil {
			s.log.Warn().Err(err).Msg("publish power failed")
		}
	})
	metrics.LivePower.Set(s.power.Value())
	return s
}

// Start runs the power meter until Stop or until the service context ends.
func (s *LiveService) Start() { s.power.Start(s.ctx) }

func (s *LiveService) Stop() {
	s.power.Stop()
	s.insights.Close()
}

func (s *LiveService) Insights() InsightFeed {
	return InsightFeed{Live: s.insights.Live(), Insights: s.insights.Insights()}
}

// SetLive switches insight generation, bound to the service context rather
// than the caller's request.
func (s *LiveService) SetLive(enabled bool) InsightFeed {
	s.insights.SetLive(s.ctx, enabled)
	return s.Insights()
}

func (s *LiveService) Energy() EnergySnapshot {
	return EnergySnapshot{
		CurrentPower: s.power.Value(),
		Summary:      seed.EnergySummary(),
		Mix:          seed.EnergyMix(),
		Timestamp:    s.now(),
	}
}
