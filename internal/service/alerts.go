package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/broker"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/state"
)

type AlertService struct {
	fleet     *state.Fleet
	notifier  Notifier
	publisher broker.Publisher
	log       zerolog.Logger
}

// List runs the alert pipeline over the whole fleet.
func (s *AlertService) List(q pipeline.Query) pipeline.Result {
	return pipeline.Run(s.fleet.Devices(), q)
}

// ForDevice runs the pipeline over one device's alerts.
func (s *AlertService) ForDevice(id int, q pipeline.Query) (domain.Device, pipeline.Result, error) {
	d, err := s.fleet.Device(id)
	if err != nil {
		return domain.Device{}, pipeline.Result{}, err
	}
	return d, pipeline.Run([]domain.Device{d}, q), nil
}

// Resolve marks an alert resolved. Notifications are best effort and never
// fail the request.
func (s *AlertService) Resolve(ctx context.Context, id string) (domain.Alert, error) {
	a, changed, err := s.fleet.ResolveAlert(id)
	if err != nil {
		return domain.Alert{}, err
	}
	if !changed {
		return a, nil
	}

	metrics.AlertsResolved.WithLabelValues(string(a.Severity)).Inc()
	s.updateGauge()
	s.log.Info().Str("alert_id", a.ID).Str("device", a.Device).Msg("alert resolved")

	if err := s.publisher.Publish(broker.TopicAlerts, a); err != nil {
		s.log.Warn().Err(err).Str("alert_id", a.ID).Msg("publish resolved alert failed")
	}
	if s.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.notifier.AlertResolved(nctx, a); err != nil {
			s.log.Error().Err(err).Str("alert_id", a.ID).Msg("resolve notification failed")
		}
	}
	return a, nil
}

func (s *AlertService) updateGauge() {
	sum := pipeline.Summarize(pipeline.Normalize(pipeline.Flatten(s.fleet.Devices())))
	metrics.UnresolvedAlerts.Set(float64(sum.Unresolved))
}
