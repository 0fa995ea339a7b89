package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/broker"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/live"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/state"
)

// Notifier delivers operator notifications. *cloud.SNSClient satisfies it.
type Notifier interface {
	AlertResolved(ctx context.Context, a domain.Alert) error
	MaintenanceDue(ctx context.Context, device string, health int, next time.Time) error
}

// Archiver stores exported reports. *cloud.S3Client satisfies it.
type Archiver interface {
	Archive(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Archived(ctx context.Context) ([]string, error)
}

type Deps struct {
	Fleet     *state.Fleet
	Insights  *live.InsightGenerator
	Power     *live.PowerMeter
	Notifier  Notifier
	Archiver  Archiver
	Publisher broker.Publisher
	Log       zerolog.Logger
	Now       func() time.Time
}

type Services struct {
	Alerts      *AlertService
	Devices     *DeviceService
	Maintenance *MaintenanceService
	Analysis    *AnalysisService
	Exports     *ExportService
	Live        *LiveService
}

// New wires the services. ctx bounds the lifetime of the live tasks.
func New(ctx context.Context, d Deps) *Services {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Publisher == nil {
		d.Publisher = broker.Nop{}
	}

	alerts := &AlertService{
		fleet:     d.Fleet,
		notifier:  d.Notifier,
		publisher: d.Publisher,
		log:       d.Log.With().Str("component", "alerts").Logger(),
	}
	alerts.updateGauge()

	return &Services{
		Alerts:  alerts,
		Devices: &DeviceService{fleet: d.Fleet},
		Maintenance: &MaintenanceService{
			fleet:    d.Fleet,
			notifier: d.Notifier,
			now:      d.Now,
			log:      d.Log.With().Str("component", "maintenance").Logger(),
		},
		Analysis: &AnalysisService{},
		Exports: &ExportService{
			fleet:    d.Fleet,
			archiver: d.Archiver,
			now:      d.Now,
			log:      d.Log.With().Str("component", "exports").Logger(),
		},
		Live: newLiveService(ctx, d),
	}
}
