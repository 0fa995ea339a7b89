package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/analysis"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/export"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/pipeline"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/state"
)

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type ExportService struct {
	fleet    *state.Fleet
	archiver Archiver
	now      func() time.Time
	log      zerolog.Logger
}

func (s *ExportService) record(format string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		s.log.Error().Err(err).Str("format", format).Msg("export failed")
	}
	metrics.ExportsTotal.WithLabelValues(format, status).Inc()
}

func (s *ExportService) csv(name string, t export.Table) (File, error) {
	var buf bytes.Buffer
	err := export.WriteCSV(&buf, t)
	s.record("csv", err)
	if err != nil {
		return File{}, err
	}
	return File{Name: name, ContentType: export.MIMECSV, Data: buf.Bytes()}, nil
}

func (s *ExportService) pdf(name, title string, pages []export.Page) (File, error) {
	var buf bytes.Buffer
	err := export.RenderPDF(&buf, title, pages)
	s.record("pdf", err)
	if err != nil {
		return File{}, err
	}
	return File{Name: name, ContentType: export.MIMEPDF, Data: buf.Bytes()}, nil
}

// AlertsCSV exports the filtered, sorted fleet alerts.
func (s *ExportService) AlertsCSV(q pipeline.Query) (File, error) {
	res := pipeline.Run(s.fleet.Devices(), q)
	return s.csv(export.FleetCSVName(s.now()), export.AlertsTable(res.Alerts))
}

func (s *ExportService) AlertsPDF(q pipeline.Query) (File, error) {
	now := s.now()
	res := pipeline.Run(s.fleet.Devices(), q)
	return s.pdf(export.FleetPDFName(now), "Alerts Report", export.FleetLayout(export.Date(now), res.Alerts))
}

func (s *ExportService) DevicePDF(id int, q pipeline.Query) (File, error) {
	d, err := s.fleet.Device(id)
	if err != nil {
		return File{}, err
	}
	now := s.now()
	res := pipeline.Run([]domain.Device{d}, q)
	return s.pdf(export.DevicePDFName(d.Name, now), "Alerts Report for "+d.Name,
		export.DeviceLayout(d.Name, export.Date(now), res.Alerts))
}

func (s *ExportService) AnalysisCSV(kind analysis.Kind, f analysis.Filter) (File, error) {
	r := analysis.Build(kind, f)
	return s.csv(analysis.Filename(r), analysis.Table(r))
}

// Archive uploads f and returns a download URL.
func (s *ExportService) Archive(ctx context.Context, f File) (string, error) {
	if s.archiver == nil {
		return "", fmt.Errorf("report archive: %w", domain.ErrUnavailable)
	}
	url, err := s.archiver.Archive(ctx, f.Name, f.Data, f.ContentType)
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", f.Name, err)
	}
	s.log.Info().Str("file", f.Name).Int("bytes", len(f.Data)).Msg("report archived")
	return url, nil
}

// Archived lists previously archived reports.
func (s *ExportService) Archived(ctx context.Context) ([]string, error) {
	if s.archiver == nil {
		return nil, fmt.Errorf("report archive: %w", domain.ErrUnavailable)
	}
	return s.archiver.Archived(ctx)
}
