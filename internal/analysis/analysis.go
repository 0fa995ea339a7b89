// Package analysis filters and summarises the yearly energy series shown on
// the analysis page.
package analysis

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/aggregator"
	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/anomaly"
	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/converter"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/export"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
)

type Kind string

const (
	KindTrend      Kind = "trend"
	KindEfficiency Kind = "efficiency"
	KindHealth     Kind = "health"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindTrend, KindEfficiency, KindHealth:
		return k, nil
	}
	return "", fmt.Errorf("analysis type %q: %w", s, domain.ErrInvalid)
}

// AllDevices is the wildcard for the efficiency device filter.
const AllDevices = "all"

const (
	DefaultStart = "2025-01-01"
	DefaultEnd   = "2025-12-17"
)

// smoothing is the moving-average window applied to the production series.
const smoothing = 3

type Filter struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	EfficiencyMin float64   `json:"efficiency_min"`
	Device        string    `json:"device"`
}

// ParseFilter reads the query-string form of a filter. Blank values take the defaults.
func ParseFilter(start, end, efficiencyMin, device string) (Filter, error) {
	if start == "" {
		start = DefaultStart
	}
	if end == "" {
		end = DefaultEnd
	}
	var f Filter
	var err error
	if f.Start, err = time.Parse(export.DateLayout, start); err != nil {
		return Filter{}, fmt.Errorf("start %q: %w", start, domain.ErrInvalid)
	}
	if f.End, err = time.Parse(export.DateLayout, end); err != nil {
		return Filter{}, fmt.Errorf("end %q: %w", end, domain.ErrInvalid)
	}
	if f.End.Before(f.Start) {
		return Filter{}, fmt.Errorf("range %s to %s: %w", start, end, domain.ErrInvalid)
	}
	if s := strings.TrimSpace(efficiencyMin); s != "" {
		if f.EfficiencyMin, err = strconv.ParseFloat(s, 64); err != nil {
			return Filter{}, fmt.Errorf("efficiency_min %q: %w", efficiencyMin, domain.ErrInvalid)
		}
	}
	f.Device = device
	if f.Device == "" {
		f.Device = AllDevices
	}
	return f, nil
}

func (f Filter) StartDate() string { return f.Start.Format(export.DateLayout) }
func (f Filter) EndDate() string   { return f.End.Format(export.DateLayout) }

// monthStart maps a month label to the first day of that month in the seed year.
func monthStart(month string) (time.Time, bool) {
	i := slices.Index(seed.Months, month)
	if i < 0 {
		return time.Time{}, false
	}
	return time.Date(seed.Year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), true
}

func (f Filter) inRange(month string) bool {
	d, ok := monthStart(month)
	return ok && !d.Before(f.Start) && !d.After(f.End)
}

// Monthly keeps months whose first day falls in range and whose efficiency
// meets the minimum.
func Monthly(records []domain.MonthlyRecord, f Filter) []domain.MonthlyRecord {
	out := make([]domain.MonthlyRecord, 0, len(records))
	for _, r := range records {
		if f.inRange(r.Month) && r.Efficiency >= f.EfficiencyMin {
			out = append(out, r)
		}
	}
	return out
}

func Efficiency(records []domain.EfficiencyRecord, f Filter) []domain.EfficiencyRecord {
	if f.Device == "" || f.Device == AllDevices {
		return slices.Clone(records)
	}
	out := make([]domain.EfficiencyRecord, 0, 1)
	for _, r := range records {
		if r.Device == f.Device {
			out = append(out, r)
		}
	}
	return out
}

func Health(records []domain.HealthTrendRecord, f Filter) []domain.HealthTrendRecord {
	out := make([]domain.HealthTrendRecord, 0, len(records))
	for _, r := range records {
		if f.inRange(r.Month) {
			out = append(out, r)
		}
	}
	return out
}

type Summary struct {
	TotalProduction    float64   `json:"total_production"`
	TotalProductionMWh float64   `json:"total_production_mwh"`
	ConversionRatio    float64   `json:"conversion_ratio"`
	AverageEfficiency  int       `json:"average_efficiency"`
	PeakMonth          string    `json:"peak_month"`
	PeakProduction     float64   `json:"peak_production"`
	ProductionTrend    []float64 `json:"production_trend"`
	ConsumptionSpikes  int       `json:"consumption_spikes"`
}

func points(records []domain.MonthlyRecord, value func(domain.MonthlyRecord) float64) []aggregator.Point {
	out := make([]aggregator.Point, 0, len(records))
	for _, r := range records {
		ts, _ := monthStart(r.Month)
		out = append(out, aggregator.Point{Value: value(r), Timestamp: ts})
	}
	return out
}

// Summarize computes the headline figures for the filtered monthly series.
// An empty series reports a zero summary with PeakMonth "N/A".
func Summarize(monthly []domain.MonthlyRecord) Summary {
	s := Summary{PeakMonth: "N/A"}
	if len(monthly) == 0 {
		return s
	}

	production := points(monthly, func(r domain.MonthlyRecord) float64 { return r.Production })
	consumption := points(monthly, func(r domain.MonthlyRecord) float64 { return r.Consumption })
	efficiency := points(monthly, func(r domain.MonthlyRecord) float64 { return r.Efficiency })

	conv := &converter.EnergyConverter{}
	s.TotalProduction = aggregator.Sum(production)
	s.TotalProductionMWh = conv.KWhToMWh(s.TotalProduction)
	s.ConversionRatio = conv.CalculateEfficiency(aggregator.Sum(consumption), s.TotalProduction)
	s.AverageEfficiency = int(math.Round(aggregator.Average(efficiency)))
	if len(production) >= smoothing {
		s.ProductionTrend = aggregator.MovingAverage(production, smoothing)
	}

	peak := monthly[0]
	for _, r := range monthly[1:] {
		if r.Production > peak.Production {
			peak = r
		}
	}
	s.PeakMonth, s.PeakProduction = peak.Month, peak.Production

	if len(monthly) > smoothing {
		readings := make([]anomaly.Reading, 0, len(monthly))
		for _, r := range monthly {
			readings = append(readings, anomaly.Reading{Consumption: r.Consumption})
		}
		detector := &anomaly.AnomalyDetector{Threshold: 2.0, WindowSize: smoothing}
		s.ConsumptionSpikes = len(detector.DetectSpikes(readings))
	}
	return s
}

// Slice is one segment of the efficiency pie.
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Pie averages each efficiency class over the filtered devices.
func Pie(records []domain.EfficiencyRecord) []Slice {
	var eff, mod, ineff float64
	for _, r := range records {
		eff += r.Efficient
		mod += r.Moderate
		ineff += r.Inefficient
	}
	if n := float64(len(records)); n > 0 {
		eff, mod, ineff = eff/n, mod/n, ineff/n
	}
	return []Slice{
		{Name: "Efficient", Value: eff},
		{Name: "Moderate", Value: mod},
		{Name: "Inefficient", Value: ineff},
	}
}

// Report is everything the analysis view renders for one filter.
type Report struct {
	Kind       Kind                       `json:"type"`
	Filter     Filter                     `json:"filter"`
	Monthly    []domain.MonthlyRecord     `json:"monthly"`
	Efficiency []domain.EfficiencyRecord  `json:"efficiency"`
	Health     []domain.HealthTrendRecord `json:"health"`
	Summary    Summary                    `json:"summary"`
	Pie        []Slice                    `json:"pie"`
}

// Build runs every filter over the seeded series.
func Build(kind Kind, f Filter) Report {
	monthly := Monthly(seed.Monthly(), f)
	eff := Efficiency(seed.EfficiencyBreakdown(), f)
	return Report{
		Kind:       kind,
		Filter:     f,
		Monthly:    monthly,
		Efficiency: eff,
		Health:     Health(seed.HealthTrends(), f),
		Summary:    Summarize(monthly),
		Pie:        Pie(eff),
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Table lays out the series selected by the report kind for CSV export.
func Table(r Report) export.Table {
	var t export.Table
	switch r.Kind {
	case KindEfficiency:
		t.Header = []string{"Device", "Efficient (%)", "Moderate (%)", "Inefficient (%)"}
		for _, e := range r.Efficiency {
			t.Rows = append(t.Rows, []string{e.Device, num(e.Efficient), num(e.Moderate), num(e.Inefficient)})
		}
	case KindHealth:
		t.Header = []string{"Month", "Healthy (%)", "Warning (%)", "Critical (%)"}
		for _, h := range r.Health {
			t.Rows = append(t.Rows, []string{h.Month, num(h.Healthy), num(h.Warning), num(h.Critical)})
		}
	default:
		t.Header = []string{"Month", "Consumption (kWh)", "Production (kWh)", "Efficiency (%)"}
		for _, m := range r.Monthly {
			t.Rows = append(t.Rows, []string{m.Month, num(m.Consumption), num(m.Production), num(m.Efficiency)})
		}
	}
	return t
}

// Filename is the download name for the report's CSV.
func Filename(r Report) string {
	return export.AnalysisCSVName(string(r.Kind), r.Filter.StartDate(), r.Filter.EndDate())
}
