package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

type DeviceQuery struct {
	Search string
	Status string
	Type   string
}

func ParseDeviceQuery(search, status, typ string) (DeviceQuery, error) {
	q := DeviceQuery{Search: strings.TrimSpace(search), Status: All, Type: All}
	if status != "" && status != All {
		if !domain.DeviceStatus(status).Valid() {
			return DeviceQuery{}, fmt.Errorf("device status %q: %w", status, domain.ErrInvalid)
		}
		q.Status = status
	}
	if typ != "" && typ != All {
		if !domain.DeviceType(typ).Valid() {
			return DeviceQuery{}, fmt.Errorf("device type %q: %w", typ, domain.ErrInvalid)
		}
		q.Type = typ
	}
	return q, nil
}

// FilterDevices matches search against name and location, then applies the
// status and type selectors.
func FilterDevices(devices []domain.Device, q DeviceQuery) []domain.Device {
	needle := strings.ToLower(q.Search)
	out := make([]domain.Device, 0, len(devices))
	for _, d := range devices {
		if needle != "" &&
			!strings.Contains(strings.ToLower(d.Name), needle) &&
			!strings.Contains(strings.ToLower(d.Location), needle) {
			continue
		}
		if q.Status != "" && q.Status != All && string(d.Status) != q.Status {
			continue
		}
		if q.Type != "" && q.Type != All && string(d.Type) != q.Type {
			continue
		}
		out = append(out, d)
	}
	return out
}

type DeviceStats struct {
	Total     int     `json:"total"`
	Healthy   int     `json:"healthy"`
	Warning   int     `json:"warning"`
	Critical  int     `json:"critical"`
	Charging  int     `json:"charging"`
	AvgHealth int     `json:"avg_health"`
	AvgUptime float64 `json:"avg_uptime"`
}

// Stats summarises the fleet. Average health is a whole percentage and
// average uptime is rounded to one decimal.
func Stats(devices []domain.Device) DeviceStats {
	s := DeviceStats{Total: len(devices)}
	var health, uptime float64
	for _, d := range devices {
		health += float64(d.Health.Overall)
		uptime += d.Uptime
		switch d.Status {
		case domain.StatusHealthy:
			s.Healthy++
		case domain.StatusWarning:
			s.Warning++
		case domain.StatusCritical:
			s.Critical++
		case domain.StatusCharging:
			s.Charging++
		}
	}
	if n := float64(len(devices)); n > 0 {
		s.AvgHealth = int(math.Round(health / n))
		s.AvgUptime = math.Round(uptime/n*10) / 10
	}
	return s
}

// SeverityPoint is one bar of the per-device severity chart.
type SeverityPoint struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func SeverityChart(s Summary) []SeverityPoint {
	return []SeverityPoint{
		{Name: string(domain.SeverityHigh), Count: s.High},
		{Name: string(domain.SeverityMedium), Count: s.Medium},
		{Name: string(domain.SeverityLow), Count: s.Low},
	}
}
