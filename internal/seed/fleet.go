// Package seed holds the static mock fleet the dashboard is driven by.
package seed

import (
	"fmt"
	"time"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

type alertSeed struct {
	id, typ, msg string
	sev          domain.SourceSeverity
	at           string
	resolved     bool
}

type deviceSeed struct {
	device domain.Device
	last   string
	next   string
	alerts []alertSeed
}

func hourly(rows ...[3]float64) []domain.Snapshot {
	times := []string{"00:00", "04:00", "08:00", "12:00", "16:00", "20:00", "24:00"}
	out := make([]domain.Snapshot, 0, len(rows))
	for i, r := range rows {
		out = append(out, domain.Snapshot{Time: times[i%len(times)], Health: int(r[0]), Temp: r[1], Power: r[2]})
	}
	return out
}

var devices = []deviceSeed{
	{
		device: domain.Device{
			ID: 1, Name: "Solar Panel Array 1", Type: domain.DeviceSolar, Location: "Rooftop Section A",
			Status: domain.StatusHealthy, Uptime: 99.8, Power: 45.2, Efficiency: 92, Temperature: 42,
			Voltage: 380, Current: 118.9,
			Health:  domain.Health{Overall: 95, Connectivity: 100, Performance: 92, Temperature: 88, Vibration: 98, Hardware: 96},
			Metrics: domain.Metrics{CPU: 45, Memory: 62, Storage: 38, Network: 95},
			History: hourly([3]float64{94, 38, 0}, [3]float64{95, 36, 0}, [3]float64{96, 40, 35}, [3]float64{92, 45, 48},
				[3]float64{93, 42, 38}, [3]float64{95, 39, 12}, [3]float64{95, 37, 0}),
		},
		last: "2025-11-15", next: "2026-02-15",
		alerts: []alertSeed{
			{"s1-1", "Maintenance Reminder", "Cleaning recommended for optimal performance", domain.SourceInfo, "2025-12-17 10:30", false},
		},
	},
	{
		device: domain.Device{
			ID: 2, Name: "Wind Turbine A", Type: domain.DeviceWind, Location: "North Field",
			Status: domain.StatusHealthy, Uptime: 97.5, Power: 28.7, Efficiency: 85, Temperature: 38,
			Voltage: 400, Current: 71.75,
			Health:  domain.Health{Overall: 88, Connectivity: 98, Performance: 85, Temperature: 92, Vibration: 78, Hardware: 90},
			Metrics: domain.Metrics{CPU: 52, Memory: 58, Storage: 45, Network: 88},
			History: hourly([3]float64{87, 35, 25}, [3]float64{88, 34, 22}, [3]float64{89, 36, 28}, [3]float64{86, 40, 32},
				[3]float64{87, 39, 30}, [3]float64{88, 37, 26}, [3]float64{88, 36, 24}),
		},
		last: "2025-10-20", next: "2026-01-20",
		alerts: []alertSeed{
			{"w2-1", "Vibration Alert", "Vibration levels slightly elevated", domain.SourceWarning, "2025-12-17 09:15", true},
		},
	},
	{
		device: domain.Device{
			ID: 3, Name: "Battery Bank B", Type: domain.DeviceBattery, Location: "Storage Room 2",
			Status: domain.StatusCharging, Uptime: 99.2, Power: 60.1, Efficiency: 95, Temperature: 28,
			Voltage: 600, Current: 100.17,
			Health:  domain.Health{Overall: 97, Connectivity: 100, Performance: 95, Temperature: 98, Vibration: 100, Hardware: 94},
			Metrics: domain.Metrics{CPU: 38, Memory: 42, Storage: 78, Network: 100},
			History: hourly([3]float64{96, 26, 55}, [3]float64{97, 25, 58}, [3]float64{98, 27, 62}, [3]float64{97, 29, 65},
				[3]float64{96, 28, 60}, [3]float64{97, 27, 58}, [3]float64{97, 26, 56}),
		},
		last: "2025-12-01", next: "2026-03-01",
		alerts: []alertSeed{
			{"b3-1", "Charge Cycle", "Routine charge cycle initiated", domain.SourceInfo, "2025-12-17 08:45", false},
		},
	},
	{
		device: domain.Device{
			ID: 4, Name: "Grid Inverter C", Type: domain.DeviceInverter, Location: "Control Room",
			Status: domain.StatusCritical, Uptime: 45.2, Power: 0, Efficiency: 0, Temperature: 85,
			Voltage: 220, Current: 0,
			Health:  domain.Health{Overall: 32, Connectivity: 0, Performance: 0, Temperature: 45, Vibration: 88, Hardware: 35},
			Metrics: domain.Metrics{CPU: 0, Memory: 0, Storage: 92, Network: 0},
			History: hourly([3]float64{65, 55, 42}, [3]float64{58, 58, 38}, [3]float64{48, 65, 25}, [3]float64{35, 78, 10},
				[3]float64{32, 85, 0}, [3]float64{32, 82, 0}, [3]float64{32, 85, 0}),
		},
		last: "2025-08-10", next: "2025-11-10",
		alerts: []alertSeed{
			{"i4-1", "Offline Alert", "Device offline - immediate attention required", domain.SourceCritical, "2025-12-17 14:15", false},
			{"i4-2", "Overheat Alert", "Overheating detected", domain.SourceCritical, "2025-12-17 14:10", false},
			{"i4-3", "Maintenance Overdue", "Maintenance overdue", domain.SourceWarning, "2025-12-01 09:00", true},
		},
	},
	{
		device: domain.Device{
			ID: 5, Name: "Solar Panel Array 2", Type: domain.DeviceSolar, Location: "Rooftop Section B",
			Status: domain.StatusWarning, Uptime: 94.3, Power: 38.5, Efficiency: 78, Temperature: 48,
			Voltage: 375, Current: 102.67,
			Health:  domain.Health{Overall: 76, Connectivity: 95, Performance: 78, Temperature: 65, Vibration: 92, Hardware: 82},
			Metrics: domain.Metrics{CPU: 58, Memory: 71, Storage: 52, Network: 82},
			History: hourly([3]float64{78, 40, 0}, [3]float64{79, 38, 0}, [3]float64{75, 44, 32}, [3]float64{72, 52, 42},
				[3]float64{74, 48, 36}, [3]float64{77, 42, 15}, [3]float64{76, 41, 0}),
		},
		last: "2025-09-05", next: "2025-12-05",
		alerts: []alertSeed{
			{"s5-1", "Efficiency Warning", "Efficiency below optimal range", domain.SourceWarning, "2025-12-17 13:00", false},
			{"s5-2", "Temperature Alert", "Temperature elevated", domain.SourceInfo, "2025-12-17 12:45", false},
		},
	},
	{
		device: domain.Device{
			ID: 6, Name: "Wind Turbine B", Type: domain.DeviceWind, Location: "South Field",
			Status: domain.StatusHealthy, Uptime: 98.9, Power: 31.2, Efficiency: 88, Temperature: 35,
			Voltage: 405, Current: 76.96,
			Health:  domain.Health{Overall: 91, Connectivity: 100, Performance: 88, Temperature: 95, Vibration: 85, Hardware: 92},
			Metrics: domain.Metrics{CPU: 48, Memory: 55, Storage: 41, Network: 95},
			History: hourly([3]float64{90, 33, 28}, [3]float64{91, 32, 26}, [3]float64{92, 34, 30}, [3]float64{90, 37, 34},
				[3]float64{91, 36, 32}, [3]float64{91, 35, 29}, [3]float64{91, 34, 27}),
		},
		last: "2025-11-30", next: "2026-02-28",
	},
}

// Devices builds the seeded fleet. Every call returns fresh records.
func Devices() ([]domain.Device, error) {
	out := make([]domain.Device, 0, len(devices))
	for _, s := range devices {
		d := s.device
		var err error
		if d.LastMaintenance, err = time.Parse("2006-01-02", s.last); err != nil {
			return nil, fmt.Errorf("device %s: %w", d.Name, err)
		}
		if d.NextMaintenance, err = time.Parse("2006-01-02", s.next); err != nil {
			return nil, fmt.Errorf("device %s: %w", d.Name, err)
		}
		d.History = append([]domain.Snapshot(nil), s.device.History...)

		d.Alerts = make([]domain.Alert, 0, len(s.alerts))
		for _, as := range s.alerts {
			ts, err := time.Parse(domain.TimestampLayout, as.at)
			if err != nil {
				return nil, fmt.Errorf("alert %s: %w", as.id, err)
			}
			a, err := domain.NewAlert(as.id, as.typ, as.msg, as.sev, ts, as.resolved)
			if err != nil {
				return nil, err
			}
			d.Alerts = append(d.Alerts, a)
		}

		built, err := domain.NewDevice(d)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}
