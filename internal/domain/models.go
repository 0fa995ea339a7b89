package domain

import (
	"fmt"
	"time"
)

// TimestampLayout is the minute-resolution layout used by seed data and exports.
const TimestampLayout = "2006-01-02 15:04"

type SourceSeverity string

const (
	SourceCritical SourceSeverity = "critical"
	SourceWarning  SourceSeverity = "warning"
	SourceInfo     SourceSeverity = "info"
)

// Severity is the display rank shown to operators.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

var severityRank = map[Severity]int{
	SeverityHigh:   3,
	SeverityMedium: 2,
	SeverityLow:    1,
}

// Rank returns 3, 2, 1 for High, Medium, Low and 0 for anything else.
func (s Severity) Rank() int { return severityRank[s] }

var displaySeverity = map[SourceSeverity]Severity{
	SourceCritical: SeverityHigh,
	SourceWarning:  SeverityMedium,
	SourceInfo:     SeverityLow,
}

// Display maps a source token to its display rank. Unknown tokens pass through unchanged.
func (s SourceSeverity) Display() Severity {
	if d, ok := displaySeverity[s]; ok {
		return d
	}
	return Severity(s)
}

func (s SourceSeverity) Valid() bool {
	_, ok := displaySeverity[s]
	return ok
}

type Alert struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Source    SourceSeverity `json:"source_severity"`
	Severity  Severity       `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Resolved  bool           `json:"resolved"`
	Device    string         `json:"device"`
}

// NewAlert builds a validated alert. A zero timestamp is allowed and treated as missing.
func NewAlert(id, alertType, message string, sev SourceSeverity, ts time.Time, resolved bool) (Alert, error) {
	if id == "" {
		return Alert{}, fmt.Errorf("alert id is required: %w", ErrInvalid)
	}
	if !sev.Valid() {
		return Alert{}, fmt.Errorf("alert %s: unknown severity %q: %w", id, sev, ErrInvalid)
	}
	return Alert{
		ID:        id,
		Type:      alertType,
		Message:   message,
		Source:    sev,
		Severity:  sev.Display(),
		Timestamp: ts,
		Resolved:  resolved,
	}, nil
}

type DeviceType string

const (
	DeviceSolar    DeviceType = "Solar"
	DeviceWind     DeviceType = "Wind"
	DeviceBattery  DeviceType = "Battery"
	DeviceInverter DeviceType = "Inverter"
)

type DeviceStatus string

const (
	StatusHealthy  DeviceStatus = "Healthy"
	StatusWarning  DeviceStatus = "Warning"
	StatusCritical DeviceStatus = "Critical"
	StatusCharging DeviceStatus = "Charging"
)

func (t DeviceType) Valid() bool {
	switch t {
	case DeviceSolar, DeviceWind, DeviceBattery, DeviceInverter:
		return true
	}
	return false
}

func (s DeviceStatus) Valid() bool {
	switch s {
	case StatusHealthy, StatusWarning, StatusCritical, StatusCharging:
		return true
	}
	return false
}

type Health struct {
	Overall      int `json:"overall"`
	Connectivity int `json:"connectivity"`
	Performance  int `json:"performance"`
	Temperature  int `json:"temperature"`
	Vibration    int `json:"vibration"`
	Hardware     int `json:"hardware"`
}

type Metrics struct {
	CPU     int `json:"cpu"`
	Memory  int `json:"memory"`
	Storage int `json:"storage"`
	Network int `json:"network"`
}

// Snapshot is one time bucket of a device's history.
type Snapshot struct {
	Time   string  `json:"time"`
	Health int     `json:"health"`
	Temp   float64 `json:"temp"`
	Power  float64 `json:"power"`
}

type Device struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Type            DeviceType   `json:"type"`
	Location        string       `json:"location"`
	Status          DeviceStatus `json:"status"`
	Uptime          float64      `json:"uptime"`
	LastMaintenance time.Time    `json:"last_maintenance"`
	NextMaintenance time.Time    `json:"next_maintenance"`
	Power           float64      `json:"power"`
	Efficiency      float64      `json:"efficiency"`
	Temperature     float64      `json:"temperature"`
	Voltage         float64      `json:"voltage"`
	Current         float64      `json:"current"`
	Health          Health       `json:"health"`
	Alerts          []Alert      `json:"alerts"`
	Metrics         Metrics      `json:"metrics"`
	History         []Snapshot   `json:"historical_data"`
}

// NewDevice validates d and stamps every alert with the device name.
func NewDevice(d Device) (Device, error) {
	if d.Name == "" {
		return Device{}, fmt.Errorf("device %d: name is required: %w", d.ID, ErrInvalid)
	}
	if !d.Type.Valid() {
		return Device{}, fmt.Errorf("device %s: unknown type %q: %w", d.Name, d.Type, ErrInvalid)
	}
	if !d.Status.Valid() {
		return Device{}, fmt.Errorf("device %s: unknown status %q: %w", d.Name, d.Status, ErrInvalid)
	}
	if d.Uptime < 0 || d.Uptime > 100 {
		return Device{}, fmt.Errorf("device %s: uptime %.1f out of range: %w", d.Name, d.Uptime, ErrInvalid)
	}
	scores := []int{
		d.Health.Overall, d.Health.Connectivity, d.Health.Performance,
		d.Health.Temperature, d.Health.Vibration, d.Health.Hardware,
		d.Metrics.CPU, d.Metrics.Memory, d.Metrics.Storage, d.Metrics.Network,
	}
	for _, v := range scores {
		if v < 0 || v > 100 {
			return Device{}, fmt.Errorf("device %s: score %d out of range: %w", d.Name, v, ErrInvalid)
		}
	}

	alerts := make([]Alert, len(d.Alerts))
	for i, a := range d.Alerts {
		a.Device = d.Name
		alerts[i] = a
	}
	d.Alerts = alerts
	return d, nil
}

// Clone returns a deep copy of the device.
func (d Device) Clone() Device {
	c := d
	c.Alerts = append([]Alert(nil), d.Alerts...)
	c.History = append([]Snapshot(nil), d.History...)
	return c
}

type InsightCategory string

const (
	InsightPrediction   InsightCategory = "prediction"
	InsightAnomaly      InsightCategory = "anomaly"
	InsightOptimization InsightCategory = "optimization"
	InsightMaintenance  InsightCategory = "maintenance"
	InsightEfficiency   InsightCategory = "efficiency"
)

var InsightCategories = []InsightCategory{
	InsightPrediction, InsightAnomaly, InsightOptimization, InsightMaintenance, InsightEfficiency,
}

type Insight struct {
	ID         string          `json:"id"`
	Category   InsightCategory `json:"type"`
	Text       string          `json:"text"`
	Confidence int             `json:"confidence"`
	Timestamp  time.Time       `json:"timestamp"`
	Actions    []string        `json:"actions"`
}

type MonthlyRecord struct {
	Month       string  `json:"month"`
	Consumption float64 `json:"consumption"`
	Production  float64 `json:"production"`
	Efficiency  float64 `json:"efficiency"`
}

type EfficiencyRecord struct {
	Device      string  `json:"device"`
	Efficient   float64 `json:"efficient"`
	Moderate    float64 `json:"moderate"`
	Inefficient float64 `json:"inefficient"`
}

type HealthTrendRecord struct {
	Month    string  `json:"month"`
	Healthy  float64 `json:"healthy"`
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// EnergySummary is the headline block of the live energy monitor.
type EnergySummary struct {
	TotalGenerated  float64 `json:"total_generated"`
	TotalConsumed   float64 `json:"total_consumed"`
	NetEnergy       float64 `json:"net_energy"`
	MonthlySavings  float64 `json:"monthly_savings"`
	PowerFactor     float64 `json:"power_factor"`
	Frequency       float64 `json:"frequency"`
	CarbonAvoided   float64 `json:"carbon_avoided"`
	TreesEquivalent int     `json:"trees_equivalent"`
	CarbonCredits   int     `json:"carbon_credits"`
}

// EnergySource is one slice of the generation mix.
type EnergySource struct {
	Name  string  `json:"name"`
	Share float64 `json:"value"`
	KWh   float64 `json:"kwh"`
}

// Session is an issued dashboard login.
type Session struct {
	Token     string    `db:"token" json:"token"`
	Username  string    `db:"username" json:"username"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const RoleSuperAdmin = "SuperAdmin"
