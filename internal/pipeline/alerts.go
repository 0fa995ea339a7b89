// Package pipeline turns device alert collections into display-ready, ordered
// alert lists with summary counts. Every function here is pure.
package pipeline

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// All is the wildcard accepted by every categorical selector.
const All = "All"

type SortKey string

const (
	SortTimestamp SortKey = "timestamp"
	SortSeverity  SortKey = "severity"
	SortDevice    SortKey = "device"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	StatusActive   = "Active"
	StatusResolved = "Resolved"
)

// Query is the filter, search and sort state of one alert view.
type Query struct {
	Search   string
	Severity string
	Status   string
	Sort     SortKey
	Order    Direction
}

// DefaultQuery matches the initial view: everything, newest first.
func DefaultQuery() Query {
	return Query{Severity: All, Status: All, Sort: SortTimestamp, Order: Desc}
}

// ParseQuery fills blanks with defaults and rejects unknown selectors.
func ParseQuery(search, severity, status, sortKey, order string) (Query, error) {
	q := DefaultQuery()
	q.Search = strings.TrimSpace(search)

	if severity != "" {
		switch severity {
		case All, string(domain.SeverityHigh), string(domain.SeverityMedium), string(domain.SeverityLow):
			q.Severity = severity
		default:
			return Query{}, fmt.Errorf("severity %q: %w", severity, domain.ErrInvalid)
		}
	}
	if status != "" {
		switch status {
		case All, StatusActive, StatusResolved:
			q.Status = status
		default:
			return Query{}, fmt.Errorf("status %q: %w", status, domain.ErrInvalid)
		}
	}
	if sortKey != "" {
		switch SortKey(sortKey) {
		case SortTimestamp, SortSeverity, SortDevice:
			q.Sort = SortKey(sortKey)
		default:
			return Query{}, fmt.Errorf("sort key %q: %w", sortKey, domain.ErrInvalid)
		}
	}
	if order != "" {
		switch Direction(order) {
		case Asc, Desc:
			q.Order = Direction(order)
		default:
			return Query{}, fmt.Errorf("sort order %q: %w", order, domain.ErrInvalid)
		}
	}
	return q, nil
}

type Summary struct {
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Total      int `json:"total"`
}

type Result struct {
	Alerts  []domain.Alert `json:"alerts"`
	Summary Summary        `json:"summary"`
}

// Empty reports the "no alerts found" state.
func (r Result) Empty() bool { return len(r.Alerts) == 0 }

// Flatten concatenates every device's alerts in device order, stamping each
// with the owning device name.
func Flatten(devices []domain.Device) []domain.Alert {
	n := 0
	for _, d := range devices {
		n += len(d.Alerts)
	}
	out := make([]domain.Alert, 0, n)
	for _, d := range devices {
		for _, a := range d.Alerts {
			if a.Device == "" {
				a.Device = d.Name
			}
			out = append(out, a)
		}
	}
	return out
}

// Normalize sets each alert's display severity from its source token.
func Normalize(alerts []domain.Alert) []domain.Alert {
	out := make([]domain.Alert, len(alerts))
	for i, a := range alerts {
		if a.Source != "" {
			a.Severity = a.Source.Display()
		}
		out[i] = a
	}
	return out
}

// Search keeps alerts whose message, type or device contains term, ignoring case.
func Search(alerts []domain.Alert, term string) []domain.Alert {
	if term == "" {
		return slices.Clone(alerts)
	}
	needle := strings.ToLower(term)
	out := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		if strings.Contains(strings.ToLower(a.Message), needle) ||
			strings.Contains(strings.ToLower(a.Type), needle) ||
			strings.Contains(strings.ToLower(a.Device), needle) {
			out = append(out, a)
		}
	}
	return out
}

// FilterCategory applies the severity and status selectors.
func FilterCategory(alerts []domain.Alert, severity, status string) []domain.Alert {
	out := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		if severity != "" && severity != All && string(a.Severity) != severity {
			continue
		}
		switch status {
		case StatusActive:
			if a.Resolved {
				continue
			}
		case StatusResolved:
			if !a.Resolved {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// Compare orders two alerts ascending by key. Missing timestamps are handled in Sort.
func Compare(key SortKey, a, b domain.Alert) int {
	switch key {
	case SortTimestamp:
		return a.Timestamp.Compare(b.Timestamp)
	case SortSeverity:
		return cmp.Compare(a.Severity.Rank(), b.Severity.Rank())
	case SortDevice:
		return strings.Compare(a.Device, b.Device)
	}
	return 0
}

// Sort returns a stably sorted copy. Alerts without a timestamp rank last in
// either direction when sorting by timestamp.
func Sort(alerts []domain.Alert, key SortKey, dir Direction) []domain.Alert {
	out := slices.Clone(alerts)
	slices.SortStableFunc(out, func(a, b domain.Alert) int {
		if key == SortTimestamp {
			az, bz := a.Timestamp.IsZero(), b.Timestamp.IsZero()
			switch {
			case az && bz:
				return 0
			case az:
				return 1
			case bz:
				return -1
			}
		}
		c := Compare(key, a, b)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Summarize counts the given set. Alerts with an unmapped severity count toward
// Total but no severity bucket.
func Summarize(alerts []domain.Alert) Summary {
	var s Summary
	for _, a := range alerts {
		switch a.Severity {
		case domain.SeverityHigh:
			s.High++
		case domain.SeverityMedium:
			s.Medium++
		case domain.SeverityLow:
			s.Low++
		}
		if a.Resolved {
			s.Resolved++
		} else {
			s.Unresolved++
		}
	}
	s.Total = len(alerts)
	return s
}

// Run is the full pipeline over a set of devices.
func Run(devices []domain.Device, q Query) Result {
	return RunAlerts(Flatten(devices), q)
}

// RunAlerts runs every step after flattening.
func RunAlerts(alerts []domain.Alert, q Query) Result {
	filtered := FilterCategory(Search(Normalize(alerts), q.Search), q.Severity, q.Status)
	return Result{
		Alerts:  Sort(filtered, q.Sort, q.Order),
		Summary: Summarize(filtered),
	}
}
