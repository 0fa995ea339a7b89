package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/seed"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(domain.TimestampLayout, s)
	require.NoError(t, err)
	return v
}

func fleet(t *testing.T) []domain.Device {
	t.Helper()
	devs, err := seed.Devices()
	require.NoError(t, err)
	return devs
}

func allQueries() []Query {
	var out []Query
	for _, search := range []string{"", "inverter", "ALERT", "zzz"} {
		for _, sev := range []string{All, "High", "Medium", "Low"} {
			for _, status := range []string{All, StatusActive, StatusResolved} {
				for _, key := range []SortKey{SortTimestamp, SortSeverity, SortDevice} {
					for _, dir := range []Direction{Asc, Desc} {
						out = append(out, Query{Search: search, Severity: sev, Status: status, Sort: key, Order: dir})
					}
				}
			}
		}
	}
	return out
}

func TestSeverityFilterScenario(t *testing.T) {
	var alerts []domain.Alert
	for i, c := range []struct {
		sev      domain.SourceSeverity
		resolved bool
	}{{domain.SourceCritical, false}, {domain.SourceWarning, true}, {domain.SourceInfo, false}} {
		a, err := domain.NewAlert(string(rune('a'+i)), "t", "m", c.sev, ts(t, "2025-12-17 10:00"), c.resolved)
		require.NoError(t, err)
		alerts = append(alerts, a)
	}

	q := DefaultQuery()
	q.Severity = "High"
	res := RunAlerts(alerts, q)

	require.Len(t, res.Alerts, 1)
	assert.Equal(t, domain.SourceCritical, res.Alerts[0].Source)
	assert.Equal(t, 0, res.Summary.Resolved)
	assert.Equal(t, 1, res.Summary.Unresolved)
	assert.Equal(t, 1, res.Summary.High)
}

func TestSearchScenario(t *testing.T) {
	q := DefaultQuery()
	q.Search = "Inverter"
	res := Run(fleet(t), q)

	require.NotEmpty(t, res.Alerts)
	for _, a := range res.Alerts {
		assert.Equal(t, "Grid Inverter C", a.Device)
	}
	assert.Equal(t, 3, res.Summary.Total)
}

func TestSearchMatchesMessageAndType(t *testing.T) {
	alerts := []domain.Alert{
		{ID: "1", Type: "Offline Alert", Message: "x", Device: "d"},
		{ID: "2", Type: "y", Message: "Check INVERTER cabling", Device: "d"},
		{ID: "3", Type: "y", Message: "x", Device: "d"},
	}
	got := Search(alerts, "inverter")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = Search(alerts, "offline")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	assert.Len(t, Search(alerts, ""), 3)
}

func TestTimestampDescScenario(t *testing.T) {
	alerts := []domain.Alert{
		{ID: "a", Timestamp: ts(t, "2025-12-17 10:00")},
		{ID: "b", Timestamp: ts(t, "2025-12-17 14:15")},
		{ID: "c", Timestamp: ts(t, "2025-12-01 09:00")},
	}
	got := Sort(alerts, SortTimestamp, Desc)
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestSeveritySortRanks(t *testing.T) {
	alerts := []domain.Alert{
		{ID: "low", Severity: domain.SeverityLow},
		{ID: "odd", Severity: "Unknown"},
		{ID: "high", Severity: domain.SeverityHigh},
		{ID: "med", Severity: domain.SeverityMedium},
	}
	assert.Equal(t, []string{"high", "med", "low", "odd"}, ids(Sort(alerts, SortSeverity, Desc)))
	assert.Equal(t, []string{"odd", "low", "med", "high"}, ids(Sort(alerts, SortSeverity, Asc)))
}

func TestMissingTimestampRanksLast(t *testing.T) {
	alerts := []domain.Alert{
		{ID: "none"},
		{ID: "old", Timestamp: ts(t, "2025-01-01 00:00")},
		{ID: "new", Timestamp: ts(t, "2025-12-01 00:00")},
	}
	assert.Equal(t, []string{"new", "old", "none"}, ids(Sort(alerts, SortTimestamp, Desc)))
	assert.Equal(t, []string{"old", "new", "none"}, ids(Sort(alerts, SortTimestamp, Asc)))
}

func TestSortIsStable(t *testing.T) {
	alerts := []domain.Alert{
		{ID: "1", Device: "B"}, {ID: "2", Device: "A"}, {ID: "3", Device: "B"}, {ID: "4", Device: "A"},
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(Sort(alerts, SortDevice, Asc)))
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(Sort(alerts, SortDevice, Desc)))
}

func TestNormalizePassesUnknownThrough(t *testing.T) {
	got := Normalize([]domain.Alert{{Source: domain.SourceWarning}, {Source: "mystery"}})
	assert.Equal(t, domain.SeverityMedium, got[0].Severity)
	assert.Equal(t, domain.Severity("mystery"), got[1].Severity)
}

func TestFlattenAnnotatesDevice(t *testing.T) {
	devs := []domain.Device{
		{Name: "A", Alerts: []domain.Alert{{ID: "1"}, {ID: "2"}}},
		{Name: "B"},
		{Name: "C", Alerts: []domain.Alert{{ID: "3"}}},
	}
	got := Flatten(devs)
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
	assert.Equal(t, "A", got[0].Device)
	assert.Equal(t, "C", got[2].Device)
}

func TestFilteredIsSubset(t *testing.T) {
	devs := fleet(t)
	input := Flatten(devs)
	byID := map[string]domain.Alert{}
	for _, a := range Normalize(input) {
		byID[a.ID] = a
	}

	for _, q := range allQueries() {
		res := Run(devs, q)
		assert.LessOrEqual(t, len(res.Alerts), len(input))
		for _, a := range res.Alerts {
			orig, ok := byID[a.ID]
			require.True(t, ok, "fabricated alert %s", a.ID)
			assert.Equal(t, orig, a)
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	alerts := Normalize(Flatten(fleet(t)))
	for _, key := range []SortKey{SortTimestamp, SortSeverity, SortDevice} {
		for _, dir := range []Direction{Asc, Desc} {
			once := Sort(alerts, key, dir)
			assert.Equal(t, once, Sort(once, key, dir), "%s %s", key, dir)
		}
	}
}

func TestDirectionReversesDistinctPairs(t *testing.T) {
	alerts := Normalize(Flatten(fleet(t)))
	for _, key := range []SortKey{SortTimestamp, SortSeverity, SortDevice} {
		asc := position(Sort(alerts, key, Asc))
		desc := position(Sort(alerts, key, Desc))
		for _, a := range alerts {
			for _, b := range alerts {
				if Compare(key, a, b) == 0 {
					continue
				}
				assert.Equal(t, asc[a.ID] < asc[b.ID], desc[a.ID] > desc[b.ID], "%s: %s vs %s", key, a.ID, b.ID)
			}
		}
	}
}

func TestSummaryCountsConsistent(t *testing.T) {
	devs := fleet(t)
	for _, q := range allQueries() {
		s := Run(devs, q).Summary
		assert.Equal(t, s.Total, s.High+s.Medium+s.Low)
		assert.Equal(t, s.Total, s.Resolved+s.Unresolved)
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	q := DefaultQuery()
	q.Search = "no such alert"
	res := Run(fleet(t), q)
	assert.True(t, res.Empty())
	assert.Equal(t, Summary{}, res.Summary)
}

func TestStatusSelector(t *testing.T) {
	devs := fleet(t)
	q := DefaultQuery()
	q.Status = StatusResolved
	res := Run(devs, q)
	assert.Equal(t, 2, res.Summary.Total)
	for _, a := range res.Alerts {
		assert.True(t, a.Resolved)
	}

	q.Status = StatusActive
	assert.Equal(t, 6, Run(devs, q).Summary.Unresolved)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultQuery(), q)

	q, err = ParseQuery("  heat ", "High", "Active", "device", "asc")
	require.NoError(t, err)
	assert.Equal(t, Query{Search: "heat", Severity: "High", Status: "Active", Sort: SortDevice, Order: Asc}, q)

	for _, bad := range [][5]string{
		{"", "critical", "", "", ""},
		{"", "", "open", "", ""},
		{"", "", "", "name", ""},
		{"", "", "", "", "up"},
	} {
		_, err := ParseQuery(bad[0], bad[1], bad[2], bad[3], bad[4])
		assert.ErrorIs(t, err, domain.ErrInvalid)
	}
}

func ids(alerts []domain.Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}

func position(alerts []domain.Alert) map[string]int {
	out := make(map[string]int, len(alerts))
	for i, a := range alerts {
		out[a.ID] = i
	}
	return out
}
