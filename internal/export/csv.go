// Package export renders filtered collections as CSV and PDF downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

const (
	MIMECSV = "text/csv; charset=utf-8"
	MIMEPDF = "application/pdf"
)

// Table is a header row plus one row per record.
type Table struct {
	Header []string
	Rows   [][]string
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w: %w", domain.ErrExport, err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w: %w", domain.ErrExport, err)
	}
	return nil
}

func status(a domain.Alert) string {
	if a.Resolved {
		return "Resolved"
	}
	return "Active"
}

func timestamp(a domain.Alert) string {
	if a.Timestamp.IsZero() {
		return "N/A"
	}
	return a.Timestamp.Format(domain.TimestampLayout)
}

// AlertsTable lays out alerts in the order given.
func AlertsTable(alerts []domain.Alert) Table {
	t := Table{
		Header: []string{"ID", "Device", "Type", "Severity", "Status", "Message", "Timestamp"},
		Rows:   make([][]string, 0, len(alerts)),
	}
	for _, a := range alerts {
		t.Rows = append(t.Rows, []string{
			a.ID, a.Device, a.Type, string(a.Severity), status(a), a.Message, timestamp(a),
		})
	}
	return t
}
