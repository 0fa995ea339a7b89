package export

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

func Date(t time.Time) string { return t.Format(DateLayout) }

func FleetPDFName(t time.Time) string { return fmt.Sprintf("alerts_report_%s.pdf", Date(t)) }

func FleetCSVName(t time.Time) string { return fmt.Sprintf("alerts_report_%s.csv", Date(t)) }

// DevicePDFName replaces spaces in the device name so the header value needs no quoting.
func DevicePDFName(device string, t time.Time) string {
	return fmt.Sprintf("%s_alerts_report_%s.pdf", strings.ReplaceAll(device, " ", "_"), Date(t))
}

func AnalysisCSVName(kind, start, end string) string {
	return fmt.Sprintf("%s_analysis_%s_to_%s.csv", kind, start, end)
}
