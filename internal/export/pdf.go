package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// Page geometry in millimetres on A4 portrait.
const (
	marginX    = 10.0
	topY       = 10.0
	firstEntry = 30.0
	pageBreakY = 280.0
	fontSize   = 11.0
)

// Line is one text run at an absolute position on a page.
type Line struct {
	X, Y float64
	Text string
}

type Page []Line

// paginator places lines and opens a new page once the cursor passes pageBreakY.
type paginator struct {
	pages []Page
	y     float64
	spill bool
}

func newPaginator() *paginator { return &paginator{pages: []Page{nil}} }

func (p *paginator) at(y float64, text string) {
	last := len(p.pages) - 1
	p.pages[last] = append(p.pages[last], Line{X: marginX, Y: y, Text: text})
}

// advance moves the cursor; the page break is deferred until the next entry
// so a report never ends on a blank page.
func (p *paginator) advance(step float64) {
	p.y += step
	if p.y > pageBreakY {
		p.spill = true
	}
}

func (p *paginator) entry() {
	if p.spill {
		p.pages = append(p.pages, nil)
		p.y = topY
		p.spill = false
	}
}

// FleetLayout is the fleet-wide alerts report: a title, a totals line and
// three lines per alert.
func FleetLayout(date string, alerts []domain.Alert) []Page {
	unresolved := 0
	for _, a := range alerts {
		if !a.Resolved {
			unresolved++
		}
	}

	p := newPaginator()
	p.at(topY, fmt.Sprintf("Alerts Report - %s", date))
	p.at(20, fmt.Sprintf("Total Alerts: %d | Unresolved: %d", len(alerts), unresolved))
	p.y = firstEntry
	for i, a := range alerts {
		p.entry()
		p.at(p.y, fmt.Sprintf("%d. %s (%s - %s) - %s", i+1, a.Type, a.Severity, status(a), a.Device))
		p.at(p.y+5, "   "+a.Message)
		p.at(p.y+10, "   Time: "+timestamp(a))
		p.advance(15)
	}
	return p.pages
}

// DeviceLayout is the single-device report: one line per alert.
func DeviceLayout(device, date string, alerts []domain.Alert) []Page {
	p := newPaginator()
	p.at(topY, fmt.Sprintf("Alerts Report for %s - %s", device, date))
	p.at(20, fmt.Sprintf("Total Alerts: %d", len(alerts)))
	p.y = firstEntry
	for _, a := range alerts {
		p.entry()
		p.at(p.y, fmt.Sprintf("%s (%s): %s - %s", a.Severity, status(a), a.Message, timestamp(a)))
		p.advance(10)
	}
	return p.pages
}

// RenderPDF draws pages into w.
func RenderPDF(w io.Writer, title string, pages []Page) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetFont("Helvetica", "", fontSize)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, page := range pages {
		doc.AddPage()
		for _, l := range page {
			doc.Text(l.X, l.Y, tr(l.Text))
		}
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w: %w", domain.ErrExport, err)
	}
	return nil
}
