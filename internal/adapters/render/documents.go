package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"southpaw/internal/application/orchestrators"
	"southpaw/internal/application/projections"
	"southpaw/internal/domain/attendance"
	"southpaw/internal/domain/chart"
	"southpaw/internal/domain/metrics"
	"southpaw/internal/domain/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// mdRenderer is a goldmark instance configured for safe HTML output. Raw
// HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// unavailableFigure is what displays show when a number could not be
// computed. Never rendered as zero.
const unavailableFigure = "N/A"

// Chart palette shared by the report charts.
var reportPalette = []string{"#1976d2", "#e53935", "#43a047", "#fb8c00", "#8e24aa", "#00897b"}

// CoachRow is one line of the report's coach performance table.
type CoachRow struct {
	Name    string
	Classes int
	Clients int
	Revenue string
	Share   string
	Tier    string
}

// MembershipRow is one line of the report's active membership table.
type MembershipRow struct {
	Name      string
	Email     string
	Submitted string
	Expires   string
}

// ArchivedBanner marks a re-viewed historical report with both timestamps.
type ArchivedBanner struct {
	ExportedAt string
	ViewedAt   string
}

// SummaryReportData feeds the summary report template.
type SummaryReportData struct {
	PeriodLabel string
	GeneratedAt string

	TotalRevenue       string
	TotalCoachPayments string
	MembershipRevenue  string
	TotalProfit        string
	ActiveMembers      string
	TotalClasses       int
	TopCoach           string
	PopularClass       string

	MembershipUnavailable bool
	Coaches               []CoachRow
	Memberships           []MembershipRow
	RevenueChart          template.HTML

	// NotArchived is set when the export succeeded but the history write
	// failed; the document is shown with a warning instead of being lost.
	NotArchived bool

	Banner *ArchivedBanner
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SummaryReportFromExport shapes an export result for the report template.
func SummaryReportFromExport(result orchestrators.ExportReportResult) SummaryReportData {
	data := summaryFromMetrics(result.Metrics)
	data.GeneratedAt = result.Snapshot.ExportedAt.Format("2 Jan 2006 15:04")
	data.NotArchived = !result.Archived
	return data
}

// SummaryReportFromLive shapes a live dashboard result for the report template.
func SummaryReportFromLive(metricsResult projections.GetDashboardMetricsResult, now time.Time) SummaryReportData {
	data := summaryFromMetrics(metricsResult)
	data.GeneratedAt = now.Format("2 Jan 2006 15:04")
	return data
}

func summaryFromMetrics(m projections.GetDashboardMetricsResult) SummaryReportData {
	d := m.Dashboard
	data := SummaryReportData{
		PeriodLabel:           m.PeriodLabel,
		TotalRevenue:          money(d.TotalRevenue),
		TotalCoachPayments:    money(d.TotalCoachPayments),
		MembershipRevenue:     money(d.MembershipRevenue),
		TotalProfit:           money(d.TotalProfit),
		TotalClasses:          d.TotalClasses,
		TopCoach:              orDash(d.TopCoach),
		PopularClass:          orDash(d.PopularClass),
		MembershipUnavailable: d.MembershipUnavailable,
		ActiveMembers:         fmt.Sprintf("%d", d.ActiveMembers),
	}
	if d.MembershipUnavailable {
		data.ActiveMembers = unavailableFigure
		data.MembershipRevenue = unavailableFigure
	}

	entries := make([]chart.DoughnutEntry, 0, len(m.Aggregates))
	for i, agg := range m.Aggregates {
		data.Coaches = append(data.Coaches, CoachRow{
			Name:    agg.Coach.Name,
			Classes: agg.TotalClasses,
			Clients: agg.TotalClients,
			Revenue: money(agg.TotalRevenue),
			Share:   money(agg.CoachShare),
			Tier:    metrics.PerformanceTier(agg.TotalRevenue),
		})
		if agg.TotalRevenue.IsPositive() {
			entries = append(entries, chart.DoughnutEntry{
				Label: agg.Coach.Name,
				Value: agg.TotalRevenue.InexactFloat64(),
				Color: reportPalette[i%len(reportPalette)],
			})
		}
	}
	if len(entries) > 0 {
		surface := chart.Surface{Width: 420, Height: 260}
		data.RevenueChart = template.HTML(EncodeSVG(surface, chart.RenderDoughnut(surface, entries)))
	}

	for _, app := range m.ActiveMemberships {
		row := MembershipRow{
			Name:      app.Name,
			Email:     app.Email,
			Submitted: app.SubmittedAt.Format("2006-01-02"),
			Expires:   "-",
		}
		if app.ExpiresAt != nil {
			row.Expires = app.ExpiresAt.Format("2006-01-02")
		}
		data.Memberships = append(data.Memberships, row)
	}

	return data
}

// SummaryReportFromSnapshot shapes an archived snapshot for re-viewing. Only
// the frozen numbers are rendered; nothing is recomputed from live data.
// POST: The headline figures come verbatim from the snapshot
func SummaryReportFromSnapshot(snap report.Snapshot, label string, viewedAt time.Time) SummaryReportData {
	return SummaryReportData{
		PeriodLabel:   label,
		GeneratedAt:   snap.ExportedAt.Format("2 Jan 2006 15:04"),
		TotalRevenue:  money(snap.Data.TotalRevenue),
		TotalProfit:   money(snap.Data.TotalProfit),
		ActiveMembers: fmt.Sprintf("%d", snap.Data.ActiveMembers),
		TotalClasses:  snap.Data.TotalClasses,
		PopularClass:  orDash(snap.Data.PopularClass),
		TopCoach:      "-",

		// Figures the snapshot does not freeze display as unavailable.
		TotalCoachPayments: unavailableFigure,
		MembershipRevenue:  unavailableFigure,

		Banner: &ArchivedBanner{
			ExportedAt: snap.ExportedAt.Format("2 Jan 2006 15:04"),
			ViewedAt:   viewedAt.Format("2 Jan 2006 15:04"),
		},
	}
}

// SummaryReportHTML renders the summary report document.
func SummaryReportHTML(data SummaryReportData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, "summary_report.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PayslipRow is one class line on the payslip.
type PayslipRow struct {
	ClassName string
	Date      string
	Clients   int
	Revenue   string
	Share     string
}

// PayslipData feeds the payslip template.
type PayslipData struct {
	CoachName   string
	CoachEmail  string
	PeriodLabel string
	GeneratedAt string

	Rows         []PayslipRow
	TotalClasses int
	TotalClients int
	TotalRevenue string
	TotalShare   string

	Attendance *attendance.Summary

	AcknowledgmentHTML template.HTML
}

// PayslipFromSlip shapes an assembled payslip for the payslip template,
// rendering the acknowledgment markdown to safe HTML.
func PayslipFromSlip(slip orchestrators.Payslip) PayslipData {
	data := PayslipData{
		CoachName:          slip.Coach.Name,
		CoachEmail:         slip.Coach.Email,
		PeriodLabel:        slip.PeriodLabel,
		GeneratedAt:        slip.GeneratedAt.Format("2 Jan 2006"),
		TotalClasses:       slip.TotalClasses,
		TotalClients:       slip.TotalClients,
		TotalRevenue:       money(slip.TotalRevenue),
		TotalShare:         money(slip.TotalShare),
		Attendance:         slip.Attendance,
		AcknowledgmentHTML: renderMarkdown(slip.Acknowledgment),
	}
	for _, rec := range slip.Breakdown {
		data.Rows = append(data.Rows, PayslipRow{
			ClassName: rec.ClassName,
			Date:      rec.Date,
			Clients:   rec.ClientCount,
			Revenue:   money(rec.Revenue),
			Share:     money(rec.CoachShare),
		})
	}
	return data
}

// PayslipHTML renders the payslip document.
func PayslipHTML(data PayslipData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, "payslip.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
