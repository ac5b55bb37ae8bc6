package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"southpaw/internal/adapters/render"
	"southpaw/internal/application/orchestrators"
	"southpaw/internal/application/projections"
	"southpaw/internal/domain/chart"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/metrics"
	"southpaw/internal/domain/payroll"
	"southpaw/internal/domain/period"
	"southpaw/internal/domain/report"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// dashboardRefresher serializes dashboard refreshes so a stale in-flight
// refresh never overwrites a newer one.
var dashboardRefresher projections.MetricsRefresher

// chartPalette is the shared color palette for the chart endpoints.
var chartPalette = []string{"#1976d2", "#e53935", "#43a047", "#fb8c00", "#8e24aa", "#00897b"}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_error", "error", err.Error())
	}
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		slog.Error("html_write_error", "error", err.Error())
	}
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write([]byte(svg)); err != nil {
		slog.Error("svg_write_error", "error", err.Error())
	}
}

// periodQuery reads the period selector and month offset from query params.
func periodQuery(r *http.Request) (string, int) {
	p := r.URL.Query().Get("period")
	if p == "" {
		p = period.Month
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return p, offset
}

func metricsDeps() projections.GetDashboardMetricsDeps {
	return projections.GetDashboardMetricsDeps{
		CoachStore:      stores.CoachStore,
		EarningsStore:   stores.EarningsStore,
		MembershipStore: stores.MembershipStore,
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard", handleGetDashboard)
	mux.HandleFunc("GET /api/reports/history", handleGetReportHistory)
	mux.HandleFunc("POST /reports/export", handleExportReport)
	mux.HandleFunc("GET /reports/{id}", handleViewArchivedReport)
	mux.HandleFunc("GET /payslips/{coachID}", handleGetPayslip)
	mux.HandleFunc("POST /api/payments", handleRecordPayment)
	mux.HandleFunc("GET /api/payments", handleListPayments)
	mux.HandleFunc("GET /api/payroll/schedule", handleGetPayrollSchedule)
	mux.HandleFunc("GET /charts/coach-revenue.svg", handleCoachRevenueChart)
	mux.HandleFunc("GET /charts/class-popularity.svg", handleClassPopularityChart)
	mux.HandleFunc("GET /charts/revenue-split.svg", handleRevenueSplitChart)
	mux.HandleFunc("GET /charts/earnings-trend.svg", handleEarningsTrendChart)
}

// --- Dashboard ---

type dashboardCoachJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Classes    int    `json:"classes"`
	Clients    int    `json:"clients"`
	Revenue    string `json:"revenue"`
	CoachShare string `json:"coachShare"`
	Tier       string `json:"tier"`
}

type dashboardJSON struct {
	Period                string               `json:"period"`
	Label                 string               `json:"label"`
	StartDate             string               `json:"startDate"`
	EndDate               string               `json:"endDate"`
	TotalRevenue          string               `json:"totalRevenue"`
	TotalCoachPayments    string               `json:"totalCoachPayments"`
	TotalProfit           string               `json:"totalProfit"`
	ActiveMembers         *int                 `json:"activeMembers"`
	TotalClasses          int                  `json:"totalClasses"`
	TopCoach              string               `json:"topCoach"`
	PopularClass          string               `json:"popularClass"`
	RevenueGrowth         *float64             `json:"revenueGrowth"`
	MembershipGrowth      *float64             `json:"membershipGrowth"`
	MembershipUnavailable bool                 `json:"membershipUnavailable"`
	Coaches               []dashboardCoachJSON `json:"coaches"`
}

func growthJSON(g metrics.GrowthFigure) *float64 {
	if !g.Available {
		return nil
	}
	v := g.Percent
	return &v
}

func handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	p, offset := periodQuery(r)

	result, current, err := dashboardRefresher.Refresh(r.Context(), projections.GetDashboardMetricsQuery{
		Period:      p,
		MonthOffset: offset,
		Rate:        config.MembershipRate,
		Now:         timeNow(),
	}, metricsDeps())
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, "invalid period", http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}
	if !current {
		// A newer refresh superseded this one; the client should retry.
		writeJSON(w, http.StatusConflict, map[string]string{"error": "superseded by a newer refresh"})
		return
	}

	d := result.Dashboard
	resp := dashboardJSON{
		Period:                p,
		Label:                 result.PeriodLabel,
		StartDate:             result.Range.StartDate(),
		EndDate:               result.Range.EndDate(),
		TotalRevenue:          d.TotalRevenue.String(),
		TotalCoachPayments:    d.TotalCoachPayments.String(),
		TotalProfit:           d.TotalProfit.String(),
		TotalClasses:          d.TotalClasses,
		TopCoach:              d.TopCoach,
		PopularClass:          d.PopularClass,
		RevenueGrowth:         growthJSON(d.RevenueGrowth),
		MembershipGrowth:      growthJSON(d.MembershipGrowth),
		MembershipUnavailable: d.MembershipUnavailable,
	}
	if !d.MembershipUnavailable {
		members := d.ActiveMembers
		resp.ActiveMembers = &members
	}
	for _, agg := range result.Aggregates {
		resp.Coaches = append(resp.Coaches, dashboardCoachJSON{
			ID:         agg.Coach.ID,
			Name:       agg.Coach.Name,
			Classes:    agg.TotalClasses,
			Clients:    agg.TotalClients,
			Revenue:    agg.TotalRevenue.String(),
			CoachShare: agg.CoachShare.String(),
			Tier:       metrics.PerformanceTier(agg.TotalRevenue),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Reports ---

type snapshotJSON struct {
	ID            string `json:"id"`
	ExportedAt    string `json:"exportedAt"`
	Period        string `json:"period"`
	MonthOffset   int    `json:"monthOffset"`
	TotalRevenue  string `json:"totalRevenue"`
	TotalProfit   string `json:"totalProfit"`
	ActiveMembers int    `json:"activeMembers"`
	TotalClasses  int    `json:"totalClasses"`
	PopularClass  string `json:"popularClass"`
}

func handleGetReportHistory(w http.ResponseWriter, r *http.Request) {
	archive, err := projections.QueryReportHistory(r.Context(), projections.GetReportHistoryDeps{SnapshotStore: stores.SnapshotStore})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]snapshotJSON, 0, archive.Len())
	for _, s := range archive.Snapshots {
		out = append(out, snapshotJSON{
			ID:            s.ID,
			ExportedAt:    s.ExportedAt.Format(time.RFC3339),
			Period:        s.Period,
			MonthOffset:   s.MonthOffset,
			TotalRevenue:  s.Data.TotalRevenue.String(),
			TotalProfit:   s.Data.TotalProfit.String(),
			ActiveMembers: s.Data.ActiveMembers,
			TotalClasses:  s.Data.TotalClasses,
			PopularClass:  s.Data.PopularClass,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func handleExportReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	p := r.FormValue("period")
	if p == "" {
		p = period.Month
	}
	offset := 0
	if v := r.FormValue("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	result, err := orchestrators.ExecuteExportReport(r.Context(), orchestrators.ExportReportInput{
		Period:      p,
		MonthOffset: offset,
		Rate:        config.MembershipRate,
		Now:         timeNow(),
	}, orchestrators.ExportReportDeps{
		CoachStore:      stores.CoachStore,
		EarningsStore:   stores.EarningsStore,
		MembershipStore: stores.MembershipStore,
		SnapshotStore:   stores.SnapshotStore,
		GenerateID:      generateID,
	})
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, "invalid period", http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	html, err := render.SummaryReportHTML(render.SummaryReportFromExport(result))
	if err != nil {
		internalError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func handleViewArchivedReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	snap, err := projections.QueryArchivedSnapshot(r.Context(), id, projections.GetReportHistoryDeps{SnapshotStore: stores.SnapshotStore})
	if err != nil {
		if errors.Is(err, report.ErrSnapshotNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		internalError(w, err)
		return
	}

	// Label from the snapshot's own parameters so the title matches the
	// period that was exported, not the current one.
	label := snap.Period
	if rng, err := period.Resolve(snap.Period, snap.MonthOffset, snap.ExportedAt); err == nil {
		label = rng.Label(snap.Period)
	}

	html, err := render.SummaryReportHTML(render.SummaryReportFromSnapshot(snap, label, timeNow()))
	if err != nil {
		internalError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

// --- Payslips ---

func handleGetPayslip(w http.ResponseWriter, r *http.Request) {
	coachID := r.PathValue("coachID")
	p, offset := periodQuery(r)

	slip, err := orchestrators.ExecuteGeneratePayslip(r.Context(), orchestrators.GeneratePayslipInput{
		CoachID:     coachID,
		Period:      p,
		MonthOffset: offset,
		Now:         timeNow(),
	}, orchestrators.GeneratePayslipDeps{
		CoachStore:      stores.CoachStore,
		EarningsStore:   stores.EarningsStore,
		AttendanceStore: stores.AttendanceStore,
	})
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			http.Error(w, "invalid period", http.StatusBadRequest)
			return
		}
		http.Error(w, "payslip unavailable", http.StatusNotFound)
		return
	}

	html, err := render.PayslipHTML(render.PayslipFromSlip(slip))
	if err != nil {
		internalError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

// --- Payments ---

type paymentJSON struct {
	ID          string `json:"id"`
	CoachID     string `json:"coachId"`
	CoachName   string `json:"coachName"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"paymentDate"`
	Status      string `json:"status"`
}

func paymentToJSON(rec payroll.PaymentRecord) paymentJSON {
	return paymentJSON{
		ID:          rec.ID,
		CoachID:     rec.CoachID,
		CoachName:   rec.CoachName,
		Amount:      rec.Amount.String(),
		PaymentDate: rec.PaymentDate,
		Status:      rec.Status,
	}
}

func handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CoachID     string `json:"coachId"`
		Amount      string `json:"amount"`
		PaymentDate string `json:"paymentDate"`
		Status      string `json:"status"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	rec, err := orchestrators.ExecuteRecordPayment(r.Context(), orchestrators.RecordPaymentInput{
		CoachID:     req.CoachID,
		Amount:      amount,
		PaymentDate: req.PaymentDate,
		Status:      req.Status,
	}, orchestrators.RecordPaymentDeps{
		CoachStore:   stores.CoachStore,
		PaymentStore: stores.PaymentStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, paymentToJSON(rec))
}

func handleListPayments(w http.ResponseWriter, r *http.Request) {
	coachID := r.URL.Query().Get("coach")

	var (
		records []payroll.PaymentRecord
		err     error
	)
	if coachID != "" {
		records, err = stores.PaymentStore.ListByCoachID(r.Context(), coachID)
	} else {
		records, err = stores.PaymentStore.List(r.Context())
	}
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]paymentJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, paymentToJSON(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// --- Payroll schedule ---

func handleGetPayrollSchedule(w http.ResponseWriter, r *http.Request) {
	now := timeNow()
	year := now.Year()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = n
	}

	fridays := payroll.RemainingFridays(year, now)
	paydays := make([]string, 0, len(fridays))
	for _, d := range fridays {
		paydays = append(paydays, d.Format("2006-01-02"))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":    year,
		"paydays": paydays,
	})
}

// --- Charts ---

// chartSurface is the default pixel surface for the chart endpoints.
var chartSurface = chart.Surface{Width: 640, Height: 400}

func dashboardForCharts(r *http.Request) (projections.GetDashboardMetricsResult, error) {
	p, offset := periodQuery(r)
	return projections.QueryDashboardMetrics(r.Context(), projections.GetDashboardMetricsQuery{
		Period:      p,
		MonthOffset: offset,
		Rate:        config.MembershipRate,
		Now:         timeNow(),
	}, metricsDeps())
}

func handleCoachRevenueChart(w http.ResponseWriter, r *http.Request) {
	result, err := dashboardForCharts(r)
	if err != nil {
		internalError(w, err)
		return
	}

	entries := make([]chart.DoughnutEntry, 0, len(result.Aggregates))
	for i, agg := range result.Aggregates {
		entries = append(entries, chart.DoughnutEntry{
			Label: agg.Coach.Name,
			Value: agg.TotalRevenue.InexactFloat64(),
			Color: chartPalette[i%len(chartPalette)],
		})
	}
	writeSVG(w, render.EncodeSVG(chartSurface, chart.RenderDoughnut(chartSurface, entries)))
}

func handleClassPopularityChart(w http.ResponseWriter, r *http.Request) {
	result, err := dashboardForCharts(r)
	if err != nil {
		internalError(w, err)
		return
	}

	// Client counts per base class, first-seen order. Package variants merge
	// into their base class, same as the popular-class metric.
	counts := make(map[string]int)
	var order []string
	for _, agg := range result.Aggregates {
		for _, rec := range agg.ClassBreakdown {
			name := earnings.BaseClassName(rec.ClassName)
			if name == "" {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name] += rec.ClientCount
		}
	}
	values := make([]float64, 0, len(order))
	for _, name := range order {
		values = append(values, float64(counts[name]))
	}
	writeSVG(w, render.EncodeSVG(chartSurface, chart.RenderBar(chartSurface, order, values, chartPalette)))
}

func handleRevenueSplitChart(w http.ResponseWriter, r *http.Request) {
	result, err := dashboardForCharts(r)
	if err != nil {
		internalError(w, err)
		return
	}

	d := result.Dashboard
	gymShare := d.TotalRevenue.Sub(d.TotalCoachPayments)
	labels := []string{"Coach share", "Gym share"}
	values := []float64{d.TotalCoachPayments.InexactFloat64(), gymShare.InexactFloat64()}
	writeSVG(w, render.EncodeSVG(chartSurface, chart.RenderPie(chartSurface, labels, values, chartPalette)))
}

// trendMonths is how many months the earnings trend chart looks back.
const trendMonths = 6

func handleEarningsTrendChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := timeNow()

	coaches, err := stores.CoachStore.List(ctx)
	if err != nil {
		internalError(w, err)
		return
	}

	labels := make([]string, 0, trendMonths)
	revenues := make([]float64, 0, trendMonths)
	shares := make([]float64, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		rng, err := period.Resolve(period.Month, -i, now)
		if err != nil {
			internalError(w, err)
			return
		}
		aggregates, err := projections.QueryCoachEarnings(ctx, projections.GetCoachEarningsQuery{Coaches: coaches, Range: rng},
			projections.GetCoachEarningsDeps{EarningsStore: stores.EarningsStore})
		if err != nil {
			internalError(w, err)
			return
		}

		revenue := decimal.Zero
		share := decimal.Zero
		for _, agg := range aggregates {
			revenue = revenue.Add(agg.TotalRevenue)
			share = share.Add(agg.CoachShare)
		}
		labels = append(labels, rng.Start.Format("Jan"))
		revenues = append(revenues, revenue.InexactFloat64())
		shares = append(shares, share.InexactFloat64())
	}

	datasets := []chart.Dataset{
		{Label: "Revenue", Data: revenues, Color: chartPalette[0]},
		{Label: "Coach share", Data: shares, Color: chartPalette[1]},
	}
	writeSVG(w, render.EncodeSVG(chartSurface, chart.RenderLine(chartSurface, labels, datasets)))
}
