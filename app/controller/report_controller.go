package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"vitrine-backoffice/models"
	"vitrine-backoffice/service"
)

// ReportController handles HTTP requests for the dashboard, reports and goals
type ReportController struct {
	reports   *service.ReportService
	exports   *service.ExportService
	validator *validator.Validate
}

// NewReportController creates a new ReportController
func NewReportController(reports *service.ReportService, exports *service.ExportService) *ReportController {
	return &ReportController{
		reports:   reports,
		exports:   exports,
		validator: validator.New(),
	}
}

// Dashboard handles GET /admin/dashboard
func (c *ReportController) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Dashboard: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Dashboard", http.MethodGet) {
		return
	}

	dashboard, err := c.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, "Dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// FinanceStats handles GET /admin/finance/stats
// Example response:
// {
//   "todaySales": "50",
//   "monthSales": {"current": "155", "target": "1000", "progressPercent": "15.5"},
//   "monthProfit": {"current": "85", "target": "300", "progressPercent": "28.33"},
//   "skippedQuotes": 0
// }
func (c *ReportController) FinanceStats(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 FinanceStats: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "FinanceStats", http.MethodGet) {
		return
	}

	stats, err := c.reports.FinanceStats(r.Context())
	if err != nil {
		writeError(w, "FinanceStats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Goals handles GET and PUT /admin/goals
func (c *ReportController) Goals(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Goals: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Goals", http.MethodGet, http.MethodPut) {
		return
	}

	if r.Method == http.MethodGet {
		goal, err := c.reports.Goal(r.Context())
		if err != nil {
			writeError(w, "GetGoal", err)
			return
		}
		writeJSON(w, http.StatusOK, goal)
		return
	}

	var req models.SaveGoalRequest
	if !decodeBody(w, r, c.validator, "SaveGoal", &req) {
		return
	}

	goal, err := c.reports.SaveGoal(r.Context(), &req)
	if err != nil {
		writeError(w, "SaveGoal", err)
		return
	}

	logger.Infof("💰 SaveGoal: sales=%s profit=%s", goal.SalesTarget.String(), goal.ProfitTarget.String())
	writeJSON(w, http.StatusOK, goal)
}

// Report handles GET /admin/reports/{kind} for sales, profit, growth and monthly-close
func (c *ReportController) Report(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Report: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Report", http.MethodGet) {
		return
	}

	kind, ok := pathParam(r.URL.Path, "/admin/reports/", "")
	if !ok {
		writeError(w, "Report", fmt.Errorf("%w: report kind is required", models.ErrInvalidInput))
		return
	}

	report, err := c.reports.Report(r.Context(), models.ReportKind(kind))
	if err != nil {
		writeError(w, "Report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// MonthlyCloseExport handles GET /admin/reports/monthly-close/export?format=xlsx|pdf
func (c *ReportController) MonthlyCloseExport(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 MonthlyCloseExport: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "MonthlyCloseExport", http.MethodGet) {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	var (
		filename    string
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename, data, err = c.exports.MonthlyCloseXLSX(r.Context())
	case "pdf":
		contentType = "application/pdf"
		filename, data, err = c.exports.MonthlyClosePDF(r.Context())
	default:
		writeError(w, "MonthlyCloseExport", fmt.Errorf("%w: unsupported format %q", models.ErrInvalidInput, format))
		return
	}
	if err != nil {
		writeError(w, "MonthlyCloseExport", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Errorf("❌ MonthlyCloseExport: Error writing response: %v", err)
		return
	}
	logger.Infof("✅ MonthlyCloseExport: Sent %s (%d bytes)", filename, len(data))
}

// MonthlyCloseRender handles GET /admin/reports/monthly-close/render.
// This is the page the PDF export prints.
func (c *ReportController) MonthlyCloseRender(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "MonthlyCloseRender", http.MethodGet) {
		return
	}

	html, err := c.exports.RenderMonthlyCloseHTML(r.Context())
	if err != nil {
		writeError(w, "MonthlyCloseRender", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		logger.Errorf("❌ MonthlyCloseRender: Error writing response: %v", err)
	}
}
