package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/homebudget/internal/adapter/http/dto"
	"github.com/iho/homebudget/internal/report"
	"github.com/iho/homebudget/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Summary(ctx context.Context, householdID string) (report.Summary, error)
	Trend(ctx context.Context, householdID string) ([]report.TrendPoint, error)
	CategoryBreakdown(ctx context.Context, householdID string) ([]report.CategorySlice, error)
	MonthlyGroups(ctx context.Context, householdID string, year int) (usecase.MonthlyReport, error)
}

// ReportHandler serves derived report views.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Summary returns current-month and all-time totals.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportUC.Summary(r.Context(), chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Trend returns the cumulative balance series.
func (h *ReportHandler) Trend(w http.ResponseWriter, r *http.Request) {
	points, err := h.reportUC.Trend(r.Context(), chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build trend", err.Error())
		return
	}

	if points == nil {
		points = []report.TrendPoint{}
	}

	writeJSON(w, http.StatusOK, points)
}

// CategoryBreakdown returns the current month's outflow shares per category.
func (h *ReportHandler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	slices, err := h.reportUC.CategoryBreakdown(r.Context(), chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build breakdown", err.Error())
		return
	}

	if slices == nil {
		slices = []report.CategorySlice{}
	}

	writeJSON(w, http.StatusOK, slices)
}

// Monthly returns transactions grouped by calendar month, optionally
// filtered to one year via the year query parameter.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", 0)

	result, err := h.reportUC.MonthlyGroups(r.Context(), chi.URLParam(r, "householdID"), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build monthly report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyReportFromReport(result.Groups, result.Years))
}
