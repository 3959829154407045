package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/adapter/http/dto"
	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GetMonthlySummary(ctx context.Context, ref time.Time) (*usecase.MonthlySummary, error)
	GetMonthlyBreakdown(ctx context.Context) (map[string]domain.MonthTotal, error)
	GetCategoryBreakdown(ctx context.Context, month time.Month, year int) (map[string]decimal.Decimal, error)
	GetTrends(ctx context.Context, ref time.Time, months int) ([]domain.TrendPoint, error)
}

// ReportHandler handles reporting HTTP requests. The wall clock is read
// here, at the edge; reports themselves always take an explicit reference
// time.
type ReportHandler struct {
	reportUC ReportService
	now      func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// refTime resolves the month and year query parameters, defaulting to now.
func (h *ReportHandler) refTime(r *http.Request) (time.Time, bool) {
	now := h.now()

	month := parseIntQuery(r, "month", int(now.Month()))
	year := parseIntQuery(r, "year", now.Year())

	if month < 1 || month > 12 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// Summary returns the dashboard summary for one calendar month.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.refTime(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month", "month must be 1..12")
		return
	}

	summary, err := h.reportUC.GetMonthlySummary(r.Context(), ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlySummaryFromUseCase(summary))
}

// Monthly returns income and expense totals for every month with activity.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.reportUC.GetMonthlyBreakdown(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build monthly breakdown", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthlyBreakdownFromDomain(breakdown))
}

// Categories returns per-category spending for one month.
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.refTime(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month", "month must be 1..12")
		return
	}

	breakdown, err := h.reportUC.GetCategoryBreakdown(r.Context(), ref.Month(), ref.Year())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build category breakdown", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryBreakdownFromDomain(breakdown))
}

// Trends returns the recent monthly income and expense series.
func (h *ReportHandler) Trends(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.refTime(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month", "month must be 1..12")
		return
	}

	months := parseIntQuery(r, "months", 0)

	trends, err := h.reportUC.GetTrends(r.Context(), ref, months)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build trends", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TrendsFromDomain(trends))
}
