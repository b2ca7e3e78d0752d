package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/models"
	"github.com/tropicaldog17/orgledger/internal/services"
)

type ReportingHandler struct {
	service services.LedgerService
	reports services.ReportingService
	loc     *time.Location
	now     func() time.Time
}

// NewReportingHandler serves the ledger summary and the period reports. Report
// periods default to the last 30 days as seen by now.
func NewReportingHandler(service services.LedgerService, reports services.ReportingService, loc *time.Location, now func() time.Time) *ReportingHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ReportingHandler{service: service, reports: reports, loc: loc, now: now}
}

// HandleSummary handles GET /api/ledger/summary
// @Summary Get ledger summary
// @Description Lifetime, current-month and current-year totals with net balance
// @Tags ledger
// @Produce json
// @Success 200 {object} models.LedgerSummary
// @Router /ledger/summary [get]
func (h *ReportingHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	json.NewEncoder(w).Encode(h.service.Summary(r.Context()))
}

// HandleRefresh handles POST /api/ledger/refresh
// @Summary Refresh period totals
// @Description Recompute the totals against the current date, e.g. after a month change
// @Tags ledger
// @Produce json
// @Success 200 {object} models.LedgerSummary
// @Router /ledger/refresh [post]
func (h *ReportingHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.service.Refresh(r.Context())
	json.NewEncoder(w).Encode(h.service.Summary(r.Context()))
}

// HandleReload handles POST /api/ledger/reload
// @Summary Reload the ledger
// @Description Reload all transactions from the database and rebuild the totals
// @Tags ledger
// @Produce json
// @Success 200 {object} models.LedgerSummary
// @Failure 503 {string} string "Persistence failure"
// @Router /ledger/reload [post]
func (h *ReportingHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.service.Reload(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(h.service.Summary(r.Context()))
}

// HandleCashFlow handles GET /api/reports/cashflow
// @Summary Get cash flow report
// @Description Income and expense over a period, by category and by month
// @Tags reports
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param days query int false "Days back from end_date"
// @Param status query string false "pending, confirmed, cancelled or ALL"
// @Success 200 {object} models.CashFlowReport
// @Failure 400 {string} string "Invalid period parameters"
// @Router /reports/cashflow [get]
func (h *ReportingHandler) HandleCashFlow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, "Invalid period parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reports.GetCashFlow(r.Context(), period, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(report)
}

// HandleSpending handles GET /api/reports/spending
// @Summary Get spending report
// @Description Expenses over a period by category, with the largest ones
// @Tags reports
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Param days query int false "Days back from end_date"
// @Success 200 {object} models.SpendingReport
// @Failure 400 {string} string "Invalid period parameters"
// @Router /reports/spending [get]
func (h *ReportingHandler) HandleSpending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, "Invalid period parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reports.GetSpending(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(report)
}

// parsePeriod parses start_date, end_date and days query parameters
func (h *ReportingHandler) parsePeriod(r *http.Request) (models.Period, error) {
	query := r.URL.Query()

	endDate := models.NormalizeDate(h.now().In(h.loc), h.loc)
	var startDate time.Time

	if endStr := query.Get("end_date"); endStr != "" {
		parsed, err := models.ParseDate(endStr, h.loc)
		if err != nil {
			return models.Period{}, err
		}
		endDate = parsed
	}

	if startStr := query.Get("start_date"); startStr != "" {
		parsed, err := models.ParseDate(startStr, h.loc)
		if err != nil {
			return models.Period{}, err
		}
		startDate = parsed
	} else if daysStr := query.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			return models.Period{}, &apperrors.ErrValidation{Field: "days", Message: fmt.Sprintf("must be a positive integer, got '%s'", daysStr)}
		}
		startDate = endDate.AddDate(0, 0, -days)
	} else {
		startDate = endDate.AddDate(0, 0, -30)
	}

	period := models.Period{StartDate: startDate, EndDate: endDate}
	if err := period.Validate(); err != nil {
		return models.Period{}, err
	}
	return period, nil
}
