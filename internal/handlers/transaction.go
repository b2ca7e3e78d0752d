package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/models"
	"github.com/tropicaldog17/orgledger/internal/services"
)

type TransactionHandler struct {
	service services.LedgerService
	loc     *time.Location
}

// NewTransactionHandler creates a handler parsing calendar dates in loc.
func NewTransactionHandler(service services.LedgerService, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionHandler{service: service, loc: loc}
}

// transactionRequest is the JSON body of create and update calls. Absent
// fields are left untouched on update.
type transactionRequest struct {
	Kind     *string          `json:"kind"`
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     *string          `json:"date"`
	Note     *string          `json:"note"`
	Status   *string          `json:"status"`
}

func (req *transactionRequest) toInput(loc *time.Location) (models.TransactionInput, error) {
	input := models.TransactionInput{Amount: req.Amount, Note: req.Note}
	if req.Kind != nil {
		input.Kind = models.Kind(*req.Kind)
	}
	if req.Category != nil {
		input.Category = models.Category(*req.Category)
	}
	if req.Status != nil {
		input.Status = models.Status(*req.Status)
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date, loc)
		if err != nil {
			return input, err
		}
		input.Date = date
	}
	return input, nil
}

func (req *transactionRequest) toPatch(loc *time.Location) (models.TransactionPatch, error) {
	patch := models.TransactionPatch{Amount: req.Amount, Note: req.Note}
	if req.Kind != nil {
		kind := models.Kind(*req.Kind)
		patch.Kind = &kind
	}
	if req.Category != nil {
		category := models.Category(*req.Category)
		patch.Category = &category
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		patch.Status = &status
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date, loc)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}
	return patch, nil
}

// HandleTransactions handles collection-level operations for transactions.
// @Summary List or create transactions
// @Description Get a filtered list of ledger transactions or record a new one
// @Tags transactions
// @Accept json
// @Produce json
// @Param start_date query string false "Start date, inclusive (YYYY-MM-DD)"
// @Param end_date query string false "End date, inclusive (YYYY-MM-DD)"
// @Param kind query string false "income, expense or ALL"
// @Param category query string false "Category or ALL"
// @Param status query string false "pending, confirmed, cancelled or ALL"
// @Param min_amount query string false "Minimum amount, inclusive"
// @Param max_amount query string false "Maximum amount, inclusive"
// @Param q query string false "Case-insensitive text searched in the note"
// @Param sort_by query string false "date, amount, created_at, updated_at, category, status or kind"
// @Param sort_dir query string false "asc or desc"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Transaction
// @Success 201 {object} models.Transaction
// @Failure 400 {string} string "Invalid request"
// @Failure 503 {string} string "Persistence failure"
// @Router /transactions [get]
// @Router /transactions [post]
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.listTransactions(w, r)
	case http.MethodPost:
		h.createTransaction(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleTransaction handles item-level operations for a transaction.
// @Summary Get, update, or delete a transaction
// @Description Operate on a single transaction by ID. PUT applies a partial update.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 400 {string} string "Bad request"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Invalid status transition"
// @Failure 503 {string} string "Persistence failure"
// @Router /transactions/{id} [get]
// @Router /transactions/{id} [put]
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getTransaction(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.updateTransaction(w, r, id)
	case http.MethodDelete:
		h.deleteTransaction(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, h.loc)
	if err != nil {
		writeError(w, err)
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(transactions)
}

func parseFilter(r *http.Request, loc *time.Location) (*models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := &models.TransactionFilter{
		Kind:       q.Get("kind"),
		Category:   q.Get("category"),
		Status:     q.Get("status"),
		SearchText: q.Get("q"),
		SortBy:     models.SortField(q.Get("sort_by")),
		SortDir:    models.SortDirection(q.Get("sort_dir")),
	}

	if startDate := q.Get("start_date"); startDate != "" {
		date, err := models.ParseDate(startDate, loc)
		if err != nil {
			return nil, &apperrors.ErrValidation{Field: "start_date", Message: "must be YYYY-MM-DD"}
		}
		filter.DateFrom = &date
	}

	if endDate := q.Get("end_date"); endDate != "" {
		date, err := models.ParseDate(endDate, loc)
		if err != nil {
			return nil, &apperrors.ErrValidation{Field: "end_date", Message: "must be YYYY-MM-DD"}
		}
		filter.DateTo = &date
	}

	if minAmount := q.Get("min_amount"); minAmount != "" {
		amount, err := decimal.NewFromString(minAmount)
		if err != nil {
			return nil, &apperrors.ErrValidation{Field: "min_amount", Message: "must be a number"}
		}
		filter.AmountFrom = &amount
	}

	if maxAmount := q.Get("max_amount"); maxAmount != "" {
		amount, err := decimal.NewFromString(maxAmount)
		if err != nil {
			return nil, &apperrors.ErrValidation{Field: "max_amount", Message: "must be a number"}
		}
		filter.AmountTo = &amount
	}

	if filter.SortBy != "" && !filter.SortBy.Valid() {
		return nil, &apperrors.ErrValidation{Field: "sort_by", Message: "unknown sort field '" + string(filter.SortBy) + "'"}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return nil, &apperrors.ErrValidation{Field: "limit", Message: "must be a non-negative integer"}
		}
		filter.Limit = limit
	}

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return nil, &apperrors.ErrValidation{Field: "offset", Message: "must be a non-negative integer"}
		}
		filter.Offset = offset
	}

	return filter, nil
}

func (h *TransactionHandler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	input, err := req.toInput(h.loc)
	if err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.service.AddTransaction(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) getTransaction(w http.ResponseWriter, r *http.Request, id string) {
	tx, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	patch, err := req.toPatch(h.loc)
	if err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.service.UpdateTransaction(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.service.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps ledger errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrPersistence):
		status = http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		status = http.StatusConflict
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
