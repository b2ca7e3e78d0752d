package services

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/tropicaldog17/orgledger/internal/models"
)

// Filter yields the transactions of txs matching every set criterion of f, in
// the order of txs. The sequence is lazy and can be ranged over repeatedly.
func Filter(txs []models.Transaction, f models.TransactionFilter) iter.Seq[models.Transaction] {
	search := strings.ToLower(f.SearchText)
	return func(yield func(models.Transaction) bool) {
		for _, tx := range txs {
			if !matches(tx, f, search) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

func matches(tx models.Transaction, f models.TransactionFilter, search string) bool {
	if f.DateFrom != nil && tx.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && tx.Date.After(*f.DateTo) {
		return false
	}
	if !models.IsAll(f.Kind) && string(tx.Kind) != f.Kind {
		return false
	}
	if !models.IsAll(f.Category) && string(tx.Category) != f.Category {
		return false
	}
	if !models.IsAll(f.Status) && string(tx.Status) != f.Status {
		return false
	}
	if f.AmountFrom != nil && tx.Amount.LessThan(*f.AmountFrom) {
		return false
	}
	if f.AmountTo != nil && tx.Amount.GreaterThan(*f.AmountTo) {
		return false
	}
	if search != "" && !strings.Contains(strings.ToLower(tx.NoteText()), search) {
		return false
	}
	return true
}

// Sort returns a copy of txs ordered by field. The sort is stable: ties keep
// their input order so pages stay deterministic across re-filters. An unknown
// field leaves the order unchanged.
func Sort(txs []models.Transaction, field models.SortField, dir models.SortDirection) []models.Transaction {
	sorted := slices.Clone(txs)
	compare := comparator(field)
	if compare == nil {
		return sorted
	}
	if dir == models.SortDesc {
		asc := compare
		compare = func(a, b models.Transaction) int { return asc(b, a) }
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(field models.SortField) func(a, b models.Transaction) int {
	switch field {
	case models.SortByDate:
		return func(a, b models.Transaction) int { return a.Date.Compare(b.Date) }
	case models.SortByAmount:
		return func(a, b models.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case models.SortByCreatedAt:
		return func(a, b models.Transaction) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case models.SortByUpdatedAt:
		return func(a, b models.Transaction) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case models.SortByCategory:
		return func(a, b models.Transaction) int { return cmp.Compare(a.Category, b.Category) }
	case models.SortByStatus:
		return func(a, b models.Transaction) int { return cmp.Compare(a.Status, b.Status) }
	case models.SortByKind:
		return func(a, b models.Transaction) int { return cmp.Compare(a.Kind, b.Kind) }
	}
	return nil
}

// Paginate returns the window [offset, offset+limit) of txs. A non-positive
// limit means no upper bound.
func Paginate(txs []models.Transaction, limit, offset int) []models.Transaction {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(txs) {
		return []models.Transaction{}
	}
	end := len(txs)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return txs[offset:end]
}

// Query runs the full filter, sort and paginate pipeline of f over txs.
func Query(txs []models.Transaction, f models.TransactionFilter) []models.Transaction {
	result := slices.Collect(Filter(txs, f))
	if f.SortBy != "" {
		result = Sort(result, f.SortBy, f.SortDir)
	}
	if result == nil {
		result = []models.Transaction{}
	}
	return Paginate(result, f.Limit, f.Offset)
}
