package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilterAll disables a categorical criterion.
const FilterAll = "ALL"

// SortField names the attribute transactions are ordered by.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByAmount    SortField = "amount"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByCategory  SortField = "category"
	SortByStatus    SortField = "status"
	SortByKind      SortField = "kind"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByDate, SortByAmount, SortByCreatedAt, SortByUpdatedAt, SortByCategory, SortByStatus, SortByKind:
		return true
	}
	return false
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TransactionFilter represents filters for querying transactions. Empty or
// FilterAll categorical fields match everything; date and amount bounds are
// inclusive.
type TransactionFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	Kind       string
	Category   string
	Status     string
	AmountFrom *decimal.Decimal
	AmountTo   *decimal.Decimal
	SearchText string

	SortBy  SortField
	SortDir SortDirection
	Limit   int
	Offset  int
}

// IsAll reports whether a categorical criterion value matches everything.
func IsAll(v string) bool {
	return v == "" || v == FilterAll
}
