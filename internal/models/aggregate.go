package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateSnapshot holds the running totals of a ledger.
type AggregateSnapshot struct {
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpense        decimal.Decimal `json:"total_expense"`
	Balance             decimal.Decimal `json:"balance"`
	CurrentMonthIncome  decimal.Decimal `json:"current_month_income"`
	CurrentMonthExpense decimal.Decimal `json:"current_month_expense"`
	CurrentYearIncome   decimal.Decimal `json:"current_year_income"`
	CurrentYearExpense  decimal.Decimal `json:"current_year_expense"`

	// AsOf is the instant the period buckets were last evaluated against.
	AsOf             time.Time `json:"as_of"`
	TransactionCount int       `json:"transaction_count"`
}

func (s AggregateSnapshot) CurrentMonthNet() decimal.Decimal {
	return s.CurrentMonthIncome.Sub(s.CurrentMonthExpense)
}

func (s AggregateSnapshot) CurrentYearNet() decimal.Decimal {
	return s.CurrentYearIncome.Sub(s.CurrentYearExpense)
}

// Equal compares the numeric totals, ignoring AsOf.
func (s AggregateSnapshot) Equal(o AggregateSnapshot) bool {
	return s.TotalIncome.Equal(o.TotalIncome) &&
		s.TotalExpense.Equal(o.TotalExpense) &&
		s.Balance.Equal(o.Balance) &&
		s.CurrentMonthIncome.Equal(o.CurrentMonthIncome) &&
		s.CurrentMonthExpense.Equal(o.CurrentMonthExpense) &&
		s.CurrentYearIncome.Equal(o.CurrentYearIncome) &&
		s.CurrentYearExpense.Equal(o.CurrentYearExpense) &&
		s.TransactionCount == o.TransactionCount
}

// LedgerSummary is the read model served to dashboards.
type LedgerSummary struct {
	AggregateSnapshot
	CurrentMonthNet decimal.Decimal `json:"current_month_net"`
	CurrentYearNet  decimal.Decimal `json:"current_year_net"`
	MonthStart      string          `json:"month_start"`
	YearStart       string          `json:"year_start"`
	// Stale is set when a day boundary passed since AsOf.
	Stale bool `json:"stale"`
}

// PeriodBoundaries are the start-of-day, start-of-month and start-of-year
// instants of "now".
type PeriodBoundaries struct {
	Now        time.Time
	Today      time.Time
	MonthStart time.Time
	YearStart  time.Time
}

// NewPeriodBoundaries computes the current month and year starts for now in loc.
func NewPeriodBoundaries(now time.Time, loc *time.Location) PeriodBoundaries {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return PeriodBoundaries{
		Now:        local,
		Today:      time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
		MonthStart: time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc),
		YearStart:  time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, loc),
	}
}

// InMonth reports whether date lies in [MonthStart, Now].
func (p PeriodBoundaries) InMonth(date time.Time) bool {
	return !date.Before(p.MonthStart) && !date.After(p.Now)
}

// InYear reports whether date lies in [YearStart, Now].
func (p PeriodBoundaries) InYear(date time.Time) bool {
	return !date.Before(p.YearStart) && !date.After(p.Now)
}

// SamePeriod reports whether both boundaries fall on the same calendar day.
// Transaction dates are whole days, so bucket membership of every transaction
// is identical for two instants of the same day.
func (p PeriodBoundaries) SamePeriod(o PeriodBoundaries) bool {
	return p.Today.Equal(o.Today)
}
