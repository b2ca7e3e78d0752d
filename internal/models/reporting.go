package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
)

// Period is an inclusive range of calendar dates for reporting.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (p Period) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return &apperrors.ErrValidation{Field: "period", Message: "start and end dates are required"}
	}
	if p.EndDate.Before(p.StartDate) {
		return &apperrors.ErrValidation{Field: "period", Message: "end_date is before start_date"}
	}
	return nil
}

// CategoryTotal is the breakdown of one category within a report.
type CategoryTotal struct {
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
	// Percentage of the report total of the same kind.
	Percentage decimal.Decimal `json:"percentage"`
}

// MonthlyCashFlow holds the totals of one calendar month, keyed "YYYY-MM".
type MonthlyCashFlow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// CashFlowReport represents income and expense over a period
type CashFlowReport struct {
	Period            Period                      `json:"period"`
	TotalIncome       decimal.Decimal             `json:"total_income"`
	TotalExpense      decimal.Decimal             `json:"total_expense"`
	Net               decimal.Decimal             `json:"net"`
	Count             int                         `json:"count"`
	IncomeByCategory  map[Category]*CategoryTotal `json:"income_by_category"`
	ExpenseByCategory map[Category]*CategoryTotal `json:"expense_by_category"`
	ByMonth           []MonthlyCashFlow           `json:"by_month"`
}

// SpendingReport represents expense analysis over a period
type SpendingReport struct {
	Period      Period                      `json:"period"`
	Total       decimal.Decimal             `json:"total"`
	ByCategory  map[Category]*CategoryTotal `json:"by_category"`
	TopExpenses []TransactionSummary        `json:"top_expenses"`
}

// TransactionSummary represents a summary of a transaction for reports
type TransactionSummary struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Status   Status          `json:"status"`
	Note     *string         `json:"note"`
}

func NewTransactionSummary(tx Transaction) TransactionSummary {
	return TransactionSummary{
		ID:       tx.ID,
		Date:     tx.Date.Format(DateLayout),
		Category: tx.Category,
		Amount:   tx.Amount,
		Status:   tx.Status,
		Note:     tx.Note,
	}
}
