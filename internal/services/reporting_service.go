package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/models"
)

const defaultTopExpenses = 10

var hundred = decimal.NewFromInt(100)

type reportingService struct {
	ledger      LedgerService
	topExpenses int
}

// NewReportingService builds period reports over the transactions a ledger
// currently holds.
func NewReportingService(ledger LedgerService) ReportingService {
	return &reportingService{ledger: ledger, topExpenses: defaultTopExpenses}
}

// GetCashFlow sums income and expense over period, by category and by month.
// status narrows the report to one status; empty or "ALL" keeps every record,
// matching the ledger totals.
func (s *reportingService) GetCashFlow(ctx context.Context, period models.Period, status string) (*models.CashFlowReport, error) {
	txs, err := s.periodTransactions(ctx, period, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get cash flow: %w", err)
	}

	report := &models.CashFlowReport{
		Period:            period,
		IncomeByCategory:  make(map[models.Category]*models.CategoryTotal),
		ExpenseByCategory: make(map[models.Category]*models.CategoryTotal),
		ByMonth:           []models.MonthlyCashFlow{},
	}
	months := make(map[string]int)

	for _, tx := range txs {
		key := tx.Date.Format("2006-01")
		idx, ok := months[key]
		if !ok {
			idx = len(report.ByMonth)
			months[key] = idx
			report.ByMonth = append(report.ByMonth, models.MonthlyCashFlow{Month: key})
		}
		m := &report.ByMonth[idx]

		switch tx.Kind {
		case models.KindIncome:
			report.TotalIncome = report.TotalIncome.Add(tx.Amount)
			m.Income = m.Income.Add(tx.Amount)
			addToCategory(report.IncomeByCategory, tx)
		case models.KindExpense:
			report.TotalExpense = report.TotalExpense.Add(tx.Amount)
			m.Expense = m.Expense.Add(tx.Amount)
			addToCategory(report.ExpenseByCategory, tx)
		}
		m.Net = m.Income.Sub(m.Expense)
		m.Count++
		report.Count++
	}

	report.Net = report.TotalIncome.Sub(report.TotalExpense)
	slices.SortFunc(report.ByMonth, func(a, b models.MonthlyCashFlow) int {
		return cmp.Compare(a.Month, b.Month)
	})
	setPercentages(report.IncomeByCategory, report.TotalIncome)
	setPercentages(report.ExpenseByCategory, report.TotalExpense)
	return report, nil
}

// GetSpending breaks the expenses of period down by category and lists the
// largest ones. Cancelled expenses are left out.
func (s *reportingService) GetSpending(ctx context.Context, period models.Period) (*models.SpendingReport, error) {
	txs, err := s.periodTransactions(ctx, period, models.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("failed to get spending: %w", err)
	}

	report := &models.SpendingReport{
		Period:      period,
		ByCategory:  make(map[models.Category]*models.CategoryTotal),
		TopExpenses: []models.TransactionSummary{},
	}

	var expenses []models.Transaction
	for _, tx := range txs {
		if tx.Kind != models.KindExpense || tx.Status == models.StatusCancelled {
			continue
		}
		report.Total = report.Total.Add(tx.Amount)
		addToCategory(report.ByCategory, tx)
		expenses = append(expenses, tx)
	}
	setPercentages(report.ByCategory, report.Total)

	expenses = Sort(expenses, models.SortByAmount, models.SortDesc)
	for _, tx := range Paginate(expenses, s.topExpenses, 0) {
		report.TopExpenses = append(report.TopExpenses, models.NewTransactionSummary(tx))
	}
	return report, nil
}

func (s *reportingService) periodTransactions(ctx context.Context, period models.Period, status string) ([]models.Transaction, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if !models.IsAll(status) && !models.Status(status).Valid() {
		return nil, &apperrors.ErrValidation{Field: "status", Message: "unknown status '" + status + "'"}
	}
	return s.ledger.ListTransactions(ctx, &models.TransactionFilter{
		DateFrom: &period.StartDate,
		DateTo:   &period.EndDate,
		Status:   status,
	})
}

func addToCategory(byCategory map[models.Category]*models.CategoryTotal, tx models.Transaction) {
	ct, ok := byCategory[tx.Category]
	if !ok {
		ct = &models.CategoryTotal{}
		byCategory[tx.Category] = ct
	}
	ct.Amount = ct.Amount.Add(tx.Amount)
	ct.Count++
}

func setPercentages(byCategory map[models.Category]*models.CategoryTotal, total decimal.Decimal) {
	for _, ct := range byCategory {
		if total.IsZero() {
			ct.Percentage = decimal.Zero
			continue
		}
		ct.Percentage = ct.Amount.Div(total).Mul(hundred).Round(2)
	}
}
