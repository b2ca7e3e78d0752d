package services

import (
	"context"

	"github.com/tropicaldog17/orgledger/internal/models"
)

// LedgerService defines the interface for ledger operations
type LedgerService interface {
	AddTransaction(ctx context.Context, input models.TransactionInput) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) (models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error)

	Snapshot(ctx context.Context) models.AggregateSnapshot
	Summary(ctx context.Context) models.LedgerSummary
	Refresh(ctx context.Context) models.AggregateSnapshot
	Reload(ctx context.Context) error
}

// ReportingService defines the interface for period reports
type ReportingService interface {
	GetCashFlow(ctx context.Context, period models.Period, status string) (*models.CashFlowReport, error)
	GetSpending(ctx context.Context, period models.Period) (*models.SpendingReport, error)
}

var _ LedgerService = (*Ledger)(nil)
