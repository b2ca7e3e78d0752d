package repositories

import (
	"context"

	"github.com/tropicaldog17/orgledger/internal/models"
)

// TransactionRepository is the durable store behind a ledger.
type TransactionRepository interface {
	// CreateTransaction persists tx and returns its id.
	CreateTransaction(ctx context.Context, tx models.Transaction) (string, error)
	// UpdateTransaction overwrites the stored fields of id. Fails with
	// apperrors.ErrNotFound when id is absent.
	UpdateTransaction(ctx context.Context, id string, tx models.Transaction) error
	// DeleteTransaction removes id. Fails with apperrors.ErrNotFound when id is absent.
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error)
}
