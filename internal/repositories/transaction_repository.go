package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tropicaldog17/orgledger/internal/db"
	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/models"
)

type transactionRepository struct {
	db  *db.DB
	loc *time.Location
}

// NewTransactionRepository creates a new transaction repository. Stored
// calendar dates are read back as days in loc.
func NewTransactionRepository(database *db.DB, loc *time.Location) TransactionRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &transactionRepository{db: database, loc: loc}
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (string, error) {
	record := models.NewTransactionRecord(tx)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}
	return record.ID, nil
}

func (r *transactionRepository) UpdateTransaction(ctx context.Context, id string, tx models.Transaction) error {
	if id == "" {
		return &apperrors.NotFoundError{ID: id}
	}

	record := models.NewTransactionRecord(tx)
	result := r.db.WithContext(ctx).
		Model(&models.TransactionRecord{}).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(record)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return &apperrors.NotFoundError{ID: id}
	}

	return nil
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TransactionRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return &apperrors.NotFoundError{ID: id}
	}

	return nil
}

var sortColumns = map[models.SortField]string{
	models.SortByDate:      "date",
	models.SortByAmount:    "amount",
	models.SortByCreatedAt: "created_at",
	models.SortByUpdatedAt: "updated_at",
	models.SortByCategory:  "category",
	models.SortByStatus:    "status",
	models.SortByKind:      "kind",
}

func (r *transactionRepository) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionRecord{})

	// Apply filters
	if filter != nil {
		if filter.DateFrom != nil {
			query = query.Where("date >= ?", filter.DateFrom.Format(models.DateLayout))
		}

		if filter.DateTo != nil {
			query = query.Where("date <= ?", filter.DateTo.Format(models.DateLayout))
		}

		if !models.IsAll(filter.Kind) {
			query = query.Where("kind = ?", filter.Kind)
		}

		if !models.IsAll(filter.Category) {
			query = query.Where("category = ?", filter.Category)
		}

		if !models.IsAll(filter.Status) {
			query = query.Where("status = ?", filter.Status)
		}

		if filter.AmountFrom != nil {
			query = query.Where("amount >= ?", *filter.AmountFrom)
		}

		if filter.AmountTo != nil {
			query = query.Where("amount <= ?", *filter.AmountTo)
		}

		if filter.SearchText != "" {
			query = query.Where("LOWER(COALESCE(note, '')) LIKE ?", "%"+strings.ToLower(filter.SearchText)+"%")
		}
	}

	// Insertion order unless asked otherwise; id breaks created_at ties
	order := "created_at ASC, id ASC"
	if filter != nil {
		if column, ok := sortColumns[filter.SortBy]; ok {
			dir := "ASC"
			if filter.SortDir == models.SortDesc {
				dir = "DESC"
			}
			order = column + " " + dir + ", " + order
		}
	}
	query = query.Order(order)

	// Apply pagination
	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var records []models.TransactionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(records))
	for i := range records {
		tx, err := records[i].ToTransaction(r.loc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}
