package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the persisted shape of a Transaction. Timestamps are
// stamped by the ledger clock, not by gorm.
type TransactionRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Kind      string          `gorm:"column:kind;type:varchar(16);not null;index"`
	Category  string          `gorm:"column:category;type:varchar(50);not null;index"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	Date      string          `gorm:"column:date;type:varchar(10);not null;index"`
	Note      *string         `gorm:"column:note;type:text"`
	Status    string          `gorm:"column:status;type:varchar(16);not null;index"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// TableName returns the table name for the TransactionRecord model
func (TransactionRecord) TableName() string {
	return "ledger_transactions"
}

// NewTransactionRecord converts a domain transaction into its persisted form.
func NewTransactionRecord(tx Transaction) *TransactionRecord {
	return &TransactionRecord{
		ID:        tx.ID,
		Kind:      string(tx.Kind),
		Category:  string(tx.Category),
		Amount:    tx.Amount,
		Date:      tx.Date.Format(DateLayout),
		Note:      tx.Note,
		Status:    string(tx.Status),
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}
}

// ToTransaction converts a stored row back into a domain transaction, with the
// calendar date placed in loc.
func (r *TransactionRecord) ToTransaction(loc *time.Location) (Transaction, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return Transaction{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	tx := Transaction{
		ID:        r.ID,
		Kind:      Kind(r.Kind),
		Category:  Category(r.Category),
		Amount:    r.Amount,
		Date:      date,
		Note:      r.Note,
		Status:    Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if !tx.Kind.Valid() {
		return Transaction{}, fmt.Errorf("record %s: unknown kind %q", r.ID, r.Kind)
	}
	if !tx.Status.Valid() {
		return Transaction{}, fmt.Errorf("record %s: unknown status %q", r.ID, r.Status)
	}
	if err := ValidateAmount(tx.Amount); err != nil {
		return Transaction{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return tx, nil
}
