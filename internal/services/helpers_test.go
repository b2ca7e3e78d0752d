package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tropicaldog17/orgledger/internal/models"
)

// referenceNow is a fixed "now" for deterministic period tests.
var referenceNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func stringPtr(s string) *string { return &s }

func newTx(id string, kind models.Kind, amount int64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:       id,
		Kind:     kind,
		Category: models.CategoryOther,
		Amount:   decimal.NewFromInt(amount),
		Date:     date,
		Status:   models.StatusConfirmed,
	}
}

func input(kind models.Kind, amount int64, date time.Time) models.TransactionInput {
	return models.TransactionInput{
		Kind:     kind,
		Category: models.CategoryOther,
		Amount:   amountPtr(amount),
		Date:     date,
	}
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "%s: want %d, got %s", field, want, got.String())
}

// assertMatchesRescan checks the incremental snapshot against a full rebuild
// of txs and the balance invariant.
func assertMatchesRescan(t *testing.T, snap models.AggregateSnapshot, txs []models.Transaction, now time.Time) {
	t.Helper()
	oracle := NewAggregator(time.UTC)
	oracle.Rebuild(txs, now)
	want := oracle.Snapshot()
	assert.True(t, want.Equal(snap), "incremental snapshot %+v differs from rescan %+v", snap, want)
	assert.True(t, snap.Balance.Equal(snap.TotalIncome.Sub(snap.TotalExpense)), "balance invariant broken")
}
