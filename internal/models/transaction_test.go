package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
)

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestTransactionInputValidate(t *testing.T) {
	date := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		input         TransactionInput
		expectError   bool
		expectedField string
		invalidAmount bool
	}{
		{
			name:  "valid income",
			input: TransactionInput{Kind: KindIncome, Category: CategoryMembershipFee, Amount: amount("1000000"), Date: date},
		},
		{
			name:  "valid zero expense",
			input: TransactionInput{Kind: KindExpense, Category: CategoryOther, Amount: amount("0"), Date: date, Status: StatusConfirmed},
		},
		{
			name:          "missing amount",
			input:         TransactionInput{Kind: KindIncome, Category: CategoryDonation, Date: date},
			expectError:   true,
			invalidAmount: true,
		},
		{
			name:          "negative amount is reported before other problems",
			input:         TransactionInput{Kind: "bogus", Amount: amount("-0.01")},
			expectError:   true,
			invalidAmount: true,
		},
		{
			name:  "two decimal places",
			input: TransactionInput{Kind: KindIncome, Category: CategoryDonation, Amount: amount("250000.50"), Date: date},
		},
		{
			name:  "trailing zeros beyond the scale",
			input: TransactionInput{Kind: KindIncome, Category: CategoryDonation, Amount: amount("12.5000"), Date: date},
		},
		{
			name:          "more than two decimal places",
			input:         TransactionInput{Kind: KindExpense, Category: CategoryOther, Amount: amount("0.005"), Date: date},
			expectError:   true,
			invalidAmount: true,
		},
		{
			name:          "too large for the amount column",
			input:         TransactionInput{Kind: KindIncome, Category: CategoryOther, Amount: amount("1000000000000000000"), Date: date},
			expectError:   true,
			invalidAmount: true,
		},
		{
			name:  "largest storable amount",
			input: TransactionInput{Kind: KindIncome, Category: CategoryOther, Amount: amount("999999999999999999.99"), Date: date},
		},
		{
			name:          "unknown kind",
			input:         TransactionInput{Kind: "transfer", Category: CategoryOther, Amount: amount("1"), Date: date},
			expectError:   true,
			expectedField: "kind",
		},
		{
			name:          "unknown category",
			input:         TransactionInput{Kind: KindIncome, Category: "lottery", Amount: amount("1"), Date: date},
			expectError:   true,
			expectedField: "category",
		},
		{
			name:          "zero date",
			input:         TransactionInput{Kind: KindIncome, Category: CategoryOther, Amount: amount("1")},
			expectError:   true,
			expectedField: "date",
		},
		{
			name:          "unknown status",
			input:         TransactionInput{Kind: KindIncome, Category: CategoryOther, Amount: amount("1"), Date: date, Status: "void"},
			expectError:   true,
			expectedField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			err := in.Validate()

			if !tt.expectError {
				require.NoError(t, err)
				assert.True(t, in.Status.Valid())
				return
			}

			require.Error(t, err)
			if tt.invalidAmount {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				return
			}
			var v *apperrors.ErrValidation
			require.True(t, errors.As(err, &v))
			assert.Equal(t, tt.expectedField, v.Field)
		})
	}
}

func TestTransactionInputDefaultsToPending(t *testing.T) {
	in := TransactionInput{Kind: KindIncome, Category: CategoryOther, Amount: amount("1"), Date: time.Now()}
	require.NoError(t, in.Validate())
	assert.Equal(t, StatusPending, in.Status)
}

func TestKindSigned(t *testing.T) {
	assert.True(t, KindIncome.Signed(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
	assert.True(t, KindExpense.Signed(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(-5)))
	assert.Panics(t, func() { Kind("transfer").Signed(decimal.NewFromInt(5)) })
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusPending, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPending, "archived", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCategoriesAreValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("Other").Valid())
}

func TestTransactionPatchApply(t *testing.T) {
	note := "old note"
	base := Transaction{
		ID:       "tx-1",
		Kind:     KindIncome,
		Category: CategoryDonation,
		Amount:   decimal.NewFromInt(100),
		Date:     time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		Note:     &note,
		Status:   StatusPending,
	}

	t.Run("empty patch is identity", func(t *testing.T) {
		p := TransactionPatch{}
		assert.Equal(t, base, p.Apply(base))
	})

	t.Run("every field", func(t *testing.T) {
		kind := KindExpense
		category := CategoryEquipment
		date := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
		newNote := "new note"
		status := StatusConfirmed
		p := TransactionPatch{Kind: &kind, Category: &category, Amount: amount("42.5"), Date: &date, Note: &newNote, Status: &status}

		got := p.Apply(base)
		assert.Equal(t, "tx-1", got.ID)
		assert.Equal(t, KindExpense, got.Kind)
		assert.Equal(t, CategoryEquipment, got.Category)
		assert.True(t, decimal.RequireFromString("42.5").Equal(got.Amount))
		assert.Equal(t, date, got.Date)
		assert.Equal(t, "new note", got.NoteText())
		assert.Equal(t, StatusConfirmed, got.Status)
		assert.Equal(t, "old note", base.NoteText(), "base is not mutated")
	})

	t.Run("empty note clears", func(t *testing.T) {
		empty := ""
		p := TransactionPatch{Note: &empty}
		assert.Nil(t, p.Apply(base).Note)
	})
}

func TestTransactionPatchValidate(t *testing.T) {
	bad := Kind("x")
	assert.ErrorIs(t, (&TransactionPatch{Amount: amount("-1")}).Validate(), apperrors.ErrInvalidAmount)
	assert.True(t, apperrors.IsValidation((&TransactionPatch{Kind: &bad}).Validate()))
	zero := time.Time{}
	assert.True(t, apperrors.IsValidation((&TransactionPatch{Date: &zero}).Validate()))
	assert.NoError(t, (&TransactionPatch{}).Validate())
}

func TestTransactionMarshalJSON(t *testing.T) {
	note := "Hội phí"
	tx := Transaction{
		ID:        "tx-1",
		Kind:      KindIncome,
		Category:  CategoryMembershipFee,
		Amount:    decimal.RequireFromString("1000000"),
		Date:      time.Date(2026, time.October, 18, 0, 0, 0, 0, time.FixedZone("ICT", 7*3600)),
		Note:      &note,
		Status:    StatusConfirmed,
		CreatedAt: time.Date(2026, time.October, 18, 5, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, time.October, 18, 5, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(tx)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "2026-10-18", out["date"])
	assert.Equal(t, "1000000", out["amount"])
	assert.Equal(t, "income", out["kind"])
	assert.Equal(t, "membership_fee", out["category"])
	assert.Equal(t, "Hội phí", out["note"])
	assert.Equal(t, "2026-10-18T05:00:00Z", out["created_at"])
}

func TestNormalizeAndParseDate(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*3600)

	got := NormalizeDate(time.Date(2026, time.October, 18, 23, 59, 0, 0, time.UTC), hcm)
	assert.Equal(t, time.Date(2026, time.October, 18, 0, 0, 0, 0, hcm), got)

	parsed, err := ParseDate("2026-02-28", hcm)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, hcm), parsed)

	_, err = ParseDate("28/02/2026", hcm)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTransactionRecordRoundTrip(t *testing.T) {
	note := "Thuê loa"
	tx := Transaction{
		ID:        "tx-9",
		Kind:      KindExpense,
		Category:  CategoryEquipment,
		Amount:    decimal.RequireFromString("350000.25"),
		Date:      time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC),
		Note:      &note,
		Status:    StatusPending,
		CreatedAt: time.Date(2026, time.May, 2, 3, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, time.May, 3, 3, 0, 0, 0, time.UTC),
	}

	record := NewTransactionRecord(tx)
	assert.Equal(t, "2026-05-02", record.Date)
	assert.Equal(t, "expense", record.Kind)
	assert.Equal(t, "ledger_transactions", record.TableName())

	back, err := record.ToTransaction(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, tx, back)
}

func TestTransactionRecordRejectsCorruptRows(t *testing.T) {
	valid := TransactionRecord{ID: "r", Kind: "income", Category: "other", Amount: decimal.NewFromInt(1), Date: "2026-01-01", Status: "pending"}

	tests := []struct {
		name   string
		mutate func(r *TransactionRecord)
	}{
		{"kind", func(r *TransactionRecord) { r.Kind = "transfer" }},
		{"status", func(r *TransactionRecord) { r.Status = "archived" }},
		{"date", func(r *TransactionRecord) { r.Date = "01/01/2026" }},
		{"amount", func(r *TransactionRecord) { r.Amount = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			_, err := r.ToTransaction(time.UTC)
			assert.Error(t, err)
		})
	}
}
