package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
)

// DateLayout is the ISO-8601 calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Kind tells whether a transaction brings money in or takes it out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense:
		return true
	}
	return false
}

// Signed returns amount with the sign carried by the kind: positive for income,
// negative for expense.
func (k Kind) Signed(amount decimal.Decimal) decimal.Decimal {
	switch k {
	case KindIncome:
		return amount
	case KindExpense:
		return amount.Neg()
	}
	panic("models: unknown transaction kind " + string(k))
}

// Status is the review state of a transaction. Cancelled is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transaction in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	if s == StatusCancelled {
		return next == StatusCancelled
	}
	return next.Valid()
}

// Category classifies what a transaction was for.
type Category string

const (
	// Income side
	CategoryMembershipFee Category = "membership_fee"
	CategorySponsorship   Category = "sponsorship"
	CategoryDonation      Category = "donation"
	CategoryEventRevenue  Category = "event_revenue"

	// Expense side
	CategoryEvent         Category = "event"
	CategoryOperations    Category = "operations"
	CategoryEquipment     Category = "equipment"
	CategoryAllowance     Category = "allowance"
	CategoryCommunication Category = "communication"

	CategoryOther Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryMembershipFee, CategorySponsorship, CategoryDonation, CategoryEventRevenue,
	CategoryEvent, CategoryOperations, CategoryEquipment, CategoryAllowance, CategoryCommunication,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction is a single income or expense entry of the organization ledger.
type Transaction struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Category  Category        `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Note      *string         `json:"note,omitempty"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MarshalJSON renders Date as a calendar date rather than a timestamp.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(t), Date: t.Date.Format(DateLayout)})
}

// NoteText returns the note or an empty string.
func (t Transaction) NoteText() string {
	if t.Note == nil {
		return ""
	}
	return *t.Note
}

// TransactionInput carries the caller supplied fields of a new transaction.
type TransactionInput struct {
	Kind     Kind
	Category Category
	Amount   *decimal.Decimal
	Date     time.Time
	Note     *string
	Status   Status
}

// Validate checks the input before anything is stored. An empty status
// defaults to pending.
func (in *TransactionInput) Validate() error {
	if in.Amount == nil {
		return &apperrors.InvalidAmountError{Reason: "amount is required"}
	}
	if err := ValidateAmount(*in.Amount); err != nil {
		return err
	}
	if !in.Kind.Valid() {
		return &apperrors.ErrValidation{Field: "kind", Message: "must be 'income' or 'expense'"}
	}
	if !in.Category.Valid() {
		return &apperrors.ErrValidation{Field: "category", Message: "unknown category '" + string(in.Category) + "'"}
	}
	if in.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "date is required"}
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if !in.Status.Valid() {
		return &apperrors.ErrValidation{Field: "status", Message: "unknown status '" + string(in.Status) + "'"}
	}
	return nil
}

// TransactionPatch is a partial update. Nil fields are left untouched; a
// non-nil empty Note clears the note.
type TransactionPatch struct {
	Kind     *Kind
	Category *Category
	Amount   *decimal.Decimal
	Date     *time.Time
	Note     *string
	Status   *Status
}

// Validate checks the fields present in the patch. Status transitions are
// checked by the store, which knows the current status.
func (p *TransactionPatch) Validate() error {
	if p.Amount != nil {
		if err := ValidateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Kind != nil && !p.Kind.Valid() {
		return &apperrors.ErrValidation{Field: "kind", Message: "must be 'income' or 'expense'"}
	}
	if p.Category != nil && !p.Category.Valid() {
		return &apperrors.ErrValidation{Field: "category", Message: "unknown category '" + string(*p.Category) + "'"}
	}
	if p.Date != nil && p.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "date must not be empty"}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &apperrors.ErrValidation{Field: "status", Message: "unknown status '" + string(*p.Status) + "'"}
	}
	return nil
}

// Apply returns a copy of tx with the patch merged in. The caller stamps UpdatedAt.
func (p *TransactionPatch) Apply(tx Transaction) Transaction {
	if p.Kind != nil {
		tx.Kind = *p.Kind
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Note != nil {
		if *p.Note == "" {
			tx.Note = nil
		} else {
			note := *p.Note
			tx.Note = &note
		}
	}
	if p.Status != nil {
		tx.Status = *p.Status
	}
	return tx
}

// AmountScale is the number of fractional digits the amount column stores.
const AmountScale = 2

// maxAmount is the first value a DECIMAL(20,2) column cannot hold.
var maxAmount = decimal.New(1, 20-AmountScale)

// ValidateAmount rejects negative amounts and amounts the amount column would
// round or overflow. decimal.Decimal cannot hold NaN or infinities, so
// finiteness is guaranteed by the type.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &apperrors.InvalidAmountError{Amount: amount.String(), Reason: "must be non-negative"}
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return &apperrors.InvalidAmountError{Amount: amount.String(), Reason: "at most 2 decimal places"}
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return &apperrors.InvalidAmountError{Amount: amount.String(), Reason: "too large"}
	}
	return nil
}

// NormalizeDate keeps only the calendar day of t, placed at midnight in loc.
func NormalizeDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD string as a calendar day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, &apperrors.ErrValidation{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	return d, nil
}
