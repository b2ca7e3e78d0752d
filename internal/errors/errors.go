package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrNotFound               = stderrors.New("transaction not found")
	ErrInvalidAmount          = stderrors.New("invalid amount")
	ErrInvalidStateTransition = stderrors.New("invalid status transition")
	ErrPersistence            = stderrors.New("persistence failure")
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// NotFoundError reports an operation on a transaction id the ledger does not hold.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transaction not found: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidAmountError reports a missing, negative or non-finite amount.
type InvalidAmountError struct {
	Amount string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	if e.Amount == "" {
		return "invalid amount: " + e.Reason
	}
	return fmt.Sprintf("invalid amount %s: %s", e.Amount, e.Reason)
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// InvalidStateTransitionError reports an attempt to move a transaction out of a
// terminal status.
type InvalidStateTransitionError struct {
	ID   string
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("transaction %s: cannot change status from %s to %s", e.ID, e.From, e.To)
}

func (e *InvalidStateTransitionError) Is(target error) bool {
	return target == ErrInvalidStateTransition
}

// PersistenceError wraps a failed or timed out durable write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsValidation reports whether err is a caller input problem (as opposed to a
// lookup, state or storage failure).
func IsValidation(err error) bool {
	var v *ErrValidation
	return stderrors.As(err, &v) || stderrors.Is(err, ErrInvalidAmount)
}
