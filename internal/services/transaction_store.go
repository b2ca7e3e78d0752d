package services

import (
	"slices"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/models"
)

type storeEntry struct {
	tx  models.Transaction
	seq uint64
}

// TransactionStore is the in-memory record set of one ledger. Records are
// returned by value so callers cannot mutate stored state.
//
// TransactionStore is not safe for concurrent use. Ledger serializes access to it.
type TransactionStore struct {
	loc     *time.Location
	entries map[string]*storeEntry
	nextSeq uint64
	newID   func() string
}

// NewTransactionStore creates an empty store whose calendar dates live in loc.
func NewTransactionStore(loc *time.Location) *TransactionStore {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionStore{
		loc:     loc,
		entries: make(map[string]*storeEntry),
		newID:   func() string { return uuid.New().String() },
	}
}

// Add validates input and stores a new transaction stamped with now.
func (s *TransactionStore) Add(input models.TransactionInput, now time.Time) (models.Transaction, error) {
	if err := input.Validate(); err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:        s.newID(),
		Kind:      input.Kind,
		Category:  input.Category,
		Amount:    *input.Amount,
		Date:      models.NormalizeDate(input.Date, s.loc),
		Note:      normalizeNote(input.Note),
		Status:    input.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.insert(tx)
	return tx, nil
}

// Update merges patch into the transaction id and returns the record before
// and after the change.
func (s *TransactionStore) Update(id string, patch models.TransactionPatch, now time.Time) (old, updated models.Transaction, err error) {
	e, ok := s.entries[id]
	if !ok {
		return old, updated, &apperrors.NotFoundError{ID: id}
	}
	if err := patch.Validate(); err != nil {
		return old, updated, err
	}
	old = e.tx
	if patch.Status != nil && !old.Status.CanTransitionTo(*patch.Status) {
		return old, updated, &apperrors.InvalidStateTransitionError{
			ID: id, From: string(old.Status), To: string(*patch.Status),
		}
	}

	updated = patch.Apply(old)
	updated.Date = models.NormalizeDate(updated.Date, s.loc)
	updated.UpdatedAt = now
	e.tx = updated
	return old, updated, nil
}

// Delete removes the transaction id and returns it.
func (s *TransactionStore) Delete(id string) (models.Transaction, error) {
	e, ok := s.entries[id]
	if !ok {
		return models.Transaction{}, &apperrors.NotFoundError{ID: id}
	}
	delete(s.entries, id)
	return e.tx, nil
}

func (s *TransactionStore) Get(id string) (models.Transaction, error) {
	e, ok := s.entries[id]
	if !ok {
		return models.Transaction{}, &apperrors.NotFoundError{ID: id}
	}
	return e.tx, nil
}

// List returns every transaction in insertion order.
func (s *TransactionStore) List() []models.Transaction {
	entries := make([]*storeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b *storeEntry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	txs := make([]models.Transaction, len(entries))
	for i, e := range entries {
		txs[i] = e.tx
	}
	return txs
}

func (s *TransactionStore) Len() int {
	return len(s.entries)
}

// Remove drops id without reporting absence. It undoes Add.
func (s *TransactionStore) Remove(id string) {
	delete(s.entries, id)
}

// Replace overwrites an existing record in place. It undoes Update.
func (s *TransactionStore) Replace(tx models.Transaction) {
	if e, ok := s.entries[tx.ID]; ok {
		e.tx = tx
	}
}

// Restore puts back a deleted record at its original position. It undoes Delete.
func (s *TransactionStore) Restore(tx models.Transaction, seq uint64) {
	s.entries[tx.ID] = &storeEntry{tx: tx, seq: seq}
}

// Rekey moves a record to the id the durable store assigned to it.
func (s *TransactionStore) Rekey(oldID, newID string) {
	e, ok := s.entries[oldID]
	if !ok {
		return
	}
	delete(s.entries, oldID)
	e.tx.ID = newID
	s.entries[newID] = e
}

// Seq returns the insertion position of id.
func (s *TransactionStore) Seq(id string) (uint64, bool) {
	e, ok := s.entries[id]
	if !ok {
		return 0, false
	}
	return e.seq, true
}

// Reset replaces the whole content with txs, keeping their order.
func (s *TransactionStore) Reset(txs []models.Transaction) {
	s.entries = make(map[string]*storeEntry, len(txs))
	s.nextSeq = 0
	for _, tx := range txs {
		tx.Date = models.NormalizeDate(tx.Date, s.loc)
		s.insert(tx)
	}
}

func (s *TransactionStore) insert(tx models.Transaction) {
	s.entries[tx.ID] = &storeEntry{tx: tx, seq: s.nextSeq}
	s.nextSeq++
}

func normalizeNote(note *string) *string {
	if note == nil || *note == "" {
		return nil
	}
	n := *note
	return &n
}
