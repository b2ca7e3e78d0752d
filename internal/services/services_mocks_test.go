package services

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/models"
)

// ---- Mock persistence gateway used in ledger unit tests ----

type mockTransactionRepository struct {
	mu      sync.Mutex
	records map[string]models.Transaction
	order   []string

	failCreate error
	failUpdate error
	failDelete error
	failList   error
	// block makes every write wait for its context to end.
	block bool
	// started receives a value whenever a blocking write begins.
	started chan struct{}
	// assignID overrides the id returned by CreateTransaction.
	assignID string

	creates, updates, deletes int
}

func newMockTransactionRepository() *mockTransactionRepository {
	return &mockTransactionRepository{records: make(map[string]models.Transaction)}
}

func (m *mockTransactionRepository) wait(ctx context.Context) error {
	if !m.block {
		return nil
	}
	if m.started != nil {
		m.started <- struct{}{}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockTransactionRepository) CreateTransaction(ctx context.Context, tx models.Transaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if err := m.wait(ctx); err != nil {
		return "", err
	}
	if m.failCreate != nil {
		return "", m.failCreate
	}
	if m.assignID != "" {
		tx.ID = m.assignID
	}
	m.records[tx.ID] = tx
	m.order = append(m.order, tx.ID)
	return tx.ID, nil
}

func (m *mockTransactionRepository) UpdateTransaction(ctx context.Context, id string, tx models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if err := m.wait(ctx); err != nil {
		return err
	}
	if m.failUpdate != nil {
		return m.failUpdate
	}
	if _, ok := m.records[id]; !ok {
		return &apperrors.NotFoundError{ID: id}
	}
	m.records[id] = tx
	return nil
}

func (m *mockTransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if err := m.wait(ctx); err != nil {
		return err
	}
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.records[id]; !ok {
		return &apperrors.NotFoundError{ID: id}
	}
	delete(m.records, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockTransactionRepository) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	txs := make([]models.Transaction, 0, len(m.order))
	for _, id := range m.order {
		txs = append(txs, m.records[id])
	}
	if filter != nil {
		txs = Query(txs, *filter)
	}
	return txs, nil
}

func (m *mockTransactionRepository) seed(txs ...models.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range txs {
		m.records[tx.ID] = tx
		m.order = append(m.order, tx.ID)
	}
}

func (m *mockTransactionRepository) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// steppingClock is a settable Clock.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func newSteppingClock(now time.Time) *steppingClock {
	return &steppingClock{now: now}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *steppingClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
