package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/tropicaldog17/orgledger/internal/errors"
	"github.com/tropicaldog17/orgledger/internal/metrics"
	"github.com/tropicaldog17/orgledger/internal/models"
	"github.com/tropicaldog17/orgledger/internal/repositories"
)

// Clock returns the current time. Tests inject a fixed or stepping clock to
// simulate month and year rollovers.
type Clock func() time.Time

// LedgerConfig configures a Ledger.
type LedgerConfig struct {
	// Location is the timezone calendar dates and periods are evaluated in.
	Location *time.Location
	// PersistTimeout bounds every gateway call.
	PersistTimeout time.Duration
	Clock          Clock
}

// Ledger owns one transaction set and its aggregate snapshot. Each mutation is
// a single call that validates, updates memory optimistically, writes through
// the repository and undoes the in-memory change if the write fails.
//
// Mutations are serialized; reads only wait for in-memory critical sections,
// never for a pending durable write.
type Ledger struct {
	repo           repositories.TransactionRepository
	logger         *zap.Logger
	clock          Clock
	persistTimeout time.Duration

	opMu  sync.Mutex
	mu    sync.RWMutex
	store *TransactionStore
	agg   *Aggregator
}

// NewLedger creates an empty ledger backed by repo. Call Reload to load the
// persisted transactions.
func NewLedger(repo repositories.TransactionRepository, logger *zap.Logger, cfg LedgerConfig) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Ledger{
		repo:           repo,
		logger:         logger,
		clock:          cfg.Clock,
		persistTimeout: cfg.PersistTimeout,
		store:          NewTransactionStore(cfg.Location),
		agg:            NewAggregator(cfg.Location),
	}
}

// AddTransaction validates and records a new transaction.
func (l *Ledger) AddTransaction(ctx context.Context, input models.TransactionInput) (models.Transaction, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	now := l.clock()

	l.mu.Lock()
	l.rebuildIfStale(now)
	tx, err := l.store.Add(input, now)
	if err != nil {
		l.mu.Unlock()
		l.record("add", err)
		return models.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	l.agg.ApplyAdd(tx, now)
	l.mu.Unlock()

	var persistedID string
	err = l.persist(ctx, "create", func(ctx context.Context) error {
		id, err := l.repo.CreateTransaction(ctx, tx)
		persistedID = id
		return err
	})
	if err != nil {
		l.mu.Lock()
		l.store.Remove(tx.ID)
		l.agg.ApplyDelete(tx, now)
		l.mu.Unlock()
		l.rolledBack("add", tx.ID, err)
		return models.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	if persistedID != "" && persistedID != tx.ID {
		l.mu.Lock()
		l.store.Rekey(tx.ID, persistedID)
		l.mu.Unlock()
		tx.ID = persistedID
	}

	l.record("add", nil)
	l.logger.Debug("transaction added",
		zap.String("id", tx.ID),
		zap.String("kind", string(tx.Kind)),
		zap.String("amount", tx.Amount.String()),
		zap.String("date", tx.Date.Format(models.DateLayout)))
	return tx, nil
}

// UpdateTransaction merges patch into transaction id and returns the new record.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	now := l.clock()

	l.mu.Lock()
	l.rebuildIfStale(now)
	old, updated, err := l.store.Update(id, patch, now)
	if err != nil {
		l.mu.Unlock()
		l.record("update", err)
		return models.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	l.agg.ApplyUpdate(old, updated, now)
	l.mu.Unlock()

	err = l.persist(ctx, "update", func(ctx context.Context) error {
		return l.repo.UpdateTransaction(ctx, id, updated)
	})
	if err != nil {
		l.mu.Lock()
		l.store.Replace(old)
		l.agg.ApplyUpdate(updated, old, now)
		l.mu.Unlock()
		l.rolledBack("update", id, err)
		return models.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	l.record("update", nil)
	l.logger.Debug("transaction updated", zap.String("id", id))
	return updated, nil
}

// DeleteTransaction removes transaction id and returns the removed record.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) (models.Transaction, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	now := l.clock()

	l.mu.Lock()
	l.rebuildIfStale(now)
	seq, _ := l.store.Seq(id)
	removed, err := l.store.Delete(id)
	if err != nil {
		l.mu.Unlock()
		l.record("delete", err)
		return models.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}
	l.agg.ApplyDelete(removed, now)
	l.mu.Unlock()

	err = l.persist(ctx, "delete", func(ctx context.Context) error {
		return l.repo.DeleteTransaction(ctx, id)
	})
	if err != nil {
		l.mu.Lock()
		l.store.Restore(removed, seq)
		l.agg.ApplyAdd(removed, now)
		l.mu.Unlock()
		l.rolledBack("delete", id, err)
		return models.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}

	l.record("delete", nil)
	l.logger.Debug("transaction deleted", zap.String("id", id))
	return removed, nil
}

func (l *Ledger) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Get(id)
}

// ListTransactions filters, sorts and paginates the ledger in memory. A nil
// filter returns every transaction in insertion order. A mutation whose durable
// write is still pending is already visible; it disappears again if the write
// fails.
func (l *Ledger) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error) {
	l.mu.RLock()
	txs := l.store.List()
	l.mu.RUnlock()

	if filter == nil {
		return txs, nil
	}
	return Query(txs, *filter), nil
}

// Snapshot returns the running totals as last evaluated. If a calendar
// boundary was crossed since, the period buckets are stale until the next
// mutation or an explicit Refresh. Like ListTransactions it includes a mutation
// whose durable write is still pending.
func (l *Ledger) Snapshot(ctx context.Context) models.AggregateSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.agg.Snapshot()
}

// Summary returns the snapshot with its derived nets and period starts.
func (l *Ledger) Summary(ctx context.Context) models.LedgerSummary {
	snap := l.Snapshot(ctx)
	asOf := snap.AsOf
	if asOf.IsZero() {
		asOf = l.clock()
	}
	period := l.agg.PeriodBoundaries(asOf)
	return models.LedgerSummary{
		AggregateSnapshot: snap,
		CurrentMonthNet:   snap.CurrentMonthNet(),
		CurrentYearNet:    snap.CurrentYearNet(),
		MonthStart:        period.MonthStart.Format(models.DateLayout),
		YearStart:         period.YearStart.Format(models.DateLayout),
		Stale:             l.isStale(),
	}
}

// Refresh recomputes the snapshot from the in-memory transactions against the
// current time.
func (l *Ledger) Refresh(ctx context.Context) models.AggregateSnapshot {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.agg.Rebuild(l.store.List(), now)
	metrics.LedgerRebuilds.WithLabelValues("refresh").Inc()
	metrics.LedgerBalance.Set(l.agg.Snapshot().Balance.InexactFloat64())
	return l.agg.Snapshot()
}

// RefreshIfStale recomputes the period totals only when a day boundary passed
// since they were last evaluated. It reports whether a rebuild happened.
func (l *Ledger) RefreshIfStale(ctx context.Context) bool {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.agg.Stale(now) {
		return false
	}
	l.rebuildIfStale(now)
	return true
}

// Reload replaces the in-memory state with what the repository holds. This is
// how ledgers in different processes converge on a shared store.
func (l *Ledger) Reload(ctx context.Context) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	var txs []models.Transaction
	err := l.persist(ctx, "list", func(ctx context.Context) error {
		var err error
		txs, err = l.repo.ListTransactions(ctx, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("reload ledger: %w", err)
	}

	now := l.clock()
	l.mu.Lock()
	l.store.Reset(txs)
	l.agg.Rebuild(l.store.List(), now)
	snap := l.agg.Snapshot()
	l.mu.Unlock()

	metrics.LedgerRebuilds.WithLabelValues("reload").Inc()
	metrics.LedgerBalance.Set(snap.Balance.InexactFloat64())
	l.logger.Info("ledger reloaded",
		zap.Int("transactions", len(txs)),
		zap.String("balance", snap.Balance.String()))
	return nil
}

func (l *Ledger) isStale() bool {
	now := l.clock()
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.agg.Stale(now)
}

// rebuildIfStale must be called with mu held.
func (l *Ledger) rebuildIfStale(now time.Time) {
	if !l.agg.Stale(now) {
		return
	}
	l.agg.Rebuild(l.store.List(), now)
	metrics.LedgerRebuilds.WithLabelValues("rollover").Inc()
	l.logger.Info("calendar period changed, aggregate rebuilt",
		zap.Time("now", now),
		zap.Int("transactions", l.store.Len()))
}

// persist runs one gateway call under the configured timeout. Any failure is
// reported as a PersistenceError.
func (l *Ledger) persist(ctx context.Context, op string, call func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, l.persistTimeout)
	defer cancel()

	start := time.Now()
	err := call(ctx)
	metrics.GatewayLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		return &apperrors.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (l *Ledger) rolledBack(op, id string, err error) {
	metrics.LedgerRollbacks.WithLabelValues(op).Inc()
	l.record(op, err)
	l.logger.Warn("durable write failed, in-memory change rolled back",
		zap.String("op", op),
		zap.String("id", id),
		zap.Error(err))
}

func (l *Ledger) record(op string, err error) {
	metrics.LedgerOperations.WithLabelValues(op, resultLabel(err)).Inc()
	if err == nil {
		l.mu.RLock()
		balance := l.agg.Snapshot().Balance
		l.mu.RUnlock()
		metrics.LedgerBalance.Set(balance.InexactFloat64())
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrPersistence):
		return "rolled_back"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		return "conflict"
	default:
		return "invalid"
	}
}
