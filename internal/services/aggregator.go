package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tropicaldog17/orgledger/internal/models"
)

// Aggregator maintains the running totals of one ledger. Every mutation is
// O(1); period membership is decided from the "now" passed to each call, never
// from a cached boundary.
//
// Aggregator is not safe for concurrent use. Ledger serializes access to it.
type Aggregator struct {
	loc      *time.Location
	snapshot models.AggregateSnapshot
}

// NewAggregator creates an empty aggregator evaluating calendar periods in loc.
func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc, snapshot: emptySnapshot(time.Time{})}
}

func emptySnapshot(asOf time.Time) models.AggregateSnapshot {
	return models.AggregateSnapshot{
		TotalIncome:         decimal.Zero,
		TotalExpense:        decimal.Zero,
		Balance:             decimal.Zero,
		CurrentMonthIncome:  decimal.Zero,
		CurrentMonthExpense: decimal.Zero,
		CurrentYearIncome:   decimal.Zero,
		CurrentYearExpense:  decimal.Zero,
		AsOf:                asOf,
	}
}

// PeriodBoundaries returns the current month and year starts for now.
func (a *Aggregator) PeriodBoundaries(now time.Time) models.PeriodBoundaries {
	return models.NewPeriodBoundaries(now, a.loc)
}

// Snapshot returns a copy of the current totals.
func (a *Aggregator) Snapshot() models.AggregateSnapshot {
	return a.snapshot
}

// Stale reports whether the buckets were last evaluated on a different calendar
// day than now. Crossing midnight can move future-dated transactions into the
// buckets and crossing a month or year empties them, so a stale aggregator must
// be rebuilt before further incremental updates or a retraction could miss a
// bucket the transaction was counted in.
func (a *Aggregator) Stale(now time.Time) bool {
	if a.snapshot.AsOf.IsZero() {
		return false
	}
	return !a.PeriodBoundaries(a.snapshot.AsOf).SamePeriod(a.PeriodBoundaries(now))
}

// ApplyAdd adds the contribution of tx.
func (a *Aggregator) ApplyAdd(tx models.Transaction, now time.Time) {
	a.contribute(tx, now, 1)
}

// ApplyDelete retracts exactly what ApplyAdd added for tx.
func (a *Aggregator) ApplyDelete(tx models.Transaction, now time.Time) {
	a.contribute(tx, now, -1)
}

// ApplyUpdate retracts old and then applies updated. Each half evaluates its
// own date against the current boundaries, so date moves across months, kind
// flips and edits after a rollover all land in the right buckets.
func (a *Aggregator) ApplyUpdate(old, updated models.Transaction, now time.Time) {
	a.ApplyDelete(old, now)
	a.ApplyAdd(updated, now)
}

// Rebuild recomputes the snapshot from scratch.
func (a *Aggregator) Rebuild(txs []models.Transaction, now time.Time) {
	a.snapshot = emptySnapshot(now)
	for _, tx := range txs {
		a.contribute(tx, now, 1)
	}
}

// contribute adds (direction=1) or retracts (direction=-1) the contribution of tx.
func (a *Aggregator) contribute(tx models.Transaction, now time.Time, direction int64) {
	period := a.PeriodBoundaries(now)
	amount := tx.Amount.Mul(decimal.NewFromInt(direction))
	s := &a.snapshot

	switch tx.Kind {
	case models.KindIncome:
		s.TotalIncome = s.TotalIncome.Add(amount)
		if period.InMonth(tx.Date) {
			s.CurrentMonthIncome = s.CurrentMonthIncome.Add(amount)
		}
		if period.InYear(tx.Date) {
			s.CurrentYearIncome = s.CurrentYearIncome.Add(amount)
		}
	case models.KindExpense:
		s.TotalExpense = s.TotalExpense.Add(amount)
		if period.InMonth(tx.Date) {
			s.CurrentMonthExpense = s.CurrentMonthExpense.Add(amount)
		}
		if period.InYear(tx.Date) {
			s.CurrentYearExpense = s.CurrentYearExpense.Add(amount)
		}
	default:
		panic("services: unknown transaction kind " + string(tx.Kind))
	}

	s.Balance = s.Balance.Add(tx.Kind.Signed(amount))
	s.TransactionCount += int(direction)
	s.AsOf = period.Now
}
