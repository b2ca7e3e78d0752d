package services

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/orgledger/internal/models"
)

func filterFixture() []models.Transaction {
	note := func(tx models.Transaction, n string) models.Transaction {
		tx.Note = &n
		return tx
	}
	withStatus := func(tx models.Transaction, s models.Status) models.Transaction {
		tx.Status = s
		return tx
	}
	withCategory := func(tx models.Transaction, c models.Category) models.Transaction {
		tx.Category = c
		return tx
	}

	return []models.Transaction{
		note(withCategory(newTx("t1", models.KindIncome, 1_000_000, day(2026, time.October, 1)), models.CategoryMembershipFee), "Hội phí tháng 10"),
		note(withCategory(newTx("t2", models.KindExpense, 400_000, day(2026, time.October, 5)), models.CategoryEvent), "Thuê hội trường"),
		withStatus(newTx("t3", models.KindExpense, 250_000, day(2026, time.September, 20)), models.StatusPending),
		withStatus(note(newTx("t4", models.KindIncome, 400_000, day(2026, time.August, 15)), "HỘI PHÍ bổ sung"), models.StatusCancelled),
		newTx("t5", models.KindIncome, 50_000, day(2025, time.December, 31)),
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	txs := filterFixture()
	from := day(2026, time.September, 20)
	to := day(2026, time.October, 5)

	tests := []struct {
		name   string
		filter models.TransactionFilter
		want   []string
	}{
		{
			name:   "empty filter matches everything",
			filter: models.TransactionFilter{},
			want:   []string{"t1", "t2", "t3", "t4", "t5"},
		},
		{
			name:   "status ALL is identity",
			filter: models.TransactionFilter{Status: models.FilterAll, Category: models.FilterAll, Kind: models.FilterAll},
			want:   []string{"t1", "t2", "t3", "t4", "t5"},
		},
		{
			name:   "concrete status",
			filter: models.TransactionFilter{Status: string(models.StatusConfirmed)},
			want:   []string{"t1", "t2", "t5"},
		},
		{
			name:   "inclusive date range",
			filter: models.TransactionFilter{DateFrom: &from, DateTo: &to},
			want:   []string{"t1", "t2", "t3"},
		},
		{
			name:   "inclusive amount range",
			filter: models.TransactionFilter{AmountFrom: amountPtr(250_000), AmountTo: amountPtr(400_000)},
			want:   []string{"t2", "t3", "t4"},
		},
		{
			name:   "kind",
			filter: models.TransactionFilter{Kind: string(models.KindExpense)},
			want:   []string{"t2", "t3"},
		},
		{
			name:   "category",
			filter: models.TransactionFilter{Category: string(models.CategoryOther)},
			want:   []string{"t3", "t4", "t5"},
		},
		{
			name:   "case insensitive note search",
			filter: models.TransactionFilter{SearchText: "hội phí"},
			want:   []string{"t1", "t4"},
		},
		{
			name:   "search skips transactions without note",
			filter: models.TransactionFilter{SearchText: "hội trường"},
			want:   []string{"t2"},
		},
		{
			name: "criteria combine with AND",
			filter: models.TransactionFilter{
				Kind:       string(models.KindIncome),
				Status:     models.FilterAll,
				SearchText: "phí",
				AmountTo:   amountPtr(500_000),
			},
			want: []string{"t4"},
		},
		{
			name:   "search keeps surrounding spaces",
			filter: models.TransactionFilter{SearchText: "10 "},
			want:   []string{},
		},
		{
			name:   "search matches an inner space",
			filter: models.TransactionFilter{SearchText: " 10"},
			want:   []string{"t1"},
		},
		{
			name:   "no match",
			filter: models.TransactionFilter{SearchText: "không tồn tại"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Filter(txs, tt.filter))
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_StatusAllIsIdentity(t *testing.T) {
	txs := filterFixture()
	got := slices.Collect(Filter(txs, models.TransactionFilter{Status: models.FilterAll}))
	assert.Equal(t, txs, got)
}

func TestFilter_ConcreteStatusIsSubset(t *testing.T) {
	txs := filterFixture()
	for _, status := range []models.Status{models.StatusPending, models.StatusConfirmed, models.StatusCancelled} {
		for tx := range Filter(txs, models.TransactionFilter{Status: string(status)}) {
			assert.Equal(t, status, tx.Status)
			assert.Contains(t, txs, tx)
		}
	}
}

func TestFilter_Restartable(t *testing.T) {
	seq := Filter(filterFixture(), models.TransactionFilter{Kind: string(models.KindIncome)})

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, []string{"t1", "t4", "t5"}, ids(first))
}

func TestFilter_StopsEarly(t *testing.T) {
	var seen []string
	for tx := range Filter(filterFixture(), models.TransactionFilter{}) {
		seen = append(seen, tx.ID)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"t1", "t2"}, seen)
}

func TestSort(t *testing.T) {
	txs := filterFixture()

	tests := []struct {
		name  string
		field models.SortField
		dir   models.SortDirection
		want  []string
	}{
		{"date ascending", models.SortByDate, models.SortAsc, []string{"t5", "t4", "t3", "t1", "t2"}},
		{"date descending", models.SortByDate, models.SortDesc, []string{"t2", "t1", "t3", "t4", "t5"}},
		{"amount ascending keeps ties in input order", models.SortByAmount, models.SortAsc, []string{"t5", "t3", "t2", "t4", "t1"}},
		{"amount descending keeps ties in input order", models.SortByAmount, models.SortDesc, []string{"t1", "t2", "t4", "t3", "t5"}},
		{"kind", models.SortByKind, models.SortAsc, []string{"t2", "t3", "t1", "t4", "t5"}},
		{"status", models.SortByStatus, models.SortAsc, []string{"t4", "t1", "t2", "t5", "t3"}},
		{"unknown field leaves order", models.SortField("colour"), models.SortAsc, []string{"t1", "t2", "t3", "t4", "t5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := Sort(txs, tt.field, tt.dir)
			assert.Equal(t, tt.want, ids(sorted))
		})
	}

	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, ids(txs), "input is not reordered")
}

func TestSort_StableOnEqualKeys(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 50; i++ {
		tx := newTx(string(rune('a'+i%26))+string(rune('a'+i/26)), models.KindIncome, int64(i%3), referenceNow)
		txs = append(txs, tx)
	}

	sorted := Sort(txs, models.SortByAmount, models.SortAsc)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Amount.Equal(cur.Amount) {
			assert.Less(t, slices.Index(ids(txs), prev.ID), slices.Index(ids(txs), cur.ID))
		}
	}
}

func TestPaginate(t *testing.T) {
	txs := filterFixture()

	tests := []struct {
		name          string
		limit, offset int
		want          []string
	}{
		{"no limit", 0, 0, []string{"t1", "t2", "t3", "t4", "t5"}},
		{"first page", 2, 0, []string{"t1", "t2"}},
		{"middle page", 2, 2, []string{"t3", "t4"}},
		{"last partial page", 2, 4, []string{"t5"}},
		{"past the end", 2, 10, []string{}},
		{"negative offset", 1, -3, []string{"t1"}},
		{"max limit with offset", math.MaxInt, 1, []string{"t2", "t3", "t4", "t5"}},
		{"max limit past the end", math.MaxInt, 7, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Paginate(txs, tt.limit, tt.offset)))
		})
	}
}

func TestQuery(t *testing.T) {
	txs := filterFixture()

	got := Query(txs, models.TransactionFilter{
		Status:  string(models.StatusConfirmed),
		SortBy:  models.SortByAmount,
		SortDir: models.SortDesc,
		Limit:   2,
	})
	assert.Equal(t, []string{"t1", "t2"}, ids(got))

	page2 := Query(txs, models.TransactionFilter{
		Status:  string(models.StatusConfirmed),
		SortBy:  models.SortByAmount,
		SortDir: models.SortDesc,
		Limit:   2,
		Offset:  2,
	})
	assert.Equal(t, []string{"t5"}, ids(page2))

	empty := Query(txs, models.TransactionFilter{SearchText: "zzz"})
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestQuery_AmountBoundsAreExact(t *testing.T) {
	txs := []models.Transaction{
		newTx("a", models.KindIncome, 0, referenceNow),
		{ID: "b", Kind: models.KindIncome, Category: models.CategoryOther, Amount: decimal.RequireFromString("100.50"), Date: referenceNow, Status: models.StatusConfirmed},
	}
	from := decimal.RequireFromString("100.50")
	got := Query(txs, models.TransactionFilter{AmountFrom: &from})
	assert.Equal(t, []string{"b"}, ids(got))
}
