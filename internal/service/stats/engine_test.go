package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnanfarms/chickledger/internal/domain/models"
	"github.com/adnanfarms/chickledger/internal/storage/kv"
	"github.com/adnanfarms/chickledger/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store, *kv.MemoryStore) {
	t.Helper()

	mem := kv.NewMemory()
	st := store.New(context.Background(), mem, nil)
	e := newEngine(context.Background(), st, mem, nil, func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	})

	return e, st, mem
}

func TestEngineRecomputesAfterEveryMutation(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()

	st.AddChickArrival(ctx, models.ChickArrivalInput{Date: "2025-03-10", Quantity: 100, BatchNumber: "B1"})
	st.AddMortality(ctx, models.MortalityInput{Date: "2025-03-10", Quantity: 10})
	sale := st.AddSale(ctx, models.SaleInput{Quantity: 20, TotalAmount: 2000, AmountReceived: 1500})

	snap := e.Snapshot()
	assert.Equal(t, 100, snap.TotalChicks)
	assert.Equal(t, 10, snap.TotalMortality)
	assert.Equal(t, 70, snap.CurrentStock)
	assert.Equal(t, 20, snap.TotalSales)
	assert.Equal(t, 1500.0, snap.TotalRevenue)
	assert.Equal(t, 500.0, snap.TotalOutstanding)
	assert.Equal(t, 10.0, snap.MortalityRate)

	// Settling the sale moves the outstanding balance into revenue.
	st.UpdateSale(ctx, sale.ID, models.SalePatch{AmountReceived: floatPtr(2000)})

	snap = e.Snapshot()
	assert.Equal(t, 2000.0, snap.TotalRevenue)
	assert.Equal(t, 0.0, snap.TotalOutstanding)
}

func TestEngineDeleteDrivesStockNegative(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()

	arrival := st.AddChickArrival(ctx, models.ChickArrivalInput{Quantity: 100, BatchNumber: "B1"})
	st.AddMortality(ctx, models.MortalityInput{Quantity: 10})
	st.AddSale(ctx, models.SaleInput{Quantity: 20, TotalAmount: 2000, AmountReceived: 1500})

	st.DeleteChickArrival(ctx, arrival.ID)

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.TotalChicks)
	assert.Equal(t, -30, snap.CurrentStock)
	assert.Equal(t, 0.0, snap.MortalityRate)
	assert.Equal(t, 0.0, snap.PerChickExpenses)
}

func TestEngineIdempotentRecompute(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()

	st.AddChickArrival(ctx, models.ChickArrivalInput{Quantity: 100, BatchNumber: "B1"})

	first := e.Snapshot()
	e.Recompute(ctx)
	second := e.Snapshot()

	assert.Equal(t, first, second)
}

func TestEngineDateChangeAppendsOneEntry(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()

	st.AddFeedMedicine(ctx, models.FeedMedicineInput{Type: models.ItemTypeFeed, Name: "starter", Cost: 300})

	snap := e.Snapshot()
	require.Len(t, snap.DailyChickPrices, 1)
	dayOne := snap.DailyChickPrices[0]
	assert.Equal(t, "2025-03-10", dayOne.Date)

	// Midnight passes with no data change.
	e.now = func() time.Time {
		return time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC)
	}
	e.Recompute(ctx)

	snap = e.Snapshot()
	require.Len(t, snap.DailyChickPrices, 2)
	assert.Equal(t, dayOne, snap.DailyChickPrices[0]) // prior day's entry sealed
	assert.Equal(t, "2025-03-11", snap.DailyChickPrices[1].Date)
}

func TestEngineDailyPricesSurviveRestart(t *testing.T) {
	e, st, mem := newTestEngine(t)
	ctx := context.Background()

	st.AddExtraExpense(ctx, models.ExtraExpenseInput{Description: "transport", Amount: 50})

	e.now = func() time.Time {
		return time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	}
	e.Recompute(ctx)

	// New process: fresh store and engine over the same storage.
	st2 := store.New(ctx, mem, nil)
	e2 := newEngine(ctx, st2, mem, nil, func() time.Time {
		return time.Date(2025, 3, 11, 13, 0, 0, 0, time.UTC)
	})

	snap := e2.Snapshot()
	require.Len(t, snap.DailyChickPrices, 2)
	assert.Equal(t, "2025-03-10", snap.DailyChickPrices[0].Date)
	assert.Equal(t, "2025-03-11", snap.DailyChickPrices[1].Date)
	assert.Equal(t, 50.0, snap.DailyChickPrices[1].TotalCost)
}

func TestEngineSnapshotIsIsolated(t *testing.T) {
	e, st, _ := newTestEngine(t)
	ctx := context.Background()

	st.AddChickArrival(ctx, models.ChickArrivalInput{Quantity: 100, BatchNumber: "B1"})

	snap := e.Snapshot()
	snap.DailyChickPrices[0].TotalCost = 12345

	assert.NotEqual(t, 12345.0, e.Snapshot().DailyChickPrices[0].TotalCost)
}

func TestSnapshotPanicsBeforeFirstRecompute(t *testing.T) {
	e := &Engine{}
	assert.Panics(t, func() { e.Snapshot() })
}
