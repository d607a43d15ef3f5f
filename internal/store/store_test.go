package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnanfarms/chickledger/internal/domain/models"
	"github.com/adnanfarms/chickledger/internal/storage/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()

	mem := kv.NewMemory()
	s := New(context.Background(), mem, nil)

	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	s.now = func() time.Time {
		return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	}

	return s, mem
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestAddAssignsIDAndCreatedAt(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	arrival := s.AddChickArrival(ctx, models.ChickArrivalInput{
		Date:        "2025-03-10",
		Quantity:    100,
		BatchNumber: "B1",
	})

	assert.Equal(t, "id-1", arrival.ID)
	assert.Equal(t, "2025-03-10T08:00:00Z", arrival.CreatedAt)
	assert.Equal(t, 100, arrival.Quantity)
	assert.Nil(t, arrival.Price)

	second := s.AddChickArrival(ctx, models.ChickArrivalInput{Date: "2025-03-11", Quantity: 50, BatchNumber: "B2"})
	assert.Equal(t, "id-2", second.ID)

	listed := s.ListChickArrivals()
	require.Len(t, listed, 2)
	assert.Equal(t, "B1", listed[0].BatchNumber)
	assert.Equal(t, "B2", listed[1].BatchNumber)
}

func TestAddSaleDerivesOutstandingBalance(t *testing.T) {
	s, _ := newTestStore(t)

	sale := s.AddSale(context.Background(), models.SaleInput{
		Date:           "2025-03-10",
		CustomerName:   "Karim",
		Quantity:       20,
		PricePerUnit:   100,
		TotalAmount:    2000,
		AmountReceived: 1500,
	})

	assert.Equal(t, 500.0, sale.OutstandingBalance)
}

func TestUpdateSaleRecomputesOutstandingBalance(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sale := s.AddSale(ctx, models.SaleInput{TotalAmount: 2000, AmountReceived: 1500, Quantity: 20})

	s.UpdateSale(ctx, sale.ID, models.SalePatch{AmountReceived: floatPtr(2000)})

	updated := s.ListSales()[0]
	assert.Equal(t, 2000.0, updated.AmountReceived)
	assert.Equal(t, 0.0, updated.OutstandingBalance)

	// Patching an unrelated field still recomputes the balance from the
	// merged record.
	s.UpdateSale(ctx, sale.ID, models.SalePatch{CustomerName: strPtr("Karim")})
	assert.Equal(t, 0.0, s.ListSales()[0].OutstandingBalance)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	arrival := s.AddChickArrival(ctx, models.ChickArrivalInput{
		Date:        "2025-03-10",
		Quantity:    100,
		BatchNumber: "B1",
		Source:      "hatchery",
		Price:       floatPtr(5000),
	})

	s.UpdateChickArrival(ctx, arrival.ID, models.ChickArrivalPatch{Quantity: intPtr(90)})

	updated := s.ListChickArrivals()[0]
	assert.Equal(t, 90, updated.Quantity)
	assert.Equal(t, "B1", updated.BatchNumber)
	assert.Equal(t, "hatchery", updated.Source)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 5000.0, *updated.Price)
	assert.Equal(t, arrival.ID, updated.ID)
	assert.Equal(t, arrival.CreatedAt, updated.CreatedAt)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddMortality(ctx, models.MortalityInput{Date: "2025-03-10", Quantity: 10})
	s.UpdateMortality(ctx, "missing", models.MortalityPatch{Quantity: intPtr(99)})

	listed := s.ListMortalities()
	require.Len(t, listed, 1)
	assert.Equal(t, 10, listed[0].Quantity)
}

func TestDeleteRemovesRecord(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.AddExtraExpense(ctx, models.ExtraExpenseInput{Description: "transport", Amount: 50})
	s.AddExtraExpense(ctx, models.ExtraExpenseInput{Description: "electricity", Amount: 75})

	s.DeleteExtraExpense(ctx, first.ID)

	listed := s.ListExtraExpenses()
	require.Len(t, listed, 1)
	assert.Equal(t, "electricity", listed[0].Description)

	// Unknown id is a silent no-op.
	s.DeleteExtraExpense(ctx, "missing")
	assert.Len(t, s.ListExtraExpenses(), 1)
}

func TestListReturnsIsolatedSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddFeedMedicine(ctx, models.FeedMedicineInput{Type: models.ItemTypeFeed, Name: "starter", Cost: 300})

	before := s.ListFeedMedicines()
	s.UpdateFeedMedicine(ctx, before[0].ID, models.FeedMedicinePatch{Cost: floatPtr(999)})

	assert.Equal(t, 300.0, before[0].Cost)
	assert.Equal(t, 999.0, s.ListFeedMedicines()[0].Cost)
}

func TestCollectionsSurviveRestart(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	s.AddChickArrival(ctx, models.ChickArrivalInput{Date: "2025-03-10", Quantity: 100, BatchNumber: "B1"})
	s.AddSale(ctx, models.SaleInput{Quantity: 20, TotalAmount: 2000, AmountReceived: 1500})

	reopened := New(ctx, mem, nil)

	arrivals := reopened.ListChickArrivals()
	require.Len(t, arrivals, 1)
	assert.Equal(t, "B1", arrivals[0].BatchNumber)

	sales := reopened.ListSales()
	require.Len(t, sales, 1)
	assert.Equal(t, 500.0, sales[0].OutstandingBalance)
}

func TestCorruptSnapshotFallsBackToEmpty(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Save(ctx, keySales, []byte("not json")))

	s := New(ctx, mem, nil)
	assert.Empty(t, s.ListSales())
}

func TestChangeHookFiresAfterEveryMutation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var fired int
	s.OnChange(func(context.Context) { fired++ })

	arrival := s.AddChickArrival(ctx, models.ChickArrivalInput{Quantity: 100, BatchNumber: "B1"})
	s.UpdateChickArrival(ctx, arrival.ID, models.ChickArrivalPatch{Quantity: intPtr(90)})
	s.DeleteChickArrival(ctx, arrival.ID)

	assert.Equal(t, 3, fired)
}

func TestChangeHookObservesAppliedMutation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var seen int
	s.OnChange(func(context.Context) {
		seen = len(s.ListMortalities())
	})

	s.AddMortality(ctx, models.MortalityInput{Quantity: 10})
	assert.Equal(t, 1, seen)
}
