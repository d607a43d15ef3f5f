// Package store owns the five farm record collections and their durable
// snapshots. Every mutation persists the whole affected collection under its
// key and then fires the change hook so derived stats never go stale.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/domain/models"
	"github.com/adnanfarms/chickledger/internal/storage/kv"
)

// Snapshot keys, one per collection. These are the external persistence
// contract; renaming one orphans previously saved data.
const (
	keyChickArrivals = "chickArrivals"
	keyMortalities   = "mortalities"
	keyFeedMedicines = "feedMedicines"
	keySales         = "sales"
	keyExtraExpenses = "extraExpenses"
)

// Store provides CRUD access to the farm record collections. All methods are
// safe for concurrent use; records are handed out and accepted by value.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
	onChange func(context.Context)

	arrivals      []models.ChickArrival
	mortalities   []models.Mortality
	feedMedicines []models.FeedMedicine
	sales         []models.Sale
	extraExpenses []models.ExtraExpense
}

// New builds a Store backed by the given snapshot storage and loads all five
// collections. A missing or unreadable snapshot leaves that collection empty;
// it is logged but never fails construction.
func New(ctx context.Context, kvStore kv.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		kv:     kvStore,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}

	s.arrivals = loadCollection[models.ChickArrival](ctx, kvStore, keyChickArrivals, logger)
	s.mortalities = loadCollection[models.Mortality](ctx, kvStore, keyMortalities, logger)
	s.feedMedicines = loadCollection[models.FeedMedicine](ctx, kvStore, keyFeedMedicines, logger)
	s.sales = loadCollection[models.Sale](ctx, kvStore, keySales, logger)
	s.extraExpenses = loadCollection[models.ExtraExpense](ctx, kvStore, keyExtraExpenses, logger)

	return s
}

// OnChange registers the hook fired after every completed mutation. The hook
// runs outside the store's lock, after the collection has been persisted.
// Used by the aggregation engine; call before the first mutation.
func (s *Store) OnChange(fn func(context.Context)) {
	s.onChange = fn
}

// AddChickArrival appends a new arrival record and returns it with its
// assigned id and creation timestamp.
func (s *Store) AddChickArrival(ctx context.Context, input models.ChickArrivalInput) models.ChickArrival {
	s.mu.Lock()
	arrival := models.ChickArrival{
		ID:          s.newID(),
		Date:        input.Date,
		Quantity:    input.Quantity,
		BatchNumber: input.BatchNumber,
		Source:      input.Source,
		Price:       input.Price,
		CreatedAt:   s.timestamp(),
	}
	s.arrivals = append(s.arrivals, arrival)
	s.persist(ctx, keyChickArrivals, s.arrivals)
	s.mu.Unlock()

	s.notify(ctx)
	return arrival
}

// UpdateChickArrival merges the patch into the arrival with the given id.
// Unknown ids are a silent no-op.
func (s *Store) UpdateChickArrival(ctx context.Context, id string, patch models.ChickArrivalPatch) {
	s.mu.Lock()
	for i := range s.arrivals {
		if s.arrivals[i].ID != id {
			continue
		}
		a := &s.arrivals[i]
		if patch.Date != nil {
			a.Date = *patch.Date
		}
		if patch.Quantity != nil {
			a.Quantity = *patch.Quantity
		}
		if patch.BatchNumber != nil {
			a.BatchNumber = *patch.BatchNumber
		}
		if patch.Source != nil {
			a.Source = *patch.Source
		}
		if patch.Price != nil {
			a.Price = patch.Price
		}
		break
	}
	s.persist(ctx, keyChickArrivals, s.arrivals)
	s.mu.Unlock()

	s.notify(ctx)
}

// DeleteChickArrival removes the arrival with the given id, if present.
func (s *Store) DeleteChickArrival(ctx context.Context, id string) {
	s.mu.Lock()
	s.arrivals = deleteByID(s.arrivals, id, func(a models.ChickArrival) string { return a.ID })
	s.persist(ctx, keyChickArrivals, s.arrivals)
	s.mu.Unlock()

	s.notify(ctx)
}

// ListChickArrivals returns a copy of the arrivals in insertion order.
func (s *Store) ListChickArrivals() []models.ChickArrival {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.arrivals)
}

// AddMortality appends a new mortality record and returns it.
func (s *Store) AddMortality(ctx context.Context, input models.MortalityInput) models.Mortality {
	s.mu.Lock()
	mortality := models.Mortality{
		ID:        s.newID(),
		Date:      input.Date,
		Quantity:  input.Quantity,
		Notes:     input.Notes,
		CreatedAt: s.timestamp(),
	}
	s.mortalities = append(s.mortalities, mortality)
	s.persist(ctx, keyMortalities, s.mortalities)
	s.mu.Unlock()

	s.notify(ctx)
	return mortality
}

// UpdateMortality merges the patch into the mortality with the given id.
func (s *Store) UpdateMortality(ctx context.Context, id string, patch models.MortalityPatch) {
	s.mu.Lock()
	for i := range s.mortalities {
		if s.mortalities[i].ID != id {
			continue
		}
		m := &s.mortalities[i]
		if patch.Date != nil {
			m.Date = *patch.Date
		}
		if patch.Quantity != nil {
			m.Quantity = *patch.Quantity
		}
		if patch.Notes != nil {
			m.Notes = *patch.Notes
		}
		break
	}
	s.persist(ctx, keyMortalities, s.mortalities)
	s.mu.Unlock()

	s.notify(ctx)
}

// DeleteMortality removes the mortality with the given id, if present.
func (s *Store) DeleteMortality(ctx context.Context, id string) {
	s.mu.Lock()
	s.mortalities = deleteByID(s.mortalities, id, func(m models.Mortality) string { return m.ID })
	s.persist(ctx, keyMortalities, s.mortalities)
	s.mu.Unlock()

	s.notify(ctx)
}

// ListMortalities returns a copy of the mortalities in insertion order.
func (s *Store) ListMortalities() []models.Mortality {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.mortalities)
}

// AddFeedMedicine appends a new feed/medicine purchase and returns it.
func (s *Store) AddFeedMedicine(ctx context.Context, input models.FeedMedicineInput) models.FeedMedicine {
	s.mu.Lock()
	item := models.FeedMedicine{
		ID:        s.newID(),
		Date:      input.Date,
		Type:      input.Type,
		Name:      input.Name,
		Quantity:  input.Quantity,
		Cost:      input.Cost,
		Supplier:  input.Supplier,
		CreatedAt: s.timestamp(),
	}
	s.feedMedicines = append(s.feedMedicines, item)
	s.persist(ctx, keyFeedMedicines, s.feedMedicines)
	s.mu.Unlock()

	s.notify(ctx)
	return item
}

// UpdateFeedMedicine merges the patch into the purchase with the given id.
func (s *Store) UpdateFeedMedicine(ctx context.Context, id string, patch models.FeedMedicinePatch) {
	s.mu.Lock()
	for i := range s.feedMedicines {
		if s.feedMedicines[i].ID != id {
			continue
		}
		f := &s.feedMedicines[i]
		if patch.Date != nil {
			f.Date = *patch.Date
		}
		if patch.Type != nil {
			f.Type = *patch.Type
		}
		if patch.Name != nil {
			f.Name = *patch.Name
		}
		if patch.Quantity != nil {
			f.Quantity = *patch.Quantity
		}
		if patch.Cost != nil {
			f.Cost = *patch.Cost
		}
		if patch.Supplier != nil {
			f.Supplier = *patch.Supplier
		}
		break
	}
	s.persist(ctx, keyFeedMedicines, s.feedMedicines)
	s.mu.Unlock()

	s.notify(ctx)
}

// DeleteFeedMedicine removes the purchase with the given id, if present.
func (s *Store) DeleteFeedMedicine(ctx context.Context, id string) {
	s.mu.Lock()
	s.feedMedicines = deleteByID(s.feedMedicines, id, func(f models.FeedMedicine) string { return f.ID })
	s.persist(ctx, keyFeedMedicines, s.feedMedicines)
	s.mu.Unlock()

	s.notify(ctx)
}

// ListFeedMedicines returns a copy of the purchases in insertion order.
func (s *Store) ListFeedMedicines() []models.FeedMedicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.feedMedicines)
}

// AddSale appends a new sale, deriving its outstanding balance, and returns it.
func (s *Store) AddSale(ctx context.Context, input models.SaleInput) models.Sale {
	s.mu.Lock()
	sale := models.Sale{
		ID:                 s.newID(),
		Date:               input.Date,
		CustomerName:       input.CustomerName,
		Quantity:           input.Quantity,
		PricePerUnit:       input.PricePerUnit,
		TotalAmount:        input.TotalAmount,
		AmountReceived:     input.AmountReceived,
		OutstandingBalance: input.TotalAmount - input.AmountReceived,
		CreatedAt:          s.timestamp(),
	}
	s.sales = append(s.sales, sale)
	s.persist(ctx, keySales, s.sales)
	s.mu.Unlock()

	s.notify(ctx)
	return sale
}

// UpdateSale merges the patch into the sale with the given id. The
// outstanding balance is recomputed from the merged record no matter which
// fields were patched.
func (s *Store) UpdateSale(ctx context.Context, id string, patch models.SalePatch) {
	s.mu.Lock()
	for i := range s.sales {
		if s.sales[i].ID != id {
			continue
		}
		sale := &s.sales[i]
		if patch.Date != nil {
			sale.Date = *patch.Date
		}
		if patch.CustomerName != nil {
			sale.CustomerName = *patch.CustomerName
		}
		if patch.Quantity != nil {
			sale.Quantity = *patch.Quantity
		}
		if patch.PricePerUnit != nil {
			sale.PricePerUnit = *patch.PricePerUnit
		}
		if patch.TotalAmount != nil {
			sale.TotalAmount = *patch.TotalAmount
		}
		if patch.AmountReceived != nil {
			sale.AmountReceived = *patch.AmountReceived
		}
		sale.OutstandingBalance = sale.TotalAmount - sale.AmountReceived
		break
	}
	s.persist(ctx, keySales, s.sales)
	s.mu.Unlock()

	s.notify(ctx)
}

// DeleteSale removes the sale with the given id, if present.
func (s *Store) DeleteSale(ctx context.Context, id string) {
	s.mu.Lock()
	s.sales = deleteByID(s.sales, id, func(sl models.Sale) string { return sl.ID })
	s.persist(ctx, keySales, s.sales)
	s.mu.Unlock()

	s.notify(ctx)
}

// ListSales returns a copy of the sales in insertion order.
func (s *Store) ListSales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.sales)
}

// AddExtraExpense appends a new extra expense and returns it.
func (s *Store) AddExtraExpense(ctx context.Context, input models.ExtraExpenseInput) models.ExtraExpense {
	s.mu.Lock()
	expense := models.ExtraExpense{
		ID:          s.newID(),
		Date:        input.Date,
		Description: input.Description,
		Amount:      input.Amount,
		CreatedAt:   s.timestamp(),
	}
	s.extraExpenses = append(s.extraExpenses, expense)
	s.persist(ctx, keyExtraExpenses, s.extraExpenses)
	s.mu.Unlock()

	s.notify(ctx)
	return expense
}

// UpdateExtraExpense merges the patch into the expense with the given id.
func (s *Store) UpdateExtraExpense(ctx context.Context, id string, patch models.ExtraExpensePatch) {
	s.mu.Lock()
	for i := range s.extraExpenses {
		if s.extraExpenses[i].ID != id {
			continue
		}
		e := &s.extraExpenses[i]
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Amount != nil {
			e.Amount = *patch.Amount
		}
		break
	}
	s.persist(ctx, keyExtraExpenses, s.extraExpenses)
	s.mu.Unlock()

	s.notify(ctx)
}

// DeleteExtraExpense removes the expense with the given id, if present.
func (s *Store) DeleteExtraExpense(ctx context.Context, id string) {
	s.mu.Lock()
	s.extraExpenses = deleteByID(s.extraExpenses, id, func(e models.ExtraExpense) string { return e.ID })
	s.persist(ctx, keyExtraExpenses, s.extraExpenses)
	s.mu.Unlock()

	s.notify(ctx)
}

// ListExtraExpenses returns a copy of the expenses in insertion order.
func (s *Store) ListExtraExpenses() []models.ExtraExpense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.extraExpenses)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// persist writes the collection snapshot under its key. A storage failure is
// logged and swallowed; the in-memory mutation stands.
func (s *Store) persist(ctx context.Context, key string, items any) {
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("failed encoding collection snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Save(ctx, key, data); err != nil {
		s.logger.Warn("failed persisting collection snapshot", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) notify(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx)
	}
}

func loadCollection[T any](ctx context.Context, kvStore kv.Store, key string, logger *zap.Logger) []T {
	data, err := kvStore.Load(ctx, key)
	if err != nil {
		logger.Warn("failed loading collection snapshot, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("corrupt collection snapshot, starting empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

func deleteByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func copySlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
