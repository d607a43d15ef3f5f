package stats

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/domain/models"
	"github.com/adnanfarms/chickledger/internal/storage/kv"
)

// keyDailyChickPrices is the snapshot key for the accumulated daily price
// history, stored alongside the five collection keys.
const keyDailyChickPrices = "dailyChickPrices"

// RecordSource is the read surface the engine aggregates over, plus the
// change hook that keeps the published stats in step with mutations.
type RecordSource interface {
	OnChange(fn func(context.Context))
	ListChickArrivals() []models.ChickArrival
	ListMortalities() []models.Mortality
	ListFeedMedicines() []models.FeedMedicine
	ListSales() []models.Sale
	ListExtraExpenses() []models.ExtraExpense
}

// Engine recomputes DashboardStats after every record mutation and publishes
// the result atomically. The only state it carries between recomputations is
// the daily price history.
type Engine struct {
	mu     sync.RWMutex
	src    RecordSource
	kv     kv.Store
	logger *zap.Logger
	now    func() time.Time

	prices  []models.DailyChickPrice
	current *models.DashboardStats
}

// NewEngine loads the persisted daily price history, hooks itself into the
// record source's change notifications and performs the initial recompute,
// so Snapshot is valid from the moment NewEngine returns.
func NewEngine(ctx context.Context, src RecordSource, kvStore kv.Store, logger *zap.Logger) *Engine {
	return newEngine(ctx, src, kvStore, logger, time.Now)
}

func newEngine(ctx context.Context, src RecordSource, kvStore kv.Store, logger *zap.Logger, now func() time.Time) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		src:    src,
		kv:     kvStore,
		logger: logger,
		now:    now,
	}
	e.prices = e.loadDailyPrices(ctx)

	src.OnChange(e.Recompute)
	e.Recompute(ctx)

	return e
}

// Recompute rereads all five collections, derives a fresh DashboardStats and
// publishes it. Runs synchronously; when it returns, Snapshot observes the
// new stats.
func (e *Engine) Recompute(ctx context.Context) {
	snap := Collections{
		Arrivals:      e.src.ListChickArrivals(),
		Mortalities:   e.src.ListMortalities(),
		FeedMedicines: e.src.ListFeedMedicines(),
		Sales:         e.src.ListSales(),
		ExtraExpenses: e.src.ListExtraExpenses(),
	}

	e.mu.Lock()
	stats := Compute(snap, e.now(), e.prices)
	e.prices = stats.DailyChickPrices
	e.current = &stats
	e.mu.Unlock()

	e.persistDailyPrices(ctx, stats.DailyChickPrices)
}

// Snapshot returns the most recently published stats. Calling it on an
// engine that never recomputed is a programming error and panics; NewEngine
// always recomputes before returning.
func (e *Engine) Snapshot() models.DashboardStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.current == nil {
		panic("stats: Snapshot called before the first recompute; build the engine with NewEngine")
	}

	out := *e.current
	out.DailyChickPrices = make([]models.DailyChickPrice, len(e.current.DailyChickPrices))
	copy(out.DailyChickPrices, e.current.DailyChickPrices)
	return out
}

func (e *Engine) loadDailyPrices(ctx context.Context) []models.DailyChickPrice {
	data, err := e.kv.Load(ctx, keyDailyChickPrices)
	if err != nil {
		e.logger.Warn("failed loading daily price history, starting empty", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var prices []models.DailyChickPrice
	if err := json.Unmarshal(data, &prices); err != nil {
		e.logger.Warn("corrupt daily price history, starting empty", zap.Error(err))
		return nil
	}
	return prices
}

func (e *Engine) persistDailyPrices(ctx context.Context, prices []models.DailyChickPrice) {
	data, err := json.Marshal(prices)
	if err != nil {
		e.logger.Warn("failed encoding daily price history", zap.Error(err))
		return
	}
	if err := e.kv.Save(ctx, keyDailyChickPrices, data); err != nil {
		e.logger.Warn("failed persisting daily price history", zap.Error(err))
	}
}
