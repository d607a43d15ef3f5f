package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnanfarms/chickledger/internal/config"
	"github.com/adnanfarms/chickledger/internal/domain/models"
	"github.com/adnanfarms/chickledger/internal/service/reporting"
	"github.com/adnanfarms/chickledger/internal/service/stats"
	"github.com/adnanfarms/chickledger/internal/storage/kv"
	"github.com/adnanfarms/chickledger/internal/store"
)

type fakeNotifier struct {
	summaries []models.DailySummary
	texts     []string
}

func (f *fakeNotifier) SendDailySummary(_ context.Context, summary models.DailySummary, text string) error {
	f.summaries = append(f.summaries, summary)
	f.texts = append(f.texts, text)
	return nil
}

type fakeSheets struct {
	entries []models.DailyChickPrice
}

func (f *fakeSheets) AppendDailySnapshot(_ context.Context, entry models.DailyChickPrice) error {
	f.entries = append(f.entries, entry)
	return nil
}

func testCfg() config.ReportingConfig {
	return config.ReportingConfig{CronSchedule: "5 0 * * *", Timezone: "UTC"}
}

func TestDailyRolloverPushesSummaryAndSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	st := store.New(ctx, mem, nil)
	engine := stats.NewEngine(ctx, st, mem, nil)
	reportingSvc := reporting.NewService(engine, nil)

	st.AddChickArrival(ctx, models.ChickArrivalInput{Quantity: 100, BatchNumber: "B1"})
	st.AddMortality(ctx, models.MortalityInput{Quantity: 10})

	notifier := &fakeNotifier{}
	sheets := &fakeSheets{}
	s := NewScheduler(testCfg(), engine, reportingSvc, notifier, sheets, nil)

	s.runDailyRollover()

	require.Len(t, notifier.summaries, 1)
	assert.Equal(t, 100, notifier.summaries[0].TotalChicks)
	assert.Equal(t, 90, notifier.summaries[0].CurrentStock)
	assert.Contains(t, notifier.texts[0], "stock 90")

	require.Len(t, sheets.entries, 1)
	assert.Equal(t, 90, sheets.entries[0].CurrentStock)
	assert.Equal(t, 10, sheets.entries[0].MortalityCost)
}

func TestDailyRolloverWithoutIntegrations(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	st := store.New(ctx, mem, nil)
	engine := stats.NewEngine(ctx, st, mem, nil)
	reportingSvc := reporting.NewService(engine, nil)

	s := NewScheduler(testCfg(), engine, reportingSvc, nil, nil, nil)

	// No webhook, no sheets: the rollover still recomputes without panicking.
	s.runDailyRollover()

	assert.NotEmpty(t, engine.Snapshot().DailyChickPrices)
}
