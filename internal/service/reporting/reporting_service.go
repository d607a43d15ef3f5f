package reporting

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/domain/models"
)

const dateLayout = "2006-01-02"

// StatsSource supplies the current dashboard snapshot.
type StatsSource interface {
	Snapshot() models.DashboardStats
}

// Service turns dashboard snapshots into the daily summary consumed by the
// report endpoint, the webhook push and the sheets export.
type Service struct {
	source StatsSource
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source StatsSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// DailySummary builds the summary for the given day from the current stats.
func (s *Service) DailySummary(now time.Time) models.DailySummary {
	snap := s.source.Snapshot()

	return models.DailySummary{
		Date:             now.Format(dateLayout),
		TotalChicks:      snap.TotalChicks,
		CurrentStock:     snap.CurrentStock,
		TotalMortality:   snap.TotalMortality,
		MortalityRate:    snap.MortalityRate,
		TotalRevenue:     snap.TotalRevenue,
		TotalOutstanding: snap.TotalOutstanding,
		TotalExpenses:    snap.TotalExpenses,
		PerChickPrice:    snap.PerChickExpenses,
	}
}

// FormatDailySummary renders the summary as a short text block for
// notification channels.
func (s *Service) FormatDailySummary(summary models.DailySummary) string {
	return fmt.Sprintf(
		"Farm summary %s: stock %d (of %d arrived, %d lost, mortality %.2f%%). Revenue %.2f received, %.2f outstanding. Expenses %.2f, per-chick cost %.2f.",
		summary.Date,
		summary.CurrentStock,
		summary.TotalChicks,
		summary.TotalMortality,
		summary.MortalityRate,
		summary.TotalRevenue,
		summary.TotalOutstanding,
		summary.TotalExpenses,
		summary.PerChickPrice,
	)
}
