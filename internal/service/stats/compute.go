// Package stats derives the farm-wide dashboard summary from the record
// collections and maintains the rolling per-day cost history.
package stats

import (
	"time"

	"github.com/adnanfarms/chickledger/internal/domain/models"
)

// DailyPriceWindow bounds the daily cost history to the most recent distinct
// calendar dates; older entries are evicted front-first.
const DailyPriceWindow = 30

const dateLayout = "2006-01-02"

// Collections is a point-in-time copy of the five record collections.
type Collections struct {
	Arrivals      []models.ChickArrival
	Mortalities   []models.Mortality
	FeedMedicines []models.FeedMedicine
	Sales         []models.Sale
	ExtraExpenses []models.ExtraExpense
}

// Compute derives DashboardStats from full scans of the collections and
// merges today's cost snapshot into the prior daily price history. It is a
// pure function: identical collections, clock reading and prior history
// always yield identical output. No numeric sanitization happens here; the
// caller's values flow through as supplied, and only the two divisions below
// are guarded (zero total chicks, non-positive stock).
func Compute(c Collections, now time.Time, prior []models.DailyChickPrice) models.DashboardStats {
	var s models.DashboardStats

	for _, a := range c.Arrivals {
		s.TotalChicks += a.Quantity
		if a.Price != nil {
			s.TotalArrivalCost += *a.Price
		}
	}
	for _, m := range c.Mortalities {
		s.TotalMortality += m.Quantity
	}
	for _, f := range c.FeedMedicines {
		switch f.Type {
		case models.ItemTypeFeed:
			s.TotalFeedCost += f.Cost
		case models.ItemTypeMedicine:
			s.TotalMedicineCost += f.Cost
		}
	}
	for _, sale := range c.Sales {
		s.TotalSales += sale.Quantity
		s.TotalRevenue += sale.AmountReceived
		s.TotalOutstanding += sale.OutstandingBalance
	}
	for _, e := range c.ExtraExpenses {
		s.TotalExtraExpenses += e.Amount
	}

	// Negative stock is preserved; it signals inconsistent records, not a
	// condition the engine corrects.
	s.CurrentStock = s.TotalChicks - s.TotalMortality - s.TotalSales
	s.TotalExpenses = s.TotalArrivalCost + s.TotalFeedCost + s.TotalMedicineCost + s.TotalExtraExpenses

	if s.TotalChicks > 0 {
		s.MortalityRate = float64(s.TotalMortality) / float64(s.TotalChicks) * 100
	}
	if s.CurrentStock > 0 {
		s.PerChickExpenses = s.TotalExpenses / float64(s.CurrentStock)
	}

	entry := models.DailyChickPrice{
		Date:            now.Format(dateLayout),
		TotalCost:       s.TotalExpenses,
		FeedCost:        s.TotalFeedCost,
		MedicineCost:    s.TotalMedicineCost,
		ExtraExpenses:   s.TotalExtraExpenses,
		MortalityCost:   s.TotalMortality,
		CurrentStock:    s.CurrentStock,
		PerChickPrice:   s.PerChickExpenses,
		CalculationDate: now.UTC().Format(time.RFC3339),
	}
	s.DailyChickPrices = mergeDailyPrice(prior, entry)

	return s
}

// mergeDailyPrice replaces the entry for the same date in place, or appends
// and evicts the oldest entry once the window is full. The input slice is
// never mutated.
func mergeDailyPrice(prior []models.DailyChickPrice, entry models.DailyChickPrice) []models.DailyChickPrice {
	out := make([]models.DailyChickPrice, len(prior), len(prior)+1)
	copy(out, prior)

	for i := range out {
		if out[i].Date == entry.Date {
			out[i] = entry
			return out
		}
	}

	out = append(out, entry)
	if len(out) > DailyPriceWindow {
		out = out[len(out)-DailyPriceWindow:]
	}
	return out
}
