package models

// DailyChickPrice is one entry of the rolling per-day cost history. Exactly
// one entry exists per calendar date; recomputations on the same date replace
// that date's entry in place.
type DailyChickPrice struct {
	Date            string  `json:"date"`
	TotalCost       float64 `json:"totalCost"`
	FeedCost        float64 `json:"feedCost"`
	MedicineCost    float64 `json:"medicineCost"`
	ExtraExpenses   float64 `json:"extraExpenses"`
	MortalityCost   int     `json:"mortalityCost"` // head count, not a monetary figure
	CurrentStock    int     `json:"currentStock"`
	PerChickPrice   float64 `json:"perChickPrice"`
	CalculationDate string  `json:"calculationDate"`
}

// DashboardStats is the derived farm-wide summary. It is recomputed in full
// from the record collections after every mutation and can always be rebuilt
// from them; only DailyChickPrices carries accumulated history.
type DashboardStats struct {
	TotalChicks        int               `json:"totalChicks"`
	TotalMortality     int               `json:"totalMortality"`
	CurrentStock       int               `json:"currentStock"`
	TotalSales         int               `json:"totalSales"`
	TotalRevenue       float64           `json:"totalRevenue"`
	TotalOutstanding   float64           `json:"totalOutstanding"`
	TotalFeedCost      float64           `json:"totalFeedCost"`
	TotalMedicineCost  float64           `json:"totalMedicineCost"`
	TotalArrivalCost   float64           `json:"totalArrivalCost"`
	TotalExtraExpenses float64           `json:"totalExtraExpenses"`
	TotalExpenses      float64           `json:"totalExpenses"`
	MortalityRate      float64           `json:"mortalityRate"`
	PerChickExpenses   float64           `json:"perChickExpenses"`
	DailyChickPrices   []DailyChickPrice `json:"dailyChickPrices"`
}

// DailySummary is the aggregated daily snapshot pushed to the report webhook
// and returned by the daily report endpoint.
type DailySummary struct {
	Date             string  `json:"date"`
	TotalChicks      int     `json:"totalChicks"`
	CurrentStock     int     `json:"currentStock"`
	TotalMortality   int     `json:"totalMortality"`
	MortalityRate    float64 `json:"mortalityRate"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalOutstanding float64 `json:"totalOutstanding"`
	TotalExpenses    float64 `json:"totalExpenses"`
	PerChickPrice    float64 `json:"perChickPrice"`
}
