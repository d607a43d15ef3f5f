package models

// ItemType distinguishes feed purchases from medicine purchases.
type ItemType string

const (
	ItemTypeFeed     ItemType = "feed"
	ItemTypeMedicine ItemType = "medicine"
)

// ChickArrival records a batch of chicks received on the farm.
// Price is the total cost paid for the batch, when known.
type ChickArrival struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Quantity    int      `json:"quantity"`
	BatchNumber string   `json:"batchNumber"`
	Source      string   `json:"source,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// Mortality records chicks lost on a given day.
type Mortality struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// FeedMedicine records a feed or medicine purchase. Quantity is kept for
// record detail only; aggregation sums Cost alone.
type FeedMedicine struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Type      ItemType `json:"type"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Cost      float64  `json:"cost"`
	Supplier  string   `json:"supplier,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

// Sale records a sale of birds. OutstandingBalance is always derived as
// TotalAmount - AmountReceived; the store recomputes it on every write.
type Sale struct {
	ID                 string  `json:"id"`
	Date               string  `json:"date"`
	CustomerName       string  `json:"customerName"`
	Quantity           int     `json:"quantity"`
	PricePerUnit       float64 `json:"pricePerUnit"`
	TotalAmount        float64 `json:"totalAmount"`
	AmountReceived     float64 `json:"amountReceived"`
	OutstandingBalance float64 `json:"outstandingBalance"`
	CreatedAt          string  `json:"createdAt"`
}

// ExtraExpense records operating costs outside feed, medicine and arrivals.
type ExtraExpense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"createdAt"`
}

// ChickArrivalInput carries the caller-supplied fields of a new arrival.
type ChickArrivalInput struct {
	Date        string   `json:"date"`
	Quantity    int      `json:"quantity"`
	BatchNumber string   `json:"batchNumber"`
	Source      string   `json:"source"`
	Price       *float64 `json:"price"`
}

// MortalityInput carries the caller-supplied fields of a new mortality event.
type MortalityInput struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// FeedMedicineInput carries the caller-supplied fields of a new purchase.
type FeedMedicineInput struct {
	Date     string   `json:"date"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Cost     float64  `json:"cost"`
	Supplier string   `json:"supplier"`
}

// SaleInput carries the caller-supplied fields of a new sale. The
// outstanding balance is derived, never supplied.
type SaleInput struct {
	Date           string  `json:"date"`
	CustomerName   string  `json:"customerName"`
	Quantity       int     `json:"quantity"`
	PricePerUnit   float64 `json:"pricePerUnit"`
	TotalAmount    float64 `json:"totalAmount"`
	AmountReceived float64 `json:"amountReceived"`
}

// ExtraExpenseInput carries the caller-supplied fields of a new expense.
type ExtraExpenseInput struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Patch types below hold partial updates: nil fields are left untouched.
// ID and CreatedAt are not patchable and therefore not present.

// ChickArrivalPatch is a partial update of a ChickArrival.
type ChickArrivalPatch struct {
	Date        *string  `json:"date"`
	Quantity    *int     `json:"quantity"`
	BatchNumber *string  `json:"batchNumber"`
	Source      *string  `json:"source"`
	Price       *float64 `json:"price"`
}

// MortalityPatch is a partial update of a Mortality.
type MortalityPatch struct {
	Date     *string `json:"date"`
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// FeedMedicinePatch is a partial update of a FeedMedicine.
type FeedMedicinePatch struct {
	Date     *string   `json:"date"`
	Type     *ItemType `json:"type"`
	Name     *string   `json:"name"`
	Quantity *int      `json:"quantity"`
	Cost     *float64  `json:"cost"`
	Supplier *string   `json:"supplier"`
}

// SalePatch is a partial update of a Sale. OutstandingBalance is recomputed
// from the merged record regardless of which fields are patched.
type SalePatch struct {
	Date           *string  `json:"date"`
	CustomerName   *string  `json:"customerName"`
	Quantity       *int     `json:"quantity"`
	PricePerUnit   *float64 `json:"pricePerUnit"`
	TotalAmount    *float64 `json:"totalAmount"`
	AmountReceived *float64 `json:"amountReceived"`
}

// ExtraExpensePatch is a partial update of an ExtraExpense.
type ExtraExpensePatch struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
}
