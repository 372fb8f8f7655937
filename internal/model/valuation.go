package model

import "time"

// ValuationSnapshot represents the best-known valuation of one holding on one
// calendar day, denominated in the home currency. At most one row exists per
// (account, holding name, day); a later refresh on the same day overwrites
// quantity, price and value.
type ValuationSnapshot struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	HoldingName string    `json:"holdingName"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   *float64  `json:"unitPrice"` // nil when the quote lookup failed
	TotalValue  float64   `json:"totalValue"`
	Day         string    `json:"day"` // YYYY-MM-DD
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Priced reports whether a price was available for this snapshot.
func (s ValuationSnapshot) Priced() bool {
	return s.UnitPrice != nil
}

// DailyTotal represents an account's aggregate holding value on a given day
// and its change relative to the most recent prior day with a recorded total.
// At most one row exists per (account, day).
type DailyTotal struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"accountId"`
	Day        string    `json:"day"` // YYYY-MM-DD
	FinalTotal float64   `json:"finalTotal"`
	Difference float64   `json:"difference"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReconcileResult is what a reconcile run returns to its caller: the upserted
// daily total plus the per-holding valuations that produced it, including
// holdings whose price was unavailable.
type ReconcileResult struct {
	Total     DailyTotal          `json:"total"`
	Snapshots []ValuationSnapshot `json:"snapshots"`
}

// Comparison holds the daily totals at two exact days and their difference.
// Difference is total at day2 minus total at day1; day ordering is the
// caller's choice and is not normalized.
type Comparison struct {
	AccountID  string  `json:"accountId"`
	Day1       string  `json:"day1"`
	Day2       string  `json:"day2"`
	Total1     float64 `json:"total1"`
	Total2     float64 `json:"total2"`
	Difference float64 `json:"difference"`
}
