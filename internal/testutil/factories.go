package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/hverma/stock-tracker-backend/internal/config"
	"github.com/hverma/stock-tracker-backend/internal/model"
	"github.com/hverma/stock-tracker-backend/internal/repository"
	"github.com/hverma/stock-tracker-backend/internal/service"
)

// NewAccountID generates a fresh account identifier for a test.
func NewAccountID() string {
	return uuid.New().String()
}

// CreateHolding inserts a holding row directly and returns it.
func CreateHolding(t *testing.T, db *sql.DB, accountID, symbol, displayName string, quantity float64) model.Holding {
	t.Helper()

	holding := model.Holding{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Symbol:      symbol,
		DisplayName: displayName,
		Quantity:    quantity,
	}

	_, err := db.Exec(
		`INSERT INTO holding (id, account_id, symbol, display_name, quantity) VALUES (?, ?, ?, ?, ?)`,
		holding.ID, holding.AccountID, holding.Symbol, holding.DisplayName, holding.Quantity,
	)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return holding
}

// CreateDailyTotal inserts a daily total row directly and returns it.
func CreateDailyTotal(t *testing.T, db *sql.DB, accountID, day string, finalTotal, difference float64) model.DailyTotal {
	t.Helper()

	total := model.DailyTotal{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Day:        day,
		FinalTotal: finalTotal,
		Difference: difference,
	}

	_, err := db.Exec(
		`INSERT INTO daily_total (id, account_id, day, final_total, difference) VALUES (?, ?, ?, ?, ?)`,
		total.ID, total.AccountID, total.Day, total.FinalTotal, total.Difference,
	)
	if err != nil {
		t.Fatalf("Failed to create test daily total: %v", err)
	}

	return total
}

// CountSnapshots returns the number of valuation snapshot rows for an account and day.
func CountSnapshots(t *testing.T, db *sql.DB, accountID, day string) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM valuation_snapshot WHERE account_id = ? AND day = ?`,
		accountID, day,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count snapshots: %v", err)
	}
	return count
}

// CountTotals returns the number of daily total rows for an account and day.
func CountTotals(t *testing.T, db *sql.DB, accountID, day string) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM daily_total WHERE account_id = ? AND day = ?`,
		accountID, day,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count daily totals: %v", err)
	}
	return count
}

// DefaultValuationConfig returns the configuration tests run valuations with:
// USD quotes converted into INR, UTC day keys, 30-day retention.
func DefaultValuationConfig() config.ValuationConfig {
	return config.ValuationConfig{
		HomeCurrency:  "INR",
		BaseCurrency:  "USD",
		Timezone:      "UTC",
		RetentionDays: 30,
		SkipUnpriced:  true,
	}
}

// NewTestValuationService wires a ValuationService against the test database
// and the provided mock gateways using DefaultValuationConfig.
func NewTestValuationService(t *testing.T, db *sql.DB, quotes service.QuoteGateway, rates service.RateGateway) *service.ValuationService {
	t.Helper()
	return NewTestValuationServiceWithConfig(t, db, quotes, rates, DefaultValuationConfig())
}

// NewTestValuationServiceWithConfig wires a ValuationService with an explicit
// valuation configuration.
func NewTestValuationServiceWithConfig(
	t *testing.T,
	db *sql.DB,
	quotes service.QuoteGateway,
	rates service.RateGateway,
	cfg config.ValuationConfig,
) *service.ValuationService {
	t.Helper()

	svc, err := service.NewValuationService(
		repository.NewHoldingRepository(db),
		repository.NewSnapshotRepository(db),
		repository.NewTotalRepository(db),
		quotes,
		rates,
		cfg,
	)
	if err != nil {
		t.Fatalf("Failed to create valuation service: %v", err)
	}

	return svc
}

// NewTestHoldingService wires a HoldingService against the test database.
func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()
	return service.NewHoldingService(repository.NewHoldingRepository(db))
}
