package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// A holding is one tracked security position owned by an account; the table
// enforces one live row per (account, symbol).
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// List retrieves all holdings for an account, ordered by symbol.
// Returns an empty slice if the account tracks nothing.
func (r *HoldingRepository) List(accountID string) ([]model.Holding, error) {
	query := `
		SELECT id, account_id, symbol, display_name, quantity, created_at
		FROM holding
		WHERE account_id = ?
		ORDER BY symbol ASC
	`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		var h model.Holding
		var createdAtStr string

		err := rows.Scan(
			&h.ID,
			&h.AccountID,
			&h.Symbol,
			&h.DisplayName,
			&h.Quantity,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}

		h.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// Get retrieves a single holding by ID scoped to an account.
func (r *HoldingRepository) Get(accountID, holdingID string) (model.Holding, error) {
	query := `
		SELECT id, account_id, symbol, display_name, quantity, created_at
		FROM holding
		WHERE account_id = ? AND id = ?
	`

	var h model.Holding
	var createdAtStr string

	err := r.db.QueryRow(query, accountID, holdingID).Scan(
		&h.ID,
		&h.AccountID,
		&h.Symbol,
		&h.DisplayName,
		&h.Quantity,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query holding table: %w", err)
	}

	h.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return h, nil
}

// Create inserts a new holding and returns it with its generated ID.
// A second holding for the same (account, symbol) pair is rejected with
// ErrDuplicateHolding.
func (r *HoldingRepository) Create(accountID, symbol, displayName string, quantity float64) (model.Holding, error) {
	holding := model.Holding{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Symbol:      symbol,
		DisplayName: displayName,
		Quantity:    quantity,
	}

	query := `
		INSERT INTO holding (id, account_id, symbol, display_name, quantity)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, holding.ID, holding.AccountID, holding.Symbol, holding.DisplayName, holding.Quantity)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.Holding{}, fmt.Errorf("%w: %s", apperrors.ErrDuplicateHolding, symbol)
		}
		return model.Holding{}, fmt.Errorf("failed to insert holding: %w", err)
	}

	return holding, nil
}

// UpdateQuantity sets the recorded quantity of a holding.
func (r *HoldingRepository) UpdateQuantity(accountID, holdingID string, quantity float64) error {
	query := `
		UPDATE holding
		SET quantity = ?
		WHERE account_id = ? AND id = ?
	`

	result, err := r.db.Exec(query, quantity, accountID, holdingID)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// Delete removes a holding from an account.
func (r *HoldingRepository) Delete(accountID, holdingID string) error {
	query := `
		DELETE FROM holding
		WHERE account_id = ? AND id = ?
	`

	result, err := r.db.Exec(query, accountID, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// ListAccounts returns the distinct account IDs that track at least one
// holding. The scheduled refresh job iterates over this set.
func (r *HoldingRepository) ListAccounts() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT account_id FROM holding ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding accounts: %w", err)
	}
	defer rows.Close()

	accounts := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		accounts = append(accounts, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding accounts: %w", err)
	}

	return accounts, nil
}
