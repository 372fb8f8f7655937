package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hverma/stock-tracker-backend/internal/model"
)

// SnapshotRepository provides data access methods for the valuation_snapshot
// table. Rows are keyed by the natural (account, holding name, day) triple;
// Upsert never creates a second row for the same key.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert inserts a valuation snapshot or, when a row already exists for the
// same (account, holding name, day), overwrites its quantity, price and value.
// Re-running a refresh on the same day therefore converges to one row per
// holding carrying the latest values.
func (r *SnapshotRepository) Upsert(snapshot model.ValuationSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}

	query := `
		INSERT INTO valuation_snapshot (id, account_id, holding_name, quantity, unit_price, total_value, day, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(account_id, holding_name, day) DO UPDATE SET
			quantity = excluded.quantity,
			unit_price = excluded.unit_price,
			total_value = excluded.total_value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(
		query,
		snapshot.ID,
		snapshot.AccountID,
		snapshot.HoldingName,
		snapshot.Quantity,
		snapshot.UnitPrice,
		snapshot.TotalValue,
		snapshot.Day,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert valuation snapshot: %w", err)
	}

	return nil
}

// GetByDay retrieves all valuation snapshots for an account on a given day,
// ordered by holding name. Returns an empty slice if no refresh ran that day.
func (r *SnapshotRepository) GetByDay(accountID, day string) ([]model.ValuationSnapshot, error) {
	query := `
		SELECT id, account_id, holding_name, quantity, unit_price, total_value, day, updated_at
		FROM valuation_snapshot
		WHERE account_id = ? AND day = ?
		ORDER BY holding_name ASC
	`

	rows, err := r.db.Query(query, accountID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.ValuationSnapshot{}

	for rows.Next() {
		var s model.ValuationSnapshot
		var updatedAtStr string

		err := rows.Scan(
			&s.ID,
			&s.AccountID,
			&s.HoldingName,
			&s.Quantity,
			&s.UnitPrice,
			&s.TotalValue,
			&s.Day,
			&updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation_snapshot results: %w", err)
		}

		s.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuation_snapshot table: %w", err)
	}

	return snapshots, nil
}
