package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/model"
)

// TotalRepository provides data access methods for the daily_total table.
// Rows are keyed by the natural (account, day) pair; Upsert never creates a
// second row for the same key.
type TotalRepository struct {
	db *sql.DB
}

// NewTotalRepository creates a new TotalRepository with the provided database connection.
func NewTotalRepository(db *sql.DB) *TotalRepository {
	return &TotalRepository{db: db}
}

// Upsert inserts a daily total or, when a row already exists for the same
// (account, day), overwrites its final total and difference.
func (r *TotalRepository) Upsert(total model.DailyTotal) error {
	if total.ID == "" {
		total.ID = uuid.New().String()
	}

	query := `
		INSERT INTO daily_total (id, account_id, day, final_total, difference, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(account_id, day) DO UPDATE SET
			final_total = excluded.final_total,
			difference = excluded.difference,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query, total.ID, total.AccountID, total.Day, total.FinalTotal, total.Difference)
	if err != nil {
		return fmt.Errorf("failed to upsert daily total: %w", err)
	}

	return nil
}

// GetByDay retrieves the daily total recorded at exactly the given day.
// Returns ErrTotalNotFound when no row exists for that day, even if rows
// exist on nearby days.
func (r *TotalRepository) GetByDay(accountID, day string) (model.DailyTotal, error) {
	query := `
		SELECT id, account_id, day, final_total, difference, updated_at
		FROM daily_total
		WHERE account_id = ? AND day = ?
	`

	return r.scanOne(r.db.QueryRow(query, accountID, day))
}

// GetLatestBefore retrieves the most recent daily total strictly before the
// given day. The strict inequality keeps a same-day re-run from reading its
// own earlier write as the baseline.
func (r *TotalRepository) GetLatestBefore(accountID, day string) (model.DailyTotal, error) {
	query := `
		SELECT id, account_id, day, final_total, difference, updated_at
		FROM daily_total
		WHERE account_id = ? AND day < ?
		ORDER BY day DESC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, accountID, day))
}

// GetLatest retrieves the most recent daily total for an account.
func (r *TotalRepository) GetLatest(accountID string) (model.DailyTotal, error) {
	query := `
		SELECT id, account_id, day, final_total, difference, updated_at
		FROM daily_total
		WHERE account_id = ?
		ORDER BY day DESC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, accountID))
}

// GetRange retrieves daily totals between startDay and endDay inclusive,
// ordered by day ascending.
func (r *TotalRepository) GetRange(accountID, startDay, endDay string) ([]model.DailyTotal, error) {
	query := `
		SELECT id, account_id, day, final_total, difference, updated_at
		FROM daily_total
		WHERE account_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC
	`

	rows, err := r.db.Query(query, accountID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_total table: %w", err)
	}
	defer rows.Close()

	totals := []model.DailyTotal{}

	for rows.Next() {
		var t model.DailyTotal
		var updatedAtStr string

		err := rows.Scan(&t.ID, &t.AccountID, &t.Day, &t.FinalTotal, &t.Difference, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily_total results: %w", err)
		}

		t.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}

		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_total table: %w", err)
	}

	return totals, nil
}

// PurgeBefore deletes daily totals older than the given day for an account.
// Returns the number of rows removed.
func (r *TotalRepository) PurgeBefore(accountID, day string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM daily_total WHERE account_id = ? AND day < ?`, accountID, day)
	if err != nil {
		return 0, fmt.Errorf("failed to purge daily totals: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check purge result: %w", err)
	}

	return affected, nil
}

func (r *TotalRepository) scanOne(row *sql.Row) (model.DailyTotal, error) {
	var t model.DailyTotal
	var updatedAtStr string

	err := row.Scan(&t.ID, &t.AccountID, &t.Day, &t.FinalTotal, &t.Difference, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailyTotal{}, apperrors.ErrTotalNotFound
	}
	if err != nil {
		return model.DailyTotal{}, fmt.Errorf("failed to scan daily_total row: %w", err)
	}

	t.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.DailyTotal{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return t, nil
}
