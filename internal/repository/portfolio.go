package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/crypto-companion/internal/models"
)

const holdingColumns = `user_id, coin_id, name, symbol, price, quantity, value, "isSelected", created_at`

// UpsertHolding inserts a holding or replaces the one with the same coin
func (r *Repository) UpsertHolding(ctx context.Context, h *models.Holding) error {
	query := `
		INSERT INTO user_portfolio (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, coin_id) DO UPDATE
		SET name = EXCLUDED.name, symbol = EXCLUDED.symbol, price = EXCLUDED.price,
		    quantity = EXCLUDED.quantity, value = EXCLUDED.value, "isSelected" = EXCLUDED."isSelected"
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, h.UserID, h.CoinID, h.Name, h.Symbol, h.Price, h.Quantity, h.Value, h.IsSelected).
		Scan(&h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}
	return nil
}

// ListHoldings returns the holdings of a user in insertion order
func (r *Repository) ListHoldings(ctx context.Context, userID string, selectedOnly bool) ([]models.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM user_portfolio WHERE user_id = $1`
	if selectedOnly {
		query += ` AND "isSelected" = true`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return scanHoldings(rows)
}

// ListAllHoldings returns every stored holding
func (r *Repository) ListAllHoldings(ctx context.Context) ([]models.Holding, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+holdingColumns+` FROM user_portfolio ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return scanHoldings(rows)
}

// SetHoldingSelected flips whether a holding counts towards the total
func (r *Repository) SetHoldingSelected(ctx context.Context, userID, coinID string, selected bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_portfolio SET "isSelected" = $1 WHERE user_id = $2 AND coin_id = $3`,
		selected, userID, coinID)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return expectRows(res, "holding")
}

// UpdateHoldingPrice stores a fresh price for every holding of a coin
func (r *Repository) UpdateHoldingPrice(ctx context.Context, coinID string, price float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_portfolio SET price = $1, value = $1 * quantity WHERE coin_id = $2`,
		price, coinID)
	if err != nil {
		return fmt.Errorf("failed to update price of %s: %w", coinID, err)
	}
	return nil
}

// DeleteHoldings empties the portfolio of a user
func (r *Repository) DeleteHoldings(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_portfolio WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete holdings: %w", err)
	}
	return nil
}

func scanHoldings(rows *sql.Rows) ([]models.Holding, error) {
	defer rows.Close()

	holdings := make([]models.Holding, 0)
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.UserID, &h.CoinID, &h.Name, &h.Symbol, &h.Price, &h.Quantity, &h.Value, &h.IsSelected, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}
	return holdings, nil
}
