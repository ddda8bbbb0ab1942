package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db DBTX
}

// Balance is the sum of confirmed incoming amounts minus the sum of
// confirmed outgoing amounts of account.
func (r *TransactionRepository) Balance(ctx context.Context, account int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE user_to = $1), 0)
			- COALESCE(SUM(amount) FILTER (WHERE user_from = $1), 0)
		FROM transactions
		WHERE status AND (user_to = $1 OR user_from = $1)`, account,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing balance of %d: %w", account, err)
	}
	return balance, nil
}

// Create inserts t and fills its id and creation time.
func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_from, user_to, amount, description, status, timestamp_confirm)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		t.UserFrom, t.UserTo, t.Amount, t.Description, t.Status, t.TimestampConfirm,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// ListForAccount returns the transactions account takes part in, newest
// first.
func (r *TransactionRepository) ListForAccount(ctx context.Context, account int64, limit int) ([]model.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_from, user_to, amount, description, status, timestamp_confirm, created_at
		FROM transactions
		WHERE user_from = $1 OR user_to = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, account, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserFrom, &t.UserTo, &t.Amount, &t.Description, &t.Status, &t.TimestampConfirm, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
