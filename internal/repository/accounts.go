package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db DBTX
}

const accountColumns = `id, external_id, username, first_name, last_name, email, created_at, updated_at`

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	if err := row.Scan(
		&a.ID, &a.ExternalID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a and fills its id and timestamps.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (external_id, username, first_name, last_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		a.ExternalID, a.Username, a.FirstName, a.LastName, a.Email,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// Update writes the editable fields of a.
func (r *AccountRepository) Update(ctx context.Context, a *model.Account) error {
	err := r.db.QueryRow(ctx, `
		UPDATE accounts
		SET username = $2, first_name = $3, last_name = $4, email = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Username, a.FirstName, a.LastName, a.Email,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("accounts", err)
		}
		return fmt.Errorf("updating account %d: %w", a.ID, err)
	}
	return nil
}

// GetByID loads an account.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("accounts", err)
		}
		return nil, fmt.Errorf("loading account %d: %w", id, err)
	}
	return a, nil
}

// GetByExternalID loads the account bound to an auth subject.
func (r *AccountRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE external_id = $1`, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("accounts", err)
		}
		return nil, fmt.Errorf("loading account by subject: %w", err)
	}
	return a, nil
}

// LockForUpdate takes a row lock on the account until the surrounding
// transaction ends. It must run inside WithinTx.
func (r *AccountRepository) LockForUpdate(ctx context.Context, id int64) error {
	var locked int64
	err := r.db.QueryRow(ctx, `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("accounts", err)
		}
		return fmt.Errorf("locking account %d: %w", id, err)
	}
	return nil
}

// ListCounterparties returns every account with a profile except acting,
// ordered by username. acting is excluded in SQL, so it can never be
// offered.
func (r *AccountRepository) ListCounterparties(ctx context.Context, acting int64) ([]model.Counterparty, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.username, a.first_name, a.last_name
		FROM accounts a
		JOIN profiles p ON p.account_id = a.id
		WHERE a.id <> $1
		ORDER BY a.username`, acting)
	if err != nil {
		return nil, fmt.Errorf("listing counterparties: %w", err)
	}
	defer rows.Close()

	counterparties := []model.Counterparty{}
	for rows.Next() {
		var c model.Counterparty
		if err := rows.Scan(&c.ID, &c.Username, &c.FirstName, &c.LastName); err != nil {
			return nil, fmt.Errorf("scanning counterparty: %w", err)
		}
		counterparties = append(counterparties, c)
	}
	return counterparties, rows.Err()
}

// FindCounterparty returns id from acting's counterparty set. ok is false
// when id is acting itself, has no profile or does not exist.
func (r *AccountRepository) FindCounterparty(ctx context.Context, acting, id int64) (c model.Counterparty, ok bool, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT a.id, a.username, a.first_name, a.last_name
		FROM accounts a
		JOIN profiles p ON p.account_id = a.id
		WHERE a.id = $2 AND a.id <> $1`, acting, id,
	).Scan(&c.ID, &c.Username, &c.FirstName, &c.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Counterparty{}, false, nil
		}
		return model.Counterparty{}, false, fmt.Errorf("loading counterparty %d: %w", id, err)
	}
	return c, true, nil
}
