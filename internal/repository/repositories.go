// Package repository holds the SQL behind the services. Every repository
// runs on a DBTX so the same code serves both the pool and a transaction.
package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx used by the repositories. *pgxpool.Pool,
// pgx.Tx and pgxmock pools all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories groups every repository over a single DBTX.
type Repositories struct {
	db DBTX

	Accounts     *AccountRepository
	Profiles     *ProfileRepository
	Groups       *GroupRepository
	Transactions *TransactionRepository
	MailClaims   *MailClaimRepository
	Tasks        *TaskRepository
	TaskBids     *TaskBidRepository
}

// New builds the repositories on db.
func New(db DBTX) *Repositories {
	return &Repositories{
		db:           db,
		Accounts:     &AccountRepository{db: db},
		Profiles:     &ProfileRepository{db: db},
		Groups:       &GroupRepository{db: db},
		Transactions: &TransactionRepository{db: db},
		MailClaims:   &MailClaimRepository{db: db},
		Tasks:        &TaskRepository{db: db},
		TaskBids:     &TaskBidRepository{db: db},
	}
}

// NewRepositories builds the repositories on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool)
}

// WithinTx runs fn with repositories bound to one transaction. The
// transaction commits when fn returns nil and rolls back on error or panic.
// Panics are rethrown.
func (r *Repositories) WithinTx(ctx context.Context, fn func(tx *Repositories) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if err = tx.Commit(ctx); err != nil {
			err = fmt.Errorf("committing transaction: %w", err)
		}
	}()

	return fn(New(tx))
}

// notFound tags pgx.ErrNoRows with the table so sqlerr.HandleError can name
// the missing entity.
func notFound(table string, err error) error {
	return fmt.Errorf("table:%s: %w", table, err)
}
