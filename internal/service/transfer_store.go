package service

import (
	"context"
	"errors"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// repositoryTransferStore adapts the repositories to TransferStore.
type repositoryTransferStore struct {
	repos *repository.Repositories
}

func NewRepositoryTransferStore(repos *repository.Repositories) TransferStore {
	return &repositoryTransferStore{repos: repos}
}

func (s *repositoryTransferStore) Counterparties(ctx context.Context, acting int64) ([]model.Counterparty, error) {
	return s.repos.Accounts.ListCounterparties(ctx, acting)
}

func (s *repositoryTransferStore) Transactions(ctx context.Context, acting int64, limit int) ([]model.Transaction, error) {
	return s.repos.Transactions.ListForAccount(ctx, acting, limit)
}

func (s *repositoryTransferStore) Recipient(ctx context.Context, id int64) (*model.Account, *model.Profile, error) {
	account, err := s.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.repos.Profiles.GetByAccount(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account, nil, nil
		}
		return nil, nil, err
	}
	return account, profile, nil
}

func (s *repositoryTransferStore) WithinTx(ctx context.Context, fn func(tx TransferTx) error) error {
	return s.repos.WithinTx(ctx, func(tx *repository.Repositories) error {
		return fn(repositoryTransferTx{repos: tx})
	})
}

type repositoryTransferTx struct {
	repos *repository.Repositories
}

func (t repositoryTransferTx) LockAccount(ctx context.Context, id int64) error {
	return t.repos.Accounts.LockForUpdate(ctx, id)
}

func (t repositoryTransferTx) FindCounterparty(ctx context.Context, acting, id int64) (model.Counterparty, bool, error) {
	return t.repos.Accounts.FindCounterparty(ctx, acting, id)
}

func (t repositoryTransferTx) Balance(ctx context.Context, account int64) (decimal.Decimal, error) {
	return t.repos.Transactions.Balance(ctx, account)
}

func (t repositoryTransferTx) CreateTransaction(ctx context.Context, tr *model.Transaction) error {
	return t.repos.Transactions.Create(ctx, tr)
}
