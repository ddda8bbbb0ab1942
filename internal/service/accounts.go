package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/lib/job"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type AccountStore interface {
	Create(ctx context.Context, a *model.Account) error
	Update(ctx context.Context, a *model.Account) error
	GetByExternalID(ctx context.Context, externalID string) (*model.Account, error)
}

type BalanceReader interface {
	Balance(ctx context.Context, account int64) (decimal.Decimal, error)
}

// AccountInput holds the fields shared by account registration and
// editing.
type AccountInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

func (in AccountInput) apply(a *model.Account) {
	a.Username = in.Username
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.Email = in.Email
}

type AccountService struct {
	accounts AccountStore
	balances BalanceReader
	jobs     TaskEnqueuer
	logger   *zerolog.Logger
}

func NewAccountService(accounts AccountStore, balances BalanceReader, jobs TaskEnqueuer, logger *zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, balances: balances, jobs: jobs, logger: logger}
}

// Register creates the account of an authenticated subject and queues the
// welcome e-mail. Each subject registers once.
func (s *AccountService) Register(ctx context.Context, externalID string, in AccountInput) (*model.Account, error) {
	existing, err := s.accounts.GetByExternalID(ctx, externalID)
	switch {
	case err == nil && existing != nil:
		code := errs.CodeAlreadyExists
		return nil, errs.NewBadRequestError("Аккаунт уже зарегистрирован.", true, &code, nil, nil)
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return nil, err
	}

	account := &model.Account{ExternalID: externalID}
	in.apply(account)

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, account)

	return account, nil
}

func (s *AccountService) enqueueWelcome(ctx context.Context, account *model.Account) {
	if s.jobs == nil {
		return
	}

	task, err := job.NewWelcomeEmailTask(job.WelcomeEmailPayload{
		To:        account.Email,
		FirstName: account.FirstName,
		Username:  account.Username,
	})
	if err == nil {
		_, err = s.jobs.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("account_id", account.ID).Msg("failed to enqueue welcome email")
	}
}

// Update overwrites the editable fields of acting.
func (s *AccountService) Update(ctx context.Context, acting *model.Account, in AccountInput) (*model.Account, error) {
	updated := *acting
	in.apply(&updated)

	if err := s.accounts.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Me returns acting together with its current balance.
func (s *AccountService) Me(ctx context.Context, acting *model.Account) (*model.AccountWithBalance, error) {
	balance, err := s.balances.Balance(ctx, acting.ID)
	if err != nil {
		return nil, fmt.Errorf("loading balance: %w", err)
	}
	return &model.AccountWithBalance{Account: acting, Balance: balance}, nil
}
