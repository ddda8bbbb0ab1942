package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/lib/job"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransferStore is the persistence used by TransferService.
type TransferStore interface {
	Counterparties(ctx context.Context, acting int64) ([]model.Counterparty, error)
	Transactions(ctx context.Context, acting int64, limit int) ([]model.Transaction, error)
	Recipient(ctx context.Context, id int64) (*model.Account, *model.Profile, error)
	WithinTx(ctx context.Context, fn func(tx TransferTx) error) error
}

// TransferTx is the transactional part of TransferStore.
type TransferTx interface {
	LockAccount(ctx context.Context, id int64) error
	FindCounterparty(ctx context.Context, acting, id int64) (model.Counterparty, bool, error)
	Balance(ctx context.Context, account int64) (decimal.Decimal, error)
	CreateTransaction(ctx context.Context, t *model.Transaction) error
}

// TransferInput is a submitted transfer form.
type TransferInput struct {
	Type        model.TransactionType
	User        int64
	Amount      decimal.Decimal
	Description string
}

// DefaultTransactionListLimit caps GET /transactions.
const DefaultTransactionListLimit = 100

// InsufficientFundsMessage formats the amount error of a transfer larger
// than the balance.
func InsufficientFundsMessage(balance decimal.Decimal) string {
	return fmt.Sprintf("Недостаточно средств, доступно %s.", balance.String())
}

type TransferService struct {
	store  TransferStore
	jobs   TaskEnqueuer
	logger *zerolog.Logger
	now    func() time.Time
}

func NewTransferService(store TransferStore, jobs TaskEnqueuer, logger *zerolog.Logger) *TransferService {
	return &TransferService{store: store, jobs: jobs, logger: logger, now: time.Now}
}

// Counterparties lists who acting can transfer to or request funds from.
func (s *TransferService) Counterparties(ctx context.Context, acting *model.Account) ([]model.Counterparty, error) {
	return s.store.Counterparties(ctx, acting.ID)
}

// List returns the latest transactions acting takes part in.
func (s *TransferService) List(ctx context.Context, acting *model.Account) ([]model.Transaction, error) {
	return s.store.Transactions(ctx, acting.ID, DefaultTransactionListLimit)
}

// NewTransaction builds the record saved for a transfer form. A transfer
// moves funds from acting to counterparty and is confirmed at now. An
// offer is the reverse direction and stays unconfirmed until the
// counterparty accepts it.
func NewTransaction(acting, counterparty int64, in TransferInput, now time.Time) *model.Transaction {
	t := &model.Transaction{
		UserFrom:    acting,
		UserTo:      counterparty,
		Amount:      in.Amount,
		Description: in.Description,
	}

	if in.Type == model.TransactionTransfer {
		confirmed := now
		t.Status = true
		t.TimestampConfirm = &confirmed
	} else {
		t.UserFrom, t.UserTo = t.UserTo, t.UserFrom
	}

	return t
}

// Create validates and saves a transfer form submitted by acting.
//
// For transfers the acting account row is locked first, so the balance
// read and the insert cannot interleave with another transfer by the same
// account.
func (s *TransferService) Create(ctx context.Context, acting *model.Account, in TransferInput) (*model.Transaction, error) {
	var created *model.Transaction

	err := s.store.WithinTx(ctx, func(tx TransferTx) error {
		if in.Type == model.TransactionTransfer {
			if err := tx.LockAccount(ctx, acting.ID); err != nil {
				return err
			}
		}

		var fe formErrors

		counterparty, ok, err := tx.FindCounterparty(ctx, acting.ID, in.User)
		if err != nil {
			return err
		}
		if !ok {
			fe.add(errs.CodeInvalidChoice, "user", InvalidChoiceMessage)
		}

		if in.Type == model.TransactionTransfer {
			balance, err := tx.Balance(ctx, acting.ID)
			if err != nil {
				return err
			}
			if in.Amount.GreaterThan(balance) {
				fe.add(errs.CodeBusinessRule, "amount", InsufficientFundsMessage(balance))
			}
		}

		if err := fe.errOrNil(); err != nil {
			return err
		}

		t := NewTransaction(acting.ID, counterparty.ID, in, s.now())
		if err := tx.CreateTransaction(ctx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCounterparty(ctx, acting, in.Type, in.User, created)

	return created, nil
}

// notifyCounterparty queues an e-mail for the other party when their
// profile asks for notifications. Failures are logged, the transaction
// stands.
func (s *TransferService) notifyCounterparty(ctx context.Context, acting *model.Account, kind model.TransactionType, counterparty int64, t *model.Transaction) {
	if s.jobs == nil {
		return
	}

	log := s.logger.With().Int64("transaction_id", t.ID).Int64("recipient_id", counterparty).Logger()

	account, profile, err := s.store.Recipient(ctx, counterparty)
	if err != nil {
		log.Error().Err(err).Msg("failed to load notification recipient")
		return
	}
	if profile == nil || !profile.NotifyByEmail || account.Email == "" {
		return
	}

	task, err := job.NewTransactionNotificationTask(job.TransactionNotificationPayload{
		TransactionID: t.ID,
		Kind:          string(kind),
		To:            account.Email,
		RecipientName: account.FullName(),
		SenderName:    acting.FullName(),
		Amount:        t.Amount.String(),
		Description:   t.Description,
	})
	if err == nil {
		_, err = s.jobs.EnqueueContext(ctx, task)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to enqueue transaction notification")
	}
}
