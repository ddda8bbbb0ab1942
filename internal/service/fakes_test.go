package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory stand-in for the repositories.
type memoryStore struct {
	mu           sync.Mutex
	accounts     map[int64]*model.Account
	profiles     map[int64]*model.Profile
	transactions []*model.Transaction
	locked       []int64
	txCount      int
}

func newMemoryStore(accounts ...*model.Account) *memoryStore {
	s := &memoryStore{
		accounts: map[int64]*model.Account{},
		profiles: map[int64]*model.Profile{},
	}
	for _, a := range accounts {
		s.accounts[a.ID] = a
		s.profiles[a.ID] = &model.Profile{AccountID: a.ID}
	}
	return s
}

// credit records a confirmed transfer of amount into account from a
// system account outside the map.
func (s *memoryStore) credit(account int64, amount string) {
	s.transactions = append(s.transactions, &model.Transaction{
		UserFrom: -1, UserTo: account, Amount: decimal.RequireFromString(amount), Status: true,
	})
}

func (s *memoryStore) Counterparties(ctx context.Context, acting int64) ([]model.Counterparty, error) {
	var out []model.Counterparty
	for id, a := range s.accounts {
		if _, ok := s.profiles[id]; ok && id != acting {
			out = append(out, model.Counterparty{ID: id, Username: a.Username})
		}
	}
	return out, nil
}

func (s *memoryStore) Transactions(ctx context.Context, acting int64, limit int) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range s.transactions {
		if t.UserFrom == acting || t.UserTo == acting {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *memoryStore) Recipient(ctx context.Context, id int64) (*model.Account, *model.Profile, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, nil, fmt.Errorf("table:accounts: %w", pgx.ErrNoRows)
	}
	return a, s.profiles[id], nil
}

func (s *memoryStore) WithinTx(ctx context.Context, fn func(tx TransferTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	before := len(s.transactions)
	if err := fn(s); err != nil {
		s.transactions = s.transactions[:before]
		return err
	}
	return nil
}

func (s *memoryStore) LockAccount(ctx context.Context, id int64) error {
	s.locked = append(s.locked, id)
	return nil
}

func (s *memoryStore) FindCounterparty(ctx context.Context, acting, id int64) (model.Counterparty, bool, error) {
	a, ok := s.accounts[id]
	if !ok || id == acting {
		return model.Counterparty{}, false, nil
	}
	if _, hasProfile := s.profiles[id]; !hasProfile {
		return model.Counterparty{}, false, nil
	}
	return model.Counterparty{ID: a.ID, Username: a.Username}, true, nil
}

func (s *memoryStore) Balance(ctx context.Context, account int64) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, t := range s.transactions {
		if !t.Status {
			continue
		}
		if t.UserTo == account {
			balance = balance.Add(t.Amount)
		}
		if t.UserFrom == account {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}

func (s *memoryStore) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	t.ID = int64(len(s.transactions) + 1)
	s.transactions = append(s.transactions, t)
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}
