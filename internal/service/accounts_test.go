package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/lib/job"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	bySubject map[string]*model.Account
	nextID    int64
	updated   []*model.Account
}

func (f *fakeAccounts) Create(ctx context.Context, a *model.Account) error {
	f.nextID++
	a.ID = f.nextID
	f.bySubject[a.ExternalID] = a
	return nil
}

func (f *fakeAccounts) Update(ctx context.Context, a *model.Account) error {
	f.updated = append(f.updated, a)
	return nil
}

func (f *fakeAccounts) GetByExternalID(ctx context.Context, externalID string) (*model.Account, error) {
	if a, ok := f.bySubject[externalID]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("table:accounts: %w", pgx.ErrNoRows)
}

type fixedBalance decimal.Decimal

func (b fixedBalance) Balance(ctx context.Context, account int64) (decimal.Decimal, error) {
	return decimal.Decimal(b), nil
}

func newAccountTest() (*AccountService, *fakeAccounts, *fakeEnqueuer) {
	accounts := &fakeAccounts{bySubject: map[string]*model.Account{}}
	jobs := &fakeEnqueuer{}
	log := zerolog.Nop()
	return NewAccountService(accounts, fixedBalance(decimal.NewFromInt(42)), jobs, &log), accounts, jobs
}

var aliceInput = AccountInput{Username: "alice", FirstName: "Алиса", LastName: "Селезнёва", Email: "alice@example.com"}

func TestAccountRegister_BindsSubjectAndQueuesWelcome(t *testing.T) {
	svc, _, jobs := newAccountTest()

	a, err := svc.Register(context.Background(), "user_2abc", aliceInput)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, "user_2abc", a.ExternalID)
	assert.Equal(t, "Селезнёва", a.LastName)

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskWelcome, jobs.tasks[0].Type())
	var p job.WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(jobs.tasks[0].Payload(), &p))
	assert.Equal(t, job.WelcomeEmailPayload{To: "alice@example.com", FirstName: "Алиса", Username: "alice"}, p)
}

func TestAccountRegister_SecondTimeIsConflict(t *testing.T) {
	svc, _, _ := newAccountTest()
	_, err := svc.Register(context.Background(), "user_2abc", aliceInput)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "user_2abc", aliceInput)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeAlreadyExists, httpErr.Code)
}

func TestAccountRegister_EnqueueFailureDoesNotFail(t *testing.T) {
	svc, _, jobs := newAccountTest()
	jobs.err = errors.New("redis down")

	_, err := svc.Register(context.Background(), "user_x", aliceInput)
	assert.NoError(t, err)
}

func TestAccountUpdate_DoesNotMutateActing(t *testing.T) {
	svc, accounts, _ := newAccountTest()
	acting := &model.Account{ID: 7, ExternalID: "user_7", Username: "old"}

	updated, err := svc.Update(context.Background(), acting, aliceInput)
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "user_7", updated.ExternalID)
	assert.Equal(t, "old", acting.Username)
	require.Len(t, accounts.updated, 1)
}

func TestAccountMe_IncludesBalance(t *testing.T) {
	svc, _, _ := newAccountTest()
	me, err := svc.Me(context.Background(), &model.Account{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "42", me.Balance.String())
}
