package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTasks map[int64]*model.Task

func (f fakeTasks) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("table:tasks: %w", pgx.ErrNoRows)
}

type fakeBids struct {
	saved []*model.TaskBid
}

func (f *fakeBids) Create(ctx context.Context, b *model.TaskBid) error {
	f.saved = append(f.saved, b)
	return nil
}

func TestTaskBid_AttachesTaskAndBidder(t *testing.T) {
	bids := &fakeBids{}
	svc := NewTaskBidService(fakeTasks{5: {ID: 5, AuthorID: bob.ID}}, bids)

	bid, err := svc.Create(context.Background(), alice, 5, TaskBidInput{Description: "Сделаю за вечер", Price: decimal.RequireFromString("12.25")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), bid.TaskID)
	assert.Equal(t, alice.ID, bid.UserID)
	assert.Equal(t, "12.25", bid.Price.String())
	assert.Len(t, bids.saved, 1)
}

func TestTaskBid_UnknownTask(t *testing.T) {
	bids := &fakeBids{}
	svc := NewTaskBidService(fakeTasks{}, bids)

	_, err := svc.Create(context.Background(), alice, 5, TaskBidInput{Price: decimal.Zero})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Empty(t, bids.saved)
}
