package service

import (
	"context"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/shopspring/decimal"
)

type TaskStore interface {
	GetByID(ctx context.Context, id int64) (*model.Task, error)
}

type TaskBidStore interface {
	Create(ctx context.Context, b *model.TaskBid) error
}

// TaskBidInput is a submitted bid form. Task and bidder come from the
// request context, never from the body.
type TaskBidInput struct {
	Description string
	Price       decimal.Decimal
}

type TaskBidService struct {
	tasks TaskStore
	bids  TaskBidStore
}

func NewTaskBidService(tasks TaskStore, bids TaskBidStore) *TaskBidService {
	return &TaskBidService{tasks: tasks, bids: bids}
}

// Create saves a bid of acting on task taskID. An unknown task yields the
// repository's not-found error.
func (s *TaskBidService) Create(ctx context.Context, acting *model.Account, taskID int64, in TaskBidInput) (*model.TaskBid, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	bid := &model.TaskBid{
		TaskID:      task.ID,
		UserID:      acting.ID,
		Description: in.Description,
		Price:       in.Price,
	}
	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, err
	}
	return bid, nil
}
