package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/jackc/pgx/v5"
)

type TaskRepository struct {
	db DBTX
}

// GetByID loads a task.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var t model.Task
	err := r.db.QueryRow(ctx, `
		SELECT id, author_id, title, description, created_at
		FROM tasks
		WHERE id = $1`, id,
	).Scan(&t.ID, &t.AuthorID, &t.Title, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("tasks", err)
		}
		return nil, fmt.Errorf("loading task %d: %w", id, err)
	}
	return &t, nil
}

type TaskBidRepository struct {
	db DBTX
}

// Create inserts b and fills its id and creation time.
func (r *TaskBidRepository) Create(ctx context.Context, b *model.TaskBid) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO task_bids (task_id, user_id, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		b.TaskID, b.UserID, b.Description, b.Price,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting task bid: %w", err)
	}
	return nil
}
