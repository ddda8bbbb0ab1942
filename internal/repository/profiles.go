package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db DBTX
}

// Create inserts the profile of p.AccountID.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (account_id, notify_by_email, notify_about_new_tasks, notify_about_new_services, about, group_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		p.AccountID, p.NotifyByEmail, p.NotifyAboutNewTasks, p.NotifyAboutNewServices, p.About, p.GroupID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of an existing profile.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	err := r.db.QueryRow(ctx, `
		UPDATE profiles
		SET notify_by_email = $2, notify_about_new_tasks = $3, notify_about_new_services = $4,
		    about = $5, group_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE account_id = $1
		RETURNING created_at, updated_at`,
		p.AccountID, p.NotifyByEmail, p.NotifyAboutNewTasks, p.NotifyAboutNewServices, p.About, p.GroupID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("profiles", err)
		}
		return fmt.Errorf("updating profile %d: %w", p.AccountID, err)
	}
	return nil
}

// GetByAccount loads the profile of an account.
func (r *ProfileRepository) GetByAccount(ctx context.Context, accountID int64) (*model.Profile, error) {
	var p model.Profile
	err := r.db.QueryRow(ctx, `
		SELECT account_id, notify_by_email, notify_about_new_tasks, notify_about_new_services,
		       about, group_id, created_at, updated_at
		FROM profiles
		WHERE account_id = $1`, accountID,
	).Scan(&p.AccountID, &p.NotifyByEmail, &p.NotifyAboutNewTasks, &p.NotifyAboutNewServices,
		&p.About, &p.GroupID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("profiles", err)
		}
		return nil, fmt.Errorf("loading profile %d: %w", accountID, err)
	}
	return &p, nil
}

type GroupRepository struct {
	db DBTX
}

// List returns every group ordered by name.
func (r *GroupRepository) List(ctx context.Context) ([]model.Group, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Exists reports whether the group id exists.
func (r *GroupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking group %d: %w", id, err)
	}
	return exists, nil
}
