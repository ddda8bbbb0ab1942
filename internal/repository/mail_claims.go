package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/fefu-exchange/internal/model"
)

type MailClaimRepository struct {
	db DBTX
}

// VerifiedExists reports whether a verified claim for email exists,
// comparing addresses case-insensitively.
func (r *MailClaimRepository) VerifiedExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM external_mail_claims WHERE lower(email) = lower($1) AND status)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking verified claims: %w", err)
	}
	return exists, nil
}

// Create inserts c and fills its id and creation time.
func (r *MailClaimRepository) Create(ctx context.Context, c *model.ExternalMailClaim) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO external_mail_claims (account_id, email, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		c.AccountID, c.Email, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting mail claim: %w", err)
	}
	return nil
}
