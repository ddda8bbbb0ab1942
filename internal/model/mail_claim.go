package model

import "time"

// ExternalMailClaim is an account's claim to own an institutional address.
// Status becomes true once ownership is verified; at most one verified
// claim exists per address.
type ExternalMailClaim struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
