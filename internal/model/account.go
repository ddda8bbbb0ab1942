package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the identity record of a site user. ExternalID is the subject
// issued by the authentication provider.
type Account struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"-"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName returns "First Last".
func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// AccountWithBalance is what GET /accounts/me returns.
type AccountWithBalance struct {
	*Account
	Balance decimal.Decimal `json:"balance"`
}

// Counterparty is an entry of the transfer form's user selector.
type Counterparty struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
