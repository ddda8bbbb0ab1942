package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind chosen in the transfer form. It is not
// stored: it only decides direction and initial status.
type TransactionType string

const (
	// TransactionTransfer pays the counterparty right away.
	TransactionTransfer TransactionType = "transfer"
	// TransactionOffer asks the counterparty to pay the acting user.
	TransactionOffer TransactionType = "offer"
)

// Transaction is a directed movement of internal currency from UserFrom to
// UserTo. Status is true once confirmed; TimestampConfirm is set at the
// same moment.
type Transaction struct {
	ID               int64           `json:"id"`
	UserFrom         int64           `json:"user_from"`
	UserTo           int64           `json:"user_to"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Status           bool            `json:"status"`
	TimestampConfirm *time.Time      `json:"timestamp_confirm"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Confirmed reports whether the transaction has been confirmed.
func (t *Transaction) Confirmed() bool {
	return t.Status && t.TimestampConfirm != nil
}
