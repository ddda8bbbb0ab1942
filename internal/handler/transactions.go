package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
	"github.com/deppfellow/fefu-exchange/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Money columns are NUMERIC(12,2).
const (
	amountPlaces = 2
	amountDigits = 12
)

// amountLimit is the smallest absolute value a money column cannot store.
var amountLimit = decimal.New(1, amountDigits-amountPlaces)

type transferService interface {
	Create(ctx context.Context, acting *model.Account, in service.TransferInput) (*model.Transaction, error)
	Counterparties(ctx context.Context, acting *model.Account) ([]model.Counterparty, error)
	List(ctx context.Context, acting *model.Account) ([]model.Transaction, error)
}

type CreateTransactionRequest struct {
	Type        string           `json:"type" validate:"required,oneof=transfer offer"`
	User        int64            `json:"user" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Description string           `json:"description"`
}

func (r *CreateTransactionRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return checkAmount("amount", *r.Amount)
}

// checkAmount rejects values a money column cannot store: too many
// decimal places or too many digits before the point.
func checkAmount(field string, d decimal.Decimal) error {
	var msg string
	switch {
	case d.Exponent() < -amountPlaces && !d.Equal(d.Truncate(amountPlaces)):
		msg = fmt.Sprintf("Убедитесь, что количество знаков после запятой не превышает %d.", amountPlaces)
	case d.Abs().GreaterThanOrEqual(amountLimit):
		msg = fmt.Sprintf("Убедитесь, что количество цифр перед запятой не превышает %d.", amountDigits-amountPlaces)
	default:
		return nil
	}
	return validation.CustomValidationErrors{{Field: field, Message: msg}}
}

type TransactionHandler struct {
	Handler
	transfers transferService
}

func NewTransactionHandler(s *server.Server, transfers transferService) *TransactionHandler {
	return &TransactionHandler{Handler: NewHandler(s), transfers: transfers}
}

// Create saves a transfer or an offer.
func (h *TransactionHandler) Create(c echo.Context, req *CreateTransactionRequest) (*model.Transaction, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.transfers.Create(c.Request().Context(), acting, service.TransferInput{
		Type:        model.TransactionType(req.Type),
		User:        req.User,
		Amount:      *req.Amount,
		Description: strings.TrimSpace(req.Description),
	})
}

func (h *TransactionHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Transaction, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.transfers.List(c.Request().Context(), acting)
}

// Counterparties lists the accounts selectable in the transfer form.
func (h *TransactionHandler) Counterparties(c echo.Context, _ *EmptyRequest) ([]model.Counterparty, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.transfers.Counterparties(c.Request().Context(), acting)
}
