package handler

import (
	"context"
	"strings"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/forms"
	"github.com/deppfellow/fefu-exchange/internal/middleware"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
	"github.com/deppfellow/fefu-exchange/internal/validation"
	"github.com/labstack/echo/v4"
)

type accountService interface {
	Register(ctx context.Context, externalID string, in service.AccountInput) (*model.Account, error)
	Update(ctx context.Context, acting *model.Account, in service.AccountInput) (*model.Account, error)
	Me(ctx context.Context, acting *model.Account) (*model.AccountWithBalance, error)
}

// AccountFields is the field set shared by both account forms.
type AccountFields struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (f *AccountFields) input() service.AccountInput {
	return service.AccountInput{
		Username:  strings.TrimSpace(f.Username),
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
	}
}

// validate checks the fields against the rule table of variant.
func (f *AccountFields) validate(variant forms.Variant) error {
	in := f.input()
	return validation.Fields(map[string]interface{}{
		forms.FieldUsername:  in.Username,
		forms.FieldFirstName: in.FirstName,
		forms.FieldLastName:  in.LastName,
		forms.FieldEmail:     in.Email,
	}, forms.AccountRules(variant))
}

type RegisterAccountRequest struct {
	AccountFields
}

func (r *RegisterAccountRequest) Validate() error {
	return r.validate(forms.Registration)
}

type UpdateAccountRequest struct {
	AccountFields
}

func (r *UpdateAccountRequest) Validate() error {
	return r.validate(forms.Editing)
}

type AccountHandler struct {
	Handler
	accounts accountService
}

func NewAccountHandler(s *server.Server, accounts accountService) *AccountHandler {
	return &AccountHandler{Handler: NewHandler(s), accounts: accounts}
}

// Register creates the account of the authenticated subject.
func (h *AccountHandler) Register(c echo.Context, req *RegisterAccountRequest) (*model.Account, error) {
	subject := middleware.GetUserID(c)
	if subject == "" {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return h.accounts.Register(c.Request().Context(), subject, req.input())
}

func (h *AccountHandler) Update(c echo.Context, req *UpdateAccountRequest) (*model.Account, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.accounts.Update(c.Request().Context(), acting, req.input())
}

func (h *AccountHandler) Me(c echo.Context, _ *EmptyRequest) (*model.AccountWithBalance, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.accounts.Me(c.Request().Context(), acting)
}
