package handler

import (
	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/middleware"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/labstack/echo/v4"
)

// EmptyRequest is bound by endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// actingAccount returns the account loaded by middleware.RequireAccount.
func actingAccount(c echo.Context) (*model.Account, error) {
	account := middleware.GetAccount(c)
	if account == nil {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return account, nil
}
