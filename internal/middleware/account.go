package middleware

import (
	"context"
	"errors"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// AccountKey holds the acting *model.Account in echo context.
const AccountKey = "account"

// RegistrationPath is where clients finish registration.
const RegistrationPath = "/api/v1/accounts"

type AccountLookup interface {
	GetByExternalID(ctx context.Context, externalID string) (*model.Account, error)
}

// AccountMiddleware loads the account of the authenticated subject.
type AccountMiddleware struct {
	server   *server.Server
	accounts AccountLookup
}

func NewAccountMiddleware(s *server.Server, accounts AccountLookup) *AccountMiddleware {
	return &AccountMiddleware{server: s, accounts: accounts}
}

// RequireAccount must run after RequireAuth. Subjects without an account
// get a 403 that points them at the registration endpoint.
func (m *AccountMiddleware) RequireAccount(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		subject := GetUserID(c)
		if subject == "" {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		account, err := m.accounts.GetByExternalID(c.Request().Context(), subject)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				code := errs.CodeAccountMissing
				return errs.NewForbiddenError("Завершите регистрацию.", true, &code, &errs.Action{
					Type:    errs.ActionTypeRedirect,
					Message: "Аккаунт ещё не создан.",
					Value:   RegistrationPath,
				})
			}
			return err
		}

		c.Set(AccountKey, account)

		logger := GetLogger(c).With().Int64("account_id", account.ID).Logger()
		c.Set(LoggerKey, &logger)

		return next(c)
	}
}

// GetAccount returns the acting account, or nil outside RequireAccount.
func GetAccount(c echo.Context) *model.Account {
	if account, ok := c.Get(AccountKey).(*model.Account); ok {
		return account
	}
	return nil
}
