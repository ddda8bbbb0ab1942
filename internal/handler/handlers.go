// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and lets the global error handler shape failures.
package handler

import (
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
)

type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Accounts     *AccountHandler
	Profiles     *ProfileHandler
	Transactions *TransactionHandler
	MailClaims   *MailClaimHandler
	TaskBids     *TaskBidHandler
	Forms        *FormHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Accounts:     NewAccountHandler(s, services.Accounts),
		Profiles:     NewProfileHandler(s, services.Profiles),
		Transactions: NewTransactionHandler(s, services.Transfers),
		MailClaims:   NewMailClaimHandler(s, services.MailClaims),
		TaskBids:     NewTaskBidHandler(s, services.TaskBids),
		Forms:        NewFormHandler(s, services.Captcha, services.MailClaims.Domain()),
	}
}
