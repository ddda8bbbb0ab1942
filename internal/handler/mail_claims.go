package handler

import (
	"context"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/validation"
	"github.com/labstack/echo/v4"
)

type mailClaimService interface {
	Register(ctx context.Context, acting *model.Account, email string) (*model.ExternalMailClaim, error)
}

// CreateMailClaimRequest only checks presence and length; address format
// and domain are checked by the service so each gets its own message.
type CreateMailClaimRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

func (r *CreateMailClaimRequest) Validate() error {
	return validation.Struct(r)
}

type MailClaimHandler struct {
	Handler
	claims mailClaimService
}

func NewMailClaimHandler(s *server.Server, claims mailClaimService) *MailClaimHandler {
	return &MailClaimHandler{Handler: NewHandler(s), claims: claims}
}

func (h *MailClaimHandler) Create(c echo.Context, req *CreateMailClaimRequest) (*model.ExternalMailClaim, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.claims.Register(c.Request().Context(), acting, req.Email)
}
