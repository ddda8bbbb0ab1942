package handler

import (
	"context"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/forms"
	"github.com/deppfellow/fefu-exchange/internal/lib/captcha"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/labstack/echo/v4"
)

type captchaIssuer interface {
	Issue(ctx context.Context) (*captcha.Challenge, error)
}

type GetFormRequest struct {
	Name string `param:"name"`
}

func (r *GetFormRequest) Validate() error {
	return nil
}

// FormHandler serves what a client needs to render the forms: field
// descriptors and captcha challenges.
type FormHandler struct {
	Handler
	captcha captchaIssuer
	domain  string
}

func NewFormHandler(s *server.Server, issuer captchaIssuer, domain string) *FormHandler {
	return &FormHandler{Handler: NewHandler(s), captcha: issuer, domain: domain}
}

func (h *FormHandler) Get(c echo.Context, req *GetFormRequest) (forms.Form, error) {
	form, err := forms.Get(req.Name, h.domain)
	if err != nil {
		return forms.Form{}, errs.NewNotFoundError("Форма не найдена.", true, nil)
	}
	return form, nil
}

func (h *FormHandler) List(c echo.Context, _ *EmptyRequest) ([]string, error) {
	return forms.Names(), nil
}

// Captcha issues a challenge for the profile registration form.
func (h *FormHandler) Captcha(c echo.Context, _ *EmptyRequest) (*captcha.Challenge, error) {
	return h.captcha.Issue(c.Request().Context())
}
