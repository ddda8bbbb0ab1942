package handler

import (
	"context"
	"strings"

	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
	"github.com/deppfellow/fefu-exchange/internal/validation"
	"github.com/labstack/echo/v4"
)

type profileService interface {
	Register(ctx context.Context, acting *model.Account, in service.ProfileInput, answer service.CaptchaAnswer) (*model.Profile, error)
	Update(ctx context.Context, acting *model.Account, in service.ProfileInput) (*model.Profile, error)
	Get(ctx context.Context, acting *model.Account) (*model.Profile, error)
	Groups(ctx context.Context) ([]model.Group, error)
}

type ProfileFields struct {
	NotifyByEmail          bool   `json:"notify_by_email"`
	NotifyAboutNewTasks    bool   `json:"notify_about_new_tasks"`
	NotifyAboutNewServices bool   `json:"notify_about_new_services"`
	About                  string `json:"about"`
	Group                  *int64 `json:"group"`
}

func (f *ProfileFields) input() service.ProfileInput {
	return service.ProfileInput{
		NotifyByEmail:          f.NotifyByEmail,
		NotifyAboutNewTasks:    f.NotifyAboutNewTasks,
		NotifyAboutNewServices: f.NotifyAboutNewServices,
		About:                  strings.TrimSpace(f.About),
		GroupID:                f.Group,
	}
}

func (f *ProfileFields) validate() validation.CustomValidationErrors {
	var out validation.CustomValidationErrors
	if f.Group != nil && *f.Group <= 0 {
		out = append(out, validation.CustomValidationError{Field: "group", Message: service.InvalidChoiceMessage})
	}
	return out
}

// RegisterProfileRequest carries the answer to a challenge from
// GET /captcha along with the profile fields.
type RegisterProfileRequest struct {
	ProfileFields
	CaptchaKey   string `json:"captcha_key"`
	CaptchaValue string `json:"captcha_value"`
}

var captchaKeyRules = map[string]string{"captcha_key": "omitempty,uuid"}

func (r *RegisterProfileRequest) Validate() error {
	out := r.validate()
	if err := validation.Fields(map[string]interface{}{"captcha_key": r.CaptchaKey}, captchaKeyRules); err != nil {
		keyErrs, ok := err.(validation.CustomValidationErrors)
		if !ok {
			return err
		}
		out = append(out, keyErrs...)
	}
	if strings.TrimSpace(r.CaptchaValue) == "" {
		out = append(out, validation.CustomValidationError{Field: "captcha", Message: "Обязательное поле."})
	}
	if len(out) > 0 {
		return out
	}
	return nil
}

type UpdateProfileRequest struct {
	ProfileFields
}

func (r *UpdateProfileRequest) Validate() error {
	if out := r.validate(); len(out) > 0 {
		return out
	}
	return nil
}

type ProfileHandler struct {
	Handler
	profiles profileService
}

func NewProfileHandler(s *server.Server, profiles profileService) *ProfileHandler {
	return &ProfileHandler{Handler: NewHandler(s), profiles: profiles}
}

func (h *ProfileHandler) Register(c echo.Context, req *RegisterProfileRequest) (*model.Profile, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.profiles.Register(c.Request().Context(), acting, req.input(), service.CaptchaAnswer{
		Key:   req.CaptchaKey,
		Value: req.CaptchaValue,
	})
}

func (h *ProfileHandler) Update(c echo.Context, req *UpdateProfileRequest) (*model.Profile, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.profiles.Update(c.Request().Context(), acting, req.input())
}

func (h *ProfileHandler) Get(c echo.Context, _ *EmptyRequest) (*model.Profile, error) {
	acting, err := actingAccount(c)
	if err != nil {
		return nil, err
	}
	return h.profiles.Get(c.Request().Context(), acting)
}

// Groups lists the choices of the profile form's group selector.
func (h *ProfileHandler) Groups(c echo.Context, _ *EmptyRequest) ([]model.Group, error) {
	return h.profiles.Groups(c.Request().Context())
}
