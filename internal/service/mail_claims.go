package service

import (
	"context"
	"strings"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/validation"
)

type MailClaimStore interface {
	VerifiedExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c *model.ExternalMailClaim) error
}

const (
	WrongDomainMessage     = "Неправильный домен."
	EmailRegisteredMessage = "Email уже зарегистрирован."
	MalformedEmailMessage  = "Введите правильный адрес электронной почты."
)

type MailClaimService struct {
	claims MailClaimStore
	domain string
}

// NewMailClaimService accepts claims for addresses in domain only.
func NewMailClaimService(claims MailClaimStore, domain string) *MailClaimService {
	return &MailClaimService{claims: claims, domain: strings.ToLower(domain)}
}

// Domain is the only domain accepted for claims.
func (s *MailClaimService) Domain() string {
	return s.domain
}

// Register records an unverified claim of acting on email.
func (s *MailClaimService) Register(ctx context.Context, acting *model.Account, email string) (*model.ExternalMailClaim, error) {
	email = strings.TrimSpace(email)

	if err := validation.Validator().Var(email, "email"); err != nil {
		return nil, errs.NewFieldError(errs.CodeInvalidFormat, "email", MalformedEmailMessage)
	}
	if _, domain, _ := strings.Cut(email, "@"); !strings.EqualFold(domain, s.domain) {
		return nil, errs.NewFieldError(errs.CodeInvalidFormat, "email", WrongDomainMessage)
	}

	taken, err := s.claims.VerifiedExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewFieldError(errs.CodeAlreadyExists, "email", EmailRegisteredMessage)
	}

	claim := &model.ExternalMailClaim{AccountID: acting.ID, Email: email}
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}
