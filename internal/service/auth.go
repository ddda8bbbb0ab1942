package service

import (
	"context"

	"github.com/clerk/clerk-sdk-go/v2"
)

// AuthService binds the Clerk SDK to the configured secret key and reads
// the verified session placed in a request context by the Clerk
// middleware.
type AuthService struct{}

func NewAuthService(secretKey string) *AuthService {
	clerk.SetKey(secretKey)
	return &AuthService{}
}

// Session is the identity behind a request.
type Session struct {
	Subject string
	Role    string
}

// Session returns the verified session of ctx. A session without a
// subject is treated as missing.
func (s *AuthService) Session(ctx context.Context) (Session, bool) {
	claims, ok := clerk.SessionClaimsFromContext(ctx)
	if !ok || claims.Subject == "" {
		return Session{}, false
	}
	return Session{Subject: claims.Subject, Role: claims.ActiveOrganizationRole}, true
}
