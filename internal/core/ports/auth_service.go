package ports

import (
	"context"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// RegisterInput carries the registration payload into the auth service.
type RegisterInput struct {
	Email       string
	Password    string
	LastName    string
	FirstName   string
	PhoneNumber string
	Role        string // empty = configured default role
}

// AuthService composes the credential store, password hasher and token issuer
// into the two public operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user. Any
	// credential problem (unknown email, wrong password) surfaces as the same
	// domain.ErrInvalidCredentials so callers cannot enumerate accounts.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
