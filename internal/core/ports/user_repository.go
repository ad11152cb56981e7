package ports

import (
	"context"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// UserRepository defines persistence operations for user credentials.
//
// Create must be atomic with respect to the email and phone_number uniqueness
// constraints: two concurrent inserts of the same email must not both commit.
// Implementations signal a violation with domain.ErrDuplicateEmail or
// domain.ErrDuplicatePhone.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user matches; absence
	// is a normal outcome for login-failure handling, not an exceptional one.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUserID resolves a token subject back to its user record.
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
}
