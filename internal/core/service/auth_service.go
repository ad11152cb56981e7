package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo          ports.UserRepository
	tokens        ports.TokenIssuer
	roles         domain.RoleSet
	requireActive bool
	log           zerolog.Logger
}

// NewAuthService wires the credential store, token issuer and configured role
// set. requireActive turns the is_active check on at login; historically the
// system never enforced it, so it defaults to off.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, roles domain.RoleSet, requireActive bool, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:          repo,
		tokens:        tokens,
		roles:         roles,
		requireActive: requireActive,
		log:           log,
	}
}

// Register validates the payload, hashes the password and persists the user.
// Uniqueness of email and phone_number is enforced atomically by the store.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || input.LastName == "" || input.PhoneNumber == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := input.Role
	if role == "" {
		role = s.roles.Default()
	}
	if !s.roles.Contains(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserID:       uuid.NewString(),
		LastName:     input.LastName,
		FirstName:    input.FirstName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hash,
		IsActive:     true,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.UserID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password and issues a bearer token. An
// unknown email and a wrong password produce the same error so callers cannot
// tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.requireActive && !user.IsActive {
		s.log.Warn().Str("user_id", user.UserID).Msg("login rejected: account deactivated")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
