package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

var testRoles = domain.RoleSet{"ADMIN", "AGENT", "EXPERT", "USER"}

type stubUserRepo struct {
	users map[string]*domain.User // keyed by user_id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if existing.PhoneNumber == user.PhoneNumber {
			return nil, domain.ErrDuplicatePhone
		}
	}
	r.users[user.UserID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUserID(_ context.Context, userID string) (*domain.User, error) {
	if u, ok := r.users[userID]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:       "a@x.com",
		Password:    "Secret123",
		LastName:    "Doe",
		FirstName:   "Jane",
		PhoneNumber: "+221700000001",
	}
}

func newTestAuthService(repo ports.UserRepository, requireActive bool) *AuthService {
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(repo, tokens, testRoles, requireActive, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.UserID == "" {
		t.Fatalf("expected generated user_id")
	}
	if user.PasswordHash == "Secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if !VerifyPassword("Secret123", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != "USER" {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new users must be active")
	}
	if user.CreatedAt.IsZero() || !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("expected matching creation timestamps, got %v / %v", user.CreatedAt, user.UpdatedAt)
	}
}

func TestAuthService_Register_UniqueUserIDs(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	first, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	in := registerInput()
	in.Email = "b@x.com"
	in.PhoneNumber = "+221700000002"
	second, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if first.UserID == second.UserID {
		t.Fatalf("user ids must never be reused")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	in := registerInput()
	in.PhoneNumber = "+221700000099"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("store must retain exactly one record, has %d", len(repo.users))
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	in := registerInput()
	in.Role = "SUPERUSER"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	registered, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "a@x.com", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.UserID != registered.UserID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := NewTokenService("test-secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != registered.UserID || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, _, badPass := svc.Login(context.Background(), "a@x.com", "WrongPass1")
	_, _, noUser := svc.Login(context.Background(), "ghost@x.com", "Secret123")

	if !errors.Is(badPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", badPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noUser)
	}
}

func TestAuthService_Login_RequireActive(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, true)

	registered, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[registered.UserID].IsActive = false

	if _, _, err := svc.Login(context.Background(), "a@x.com", "Secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for deactivated account, got %v", err)
	}
}

func TestAuthService_Login_InactiveAllowedByDefault(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, false)

	registered, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[registered.UserID].IsActive = false

	if _, _, err := svc.Login(context.Background(), "a@x.com", "Secret123"); err != nil {
		t.Fatalf("deactivated login must succeed when the check is off, got %v", err)
	}
}
