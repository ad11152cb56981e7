package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type stubVerifier struct {
	claims *ports.TokenClaims
	err    error
}

func (v *stubVerifier) Verify(string) (*ports.TokenClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

type stubUserStore struct {
	users map[string]*domain.User
}

func (s *stubUserStore) Create(_ context.Context, _ *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserStore) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) FindByUserID(_ context.Context, userID string) (*domain.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func runAuth(t *testing.T, verifier ports.TokenVerifier, users ports.UserRepository, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(verifier, users, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	verifier := &stubVerifier{claims: &ports.TokenClaims{UserID: "user-1", Email: "a@x.com"}}
	users := &stubUserStore{users: map[string]*domain.User{
		"user-1": {UserID: "user-1", Email: "a@x.com", Role: "USER"},
	}}

	c, err := runAuth(t, verifier, users, "Bearer good-token")
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}

	user, ok := c.Get(UserContextKey).(*domain.User)
	if !ok || user == nil {
		t.Fatalf("expected user in context")
	}
	if user.UserID != "user-1" {
		t.Fatalf("wrong user injected: %+v", user)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("must not be called")}

	_, err := runAuth(t, verifier, &stubUserStore{}, "")
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	verifier := &stubVerifier{claims: &ports.TokenClaims{UserID: "user-1"}}

	for _, header := range []string{"good-token", "Basic abc123", "Bearer"} {
		if _, err := runAuth(t, verifier, &stubUserStore{}, header); !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
	}
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	verifier := &stubVerifier{claims: &ports.TokenClaims{UserID: "user-1"}}
	users := &stubUserStore{users: map[string]*domain.User{"user-1": {UserID: "user-1"}}}

	if _, err := runAuth(t, verifier, users, "bearer good-token"); err != nil {
		t.Fatalf("lowercase scheme must be accepted, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrInvalidToken}

	if _, err := runAuth(t, verifier, &stubUserStore{}, "Bearer bad-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrExpiredToken}

	if _, err := runAuth(t, verifier, &stubUserStore{}, "Bearer stale-token"); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAuth_UnknownSubject(t *testing.T) {
	verifier := &stubVerifier{claims: &ports.TokenClaims{UserID: "ghost"}}
	users := &stubUserStore{users: map[string]*domain.User{}}

	// The subject no longer exists: the caller must see the same generic
	// token failure, not a 404.
	_, err := runAuth(t, verifier, users, "Bearer orphan-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user absence must not leak through the middleware")
	}
}
