package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_AuthFailuresCollapse(t *testing.T) {
	// Every authentication failure mode must produce the exact same response.
	authErrors := []error{
		domain.ErrInvalidCredentials,
		domain.ErrMissingToken,
		domain.ErrInvalidToken,
		domain.ErrExpiredToken,
	}

	for _, authErr := range authErrors {
		rec := handleError(t, authErr)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", authErr, rec.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: invalid body: %v", authErr, err)
		}
		if body["detail"] != "invalid credentials" {
			t.Fatalf("%v: unexpected body %v", authErr, body)
		}
		if len(body) != 1 {
			t.Fatalf("%v: body must carry only the generic detail, got %v", authErr, body)
		}
	}
}

func TestErrorHandler_WrappedAuthFailure(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrInvalidToken)

	rec := handleError(t, wrapped)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrapped auth failure, got %d", rec.Code)
	}
}

func TestErrorHandler_NotFound(t *testing.T) {
	cases := map[error]string{
		domain.ErrUserNotFound:           "user not found",
		domain.ErrZoneNotFound:           "zone not found",
		domain.ErrHeatWaveNotFound:       "heat wave not found",
		domain.ErrNotificationNotFound:   "notification not found",
		domain.ErrRecommendationNotFound: "recommendation not found",
		domain.ErrStatisticNotFound:      "statistic not found",
	}

	for err, msg := range cases {
		rec := handleError(t, err)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%v: expected 404, got %d", err, rec.Code)
		}
		var body map[string]string
		if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
			t.Fatalf("%v: invalid body: %v", err, jerr)
		}
		if body["error"] != msg {
			t.Fatalf("%v: expected %q, got %v", err, msg, body)
		}
	}
}

func TestErrorHandler_Conflict(t *testing.T) {
	rec := handleError(t, domain.ErrStatisticExists)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestErrorHandler_BadRequest(t *testing.T) {
	for _, err := range []error{
		domain.ErrAlreadyResident,
		domain.ErrNotResident,
		domain.ErrInvalidNotificationType,
		domain.ErrInvalidRole,
	} {
		rec := handleError(t, err)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", err, rec.Code)
		}
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec := handleError(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal cause leaked to the client: %v", body)
	}
}
