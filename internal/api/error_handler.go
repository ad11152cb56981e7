package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// errorResponse is the canonical error envelope for most API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// authFailedResponse mirrors the login/auth failure contract: a single
// generic detail, regardless of the underlying cause.
type authFailedResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses every authentication failure into one generic 401 body so the
//     response never reveals whether the email, password or token was wrong.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if isAuthFailure(err) {
			_ = c.JSON(http.StatusUnauthorized, authFailedResponse{Detail: "invalid credentials"})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// isAuthFailure reports whether err is any of the authentication failure
// modes that must be indistinguishable to the caller.
func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrMissingToken) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrExpiredToken)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrZoneNotFound):
		return http.StatusNotFound, "zone not found"
	case errors.Is(err, domain.ErrHeatWaveNotFound):
		return http.StatusNotFound, "heat wave not found"
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, domain.ErrRecommendationNotFound):
		return http.StatusNotFound, "recommendation not found"
	case errors.Is(err, domain.ErrStatisticNotFound):
		return http.StatusNotFound, "statistic not found"
	case errors.Is(err, domain.ErrStatisticExists):
		return http.StatusConflict, "statistic already exists for heat wave"
	case errors.Is(err, domain.ErrAlreadyResident):
		return http.StatusBadRequest, "user already resident of zone"
	case errors.Is(err, domain.ErrNotResident):
		return http.StatusBadRequest, "user is not a resident of zone"
	case errors.Is(err, domain.ErrInvalidNotificationType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid role"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
