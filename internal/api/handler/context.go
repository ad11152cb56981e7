package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/heatwatch/heatwave-alerts/internal/api/middleware"
	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth
// middleware. A nil result means the middleware did not run; handlers treat
// that as a missing token rather than panicking on a wiring mistake.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}
