package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// NotificationHandler handles HTTP requests for notifications.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notificationRequest struct {
	Label      string    `json:"label" validate:"required,max=200"`
	Type       string    `json:"type" validate:"required,oneof=ALERT INFO WARNING"`
	SentAt     time.Time `json:"sent_at"`
	UserID     string    `json:"user_id" validate:"required"`
	HeatWaveID string    `json:"heat_wave_id" validate:"required"`
}

func (h *NotificationHandler) Create(c echo.Context) error {
	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			return c.JSON(http.StatusBadRequest, fe)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	n, err := h.service.Create(c.Request().Context(), ports.NotificationInput{
		Label:      req.Label,
		Type:       req.Type,
		SentAt:     req.SentAt,
		UserID:     req.UserID,
		HeatWaveID: req.HeatWaveID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// List returns all notifications, or only one user's when ?user_id= is given.
func (h *NotificationHandler) List(c echo.Context) error {
	if userID := c.QueryParam("user_id"); userID != "" {
		items, err := h.service.ListByUser(c.Request().Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, items)
	}

	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Unread handles GET /notifications/unread?user_id=. The user filter is
// mandatory here: an unread list only makes sense per recipient.
func (h *NotificationHandler) Unread(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id query parameter is required")
	}

	items, err := h.service.ListUnreadByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) Get(c echo.Context) error {
	n, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	n, err := h.service.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
