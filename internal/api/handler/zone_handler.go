package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// ZoneHandler handles HTTP requests for geographic zones.
type ZoneHandler struct {
	service ports.ZoneService
}

func NewZoneHandler(service ports.ZoneService) *ZoneHandler {
	return &ZoneHandler{service: service}
}

type zoneRequest struct {
	City      string  `json:"city" validate:"required,max=100"`
	Street    string  `json:"street" validate:"required,max=200"`
	Number    int     `json:"number" validate:"required"`
	Latitude  string  `json:"latitude" validate:"required"`
	Longitude string  `json:"longitude" validate:"required"`
	RadiusKm  float64 `json:"radius_km" validate:"required,gt=0"`
}

type addResidentRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (r zoneRequest) toInput() ports.ZoneInput {
	return ports.ZoneInput{
		City:      r.City,
		Street:    r.Street,
		Number:    r.Number,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		RadiusKm:  r.RadiusKm,
	}
}

func (h *ZoneHandler) Create(c echo.Context) error {
	var req zoneRequest
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

	zone, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, zone)
}

func (h *ZoneHandler) List(c echo.Context) error {
	zones, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zones)
}

func (h *ZoneHandler) Get(c echo.Context) error {
	zone, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zone)
}

func (h *ZoneHandler) Update(c echo.Context) error {
	var req zoneRequest
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

	zone, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zone)
}

func (h *ZoneHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddResident handles POST /zones/:id/residents.
func (h *ZoneHandler) AddResident(c echo.Context) error {
	var req addResidentRequest
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

	if err := h.service.AddResident(c.Request().Context(), c.Param("id"), req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "resident added successfully"})
}

// RemoveResident handles DELETE /zones/:id/residents/:user_id.
func (h *ZoneHandler) RemoveResident(c echo.Context) error {
	if err := h.service.RemoveResident(c.Request().Context(), c.Param("id"), c.Param("user_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "resident removed successfully"})
}
