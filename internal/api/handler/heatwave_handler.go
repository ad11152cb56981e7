package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// HeatWaveHandler handles HTTP requests for heat waves. Creation triggers the
// asynchronous alert fan-out to zone residents.
type HeatWaveHandler struct {
	service ports.HeatWaveService
}

func NewHeatWaveHandler(service ports.HeatWaveService) *HeatWaveHandler {
	return &HeatWaveHandler{service: service}
}

type heatWaveRequest struct {
	MaxTemperature float64   `json:"max_temperature" validate:"required"`
	Intensity      float64   `json:"intensity" validate:"required"`
	Humidity       float64   `json:"humidity" validate:"required"`
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	EndsAt         time.Time `json:"ends_at" validate:"required"`
	ZoneID         string    `json:"zone_id" validate:"required"`
}

func (r heatWaveRequest) toInput() ports.HeatWaveInput {
	return ports.HeatWaveInput{
		MaxTemperature: r.MaxTemperature,
		Intensity:      r.Intensity,
		Humidity:       r.Humidity,
		StartsAt:       r.StartsAt,
		EndsAt:         r.EndsAt,
		ZoneID:         r.ZoneID,
	}
}

func (h *HeatWaveHandler) Create(c echo.Context) error {
	var req heatWaveRequest
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

	wave, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, wave)
}

func (h *HeatWaveHandler) List(c echo.Context) error {
	waves, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, waves)
}

// ListByZone handles GET /heatwaves/zone/:zone_id.
func (h *HeatWaveHandler) ListByZone(c echo.Context) error {
	waves, err := h.service.ListByZone(c.Request().Context(), c.Param("zone_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, waves)
}

// ListActive handles GET /heatwaves/active — waves in progress right now.
func (h *HeatWaveHandler) ListActive(c echo.Context) error {
	waves, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, waves)
}

func (h *HeatWaveHandler) Get(c echo.Context) error {
	wave, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wave)
}

func (h *HeatWaveHandler) Update(c echo.Context) error {
	var req heatWaveRequest
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

	wave, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wave)
}

func (h *HeatWaveHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
