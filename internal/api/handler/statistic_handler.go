package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// StatisticHandler handles HTTP requests for per-heat-wave statistics.
type StatisticHandler struct {
	service ports.StatisticService
}

func NewStatisticHandler(service ports.StatisticService) *StatisticHandler {
	return &StatisticHandler{service: service}
}

type statisticRequest struct {
	AverageTemperature float64 `json:"average_temperature" validate:"required"`
	WaveCount          int     `json:"wave_count" validate:"required,gt=0"`
	HeatWaveID         string  `json:"heat_wave_id" validate:"required"`
}

func (r statisticRequest) toInput() ports.StatisticInput {
	return ports.StatisticInput{
		AverageTemperature: r.AverageTemperature,
		WaveCount:          r.WaveCount,
		HeatWaveID:         r.HeatWaveID,
	}
}

func (h *StatisticHandler) Create(c echo.Context) error {
	var req statisticRequest
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

	stat, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stat)
}

func (h *StatisticHandler) List(c echo.Context) error {
	stats, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// GetByHeatWave handles GET /stats/heatwave/:heat_wave_id — the single
// statistic recorded for that wave.
func (h *StatisticHandler) GetByHeatWave(c echo.Context) error {
	stat, err := h.service.GetByHeatWave(c.Request().Context(), c.Param("heat_wave_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stat)
}

// Summary handles GET /stats/summary — global totals across all statistics.
func (h *StatisticHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *StatisticHandler) Get(c echo.Context) error {
	stat, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stat)
}

func (h *StatisticHandler) Update(c echo.Context) error {
	var req statisticRequest
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

	stat, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stat)
}

func (h *StatisticHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
