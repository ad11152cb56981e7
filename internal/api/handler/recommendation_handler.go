package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

// RecommendationHandler handles HTTP requests for prevention recommendations.
type RecommendationHandler struct {
	service ports.RecommendationService
}

func NewRecommendationHandler(service ports.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

type recommendationRequest struct {
	Label       string `json:"label" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=1000"`
	ZoneID      string `json:"zone_id" validate:"required"`
}

func (r recommendationRequest) toInput() ports.RecommendationInput {
	return ports.RecommendationInput{
		Label:       r.Label,
		Description: r.Description,
		ZoneID:      r.ZoneID,
	}
}

func (h *RecommendationHandler) Create(c echo.Context) error {
	var req recommendationRequest
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

	rec, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *RecommendationHandler) List(c echo.Context) error {
	recs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// ListByZone handles GET /recommendations/zone/:zone_id.
func (h *RecommendationHandler) ListByZone(c echo.Context) error {
	recs, err := h.service.ListByZone(c.Request().Context(), c.Param("zone_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *RecommendationHandler) Get(c echo.Context) error {
	rec, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) Update(c echo.Context) error {
	var req recommendationRequest
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

	rec, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecommendationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
