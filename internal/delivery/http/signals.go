package http

import (
	"net/http"
	"strconv"

	"crypto-dashboard/internal/dto"
	"crypto-dashboard/internal/service"

	"github.com/labstack/echo/v4"
)

const defaultTopOpportunityLimit = 10

func (h *HttpAPIHandler) SetupSignals(base *echo.Group) {
	signalGroup := base.Group("/signals")
	signalGroup.POST("", h.generateSignals)
	signalGroup.GET("/top", h.topOpportunities)
	signalGroup.GET("/latest", h.latestSignals)
}

func (h *HttpAPIHandler) generateSignals(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.GenerateSignalsRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	signals := h.service.SignalService.GenerateMegaSignals(ctx, req.Symbols)
	return c.JSON(http.StatusOK, signals)
}

func (h *HttpAPIHandler) topOpportunities(c echo.Context) error {
	ctx := c.Request().Context()

	limit := defaultTopOpportunityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	signals, err := h.service.SignalService.GetTopOpportunities(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to generate opportunities"})
	}
	return c.JSON(http.StatusOK, signals)
}

// latestSignals mengembalikan batch terakhir hasil scheduler dari cache.
func (h *HttpAPIHandler) latestSignals(c echo.Context) error {
	signals, ok := service.LatestSignals(h.cache)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no signal batch available yet"})
	}
	return c.JSON(http.StatusOK, signals)
}
