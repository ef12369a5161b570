package http

import (
	"net/http"
	"strconv"

	"crypto-dashboard/internal/dto"

	"github.com/labstack/echo/v4"
)

const defaultRecentBacktestLimit = 10

func (h *HttpAPIHandler) SetupBacktest(base *echo.Group) {
	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("", h.runBacktest)
	backtestGroup.GET("/strategies", h.listStrategies)
	backtestGroup.GET("/recent", h.recentBacktests)
	backtestGroup.GET("/:id", h.backtestDetails)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.BacktestService.RunBacktest(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run backtest"})
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no historical data available for the requested symbol and window"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *HttpAPIHandler) listStrategies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.BacktestService.GetAvailableStrategies())
}

func (h *HttpAPIHandler) recentBacktests(c echo.Context) error {
	ctx := c.Request().Context()

	limit := defaultRecentBacktestLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	results, err := h.service.BacktestService.GetRecentBacktests(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load recent backtests"})
	}
	return c.JSON(http.StatusOK, results)
}

func (h *HttpAPIHandler) backtestDetails(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid backtest id"})
	}

	result, err := h.service.BacktestService.GetBacktestDetails(ctx, uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load backtest details"})
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "backtest not found"})
	}
	return c.JSON(http.StatusOK, result)
}
