package http

import (
	"net/http"

	"crypto-dashboard/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPortfolio(base *echo.Group) {
	portfolioGroup := base.Group("/portfolio")
	portfolioGroup.POST("/optimize", h.optimizePortfolio)
}

func (h *HttpAPIHandler) optimizePortfolio(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.OptimizePortfolioRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	allocations, err := h.service.PortfolioService.OptimizeAllocation(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to optimize portfolio"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"allocations":  allocations,
		"mega_signals": h.service.PortfolioService.CreateMegaStrategy(allocations),
	})
}
