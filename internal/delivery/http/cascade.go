package http

import (
	"net/http"

	"crypto-dashboard/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupCascade(base *echo.Group) {
	cascadeGroup := base.Group("/cascade")
	cascadeGroup.POST("/run", h.runCascade)
	cascadeGroup.GET("/summary", h.cascadeSummary)
}

func (h *HttpAPIHandler) runCascade(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.RunCascadeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	summary, err := h.service.CascadeService.RunCascade(ctx, *req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to run cascade"})
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *HttpAPIHandler) cascadeSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.CascadeService.Summary())
}
