package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusgate/internal/service"
)

// OverviewHandler serves the principal's institution-wide overview.
type OverviewHandler struct {
	overviewService service.OverviewService
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(overviewService service.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// Overview godoc
// @Summary Per-department approved headcounts
// @Tags overview
// @Security BearerAuth
// @Produce json
// @Success 200 {array} service.DepartmentOverview
// @Failure 403 {object} errors.ErrorResponse
// @Router /overview/overview [get]
func (h *OverviewHandler) Overview(c echo.Context) error {
	overview, err := h.overviewService.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}
