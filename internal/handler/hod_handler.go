package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/service"
)

// HodHandler serves the HOD dashboard: department stats and staff and
// student listings plus staff removal.
type HodHandler struct {
	profileService  service.ProfileService
	overviewService service.OverviewService
}

// NewHodHandler creates a new HOD handler.
func NewHodHandler(profileService service.ProfileService, overviewService service.OverviewService) *HodHandler {
	return &HodHandler{profileService: profileService, overviewService: overviewService}
}

// Stats godoc
// @Summary Staff and student counters for the caller's department
// @Tags hod
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.HodStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /hod/stats [get]
func (h *HodHandler) Stats(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	stats, err := h.overviewService.HodStats(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Staff godoc
// @Summary List approved staff of the caller's department
// @Tags hod
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Router /hod/staff [get]
func (h *HodHandler) Staff(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	staff, err := h.profileService.ApprovedStaff(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, staff)
}

// Students godoc
// @Summary List approved students of the caller's department
// @Tags hod
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Router /hod/students [get]
func (h *HodHandler) Students(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	students, err := h.profileService.Students(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// RemoveStaff godoc
// @Summary Delete an approved staff member of the caller's department
// @Tags hod
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /hod/removeStaff/{id} [delete]
func (h *HodHandler) RemoveStaff(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	staffID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.profileService.RemoveStaff(c.Request().Context(), actor.ID, staffID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "staff removed"})
}
