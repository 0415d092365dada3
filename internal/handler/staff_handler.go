package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/service"
)

// StaffHandler serves the staff dashboard: department stats, student
// listings and student record maintenance.
type StaffHandler struct {
	profileService  service.ProfileService
	overviewService service.OverviewService
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(profileService service.ProfileService, overviewService service.OverviewService) *StaffHandler {
	return &StaffHandler{profileService: profileService, overviewService: overviewService}
}

// Stats godoc
// @Summary Student counters for the caller's department
// @Tags staff
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.StaffStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /staff/stats [get]
func (h *StaffHandler) Stats(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	stats, err := h.overviewService.StaffStats(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Students godoc
// @Summary List approved students of the caller's department
// @Tags staff
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Router /staff/students [get]
func (h *StaffHandler) Students(c echo.Context) error {
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

// UpdateStudent godoc
// @Summary Update a student record within the caller's scope
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /staff/update/{id} [put]
func (h *StaffHandler) UpdateStudent(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	studentID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}
	student, err := h.profileService.UpdateStudent(c.Request().Context(), actor.ID, studentID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// RemoveStudent godoc
// @Summary Delete a student record within the caller's scope
// @Tags staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /staff/delete/{id} [delete]
func (h *StaffHandler) RemoveStudent(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	studentID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.profileService.RemoveStudent(c.Request().Context(), actor.ID, studentID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "student removed"})
}
