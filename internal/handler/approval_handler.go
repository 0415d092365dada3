package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/service"
)

// ApprovalHandler exposes the approval state machine. The same three
// endpoints are mounted under the admin, hod and staff route groups;
// the approval chain decides which registrations each actor may act on.
type ApprovalHandler struct {
	approvalService service.ApprovalService
}

// NewApprovalHandler creates a new approval handler.
func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// Pending godoc
// @Summary List pending registrations awaiting the caller
// @Tags approval
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Router /hod/pendingStaff [get]
func (h *ApprovalHandler) Pending(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	pending, err := h.approvalService.Pending(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pending)
}

// Approve godoc
// @Summary Approve a pending registration
// @Tags approval
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} model.Account
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /hod/approve/{id} [put]
func (h *ApprovalHandler) Approve(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	account, err := h.approvalService.Approve(c.Request().Context(), actor.ID, targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// Reject godoc
// @Summary Reject and permanently remove a pending registration
// @Tags approval
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /hod/reject/{id} [delete]
func (h *ApprovalHandler) Reject(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.approvalService.Reject(c.Request().Context(), actor.ID, targetID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "registration rejected"})
}
