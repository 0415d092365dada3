package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/service"
)

// DirectoryHandler serves the department/section taxonomy: public
// reads for the registration form, Admin-gated writes.
type DirectoryHandler struct {
	directoryService service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(directoryService service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// CreateDepartmentRequest represents a department creation request.
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateSectionRequest represents a section creation request.
type CreateSectionRequest struct {
	Name         string `json:"name" validate:"required"`
	DepartmentID string `json:"departmentId" validate:"required,uuid"`
}

// ListDepartments godoc
// @Summary List departments
// @Tags directory
// @Produce json
// @Success 200 {array} model.Department
// @Router /departments [get]
func (h *DirectoryHandler) ListDepartments(c echo.Context) error {
	departments, err := h.directoryService.ListDepartments(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, departments)
}

// CreateDepartment godoc
// @Summary Create a department
// @Tags directory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateDepartmentRequest true "Department"
// @Success 201 {object} model.Department
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/departments [post]
func (h *DirectoryHandler) CreateDepartment(c echo.Context) error {
	var req CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	department, err := h.directoryService.CreateDepartment(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, department)
}

// DeleteDepartment godoc
// @Summary Delete a department
// @Description Blocked while sections or accounts still reference it.
// @Tags directory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/departments/{id} [delete]
func (h *DirectoryHandler) DeleteDepartment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.directoryService.DeleteDepartment(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "department deleted"})
}

// ListSections godoc
// @Summary List a department's sections
// @Tags directory
// @Produce json
// @Param departmentID path string true "Department ID"
// @Success 200 {array} model.Section
// @Failure 404 {object} errors.ErrorResponse
// @Router /sections/{departmentID} [get]
func (h *DirectoryHandler) ListSections(c echo.Context) error {
	id, err := pathID(c, "departmentID")
	if err != nil {
		return respondError(c, err)
	}
	sections, err := h.directoryService.ListSections(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}

// CreateSection godoc
// @Summary Create a section under a department
// @Tags directory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateSectionRequest true "Section"
// @Success 201 {object} model.Section
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sections [post]
func (h *DirectoryHandler) CreateSection(c echo.Context) error {
	var req CreateSectionRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	section, err := h.directoryService.CreateSection(c.Request().Context(), departmentID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, section)
}

// DeleteSection godoc
// @Summary Delete a section
// @Description Blocked while accounts still reference it.
// @Tags directory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /sections/{id} [delete]
func (h *DirectoryHandler) DeleteSection(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.directoryService.DeleteSection(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "section deleted"})
}
