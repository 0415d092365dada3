package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/service"
)

// StudentHandler serves the student dashboard's own-profile view.
type StudentHandler struct {
	profileService service.ProfileService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(profileService service.ProfileService) *StudentHandler {
	return &StudentHandler{profileService: profileService}
}

// ProfileRequest carries the mutable profile fields.
type ProfileRequest struct {
	Name             string          `json:"name"`
	Gender           string          `json:"gender"`
	DOB              string          `json:"dob"`
	Mobile           string          `json:"mobile"`
	Address          string          `json:"address"`
	PhotoLink        string          `json:"photoLink"`
	CGPA             decimal.Decimal `json:"cgpa"`
	Arrears          int             `json:"arrears"`
	HistoryOfArrears bool            `json:"historyArrears"`
	PlacementWilling bool            `json:"placement"`
	Skills           string          `json:"skills"`
}

func (r ProfileRequest) toInput() service.ProfileInput {
	return service.ProfileInput{
		Name:             r.Name,
		Gender:           r.Gender,
		DOB:              r.DOB,
		Mobile:           r.Mobile,
		Address:          r.Address,
		PhotoLink:        r.PhotoLink,
		CGPA:             r.CGPA,
		Arrears:          r.Arrears,
		HistoryOfArrears: r.HistoryOfArrears,
		PlacementWilling: r.PlacementWilling,
		Skills:           r.Skills,
	}
}

// Me godoc
// @Summary Get the caller's own account
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Account
// @Failure 404 {object} errors.ErrorResponse
// @Router /student/me [get]
func (h *StudentHandler) Me(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	account, err := h.profileService.Me(c.Request().Context(), actor.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateMe godoc
// @Summary Update the caller's own profile
// @Tags student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Router /student/me [put]
func (h *StudentHandler) UpdateMe(c echo.Context) error {
	actor, ok := Actor(c)
	if !ok {
		return respondError(c, apperrors.ErrForbidden)
	}
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}
	account, err := h.profileService.UpdateMe(c.Request().Context(), actor.ID, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}
