package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "campusgate/internal/errors"
	"campusgate/internal/roles"
	"campusgate/internal/service"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a registration request. Department and
// section carry names from the registration form dropdowns.
type RegisterRequest struct {
	Role            string `json:"role" validate:"required,oneof=Student Staff HOD"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Department      string `json:"department" validate:"required"`
	Section         string `json:"section"`
	RegNo           string `json:"regNo"`
	PhotoLink       string `json:"photoLink"`
}

// LoginRequest represents a login request. Identifier is an email or a
// student registration number.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	RegNo string `json:"regNo,omitempty"`
}

// Register godoc
// @Summary Register a new account
// @Description Self-registering roles (Student, Staff, HOD) start pending approval.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	role, _ := roles.Parse(req.Role)
	account, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Role:            role,
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Department:      req.Department,
		Section:         req.Section,
		RegNo:           req.RegNo,
		PhotoLink:       req.PhotoLink,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "registration submitted",
		"account": account,
	})
}

// Login godoc
// @Summary Login with email or registration number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.ErrValidation)
	}

	token, account, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	resp := LoginResponse{Token: token, Role: account.Role.String()}
	if account.RegNo != nil {
		resp.RegNo = *account.RegNo
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout and revoke the presented token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return respondError(c, apperrors.ErrInvalidCredentials)
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
