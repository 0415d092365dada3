package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"campusgate/internal/auth"
	"campusgate/internal/config"
	"campusgate/internal/handler"
	"campusgate/internal/repository"
	"campusgate/internal/roles"
)

// Register wires routes and middleware. Every protected group is gated
// twice: echo-jwt rejects unsigned/expired tokens at the group
// boundary, then RequireRole re-derives role and approval status from
// the account store.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	directoryHandler *handler.DirectoryHandler,
	approvalHandler *handler.ApprovalHandler,
	studentHandler *handler.StudentHandler,
	staffHandler *handler.StaffHandler,
	hodHandler *handler.HodHandler,
	overviewHandler *handler.OverviewHandler,
	tokens *auth.JWTService,
	accounts repository.AccountRepository,
	revocations auth.RevocationStoreInterface,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: registration, login and the taxonomy reads the
	// registration form needs before any session exists.
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/departments", directoryHandler.ListDepartments)
	api.GET("/admin/departments", directoryHandler.ListDepartments)
	api.GET("/sections/:departmentID", directoryHandler.ListSections)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.POST("/auth/logout", authHandler.Logout)

	requireRole := func(r roles.Role) echo.MiddlewareFunc {
		return handler.RequireRole(r, tokens, accounts, revocations)
	}

	// Admin: taxonomy management and the HOD approval queue.
	admin := secured.Group("/admin", requireRole(roles.Admin))
	admin.POST("/departments", directoryHandler.CreateDepartment)
	admin.DELETE("/departments/:id", directoryHandler.DeleteDepartment)
	admin.GET("/pendingHods", approvalHandler.Pending)
	admin.PUT("/approve/:id", approvalHandler.Approve)
	admin.DELETE("/reject/:id", approvalHandler.Reject)

	sections := secured.Group("/sections", requireRole(roles.Admin))
	sections.POST("", directoryHandler.CreateSection)
	sections.DELETE("/:id", directoryHandler.DeleteSection)

	// HOD: staff approval queue plus department listings.
	hod := secured.Group("/hod", requireRole(roles.HOD))
	hod.GET("/stats", hodHandler.Stats)
	hod.GET("/pendingStaff", approvalHandler.Pending)
	hod.GET("/staff", hodHandler.Staff)
	hod.GET("/students", hodHandler.Students)
	hod.PUT("/approve/:id", approvalHandler.Approve)
	hod.DELETE("/reject/:id", approvalHandler.Reject)
	hod.DELETE("/removeStaff/:id", hodHandler.RemoveStaff)

	// Staff: student approval queue plus student record maintenance.
	staff := secured.Group("/staff", requireRole(roles.Staff))
	staff.GET("/stats", staffHandler.Stats)
	staff.GET("/pendingStudents", approvalHandler.Pending)
	staff.GET("/students", staffHandler.Students)
	staff.PUT("/approve/:id", approvalHandler.Approve)
	staff.DELETE("/reject/:id", approvalHandler.Reject)
	staff.PUT("/update/:id", staffHandler.UpdateStudent)
	staff.DELETE("/delete/:id", staffHandler.RemoveStudent)

	// Student: own profile only.
	student := secured.Group("/student", requireRole(roles.Student))
	student.GET("/me", studentHandler.Me)
	student.PUT("/me", studentHandler.UpdateMe)

	// Principal: read-only institution overview.
	overview := secured.Group("/overview", requireRole(roles.Principal))
	overview.GET("/overview", overviewHandler.Overview)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
