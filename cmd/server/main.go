package main

import (
	"log"
	"net/http"
	"os"

	_ "campusgate/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"campusgate/internal/auth"
	"campusgate/internal/cache"
	"campusgate/internal/config"
	"campusgate/internal/db"
	"campusgate/internal/handler"
	"campusgate/internal/model"
	"campusgate/internal/repository"
	"campusgate/internal/router"
	"campusgate/internal/service"
)

// @title CampusGate API
// @version 1.0
// @description Academic portal API with hierarchical account approval and role-gated sessions.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Account{},
			&model.Section{},
			&model.Department{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Department{},
		&model.Section{},
		&model.Account{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	departmentRepo := repository.NewDepartmentRepository(gormDB)
	sectionRepo := repository.NewSectionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	revocationStore := auth.NewRevocationStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(accountRepo, departmentRepo, sectionRepo, jwtService, revocationStore)
	approvalService := service.NewApprovalService(accountRepo, revocationStore)
	directoryService := service.NewDirectoryService(departmentRepo, sectionRepo, accountRepo)
	profileService := service.NewProfileService(accountRepo)
	overviewService := service.NewOverviewService(accountRepo, departmentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	studentHandler := handler.NewStudentHandler(profileService)
	staffHandler := handler.NewStaffHandler(profileService, overviewService)
	hodHandler := handler.NewHodHandler(profileService, overviewService)
	overviewHandler := handler.NewOverviewHandler(overviewService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		directoryHandler,
		approvalHandler,
		studentHandler,
		staffHandler,
		hodHandler,
		overviewHandler,
		jwtService,
		accountRepo,
		revocationStore,
	)

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
