package main

import (
	"log"
	"net/http"
	"os"

	_ "stayhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stayhub/internal/auth"
	"stayhub/internal/cache"
	"stayhub/internal/config"
	"stayhub/internal/db"
	"stayhub/internal/handler"
	"stayhub/internal/model"
	"stayhub/internal/repository"
	"stayhub/internal/router"
	"stayhub/internal/service"
)

// @title StayHub API
// @version 1.0
// @description Booking platform API with listings, reservations, host applications, and JWT authentication.
// @host localhost:8080
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
			&model.Reservation{},
			&model.ListingImage{},
			&model.Listing{},
			&model.HostApplication{},
			&model.User{},
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
		&model.User{},
		&model.Listing{},
		&model.ListingImage{},
		&model.Reservation{},
		&model.HostApplication{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	reservationRepo := repository.NewReservationRepository(gormDB)
	applicationRepo := repository.NewHostApplicationRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, txManager, cacheClient)
	listingService := service.NewListingService(listingRepo, txManager, cacheClient)
	reservationService := service.NewReservationService(reservationRepo, listingRepo)
	applicationService := service.NewHostApplicationService(applicationRepo, userRepo, txManager)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	listingHandler := handler.NewListingHandler(listingService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	applicationHandler := handler.NewHostApplicationHandler(applicationService)
	adminHandler := handler.NewAdminHandler(userService, listingService, reservationService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		listingHandler,
		reservationHandler,
		applicationHandler,
		adminHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
