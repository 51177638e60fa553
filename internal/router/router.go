package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"stayhub/internal/auth"
	"stayhub/internal/config"
	"stayhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	listingHandler *handler.ListingHandler,
	reservationHandler *handler.ReservationHandler,
	applicationHandler *handler.HostApplicationHandler,
	adminHandler *handler.AdminHandler,
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

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/listings", listingHandler.ListListings)
	api.GET("/listings/:id", listingHandler.GetListing)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile routes
	secured.GET("/users/me", userHandler.Me)
	secured.PUT("/users/me", userHandler.UpdateProfile)
	secured.PUT("/users/me/password", userHandler.ChangePassword)
	secured.GET("/users/:id", userHandler.GetUser)

	// Listing routes
	secured.POST("/listings", listingHandler.CreateListing)
	secured.PUT("/listings/:id", listingHandler.UpdateListing)
	secured.DELETE("/listings/:id", listingHandler.DeleteListing)
	secured.POST("/listings/:id/images", listingHandler.AddListingImage)
	secured.GET("/host/listings", listingHandler.MyListings)

	// Reservation routes
	secured.POST("/reservations", reservationHandler.CreateReservation)
	secured.GET("/reservations", reservationHandler.MyReservations)
	secured.PUT("/reservations/:id/dates", reservationHandler.UpdateReservationDates)
	secured.PUT("/reservations/:id/status", reservationHandler.UpdateReservationStatus)
	secured.POST("/reservations/:id/cancel", reservationHandler.CancelReservation)
	secured.GET("/listings/:id/reservations", reservationHandler.ListingReservations)
	secured.GET("/host/reservations", reservationHandler.HostReservations)
	secured.DELETE("/host/reservations/:id", reservationHandler.HostCancelReservation)

	// Host application routes
	secured.POST("/host-applications", applicationHandler.SubmitApplication)
	secured.GET("/host-applications/me", applicationHandler.MyApplication)
	secured.GET("/host-applications/:id", applicationHandler.GetApplication)

	// Admin routes. Services enforce the role; the group only shapes URLs.
	admin := secured.Group("/admin")
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
	admin.POST("/users/:id/ban", adminHandler.BanUser)
	admin.GET("/listings", adminHandler.ListAllListings)
	admin.PUT("/listings/:id/status", adminHandler.UpdateListingStatus)
	admin.GET("/reservations", adminHandler.ListAllReservations)
	admin.DELETE("/reservations/:id", adminHandler.DeleteReservation)
	admin.GET("/host-applications", applicationHandler.ListApplications)
	admin.POST("/host-applications/:id/approve", applicationHandler.ApproveApplication)
	admin.POST("/host-applications/:id/reject", applicationHandler.RejectApplication)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
