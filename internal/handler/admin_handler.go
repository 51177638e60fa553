package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/service"
)

// AdminHandler handles moderation endpoints. Every route it serves sits
// behind the admin route group; the services still enforce the role
// themselves.
type AdminHandler struct {
	userService        service.UserService
	listingService     service.ListingService
	reservationService service.ReservationService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService, listingService service.ListingService, reservationService service.ReservationService) *AdminHandler {
	return &AdminHandler{
		userService:        userService,
		listingService:     listingService,
		reservationService: reservationService,
	}
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListingStatusRequest represents a listing moderation request.
type ListingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	users, err := h.userService.ListUsers(c.Request().Context(), p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "Target role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRole(c.Request().Context(), id, model.Role(req.Role), p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// BanUser godoc
// @Summary Ban a user and remove their reservations and listings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/ban [post]
func (h *AdminHandler) BanUser(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.BanUser(c.Request().Context(), id, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user banned"})
}

// ListAllListings godoc
// @Summary List every listing regardless of status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Listing
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/listings [get]
func (h *AdminHandler) ListAllListings(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	listings, err := h.listingService.GetAllListings(c.Request().Context(), p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}

// UpdateListingStatus godoc
// @Summary Approve or reject a listing
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body ListingStatusRequest true "Target status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/listings/{id}/status [put]
func (h *AdminHandler) UpdateListingStatus(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ListingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.listingService.UpdateListingStatus(c.Request().Context(), id, model.ListingStatus(req.Status), p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "listing updated"})
}

// ListAllReservations godoc
// @Summary List every reservation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reservations [get]
func (h *AdminHandler) ListAllReservations(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.GetAllReservations(c.Request().Context(), p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// DeleteReservation godoc
// @Summary Permanently delete a reservation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reservations/{id} [delete]
func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.reservationService.DeleteReservation(c.Request().Context(), id, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reservation deleted"})
}
