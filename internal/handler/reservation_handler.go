package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/service"
)

const dateLayout = "2006-01-02"

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents a booking request.
type CreateReservationRequest struct {
	ListingID  uint   `json:"listing_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	GuestPhone string `json:"guest_phone"`
	GuestNotes string `json:"guest_notes"`
}

// UpdateDatesRequest represents a date change request.
type UpdateDatesRequest struct {
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
}

// UpdateStatusRequest represents a status change request.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func parseDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}

// CreateReservation godoc
// @Summary Book a listing for a date range
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReservationRequest true "Reservation data"
// @Success 201 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	checkIn, checkOut, err := parseDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "dates must use YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	candidate := &model.Reservation{
		ListingID:  req.ListingID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestPhone: req.GuestPhone,
		GuestNotes: req.GuestNotes,
	}

	created, err := h.reservationService.CreateReservation(c.Request().Context(), candidate, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// MyReservations godoc
// @Summary List the acting guest's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Router /reservations [get]
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.GetReservationsByGuest(c.Request().Context(), p.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// HostReservations godoc
// @Summary List reservations against the acting host's listings
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Router /host/reservations [get]
func (h *ReservationHandler) HostReservations(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.GetReservationsByHost(c.Request().Context(), p.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListingReservations godoc
// @Summary List reservations on one listing (owner only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {array} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id}/reservations [get]
func (h *ReservationHandler) ListingReservations(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.GetReservationsByListing(c.Request().Context(), id, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reservations)
}

// UpdateReservationDates godoc
// @Summary Move a reservation to new dates
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body UpdateDatesRequest true "New dates"
// @Success 200 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations/{id}/dates [put]
func (h *ReservationHandler) UpdateReservationDates(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateDatesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	checkIn, checkOut, err := parseDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "dates must use YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	updated, err := h.reservationService.UpdateReservationDates(c.Request().Context(), id, checkIn, checkOut, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateReservationStatus godoc
// @Summary Confirm or cancel a reservation (host)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations/{id}/status [put]
func (h *ReservationHandler) UpdateReservationStatus(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := model.ReservationStatus(req.Status)
	if err := h.reservationService.UpdateReservationStatus(c.Request().Context(), id, status, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reservation updated"})
}

// CancelReservation godoc
// @Summary Cancel the acting guest's own reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.reservationService.CancelGuestReservation(c.Request().Context(), id, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reservation cancelled"})
}

// HostCancelReservation godoc
// @Summary Remove a reservation from the acting host's listing
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /host/reservations/{id} [delete]
func (h *ReservationHandler) HostCancelReservation(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.reservationService.CancelHostReservation(c.Request().Context(), id, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reservation removed"})
}
