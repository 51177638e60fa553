package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/service"
)

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// ListingRequest represents a create/update listing request.
type ListingRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PricePerNight string `json:"price_per_night" validate:"required"`
	MaxGuests     int    `json:"max_guests" validate:"required,min=1"`
	Beds          int    `json:"beds" validate:"min=0"`
	Bathrooms     int    `json:"bathrooms" validate:"min=0"`
}

// AddImageRequest represents an image attachment request.
type AddImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func (r *ListingRequest) toModel() (*model.Listing, error) {
	price, err := decimal.NewFromString(r.PricePerNight)
	if err != nil {
		return nil, err
	}
	return &model.Listing{
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		City:          r.City,
		PricePerNight: price,
		MaxGuests:     r.MaxGuests,
		Beds:          r.Beds,
		Bathrooms:     r.Bathrooms,
	}, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// ListListings godoc
// @Summary List approved listings
// @Tags listings
// @Produce json
// @Success 200 {array} model.Listing
// @Router /listings [get]
func (h *ListingHandler) ListListings(c echo.Context) error {
	listings, err := h.listingService.GetApprovedListings(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}

// GetListing godoc
// @Summary Get listing by id
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	listing, err := h.listingService.GetListing(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listing)
}

// CreateListing godoc
// @Summary Create a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListingRequest true "Listing data"
// @Success 201 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price_per_night",
			Code:  "INVALID_PRICE",
		})
	}

	created, err := h.listingService.CreateListing(c.Request().Context(), listing, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateListing godoc
// @Summary Update a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body ListingRequest true "Listing data"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price_per_night",
			Code:  "INVALID_PRICE",
		})
	}
	listing.ID = id

	updated, err := h.listingService.UpdateListing(c.Request().Context(), listing, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteListing godoc
// @Summary Delete a listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.listingService.DeleteListing(c.Request().Context(), id, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "listing deleted"})
}

// AddListingImage godoc
// @Summary Attach an image to a listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body AddImageRequest true "Image URL"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id}/images [post]
func (h *ListingHandler) AddListingImage(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AddImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.listingService.AddListingImage(c.Request().Context(), id, req.URL, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "image added"})
}

// MyListings godoc
// @Summary List the acting host's listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Listing
// @Router /host/listings [get]
func (h *ListingHandler) MyListings(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	listings, err := h.listingService.GetListingsByHost(c.Request().Context(), p.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}
