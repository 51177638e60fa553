package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/service"
)

// HostApplicationHandler handles host application endpoints.
type HostApplicationHandler struct {
	applicationService service.HostApplicationService
}

// NewHostApplicationHandler creates a new host application handler.
func NewHostApplicationHandler(applicationService service.HostApplicationService) *HostApplicationHandler {
	return &HostApplicationHandler{applicationService: applicationService}
}

// SubmitApplicationRequest represents a host application submission.
type SubmitApplicationRequest struct {
	About string `json:"about" validate:"required,min=10,max=2000"`
}

// ReviewApplicationRequest carries optional reviewer notes.
type ReviewApplicationRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// SubmitApplication godoc
// @Summary Apply to become a host
// @Tags host-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitApplicationRequest true "Application data"
// @Success 201 {object} model.HostApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /host-applications [post]
func (h *HostApplicationHandler) SubmitApplication(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	application, err := h.applicationService.SubmitApplication(c.Request().Context(), req.About, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, application)
}

// MyApplication godoc
// @Summary Get the acting user's host application
// @Tags host-applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.HostApplication
// @Failure 404 {object} errors.ErrorResponse
// @Router /host-applications/me [get]
func (h *HostApplicationHandler) MyApplication(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	application, err := h.applicationService.GetOwnApplication(c.Request().Context(), p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, application)
}

// GetApplication godoc
// @Summary Get a host application by id
// @Tags host-applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} model.HostApplication
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /host-applications/{id} [get]
func (h *HostApplicationHandler) GetApplication(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	application, err := h.applicationService.GetApplication(c.Request().Context(), id, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, application)
}

// ListApplications godoc
// @Summary List host applications, optionally filtered by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Application status filter"
// @Success 200 {array} model.HostApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/host-applications [get]
func (h *HostApplicationHandler) ListApplications(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	status := model.ApplicationStatus(c.QueryParam("status"))
	applications, err := h.applicationService.ListApplications(c.Request().Context(), status, p)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, applications)
}

// ApproveApplication godoc
// @Summary Approve a pending host application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body ReviewApplicationRequest false "Reviewer notes"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/host-applications/{id}/approve [post]
func (h *HostApplicationHandler) ApproveApplication(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ReviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.applicationService.ApproveApplication(c.Request().Context(), id, req.Notes, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "application approved"})
}

// RejectApplication godoc
// @Summary Reject a pending host application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body ReviewApplicationRequest false "Reviewer notes"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/host-applications/{id}/reject [post]
func (h *HostApplicationHandler) RejectApplication(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ReviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.applicationService.RejectApplication(c.Request().Context(), id, req.Notes, p); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "application rejected"})
}
