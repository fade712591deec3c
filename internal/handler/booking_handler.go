package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gollllden/Done/internal/dashboard"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/service"
	"github.com/gollllden/Done/internal/slots"
	"github.com/gollllden/Done/internal/validation"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes mounts the public booking routes on api. Listing and status
// changes go through requireAdmin.
func (h *BookingHandler) RegisterRoutes(api *echo.Group, requireAdmin echo.MiddlewareFunc) {
	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings/:id", h.GetBooking)

	api.GET("/bookings", h.ListBookings, requireAdmin)
	api.PUT("/bookings/:id/status", h.UpdateStatus, requireAdmin)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Trim()
	req.Name = validation.Sanitize(req.Name)
	req.Address = validation.Sanitize(req.Address)
	req.Notes = validation.Sanitize(req.Notes)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), req)
	if err != nil {
		var missing *service.MissingFieldError
		switch {
		case errors.As(err, &missing):
			return echo.NewHTTPError(http.StatusBadRequest, missing.Error())
		case errors.Is(err, slots.ErrSlotFull):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPastDate):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot book dates in the past")
		case errors.Is(err, service.ErrInvalidDate):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		case errors.Is(err, service.ErrUnknownTime):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create booking").SetInternal(err)
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load booking").SetInternal(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	filter := dashboard.Filter{
		Status: c.QueryParam("status"),
		Query:  c.QueryParam("q"),
	}
	if s := strings.TrimSpace(filter.Status); s != "" && s != dashboard.StatusAll && !models.BookingStatus(s).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load bookings").SetInternal(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), models.BookingStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status. Use pending, confirmed, completed or cancelled")
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Booking not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update status").SetInternal(err)
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
