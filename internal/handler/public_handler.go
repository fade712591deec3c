package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gollllden/Done/internal/catalog"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/portal"
	"github.com/gollllden/Done/internal/promo"
	"github.com/gollllden/Done/internal/service"
	"github.com/gollllden/Done/internal/validation"
	"github.com/labstack/echo/v4"
)

const contactAccepted = "Thank you for your message. We will get back to you soon."

// PublicHandler serves the unauthenticated site endpoints.
type PublicHandler struct {
	bookings  service.BookingService
	status    service.StatusService
	messaging service.MessagingService
	promos    *promo.Validator
}

func NewPublicHandler(
	bookings service.BookingService,
	status service.StatusService,
	messaging service.MessagingService,
	promos *promo.Validator,
) *PublicHandler {
	return &PublicHandler{bookings: bookings, status: status, messaging: messaging, promos: promos}
}

func (h *PublicHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Root)
	g.POST("/status", h.CreateStatusCheck)
	g.GET("/status", h.ListStatusChecks)
	g.POST("/contact", h.Contact)
	g.GET("/services", h.ListServices)
	g.GET("/availability", h.Availability)
	g.GET("/availability/month", h.MonthAvailability)
	g.POST("/validate-promo", h.ValidatePromo)
	g.GET("/portal/bookings", h.PortalLookup)
}

func (h *PublicHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *PublicHandler) CreateStatusCheck(c echo.Context) error {
	var req dto.StatusCheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}

	check, err := h.status.CreateCheck(c.Request().Context(), validation.Sanitize(req.ClientName))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record status check").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.ToStatusCheckResponse(check))
}

func (h *PublicHandler) ListStatusChecks(c echo.Context) error {
	checks, err := h.status.ListChecks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load status checks").SetInternal(err)
	}

	resp := make([]dto.StatusCheckResponse, len(checks))
	for i := range checks {
		resp[i] = dto.ToStatusCheckResponse(&checks[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PublicHandler) Contact(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Name = validation.Sanitize(req.Name)
	req.Subject = validation.Sanitize(req.Subject)
	req.Message = validation.Sanitize(req.Message)
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}

	if err := h.messaging.SubmitContact(c.Request().Context(), req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit message").SetInternal(err)
	}
	return c.JSON(http.StatusAccepted, dto.AcceptedResponse{Status: "accepted", Message: contactAccepted})
}

func (h *PublicHandler) ListServices(c echo.Context) error {
	switch category := catalog.Category(c.QueryParam("category")); category {
	case "":
		return c.JSON(http.StatusOK, catalog.All())
	case catalog.CategoryCar, catalog.CategoryHome:
		return c.JSON(http.StatusOK, catalog.ByCategory(category))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "category must be car or home")
	}
}

func (h *PublicHandler) Availability(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required field: date")
	}

	avail, err := h.bookings.Availability(c.Request().Context(), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load availability").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.AvailabilityResponse{Date: date, Slots: avail})
}

func (h *PublicHandler) MonthAvailability(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	if month == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required field: month")
	}

	days, err := h.bookings.MonthAvailability(c.Request().Context(), month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month format. Use YYYY-MM")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load availability").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.MonthAvailabilityResponse{Month: month, Days: days})
}

// ValidatePromo always answers 200; validity is in the body.
func (h *PublicHandler) ValidatePromo(c echo.Context) error {
	var req dto.PromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, h.promos.Validate(req.PromoCode))
}

func (h *PublicHandler) PortalLookup(c echo.Context) error {
	q := portal.Query{Email: c.QueryParam("email"), Phone: c.QueryParam("phone")}

	bookings, err := h.bookings.LookupCustomer(c.Request().Context(), q)
	if err != nil {
		if errors.Is(err, portal.ErrNoCriteria) {
			return echo.NewHTTPError(http.StatusBadRequest, "Please provide an email or phone number")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to look up bookings").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}
