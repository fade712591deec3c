package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gollllden/Done/internal/auth"
	"github.com/gollllden/Done/internal/campaign"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/metrics"
	"github.com/gollllden/Done/internal/notify"
	"github.com/gollllden/Done/internal/service"
	"github.com/gollllden/Done/internal/validation"
	"github.com/labstack/echo/v4"
)

// Authenticator is implemented by auth.Authenticator.
type Authenticator interface {
	Login(ctx context.Context, ip, password string) (string, time.Time, error)
}

// CampaignTrigger is implemented by campaign.Runner.
type CampaignTrigger interface {
	Trigger(kind notify.CampaignKind) error
}

type AdminHandler struct {
	auth      Authenticator
	admin     service.AdminService
	messaging service.MessagingService
	campaigns CampaignTrigger
	metrics   *metrics.Metrics
}

func NewAdminHandler(
	authenticator Authenticator,
	admin service.AdminService,
	messaging service.MessagingService,
	campaigns CampaignTrigger,
	m *metrics.Metrics,
) *AdminHandler {
	return &AdminHandler{
		auth:      authenticator,
		admin:     admin,
		messaging: messaging,
		campaigns: campaigns,
		metrics:   m,
	}
}

// RegisterRoutes mounts login publicly and guards everything else with
// requireAdmin.
func (h *AdminHandler) RegisterRoutes(api *echo.Group, requireAdmin echo.MiddlewareFunc) {
	api.POST("/admin/login", h.Login)

	api.GET("/admin/bookings/grouped", h.Grouped, requireAdmin)
	api.GET("/admin/calendar", h.Calendar, requireAdmin)
	api.GET("/admin/analytics", h.Analytics, requireAdmin)
	api.POST("/send-message", h.SendMessage, requireAdmin)
	api.POST("/campaigns/trigger", h.TriggerCampaign, requireAdmin)
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req dto.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, exp, err := h.auth.Login(c.Request().Context(), c.RealIP(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPassword):
			h.metrics.ObserveLogin("invalid")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, auth.ErrBlocked):
			h.metrics.ObserveLogin("blocked")
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many failed login attempts. Try again later.")
		case errors.Is(err, auth.ErrNotConfigured):
			h.metrics.ObserveLogin("disabled")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Admin login is not configured")
		default:
			h.metrics.ObserveLogin("error")
			return echo.NewHTTPError(http.StatusInternalServerError, "Login failed").SetInternal(err)
		}
	}

	h.metrics.ObserveLogin("success")
	return c.JSON(http.StatusOK, dto.LoginResponse{Success: true, Token: token, ExpiresAt: exp})
}

func (h *AdminHandler) Grouped(c echo.Context) error {
	groups, err := h.admin.Grouped(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load bookings").SetInternal(err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h *AdminHandler) Calendar(c echo.Context) error {
	days, err := h.admin.Calendar(c.Request().Context(), strings.TrimSpace(c.QueryParam("month")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid month format. Use YYYY-MM")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load calendar").SetInternal(err)
	}
	return c.JSON(http.StatusOK, days)
}

func (h *AdminHandler) Analytics(c echo.Context) error {
	a, err := h.admin.Analytics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute analytics").SetInternal(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AdminHandler) SendMessage(c echo.Context) error {
	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.ToEmail = strings.TrimSpace(req.ToEmail)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Message(err))
	}

	if err := h.messaging.SendMessage(c.Request().Context(), req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to send email").SetInternal(err)
	}
	return c.JSON(http.StatusOK, dto.SendMessageResponse{Success: true, Message: "Email sent successfully"})
}

func (h *AdminHandler) TriggerCampaign(c echo.Context) error {
	kind := notify.CampaignKind(strings.ToLower(strings.TrimSpace(c.QueryParam("campaign_type"))))
	if err := h.campaigns.Trigger(kind); err != nil {
		if errors.Is(err, campaign.ErrInvalidKind) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid campaign type. Use 'monday' or 'friday'")
		}
		if errors.Is(err, campaign.ErrRunning) {
			return echo.NewHTTPError(http.StatusConflict, "A campaign is already running")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start campaign").SetInternal(err)
	}
	return c.JSON(http.StatusAccepted, dto.CampaignResponse{
		Status:       "started",
		CampaignType: string(kind),
		Message:      "Campaign is being sent in the background",
	})
}
