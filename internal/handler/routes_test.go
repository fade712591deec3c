package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gollllden/Done/internal/auth"
	"github.com/gollllden/Done/internal/clock"
	"github.com/gollllden/Done/internal/dashboard"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/middleware"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	tokens := auth.NewTokenIssuer("route-secret", time.Hour, clock.NewSystem())
	token, _, err := tokens.Issue(auth.AdminSubject)
	require.NoError(t, err)

	bookings := &mockBookingService{
		createFn: func(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
			return &models.Booking{BookingID: "b-1", Name: req.Name, Status: models.StatusPending}, nil
		},
		getFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return &models.Booking{BookingID: id}, nil
		},
		listFn: func(ctx context.Context, f dashboard.Filter) ([]models.Booking, error) {
			return []models.Booking{}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, s models.BookingStatus) (*models.Booking, error) {
			return &models.Booking{BookingID: id, Status: s}, nil
		},
	}
	admin := &mockAdminService{
		analyticsFn: func(ctx context.Context) (dashboard.Analytics, error) {
			return dashboard.Analyze(nil), nil
		},
	}

	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(zap.NewNop())
	api := e.Group("/api")
	requireAdmin := middleware.AdminAuth(tokens)
	newPublic(bookings, nil, nil).RegisterRoutes(api)
	NewBookingHandler(bookings).RegisterRoutes(api, requireAdmin)
	NewAdminHandler(nil, admin, nil, nil, nil).RegisterRoutes(api, requireAdmin)
	return e, token
}

func serve(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_AdminSplit(t *testing.T) {
	e, token := newRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		token  string
		code   int
	}{
		{"list requires admin", http.MethodGet, "/api/bookings", "", "", http.StatusUnauthorized},
		{"status requires admin", http.MethodPut, "/api/bookings/b-1/status", `{"status":"confirmed"}`, "", http.StatusUnauthorized},
		{"analytics requires admin", http.MethodGet, "/api/admin/analytics", "", "", http.StatusUnauthorized},
		{"bad token rejected", http.MethodGet, "/api/bookings", "", "not-a-jwt", http.StatusUnauthorized},
		{"create is public", http.MethodPost, "/api/bookings", validBookingBody, "", http.StatusCreated},
		{"get is public", http.MethodGet, "/api/bookings/b-1", "", "", http.StatusOK},
		{"list with token", http.MethodGet, "/api/bookings", "", token, http.StatusOK},
		{"status with token", http.MethodPut, "/api/bookings/b-1/status", `{"status":"confirmed"}`, token, http.StatusOK},
		{"analytics with token", http.MethodGet, "/api/admin/analytics", "", token, http.StatusOK},
		{"unknown api path", http.MethodGet, "/api/nope", "", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body, tt.token)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}
