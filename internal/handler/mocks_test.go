package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gollllden/Done/internal/dashboard"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/notify"
	"github.com/gollllden/Done/internal/portal"
	"github.com/gollllden/Done/internal/slots"
	"github.com/gollllden/Done/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn       func(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error)
	getFn          func(ctx context.Context, id string) (*models.Booking, error)
	listFn         func(ctx context.Context, f dashboard.Filter) ([]models.Booking, error)
	updateStatusFn func(ctx context.Context, id string, s models.BookingStatus) (*models.Booking, error)
	lookupFn       func(ctx context.Context, q portal.Query) ([]models.Booking, error)
	availabilityFn func(ctx context.Context, date string) ([]slots.Availability, error)
	monthFn        func(ctx context.Context, month string) ([]slots.Day, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
	return m.createFn(ctx, req)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context, f dashboard.Filter) ([]models.Booking, error) {
	return m.listFn(ctx, f)
}
func (m *mockBookingService) UpdateStatus(ctx context.Context, id string, s models.BookingStatus) (*models.Booking, error) {
	return m.updateStatusFn(ctx, id, s)
}
func (m *mockBookingService) LookupCustomer(ctx context.Context, q portal.Query) ([]models.Booking, error) {
	return m.lookupFn(ctx, q)
}
func (m *mockBookingService) Availability(ctx context.Context, date string) ([]slots.Availability, error) {
	return m.availabilityFn(ctx, date)
}
func (m *mockBookingService) MonthAvailability(ctx context.Context, month string) ([]slots.Day, error) {
	return m.monthFn(ctx, month)
}

// --- Mock StatusService ---

type mockStatusService struct {
	createFn func(ctx context.Context, name string) (*models.StatusCheck, error)
	listFn   func(ctx context.Context) ([]models.StatusCheck, error)
}

func (m *mockStatusService) CreateCheck(ctx context.Context, name string) (*models.StatusCheck, error) {
	return m.createFn(ctx, name)
}
func (m *mockStatusService) ListChecks(ctx context.Context) ([]models.StatusCheck, error) {
	return m.listFn(ctx)
}

// --- Mock MessagingService ---

type mockMessaging struct {
	sendFn    func(ctx context.Context, req dto.SendMessageRequest) error
	contactFn func(ctx context.Context, req dto.ContactRequest) error
}

func (m *mockMessaging) SendMessage(ctx context.Context, req dto.SendMessageRequest) error {
	return m.sendFn(ctx, req)
}
func (m *mockMessaging) SubmitContact(ctx context.Context, req dto.ContactRequest) error {
	return m.contactFn(ctx, req)
}
func (m *mockMessaging) Wait() {}

// --- Mock AdminService ---

type mockAdminService struct {
	groupedFn   func(ctx context.Context) ([]dashboard.DayGroup, error)
	calendarFn  func(ctx context.Context, month string) ([]dashboard.CalendarDay, error)
	analyticsFn func(ctx context.Context) (dashboard.Analytics, error)
}

func (m *mockAdminService) Grouped(ctx context.Context) ([]dashboard.DayGroup, error) {
	return m.groupedFn(ctx)
}
func (m *mockAdminService) Calendar(ctx context.Context, month string) ([]dashboard.CalendarDay, error) {
	return m.calendarFn(ctx, month)
}
func (m *mockAdminService) Analytics(ctx context.Context) (dashboard.Analytics, error) {
	return m.analyticsFn(ctx)
}

// --- Mock Authenticator / CampaignTrigger ---

type mockAuth struct {
	loginFn func(ctx context.Context, ip, password string) (string, time.Time, error)
}

func (m *mockAuth) Login(ctx context.Context, ip, password string) (string, time.Time, error) {
	return m.loginFn(ctx, ip, password)
}

type mockTrigger struct {
	triggerFn func(kind notify.CampaignKind) error
}

func (m *mockTrigger) Trigger(kind notify.CampaignKind) error {
	return m.triggerFn(kind)
}

// --- Helpers ---

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	assert.Equal(t, code, he.Code)
	if msg != "" {
		assert.Equal(t, msg, he.Message)
	}
}
