package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gollllden/Done/internal/catalog"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/portal"
	"github.com/gollllden/Done/internal/promo"
	"github.com/gollllden/Done/internal/slots"
)

const (
	defaultTimeout = 15 * time.Second
	submitFallback = "Failed to submit booking. Please try again."
)

var ErrNotLoggedIn = errors.New("admin token required, call Login first")

// MissingFieldError is returned before any request is sent when a required
// booking field is empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

// APIError carries the server's {"message": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the booking API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges the admin password for a token kept on the client.
func (c *Client) Login(ctx context.Context, password string) error {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", dto.AdminLoginRequest{Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Services(ctx context.Context, category catalog.Category) ([]catalog.Service, error) {
	path := "/api/services"
	if category != "" {
		path += "?category=" + url.QueryEscape(string(category))
	}
	var out []catalog.Service
	return out, c.do(ctx, http.MethodGet, path, nil, &out)
}

// SubmitBooking validates required fields locally, then posts the booking.
// Server failures surface the server's message, or a generic one when the
// body carries none.
func (c *Client) SubmitBooking(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	req.Trim()
	if field := req.MissingField(); field != "" {
		return nil, &MissingFieldError{Field: field}
	}

	var out dto.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookings", req, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message == "" {
			apiErr.Message = submitFallback
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBooking(ctx context.Context, bookingID string) (*dto.BookingResponse, error) {
	var out dto.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(bookingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBookings fetches every booking, newest first. Requires Login.
func (c *Client) ListBookings(ctx context.Context) ([]dto.BookingResponse, error) {
	if c.token == "" {
		return nil, ErrNotLoggedIn
	}
	var out []dto.BookingResponse
	return out, c.do(ctx, http.MethodGet, "/api/bookings", nil, &out)
}

// LookupBookings filters the full list locally with the portal rules.
func (c *Client) LookupBookings(ctx context.Context, q portal.Query) ([]models.Booking, error) {
	if q.Empty() {
		return nil, portal.ErrNoCriteria
	}
	all, err := c.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, len(all))
	for i, b := range all {
		bookings[i] = b.ToBooking()
	}
	return portal.Lookup(bookings, q)
}

func (c *Client) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*dto.BookingResponse, error) {
	if c.token == "" {
		return nil, ErrNotLoggedIn
	}
	var out dto.BookingResponse
	path := "/api/bookings/" + url.PathEscape(bookingID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, dto.UpdateStatusRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Availability(ctx context.Context, date string) ([]slots.Availability, error) {
	var out dto.AvailabilityResponse
	if err := c.do(ctx, http.MethodGet, "/api/availability?date="+url.QueryEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// SelectSlot refreshes availability for date and refuses a full slot.
func (c *Client) SelectSlot(ctx context.Context, date, slotID string) (slots.Availability, error) {
	avail, err := c.Availability(ctx, date)
	if err != nil {
		return slots.Availability{}, err
	}
	return slots.Select(avail, slotID)
}

func (c *Client) ValidatePromo(ctx context.Context, code string) (promo.Status, error) {
	var out promo.Status
	return out, c.do(ctx, http.MethodPost, "/api/validate-promo", dto.PromoRequest{PromoCode: code}, &out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
