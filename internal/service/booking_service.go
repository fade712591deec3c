package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gollllden/Done/internal/catalog"
	"github.com/gollllden/Done/internal/clock"
	"github.com/gollllden/Done/internal/dashboard"
	"github.com/gollllden/Done/internal/dto"
	"github.com/gollllden/Done/internal/events"
	"github.com/gollllden/Done/internal/metrics"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/portal"
	"github.com/gollllden/Done/internal/promo"
	"github.com/gollllden/Done/internal/repository"
	"github.com/gollllden/Done/internal/slots"
	"github.com/gollllden/Done/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidDate     = errors.New("invalid date format. Use YYYY-MM-DD")
	ErrInvalidMonth    = errors.New("invalid month format. Use YYYY-MM")
	ErrPastDate        = errors.New("cannot book dates in the past")
	ErrUnknownTime     = errors.New("time must be one of the available slots")
)

// MissingFieldError reports a required field that is empty once sanitised.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Missing required field: " + e.Field
}

// Publisher is the subset of the broker client the services need.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter dashboard.Filter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error)
	LookupCustomer(ctx context.Context, q portal.Query) ([]models.Booking, error)
	Availability(ctx context.Context, date string) ([]slots.Availability, error)
	MonthAvailability(ctx context.Context, month string) ([]slots.Day, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	promos    *promo.Validator
	slots     []slots.Definition
	publisher Publisher
	clock     clock.Clock
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// NewBookingService wires the booking use cases. publisher and m may be nil.
func NewBookingService(
	repo repository.BookingRepository,
	promos *promo.Validator,
	defs []slots.Definition,
	publisher Publisher,
	clk clock.Clock,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		promos:    promos,
		slots:     defs,
		publisher: publisher,
		clock:     clk,
		metrics:   m,
		log:       log,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
	req.Trim()
	req.Name = validation.Sanitize(req.Name)
	req.Address = validation.Sanitize(req.Address)
	req.Notes = validation.Sanitize(req.Notes)
	if field := req.MissingField(); field != "" {
		return nil, &MissingFieldError{Field: field}
	}

	date, err := time.Parse(slots.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if date.Format(slots.DateLayout) < s.today() {
		return nil, ErrPastDate
	}
	def, ok := slots.ByTime(s.slots, req.Time)
	if !ok {
		return nil, ErrUnknownTime
	}

	customerID, err := newCustomerID()
	if err != nil {
		return nil, fmt.Errorf("generate customer id: %w", err)
	}
	serviceName := req.ServiceName
	if serviceName == "" {
		serviceName = catalog.ResolveName(req.Service)
	}

	booking := &models.Booking{
		BookingID:   uuid.NewString(),
		CustomerID:  customerID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Service:     req.Service,
		ServiceName: serviceName,
		VehicleType: req.VehicleType,
		Date:        req.Date,
		Time:        def.Time,
		Notes:       req.Notes,
		PromoCode:   req.PromoCode,
		Discount:    s.promos.Discount(req.PromoCode),
		Status:      models.StatusPending,
	}

	err = s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serializes concurrent submissions for the same (date, time).
		if err := s.repo.LockSlot(ctx, tx, booking.Date, booking.Time); err != nil {
			return err
		}

		booked, err := s.repo.CountActiveInSlot(ctx, tx, booking.Date, booking.Time)
		if err != nil {
			return err
		}
		if int(booked) >= def.Capacity {
			return slots.ErrSlotFull
		}

		return s.repo.Create(ctx, tx, booking)
	})
	if err != nil {
		if errors.Is(err, slots.ErrSlotFull) {
			s.metrics.ObserveBooking("full")
			return nil, err
		}
		s.metrics.ObserveBooking("error")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.metrics.ObserveBooking("created")
	s.log.Info("booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	s.publish(ctx, events.BookingCreated, *booking, "")
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, filter dashboard.Filter) ([]models.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.Apply(bookings, filter), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	if !status.Settable() {
		return nil, ErrInvalidStatus
	}

	var (
		result   *models.Booking
		previous models.BookingStatus
	)
	err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.repo.FindByBookingIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		previous = booking.Status
		if err := s.repo.UpdateStatus(ctx, tx, bookingID, status); err != nil {
			return err
		}
		booking.Status = status
		booking.UpdatedAt = s.clock.Now()
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveStatusChange(string(status))
	s.log.Info("booking status changed",
		zap.String("booking_id", bookingID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	s.publish(ctx, events.BookingStatusChanged, *result, previous)
	return result, nil
}

func (s *bookingService) LookupCustomer(ctx context.Context, q portal.Query) ([]models.Booking, error) {
	if q.Empty() {
		return nil, portal.ErrNoCriteria
	}
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return portal.Lookup(bookings, q)
}

func (s *bookingService) Availability(ctx context.Context, date string) ([]slots.Availability, error) {
	if _, err := time.Parse(slots.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	bookings, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return slots.Compute(date, s.slots, bookings), nil
}

func (s *bookingService) MonthAvailability(ctx context.Context, month string) ([]slots.Day, error) {
	m, err := time.Parse(slots.MonthLayout, month)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	bookings, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return slots.MonthOverview(m, s.clock.Now(), s.slots, bookings), nil
}

func (s *bookingService) today() string {
	return s.clock.Now().Format(slots.DateLayout)
}

// publish never fails the caller; broker outages are logged only.
func (s *bookingService) publish(ctx context.Context, key string, b models.Booking, previous models.BookingStatus) {
	if s.publisher == nil {
		return
	}
	evt := events.BookingEvent{
		Type:           key,
		Booking:        b,
		PreviousStatus: previous,
		OccurredAt:     s.clock.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, key, evt); err != nil {
		s.log.Warn("publish booking event failed",
			zap.String("routing_key", key),
			zap.String("booking_id", b.BookingID),
			zap.Error(err),
		)
	}
}

const (
	customerLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	customerDigits  = "0123456789"
)

// newCustomerID returns "GT-" followed by three letters and three digits.
func newCustomerID() (string, error) {
	buf := []byte("GT-XXX000")
	for i := 3; i < 9; i++ {
		alphabet := customerLetters
		if i >= 6 {
			alphabet = customerDigits
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
