package service

import (
	"context"
	"time"

	"github.com/gollllden/Done/internal/clock"
	"github.com/gollllden/Done/internal/dashboard"
	"github.com/gollllden/Done/internal/repository"
	"github.com/gollllden/Done/internal/slots"
)

type AdminService interface {
	Grouped(ctx context.Context) ([]dashboard.DayGroup, error)
	Calendar(ctx context.Context, month string) ([]dashboard.CalendarDay, error)
	Analytics(ctx context.Context) (dashboard.Analytics, error)
}

type adminService struct {
	repo  repository.BookingRepository
	clock clock.Clock
}

func NewAdminService(repo repository.BookingRepository, clk clock.Clock) AdminService {
	return &adminService{repo: repo, clock: clk}
}

func (s *adminService) Grouped(ctx context.Context) ([]dashboard.DayGroup, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.GroupByDay(bookings, s.clock.Now()), nil
}

// Calendar defaults to the current month when month is empty.
func (s *adminService) Calendar(ctx context.Context, month string) ([]dashboard.CalendarDay, error) {
	var m time.Time
	if month == "" {
		m = s.clock.Now()
		month = m.Format(slots.MonthLayout)
	} else {
		parsed, err := time.Parse(slots.MonthLayout, month)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		m = parsed
	}

	bookings, err := s.repo.FindByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return dashboard.Calendar(bookings, m), nil
}

func (s *adminService) Analytics(ctx context.Context) (dashboard.Analytics, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		return dashboard.Analytics{}, err
	}
	return dashboard.Analyze(bookings), nil
}
