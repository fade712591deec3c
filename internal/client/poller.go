package client

import (
	"context"
	"time"

	"github.com/gollllden/Done/internal/dto"
	"go.uber.org/zap"
)

const DefaultPollInterval = 30 * time.Second

// BookingLister is satisfied by *Client.
type BookingLister interface {
	ListBookings(ctx context.Context) ([]dto.BookingResponse, error)
}

// Poller refetches the booking list on an interval and reports bookings that
// appeared since the previous fetch whenever the total grew.
type Poller struct {
	source   BookingLister
	interval time.Duration
	onNew    func([]dto.BookingResponse)
	log      *zap.Logger

	primed    bool
	lastCount int
	seen      map[string]bool
}

func NewPoller(source BookingLister, interval time.Duration, onNew func([]dto.BookingResponse), log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		source:   source,
		interval: interval,
		onNew:    onNew,
		log:      log,
		seen:     make(map[string]bool),
	}
}

// Poll performs one fetch. The first successful fetch only sets the baseline.
func (p *Poller) Poll(ctx context.Context) ([]dto.BookingResponse, error) {
	bookings, err := p.source.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	var fresh []dto.BookingResponse
	for _, b := range bookings {
		if !p.seen[b.BookingID] {
			p.seen[b.BookingID] = true
			fresh = append(fresh, b)
		}
	}

	grew := p.primed && len(bookings) > p.lastCount
	p.primed = true
	p.lastCount = len(bookings)
	if !grew {
		return nil, nil
	}
	return fresh, nil
}

// Run polls until ctx is cancelled. Fetch errors are logged and retried on
// the next tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	fresh, err := p.Poll(ctx)
	if err != nil {
		p.log.Warn("poll bookings failed", zap.Error(err))
		return
	}
	if len(fresh) > 0 && p.onNew != nil {
		p.onNew(fresh)
	}
}
