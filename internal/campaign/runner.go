package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gollllden/Done/internal/metrics"
	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/notify"
	"go.uber.org/zap"
)

const (
	DefaultPace = 500 * time.Millisecond
	defaultName = "Valued Customer"
)

var (
	ErrInvalidKind = errors.New("invalid campaign type, use 'monday' or 'friday'")
	ErrRunning     = errors.New("a campaign is already running")
)

// BookingSource is satisfied by repository.BookingRepository.
type BookingSource interface {
	FindWithEmail(ctx context.Context) ([]models.Booking, error)
}

type Recipient struct {
	Email string
	Name  string
}

type Result struct {
	Kind   notify.CampaignKind
	Sent   int
	Failed int
}

type Runner struct {
	source    BookingSource
	sender    notify.EmailSender
	templates *notify.Templates
	pace      time.Duration
	metrics   *metrics.Metrics
	log       *zap.Logger

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// NewRunner builds a campaign runner that waits pace between messages.
func NewRunner(
	source BookingSource,
	sender notify.EmailSender,
	templates *notify.Templates,
	pace time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) *Runner {
	return &Runner{
		source:    source,
		sender:    sender,
		templates: templates,
		pace:      pace,
		metrics:   m,
		log:       log,
	}
}

// Recipients dedupes bookings by email, case-insensitively, keeping the first
// name seen for each address.
func Recipients(bookings []models.Booking) []Recipient {
	seen := make(map[string]bool)
	var out []Recipient
	for _, b := range bookings {
		email := strings.TrimSpace(b.Email)
		key := strings.ToLower(email)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		name := strings.TrimSpace(b.Name)
		if name == "" {
			name = defaultName
		}
		out = append(out, Recipient{Email: email, Name: name})
	}
	return out
}

// Run sends kind to every customer with an email on file. Individual send
// failures are counted, not returned.
func (r *Runner) Run(ctx context.Context, kind notify.CampaignKind) (Result, error) {
	if !kind.Valid() {
		return Result{}, ErrInvalidKind
	}
	if !r.begin() {
		return Result{}, ErrRunning
	}
	defer r.end()
	return r.send(ctx, kind)
}

// send does the work of Run; the caller holds the running flag.
func (r *Runner) send(ctx context.Context, kind notify.CampaignKind) (Result, error) {
	bookings, err := r.source.FindWithEmail(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load campaign recipients: %w", err)
	}
	recipients := Recipients(bookings)
	r.log.Info("campaign started", zap.String("kind", string(kind)), zap.Int("recipients", len(recipients)))

	res := Result{Kind: kind}
	for i, rc := range recipients {
		if i > 0 && r.pace > 0 {
			select {
			case <-ctx.Done():
				r.log.Warn("campaign interrupted", zap.Int("sent", res.Sent), zap.Int("failed", res.Failed))
				return res, ctx.Err()
			case <-time.After(r.pace):
			}
		}

		msg, err := r.templates.Campaign(kind, rc.Email, rc.Name)
		if err == nil {
			err = r.sender.Send(ctx, msg)
		}
		r.metrics.ObserveEmail("campaign_"+string(kind), err)
		if err != nil {
			res.Failed++
			r.log.Warn("campaign email failed", zap.String("to", rc.Email), zap.Error(err))
			continue
		}
		res.Sent++
	}

	r.log.Info("campaign finished",
		zap.String("kind", string(kind)),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// Trigger starts a run in the background and returns immediately. It fails
// with ErrRunning while another campaign is still being sent.
func (r *Runner) Trigger(kind notify.CampaignKind) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if !r.begin() {
		return ErrRunning
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.end()
		if _, err := r.send(context.Background(), kind); err != nil {
			r.log.Error("campaign failed", zap.String("kind", string(kind)), zap.Error(err))
		}
	}()
	return nil
}

// Wait blocks until triggered campaigns have finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	return true
}

func (r *Runner) end() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}
