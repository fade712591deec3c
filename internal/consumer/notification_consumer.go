package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gollllden/Done/internal/events"
	"github.com/gollllden/Done/internal/metrics"
	"github.com/gollllden/Done/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

// NotificationConsumer turns booking events into customer and business emails.
type NotificationConsumer struct {
	sender        notify.EmailSender
	templates     *notify.Templates
	businessEmail string
	metrics       *metrics.Metrics
	log           *zap.Logger
}

func NewNotificationConsumer(
	sender notify.EmailSender,
	templates *notify.Templates,
	businessEmail string,
	m *metrics.Metrics,
	log *zap.Logger,
) *NotificationConsumer {
	return &NotificationConsumer{
		sender:        sender,
		templates:     templates,
		businessEmail: businessEmail,
		metrics:       m,
		log:           log,
	}
}

// Start handles deliveries until msgs is closed. done is closed afterwards.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		nc.log.Info("delivery channel closed, stopping notification consumer")
	}()
	return done
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var evt events.BookingEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		nc.log.Error("discarding malformed booking event", zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	switch evt.Type {
	case events.BookingCreated:
		nc.notifyCreated(ctx, evt)
	case events.BookingStatusChanged:
		nc.log.Info("booking status changed",
			zap.String("booking_id", evt.Booking.BookingID),
			zap.String("from", string(evt.PreviousStatus)),
			zap.String("to", string(evt.Booking.Status)),
		)
	default:
		nc.log.Debug("ignoring booking event", zap.String("type", evt.Type))
	}

	// Email failures are logged, not redelivered.
	_ = msg.Ack(false)
}

func (nc *NotificationConsumer) notifyCreated(ctx context.Context, evt events.BookingEvent) {
	b := evt.Booking
	log := nc.log.With(zap.String("booking_id", b.BookingID))

	if confirmation, err := nc.templates.BookingConfirmation(b); err == nil {
		nc.send(ctx, log, "confirmation", confirmation)
	} else if !errors.Is(err, notify.ErrNoRecipient) {
		log.Error("render confirmation failed", zap.Error(err))
	}

	if business, err := nc.templates.BusinessNotification(b, nc.businessEmail); err == nil {
		nc.send(ctx, log, "business", business)
	} else if !errors.Is(err, notify.ErrNoRecipient) {
		log.Error("render business notification failed", zap.Error(err))
	}
}

func (nc *NotificationConsumer) send(ctx context.Context, log *zap.Logger, kind string, msg notify.EmailMessage) {
	err := nc.sender.Send(ctx, msg)
	nc.metrics.ObserveEmail(kind, err)
	if err != nil {
		log.Error("send email failed", zap.String("kind", kind), zap.String("to", msg.To), zap.Error(err))
		return
	}
	log.Info("email sent", zap.String("kind", kind), zap.String("to", msg.To))
}
