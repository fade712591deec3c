package events

import (
	"time"

	"github.com/gollllden/Done/internal/models"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the message body published on the bookings exchange.
type BookingEvent struct {
	Type           string               `json:"type"`
	Booking        models.Booking       `json:"booking"`
	PreviousStatus models.BookingStatus `json:"previousStatus,omitempty"`
	OccurredAt     time.Time            `json:"occurredAt"`
}
