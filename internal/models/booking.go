package models

import "time"

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in-progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Settable reports whether an admin may put a booking into s.
// in-progress only shows up in analytics and is never set through the API.
func (s BookingStatus) Settable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Valid reports whether s is a known status, in-progress included.
func (s BookingStatus) Valid() bool {
	return s.Settable() || s == StatusInProgress
}

type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"-"`
	BookingID   string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"bookingId"`
	CustomerID  string        `gorm:"type:varchar(16);index;not null" json:"customerId"`
	Name        string        `gorm:"not null" json:"name"`
	Email       string        `gorm:"index" json:"email,omitempty"`
	Phone       string        `gorm:"not null" json:"phone"`
	Address     string        `gorm:"not null" json:"address"`
	Service     string        `gorm:"not null" json:"service"`
	ServiceName string        `gorm:"not null" json:"serviceName"`
	VehicleType string        `json:"vehicleType,omitempty"`
	Date        string        `gorm:"type:varchar(10);not null;index:idx_booking_slot" json:"date"`
	Time        string        `gorm:"type:varchar(16);not null;index:idx_booking_slot" json:"time"`
	Notes       string        `json:"notes,omitempty"`
	PromoCode   string        `gorm:"type:varchar(32)" json:"promoCode,omitempty"`
	Discount    int           `gorm:"not null" json:"discount"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
