package dto

import (
	"time"

	"github.com/gollllden/Done/internal/models"
	"github.com/gollllden/Done/internal/slots"
)

type BookingResponse struct {
	BookingID   string               `json:"bookingId"`
	CustomerID  string               `json:"customerId"`
	Name        string               `json:"name"`
	Email       string               `json:"email,omitempty"`
	Phone       string               `json:"phone"`
	Address     string               `json:"address"`
	Service     string               `json:"service"`
	ServiceName string               `json:"serviceName"`
	VehicleType string               `json:"vehicleType,omitempty"`
	Date        string               `json:"date"`
	Time        string               `json:"time"`
	Notes       string               `json:"notes,omitempty"`
	PromoCode   string               `json:"promoCode,omitempty"`
	Discount    int                  `json:"discount"`
	Status      models.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		BookingID:   b.BookingID,
		CustomerID:  b.CustomerID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		Service:     b.Service,
		ServiceName: b.ServiceName,
		VehicleType: b.VehicleType,
		Date:        b.Date,
		Time:        b.Time,
		Notes:       b.Notes,
		PromoCode:   b.PromoCode,
		Discount:    b.Discount,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

// ToBooking rebuilds a model from its wire form, for callers that only
// see the API.
func (r BookingResponse) ToBooking() models.Booking {
	return models.Booking{
		BookingID:   r.BookingID,
		CustomerID:  r.CustomerID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Service:     r.Service,
		ServiceName: r.ServiceName,
		VehicleType: r.VehicleType,
		Date:        r.Date,
		Time:        r.Time,
		Notes:       r.Notes,
		PromoCode:   r.PromoCode,
		Discount:    r.Discount,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type StatusCheckResponse struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

func ToStatusCheckResponse(s *models.StatusCheck) StatusCheckResponse {
	return StatusCheckResponse{ID: s.ID, ClientName: s.ClientName, Timestamp: s.Timestamp}
}

type AvailabilityResponse struct {
	Date  string               `json:"date"`
	Slots []slots.Availability `json:"slots"`
}

type MonthAvailabilityResponse struct {
	Month string      `json:"month"`
	Days  []slots.Day `json:"days"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AcceptedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CampaignResponse struct {
	Status       string `json:"status"`
	CampaignType string `json:"campaign_type"`
	Message      string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
