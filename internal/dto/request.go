package dto

import "strings"

type CreateBookingRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required,phone"`
	Address     string `json:"address" validate:"required"`
	Service     string `json:"service" validate:"required"`
	Date        string `json:"date" validate:"required,ymd"`
	Time        string `json:"time" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	ServiceName string `json:"serviceName,omitempty"`
	VehicleType string `json:"vehicleType,omitempty"`
	Notes       string `json:"notes,omitempty"`
	PromoCode   string `json:"promoCode,omitempty"`
}

// Trim removes surrounding whitespace so blank fields fail "required".
func (r *CreateBookingRequest) Trim() {
	for _, f := range []*string{
		&r.Name, &r.Phone, &r.Address, &r.Service, &r.Date, &r.Time,
		&r.Email, &r.ServiceName, &r.VehicleType, &r.Notes, &r.PromoCode,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// MissingField returns the json name of the first empty required field.
func (r *CreateBookingRequest) MissingField() string {
	required := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"phone", r.Phone},
		{"address", r.Address},
		{"service", r.Service},
		{"date", r.Date},
		{"time", r.Time},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.name
		}
	}
	return ""
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type StatusCheckRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type SendMessageRequest struct {
	ToEmail    string `json:"to_email" validate:"required,email"`
	ToName     string `json:"to_name"`
	Subject    string `json:"subject" validate:"required"`
	Message    string `json:"message" validate:"required"`
	CustomerID string `json:"customer_id,omitempty"`
}

type PromoRequest struct {
	PromoCode string `json:"promoCode"`
}

type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}
