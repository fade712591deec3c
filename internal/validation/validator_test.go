package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
	Date  string `json:"date" validate:"required,ymd"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidate_Messages(t *testing.T) {
	v := New()
	valid := sample{Name: "Ama", Phone: "(403) 555-0199", Date: "2026-03-01"}

	assert.NoError(t, v.Validate(valid))

	tests := []struct {
		name   string
		mutate func(s *sample)
		want   string
	}{
		{"missing name", func(s *sample) { s.Name = "" }, "Missing required field: name"},
		{"bad phone", func(s *sample) { s.Phone = "12345" }, "Invalid phone number format"},
		{"bad date", func(s *sample) { s.Date = "03/01/2026" }, "Invalid date format. Use YYYY-MM-DD"},
		{"bad email", func(s *sample) { s.Email = "not-an-email" }, "Invalid email format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := v.Validate(s)
			assert.Error(t, err)
			assert.Equal(t, tt.want, Message(err))
		})
	}
}

func TestMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "invalid request body", Message(errors.New("boom")))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+1 (403) 555-0199"))
	assert.True(t, ValidPhone("4035550199"))
	assert.False(t, ValidPhone("0403555019"))
	assert.False(t, ValidPhone("555-0199"))
	assert.False(t, ValidPhone("+1403555019912345"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", Sanitize(`<script>alert(1)</script>`))
	assert.Equal(t, "click alert(1)", Sanitize(`click JavaScript:alert(1)`))
	assert.Equal(t, "img src=x  alert(1)", Sanitize(`<img src=x onerror= alert(1)>`))
	assert.Equal(t, "12 Main St", Sanitize("  12 Main St "))
}
