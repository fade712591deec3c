package portal

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/gollllden/Done/internal/models"
)

var ErrNoCriteria = errors.New("please provide an email or phone number")

type Query struct {
	Email string
	Phone string
}

func (q Query) normalized() (email, phone string) {
	return strings.ToLower(strings.TrimSpace(q.Email)), Digits(q.Phone)
}

func (q Query) Empty() bool {
	email, phone := q.normalized()
	return email == "" && phone == ""
}

// Match reports whether b belongs to the customer described by q: the email
// is a case-insensitive substring, or the phone digits are a substring of the
// booking's phone digits.
func Match(b models.Booking, q Query) bool {
	email, phone := q.normalized()
	if email != "" && strings.Contains(strings.ToLower(b.Email), email) {
		return true
	}
	if phone != "" && strings.Contains(Digits(b.Phone), phone) {
		return true
	}
	return false
}

// Lookup returns the matching bookings, newest first.
func Lookup(bookings []models.Booking, q Query) ([]models.Booking, error) {
	if q.Empty() {
		return nil, ErrNoCriteria
	}
	out := make([]models.Booking, 0)
	for _, b := range bookings {
		if Match(b, q) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func Digits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
