package slots

import (
	"errors"
	"time"

	"github.com/gollllden/Done/internal/models"
)

const (
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
	DefaultCapacity = 7
)

var (
	ErrSlotFull    = errors.New("this time slot is fully booked")
	ErrUnknownSlot = errors.New("unknown time slot")
)

type Definition struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Time     string `json:"time"`
	Capacity int    `json:"capacity"`
}

// Defaults returns the five daily windows, each holding capacity bookings.
// A non-positive capacity means DefaultCapacity.
func Defaults(capacity int) []Definition {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return []Definition{
		{ID: "2", Label: "8:00 am - 9:30 am", Time: "8:00 AM", Capacity: capacity},
		{ID: "3", Label: "10:30 am - 12:00 pm", Time: "10:30 AM", Capacity: capacity},
		{ID: "4", Label: "1:00 pm - 2:30 pm", Time: "1:00 PM", Capacity: capacity},
		{ID: "5", Label: "3:00 pm - 4:30 pm", Time: "3:00 PM", Capacity: capacity},
		{ID: "6", Label: "5:00 pm - 6:30 pm", Time: "5:00 PM", Capacity: capacity},
	}
}

// Key identifies a (date, time) bucket. Matching is exact, so dates must be
// YYYY-MM-DD and times must use the canonical slot strings.
func Key(date, t string) string {
	return date + "-" + t
}

// CountBooked tallies non-cancelled bookings per Key.
func CountBooked(bookings []models.Booking) map[string]int {
	counts := make(map[string]int)
	for _, b := range bookings {
		if b.Status == models.StatusCancelled {
			continue
		}
		counts[Key(b.Date, b.Time)]++
	}
	return counts
}

type Availability struct {
	Definition
	Booked     int  `json:"booked"`
	Remaining  int  `json:"remaining"`
	Selectable bool `json:"selectable"`
}

// Compute reports, for every definition, how many bookings date already has in
// that slot. Remaining is capacity minus booked and may go negative when a slot
// was oversold; use Display for presentation.
func Compute(date string, defs []Definition, bookings []models.Booking) []Availability {
	counts := CountBooked(bookings)
	out := make([]Availability, len(defs))
	for i, d := range defs {
		booked := counts[Key(date, d.Time)]
		remaining := d.Capacity - booked
		out[i] = Availability{
			Definition: d,
			Booked:     booked,
			Remaining:  remaining,
			Selectable: remaining > 0,
		}
	}
	return out
}

// Display is Remaining floored at zero.
func (a Availability) Display() int {
	if a.Remaining < 0 {
		return 0
	}
	return a.Remaining
}

// Select picks slotID out of a computed day, refusing full slots.
func Select(avail []Availability, slotID string) (Availability, error) {
	for _, a := range avail {
		if a.ID != slotID {
			continue
		}
		if !a.Selectable {
			return a, ErrSlotFull
		}
		return a, nil
	}
	return Availability{}, ErrUnknownSlot
}

// ByTime finds the definition whose canonical time string is t.
func ByTime(defs []Definition, t string) (Definition, bool) {
	for _, d := range defs {
		if d.Time == t {
			return d, true
		}
	}
	return Definition{}, false
}

type Day struct {
	Date       string `json:"date"`
	Booked     int    `json:"booked"`
	Capacity   int    `json:"capacity"`
	Remaining  int    `json:"remaining"`
	Past       bool   `json:"past"`
	Selectable bool   `json:"selectable"`
}

// MonthOverview summarises every day of month for a calendar widget. Days
// before today are never selectable.
func MonthOverview(month, today time.Time, defs []Definition, bookings []models.Booking) []Day {
	counts := CountBooked(bookings)
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	todayKey := today.Format(DateLayout)

	capacity := 0
	for _, d := range defs {
		capacity += d.Capacity
	}

	var days []Day
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		booked := 0
		for _, d := range defs {
			booked += counts[Key(date, d.Time)]
		}
		past := date < todayKey
		remaining := capacity - booked
		days = append(days, Day{
			Date:       date,
			Booked:     booked,
			Capacity:   capacity,
			Remaining:  remaining,
			Past:       past,
			Selectable: !past && remaining > 0,
		})
	}
	return days
}
