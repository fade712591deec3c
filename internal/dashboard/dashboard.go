package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gollllden/Done/internal/models"
)

const (
	StatusAll   = "all"
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
	clockLayout = "3:04 PM"
)

type Filter struct {
	Status string
	Query  string
}

// Apply keeps the bookings matching f, newest first. An empty status or
// "all" keeps every status. The query matches name, email and service name
// case-insensitively, and phone as a plain substring.
func Apply(bookings []models.Booking, f Filter) []models.Booking {
	status := strings.TrimSpace(f.Status)
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if status != "" && status != StatusAll && string(b.Status) != status {
			continue
		}
		if q != "" && !matchesQuery(b, q) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesQuery(b models.Booking, q string) bool {
	return strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(strings.ToLower(b.Email), q) ||
		strings.Contains(strings.ToLower(b.ServiceName), q) ||
		strings.Contains(b.Phone, q)
}

type DayGroup struct {
	Date       string           `json:"date"`
	IsUpcoming bool             `json:"isUpcoming"`
	Bookings   []models.Booking `json:"bookings"`
}

// GroupByDay buckets non-cancelled bookings by service date. Days ascend;
// within a day bookings ascend by clock time.
func GroupByDay(bookings []models.Booking, today time.Time) []DayGroup {
	todayKey := today.Format(dateLayout)
	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		if b.Status == models.StatusCancelled {
			continue
		}
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	groups := make([]DayGroup, 0, len(byDate))
	for date, list := range byDate {
		sortByClock(list)
		groups = append(groups, DayGroup{
			Date:       date,
			IsUpcoming: date >= todayKey,
			Bookings:   list,
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date < groups[j].Date })
	return groups
}

type CalendarDay struct {
	Date     string           `json:"date"`
	Bookings []models.Booking `json:"bookings"`
}

// Calendar lists every day of month with the bookings scheduled on it,
// cancelled ones included so the admin can see them.
func Calendar(bookings []models.Booking, month time.Time) []CalendarDay {
	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	var days []CalendarDay
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		list := byDate[key]
		if list == nil {
			list = []models.Booking{}
		}
		sortByClock(list)
		days = append(days, CalendarDay{Date: key, Bookings: list})
	}
	return days
}

func sortByClock(list []models.Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, erri := time.Parse(clockLayout, list[i].Time)
		tj, errj := time.Parse(clockLayout, list[j].Time)
		switch {
		case erri != nil && errj != nil:
			return list[i].Time < list[j].Time
		case erri != nil:
			return false
		case errj != nil:
			return true
		}
		return ti.Before(tj)
	})
}

type ServiceStat struct {
	Service    string  `json:"service"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type MonthStat struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Analytics struct {
	Total             int                          `json:"total"`
	StatusBreakdown   map[models.BookingStatus]int `json:"statusBreakdown"`
	ServicePopularity []ServiceStat                `json:"servicePopularity"`
	MonthlyTrend      []MonthStat                  `json:"monthlyTrend"`
	RepeatCustomers   int                          `json:"repeatCustomers"`
}

func Analyze(bookings []models.Booking) Analytics {
	a := Analytics{
		Total: len(bookings),
		StatusBreakdown: map[models.BookingStatus]int{
			models.StatusPending:    0,
			models.StatusConfirmed:  0,
			models.StatusInProgress: 0,
			models.StatusCompleted:  0,
			models.StatusCancelled:  0,
		},
		ServicePopularity: []ServiceStat{},
		MonthlyTrend:      []MonthStat{},
	}

	services := make(map[string]int)
	months := make(map[string]int)
	emails := make(map[string]int)
	for _, b := range bookings {
		a.StatusBreakdown[b.Status]++
		services[b.ServiceName]++
		if !b.CreatedAt.IsZero() {
			months[b.CreatedAt.Format(monthLayout)]++
		}
		if e := strings.ToLower(strings.TrimSpace(b.Email)); e != "" {
			emails[e]++
		}
	}

	for name, n := range services {
		a.ServicePopularity = append(a.ServicePopularity, ServiceStat{
			Service:    name,
			Count:      n,
			Percentage: percent(n, a.Total),
		})
	}
	sort.Slice(a.ServicePopularity, func(i, j int) bool {
		pi, pj := a.ServicePopularity[i], a.ServicePopularity[j]
		if pi.Count != pj.Count {
			return pi.Count > pj.Count
		}
		return pi.Service < pj.Service
	})

	for m, n := range months {
		a.MonthlyTrend = append(a.MonthlyTrend, MonthStat{Month: m, Count: n})
	}
	sort.Slice(a.MonthlyTrend, func(i, j int) bool { return a.MonthlyTrend[i].Month < a.MonthlyTrend[j].Month })

	for _, n := range emails {
		if n > 1 {
			a.RepeatCustomers++
		}
	}
	return a
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*1000/float64(total)) / 10
}
