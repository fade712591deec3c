package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBooking("created")
	m.ObserveBooking("created")
	m.ObserveBooking("slot_full")
	m.ObserveEmail("confirmation", nil)
	m.ObserveEmail("confirmation", errors.New("smtp down"))
	m.ObserveLogin("blocked")
	m.ObserveRateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("slot_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emails.WithLabelValues("confirmation", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("blocked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBooking("created")
		m.ObserveStatusChange("confirmed")
		m.ObserveEmail("business", nil)
		m.ObserveLogin("success")
		m.ObserveRateLimited()
		m.ObserveRequest("GET", "/api/", 200, 0.01)
	})
}
