package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("agenda", prometheus.NewRegistry())

	m.IncBookingCreated("agendado")
	m.IncBookingCreated("agendado")
	m.IncConflict("occupied")
	m.IncTransition("agendado", "cancelado")
	m.IncConversion("converted")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("agendado")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConflictsDetected.WithLabelValues("occupied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("agendado", "cancelado")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionsRecorded.WithLabelValues("converted")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncBookingCreated("agendado")
		m.IncConflict("blocked")
		m.IncTransition("a", "b")
		m.IncConversion("unset")
	})
}
