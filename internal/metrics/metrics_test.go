package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RequestsTotal.WithLabelValues("quantity").Inc()
	m.ResponsesTotal.WithLabelValues("quantity", "accepted").Inc()
	m.DecodeErrorsTotal.Inc()
	m.Pending.Set(1)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 5, count)

	expected := `
# HELP tradeinput_decode_errors_total Total number of malformed frames dropped.
# TYPE tradeinput_decode_errors_total counter
tradeinput_decode_errors_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "tradeinput_decode_errors_total"))
}

func TestNew_NilRegisterer(t *testing.T) {
	m := New(nil)
	m.ValidationFailuresTotal.WithLabelValues("price", "too_large").Inc()

	require.InDelta(t, 1, testutil.ToFloat64(m.ValidationFailuresTotal.WithLabelValues("price", "too_large")), 0)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	require.Panics(t, func() { New(reg) })
}
