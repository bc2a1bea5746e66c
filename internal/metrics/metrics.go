// Package metrics provides Prometheus metrics for the trade input client.
//
// Labels are limited to the closed sets of kinds, outcomes and validation
// codes. Pending input IDs never appear in labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one client.
type Metrics struct {
	// RequestsTotal counts decoded requests, by kind.
	RequestsTotal *prometheus.CounterVec

	// ResponsesTotal counts responses written to the host, by kind and outcome.
	ResponsesTotal *prometheus.CounterVec

	// ReplacedTotal counts pending inputs discarded by a newer request, by kind.
	ReplacedTotal *prometheus.CounterVec

	// ValidationFailuresTotal counts rejected submits, by kind and code.
	ValidationFailuresTotal *prometheus.CounterVec

	// DecodeErrorsTotal counts malformed frames dropped by the dispatcher.
	DecodeErrorsTotal prometheus.Counter

	// SendErrorsTotal counts responses the transport failed to deliver.
	SendErrorsTotal prometheus.Counter

	// Pending is 1 while a pending input awaits the user.
	Pending prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeinput_requests_total",
			Help: "Total number of input requests received from the host, by kind.",
		}, []string{"kind"}),
		ResponsesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeinput_responses_total",
			Help: "Total number of input responses sent to the host, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ReplacedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeinput_replaced_total",
			Help: "Total number of pending inputs replaced by a newer request, by kind.",
		}, []string{"kind"}),
		ValidationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeinput_validation_failures_total",
			Help: "Total number of rejected submits, by kind and validation code.",
		}, []string{"kind", "code"}),
		DecodeErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradeinput_decode_errors_total",
			Help: "Total number of malformed frames dropped.",
		}),
		SendErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradeinput_send_errors_total",
			Help: "Total number of responses that could not be sent.",
		}),
		Pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradeinput_pending",
			Help: "Whether a pending input is awaiting the user (0 or 1).",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.RequestsTotal,
			m.ResponsesTotal,
			m.ReplacedTotal,
			m.ValidationFailuresTotal,
			m.DecodeErrorsTotal,
			m.SendErrorsTotal,
			m.Pending,
		)
	}

	return m
}
