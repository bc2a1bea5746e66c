package config

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultQueueSize is the capacity of the session's event queue.
const DefaultQueueSize = 32

// Options configures the behavior of the trade input client.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Address is the host address to dial over TCP when Transport is nil.
	// A missing port defaults to DefaultPort.
	Address string

	// Transport is a custom transport to use instead of dialing Address.
	Transport Transport

	// Presenter receives open/close notifications for pending inputs.
	// If nil, the session runs headless.
	Presenter Presenter

	// PendingTimeout cancels a pending input that receives no submit or
	// cancel within this duration. Zero disables the timeout, in which case
	// a pending input waits for the user indefinitely.
	PendingTimeout time.Duration

	// QueueSize overrides the session event queue capacity.
	// Zero uses DefaultQueueSize.
	QueueSize int

	// MetricsRegisterer registers the client's Prometheus collectors.
	// If nil, metrics are collected but not registered.
	MetricsRegisterer prometheus.Registerer
}
