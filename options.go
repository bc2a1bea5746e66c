package tradeinput

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithAddress sets the host to dial over TCP. A bare host uses DefaultPort.
func WithAddress(address string) Option {
	return func(o *Options) {
		o.Address = address
	}
}

// WithTransport injects a custom transport. Address is ignored when set.
func WithTransport(transport Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// WithPresenter sets the presenter notified when inputs open and close.
func WithPresenter(presenter Presenter) Option {
	return func(o *Options) {
		o.Presenter = presenter
	}
}

// WithPendingTimeout cancels a pending input the user leaves untouched
// for d. Zero (the default) waits indefinitely.
func WithPendingTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.PendingTimeout = d
	}
}

// WithQueueSize sets the session event queue capacity.
func WithQueueSize(size int) Option {
	return func(o *Options) {
		o.QueueSize = size
	}
}

// WithMetricsRegisterer registers the client's Prometheus collectors with reg.
// Registering two clients with the same registerer panics.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) {
		o.MetricsRegisterer = reg
	}
}
