// Package config provides configuration types for the trade input client.
package config

import "context"

// Transport defines the interface for the byte channel to the trading host.
// Implement this to provide custom transports for testing, mocking,
// or alternative carriers (e.g., an embedding game client's packet channel).
//
// The default implementation is transport.Stream, which frames messages
// over a TCP connection.
type Transport interface {
	// ReadFrames returns channels for receiving inbound frames and errors.
	// Each frame is exactly one encoded message.
	// Both channels are closed when reading completes or an error occurs.
	ReadFrames(ctx context.Context) (<-chan []byte, <-chan error)

	// SendFrame sends one encoded message to the host.
	// This method must be safe for concurrent use.
	SendFrame(ctx context.Context, frame []byte) error

	// Close terminates the transport and releases resources.
	// It's safe to call Close multiple times.
	Close() error
}
