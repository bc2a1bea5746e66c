package errors

import (
	"errors"
	"fmt"
)

// TradeInputError is the base interface for all client errors.
type TradeInputError interface {
	error
	IsTradeInputError() bool
}

// Compile-time verification that all error types implement TradeInputError.
var (
	_ TradeInputError = (*DecodeError)(nil)
	_ TradeInputError = (*EncodeError)(nil)
	_ TradeInputError = (*TransportError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.New("client not connected")

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.New("client already connected")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")

	// ErrTransportClosed indicates the transport has been closed.
	ErrTransportClosed = errors.New("transport closed")

	// ErrFrameTooLarge indicates a frame exceeds the transport's size limit.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrSessionStopped indicates the input session event loop is not running.
	ErrSessionStopped = errors.New("input session stopped")

	// ErrNoPendingInput indicates an input operation arrived while the session was idle.
	ErrNoPendingInput = errors.New("no pending input")

	// ErrTextRejected indicates the live character filter refused an edit.
	// The previously accepted text is kept.
	ErrTextRejected = errors.New("text rejected by input filter")
)

// DecodeError indicates a frame could not be decoded into a message.
// Decoding has no side effects: a frame that yields DecodeError is dropped.
type DecodeError struct {
	// Channel is the frame's channel identifier, if it could be read.
	Channel string
	// Offset is the byte offset at which decoding stopped.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("decode %s frame at offset %d: %v", e.Channel, e.Offset, e.Err)
	}

	return fmt.Sprintf("decode frame at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTradeInputError implements TradeInputError.
func (e *DecodeError) IsTradeInputError() bool { return true }

// EncodeError indicates an in-memory message is outside what the wire format can carry.
type EncodeError struct {
	Channel string
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s frame: %v", e.Channel, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsTradeInputError implements TradeInputError.
func (e *EncodeError) IsTradeInputError() bool { return true }

// TransportError indicates the byte channel to the host failed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTradeInputError implements TradeInputError.
func (e *TransportError) IsTradeInputError() bool { return true }
