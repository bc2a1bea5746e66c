package tradeinput

import "github.com/wagiedev/trade-input-go/internal/errors"

// Re-export error types from internal package

// DecodeError indicates a frame could not be decoded into a message.
type DecodeError = errors.DecodeError

// EncodeError indicates a message could not be encoded into a frame.
type EncodeError = errors.EncodeError

// TransportError indicates a failure on the byte channel to the host.
type TransportError = errors.TransportError

// TradeInputError is the base interface for all client errors.
type TradeInputError = errors.TradeInputError

// Re-export sentinel errors from internal package.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.ErrClientNotConnected

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.ErrClientAlreadyConnected

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrTransportClosed indicates the transport has been closed.
	ErrTransportClosed = errors.ErrTransportClosed

	// ErrFrameTooLarge indicates a frame exceeds the transport's size limit.
	ErrFrameTooLarge = errors.ErrFrameTooLarge

	// ErrSessionStopped indicates the connection ended and no more input is served.
	ErrSessionStopped = errors.ErrSessionStopped

	// ErrNoPendingInput indicates there is no request awaiting input.
	ErrNoPendingInput = errors.ErrNoPendingInput

	// ErrTextRejected indicates the live character filter refused an edit.
	ErrTextRejected = errors.ErrTextRejected
)
