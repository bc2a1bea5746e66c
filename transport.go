package tradeinput

import (
	"context"
	"io"
	"log/slog"

	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/transport"
)

// Transport defines the interface for the byte channel to the trading host.
// Implement this to provide custom transports for testing, mocking,
// or alternative carriers such as a game client's plugin channel.
//
// The default implementation frames messages over TCP; see Dial.
// Custom transports can be injected via WithTransport.
type Transport = config.Transport

// NewStreamTransport frames messages over an established byte stream.
// A nil log disables logging.
func NewStreamTransport(log *slog.Logger, conn io.ReadWriteCloser) Transport {
	if log == nil {
		log = NopLogger()
	}

	return transport.New(log, conn)
}

// Dial connects to a host over TCP. A bare host uses DefaultPort.
// A nil log disables logging.
func Dial(ctx context.Context, log *slog.Logger, address string) (Transport, error) {
	if log == nil {
		log = NopLogger()
	}

	stream, err := transport.Dial(ctx, log, config.NormalizeAddress(address))
	if err != nil {
		return nil, err
	}

	return stream, nil
}
