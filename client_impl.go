package tradeinput

import (
	"context"

	"github.com/wagiedev/trade-input-go/internal/client"
)

// clientWrapper wraps the internal client to adapt it to the public interface.
type clientWrapper struct {
	impl *client.Client
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

// newClientImpl creates the internal client implementation.
func newClientImpl() Client {
	return &clientWrapper{impl: client.New()}
}

// Start connects to the host and begins serving requests.
func (c *clientWrapper) Start(ctx context.Context, opts ...Option) error {
	return c.impl.Start(ctx, applyOptions(opts))
}

// TextChanged offers new raw text for the pending input.
func (c *clientWrapper) TextChanged(ctx context.Context, raw string) (string, error) {
	return c.impl.TextChanged(ctx, raw)
}

// Submit validates the pending input and sends it to the host.
func (c *clientWrapper) Submit(ctx context.Context) (*InputResponse, error) {
	return c.impl.Submit(ctx)
}

// Cancel sends a cancellation for the pending input.
func (c *clientWrapper) Cancel(ctx context.Context) (*InputResponse, error) {
	return c.impl.Cancel(ctx)
}

// CurrentError returns the last validation failure of the pending input.
func (c *clientWrapper) CurrentError(ctx context.Context) *ValidationError {
	return c.impl.CurrentError(ctx)
}

// Pending returns a copy of the pending input.
func (c *clientWrapper) Pending(ctx context.Context) (PendingInput, error) {
	return c.impl.Pending(ctx)
}

// State reports whether a request is pending.
func (c *clientWrapper) State(ctx context.Context) State {
	return c.impl.State(ctx)
}

// Done is closed when the connection to the host ends.
func (c *clientWrapper) Done() <-chan struct{} {
	return c.impl.Done()
}

// Err returns the transport error that ended the connection, if any.
func (c *clientWrapper) Err() error {
	return c.impl.Err()
}

// Close disconnects and cleans up resources.
func (c *clientWrapper) Close() error {
	return c.impl.Close()
}
