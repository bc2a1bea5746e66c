package tradeinput

import "context"

// Client serves input requests from one trading host.
//
// The host drives the exchange: each request it sends opens (or replaces) the
// single pending input, and the client answers it exactly once, either with
// an accepted value or with a cancellation. The user's edits reach the client
// through TextChanged, Submit and Cancel, usually from a Presenter.
//
// Lifecycle: Clients are single-use. After Close(), create a new client with NewClient().
//
// Example usage:
//
//	client := tradeinput.NewClient()
//	defer client.Close()
//
//	err := client.Start(ctx,
//	    tradeinput.WithAddress("trade.example.net"),
//	    tradeinput.WithPresenter(presenter),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// When the user presses enter:
//	if _, err := client.Submit(ctx); err != nil {
//	    var vErr *tradeinput.ValidationError
//	    if errors.As(err, &vErr) {
//	        // show vErr to the user and let them edit
//	    }
//	}
type Client interface {
	// Start connects to the host and begins serving requests.
	// Must be called before any other methods.
	Start(ctx context.Context, opts ...Option) error

	// TextChanged offers new raw text for the pending input and returns the
	// text now held. Text the live filter would alter returns ErrTextRejected.
	TextChanged(ctx context.Context, raw string) (string, error)

	// Submit validates the pending input and sends it to the host.
	// A rule failure returns *ValidationError and keeps the input pending.
	Submit(ctx context.Context) (*InputResponse, error)

	// Cancel sends a cancellation for the pending input.
	Cancel(ctx context.Context) (*InputResponse, error)

	// CurrentError returns the last validation failure of the pending input, or nil.
	CurrentError(ctx context.Context) *ValidationError

	// Pending returns a copy of the pending input, or ErrNoPendingInput.
	Pending(ctx context.Context) (PendingInput, error)

	// State reports whether a request is pending.
	State(ctx context.Context) State

	// Done is closed when the connection to the host ends.
	Done() <-chan struct{}

	// Err returns the transport error that ended the connection, if any.
	Err() error

	// Close disconnects and cleans up resources. A pending input is dropped.
	// After Close(), the client cannot be reused. Safe to call multiple times.
	Close() error
}

// NewClient creates a new client.
//
// Call Start() with options to connect:
//
//	client := NewClient()
//	err := client.Start(ctx,
//	    WithLogger(slog.Default()),
//	    WithAddress("127.0.0.1:25565"),
//	)
func NewClient() Client {
	return newClientImpl()
}
