// Package tradeinput implements the client side of a trade input protocol.
//
// A trading host asks a connected client for one value at a time: a price,
// a quantity bounded by a maximum, or a search term. The client shows the
// request to the user, filters keystrokes as they are typed, validates the
// value on submit and answers the host exactly once, with either the
// accepted value or a cancellation.
//
// # Basic Usage
//
// Connect with NewClient or the WithClient helper and give it a Presenter
// that renders prompts:
//
//	presenter := tradeinput.NewChannelPresenter(16)
//
//	err := tradeinput.WithClient(ctx, func(c tradeinput.Client) error {
//	    for ev := range presenter.All(ctx) {
//	        if ev.Open != nil {
//	            fmt.Println(ev.Open.Text)
//	            c.TextChanged(ctx, readLine())
//	            if _, err := c.Submit(ctx); err != nil {
//	                fmt.Println(err)
//	            }
//	        }
//	    }
//	    return nil
//	},
//	    tradeinput.WithAddress("trade.example.net"),
//	    tradeinput.WithPresenter(presenter),
//	)
//
// A newer request from the host replaces the pending one; the replaced
// request gets no response.
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	client.Start(ctx, tradeinput.WithLogger(logger))
//
// # Error Handling
//
// Validation failures are recoverable and keep the input pending:
//
//	if _, err := client.Submit(ctx); err != nil {
//	    if vErr, ok := errors.AsType[*tradeinput.ValidationError](err); ok {
//	        showHint(vErr.Error())
//	        return
//	    }
//	    if errors.Is(err, tradeinput.ErrNoPendingInput) {
//	        return
//	    }
//	    log.Fatal(err)
//	}
//
// # Wire Format
//
// Each message is one frame: a channel identifier string followed by the
// message fields. Strings are a VarInt byte length followed by UTF-8 bytes,
// integers are 4-byte big-endian and booleans are a single 0 or 1 byte. The
// default TCP transport prefixes every frame with its VarInt length.
package tradeinput
