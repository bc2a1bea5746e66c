package tradeinput

import (
	"context"
	"fmt"
)

// WithClient connects a client, hands it to fn and closes it when fn returns.
//
// fn's error is returned as is; a Close failure is only logged. The usual fn
// drains presenter events until the host hangs up. This one declines every
// search the host asks for:
//
//	presenter := tradeinput.NewChannelPresenter(8)
//
//	err := tradeinput.WithClient(ctx, func(c tradeinput.Client) error {
//	    for {
//	        select {
//	        case ev := <-presenter.Events():
//	            if ev.Open != nil && ev.Open.Kind == tradeinput.KindSearch {
//	                _, _ = c.Cancel(ctx)
//	            }
//	        case <-c.Done():
//	            return c.Err()
//	        }
//	    }
//	},
//	    tradeinput.WithAddress("trade.example.net"),
//	    tradeinput.WithPresenter(presenter),
//	)
func WithClient(ctx context.Context, fn func(Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	c := NewClient()
	if err := c.Start(ctx, opts...); err != nil {
		return fmt.Errorf("connect to trading host: %w", err)
	}

	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("Failed to close trade input client", "address", options.Address, "error", err)
		}
	}()

	return fn(c)
}
