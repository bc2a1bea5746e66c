package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/errors"
	"github.com/wagiedev/trade-input-go/internal/input"
	"github.com/wagiedev/trade-input-go/internal/message"
	"github.com/wagiedev/trade-input-go/internal/metrics"
	"github.com/wagiedev/trade-input-go/internal/protocol"
	"github.com/wagiedev/trade-input-go/internal/transport"
)

var errNoAddress = stderrors.New("no transport or address configured")

// Client owns one connection to a trading host: the transport, the request
// dispatcher and the input session.
type Client struct {
	log        *slog.Logger
	transport  config.Transport
	dispatcher *protocol.Dispatcher
	session    *protocol.Session
	metrics    *metrics.Metrics

	// Fatal error storage
	errMu    sync.RWMutex
	fatalErr error

	// Errgroup for goroutine management
	eg     *errgroup.Group
	cancel context.CancelFunc

	// Lifecycle management
	mu        sync.Mutex
	done      chan struct{}
	connected bool
	closed    bool      // Tracks if Close() has been called
	closeOnce sync.Once // Ensures Close() only runs once
}

// New creates a new client.
//
// The client is not connected after creation. Call Start() with options to connect.
func New() *Client {
	return &Client{
		done: make(chan struct{}),
	}
}

// setFatalError stores the first fatal error encountered.
func (c *Client) setFatalError(err error) {
	if err == nil {
		return
	}

	c.errMu.Lock()
	defer c.errMu.Unlock()

	if c.fatalErr == nil {
		c.fatalErr = err
	}
}

// Err returns the transport error that ended the connection, if any.
func (c *Client) Err() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()

	return c.fatalErr
}

// Done returns a channel that is closed when the connection ends, either
// because the host went away or because Close was called.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Metrics returns the client's collectors. It is nil before Start.
func (c *Client) Metrics() *metrics.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.metrics
}

// Start connects to the host and begins serving input requests.
//
// If options.Transport is nil, options.Address is dialed over TCP.
func (c *Client) Start(ctx context.Context, options *config.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.ErrClientClosed
	}

	if c.connected {
		return errors.ErrClientAlreadyConnected
	}

	// Default to empty options if nil
	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c.log = log.With("component", "client")

	tr, err := c.openTransport(ctx, log, options)
	if err != nil {
		return err
	}

	c.transport = tr
	c.metrics = metrics.New(options.MetricsRegisterer)

	c.session = protocol.NewSession(log, tr, options.Presenter, c.metrics, protocol.SessionConfig{
		PendingTimeout: options.PendingTimeout,
		QueueSize:      options.QueueSize,
	})
	c.dispatcher = protocol.NewDispatcher(log, tr, c.session, c.metrics)

	// The run context is detached from ctx: the client stays connected until
	// the host disconnects or Close is called.
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	var egCtx context.Context

	c.eg, egCtx = errgroup.WithContext(runCtx)

	c.eg.Go(func() error {
		return c.session.Run(egCtx)
	})

	c.dispatcher.Start(egCtx)

	c.eg.Go(func() error {
		return c.watch(cancel)
	})

	c.connected = true
	c.log.Info("Client started", "pending_timeout", options.PendingTimeout)

	return nil
}

func (c *Client) openTransport(
	ctx context.Context,
	log *slog.Logger,
	options *config.Options,
) (config.Transport, error) {
	if options.Transport != nil {
		c.log.Debug("Using injected custom transport")

		return options.Transport, nil
	}

	address := config.NormalizeAddress(options.Address)
	if address == "" {
		return nil, errNoAddress
	}

	stream, err := transport.Dial(ctx, log, address)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}

	return stream, nil
}

// watch waits for the dispatcher to stop, then stops the session and
// signals Done.
func (c *Client) watch(cancel context.CancelFunc) error {
	<-c.dispatcher.Done()

	cancel()
	<-c.session.Done()
	close(c.done)

	if err := c.dispatcher.FatalError(); err != nil {
		c.log.Error("Transport error", "error", err)
		c.setFatalError(err)

		return err
	}

	c.log.Info("Host connection ended")

	return nil
}

func (c *Client) activeSession() (*protocol.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.ErrClientClosed
	}

	if !c.connected {
		return nil, errors.ErrClientNotConnected
	}

	return c.session, nil
}

// TextChanged offers new raw text for the pending input.
func (c *Client) TextChanged(ctx context.Context, raw string) (string, error) {
	session, err := c.activeSession()
	if err != nil {
		return "", err
	}

	return session.TextChanged(ctx, raw)
}

// Submit validates and sends the pending input.
func (c *Client) Submit(ctx context.Context) (*message.InputResponse, error) {
	session, err := c.activeSession()
	if err != nil {
		return nil, err
	}

	return session.Submit(ctx)
}

// Cancel sends the cancelled response for the pending input.
func (c *Client) Cancel(ctx context.Context) (*message.InputResponse, error) {
	session, err := c.activeSession()
	if err != nil {
		return nil, err
	}

	return session.Cancel(ctx)
}

// CurrentError returns the last validation failure of the pending input.
func (c *Client) CurrentError(ctx context.Context) *input.ValidationError {
	session, err := c.activeSession()
	if err != nil {
		return nil
	}

	return session.CurrentError(ctx)
}

// Pending returns a copy of the pending input.
func (c *Client) Pending(ctx context.Context) (protocol.PendingInput, error) {
	session, err := c.activeSession()
	if err != nil {
		return protocol.PendingInput{}, err
	}

	return session.Pending(ctx)
}

// State reports whether a request is pending.
func (c *Client) State(ctx context.Context) protocol.State {
	session, err := c.activeSession()
	if err != nil {
		return protocol.StateIdle
	}

	return session.State(ctx)
}

// Close disconnects from the host and releases resources.
// A pending input is dropped without a response.
func (c *Client) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		wasConnected := c.connected
		c.connected = false
		c.mu.Unlock()

		if !wasConnected {
			return
		}

		c.log.Info("Closing client")

		c.cancel()
		c.dispatcher.Stop()

		// Close transport and capture error
		if c.transport != nil {
			closeErr = c.transport.Close()
		}

		// Wait for errgroup goroutines to complete
		if err := c.eg.Wait(); err != nil && closeErr == nil {
			closeErr = err
		}

		c.log.Info("Client closed")
	})

	return closeErr
}
