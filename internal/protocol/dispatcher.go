package protocol

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/message"
	"github.com/wagiedev/trade-input-go/internal/metrics"
)

// RequestSink accepts decoded requests. It is satisfied by *Session.
type RequestSink interface {
	OpenRequest(ctx context.Context, req message.Request) error
}

// Dispatcher reads inbound frames from a transport, decodes them and hands
// each request to the session.
//
// A frame that fails to decode is logged and dropped; no response is sent for
// it and the session is not touched. Start must be called once; the read loop
// runs on its own goroutine until the transport closes, ctx is cancelled or
// Stop is called.
type Dispatcher struct {
	log       *slog.Logger
	transport config.Transport
	sink      RequestSink
	metrics   *metrics.Metrics

	// Fatal error handling - stores error and broadcasts via done channel
	errMu    sync.RWMutex
	fatalErr error

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher. m may be nil to skip metrics.
func NewDispatcher(
	log *slog.Logger,
	transport config.Transport,
	sink RequestSink,
	m *metrics.Metrics,
) *Dispatcher {
	if m == nil {
		m = metrics.New(nil)
	}

	return &Dispatcher{
		log:       log.With("component", "dispatcher"),
		transport: transport,
		sink:      sink,
		metrics:   m,
		done:      make(chan struct{}),
	}
}

func (d *Dispatcher) closeDone() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
}

// SetFatalError stores a fatal error and broadcasts to all waiters by closing done.
func (d *Dispatcher) SetFatalError(err error) {
	d.errMu.Lock()

	if d.fatalErr == nil {
		d.fatalErr = err
	}

	d.errMu.Unlock()

	d.closeDone()
}

// FatalError returns the fatal error if one occurred.
func (d *Dispatcher) FatalError() error {
	d.errMu.RLock()
	defer d.errMu.RUnlock()

	return d.fatalErr
}

// Done returns a channel that is closed when the dispatcher stops.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// Start begins reading frames from the transport.
func (d *Dispatcher) Start(ctx context.Context) {
	d.log.Debug("Starting request dispatcher")

	frames, errs := d.transport.ReadFrames(ctx)

	d.wg.Go(func() {
		d.readLoop(ctx, frames, errs)
	})
}

// Stop signals the read loop to stop and waits for it. It's safe to call
// Stop multiple times.
func (d *Dispatcher) Stop() {
	d.closeDone()
	d.wg.Wait()

	d.log.Debug("Request dispatcher stopped")
}

// OnFrame decodes one inbound frame and hands the request to the session.
// The returned error is the decode or hand-off failure; the caller drops the frame.
func (d *Dispatcher) OnFrame(ctx context.Context, frame []byte) error {
	req, err := message.DecodeRequest(frame)
	if err != nil {
		d.metrics.DecodeErrorsTotal.Inc()
		d.log.Warn("Dropping malformed frame", "size", len(frame), "error", err)

		return err
	}

	d.log.Debug("Received input request", "kind", req.Kind(), "bound", req.Bound())

	if err := d.sink.OpenRequest(ctx, req); err != nil {
		d.log.Warn("Failed to hand request to session", "kind", req.Kind(), "error", err)

		return err
	}

	return nil
}

func (d *Dispatcher) readLoop(ctx context.Context, frames <-chan []byte, errs <-chan error) {
	defer d.closeDone()
	defer d.log.Debug("Dispatcher read loop stopped")

	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				// The transport reports its error before closing frames.
				select {
				case err, ok := <-errs:
					if ok && err != nil {
						d.log.Debug("Transport error in dispatcher", "error", err)
						d.SetFatalError(err)
					}
				default:
				}

				d.log.Debug("Frame channel closed")

				return
			}

			_ = d.OnFrame(ctx, frame)

		case err, ok := <-errs:
			if !ok {
				errs = nil

				continue
			}

			if err != nil {
				d.log.Debug("Transport error in dispatcher", "error", err)
				d.SetFatalError(err)

				return
			}

		case <-d.done:
			return

		case <-ctx.Done():
			return
		}
	}
}
