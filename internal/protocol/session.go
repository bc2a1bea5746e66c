package protocol

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/errors"
	"github.com/wagiedev/trade-input-go/internal/input"
	"github.com/wagiedev/trade-input-go/internal/message"
	"github.com/wagiedev/trade-input-go/internal/metrics"
)

// expirySendTimeout bounds the cancelled response sent when a pending input times out.
const expirySendTimeout = 5 * time.Second

var (
	// errAlreadyRunning is returned by a second call to Run.
	errAlreadyRunning = stderrors.New("input session already running")

	errNilRequest = stderrors.New("open request: nil request")
)

// FrameSender is the outbound half of a transport.
type FrameSender interface {
	SendFrame(ctx context.Context, frame []byte) error
}

// State is the session's position in its Idle/Awaiting cycle.
type State int

const (
	// StateIdle means no request is pending.
	StateIdle State = iota
	// StateAwaiting means one request awaits a user decision.
	StateAwaiting
)

func (s State) String() string {
	if s == StateAwaiting {
		return "awaiting"
	}

	return "idle"
}

// PendingInput is the single in-flight request awaiting a user decision.
type PendingInput struct {
	ID        string
	Kind      input.Kind
	Prompt    string
	Bound     int32
	RawText   string
	LastError *input.ValidationError
}

// SessionConfig holds the optional session settings.
type SessionConfig struct {
	// PendingTimeout auto-cancels a pending input after this long. Zero disables it.
	PendingTimeout time.Duration
	// QueueSize is the event queue capacity. Zero uses config.DefaultQueueSize.
	QueueSize int
}

// Session is the input state machine for one connection.
//
// All transitions run on the goroutine executing Run, in the order they were
// enqueued. OpenRequest only enqueues; the other operations enqueue and wait
// for their result. The pending input is owned by the Run goroutine and is
// only ever exposed to callers as a copy.
type Session struct {
	log       *slog.Logger
	sender    FrameSender
	presenter config.Presenter
	metrics   *metrics.Metrics
	deadlines *deadlines

	events  chan func()
	done    chan struct{}
	running atomic.Bool

	// Owned by the Run goroutine.
	pending *PendingInput
}

// NewSession creates an idle session that sends responses through sender.
// presenter may be nil for headless use; m may be nil to skip metrics.
func NewSession(
	log *slog.Logger,
	sender FrameSender,
	presenter config.Presenter,
	m *metrics.Metrics,
	cfg SessionConfig,
) *Session {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = config.DefaultQueueSize
	}

	if m == nil {
		m = metrics.New(nil)
	}

	s := &Session{
		log:       log.With("component", "session"),
		sender:    sender,
		presenter: presenter,
		metrics:   m,
		events:    make(chan func(), queueSize),
		done:      make(chan struct{}),
	}

	if cfg.PendingTimeout > 0 {
		s.deadlines = newDeadlines(cfg.PendingTimeout, func(ctx context.Context, id string) {
			if err := s.enqueue(ctx, func() { s.expire(id) }); err != nil {
				s.log.Debug("Dropped pending input expiry", "request_id", id, "error", err)
			}
		})
	}

	return s
}

// Run processes session events until ctx is cancelled.
// It returns nil on cancellation; Run may only be called once.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}

	if s.deadlines != nil {
		go s.deadlines.run()
		// Expiry callbacks blocked in enqueue see done closed before stop waits on them.
		defer s.deadlines.stop()
	}

	defer close(s.done)

	s.log.Debug("Input session started")
	defer s.log.Debug("Input session stopped")

	for {
		select {
		case fn := <-s.events:
			_ = s.safely("event", fn)

		case <-ctx.Done():
			return nil
		}
	}
}

// Done returns a channel that is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// OpenRequest hands a decoded request to the session and returns without
// waiting for it to be applied. A pending input is replaced without a
// response being sent for it.
func (s *Session) OpenRequest(ctx context.Context, req message.Request) error {
	if req == nil {
		return errNilRequest
	}

	return s.enqueue(ctx, func() { s.open(req) })
}

// TextChanged offers new raw text for the pending input and returns the text
// the session now holds. Text the live filter would alter is refused with
// ErrTextRejected and the previous text is kept.
func (s *Session) TextChanged(ctx context.Context, raw string) (string, error) {
	res, err := mutate(ctx, s, func() result[string] {
		p := s.pending
		if p == nil {
			return result[string]{err: errors.ErrNoPendingInput}
		}

		if !input.Allowed(p.Kind, raw) {
			return result[string]{value: p.RawText, err: errors.ErrTextRejected}
		}

		p.RawText = raw

		return result[string]{value: raw}
	})
	if err != nil {
		return "", err
	}

	return res.value, res.err
}

// Submit validates the pending input and, if valid, sends the accepted
// response and returns the session to idle.
//
// A rule failure returns *input.ValidationError and leaves the input pending
// with LastError set. A send failure also leaves the input pending. Once the
// submit is queued its outcome is reported even if ctx ends meanwhile.
func (s *Session) Submit(ctx context.Context) (*message.InputResponse, error) {
	res, err := mutate(ctx, s, func() result[*message.InputResponse] {
		resp, err := s.submit(ctx)

		return result[*message.InputResponse]{value: resp, err: err}
	})
	if err != nil {
		return nil, err
	}

	return res.value, res.err
}

// Cancel sends the cancelled response for the pending input and returns the
// session to idle.
func (s *Session) Cancel(ctx context.Context) (*message.InputResponse, error) {
	res, err := mutate(ctx, s, func() result[*message.InputResponse] {
		resp, err := s.cancel(ctx)

		return result[*message.InputResponse]{value: resp, err: err}
	})
	if err != nil {
		return nil, err
	}

	return res.value, res.err
}

// CurrentError returns the last validation failure of the pending input,
// or nil if there is none.
func (s *Session) CurrentError(ctx context.Context) *input.ValidationError {
	res, err := call(ctx, s, func() result[*input.ValidationError] {
		if s.pending == nil {
			return result[*input.ValidationError]{}
		}

		return result[*input.ValidationError]{value: s.pending.LastError}
	})
	if err != nil {
		return nil
	}

	return res.value
}

// Pending returns a copy of the pending input, or ErrNoPendingInput.
func (s *Session) Pending(ctx context.Context) (PendingInput, error) {
	res, err := call(ctx, s, func() result[PendingInput] {
		if s.pending == nil {
			return result[PendingInput]{err: errors.ErrNoPendingInput}
		}

		return result[PendingInput]{value: *s.pending}
	})
	if err != nil {
		return PendingInput{}, err
	}

	return res.value, res.err
}

// State reports whether a request is pending.
func (s *Session) State(ctx context.Context) State {
	res, _ := call(ctx, s, func() result[State] {
		if s.pending != nil {
			return result[State]{value: StateAwaiting}
		}

		return result[State]{value: StateIdle}
	})

	return res.value
}

func (s *Session) open(req message.Request) {
	if prev := s.pending; prev != nil {
		s.log.Info("Replacing pending input",
			"request_id", prev.ID,
			"kind", prev.Kind,
			"replaced_by", req.Kind(),
		)
		s.metrics.ReplacedTotal.WithLabelValues(prev.Kind.String()).Inc()
		s.disarm(prev.ID)
	}

	p := &PendingInput{
		ID:     ulid.Make().String(),
		Kind:   req.Kind(),
		Prompt: req.PromptMessage(),
		Bound:  req.Bound(),
	}

	s.pending = p
	s.metrics.RequestsTotal.WithLabelValues(p.Kind.String()).Inc()
	s.metrics.Pending.Set(1)

	if s.deadlines != nil {
		s.deadlines.arm(p.ID, p.Kind)
	}

	s.log.Debug("Opened pending input", "request_id", p.ID, "kind", p.Kind, "bound", p.Bound)

	prompt := config.Prompt{ID: p.ID, Kind: p.Kind, Text: p.Prompt, Bound: p.Bound}
	s.notify("OnOpen", func(presenter config.Presenter) { presenter.OnOpen(prompt) })
}

func (s *Session) submit(ctx context.Context) (*message.InputResponse, error) {
	p := s.pending
	if p == nil {
		return nil, errors.ErrNoPendingInput
	}

	value, err := input.Validate(p.Kind, p.RawText, p.Bound)
	if err != nil {
		var vErr *input.ValidationError
		if stderrors.As(err, &vErr) {
			p.LastError = vErr
			s.metrics.ValidationFailuresTotal.WithLabelValues(p.Kind.String(), string(vErr.Code)).Inc()
			s.log.Debug("Rejected submit", "request_id", p.ID, "kind", p.Kind, "code", vErr.Code)
		}

		return nil, err
	}

	resp := message.Accept(p.Kind, value)
	if err := s.send(ctx, resp, config.OutcomeAccepted); err != nil {
		return nil, err
	}

	s.finish(p, config.OutcomeAccepted)

	return resp, nil
}

func (s *Session) cancel(ctx context.Context) (*message.InputResponse, error) {
	p := s.pending
	if p == nil {
		return nil, errors.ErrNoPendingInput
	}

	resp := message.Cancelled(p.Kind)
	if err := s.send(ctx, resp, config.OutcomeCancelled); err != nil {
		return nil, err
	}

	s.finish(p, config.OutcomeCancelled)

	return resp, nil
}

func (s *Session) expire(id string) {
	p := s.pending
	if p == nil || p.ID != id {
		return
	}

	s.log.Warn("Pending input timed out", "request_id", p.ID, "kind", p.Kind)

	ctx, cancel := context.WithTimeout(context.Background(), expirySendTimeout)
	defer cancel()

	if err := s.send(ctx, message.Cancelled(p.Kind), config.OutcomeExpired); err != nil {
		s.deadlines.arm(p.ID, p.Kind)

		return
	}

	s.finish(p, config.OutcomeExpired)
}

func (s *Session) send(ctx context.Context, resp *message.InputResponse, outcome config.Outcome) error {
	frame, err := message.Encode(resp)
	if err != nil {
		s.log.Error("Failed to encode input response", "kind", resp.Kind, "error", err)

		return fmt.Errorf("encode response: %w", err)
	}

	if err := s.sender.SendFrame(ctx, frame); err != nil {
		s.metrics.SendErrorsTotal.Inc()
		s.log.Error("Failed to send input response", "kind", resp.Kind, "error", err)

		return fmt.Errorf("send response: %w", err)
	}

	s.metrics.ResponsesTotal.WithLabelValues(resp.Kind.String(), string(outcome)).Inc()

	return nil
}

func (s *Session) finish(p *PendingInput, outcome config.Outcome) {
	s.disarm(p.ID)
	s.pending = nil
	s.metrics.Pending.Set(0)

	s.log.Debug("Closed pending input", "request_id", p.ID, "kind", p.Kind, "outcome", outcome)

	closed := config.Closed{ID: p.ID, Kind: p.Kind, Outcome: outcome}
	s.notify("OnClose", func(presenter config.Presenter) { presenter.OnClose(closed) })
}

func (s *Session) disarm(id string) {
	if s.deadlines != nil {
		s.deadlines.disarm(id)
	}
}

// notify invokes a presenter callback. A panicking presenter is logged and ignored.
func (s *Session) notify(callback string, fn func(config.Presenter)) {
	if s.presenter == nil {
		return
	}

	_ = s.safely(callback, func() { fn(s.presenter) })
}

// safely runs fn and converts a panic into an error.
func (s *Session) safely(what string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Recovered panic in input session", "in", what, "panic", r)
			err = fmt.Errorf("input session: panic in %s: %v", what, r)
		}
	}()

	fn()

	return nil
}

// enqueue schedules fn on the Run goroutine without waiting for it.
func (s *Session) enqueue(ctx context.Context, fn func()) error {
	select {
	case <-s.done:
		return errors.ErrSessionStopped
	default:
	}

	select {
	case s.events <- fn:
		return nil
	case <-s.done:
		return errors.ErrSessionStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// result carries a transition's outcome back to the caller.
type result[T any] struct {
	value T
	err   error
}

// call schedules a read-only fn on the Run goroutine and waits for its
// result until ctx ends.
func call[T any](ctx context.Context, s *Session, fn func() T) (T, error) {
	return invoke(ctx, s, fn, ctx.Done())
}

// mutate schedules a transition on the Run goroutine. Once queued, the caller
// waits for its outcome even if ctx ends; a transition that starts after ctx
// ended does nothing and reports ctx's error.
func mutate[T any](ctx context.Context, s *Session, fn func() result[T]) (result[T], error) {
	return invoke(ctx, s, func() result[T] {
		if err := ctx.Err(); err != nil {
			return result[T]{err: err}
		}

		return fn()
	}, nil)
}

// invoke runs fn on the Run goroutine and waits for its result until the
// session stops or abandon is closed. The result travels over a channel so an
// abandoned call shares no memory with the caller.
func invoke[T any](ctx context.Context, s *Session, fn func() T, abandon <-chan struct{}) (T, error) {
	var zero T

	out := make(chan result[T], 1)

	if err := s.enqueue(ctx, func() {
		var v T

		err := s.safely("call", func() { v = fn() })
		out <- result[T]{value: v, err: err}
	}); err != nil {
		return zero, err
	}

	select {
	case r := <-out:
		return r.value, r.err
	case <-s.done:
		select {
		case r := <-out:
			return r.value, r.err
		default:
			return zero, errors.ErrSessionStopped
		}
	case <-abandon:
		return zero, ctx.Err()
	}
}
