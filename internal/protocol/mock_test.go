package protocol

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/message"
)

// mockTransport records sent frames and lets tests feed inbound frames.
type mockTransport struct {
	mu      sync.Mutex
	sent    [][]byte
	sendErr error
	closed  bool

	frames    chan []byte
	errs      chan error
	closeOnce sync.Once
}

var _ config.Transport = (*mockTransport)(nil)

func newMockTransport() *mockTransport {
	return &mockTransport{
		frames: make(chan []byte, 10),
		errs:   make(chan error, 1),
	}
}

func (m *mockTransport) ReadFrames(_ context.Context) (<-chan []byte, <-chan error) {
	return m.frames, m.errs
}

func (m *mockTransport) SendFrame(_ context.Context, frame []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	m.sent = append(m.sent, append([]byte(nil), frame...))

	return nil
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.end(nil)

	return nil
}

// end closes the inbound channels, reporting err first if non-nil.
func (m *mockTransport) end(err error) {
	m.closeOnce.Do(func() {
		if err != nil {
			m.errs <- err
		}

		close(m.frames)
		close(m.errs)
	})
}

func (m *mockTransport) setSendErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sendErr = err
}

// responses decodes every frame sent so far.
func (m *mockTransport) responses(t *testing.T) []*message.InputResponse {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*message.InputResponse, 0, len(m.sent))

	for _, frame := range m.sent {
		resp, err := message.DecodeResponse(frame)
		require.NoError(t, err)

		out = append(out, resp)
	}

	return out
}

// recordingPresenter captures presenter callbacks.
type recordingPresenter struct {
	mu     sync.Mutex
	opened []config.Prompt
	closed []config.Closed
}

func (p *recordingPresenter) OnOpen(prompt config.Prompt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.opened = append(p.opened, prompt)
}

func (p *recordingPresenter) OnClose(closed config.Closed) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = append(p.closed, closed)
}

func (p *recordingPresenter) snapshot() ([]config.Prompt, []config.Closed) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]config.Prompt(nil), p.opened...), append([]config.Closed(nil), p.closed...)
}

// panickingPresenter panics on every callback.
type panickingPresenter struct{}

func (panickingPresenter) OnOpen(config.Prompt) { panic("open exploded") }
func (panickingPresenter) OnClose(config.Closed) { panic("close exploded") }

// recordingSink captures requests handed over by the dispatcher.
type recordingSink struct {
	mu       sync.Mutex
	requests []message.Request
	err      error
}

func (s *recordingSink) OpenRequest(_ context.Context, req message.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.requests = append(s.requests, req)

	return nil
}

func (s *recordingSink) received() []message.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]message.Request(nil), s.requests...)
}

// blockingSender holds every SendFrame until release is closed.
type blockingSender struct {
	entered chan struct{}
	release chan struct{}

	mu   sync.Mutex
	sent [][]byte
}

func newBlockingSender() *blockingSender {
	return &blockingSender{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (b *blockingSender) SendFrame(_ context.Context, frame []byte) error {
	select {
	case b.entered <- struct{}{}:
	default:
	}

	<-b.release

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sent = append(b.sent, append([]byte(nil), frame...))

	return nil
}

func (b *blockingSender) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.sent)
}
