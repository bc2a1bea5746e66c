package tradeinput_test

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	tradeinput "github.com/wagiedev/trade-input-go"
)

// host is the trading host end of an in-memory connection.
type host struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func connect(t *testing.T, opts ...tradeinput.Option) (tradeinput.Client, *host, *tradeinput.ChannelPresenter) {
	t.Helper()

	hostConn, clientConn := net.Pipe()
	presenter := tradeinput.NewChannelPresenter(8)

	client := tradeinput.NewClient()

	opts = append([]tradeinput.Option{
		tradeinput.WithTransport(tradeinput.NewStreamTransport(nil, clientConn)),
		tradeinput.WithPresenter(presenter),
	}, opts...)

	require.NoError(t, client.Start(context.Background(), opts...))

	t.Cleanup(func() {
		_ = client.Close()
		_ = hostConn.Close()
	})

	return client, &host{t: t, conn: hostConn, reader: bufio.NewReader(hostConn)}, presenter
}

func (h *host) request(req tradeinput.Request) {
	h.t.Helper()

	frame, err := tradeinput.EncodeMessage(req)
	require.NoError(h.t, err)

	_, err = h.conn.Write(append(binary.AppendUvarint(nil, uint64(len(frame))), frame...))
	require.NoError(h.t, err)
}

// expectResponse reads one response in the background while fn runs.
func (h *host) expectResponse(fn func()) *tradeinput.InputResponse {
	h.t.Helper()

	type result struct {
		resp *tradeinput.InputResponse
		err  error
	}

	out := make(chan result, 1)

	go func() {
		_ = h.conn.SetReadDeadline(time.Now().Add(2 * time.Second))

		size, err := binary.ReadUvarint(h.reader)
		if err != nil {
			out <- result{err: err}

			return
		}

		frame := make([]byte, size)
		if _, err := io.ReadFull(h.reader, frame); err != nil {
			out <- result{err: err}

			return
		}

		msg, err := tradeinput.DecodeMessage(frame)
		if err != nil {
			out <- result{err: err}

			return
		}

		resp, _ := msg.(*tradeinput.InputResponse)
		out <- result{resp: resp}
	}()

	fn()

	r := <-out
	require.NoError(h.t, r.err)
	require.NotNil(h.t, r.resp)

	return r.resp
}

func nextOpen(t *testing.T, presenter *tradeinput.ChannelPresenter) tradeinput.Prompt {
	t.Helper()

	select {
	case ev := <-presenter.Events():
		require.NotNil(t, ev.Open, "expected an open event")

		return *ev.Open
	case <-time.After(2 * time.Second):
		t.Fatal("no prompt opened")

		return tradeinput.Prompt{}
	}
}

func TestClient_PriceAccepted(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	client, h, presenter := connect(t)

	h.request(&tradeinput.PriceRequest{Prompt: "Set a price"})

	prompt := nextOpen(t, presenter)
	require.Equal(t, tradeinput.KindPrice, prompt.Kind)
	require.Equal(t, "Set a price", prompt.Text)

	text, err := client.TextChanged(ctx, "12.50")
	require.NoError(t, err)
	require.Equal(t, "12.50", text)

	resp := h.expectResponse(func() {
		_, err := client.Submit(ctx)
		require.NoError(t, err)
	})

	require.Equal(t, &tradeinput.InputResponse{Kind: tradeinput.KindPrice, Value: "12.50", Accepted: true}, resp)
	require.Equal(t, tradeinput.StateIdle, client.State(ctx))

	require.NoError(t, client.Close())
}

func TestClient_QuantityBound(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	client, h, presenter := connect(t)

	h.request(&tradeinput.QuantityRequest{Prompt: "How many?", MaxQuantity: 10})
	nextOpen(t, presenter)

	_, err := client.TextChanged(ctx, "15")
	require.NoError(t, err)

	_, err = client.Submit(ctx)
	vErr, ok := errors.AsType[*tradeinput.ValidationError](err)
	require.True(t, ok)
	require.Equal(t, tradeinput.CodeExceedsMax, vErr.Code)
	require.Equal(t, int32(10), vErr.Bound)
	require.Equal(t, tradeinput.StateAwaiting, client.State(ctx))

	_, err = client.TextChanged(ctx, "5")
	require.NoError(t, err)

	resp := h.expectResponse(func() {
		_, err := client.Submit(ctx)
		require.NoError(t, err)
	})

	require.Equal(t, "5", resp.Value)
	require.True(t, resp.Accepted)

	require.NoError(t, client.Close())
}

func TestClient_SearchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	client, h, presenter := connect(t)

	h.request(&tradeinput.SearchRequest{Prompt: "Search"})
	nextOpen(t, presenter)

	resp := h.expectResponse(func() {
		_, err := client.Cancel(ctx)
		require.NoError(t, err)
	})

	require.Equal(t, &tradeinput.InputResponse{Kind: tradeinput.KindSearch}, resp)

	ev := <-presenter.Events()
	require.NotNil(t, ev.Close)
	require.Equal(t, tradeinput.OutcomeCancelled, ev.Close.Outcome)

	require.NoError(t, client.Close())
}

func TestClient_ReplacedRequestGetsNoResponse(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	client, h, presenter := connect(t)

	h.request(&tradeinput.PriceRequest{Prompt: "first"})
	first := nextOpen(t, presenter)

	h.request(&tradeinput.SearchRequest{Prompt: "second"})
	second := nextOpen(t, presenter)
	require.NotEqual(t, first.ID, second.ID)

	_, err := client.TextChanged(ctx, "ab")
	require.NoError(t, err)

	resp := h.expectResponse(func() {
		_, err := client.Submit(ctx)
		require.NoError(t, err)
	})

	require.Equal(t, tradeinput.KindSearch, resp.Kind)

	require.NoError(t, client.Close())
}

func TestClient_PendingTimeout(t *testing.T) {
	_, h, presenter := connect(t, tradeinput.WithPendingTimeout(50*time.Millisecond))

	resp := h.expectResponse(func() {
		h.request(&tradeinput.QuantityRequest{Prompt: "How many?", MaxQuantity: 3})
	})

	require.Equal(t, &tradeinput.InputResponse{Kind: tradeinput.KindQuantity}, resp)

	nextOpen(t, presenter)

	ev := <-presenter.Events()
	require.NotNil(t, ev.Close)
	require.Equal(t, tradeinput.OutcomeExpired, ev.Close.Outcome)
}

func TestClient_NotStarted(t *testing.T) {
	client := tradeinput.NewClient()

	_, err := client.Submit(context.Background())
	require.ErrorIs(t, err, tradeinput.ErrClientNotConnected)
	require.NoError(t, client.Close())
}
