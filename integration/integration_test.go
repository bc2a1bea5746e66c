//go:build integration

package integration

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tradeinput "github.com/wagiedev/trade-input-go"
)

// tcpHost is a trading host listening on a loopback port.
type tcpHost struct {
	t        *testing.T
	listener net.Listener
	conn     net.Conn
	reader   *bufio.Reader
}

func listen(t *testing.T) *tcpHost {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() { _ = listener.Close() })

	return &tcpHost{t: t, listener: listener}
}

func (h *tcpHost) address() string {
	return h.listener.Addr().String()
}

func (h *tcpHost) use(conn net.Conn) {
	h.t.Cleanup(func() { _ = conn.Close() })

	h.conn = conn
	h.reader = bufio.NewReader(conn)
}

func (h *tcpHost) send(req tradeinput.Request) {
	h.t.Helper()

	frame, err := tradeinput.EncodeMessage(req)
	require.NoError(h.t, err)

	_, err = h.conn.Write(append(binary.AppendUvarint(nil, uint64(len(frame))), frame...))
	require.NoError(h.t, err)
}

func (h *tcpHost) receive() *tradeinput.InputResponse {
	h.t.Helper()

	require.NoError(h.t, h.conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	size, err := binary.ReadUvarint(h.reader)
	require.NoError(h.t, err)

	frame := make([]byte, size)

	_, err = io.ReadFull(h.reader, frame)
	require.NoError(h.t, err)

	msg, err := tradeinput.DecodeMessage(frame)
	require.NoError(h.t, err)

	resp, ok := msg.(*tradeinput.InputResponse)
	require.True(h.t, ok)

	return resp
}

func startClient(t *testing.T, host *tcpHost, opts ...tradeinput.Option) (tradeinput.Client, *tradeinput.ChannelPresenter) {
	t.Helper()

	presenter := tradeinput.NewChannelPresenter(8)
	client := tradeinput.NewClient()

	type accepted struct {
		conn net.Conn
		err  error
	}

	acceptCh := make(chan accepted, 1)

	go func() {
		conn, err := host.listener.Accept()
		acceptCh <- accepted{conn: conn, err: err}
	}()

	opts = append([]tradeinput.Option{
		tradeinput.WithAddress(host.address()),
		tradeinput.WithPresenter(presenter),
	}, opts...)

	require.NoError(t, client.Start(context.Background(), opts...))

	a := <-acceptCh
	require.NoError(t, a.err)
	host.use(a.conn)

	t.Cleanup(func() { _ = client.Close() })

	return client, presenter
}

func awaitOpen(t *testing.T, presenter *tradeinput.ChannelPresenter) tradeinput.Prompt {
	t.Helper()

	for {
		select {
		case ev := <-presenter.Events():
			if ev.Open != nil {
				return *ev.Open
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a prompt")
		}
	}
}
