package transport

import (
	"bufio"
	"context"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/errors"
)

const (
	// MaxFrameSize is the largest frame accepted in either direction.
	MaxFrameSize = 2097151 // 3-byte VarInt limit

	// readBufferSize is the bufio buffer size for the read side.
	readBufferSize = 64 * 1024
)

// Stream implements config.Transport over any io.ReadWriteCloser.
type Stream struct {
	log  *slog.Logger
	conn io.ReadWriteCloser

	mu       sync.Mutex // Serializes writes
	closing  atomic.Bool
	readOnce sync.Once

	closeOnce sync.Once
	closeErr  error
}

// Compile-time verification that Stream implements the Transport interface.
var _ config.Transport = (*Stream)(nil)

// New wraps an established byte stream.
func New(log *slog.Logger, conn io.ReadWriteCloser) *Stream {
	return &Stream{
		log:  log.With("component", "transport"),
		conn: conn,
	}
}

// Dial connects to a host over TCP.
func Dial(ctx context.Context, log *slog.Logger, address string) (*Stream, error) {
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &errors.TransportError{Op: "dial", Err: err}
	}

	log.Info("Connected to host", "address", address)

	return New(log, conn), nil
}

// ReadFrames starts reading length-prefixed frames.
//
// The returned frame channel is closed when the stream ends. A clean end of
// stream or an intentional Close produces no error; any other read failure is
// sent on the error channel before both channels close. Only the first call
// starts a reader; later calls receive ErrTransportClosed.
func (s *Stream) ReadFrames(ctx context.Context) (<-chan []byte, <-chan error) {
	frames := make(chan []byte)
	errs := make(chan error, 1)

	started := false

	s.readOnce.Do(func() {
		started = true

		go s.readLoop(ctx, frames, errs)
	})

	if !started {
		errs <- &errors.TransportError{Op: "read", Err: errors.ErrTransportClosed}

		close(errs)
		close(frames)
	}

	return frames, errs
}

func (s *Stream) readLoop(ctx context.Context, frames chan<- []byte, errs chan<- error) {
	defer close(errs)
	defer close(frames)
	defer s.log.Debug("Transport read loop stopped")

	reader := bufio.NewReaderSize(s.conn, readBufferSize)

	for {
		frame, err := readFrame(reader)
		if err != nil {
			if s.closing.Load() || stderrors.Is(err, io.EOF) {
				s.log.Debug("Transport stream ended", "error", err)

				return
			}

			s.log.Warn("Transport read failed", "error", err)
			errs <- &errors.TransportError{Op: "read", Err: err}

			return
		}

		select {
		case frames <- frame:
		case <-ctx.Done():
			return
		}
	}
}

func readFrame(r *bufio.Reader) ([]byte, error) {
	size, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}

	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", errors.ErrFrameTooLarge, size)
	}

	frame := make([]byte, size)
	if _, err := io.ReadFull(r, frame); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	return frame, nil
}

// SendFrame writes one frame. It is safe for concurrent use.
func (s *Stream) SendFrame(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(frame) > MaxFrameSize {
		return &errors.TransportError{
			Op:  "write",
			Err: fmt.Errorf("%w: %d bytes", errors.ErrFrameTooLarge, len(frame)),
		}
	}

	buf := binary.AppendUvarint(make([]byte, 0, len(frame)+binary.MaxVarintLen32), uint64(len(frame)))
	buf = append(buf, frame...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closing.Load() {
		return &errors.TransportError{Op: "write", Err: errors.ErrTransportClosed}
	}

	if conn, ok := s.conn.(net.Conn); ok {
		deadline, _ := ctx.Deadline()
		_ = conn.SetWriteDeadline(deadline)
	}

	if _, err := s.conn.Write(buf); err != nil {
		s.log.Error("Failed to write frame", "error", err)

		return &errors.TransportError{Op: "write", Err: err}
	}

	s.log.Debug("Sent frame", "bytes", len(frame))

	return nil
}

// Close closes the underlying stream. It is safe to call Close multiple times.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closing.Store(true)
		s.closeErr = s.conn.Close()
		s.log.Debug("Transport closed")
	})

	return s.closeErr
}
