package message

import (
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"unicode/utf8"
)

const (
	// MaxStringLength is the largest string, in characters, a field may hold.
	MaxStringLength = 32767

	// maxStringBytes bounds the encoded length of a string field (up to 3 bytes
	// per UTF-16 unit on the host side).
	maxStringBytes = MaxStringLength * 3

	// maxVarIntBytes is the longest VarInt encoding of a 32-bit value.
	maxVarIntBytes = 5
)

var (
	errShortFrame     = stderrors.New("unexpected end of frame")
	errVarIntTooLong  = stderrors.New("varint too long")
	errInvalidUTF8    = stderrors.New("string is not valid UTF-8")
	errStringTooLong  = stderrors.New("string exceeds maximum length")
	errInvalidBoolean = stderrors.New("invalid boolean byte")
	errTrailingBytes  = stderrors.New("trailing bytes after message")
)

// writer appends wire fields to a byte slice.
type writer struct {
	buf []byte
}

func (w *writer) writeVarInt(v uint32) {
	w.buf = binary.AppendUvarint(w.buf, uint64(v))
}

func (w *writer) writeString(s string) error {
	if !utf8.ValidString(s) {
		return errInvalidUTF8
	}

	if utf8.RuneCountInString(s) > MaxStringLength || len(s) > maxStringBytes {
		return errStringTooLong
	}

	w.writeVarInt(uint32(len(s)))
	w.buf = append(w.buf, s...)

	return nil
}

func (w *writer) writeInt32(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) writeBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)

		return
	}

	w.buf = append(w.buf, 0)
}

// reader consumes wire fields from a frame. The first error sticks and
// offset records where decoding stopped.
type reader struct {
	data   []byte
	offset int
}

func (r *reader) remaining() int {
	return len(r.data) - r.offset
}

func (r *reader) readVarInt() (uint32, error) {
	var v uint32

	for i := range maxVarIntBytes {
		if r.remaining() == 0 {
			return 0, errShortFrame
		}

		b := r.data[r.offset]
		r.offset++

		v |= uint32(b&0x7f) << (7 * i)

		if b&0x80 == 0 {
			return v, nil
		}
	}

	return 0, errVarIntTooLong
}

func (r *reader) readString() (string, error) {
	n, err := r.readVarInt()
	if err != nil {
		return "", err
	}

	if n > maxStringBytes {
		return "", errStringTooLong
	}

	if int(n) > r.remaining() {
		return "", errShortFrame
	}

	raw := r.data[r.offset : r.offset+int(n)]
	if !utf8.Valid(raw) {
		return "", errInvalidUTF8
	}

	s := string(raw)
	if utf8.RuneCountInString(s) > MaxStringLength {
		return "", errStringTooLong
	}

	r.offset += int(n)

	return s, nil
}

func (r *reader) readInt32() (int32, error) {
	if r.remaining() < 4 {
		return 0, errShortFrame
	}

	v := binary.BigEndian.Uint32(r.data[r.offset:])
	r.offset += 4

	return int32(v), nil
}

func (r *reader) readBool() (bool, error) {
	if r.remaining() < 1 {
		return false, errShortFrame
	}

	b := r.data[r.offset]

	switch b {
	case 0:
		r.offset++

		return false, nil
	case 1:
		r.offset++

		return true, nil
	default:
		return false, fmt.Errorf("%w 0x%02x", errInvalidBoolean, b)
	}
}

// TruncateString shortens s to at most MaxStringLength characters so it
// always fits a string field.
func TruncateString(s string) string {
	if utf8.RuneCountInString(s) <= MaxStringLength {
		return s
	}

	count := 0

	for i := range s {
		if count == MaxStringLength {
			return s[:i]
		}

		count++
	}

	return s
}
