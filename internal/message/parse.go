package message

import (
	stderrors "errors"
	"fmt"

	"github.com/wagiedev/trade-input-go/internal/errors"
	"github.com/wagiedev/trade-input-go/internal/input"
)

var (
	errUnknownChannel   = stderrors.New("unknown channel")
	errUnknownInputType = stderrors.New("unknown input type")
	errNegativeBound    = stderrors.New("negative max quantity")
	errUnexpectedKind   = stderrors.New("unexpected message direction")
	errNilMessage       = stderrors.New("nil message")
	errCancelledValue   = stderrors.New("cancelled response carries a value")
)

// Encode serializes a message into one frame.
//
// Encoding fails only for values the wire format cannot represent: strings
// longer than MaxStringLength or not valid UTF-8, a negative MaxQuantity, an
// unknown response kind, or a cancelled response with a value. Callers that produce long prompts should pass
// them through TruncateString first.
func Encode(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, &errors.EncodeError{Err: errNilMessage}
	}

	w := &writer{buf: make([]byte, 0, 64)}
	channel := msg.Channel()

	if err := w.writeString(channel); err != nil {
		return nil, &errors.EncodeError{Channel: channel, Err: err}
	}

	var err error

	switch m := msg.(type) {
	case *PriceRequest:
		err = w.writeString(m.Prompt)
	case *QuantityRequest:
		if m.MaxQuantity < 0 {
			err = errNegativeBound

			break
		}

		if err = w.writeString(m.Prompt); err == nil {
			w.writeInt32(m.MaxQuantity)
		}
	case *SearchRequest:
		err = w.writeString(m.Prompt)
	case *InputResponse:
		err = encodeResponse(w, m)
	default:
		err = fmt.Errorf("%w: %T", errUnknownChannel, msg)
	}

	if err != nil {
		return nil, &errors.EncodeError{Channel: channel, Err: err}
	}

	return w.buf, nil
}

func encodeResponse(w *writer, m *InputResponse) error {
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: %d", errUnknownInputType, int(m.Kind))
	}

	if !m.Accepted && m.Value != "" {
		return errCancelledValue
	}

	if err := w.writeString(m.Kind.String()); err != nil {
		return err
	}

	if err := w.writeString(m.Value); err != nil {
		return err
	}

	w.writeBool(m.Accepted)

	return nil
}

// Decode parses one frame into exactly one message.
//
// Decode is total: any input either yields a well-formed message with every
// byte consumed, or a *errors.DecodeError and no message.
func Decode(frame []byte) (Message, error) {
	r := &reader{data: frame}

	channel, err := r.readString()
	if err != nil {
		return nil, &errors.DecodeError{Offset: r.offset, Err: fmt.Errorf("channel: %w", err)}
	}

	var msg Message

	switch channel {
	case ChannelRequestPrice:
		msg, err = decodePrice(r)
	case ChannelRequestQuantity:
		msg, err = decodeQuantity(r)
	case ChannelRequestSearch:
		msg, err = decodeSearch(r)
	case ChannelInputResponse:
		msg, err = decodeResponse(r)
	default:
		return nil, &errors.DecodeError{
			Channel: channel,
			Offset:  r.offset,
			Err:     fmt.Errorf("%w %q", errUnknownChannel, channel),
		}
	}

	if err == nil && r.remaining() != 0 {
		err = fmt.Errorf("%w: %d", errTrailingBytes, r.remaining())
	}

	if err != nil {
		return nil, &errors.DecodeError{Channel: channel, Offset: r.offset, Err: err}
	}

	return msg, nil
}

// DecodeRequest decodes a host-to-client frame.
// A well-formed frame travelling the other direction is a DecodeError.
func DecodeRequest(frame []byte) (Request, error) {
	msg, err := Decode(frame)
	if err != nil {
		return nil, err
	}

	req, ok := msg.(Request)
	if !ok {
		return nil, &errors.DecodeError{Channel: msg.Channel(), Offset: len(frame), Err: errUnexpectedKind}
	}

	return req, nil
}

// DecodeResponse decodes a client-to-host frame.
func DecodeResponse(frame []byte) (*InputResponse, error) {
	msg, err := Decode(frame)
	if err != nil {
		return nil, err
	}

	resp, ok := msg.(*InputResponse)
	if !ok {
		return nil, &errors.DecodeError{Channel: msg.Channel(), Offset: len(frame), Err: errUnexpectedKind}
	}

	return resp, nil
}

func decodePrice(r *reader) (*PriceRequest, error) {
	prompt, err := r.readString()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	return &PriceRequest{Prompt: prompt}, nil
}

func decodeQuantity(r *reader) (*QuantityRequest, error) {
	prompt, err := r.readString()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	bound, err := r.readInt32()
	if err != nil {
		return nil, fmt.Errorf("max quantity: %w", err)
	}

	if bound < 0 {
		return nil, fmt.Errorf("%w: %d", errNegativeBound, bound)
	}

	return &QuantityRequest{Prompt: prompt, MaxQuantity: bound}, nil
}

func decodeSearch(r *reader) (*SearchRequest, error) {
	prompt, err := r.readString()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	return &SearchRequest{Prompt: prompt}, nil
}

func decodeResponse(r *reader) (*InputResponse, error) {
	typeName, err := r.readString()
	if err != nil {
		return nil, fmt.Errorf("input type: %w", err)
	}

	kind, ok := input.ParseKind(typeName)
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownInputType, typeName)
	}

	value, err := r.readString()
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}

	accepted, err := r.readBool()
	if err != nil {
		return nil, fmt.Errorf("accepted: %w", err)
	}

	if !accepted && value != "" {
		return nil, fmt.Errorf("%w: %q", errCancelledValue, value)
	}

	return &InputResponse{Kind: kind, Value: value, Accepted: accepted}, nil
}
