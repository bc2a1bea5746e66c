// Package message defines the four wire messages of the trade input protocol
// and their binary codec.
//
// Every frame starts with a channel identifier string that selects the
// message shape, followed by that shape's fields in a fixed order:
//
//	unitrademarket:request_price    promptMessage string
//	unitrademarket:request_quantity promptMessage string, maxQuantity int32
//	unitrademarket:request_search   promptMessage string
//	unitrademarket:input_response   inputType string, value string, accepted bool
//
// Strings are a VarInt byte length followed by UTF-8 bytes, integers are
// 4-byte big-endian, and booleans are a single 0x00 or 0x01 byte.
package message

import "github.com/wagiedev/trade-input-go/internal/input"

// Channel identifiers. These must match the host's packet IDs exactly.
const (
	NamespaceID = "unitrademarket"

	ChannelRequestPrice    = NamespaceID + ":request_price"
	ChannelRequestQuantity = NamespaceID + ":request_quantity"
	ChannelRequestSearch   = NamespaceID + ":request_search"
	ChannelInputResponse   = NamespaceID + ":input_response"
)

// Message is any frame carried on the channel.
// Use a type switch to determine the concrete type.
type Message interface {
	Channel() string
}

// Request is a host-to-client message asking for one input.
type Request interface {
	Message
	Kind() input.Kind
	PromptMessage() string
	// Bound is the inclusive quantity limit; zero for kinds without one.
	Bound() int32
}

// Compile-time verification that all message types implement Message.
var (
	_ Request = (*PriceRequest)(nil)
	_ Request = (*QuantityRequest)(nil)
	_ Request = (*SearchRequest)(nil)
	_ Message = (*InputResponse)(nil)
)

// PriceRequest asks the client for a price.
type PriceRequest struct {
	Prompt string
}

func (*PriceRequest) Channel() string         { return ChannelRequestPrice }
func (*PriceRequest) Kind() input.Kind        { return input.KindPrice }
func (r *PriceRequest) PromptMessage() string { return r.Prompt }
func (*PriceRequest) Bound() int32            { return 0 }

// QuantityRequest asks the client for a quantity of at most MaxQuantity.
type QuantityRequest struct {
	Prompt      string
	MaxQuantity int32
}

func (*QuantityRequest) Channel() string         { return ChannelRequestQuantity }
func (*QuantityRequest) Kind() input.Kind        { return input.KindQuantity }
func (r *QuantityRequest) PromptMessage() string { return r.Prompt }
func (r *QuantityRequest) Bound() int32          { return r.MaxQuantity }

// SearchRequest asks the client for a search term.
type SearchRequest struct {
	Prompt string
}

func (*SearchRequest) Channel() string         { return ChannelRequestSearch }
func (*SearchRequest) Kind() input.Kind        { return input.KindSearch }
func (r *SearchRequest) PromptMessage() string { return r.Prompt }
func (*SearchRequest) Bound() int32            { return 0 }

// InputResponse answers exactly one request.
// Accepted=false means the user cancelled, in which case Value is empty.
type InputResponse struct {
	Kind     input.Kind
	Value    string
	Accepted bool
}

func (*InputResponse) Channel() string { return ChannelInputResponse }

// Accept builds the response for a successfully validated value.
func Accept(kind input.Kind, value string) *InputResponse {
	return &InputResponse{Kind: kind, Value: value, Accepted: true}
}

// Cancelled builds the response for an aborted request.
func Cancelled(kind input.Kind) *InputResponse {
	return &InputResponse{Kind: kind}
}
