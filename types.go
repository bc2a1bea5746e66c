package tradeinput

import (
	"github.com/wagiedev/trade-input-go/internal/config"
	"github.com/wagiedev/trade-input-go/internal/input"
	"github.com/wagiedev/trade-input-go/internal/message"
	"github.com/wagiedev/trade-input-go/internal/protocol"
)

// Re-export types from internal packages

// ===== Options and Configuration =====

// Options configures the behavior of the client.
type Options = config.Options

// DefaultPort is the port assumed when an address names only a host.
const DefaultPort = config.DefaultPort

// ===== Input Kinds and Rules =====

// Kind identifies which value a request asks for.
type Kind = input.Kind

const (
	// KindPrice asks for a positive decimal price.
	KindPrice = input.KindPrice
	// KindQuantity asks for a whole number between 1 and the request's bound.
	KindQuantity = input.KindQuantity
	// KindSearch asks for a search term of at least MinSearchLength characters.
	KindSearch = input.KindSearch
)

// ValidationError is a recoverable submit failure.
type ValidationError = input.ValidationError

// Code names a submit-time validation failure.
type Code = input.Code

const (
	CodeEmptyInput    = input.CodeEmptyInput
	CodeInvalidFormat = input.CodeInvalidFormat
	CodeNonPositive   = input.CodeNonPositive
	CodeTooLarge      = input.CodeTooLarge
	CodeExceedsMax    = input.CodeExceedsMax
	CodeTooShort      = input.CodeTooShort
)

const (
	// MaxPrice is the largest accepted price.
	MaxPrice = input.MaxPrice
	// MinSearchLength is the shortest accepted search term.
	MinSearchLength = input.MinSearchLength
	// MaxInputLength is the most characters the live filter keeps.
	MaxInputLength = input.MaxLength
)

// FilterText applies the live character filter of kind to text.
func FilterText(kind Kind, text string) string {
	return input.Filter(kind, text)
}

// ===== Messages =====

// Message is any frame exchanged with the host.
type Message = message.Message

// Request is one of the three host-to-client request messages.
type Request = message.Request

// PriceRequest asks for a price.
type PriceRequest = message.PriceRequest

// QuantityRequest asks for a quantity of at most MaxQuantity.
type QuantityRequest = message.QuantityRequest

// SearchRequest asks for a search term.
type SearchRequest = message.SearchRequest

// InputResponse is the client's single answer to a request.
type InputResponse = message.InputResponse

// EncodeMessage encodes msg into one frame.
func EncodeMessage(msg Message) ([]byte, error) {
	return message.Encode(msg)
}

// DecodeMessage decodes one frame. It never returns a partial message.
func DecodeMessage(frame []byte) (Message, error) {
	return message.Decode(frame)
}

// ===== Session and Presentation =====

// PendingInput is the request currently awaiting the user.
type PendingInput = protocol.PendingInput

// State is whether a request is pending.
type State = protocol.State

const (
	// StateIdle means no request is pending.
	StateIdle = protocol.StateIdle
	// StateAwaiting means one request awaits the user.
	StateAwaiting = protocol.StateAwaiting
)

// Presenter renders pending inputs. See config.Presenter for the calling rules.
type Presenter = config.Presenter

// PresenterFuncs adapts plain functions to Presenter.
type PresenterFuncs = config.PresenterFuncs

// Prompt describes a newly opened pending input.
type Prompt = config.Prompt

// Closed reports the end of a pending input.
type Closed = config.Closed

// Outcome is how a pending input ended.
type Outcome = config.Outcome

const (
	OutcomeAccepted  = config.OutcomeAccepted
	OutcomeCancelled = config.OutcomeCancelled
	OutcomeExpired   = config.OutcomeExpired
)
