package config

import "github.com/wagiedev/trade-input-go/internal/input"

// Prompt describes a newly opened pending input for display.
//
// ID identifies the pending cycle; a later Prompt with a different ID replaces
// the earlier one. Bound is the inclusive quantity limit and is meaningful
// only for KindQuantity.
type Prompt struct {
	ID    string
	Kind  input.Kind
	Text  string
	Bound int32
}

// Outcome is how a pending input ended.
type Outcome string

const (
	// OutcomeAccepted means a validated value was sent to the host.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeCancelled means the user aborted the input.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeExpired means the safety timeout cancelled the input.
	OutcomeExpired Outcome = "expired"
)

// Closed reports the end of a pending input.
type Closed struct {
	ID      string
	Kind    input.Kind
	Outcome Outcome
}

// Presenter renders pending inputs and feeds user actions back to the session.
//
// The session calls these methods from its own goroutine, in order. They must
// not block and must not call back into the session synchronously; hand the
// event to the UI's own loop instead. Panics are recovered and logged.
type Presenter interface {
	// OnOpen is called when a request opens or replaces the pending input.
	OnOpen(prompt Prompt)

	// OnClose is called after a response for the pending input was sent.
	// Replacement by a newer request is reported through OnOpen only.
	OnClose(closed Closed)
}

// PresenterFuncs adapts plain functions to Presenter. Nil fields are skipped.
type PresenterFuncs struct {
	Open  func(Prompt)
	Close func(Closed)
}

// Compile-time verification that PresenterFuncs implements Presenter.
var _ Presenter = PresenterFuncs{}

func (f PresenterFuncs) OnOpen(prompt Prompt) {
	if f.Open != nil {
		f.Open(prompt)
	}
}

func (f PresenterFuncs) OnClose(closed Closed) {
	if f.Close != nil {
		f.Close(closed)
	}
}
