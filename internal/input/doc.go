// Package input holds the fixed rules of the three trade input kinds.
//
// It defines the closed set of request kinds, the live character filter
// applied while the user types, and the submit-time validation that decides
// whether a pending input may be answered. Everything here is pure: the
// session state machine in the protocol package owns the state these rules
// are applied to.
package input
