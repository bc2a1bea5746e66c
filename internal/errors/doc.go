// Package errors defines error types for the trade input client.
//
// This package provides structured error types for the failure scenarios
// of the input protocol: malformed frames, transport failures and lifecycle
// misuse. All error types support unwrapping and can be checked using
// errors.Is and errors.As.
package errors
