package input

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxPrice is the largest price a Price input accepts.
const MaxPrice = 999_999_999

// MinSearchLength is the shortest search term a Search input accepts.
const MinSearchLength = 2

// Code names a submit-time validation failure.
type Code string

const (
	CodeEmptyInput    Code = "empty_input"
	CodeInvalidFormat Code = "invalid_format"
	CodeNonPositive   Code = "non_positive"
	CodeTooLarge      Code = "too_large"
	CodeExceedsMax    Code = "exceeds_max"
	CodeTooShort      Code = "too_short"
)

// ValidationError is a recoverable submit failure.
// The pending input stays open and the user may edit and retry.
type ValidationError struct {
	Kind Kind
	Code Code
	// Bound is the quantity limit, set only for CodeExceedsMax.
	Bound int32
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeEmptyInput:
		return "input is empty"
	case CodeInvalidFormat:
		return fmt.Sprintf("%s has an invalid format", e.Kind)
	case CodeNonPositive:
		return fmt.Sprintf("%s must be greater than zero", e.Kind)
	case CodeTooLarge:
		return fmt.Sprintf("%s must not exceed %d", e.Kind, MaxPrice)
	case CodeExceedsMax:
		return fmt.Sprintf("%s must not exceed %d", e.Kind, e.Bound)
	case CodeTooShort:
		return fmt.Sprintf("%s must be at least %d characters", e.Kind, MinSearchLength)
	default:
		return fmt.Sprintf("%s is invalid", e.Kind)
	}
}

// Is matches another ValidationError with the same Code, so callers can
// write errors.Is(err, &ValidationError{Code: CodeTooShort}).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// Validate checks raw text for kind and returns the trimmed value to send.
//
// Rules run in order (empty, format, range) and the first failure is returned.
// bound is only consulted for KindQuantity.
func Validate(kind Kind, raw string, bound int32) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", &ValidationError{Kind: kind, Code: CodeEmptyInput}
	}

	switch kind {
	case KindPrice:
		if err := validatePrice(value); err != nil {
			return "", err
		}
	case KindQuantity:
		if err := validateQuantity(value, bound); err != nil {
			return "", err
		}
	case KindSearch:
		if utf8.RuneCountInString(value) < MinSearchLength {
			return "", &ValidationError{Kind: kind, Code: CodeTooShort}
		}
	default:
		return "", fmt.Errorf("validate: unknown input kind %d", int(kind))
	}

	return value, nil
}

func validatePrice(value string) error {
	if !isDecimal(unsigned(value)) {
		return &ValidationError{Kind: KindPrice, Code: CodeInvalidFormat}
	}

	price, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return &ValidationError{Kind: KindPrice, Code: CodeInvalidFormat}
	}

	if price <= 0 {
		return &ValidationError{Kind: KindPrice, Code: CodeNonPositive}
	}

	if price > MaxPrice {
		return &ValidationError{Kind: KindPrice, Code: CodeTooLarge}
	}

	return nil
}

func validateQuantity(value string, bound int32) error {
	qty, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return &ValidationError{Kind: KindQuantity, Code: CodeInvalidFormat}
	}

	if qty <= 0 {
		return &ValidationError{Kind: KindQuantity, Code: CodeNonPositive}
	}

	if qty > int64(bound) {
		return &ValidationError{Kind: KindQuantity, Code: CodeExceedsMax, Bound: bound}
	}

	return nil
}

// unsigned drops one leading sign.
func unsigned(value string) string {
	if value != "" && (value[0] == '+' || value[0] == '-') {
		return value[1:]
	}

	return value
}

// isDecimal accepts digits with at most one '.', and at least one digit.
// strconv.ParseFloat alone would also take exponents, hex and "inf".
func isDecimal(value string) bool {
	digits := 0
	dots := 0

	for _, r := range value {
		switch {
		case isDigit(r):
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}

	return digits > 0 && dots <= 1
}
