package errors

import "fmt"

// The four fatal error classes of the compiler core. All of them abort the
// declaration being compiled; none are ever silently recovered.

// ParseError reports a missing or malformed annotation payload, or a provider
// token that resolved to a null/absent value.
type ParseError struct {
	*BaseError
	// Value is the offending value, attached for diagnostics. May be nil.
	Value interface{}
}

// NewParseError creates a ParseError with the offending value attached
func NewParseError(message string, value interface{}) *ParseError {
	err := &ParseError{
		BaseError: New(ParseErrorCode, message),
		Value:     value,
	}
	if value != nil {
		err.WithContext("offending_value", fmt.Sprintf("%v", value))
	}
	return err
}

// AccessibilityError reports that constant revival would require naming a
// private symbol that has no externally reachable alias.
type AccessibilityError struct {
	*BaseError
	// Accessor is the offending accessor path that cannot be named from
	// generated code.
	Accessor string
}

// NewAccessibilityError creates an AccessibilityError naming the offending
// accessor path
func NewAccessibilityError(accessor string) *AccessibilityError {
	err := &AccessibilityError{
		BaseError: Newf(AccessibilityErrorCode,
			"cannot access private symbol '%s' from generated code", accessor),
		Accessor: accessor,
	}
	err.WithContext("accessor", accessor)
	err.WithSuggestion(fmt.Sprintf("Expose a public constructor or field for '%s'", accessor))
	err.WithSuggestion("Or switch the binding to a factory provider that can reach the private symbol")
	return err
}

// FactoryProviderError reports an explicit null value supplied where a
// callable factory was required.
type FactoryProviderError struct {
	*BaseError
	// Token describes the binding whose factory was null. May be nil.
	Token interface{}
}

// NewFactoryProviderError creates a FactoryProviderError with the offending
// binding attached
func NewFactoryProviderError(message string, token interface{}) *FactoryProviderError {
	err := &FactoryProviderError{
		BaseError: New(FactoryProviderErrorCode, message),
		Token:     token,
	}
	if token != nil {
		err.WithContext("token", fmt.Sprintf("%v", token))
	}
	err.WithSuggestion("Provide a top-level function as the factory, not a null value")
	return err
}

// RevivalError reports a constant shape the reviver does not support.
//
// TODO: carry the full constant path into the message; today only the
// outermost shape is named.
type RevivalError struct {
	*BaseError
	// Shape describes the unsupported constant shape.
	Shape string
}

// NewRevivalError creates a RevivalError for an unsupported constant shape
func NewRevivalError(shape string) *RevivalError {
	err := &RevivalError{
		BaseError: Newf(RevivalErrorCode, "cannot revive constant of shape '%s'", shape),
		Shape:     shape,
	}
	err.WithContext("shape", shape)
	return err
}
