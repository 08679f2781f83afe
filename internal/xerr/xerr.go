// Package xerr defines a typed error hierarchy, shared by every
// internal package so a caller can tell a malformed expression
// (StaticError) from a failure discovered only at evaluation time
// (DynamicError) without parsing message strings. W3C error codes
// (e.g. "FORG0001") are preserved as the Code field.
package xerr

import "fmt"

// Kind classifies an Error.
type Kind int

const (
	// Parse reports malformed XML or malformed XPath syntax.
	Parse Kind = iota
	// Static reports a well-formed but semantically invalid XPath
	// expression: unbound prefix, unknown function/arity, an obvious
	// type mismatch detectable without evaluating.
	Static
	// Dynamic reports a failure discovered only during evaluation:
	// division by zero on exact types, cast failure, out-of-range,
	// regex compile failure, cardinality violation.
	Dynamic
	// Type reports operand types incompatible with an operator.
	Type
	// Structural reports a tree mutation that would violate a
	// structural invariant.
	Structural
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case Static:
		return "StaticError"
	case Dynamic:
		return "DynamicError"
	case Type:
		return "TypeError"
	case Structural:
		return "StructuralError"
	}
	return "Error"
}

// Error is the concrete error type carried by every failure this module
// reports.
type Error struct {
	Kind Kind
	// Code is a W3C-style error code where one applies (e.g. "FORG0001",
	// "FOAR0001"), or "" when none does.
	Code string
	// Message is a human-readable description.
	Message string
	// Offset is the 1-based offset into the XPath source where the
	// error was detected, or -1 when not applicable (e.g. StructuralError).
	Offset int
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		if e.Code != "" {
			return fmt.Sprintf("%s [%s] at offset %d: %s", e.Kind, e.Code, e.Offset, e.Message)
		}
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is(err, xerr.Sentinel(xerr.Parse)) style comparisons
// against a Kind wrapped by Sentinel.
func (e *Error) Is(target error) bool {
	if s, ok := target.(kindSentinel); ok {
		return e.Kind == Kind(s)
	}
	return false
}

type kindSentinel Kind

func (s kindSentinel) Error() string { return Kind(s).String() }

// Sentinel returns a value usable with errors.Is(err, xerr.Sentinel(xerr.Static)).
func Sentinel(k Kind) error { return kindSentinel(k) }

func newf(k Kind, offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Offset: offset}
}

// oneBased converts a 0-based source offset (as carried by lexer tokens
// and AST nodes) to the 1-based form stored in Error.Offset, leaving -1
// ("not applicable") unchanged.
func oneBased(offset int) int {
	if offset >= 0 {
		return offset + 1
	}
	return offset
}

// Parsef builds a ParseError at the given 0-based source offset, recorded
// 1-based in Error.Offset.
func Parsef(offset int, format string, args ...interface{}) *Error {
	return newf(Parse, oneBased(offset), format, args...)
}

// Staticf builds a StaticError at the given 0-based source offset (or -1),
// recorded 1-based in Error.Offset.
func Staticf(offset int, format string, args ...interface{}) *Error {
	return newf(Static, oneBased(offset), format, args...)
}

// Dynamicf builds a DynamicError carrying a W3C error code.
func Dynamicf(code, format string, args ...interface{}) *Error {
	e := newf(Dynamic, -1, format, args...)
	e.Code = code
	return e
}

// Typef builds a TypeError carrying a W3C error code.
func Typef(code, format string, args ...interface{}) *Error {
	e := newf(Type, -1, format, args...)
	e.Code = code
	return e
}

// Structuralf builds a StructuralError.
func Structuralf(format string, args ...interface{}) *Error {
	return newf(Structural, -1, format, args...)
}
