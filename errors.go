package xdom

import (
	"fmt"

	"github.com/basilisk-labs/xdom/internal/tree"
	"github.com/basilisk-labs/xdom/internal/xerr"
)

// Kind classifies an Error: every failure this package returns carries
// one of these five tags.
type Kind int

const (
	ParseError Kind = iota
	StaticError
	DynamicError
	TypeError
	StructuralErrorKind
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case StaticError:
		return "StaticError"
	case DynamicError:
		return "DynamicError"
	case TypeError:
		return "TypeError"
	case StructuralErrorKind:
		return "StructuralError"
	}
	return "UnknownError"
}

// Error is the public error type every xdom operation returns on
// failure, carrying a kind tag, a human-readable message and, for
// parser/static errors, a 1-based source offset (-1 when not
// applicable).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Offset  int
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("xdom: %s: %s (offset %d)", e.Kind, e.Message, e.Offset)
	}
	return fmt.Sprintf("xdom: %s: %s", e.Kind, e.Message)
}

// wrapErr translates an internal/xerr.Error or internal/tree.StructuralError
// into the public Error type, preserving kind, code, message and offset.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if xe, ok := err.(*xerr.Error); ok {
		return &Error{Kind: fromInternalKind(xe.Kind), Code: xe.Code, Message: xe.Message, Offset: xe.Offset}
	}
	if se, ok := err.(*tree.StructuralError); ok {
		return &Error{Kind: StructuralErrorKind, Message: fmt.Sprintf("%s: %s", se.Op, se.Message), Offset: -1}
	}
	return &Error{Kind: DynamicError, Message: err.Error(), Offset: -1}
}

func fromInternalKind(k xerr.Kind) Kind {
	switch k {
	case xerr.Parse:
		return ParseError
	case xerr.Static:
		return StaticError
	case xerr.Dynamic:
		return DynamicError
	case xerr.Type:
		return TypeError
	case xerr.Structural:
		return StructuralErrorKind
	}
	return DynamicError
}
