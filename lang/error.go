package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are derived from these with [Error.With]
// or [Error.Wrap] and still satisfy [errors.Is] against their sentinel.
var (
	ErrEmptyExpression       = NewError("empty expression")
	ErrMismatchedParentheses = NewError("mismatched parentheses")
	ErrInsufficientOperands  = NewError("insufficient operands")
	ErrUnresolvedExpression  = NewError("unresolved expression")
	ErrVariableNotFound      = NewError("variable not found")
	ErrNotAnObject           = NewError("not an object")
	ErrInvalidVariableAccess = NewError("invalid variable access")
	ErrInvalidOperatorTypes  = NewError("invalid operator types")
	ErrDivisionByZero        = NewError("division by zero")
	ErrMalformedForLoop      = NewError("malformed for loop")
	ErrForTargetNotList      = NewError("for target is not a list")
	ErrIfConditionNotBoolean = NewError("if condition is not a boolean")
	ErrUnmatchedEndfor       = NewError("unmatched endfor")
	ErrUnmatchedEndif        = NewError("unmatched endif")
	ErrUnmatchedElse         = NewError("unmatched else")
	ErrUnknownControlCommand = NewError("unknown control command")

	ErrUnclosedBlock     = NewError("unclosed block")
	ErrMaxDepthExceeded  = NewError("maximum nesting depth exceeded")
	ErrInvalidNumber     = NewError("invalid number value")
	ErrInvalidValueType  = NewError("invalid value type")
	ErrReadInput         = NewError("failed to read input")
	ErrUnsupportedFormat = NewError("unsupported format")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  *Error      // Sentinel this error derives from
	msg   string      // Base message
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an *Error, that error is returned.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The message has the form "<msg>: <cause> (key=value, ...)", omitting any
// part that is not set.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if len(e.attrs) == 0 {
		return s
	}

	attr := make([]string, 0, len(e.attrs))
	for _, a := range e.attrs {
		attr = append(attr, a.String())
	}

	return s + " (" + strings.Join(attr, ", ") + ")"
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.kind != nil && e.kind == t.kind
}

// Attr returns the value of the attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// WithPosition adds the template source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	return e.With(slog.Int("line", pos.Line), slog.Int("column", pos.Column))
}

// atPosition attaches pos to err unless it already carries a position.
func atPosition(err error, pos Position) error {
	ee := WrapError(err)
	if _, ok := ee.Attr("line"); ok {
		return ee
	}

	return ee.WithPosition(pos)
}
