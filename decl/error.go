package decl

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax         = NewError("manifest syntax error")
	ErrUnterminated   = NewError("unterminated literal")
	ErrInvalidEscape  = NewError("invalid escape sequence")
	ErrInvalidLiteral = NewError("invalid literal")
	ErrInvalidSuffix  = NewError("invalid numeric suffix")
)

// Error is an error carrying optional structured logging attributes.
// It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped cause (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// If err already is an Error, it is returned as-is.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e matches target by sentinel identity. Derived
// errors created with Wrap or With still match their sentinel.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg == te.msg
}

// LogValue implements slog.LogValuer for structured logging.
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

// Wrap returns a new Error with the same message wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // share attrs
	}
}

// With returns a new Error carrying the additional attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	all := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	all = append(all, e.attrs...)
	all = append(all, attrs...)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: all,
	}
}

// ParseError reports a manifest syntax error with its source position.
type ParseError struct {
	Msg    string
	Line   int // 1-based
	Col    int // 1-based
	Source string
}

// Error implements the error interface. When the source is available the
// message includes the offending line with a caret marker.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Col))
	buf.WriteString(": ")
	buf.WriteString(e.Msg)

	if e.Source == "" {
		return buf.String()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return buf.String()
	}

	text := lines[e.Line-1]

	buf.WriteString("\n  ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(" | ")
	buf.WriteString(text)
	buf.WriteRune('\n')

	// Align the caret under the offending column.
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	pad := len(strconv.Itoa(e.Line)) + 5
	if e.Col > 0 {
		pad += e.Col - 1
	}

	buf.WriteString(strings.Repeat(" ", pad) + "^")

	return buf.String()
}
