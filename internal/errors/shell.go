package errors

import (
	"fmt"
	"strings"

	"github.com/mcncl/tojson/internal/value"
)

// ShellError is the structured error carried by error values. It travels
// through a conversion untouched and is reported with its source span.
type ShellError struct {
	Msg   string
	Label string
	Span  value.Span
	Help  string
}

// Error implements error interface
func (e *ShellError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: %s", e.Msg, e.Label)
	}
	return e.Msg
}

// Report renders the error with its span and help text for terminal output.
func (e *ShellError) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s", e.Msg)
	if e.Label != "" {
		fmt.Fprintf(&b, "\n  at %s: %s", e.Span, e.Label)
	}
	if e.Help != "" {
		fmt.Fprintf(&b, "\n  help: %s", e.Help)
	}
	return b.String()
}

// NewShellError creates a ShellError attributed to span.
func NewShellError(msg, label string, span value.Span) *ShellError {
	return &ShellError{
		Msg:   msg,
		Label: label,
		Span:  span,
	}
}

// CantConvert reports that a value of type from has no rendering in the
// target format.
func CantConvert(target, from string, span value.Span) *ShellError {
	return &ShellError{
		Msg:   fmt.Sprintf("Can't convert to %s.", target),
		Label: fmt.Sprintf("can't convert %s to %s", from, target),
		Span:  span,
	}
}

// GetSpan returns the span the error is attributed to.
func (e *ShellError) GetSpan() value.Span {
	return e.Span
}
