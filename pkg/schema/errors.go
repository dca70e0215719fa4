package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilSchema is returned when parsing against a nil schema.
	ErrNilSchema = errors.New("schema: schema is nil")
	// ErrNilFlagSet is returned by FromFlagSet/FromCommand for nil input.
	ErrNilFlagSet = errors.New("schema: flag set is nil")
	// ErrRequired marks a required field that was left empty.
	ErrRequired = errors.New("schema: required argument missing")
	// ErrInvalidChoice marks a value outside the declared choice set.
	ErrInvalidChoice = errors.New("schema: invalid choice")
	// ErrInvalidValue marks a value that could not be parsed or coerced.
	ErrInvalidValue = errors.New("schema: invalid value")
	// ErrUnexpectedArgs marks positional arguments nothing was declared for.
	ErrUnexpectedArgs = errors.New("schema: unexpected arguments")
)

// ValidationError reports why an argument vector was rejected. Reason is one
// of the sentinel errors above; Cause carries the underlying parse error when
// there is one.
type ValidationError struct {
	Field   string
	Token   string
	Value   string
	Choices []string
	Reason  error
	Cause   error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("schema: ")
	if e.Token != "" {
		fmt.Fprintf(&b, "argument %s: ", e.Token)
	}
	switch {
	case errors.Is(e.Reason, ErrRequired):
		b.WriteString("required")
	case errors.Is(e.Reason, ErrInvalidChoice):
		quoted := make([]string, len(e.Choices))
		for i, c := range e.Choices {
			quoted[i] = fmt.Sprintf("%q", c)
		}
		fmt.Fprintf(&b, "invalid choice %q (choose from %s)", e.Value, strings.Join(quoted, ", "))
	case errors.Is(e.Reason, ErrUnexpectedArgs):
		fmt.Fprintf(&b, "unrecognized arguments: %s", e.Value)
	case e.Cause != nil:
		b.WriteString(e.Cause.Error())
	default:
		fmt.Fprintf(&b, "invalid value %q", e.Value)
	}
	return b.String()
}

// Unwrap exposes both the sentinel reason and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Reason != nil {
		out = append(out, e.Reason)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}
