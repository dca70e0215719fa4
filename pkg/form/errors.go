package form

import "errors"

var (
	// ErrNilSchema is returned when Synthesize is called without a schema.
	ErrNilSchema = errors.New("form: schema is required")
	// ErrUnknownField is returned when state is addressed by a name that has
	// no control.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrTypeMismatch is returned when a toggle is written as text or a text
	// control as a boolean.
	ErrTypeMismatch = errors.New("form: value type does not match control")
	// ErrNotPath is returned when Browse targets a control without a picker.
	ErrNotPath = errors.New("form: control has no picker")
	// ErrNilPicker is returned when Browse is called without a picker.
	ErrNilPicker = errors.New("form: picker is required")
)
