package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-argform/pkg/schema"
)

var (
	ErrNilSession = errors.New("render: session is required")
	// ErrIncompleteSession is returned when a session lacks a collaborator.
	ErrIncompleteSession = sessionError("render: session is incomplete")
)

type sessionError string

func (e sessionError) Error() string { return string(e) }

func (e sessionError) with(part string) error {
	return fmt.Errorf("%w: missing %s", e, part)
}

// FieldError extracts the field a validation error points at, so frontends
// can mark the offending control. ok is false for errors not tied to a field.
func FieldError(err error) (field, message string, ok bool) {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) || verr.Field == "" {
		return "", "", false
	}
	return verr.Field, verr.Error(), true
}
