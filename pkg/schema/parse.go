package schema

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Parse validates an argument vector against the schema and returns typed
// values. Every call builds fresh flag sets, so repeated calls with the same
// argv yield identical results.
//
// Tokenizing is delegated to pflag. Values are then coerced one field at a
// time so errors point at the offending field. A value that is empty after
// trimming whitespace counts as absent.
func (s *Schema) Parse(argv []string) (Args, error) {
	if s == nil {
		return Args{}, ErrNilSchema
	}

	tokens := newFlagSet(s.name)
	typed := newFlagSet(s.name)
	for _, f := range s.fields {
		declareTyped(typed, f)
		if f.Positional {
			continue
		}
		if f.Kind == KindFlag {
			tokens.BoolP(f.Name, f.Shorthand, false, f.Usage)
		} else {
			tokens.StringP(f.Name, f.Shorthand, "", f.Usage)
		}
	}

	if err := tokens.Parse(argv); err != nil {
		return Args{}, &ValidationError{Reason: ErrInvalidValue, Cause: err}
	}

	positionals := tokens.Args()
	next := 0
	args := newArgs(len(s.fields))
	for _, f := range s.fields {
		var (
			raw     string
			present bool
		)
		switch {
		case f.Positional:
			if next < len(positionals) {
				raw, present = positionals[next], true
				next++
			}
		case tokens.Changed(f.Name):
			raw, present = flagText(tokens, f), true
		}

		value, err := resolve(typed, f, raw, present)
		if err != nil {
			return Args{}, err
		}
		args.set(f.Name, value)
	}

	if next < len(positionals) {
		return Args{}, &ValidationError{
			Reason: ErrUnexpectedArgs,
			Value:  strings.Join(positionals[next:], " "),
		}
	}
	return args, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

func declareTyped(fs *pflag.FlagSet, f Field) {
	switch f.Type {
	case TypeInt:
		fs.Int(f.Name, 0, f.Usage)
	case TypeFloat:
		fs.Float64(f.Name, 0, f.Usage)
	case TypeBool:
		fs.Bool(f.Name, false, f.Usage)
	default:
		fs.String(f.Name, "", f.Usage)
	}
}

func flagText(fs *pflag.FlagSet, f Field) string {
	if f.Kind == KindFlag {
		on, _ := fs.GetBool(f.Name)
		return strconv.FormatBool(on)
	}
	raw, _ := fs.GetString(f.Name)
	return raw
}

func resolve(typed *pflag.FlagSet, f Field, raw string, present bool) (any, error) {
	if present && strings.TrimSpace(raw) == "" {
		present = false
	}

	if !present {
		if f.Required {
			return nil, &ValidationError{Field: f.Name, Token: f.Token(), Reason: ErrRequired}
		}
		if f.Default == "" {
			if f.Type == TypeBool {
				return false, nil
			}
			return nil, nil
		}
		// Defaults are trusted as declared and are not checked against choices.
		return coerce(typed, f, f.Default)
	}

	if !f.Allows(raw) {
		return nil, &ValidationError{
			Field:   f.Name,
			Token:   f.Token(),
			Value:   raw,
			Choices: append([]string(nil), f.Choices...),
			Reason:  ErrInvalidChoice,
		}
	}
	return coerce(typed, f, raw)
}

func coerce(typed *pflag.FlagSet, f Field, raw string) (any, error) {
	if f.Type != TypeString {
		raw = strings.TrimSpace(raw)
	}
	if err := typed.Set(f.Name, raw); err != nil {
		return nil, &ValidationError{
			Field:  f.Name,
			Token:  f.Token(),
			Value:  raw,
			Reason: ErrInvalidValue,
			Cause:  err,
		}
	}

	switch f.Type {
	case TypeInt:
		return typed.GetInt(f.Name)
	case TypeFloat:
		return typed.GetFloat64(f.Name)
	case TypeBool:
		return typed.GetBool(f.Name)
	default:
		return typed.GetString(f.Name)
	}
}
