// Package schema describes command-line argument schemas and parses argument
// vectors against them. A Schema is either declared directly with the builder
// methods or read from an existing pflag set or cobra command.
package schema

import (
	"fmt"
	"strings"
)

const helpName = "help"

// Schema is an ordered set of field descriptors. Declaration order is kept
// and drives both form layout and argv reconstruction.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// ArgOption adjusts a field while it is being declared.
type ArgOption func(*Field)

// New creates an empty schema. The name is used as the program name in parse
// errors and diagnostics.
func New(name string) *Schema {
	return &Schema{
		name:  strings.TrimSpace(name),
		index: make(map[string]int),
	}
}

// Required marks the field as mandatory.
func Required() ArgOption {
	return func(f *Field) {
		f.Required = true
	}
}

// Optional clears the required marker. Positionals are required unless this
// option is given.
func Optional() ArgOption {
	return func(f *Field) {
		f.Required = false
	}
}

// Choices restricts the field to a finite set of values. Choice fields are
// always edited through a selector, whatever their declared type.
func Choices(values ...string) ArgOption {
	return func(f *Field) {
		f.Choices = append([]string(nil), values...)
		if len(f.Choices) > 0 {
			f.Kind = KindChoice
		}
	}
}

// Default sets the value used when the field is left empty.
func Default(value any) ArgOption {
	return func(f *Field) {
		if value == nil {
			f.Default = ""
			return
		}
		f.Default = fmt.Sprint(value)
	}
}

// Shorthand registers a one-letter alias for a flagged field.
func Shorthand(short string) ArgOption {
	return func(f *Field) {
		f.Shorthand = strings.TrimPrefix(strings.TrimSpace(short), "-")
	}
}

// As overrides the declared value type.
func As(t ValueType) ArgOption {
	return func(f *Field) {
		if t != "" {
			f.Type = t
		}
	}
}

// Name returns the program name the schema was created with.
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Len reports the number of declared fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns copies of the field descriptors in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

// Field looks up a descriptor by name.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx].clone(), true
}

// String declares a free-text flag.
func (s *Schema) String(name, usage string, opts ...ArgOption) *Schema {
	return s.declare(Field{Name: name, Kind: KindText, Type: TypeString, Usage: usage}, opts)
}

// Int declares an integer flag.
func (s *Schema) Int(name, usage string, opts ...ArgOption) *Schema {
	return s.declare(Field{Name: name, Kind: KindText, Type: TypeInt, Usage: usage}, opts)
}

// Float declares a floating point flag.
func (s *Schema) Float(name, usage string, opts ...ArgOption) *Schema {
	return s.declare(Field{Name: name, Kind: KindText, Type: TypeFloat, Usage: usage}, opts)
}

// Bool declares an on/off flag. It is present on the command line only when on.
func (s *Schema) Bool(name, usage string, opts ...ArgOption) *Schema {
	return s.declare(Field{Name: name, Kind: KindFlag, Type: TypeBool, Usage: usage, Default: "false"}, opts)
}

// DirPath declares a flag holding a directory path.
func (s *Schema) DirPath(name, usage string, opts ...ArgOption) *Schema {
	return s.declare(Field{Name: name, Kind: KindDirectory, Type: TypePath, Usage: usage}, opts)
}

// FilePath declares a flag holding a file path.
func (s *Schema) FilePath(name, usage string, opts ...ArgOption) *Schema {
	return s.declare(Field{Name: name, Kind: KindFile, Type: TypePath, Usage: usage}, opts)
}

// Positional declares a positional argument. It is required unless Optional
// is passed. Positional paths are declared through Add.
func (s *Schema) Positional(name, usage string, opts ...ArgOption) *Schema {
	field := Field{Name: name, Kind: KindText, Type: TypeString, Usage: usage, Positional: true, Required: true}
	return s.declare(field, opts)
}

// Add appends a fully described field. Flag tokens are derived from the name
// when missing.
func (s *Schema) Add(field Field) *Schema {
	return s.declare(field, nil)
}

func (s *Schema) declare(field Field, opts []ArgOption) *Schema {
	for _, opt := range opts {
		if opt != nil {
			opt(&field)
		}
	}

	field.Name = strings.TrimSpace(field.Name)
	switch {
	case field.Name == "":
		panic("schema: field name is required")
	case field.Name == helpName:
		panic("schema: field name \"help\" is reserved")
	}
	if _, exists := s.index[field.Name]; exists {
		panic(fmt.Sprintf("schema: field %q already declared", field.Name))
	}

	if field.Type == "" {
		field.Type = TypeString
	}
	if field.Positional {
		field.Flag = ""
		field.Shorthand = ""
		if field.Kind == KindFlag {
			panic(fmt.Sprintf("schema: positional %q cannot be a flag", field.Name))
		}
	} else if field.Flag == "" {
		field.Flag = "--" + field.Name
	}
	if field.Type == TypeBool && !field.HasChoices() {
		// A required toggle must be given explicitly, with either value.
		field.Kind = KindFlag
	}
	if field.HasChoices() {
		field.Kind = KindChoice
	}

	s.index[field.Name] = len(s.fields)
	s.fields = append(s.fields, field.clone())
	return s
}

// Relaxed returns a copy of the schema with every field optional and without
// defaults. It accepts partial argument vectors and reports only the values
// that were actually given, which is what prefilling a form needs.
func (s *Schema) Relaxed() *Schema {
	if s == nil {
		return nil
	}
	out := New(s.name)
	for _, f := range s.fields {
		f = f.clone()
		f.Required = false
		f.Default = ""
		out.index[f.Name] = len(out.fields)
		out.fields = append(out.fields, f)
	}
	return out
}

// Without returns a copy of the schema minus the named fields. Unknown names
// are ignored.
func (s *Schema) Without(names ...string) *Schema {
	if s == nil {
		return nil
	}
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[strings.TrimSpace(name)] = true
	}
	out := New(s.name)
	for _, f := range s.fields {
		if drop[f.Name] {
			continue
		}
		out.index[f.Name] = len(out.fields)
		out.fields = append(out.fields, f.clone())
	}
	return out
}
