package schema

// Args holds the typed values produced by Parse. Strings and paths are
// string, integers int, floats float64 and flags bool. Optional fields that
// were left empty hold their default, or nil when they have none.
type Args struct {
	names  []string
	values map[string]any
}

func newArgs(capacity int) Args {
	return Args{
		names:  make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

func (a *Args) set(name string, value any) {
	if _, exists := a.values[name]; !exists {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Len reports the number of fields.
func (a Args) Len() int {
	return len(a.names)
}

// Names returns field names in declaration order.
func (a Args) Names() []string {
	return append([]string(nil), a.names...)
}

// Get returns the typed value for name.
func (a Args) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name resolved to a non-nil value.
func (a Args) Has(name string) bool {
	v, ok := a.values[name]
	return ok && v != nil
}

// String returns the value of a string or path field, or "" when absent.
func (a Args) String(name string) string {
	s, _ := a.values[name].(string)
	return s
}

// Path is an alias of String for path fields.
func (a Args) Path(name string) string {
	return a.String(name)
}

// Int returns the value of an integer field, or 0 when absent.
func (a Args) Int(name string) int {
	i, _ := a.values[name].(int)
	return i
}

// Float returns the value of a float field, or 0 when absent.
func (a Args) Float(name string) float64 {
	f, _ := a.values[name].(float64)
	return f
}

// Bool returns the value of a flag field.
func (a Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

// Map returns a copy of the values keyed by field name.
func (a Args) Map() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
