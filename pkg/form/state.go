package form

import (
	"fmt"
	"strconv"
	"sync"
)

// State holds the raw value of every control: a string for text, select and
// path controls and a bool for toggles. Its key set is fixed when the form is
// synthesized.
type State struct {
	mu     sync.RWMutex
	order  []string
	values map[string]any
}

func newState(controls []Control) *State {
	s := &State{
		order:  make([]string, 0, len(controls)),
		values: make(map[string]any, len(controls)),
	}
	for _, c := range controls {
		s.order = append(s.order, c.Name())
		s.values[c.Name()] = initialValue(c)
	}
	return s
}

func initialValue(c Control) any {
	if c.Kind == ControlToggle {
		on, _ := strconv.ParseBool(c.Field.Default)
		return on
	}
	return c.Field.Default
}

// Names returns the state keys in declaration order.
func (s *State) Names() []string {
	return append([]string(nil), s.order...)
}

// Get returns the raw value for name.
func (s *State) Get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Text returns the value for name as text. Toggles render as "true"/"false".
func (s *State) Text(name string) string {
	v, _ := s.Get(name)
	switch typed := v.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// Bool returns the value of a toggle.
func (s *State) Bool(name string) bool {
	v, _ := s.Get(name)
	on, _ := v.(bool)
	return on
}

// SetText writes the value of a text, select or path control.
func (s *State) SetText(name, value string) error {
	return s.set(name, value)
}

// SetBool writes the value of a toggle.
func (s *State) SetBool(name string, on bool) error {
	return s.set(name, on)
}

func (s *State) set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if fmt.Sprintf("%T", current) != fmt.Sprintf("%T", value) {
		return fmt.Errorf("%w: %q holds %T, got %T", ErrTypeMismatch, name, current, value)
	}
	s.values[name] = value
	return nil
}

// Snapshot copies the current values.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
