package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-argform/pkg/schema"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText      = "text"
	WidgetSelect    = "select"
	WidgetDirectory = "directory"
	WidgetFile      = "file"
	WidgetToggle    = "toggle"
)

// Matcher decides whether a widget should edit the supplied field.
type Matcher func(field schema.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. A non-empty hint, typically
// from an overlay file, is honoured before matcher evaluation when the field
// can be edited with it.
func (r *Registry) Resolve(field schema.Field, hint string) (string, bool) {
	if explicit := strings.ToLower(strings.TrimSpace(hint)); explicit != "" && Supports(explicit, field) {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) && Supports(entry.name, field) {
			return entry.name, true
		}
	}
	return "", false
}

// Supports reports whether a built-in widget can hold the field's values. A
// boolean flag only fits a toggle, a toggle only fits a boolean flag and a
// select needs a choice set. Unknown names are not supported.
func Supports(widget string, field schema.Field) bool {
	isBool := field.Type == schema.TypeBool && !field.Positional
	switch widget {
	case WidgetToggle:
		return isBool
	case WidgetSelect:
		return !isBool && field.HasChoices()
	case WidgetText, WidgetDirectory, WidgetFile:
		return !isBool
	default:
		return false
	}
}

// Names lists the widget names that have a matcher, highest priority first.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].priority > rules[j].priority
	})
	seen := make(map[string]bool, len(rules))
	var out []string
	for _, entry := range rules {
		if !seen[entry.name] {
			seen[entry.name] = true
			out = append(out, entry.name)
		}
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 90, func(field schema.Field) bool {
		return field.HasChoices()
	})

	r.Register(WidgetDirectory, 80, func(field schema.Field) bool {
		return field.Kind == schema.KindDirectory
	})

	r.Register(WidgetFile, 80, func(field schema.Field) bool {
		return field.Kind == schema.KindFile
	})

	r.Register(WidgetToggle, 70, func(field schema.Field) bool {
		return field.Kind == schema.KindFlag
	})
}
