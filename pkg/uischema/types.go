package uischema

import "strings"

// Store keeps the parsed overlays keyed by form name. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Overlay
}

// Overlay describes the presentation overrides for one form.
type Overlay struct {
	Name   string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig captures form-level wording.
type FormConfig struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
	RunLabel    string `json:"runLabel" yaml:"runLabel" toml:"runLabel"`
}

// FieldConfig customises how a single field is presented.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty" toml:"helpText,omitempty"`
	// Widget names the editor to use, e.g. "file" for a plain string flag.
	Widget string `json:"widget,omitempty" yaml:"widget,omitempty" toml:"widget,omitempty"`
}

// Field returns the overrides for a field name. Names are matched after
// trimming and with dashes and underscores treated alike, so an overlay
// written for "input-dir" also applies to "input_dir".
func (o *Overlay) Field(name string) (FieldConfig, bool) {
	if o == nil || len(o.Fields) == 0 {
		return FieldConfig{}, false
	}
	cfg, ok := o.Fields[NormalizeFieldName(name)]
	return cfg, ok
}

// Title returns the overlay title, or fallback when none is set.
func (o *Overlay) Title(fallback string) string {
	if o == nil || strings.TrimSpace(o.Form.Title) == "" {
		return fallback
	}
	return o.Form.Title
}

// NormalizeFieldName canonicalises a field key for lookups.
func NormalizeFieldName(name string) string {
	trimmed := strings.TrimSpace(name)
	trimmed = strings.TrimLeft(trimmed, "-")
	return strings.ReplaceAll(trimmed, "-", "_")
}
