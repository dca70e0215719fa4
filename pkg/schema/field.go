package schema

// Field describes one argument of a schema. Values are handed out by copy, so a
// Field obtained from a Schema never changes underneath its holder.
type Field struct {
	Name       string    `json:"name"`
	Flag       string    `json:"flag,omitempty"`
	Shorthand  string    `json:"shorthand,omitempty"`
	Kind       Kind      `json:"kind"`
	Type       ValueType `json:"type"`
	Required   bool      `json:"required"`
	Positional bool      `json:"positional,omitempty"`
	Choices    []string  `json:"choices,omitempty"`
	// Default is the raw textual default, as it would be typed on a command
	// line. Empty means the field has no default.
	Default string `json:"default,omitempty"`
	Usage   string `json:"usage,omitempty"`
}

// Token returns the command-line token that introduces the field, or the bare
// name for positionals.
func (f Field) Token() string {
	if f.Positional || f.Flag == "" {
		return f.Name
	}
	return f.Flag
}

// HasChoices reports whether the field is restricted to a finite set of values.
func (f Field) HasChoices() bool {
	return len(f.Choices) > 0
}

// Allows reports whether value is acceptable for a choice-restricted field.
// Fields without choices accept anything.
func (f Field) Allows(value string) bool {
	if !f.HasChoices() {
		return true
	}
	for _, choice := range f.Choices {
		if choice == value {
			return true
		}
	}
	return false
}

func (f Field) clone() Field {
	out := f
	if len(f.Choices) > 0 {
		out.Choices = append([]string(nil), f.Choices...)
	}
	return out
}
