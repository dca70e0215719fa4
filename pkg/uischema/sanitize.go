package uischema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from overlay wording. Overlays are often shared
// with web renderers and may carry HTML that a terminal cannot show.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	// The policy escapes entities for HTML output; the terminal wants text.
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeField(cfg FieldConfig) FieldConfig {
	return FieldConfig{
		Label:       sanitizeText(cfg.Label),
		Placeholder: sanitizeText(cfg.Placeholder),
		HelpText:    sanitizeText(cfg.HelpText),
		Widget:      strings.ToLower(strings.TrimSpace(cfg.Widget)),
	}
}

func sanitizeForm(cfg FormConfig) FormConfig {
	return FormConfig{
		Title:       sanitizeText(cfg.Title),
		Description: sanitizeText(cfg.Description),
		RunLabel:    sanitizeText(cfg.RunLabel),
	}
}
