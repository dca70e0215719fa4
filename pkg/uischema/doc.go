// Package uischema loads optional overlay files that refine how a generated
// form is presented: titles, field labels, placeholders and help text. The
// schema stays the single source of truth for what a field accepts; overlays
// only change wording.
package uischema
