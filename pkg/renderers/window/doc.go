// Package window is the full-screen frontend: the form on top, a scrolling
// log below, and a file picker overlay for path controls. It is built on
// bubbletea and renders with lipgloss.
package window
