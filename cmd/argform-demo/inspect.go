package main

import (
	"encoding/json"
	"io"

	"github.com/kballard/go-shellquote"

	"github.com/goliatone/go-argform/internal/demo"
	"github.com/goliatone/go-argform/pkg/form"
)

type inspection struct {
	Title    string              `json:"title"`
	RunLabel string              `json:"runLabel"`
	Controls []inspectionControl `json:"controls"`
	Argv     []string            `json:"argv"`
	Command  string              `json:"command"`
}

type inspectionControl struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Help        string   `json:"help,omitempty"`
	Options     []string `json:"options,omitempty"`
	Path        string   `json:"path,omitempty"`
	Required    bool     `json:"required"`
	Value       any      `json:"value"`
}

func writeInspection(w io.Writer, f *form.Form) error {
	values := f.State().Snapshot()
	argv := f.Argv()
	report := inspection{
		Title:    f.Title(),
		RunLabel: f.RunLabel(),
		Argv:     argv,
		Command:  shellquote.Join(append([]string{demo.Name}, argv...)...),
	}
	for _, c := range f.Controls() {
		entry := inspectionControl{
			Name:        c.Name(),
			Kind:        c.Kind.String(),
			Label:       c.Label,
			Placeholder: c.Placeholder,
			Help:        c.Help,
			Options:     c.Options,
			Required:    !c.Optional(),
			Value:       values[c.Name()],
		}
		if c.Path != form.PathNone {
			entry.Path = c.Path.String()
		}
		report.Controls = append(report.Controls, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
