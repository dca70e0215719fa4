package uischema_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-argform/pkg/uischema"
)

func TestLoadFS_KeyedFormsAcrossFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"overlays/demo.yaml": {Data: []byte(`
forms:
  demo:
    form:
      title: Demo <b>runner</b>
    fields:
      input-dir:
        label: Source folder
        placeholder: Pick a folder
`)},
		"overlays/tool.toml": {Data: []byte(`
[forms.tool.form]
title = "Tool"

[forms.tool.fields.mode]
helpText = "Fast or slow"
`)},
		"overlays/notes.txt": {Data: []byte("ignored")},
	}

	store, err := uischema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"demo", "tool"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	demo, ok := store.Form("demo")
	if !ok {
		t.Fatalf("demo overlay missing")
	}
	if got := demo.Title("fallback"); got != "Demo runner" {
		t.Fatalf("title = %q, want markup stripped", got)
	}
	field, ok := demo.Field("input_dir")
	if !ok {
		t.Fatalf("expected dash/underscore-insensitive lookup")
	}
	want := uischema.FieldConfig{Label: "Source folder", Placeholder: "Pick a folder"}
	if diff := cmp.Diff(want, field); diff != "" {
		t.Fatalf("field mismatch (-want +got):\n%s", diff)
	}

	tool, ok := store.Form("tool")
	if !ok {
		t.Fatalf("tool overlay missing")
	}
	if cfg, _ := tool.Field("mode"); cfg.HelpText != "Fast or slow" {
		t.Fatalf("help = %q", cfg.HelpText)
	}
}

func TestLoadFile_DefaultOverlayAppliesToAnyForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.json")
	data := []byte(`{"form": {"title": "Fish &amp; Chips"}, "fields": {"choices": {"label": "Pick"}}}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := uischema.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	overlay, ok := store.Form("anything")
	if !ok {
		t.Fatalf("expected default overlay")
	}
	if got := overlay.Title(""); got != "Fish & Chips" {
		t.Fatalf("title = %q", got)
	}
	if cfg, _ := overlay.Field("choices"); cfg.Label != "Pick" {
		t.Fatalf("label = %q", cfg.Label)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file": {"a.json": {Data: []byte("  ")}},
		"bad yaml":   {"a.yaml": {Data: []byte("forms: [")}},
		"duplicate": {
			"a.json": {Data: []byte(`{"forms": {"demo": {}}}`)},
			"b.json": {Data: []byte(`{"forms": {"demo": {}}}`)},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uischema.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_NilIsEmpty(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestLoadFS_UnkeyedDocumentKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"overlay.yaml": {Data: []byte(`
form:
  title: Backup
  description: Copy a folder
  runLabel: Start
fields:
  "--dest":
    label: Destination
    placeholder: Pick a folder
    helpText: Where copies go
    widget: Directory
`)},
	}

	store, err := uischema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	overlay, ok := store.Form("backup")
	if !ok {
		t.Fatalf("expected default overlay")
	}
	wantForm := uischema.FormConfig{Title: "Backup", Description: "Copy a folder", RunLabel: "Start"}
	if diff := cmp.Diff(wantForm, overlay.Form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	field, _ := overlay.Field("dest")
	wantField := uischema.FieldConfig{
		Label:       "Destination",
		Placeholder: "Pick a folder",
		HelpText:    "Where copies go",
		Widget:      "directory",
	}
	if diff := cmp.Diff(wantField, field); diff != "" {
		t.Fatalf("field mismatch (-want +got):\n%s", diff)
	}
}
