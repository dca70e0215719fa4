package form_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-argform/pkg/form"
	"github.com/goliatone/go-argform/pkg/schema"
	"github.com/goliatone/go-argform/pkg/testsupport"
	"github.com/goliatone/go-argform/pkg/uischema"
	"github.com/goliatone/go-argform/pkg/widgets"
)

func demoSchema() *schema.Schema {
	return schema.New("demo").
		Positional("positional", "first positional", schema.Default("defaultpositionalvalue")).
		String("choices", "pick one", schema.Choices("a", "b", "c")).
		DirPath("input_dir", "input directory").
		FilePath("input_file", "input file").
		Bool("storetrue", "a toggle").
		String("string", "free text").
		Int("int", "an integer").
		Float("float", "a float")
}

func mustSynthesize(t *testing.T, s *schema.Schema, opts ...form.Option) *form.Form {
	t.Helper()
	f, err := form.Synthesize(s, opts...)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	return f
}

func TestSynthesize_OneControlPerField(t *testing.T) {
	s := demoSchema()
	f := mustSynthesize(t, s)

	type summary struct {
		Name    string
		Kind    form.ControlKind
		Path    form.PathMode
		Label   string
		Options []string
	}
	var got []summary
	for _, c := range f.Controls() {
		got = append(got, summary{c.Name(), c.Kind, c.Path, c.Label, c.Options})
	}
	want := []summary{
		{"positional", form.ControlText, form.PathNone, "Positional", nil},
		{"choices", form.ControlSelect, form.PathNone, "Choices", []string{"", "a", "b", "c"}},
		{"input_dir", form.ControlPath, form.PathDirectory, "Input Dir", nil},
		{"input_file", form.ControlPath, form.PathFile, "Input File", nil},
		{"storetrue", form.ControlToggle, form.PathNone, "Storetrue", nil},
		{"string", form.ControlText, form.PathNone, "String", nil},
		{"int", form.ControlText, form.PathNone, "Int", nil},
		{"float", form.ControlText, form.PathNone, "Float", nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}
	if f.Len() != s.Len() {
		t.Fatalf("controls = %d, fields = %d", f.Len(), s.Len())
	}
	if diff := cmp.Diff(f.State().Names(), fieldNames(s)); diff != "" {
		t.Fatalf("state keys mismatch (-state +fields):\n%s", diff)
	}
}

func fieldNames(s *schema.Schema) []string {
	var names []string
	for _, field := range s.Fields() {
		names = append(names, field.Name)
	}
	return names
}

func TestSynthesize_NilSchema(t *testing.T) {
	if _, err := form.Synthesize(nil); !errors.Is(err, form.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
}

func TestCollect_RoundTrip(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	state := f.State()
	set := map[string]string{
		"positional": "hello",
		"choices":    "b",
		"input_dir":  "/tmp/in",
		"input_file": "/tmp/in/data.csv",
		"string":     "some text",
		"int":        "42",
		"float":      "2.5",
	}
	for name, value := range set {
		if err := state.SetText(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	if err := state.SetBool("storetrue", true); err != nil {
		t.Fatalf("set storetrue: %v", err)
	}

	args, err := f.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := map[string]any{
		"positional": "hello",
		"choices":    "b",
		"input_dir":  "/tmp/in",
		"input_file": "/tmp/in/data.csv",
		"storetrue":  true,
		"string":     "some text",
		"int":        42,
		"float":      2.5,
	}
	if diff := cmp.Diff(want, args.Map()); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_IsIdempotent(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	_ = f.State().SetText("int", "7")

	first, err := f.Collect()
	if err != nil {
		t.Fatalf("first collect: %v", err)
	}
	second, err := f.Collect()
	if err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if diff := cmp.Diff(first.Map(), second.Map()); diff != "" {
		t.Fatalf("collections differ (-first +second):\n%s", diff)
	}
}

func TestCollect_RequiredEmptyFails(t *testing.T) {
	cases := map[string]*schema.Schema{
		"flag":       schema.New("x").DirPath("input_dir", "", schema.Required()),
		"positional": schema.New("x").Positional("target", ""),
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			f := mustSynthesize(t, s)
			_, err := f.Collect()
			if !errors.Is(err, schema.ErrRequired) {
				t.Fatalf("expected ErrRequired, got %v", err)
			}
		})
	}
}

func TestScenarioA_SelectChoice(t *testing.T) {
	f := mustSynthesize(t, schema.New("x").String("choices", "", schema.Choices("a", "b", "c")))
	if err := f.State().SetText("choices", "b"); err != nil {
		t.Fatalf("set: %v", err)
	}
	args, err := f.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"choices": "b"}, args.Map()); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestArgv_Reconstruction(t *testing.T) {
	cases := []struct {
		name  string
		build func() *schema.Schema
		text  map[string]string
		bools map[string]bool
		want  []string
	}{
		{
			name:  "empty optionals skipped",
			build: func() *schema.Schema { return schema.New("x").Positional("p", "").String("s", "").Int("i", "") },
			text:  map[string]string{"p": "v", "s": "   "},
			want:  []string{"v"},
		},
		{
			name:  "declaration order kept",
			build: func() *schema.Schema { return schema.New("x").String("s", "").Positional("p", "").Bool("on", "") },
			text:  map[string]string{"p": "v", "s": "text"},
			bools: map[string]bool{"on": true},
			want:  []string{"--s", "text", "v", "--on=true"},
		},
		{
			name:  "toggle default on emitted when off",
			build: func() *schema.Schema { return schema.New("x").Bool("cache", "", schema.Default(true)) },
			bools: map[string]bool{"cache": false},
			want:  []string{"--cache=false"},
		},
		{
			name:  "dashed positional follows terminator",
			build: func() *schema.Schema { return schema.New("x").Positional("n", "").Int("i", "") },
			text:  map[string]string{"n": "-5", "i": "3"},
			want:  []string{"--i", "3", "--", "-5"},
		},
		{
			name: "skipped optional positional holds its slot",
			build: func() *schema.Schema {
				return schema.New("x").
					Positional("src", "", schema.Optional()).
					Positional("dst", "", schema.Optional()).
					Positional("extra", "", schema.Optional())
			},
			text: map[string]string{"dst": "out"},
			want: []string{"", "out"},
		},
		{
			name:  "required toggle emitted when off",
			build: func() *schema.Schema { return schema.New("x").Bool("force", "", schema.Required()) },
			want:  []string{"--force=false"},
		},
		{
			name:  "required empty still emitted",
			build: func() *schema.Schema { return schema.New("x").String("s", "", schema.Required()) },
			want:  []string{"--s", ""},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := mustSynthesize(t, tc.build())
			for name, value := range tc.text {
				if err := f.State().SetText(name, value); err != nil {
					t.Fatalf("set %s: %v", name, err)
				}
			}
			for name, on := range tc.bools {
				if err := f.State().SetBool(name, on); err != nil {
					t.Fatalf("set %s: %v", name, err)
				}
			}
			if diff := cmp.Diff(tc.want, f.Argv()); diff != "" {
				t.Fatalf("argv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollect_DashedPositional(t *testing.T) {
	f := mustSynthesize(t, schema.New("x").Positional("n", "", schema.As(schema.TypeInt)))
	_ = f.State().SetText("n", "-5")
	args, err := f.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := args.Int("n"); got != -5 {
		t.Fatalf("n = %d, want -5", got)
	}
}

func TestCollect_OptionalPositionalsKeepTheirPlace(t *testing.T) {
	f := mustSynthesize(t, schema.New("copy").
		Positional("src", "", schema.Optional()).
		Positional("dst", "", schema.Optional()))
	_ = f.State().SetText("dst", "out")

	args, err := f.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	got := map[string]any{"src": args.String("src"), "dst": args.String("dst")}
	want := map[string]any{"src": "", "dst": "out"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if args.Has("src") {
		t.Fatalf("src should be absent")
	}
}

func TestBrowse_CancelLeavesValueUnchanged(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	_ = f.State().SetText("input_dir", "/srv/data")

	picker := testsupport.NewPicker(testsupport.Pick{OK: false})
	chosen, err := f.Browse(context.Background(), "input_dir", picker)
	if err != nil || chosen {
		t.Fatalf("Browse = (%v, %v), want (false, nil)", chosen, err)
	}
	if got := f.State().Text("input_dir"); got != "/srv/data" {
		t.Fatalf("value = %q, want unchanged", got)
	}
	if diff := cmp.Diff([]string{"/srv/data"}, picker.Starts); diff != "" {
		t.Fatalf("start mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowse_WritesChosenPath(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	picker := testsupport.NewPicker(testsupport.Pick{Path: "/tmp/report.txt", OK: true})

	chosen, err := f.Browse(context.Background(), "input_file", picker)
	if err != nil || !chosen {
		t.Fatalf("Browse = (%v, %v), want (true, nil)", chosen, err)
	}
	if got := f.State().Text("input_file"); got != "/tmp/report.txt" {
		t.Fatalf("value = %q", got)
	}
	if diff := cmp.Diff([]string{"file"}, picker.Modes); diff != "" {
		t.Fatalf("picker mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowse_Errors(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	ctx := context.Background()

	if _, err := f.Browse(ctx, "string", testsupport.NewPicker()); !errors.Is(err, form.ErrNotPath) {
		t.Fatalf("expected ErrNotPath, got %v", err)
	}
	if _, err := f.Browse(ctx, "missing", testsupport.NewPicker()); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := f.Browse(ctx, "input_dir", nil); !errors.Is(err, form.ErrNilPicker) {
		t.Fatalf("expected ErrNilPicker, got %v", err)
	}

	boom := errors.New("boom")
	_ = f.State().SetText("input_dir", "/keep")
	if _, err := f.Browse(ctx, "input_dir", testsupport.NewPicker(testsupport.Pick{Err: boom})); !errors.Is(err, boom) {
		t.Fatalf("expected picker error, got %v", err)
	}
	if got := f.State().Text("input_dir"); got != "/keep" {
		t.Fatalf("value = %q, want unchanged", got)
	}
}

func TestPrefill_SeedsOnlyGivenValues(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	if err := f.Prefill([]string{"--choices", "c", "--int", "9", "--float", "0.5", "--storetrue"}); err != nil {
		t.Fatalf("prefill: %v", err)
	}

	want := map[string]any{
		"positional": "defaultpositionalvalue",
		"choices":    "c",
		"input_dir":  "",
		"input_file": "",
		"storetrue":  true,
		"string":     "",
		"int":        "9",
		"float":      "0.5",
	}
	if diff := cmp.Diff(want, f.State().Snapshot()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	if err := f.Prefill([]string{"--choices", "z"}); !errors.Is(err, schema.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
}

func TestState_RejectsUnknownAndMismatched(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	state := f.State()

	if err := state.SetText("nope", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := state.SetText("storetrue", "yes"); !errors.Is(err, form.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if err := state.SetBool("string", true); !errors.Is(err, form.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestRows_DisplayText(t *testing.T) {
	f := mustSynthesize(t, demoSchema())
	_ = f.State().SetBool("storetrue", true)

	got := make(map[string]string)
	for _, row := range f.Rows() {
		got[row.Control.Name()] = row.Display
	}
	want := map[string]string{
		"positional": "defaultpositionalvalue",
		"choices":    form.NoneOption,
		"input_dir":  form.PathPlaceholder,
		"input_file": form.PathPlaceholder,
		"storetrue":  "on",
		"string":     "",
		"int":        "",
		"float":      "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_OverlayOverrides(t *testing.T) {
	overlay := &uischema.Overlay{
		Form: uischema.FormConfig{Title: "Importer", RunLabel: "Import"},
		Fields: map[string]uischema.FieldConfig{
			"input_dir": {Label: "Source", Placeholder: "Choose a source folder", HelpText: "Where files are read from"},
		},
	}
	f := mustSynthesize(t, demoSchema(), form.WithOverlay(overlay))

	if f.Title() != "Importer" || f.RunLabel() != "Import" {
		t.Fatalf("title/run label = %q/%q", f.Title(), f.RunLabel())
	}
	c, ok := f.Control("input_dir")
	if !ok {
		t.Fatalf("control missing")
	}
	want := []string{"Source", "Choose a source folder", "Where files are read from"}
	if diff := cmp.Diff(want, []string{c.Label, c.Placeholder, c.Help}); diff != "" {
		t.Fatalf("overlay mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_WidgetSelection(t *testing.T) {
	s := schema.New("tool").
		String("report", "where to write").
		String("log_path", "").
		Bool("verbose", "")
	overlay := &uischema.Overlay{Fields: map[string]uischema.FieldConfig{
		"report":  {Widget: "file"},
		"verbose": {Widget: "text"},
	}}
	registry := widgets.NewRegistry()
	registry.Register(widgets.WidgetDirectory, 100, func(field schema.Field) bool {
		return strings.HasSuffix(field.Name, "_path")
	})

	f := mustSynthesize(t, s, form.WithOverlay(overlay), form.WithWidgets(registry))

	type summary struct {
		Kind form.ControlKind
		Path form.PathMode
	}
	got := map[string]summary{}
	for _, c := range f.Controls() {
		got[c.Name()] = summary{c.Kind, c.Path}
	}
	want := map[string]summary{
		"report":   {form.ControlPath, form.PathFile},
		"log_path": {form.ControlPath, form.PathDirectory},
		"verbose":  {form.ControlToggle, form.PathNone},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("controls mismatch (-want +got):\n%s", diff)
	}

	_ = f.State().SetText("report", "/tmp/out.txt")
	args, err := f.Collect()
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := args.String("report"); got != "/tmp/out.txt" {
		t.Fatalf("report = %q", got)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"input_dir":   "Input Dir",
		"log-level":   "Log Level",
		"--verbose":   "Verbose",
		"maxRetries2": "Max Retries 2",
		"":            "",
	}
	for in, want := range cases {
		if got := form.DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStartDir(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "data.csv")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	wd, _ := os.Getwd()

	cases := map[string]string{
		root:                          root,
		file:                          root,
		filepath.Join(root, "nope.x"): root,
		"":                            wd,
	}
	for in, want := range cases {
		if got := form.StartDir(in); got != want {
			t.Errorf("StartDir(%q) = %q, want %q", in, got, want)
		}
	}
}
