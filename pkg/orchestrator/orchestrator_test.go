package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/orchestrator"
	"github.com/goliatone/go-argform/pkg/render"
	"github.com/goliatone/go-argform/pkg/schema"
	"github.com/goliatone/go-argform/pkg/testsupport"
	"github.com/goliatone/go-argform/pkg/uischema"
)

var fixedClock = testsupport.FixedClock(9, 30, 0)

func greetSchema() *schema.Schema {
	return schema.New("greet").
		Positional("target", "who to greet").
		Bool("loud", "shout")
}

func greet(_ context.Context, run *dispatch.Run) error {
	msg := "hello " + run.Args.String("target")
	if run.Args.Bool("loud") {
		msg = strings.ToUpper(msg)
	}
	run.Println(msg)
	return nil
}

// scriptedFrontend edits the form and presses Run once.
type scriptedFrontend struct {
	name     string
	values   map[string]string
	outcomes []dispatch.Outcome
	err      error
}

func (s *scriptedFrontend) Name() string { return s.name }

func (s *scriptedFrontend) Run(ctx context.Context, session *render.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	for name, value := range s.values {
		if err := session.Form.State().SetText(name, value); err != nil {
			return err
		}
	}
	s.outcomes = append(s.outcomes, session.Trigger(ctx))
	return s.err
}

func TestNew_RegistersBuiltInFrontends(t *testing.T) {
	o, err := orchestrator.New(greetSchema(), greet)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "window"}, o.Registry().List()); diff != "" {
		t.Fatalf("frontends mismatch (-want +got):\n%s", diff)
	}
	frontend, err := o.Registry().Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if frontend.Name() != "tui" {
		t.Fatalf("default frontend = %q, want tui", frontend.Name())
	}
	if o.Form().Len() != 2 {
		t.Fatalf("controls = %d, want 2", o.Form().Len())
	}
}

func TestNew_NilSchema(t *testing.T) {
	if _, err := orchestrator.New(nil, greet); !errors.Is(err, orchestrator.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
	if _, err := orchestrator.New(greetSchema(), nil); !errors.Is(err, dispatch.ErrNilCallback) {
		t.Fatalf("expected ErrNilCallback, got %v", err)
	}
}

func TestRun_DrivesFrontendAgainstSession(t *testing.T) {
	stub := &scriptedFrontend{name: "script", values: map[string]string{"target": "world"}}
	o, err := orchestrator.New(greetSchema(), greet,
		orchestrator.WithFrontends(stub),
		orchestrator.WithDefaultFrontend("script"),
		orchestrator.WithClock(fixedClock),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := o.Run(context.Background(), ""); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]dispatch.Outcome{dispatch.OutcomeCompleted}, stub.outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	want := []string{
		"[09:30:00] Run pressed. Arguments:",
		`  target: "world"`,
		"  loud: false",
		"",
		"hello world",
	}
	if diff := cmp.Diff(want, o.Log().Lines()); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_UnknownFrontend(t *testing.T) {
	o, err := orchestrator.New(greetSchema(), greet)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := o.Run(context.Background(), "gtk"); !errors.Is(err, render.ErrUnknownFrontend) {
		t.Fatalf("expected ErrUnknownFrontend, got %v", err)
	}
}

func TestRun_WrapsFrontendError(t *testing.T) {
	boom := errors.New("terminal gone")
	stub := &scriptedFrontend{name: "script", values: map[string]string{"target": "x"}, err: boom}
	o, err := orchestrator.New(greetSchema(), greet, orchestrator.WithFrontends(stub))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := o.Run(context.Background(), "script"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped frontend error, got %v", err)
	}
}

func TestNew_PrefillSeedsState(t *testing.T) {
	o, err := orchestrator.New(greetSchema(), greet,
		orchestrator.WithPrefill([]string{"--loud", "moon"}),
		orchestrator.WithClock(fixedClock),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := o.Form().State().Text("target"); got != "moon" {
		t.Fatalf("target = %q, want moon", got)
	}
	if outcome := o.Trigger(context.Background()); outcome != dispatch.OutcomeCompleted {
		t.Fatalf("outcome = %v", outcome)
	}
	lines := o.Log().Lines()
	if last := lines[len(lines)-1]; last != "HELLO MOON" {
		t.Fatalf("last line = %q", last)
	}
}

func TestNew_PrefillRejectsBadValues(t *testing.T) {
	s := schema.New("x").Int("count", "")
	if _, err := orchestrator.New(s, greet, orchestrator.WithPrefill([]string{"--count", "many"})); !errors.Is(err, schema.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestNew_OverlayStoreMatchesSchemaName(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"greet.yaml": {Data: []byte("forms:\n  greet:\n    form:\n      title: Say hello\n    fields:\n      target:\n        label: Recipient\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	o, err := orchestrator.New(greetSchema(), greet, orchestrator.WithOverlayStore(store))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := o.Form().Title(); got != "Say hello" {
		t.Fatalf("title = %q", got)
	}
	control, _ := o.Form().Control("target")
	if control.Label != "Recipient" {
		t.Fatalf("label = %q", control.Label)
	}
}

func TestNew_InjectedRegistrySkipsBuiltIns(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(&scriptedFrontend{name: "only"})
	o, err := orchestrator.New(greetSchema(), greet, orchestrator.WithRegistry(registry))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff([]string{"only"}, o.Registry().List()); diff != "" {
		t.Fatalf("frontends mismatch (-want +got):\n%s", diff)
	}
}
