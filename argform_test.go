package argform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	argform "github.com/goliatone/go-argform"
	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/schema"
)

func echoTarget(_ context.Context, run *argform.Run) error {
	run.Printf("target=%s\n", run.Args.String("target"))
	return nil
}

func TestFromCommand_BuildsFormFromFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "deploy"}
	cmd.Flags().String("target", "", "deploy target")
	cmd.Flags().Bool("dry-run", false, "print only")
	if err := cmd.MarkFlagRequired("target"); err != nil {
		t.Fatalf("mark required: %v", err)
	}

	app, err := argform.FromCommand(cmd, echoTarget)
	if err != nil {
		t.Fatalf("from command: %v", err)
	}
	if got := app.Form().Title(); got != "Deploy" {
		t.Fatalf("title = %q, want Deploy", got)
	}

	if outcome := app.Trigger(context.Background()); outcome != dispatch.OutcomeInvalid {
		t.Fatalf("empty required flag should be rejected, got %v", outcome)
	}
	if err := app.Form().State().SetText("target", "staging"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if outcome := app.Trigger(context.Background()); outcome != dispatch.OutcomeCompleted {
		t.Fatalf("outcome = %v", outcome)
	}
	lines := app.Log().Lines()
	if last := lines[len(lines)-1]; last != "target=staging" {
		t.Fatalf("last line = %q", last)
	}
}

func TestFromFlagSet_NilFlagSet(t *testing.T) {
	if _, err := argform.FromFlagSet(nil, echoTarget); !errors.Is(err, schema.ErrNilFlagSet) {
		t.Fatalf("expected ErrNilFlagSet, got %v", err)
	}
}

func TestFromFlagSet_WithOverlayFile(t *testing.T) {
	fs := pflag.NewFlagSet("deploy", pflag.ContinueOnError)
	fs.String("target", "", "deploy target")

	path := filepath.Join(t.TempDir(), "overlay.toml")
	data := []byte("[forms.deploy.fields.target]\nlabel = \"Environment\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	overlay, err := argform.WithOverlayFile(path)
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}

	app, err := argform.FromFlagSet(fs, echoTarget, overlay)
	if err != nil {
		t.Fatalf("from flag set: %v", err)
	}
	control, ok := app.Form().Control("target")
	if !ok || control.Label != "Environment" {
		t.Fatalf("control = %+v", control)
	}
}

func TestWithOverlayFile_Missing(t *testing.T) {
	if _, err := argform.WithOverlayFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
