// Package argform turns a command-line argument schema into an interactive
// form with a Run button and an output log.
//
// A minimal program declares its arguments, supplies a callback and picks a
// frontend:
//
//	s := schema.New("resize").
//		Positional("image", "image to resize").
//		Int("width", "target width", schema.Default(800))
//
//	app, err := argform.New(s, func(ctx context.Context, run *argform.Run) error {
//		run.Printf("resizing %s to %d\n", run.Args.String("image"), run.Args.Int("width"))
//		return nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = app.Run(context.Background(), "window")
package argform

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/orchestrator"
	"github.com/goliatone/go-argform/pkg/schema"
	"github.com/goliatone/go-argform/pkg/uischema"
)

// App aliases the orchestrator so callers can stay on the root package.
type App = orchestrator.Orchestrator

// Option configures New.
type Option = orchestrator.Option

// Run is the context handed to a callback for one press of Run.
type Run = dispatch.Run

// Callback is the user function invoked with validated arguments.
type Callback = dispatch.Callback

// Outcome summarizes one trigger of the Run action.
type Outcome = dispatch.Outcome

// New builds an App for s, calling cb on each valid run.
func New(s *schema.Schema, cb Callback, options ...Option) (*App, error) {
	return orchestrator.New(s, cb, options...)
}

// FromFlagSet builds an App from the flags already declared on fs.
func FromFlagSet(fs *pflag.FlagSet, cb Callback, options ...Option) (*App, error) {
	s, err := schema.FromFlagSet(fs)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(s, cb, options...)
}

// FromCommand builds an App from the flags of a cobra command, inherited
// persistent flags included. Positional arguments are not part of a cobra
// flag set; use schema.FromCommand and declare them before calling New.
func FromCommand(cmd *cobra.Command, cb Callback, options ...Option) (*App, error) {
	s, err := schema.FromCommand(cmd)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(s, cb, options...)
}

// WithOverlayFile loads display overrides from a JSON, YAML or TOML file. The
// overlay keyed by the schema name is used, or the file's unkeyed overlay.
func WithOverlayFile(path string) (Option, error) {
	store, err := uischema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return orchestrator.WithOverlayStore(store), nil
}
