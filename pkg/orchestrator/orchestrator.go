package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-argform/pkg/console"
	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/form"
	"github.com/goliatone/go-argform/pkg/render"
	"github.com/goliatone/go-argform/pkg/renderers/tui"
	"github.com/goliatone/go-argform/pkg/renderers/window"
	"github.com/goliatone/go-argform/pkg/schema"
	"github.com/goliatone/go-argform/pkg/uischema"
)

const defaultFrontendName = tui.Name

// ErrNilSchema is returned when New receives no schema.
var ErrNilSchema = errors.New("orchestrator: schema is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger sets the diagnostics logger shared by the dispatcher and the
// built-in frontends.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRegistry injects a frontend registry. The built-in frontends are not
// added to an injected registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithFrontends registers additional frontends next to the built-in ones.
func WithFrontends(frontends ...render.Frontend) Option {
	return func(o *Orchestrator) {
		o.extra = append(o.extra, frontends...)
	}
}

// WithDefaultFrontend overrides the frontend Run uses for an empty name.
func WithDefaultFrontend(name string) Option {
	return func(o *Orchestrator) {
		o.defaultFrontend = name
	}
}

// WithOverlay applies display overrides to the synthesized form.
func WithOverlay(overlay *uischema.Overlay) Option {
	return func(o *Orchestrator) {
		o.overlay = overlay
	}
}

// WithOverlayStore selects the overlay matching the schema name from store.
// An explicit WithOverlay wins.
func WithOverlayStore(store *uischema.Store) Option {
	return func(o *Orchestrator) {
		o.overlays = store
	}
}

// WithLabeler replaces the default field labeler.
func WithLabeler(labeler form.Labeler) Option {
	return func(o *Orchestrator) {
		o.labeler = labeler
	}
}

// WithTitle sets the form title.
func WithTitle(title string) Option {
	return func(o *Orchestrator) {
		o.title = title
	}
}

// WithPrefill seeds the form from an argument vector before the first run.
func WithPrefill(argv []string) Option {
	return func(o *Orchestrator) {
		o.prefill = append([]string(nil), argv...)
	}
}

// WithPassthrough mirrors callback output to w as well as to the log.
func WithPassthrough(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.dispatchOpts = append(o.dispatchOpts, dispatch.WithPassthrough(w))
	}
}

// WithCancelOnRerun cancels the jobs of the previous run when a new run
// starts.
func WithCancelOnRerun() Option {
	return func(o *Orchestrator) {
		o.dispatchOpts = append(o.dispatchOpts, dispatch.WithCancelOnRerun())
	}
}

// WithClock replaces the clock used for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.dispatchOpts = append(o.dispatchOpts, dispatch.WithClock(now))
	}
}

// Orchestrator owns one form session. It is built once per schema and can run
// any registered frontend against it.
type Orchestrator struct {
	logger          zerolog.Logger
	registry        *render.Registry
	extra           []render.Frontend
	defaultFrontend string
	overlay         *uischema.Overlay
	overlays        *uischema.Store
	labeler         form.Labeler
	title           string
	prefill         []string
	dispatchOpts    []dispatch.Option

	form       *form.Form
	log        *console.Log
	dispatcher *dispatch.Dispatcher
}

// New synthesizes the form for s and wires the dispatcher that calls cb.
func New(s *schema.Schema, cb dispatch.Callback, options ...Option) (*Orchestrator, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	o := &Orchestrator{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	f, err := form.Synthesize(s, o.formOptions(s)...)
	if err != nil {
		return nil, err
	}
	if len(o.prefill) > 0 {
		if err := f.Prefill(o.prefill); err != nil {
			return nil, fmt.Errorf("orchestrator: prefill: %w", err)
		}
	}

	log := console.NewLog()
	opts := append([]dispatch.Option{dispatch.WithLogger(o.logger)}, o.dispatchOpts...)
	d, err := dispatch.New(f, log, cb, opts...)
	if err != nil {
		return nil, err
	}

	o.form = f
	o.log = log
	o.dispatcher = d
	if err := o.applyRegistry(); err != nil {
		return nil, err
	}
	o.logger.Debug().
		Str("schema", s.Name()).
		Int("controls", f.Len()).
		Strs("frontends", o.registry.List()).
		Msg("form session ready")
	return o, nil
}

func (o *Orchestrator) formOptions(s *schema.Schema) []form.Option {
	var opts []form.Option
	if o.labeler != nil {
		opts = append(opts, form.WithLabeler(o.labeler))
	}
	if o.title != "" {
		opts = append(opts, form.WithTitle(o.title))
	}
	overlay := o.overlay
	if overlay == nil && o.overlays != nil {
		if found, ok := o.overlays.Form(s.Name()); ok {
			overlay = found
		}
	}
	if overlay != nil {
		opts = append(opts, form.WithOverlay(overlay))
	}
	return opts
}

func (o *Orchestrator) applyRegistry() error {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		for _, frontend := range []render.Frontend{
			tui.New(tui.WithLogger(o.logger)),
			window.New(window.WithLogger(o.logger)),
		} {
			if err := o.registry.Register(frontend); err != nil {
				return err
			}
		}
		if o.defaultFrontend == "" {
			o.defaultFrontend = defaultFrontendName
		}
	}
	for _, frontend := range o.extra {
		if err := o.registry.Register(frontend); err != nil {
			return err
		}
	}
	if o.defaultFrontend != "" {
		return o.registry.SetDefault(o.defaultFrontend)
	}
	return nil
}

// Form returns the synthesized form.
func (o *Orchestrator) Form() *form.Form { return o.form }

// Log returns the output log.
func (o *Orchestrator) Log() *console.Log { return o.log }

// Dispatcher returns the run dispatcher.
func (o *Orchestrator) Dispatcher() *dispatch.Dispatcher { return o.dispatcher }

// Registry returns the frontend registry.
func (o *Orchestrator) Registry() *render.Registry { return o.registry }

// Session bundles the form, log and dispatcher for a frontend.
func (o *Orchestrator) Session() *render.Session {
	return &render.Session{
		Form:       o.form,
		Log:        o.log,
		Dispatcher: o.dispatcher,
		Logger:     o.logger,
	}
}

// Trigger performs one run without a frontend, as if Run had been pressed.
func (o *Orchestrator) Trigger(ctx context.Context) dispatch.Outcome {
	return o.dispatcher.Trigger(ctx)
}

// Run shows the named frontend until it returns, then stops any jobs still
// scheduled. An empty name selects the default frontend.
func (o *Orchestrator) Run(ctx context.Context, frontendName string) error {
	frontend, err := o.registry.Resolve(frontendName)
	if err != nil {
		return err
	}
	defer o.dispatcher.Shutdown()

	logger := o.logger.With().Str("frontend", frontend.Name()).Logger()
	logger.Info().Msg("frontend started")
	if err := frontend.Run(ctx, o.Session()); err != nil {
		logger.Error().Err(err).Msg("frontend failed")
		return fmt.Errorf("orchestrator: frontend %s: %w", frontend.Name(), err)
	}
	logger.Info().Int("log_lines", o.log.Len()).Msg("frontend closed")
	return nil
}

// Shutdown stops scheduled jobs without running a frontend.
func (o *Orchestrator) Shutdown() {
	o.dispatcher.Shutdown()
}
