package form

import (
	"context"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/goliatone/go-argform/pkg/schema"
	"github.com/goliatone/go-argform/pkg/uischema"
	"github.com/goliatone/go-argform/pkg/widgets"
)

const defaultRunLabel = "Run"

var defaultWidgets = widgets.NewRegistry()

// Form is the synthesized form: an ordered list of controls bound to the
// schema that produced them, plus their live state.
type Form struct {
	schema      *schema.Schema
	title       string
	description string
	runLabel    string
	controls    []Control
	index       map[string]int
	state       *State
}

// Row is a control paired with the text a frontend should display for it.
type Row struct {
	Control Control
	Display string
}

// Option configures Synthesize.
type Option func(*config)

type config struct {
	labeler Labeler
	overlay *uischema.Overlay
	title   string
	widgets *widgets.Registry
}

// WithLabeler replaces DefaultLabeler.
func WithLabeler(labeler Labeler) Option {
	return func(c *config) {
		if labeler != nil {
			c.labeler = labeler
		}
	}
}

// WithWidgets replaces the registry that picks each field's control.
func WithWidgets(registry *widgets.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.widgets = registry
		}
	}
}

// WithOverlay applies display overrides loaded from an overlay file.
func WithOverlay(overlay *uischema.Overlay) Option {
	return func(c *config) {
		c.overlay = overlay
	}
}

// WithTitle sets the form title. Overlay titles take precedence.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = strings.TrimSpace(title)
	}
}

// Synthesize builds one control per schema field, in declaration order.
func Synthesize(s *schema.Schema, opts ...Option) (*Form, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	cfg := config{labeler: DefaultLabeler, widgets: defaultWidgets}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	title := cfg.title
	if title == "" {
		title = DefaultLabeler(s.Name())
	}
	f := &Form{
		schema:   s,
		title:    title,
		runLabel: defaultRunLabel,
		index:    make(map[string]int, s.Len()),
	}
	if cfg.overlay != nil {
		f.title = cfg.overlay.Title(f.title)
		f.description = cfg.overlay.Form.Description
		if cfg.overlay.Form.RunLabel != "" {
			f.runLabel = cfg.overlay.Form.RunLabel
		}
	}

	for _, field := range s.Fields() {
		control := synthesizeControl(field, cfg)
		f.index[field.Name] = len(f.controls)
		f.controls = append(f.controls, control)
	}
	f.state = newState(f.controls)
	return f, nil
}

func synthesizeControl(field schema.Field, cfg config) Control {
	override, _ := cfg.overlay.Field(field.Name)
	widget, _ := cfg.widgets.Resolve(field, override.Widget)
	kind, mode := kindFor(field, widget)
	control := Control{
		Field: field,
		Kind:  kind,
		Label: cfg.labeler(field.Name),
		Help:  field.Usage,
		Path:  mode,
	}

	switch kind {
	case ControlSelect:
		if !field.Required {
			control.Options = append(control.Options, "")
		}
		control.Options = append(control.Options, field.Choices...)
	case ControlPath:
		control.Placeholder = PathPlaceholder
	}

	if override.Label != "" {
		control.Label = override.Label
	}
	if override.Placeholder != "" {
		control.Placeholder = override.Placeholder
	}
	if override.HelpText != "" {
		control.Help = override.HelpText
	}
	return control
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() *schema.Schema { return f.schema }

// Title returns the form title.
func (f *Form) Title() string { return f.title }

// Description returns the optional overlay description.
func (f *Form) Description() string { return f.description }

// RunLabel returns the caption of the run action.
func (f *Form) RunLabel() string { return f.runLabel }

// State returns the live control values.
func (f *Form) State() *State { return f.state }

// Len reports the number of controls.
func (f *Form) Len() int { return len(f.controls) }

// Controls returns copies of the controls in declaration order.
func (f *Form) Controls() []Control {
	out := make([]Control, len(f.controls))
	for i, c := range f.controls {
		out[i] = c.clone()
	}
	return out
}

// Control looks up the control bound to name.
func (f *Form) Control(name string) (Control, bool) {
	idx, ok := f.index[name]
	if !ok {
		return Control{}, false
	}
	return f.controls[idx].clone(), true
}

// Rows returns the layout in declaration order with display text for the
// current values.
func (f *Form) Rows() []Row {
	rows := make([]Row, len(f.controls))
	for i, c := range f.controls {
		rows[i] = Row{Control: c.clone(), Display: f.display(c)}
	}
	return rows
}

func (f *Form) display(c Control) string {
	if c.Kind == ControlToggle {
		if f.state.Bool(c.Name()) {
			return "on"
		}
		return "off"
	}
	value := f.state.Text(c.Name())
	if strings.TrimSpace(value) != "" {
		return value
	}
	switch {
	case c.Kind == ControlSelect:
		return NoneOption
	case c.Placeholder != "":
		return c.Placeholder
	default:
		return ""
	}
}

// Argv rebuilds the command line the current state stands for. Fields are
// visited in declaration order. Empty optional values are skipped; everything
// else is emitted as the flag token followed by the value, or the bare value
// for positionals. An empty optional positional followed by a filled one is
// emitted as "" to hold its slot. Toggles emit "--name=true" when on, and
// "--name=false" when off against a default of on or when required.
//
// If a positional value starts with a dash, flags are emitted first and the
// positionals follow a "--" terminator so they cannot be mistaken for flags.
func (f *Form) Argv() []string {
	var (
		ordered     []string
		flags       []string
		positionals []string
		dashed      bool
		skipped     int
	)
	for _, c := range f.controls {
		field := c.Field
		if c.Kind == ControlToggle {
			on := f.state.Bool(field.Name)
			byDefault, _ := strconv.ParseBool(field.Default)
			switch {
			case on:
				flags = append(flags, field.Flag+"=true")
				ordered = append(ordered, field.Flag+"=true")
			case byDefault || field.Required:
				flags = append(flags, field.Flag+"=false")
				ordered = append(ordered, field.Flag+"=false")
			}
			continue
		}

		value := f.state.Text(field.Name)
		if strings.TrimSpace(value) == "" && !field.Required {
			if field.Positional {
				skipped++
			}
			continue
		}
		if c.Kind == ControlPath {
			value = expandPath(value)
		}

		if field.Positional {
			for ; skipped > 0; skipped-- {
				positionals = append(positionals, "")
				ordered = append(ordered, "")
			}
			positionals = append(positionals, value)
			ordered = append(ordered, value)
			dashed = dashed || strings.HasPrefix(value, "-")
			continue
		}
		flags = append(flags, field.Flag, value)
		ordered = append(ordered, field.Flag, value)
	}

	if !dashed {
		return ordered
	}
	out := append(flags, "--")
	return append(out, positionals...)
}

// Collect validates the current state through the schema and returns typed
// arguments. Repeated calls without edits return equal results.
func (f *Form) Collect() (schema.Args, error) {
	return f.schema.Parse(f.Argv())
}

// Prefill seeds the state from an argument vector. Missing required fields
// are tolerated; only values present in argv are written.
func (f *Form) Prefill(argv []string) error {
	args, err := f.schema.Relaxed().Parse(argv)
	if err != nil {
		return err
	}
	for _, c := range f.controls {
		value, ok := args.Get(c.Name())
		if !ok || value == nil {
			continue
		}
		switch typed := value.(type) {
		case bool:
			if typed || mentions(argv, c.Field) {
				err = f.state.SetBool(c.Name(), typed)
			}
		case float64:
			err = f.state.SetText(c.Name(), strconv.FormatFloat(typed, 'g', -1, 64))
		case int:
			err = f.state.SetText(c.Name(), strconv.Itoa(typed))
		case string:
			err = f.state.SetText(c.Name(), typed)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func mentions(argv []string, field schema.Field) bool {
	for _, token := range argv {
		if token == "--" {
			return false
		}
		if token == field.Flag || strings.HasPrefix(token, field.Flag+"=") {
			return true
		}
		if field.Shorthand != "" && strings.HasPrefix(token, "-"+field.Shorthand) && !strings.HasPrefix(token, "--") {
			return true
		}
	}
	return false
}

// Browse opens the picker matching a path control and writes the chosen path
// into its state. A dismissed picker leaves the value untouched and reports
// false.
func (f *Form) Browse(ctx context.Context, name string, picker Picker) (bool, error) {
	if picker == nil {
		return false, ErrNilPicker
	}
	c, ok := f.Control(name)
	if !ok {
		return false, ErrUnknownField
	}
	if c.Kind != ControlPath {
		return false, ErrNotPath
	}

	start := expandPath(f.state.Text(name))
	var (
		path string
		err  error
	)
	if c.Path == PathDirectory {
		path, ok, err = picker.PickDirectory(ctx, start)
	} else {
		path, ok, err = picker.PickFile(ctx, start)
	}
	if err != nil || !ok {
		return false, err
	}
	if err := f.state.SetText(name, path); err != nil {
		return false, err
	}
	return true, nil
}

func expandPath(value string) string {
	expanded, err := homedir.Expand(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return expanded
}
