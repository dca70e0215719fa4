package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-argform/pkg/form"
	"github.com/goliatone/go-argform/pkg/render"
	"github.com/goliatone/go-argform/pkg/schema"
)

// Name is the registry key of the prompt frontend.
const Name = "tui"

const (
	valueWidth  = 48
	menuPage    = 15
	pathBrowse  = 0
	pathType    = 1
	pathClear   = 2
	failureMark = "Run failed:"
)

// Frontend renders a form as a menu of prompts: one entry per control plus
// run and quit. Log lines are echoed to the output as they are appended.
type Frontend struct {
	driver PromptDriver
	picker form.Picker
	out    io.Writer
	theme  Theme
	logger zerolog.Logger
	echo   bool

	mu sync.Mutex
}

// New constructs the frontend with the survey driver and a directory walker
// built on the same driver.
func New(options ...Option) *Frontend {
	f := &Frontend{
		driver: newSurveyDriver(),
		out:    os.Stdout,
		theme:  DefaultTheme,
		logger: zerolog.Nop(),
		echo:   true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.picker == nil {
		f.picker = NewWalker(f.driver)
	}
	return f
}

// Name reports the frontend identifier.
func (f *Frontend) Name() string {
	return Name
}

// Run shows the menu until the user quits, interrupts the menu, or ctx ends.
func (f *Frontend) Run(ctx context.Context, session *render.Session) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := session.Validate(); err != nil {
		return err
	}

	if f.echo {
		stop := session.Log.Follow(f.follower())
		defer stop()
	}

	title := session.Form.Title()
	if desc := session.Form.Description(); desc != "" {
		_ = f.driver.Info(ctx, desc)
	}

	selected := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		rows := session.Form.Rows()
		options := f.menu(rows, session.Form.RunLabel())
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      title,
			Options:      options,
			DefaultIndex: selected,
			PageSize:     menuPage,
		})
		if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		selected = idx

		switch {
		case idx >= 0 && idx < len(rows):
			if err := f.edit(ctx, session, rows[idx].Control); err != nil && !errors.Is(err, ErrAborted) {
				return err
			}
		case idx == len(rows):
			session.Trigger(ctx)
		default:
			return nil
		}
	}
}

// menu renders one aligned line per control, then run and quit.
func (f *Frontend) menu(rows []form.Row, runLabel string) []string {
	width := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.Control.Label); w > width {
			width = w
		}
	}

	options := make([]string, 0, len(rows)+2)
	for _, row := range rows {
		label := runewidth.FillRight(row.Control.Label, width)
		value := runewidth.Truncate(row.Display, valueWidth, "…")
		if row.Control.Field.Required {
			label += " *"
		} else {
			label += "  "
		}
		options = append(options, label+"  "+value)
	}
	options = append(options, f.theme.RunLabel+runLabel, f.theme.QuitLabel)
	return options
}

func (f *Frontend) edit(ctx context.Context, session *render.Session, control form.Control) error {
	state := session.Form.State()
	name := control.Name()
	help := control.Help

	switch control.Kind {
	case form.ControlToggle:
		on, err := f.driver.Confirm(ctx, ConfirmConfig{
			Message: control.Label,
			Default: state.Bool(name),
			Help:    help,
		})
		if err != nil {
			return err
		}
		return state.SetBool(name, on)

	case form.ControlSelect:
		display := make([]string, len(control.Options))
		for i, option := range control.Options {
			display[i] = option
			if option == "" {
				display[i] = form.NoneOption
			}
		}
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      control.Label,
			Options:      display,
			DefaultIndex: indexOf(control.Options, state.Text(name)),
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(control.Options) {
			return f.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", control.Label))
		}
		return state.SetText(name, control.Options[idx])

	case form.ControlPath:
		return f.editPath(ctx, session, control)

	default:
		value, err := f.driver.Input(ctx, InputConfig{
			Message:   control.Label,
			Default:   state.Text(name),
			Help:      help,
			Validator: validatorFor(control.Field),
		})
		if err != nil {
			return err
		}
		return state.SetText(name, value)
	}
}

func (f *Frontend) editPath(ctx context.Context, session *render.Session, control form.Control) error {
	state := session.Form.State()
	name := control.Name()

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      fmt.Sprintf("%s (%s)", control.Label, control.Path),
		Options:      []string{f.theme.BrowseLabel, "Type a path", "Clear", "Back"},
		DefaultIndex: pathBrowse,
		Help:         control.Help,
	})
	if err != nil {
		return err
	}

	switch idx {
	case pathBrowse:
		if f.picker == nil {
			return ErrNoPicker
		}
		session.Browse(ctx, name, f.picker)
		return nil
	case pathType:
		value, err := f.driver.Input(ctx, InputConfig{
			Message: control.Label,
			Default: state.Text(name),
			Help:    control.Placeholder,
		})
		if err != nil {
			return err
		}
		return state.SetText(name, value)
	case pathClear:
		return state.SetText(name, "")
	default:
		return nil
	}
}

// validatorFor checks numeric input while it is typed. Empty input is always
// accepted; required fields are reported when the form is run.
func validatorFor(field schema.Field) func(string) error {
	var parse func(string) error
	switch field.Type {
	case schema.TypeInt:
		parse = func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		}
	case schema.TypeFloat:
		parse = func(s string) error {
			_, err := strconv.ParseFloat(s, 64)
			return err
		}
	default:
		return nil
	}
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		if err := parse(value); err != nil {
			return fmt.Errorf("%q is not a valid %s", value, field.Type)
		}
		return nil
	}
}

// follower prints appended log lines. Failure lines are highlighted when the
// output supports colour.
func (f *Frontend) follower() func(string) error {
	output := termenv.NewOutput(f.out)
	red := output.Color("1")
	yellow := output.Color("3")
	paint := func(text string, style func(termenv.Style) termenv.Style) string {
		if output.Profile == termenv.Ascii {
			return text
		}
		return style(output.String(text)).String()
	}
	failing := false

	return func(line string) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		text := f.theme.LogPrefix + line
		switch {
		case strings.HasPrefix(line, failureMark):
			failing = true
			text = paint(text, func(s termenv.Style) termenv.Style { return s.Foreground(red).Bold() })
		case failing && (line == "Traceback:" || strings.HasPrefix(line, "  ")):
			text = paint(text, func(s termenv.Style) termenv.Style { return s.Foreground(red).Faint() })
		case strings.Contains(line, "Invalid arguments:") || strings.HasPrefix(line, "Browse failed:"):
			failing = false
			text = paint(text, func(s termenv.Style) termenv.Style { return s.Foreground(yellow) })
		default:
			failing = false
		}
		_, err := fmt.Fprintln(f.out, text)
		return err
	}
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
