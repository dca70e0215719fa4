package window

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-argform/pkg/dispatch"
	"github.com/goliatone/go-argform/pkg/form"
	"github.com/goliatone/go-argform/pkg/render"
)

type mode int

const (
	modeForm mode = iota
	modeEdit
	modePick
)

const (
	defaultWidth  = 100
	defaultHeight = 32
	minLogHeight  = 5
	valueWidth    = 60
)

type refreshMsg time.Time

type model struct {
	ctx     context.Context
	session *render.Session
	keys    keyMap
	styles  styles
	help    help.Model

	mode   mode
	focus  int
	input  textinput.Model
	picker filepicker.Model
	target string

	log     viewport.Model
	lines   []string
	seen    int
	refresh time.Duration

	status   string
	errField string
	width    int
	height   int
}

func newModel(ctx context.Context, session *render.Session, refresh time.Duration) model {
	in := textinput.New()
	in.CharLimit = 4096
	in.Width = valueWidth

	m := model{
		ctx:     ctx,
		session: session,
		keys:    defaultKeys(),
		styles:  defaultStyles(),
		help:    help.New(),
		input:   in,
		log:     viewport.New(defaultWidth, minLogHeight),
		refresh: refresh,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.syncLog()
	m.layout()
	return m
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.syncLog()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		if m.mode == modePick {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(m.pickerSize())
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modePick:
			return m.updatePick(msg)
		default:
			return m.updateForm(msg)
		}
	}

	var cmd tea.Cmd
	switch m.mode {
	case modePick:
		m.picker, cmd = m.picker.Update(msg)
	case modeEdit:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.session.Form.Rows()
	onRun := m.focus == len(rows)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus < len(rows) {
			m.focus++
		}
	case key.Matches(msg, m.keys.Run):
		m.run()
	case key.Matches(msg, m.keys.LogUp), key.Matches(msg, m.keys.LogDown):
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	case onRun:
		if key.Matches(msg, m.keys.Activate) {
			m.run()
		}
	default:
		return m.updateControl(msg, rows[m.focus].Control)
	}
	return m, nil
}

func (m model) updateControl(msg tea.KeyMsg, control form.Control) (tea.Model, tea.Cmd) {
	state := m.session.Form.State()
	name := control.Name()

	switch control.Kind {
	case form.ControlToggle:
		if key.Matches(msg, m.keys.Activate, m.keys.Cycle) {
			m.setErr(state.SetBool(name, !state.Bool(name)))
		}
	case form.ControlSelect:
		switch {
		case key.Matches(msg, m.keys.Activate, m.keys.Cycle):
			m.setErr(state.SetText(name, cycle(control.Options, state.Text(name), 1)))
		case key.Matches(msg, m.keys.Prev):
			m.setErr(state.SetText(name, cycle(control.Options, state.Text(name), -1)))
		}
	case form.ControlPath:
		switch {
		case key.Matches(msg, m.keys.Browse):
			return m.startPicker(control)
		case key.Matches(msg, m.keys.Clear):
			m.setErr(state.SetText(name, ""))
		case key.Matches(msg, m.keys.Activate):
			return m.startEdit(control)
		}
	default:
		switch {
		case key.Matches(msg, m.keys.Clear):
			m.setErr(state.SetText(name, ""))
		case key.Matches(msg, m.keys.Activate):
			return m.startEdit(control)
		}
	}
	return m, nil
}

func (m model) startEdit(control form.Control) (tea.Model, tea.Cmd) {
	m.mode = modeEdit
	m.target = control.Name()
	m.input.SetValue(m.session.Form.State().Text(control.Name()))
	m.input.Placeholder = control.Placeholder
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endEdit()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.setErr(m.session.Form.State().SetText(m.target, m.input.Value()))
		m.endEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) endEdit() {
	m.input.Blur()
	m.mode = modeForm
	m.target = ""
}

func (m model) startPicker(control form.Control) (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.CurrentDirectory = form.StartDir(m.session.Form.State().Text(control.Name()))
	fp.DirAllowed = control.Path == form.PathDirectory
	fp.FileAllowed = control.Path == form.PathFile
	fp.ShowHidden = false
	// Esc dismisses the picker instead of walking up a directory.
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))
	fp, _ = fp.Update(m.pickerSize())

	m.picker = fp
	m.mode = modePick
	m.target = control.Name()
	m.status = "Choose a " + control.Path.String() + " (esc cancels)"
	return m, m.picker.Init()
}

func (m model) pickerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: m.height - m.log.Height}
}

func (m model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.mode = modeForm
		m.target = ""
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.choose(path)
	}
	return m, cmd
}

// choose stores a picked path and closes the picker.
func (m *model) choose(path string) {
	m.setErr(m.session.Form.State().SetText(m.target, path))
	m.mode = modeForm
	m.target = ""
	m.status = ""
}

func (m *model) run() {
	outcome := m.session.Trigger(m.ctx)
	m.errField = ""
	if outcome == dispatch.OutcomeInvalid {
		if _, err := m.session.Form.Collect(); err != nil {
			m.errField, _, _ = render.FieldError(err)
		}
	}
	m.status = "Last run: " + outcome.String()
	m.syncLog()
}

func (m *model) setErr(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// syncLog pulls lines appended since the last refresh and keeps the newest
// line in view.
func (m *model) syncLog() {
	fresh := m.session.Log.Since(m.seen)
	if len(fresh) == 0 {
		return
	}
	m.seen += len(fresh)
	m.lines = append(m.lines, fresh...)
	m.log.SetContent(m.renderLog())
	m.log.GotoBottom()
}

func (m model) renderLog() string {
	out := make([]string, len(m.lines))
	failing := false
	for i, line := range m.lines {
		switch {
		case strings.HasPrefix(line, "Run failed:"):
			failing = true
			out[i] = m.styles.failure.Render(line)
		case failing && (line == "Traceback:" || strings.HasPrefix(line, "  ")):
			out[i] = m.styles.failure.Render(line)
		case strings.Contains(line, "Invalid arguments:"):
			failing = false
			out[i] = m.styles.warn.Render(line)
		default:
			failing = false
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}

// layout gives the log whatever height the form does not use.
func (m *model) layout() {
	formHeight := m.session.Form.Len() + 8
	logHeight := m.height - formHeight - 2
	if logHeight < minLogHeight {
		logHeight = minLogHeight
	}
	m.log.Width = m.width - 4
	m.log.Height = logHeight
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.session.Form.Title()))
	b.WriteString("\n")
	if desc := m.session.Form.Description(); desc != "" {
		b.WriteString(m.styles.dim.Render(desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.mode == modePick {
		b.WriteString(m.picker.View())
	} else {
		b.WriteString(m.formView())
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.dim.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.panel.Render(m.log.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) formView() string {
	rows := m.session.Form.Rows()
	width := 0
	for _, row := range rows {
		if w := lipgloss.Width(row.Control.Label); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, row := range rows {
		cursor := "  "
		labelStyle := m.styles.label
		if i == m.focus && m.mode == modeForm {
			cursor = "› "
			labelStyle = m.styles.focused
		}
		label := row.Control.Label
		if row.Control.Field.Required {
			label += "*"
		}
		b.WriteString(cursor)
		b.WriteString(labelStyle.Width(width + 2).Render(label))

		switch {
		case m.mode == modeEdit && row.Control.Name() == m.target:
			b.WriteString(m.input.View())
		default:
			b.WriteString(m.valueView(row))
		}
		if row.Control.Name() == m.errField {
			b.WriteString(m.styles.invalid.Render("  ✗"))
		}
		b.WriteString("\n")
	}

	button := m.styles.button
	if m.focus == len(rows) {
		button = m.styles.buttonOn
	}
	b.WriteString(button.Render(m.session.Form.RunLabel()))
	return b.String()
}

func (m model) valueView(row form.Row) string {
	c := row.Control
	text := row.Display
	state := m.session.Form.State()

	switch c.Kind {
	case form.ControlToggle:
		if state.Bool(c.Name()) {
			text = "[x]"
		} else {
			text = "[ ]"
		}
	case form.ControlSelect:
		text = fmt.Sprintf("‹ %s ›", row.Display)
	case form.ControlPath:
		if state.Text(c.Name()) == "" {
			return m.styles.dim.Render(text) + m.styles.dim.Render("  [b]rowse")
		}
		text += m.styles.dim.Render("  [b]rowse")
	}
	if state.Text(c.Name()) == "" && c.Kind == form.ControlText {
		return m.styles.dim.Render(c.Placeholder)
	}
	return m.styles.value.Render(text)
}

// cycle steps through options from the current value.
func cycle(options []string, current string, step int) string {
	if len(options) == 0 {
		return current
	}
	for i, option := range options {
		if option == current {
			return options[(i+step+len(options))%len(options)]
		}
	}
	if step < 0 {
		return options[len(options)-1]
	}
	return options[0]
}
