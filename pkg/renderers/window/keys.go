package window

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Cycle    key.Binding
	Prev     key.Binding
	Browse   key.Binding
	Clear    key.Binding
	Run      key.Binding
	Cancel   key.Binding
	LogUp    key.Binding
	LogDown  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit/run")),
		Cycle:    key.NewBinding(key.WithKeys(" ", "right", "l"), key.WithHelp("space", "toggle/next")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Browse:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "browse")),
		Clear:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "clear")),
		Run:      key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "run")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		LogUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll log")),
		LogDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll log")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Cycle, k.Browse, k.Run, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate, k.Cycle, k.Prev},
		{k.Browse, k.Clear, k.Run, k.Cancel},
		{k.LogUp, k.LogDown, k.Quit},
	}
}
