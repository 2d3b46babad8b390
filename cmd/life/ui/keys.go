package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the game's bindings; it implements help.KeyMap.
type keyMap struct {
	Play      key.Binding
	Pause     key.Binding
	Clear     key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Randomize key.Binding
	Step      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play")),
		Pause:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "pause")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Faster:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "faster")),
		Slower:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "slower")),
		Randomize: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "randomize")),
		Step:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "step")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle cell")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Pause, k.Clear, k.Slower, k.Faster, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Pause, k.Step, k.Clear, k.Randomize},
		{k.Slower, k.Faster},
		{k.Up, k.Down, k.Left, k.Right, k.Toggle},
		{k.Help, k.Quit},
	}
}
