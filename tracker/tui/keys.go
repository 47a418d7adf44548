package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Down, Up, Right key.Binding
	Undo, Redo            key.Binding
	Delete, Yank, Paste   key.Binding
	Inc, Dec              key.Binding
	Insert, Visual        key.Binding
	Command, Escape       key.Binding
	Help, Quit            key.Binding
}

func binding(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

var keys = keyMap{
	Left:    binding("left", "h", "left"),
	Down:    binding("down", "j", "down"),
	Up:      binding("up", "k", "up"),
	Right:   binding("right", "l", "right"),
	Undo:    binding("undo", "u"),
	Redo:    binding("redo", "r", "ctrl+r"),
	Delete:  binding("cut", "x"),
	Yank:    binding("yank", "y"),
	Paste:   binding("paste", "p"),
	Inc:     binding("inc", "+", "="),
	Dec:     binding("dec", "-"),
	Insert:  binding("insert", "i"),
	Visual:  binding("visual", "v"),
	Command: binding("command", ":"),
	Escape:  binding("normal", "esc"),
	Help:    binding("help", "?"),
	Quit:    binding("quit", "ctrl+c"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Delete, k.Undo, k.Command, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right},
		{k.Insert, k.Visual, k.Command, k.Escape},
		{k.Delete, k.Yank, k.Paste, k.Inc, k.Dec},
		{k.Undo, k.Redo, k.Help, k.Quit},
	}
}
