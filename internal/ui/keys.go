package ui

import (
	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type gameKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

var gameKeys = gameKeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
	Right: key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Quit}}
}

// steeringFor maps a movement key to the heading it asks for.
func (k gameKeyMap) steeringFor(msg tea.KeyMsg) (game.Steering, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return game.Steering{Path: game.Vertical, Direction: game.Backward}, true
	case key.Matches(msg, k.Down):
		return game.Steering{Path: game.Vertical, Direction: game.Forward}, true
	case key.Matches(msg, k.Left):
		return game.Steering{Path: game.Horizontal, Direction: game.Backward}, true
	case key.Matches(msg, k.Right):
		return game.Steering{Path: game.Horizontal, Direction: game.Forward}, true
	}
	return game.Steering{}, false
}
