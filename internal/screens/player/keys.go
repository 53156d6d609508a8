package player

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Play         key.Binding
	Step         key.Binding
	Reset        key.Binding
	Retry        key.Binding
	Answer       key.Binding
	NextQuestion key.Binding
	Submit       key.Binding
	Cancel       key.Binding
}

var defaultKeys = keyMap{
	Next:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Next")),
	Prev:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Back")),
	Play:         key.NewBinding(key.WithKeys("space", "p"), key.WithHelp("Space", "Play/Pause")),
	Step:         key.NewBinding(key.WithKeys("n"), key.WithHelp("N", "Step")),
	Reset:        key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Reset")),
	Retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Retry")),
	Answer:       key.NewBinding(key.WithKeys("a"), key.WithHelp("A", "Answer")),
	NextQuestion: key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Next question")),
	Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Check")),
	Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Stop typing")),
}
