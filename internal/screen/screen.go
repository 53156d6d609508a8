package screen

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// Positioned screens show where the learner is, for example "Step 2 of 6".
type Positioned interface {
	Position() string
}

// BindingProvider screens list the keys shown in the footer.
type BindingProvider interface {
	Bindings() []key.Binding
}

// Closer screens own resources, such as a running player, that must be
// released when they leave the stack.
type Closer interface {
	Close()
}

// Capturer screens report whether they are consuming raw key presses, for
// example while a text input has focus. Global shortcuts are suspended
// while Capturing returns true.
type Capturer interface {
	Capturing() bool
}

// Resumer screens are told when they become active again because the
// screen above them was popped. from is the screen that left.
type Resumer interface {
	Resume(from Screen) tea.Cmd
}
