package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer
// key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// AccountProvider is implemented by screens that belong to a logged-in
// user. The header shows the returned email and usage line.
type AccountProvider interface {
	Account() (email, usage string)
}
