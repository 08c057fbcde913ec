package components

import (
	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// Button renders a single action label. A busy button shows its label
// dimmed regardless of focus.
type Button struct {
	Label   string
	Focused bool
	Busy    bool
}

func NewButton(label string) Button {
	return Button{Label: label}
}

func (b Button) View() string {
	if b.Focused && !b.Busy {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}
