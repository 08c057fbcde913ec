package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with an inline validation message.
type TextInput struct {
	Model textinput.Model
	Label string
	err   string
}

// NewTextInput creates a focused text input limited to charLimit runes.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{Model: ti, Label: label}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards the message to the input. Typing clears any error.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.err = ""
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, input and error line.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Label != "" {
		view = theme.Label.Render(t.Label) + view
	}
	if t.err != "" {
		view += "\n" + theme.Failure.Render("✗ "+t.err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetError shows msg under the input until the next keypress.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Err returns the message set by SetError.
func (t TextInput) Err() string {
	return t.err
}
