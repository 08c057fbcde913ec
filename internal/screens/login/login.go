package login

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/router"
	"github.com/abhisek/mathsheet/internal/screen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/ui/components"
	"github.com/abhisek/mathsheet/internal/ui/layout"
	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// LoginScreen asks for an email and opens a session for it. There is no
// password; any well-formed address gets a fresh free account.
type LoginScreen struct {
	sessions *session.Manager
	next     func(*session.Session) screen.Screen
	input    components.TextInput
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. next builds the screen shown after login.
func New(sessions *session.Manager, next func(*session.Session) screen.Screen) *LoginScreen {
	return &LoginScreen{
		sessions: sessions,
		next:     next,
		input:    components.NewTextInput("Email", "you@example.com", 254),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string {
	return "Log in"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Log in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return l, l.submit()
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	sess, err := l.sessions.Login(strings.TrimSpace(l.input.Value()))
	if err != nil {
		l.input.SetError(err.Error())
		return nil
	}
	next := l.next(sess)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (l *LoginScreen) View(width, height int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Welcome to the Math Worksheet Generator")
	sub := theme.Hint.Render(fmt.Sprintf("Log in with your email to get %d free worksheets.", l.sessions.FreeAllowance()))

	card := theme.Card.Width(min(width-4, 60)).Render(l.input.View())

	content := lipgloss.JoinVertical(lipgloss.Center, heading, "", sub, "", card)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
