package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/router"
	"github.com/abhisek/mathsheet/internal/screen"
	"github.com/abhisek/mathsheet/internal/screens/login"
	"github.com/abhisek/mathsheet/internal/screens/welcome"
	"github.com/abhisek/mathsheet/internal/screens/worksheet"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Sessions  *session.Manager
	OutputDir string

	// SkipSplash starts directly at the login screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	var newLogin func() screen.Screen
	newWorksheet := func(s *session.Session) screen.Screen {
		return worksheet.New(s, worksheet.Options{
			OutputDir: opts.OutputDir,
			Logout: func() screen.Screen {
				_ = opts.Sessions.Logout(s.ID)
				return newLogin()
			},
		})
	}
	newLogin = func() screen.Screen {
		return login.New(opts.Sessions, newWorksheet)
	}

	first := newLogin
	if !opts.SkipSplash {
		first = func() screen.Screen { return welcome.New(newLogin) }
	}
	return AppModel{router: router.New(first())}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()

	var title, email, usage string
	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if ap, ok := active.(screen.AccountProvider); ok {
			email, usage = ap.Account()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, email, usage, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Sessions == nil {
		return fmt.Errorf("session manager is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
