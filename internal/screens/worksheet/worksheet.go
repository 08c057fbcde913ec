package worksheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/entitlement"
	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/router"
	"github.com/abhisek/mathsheet/internal/screen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/ui/components"
	"github.com/abhisek/mathsheet/internal/ui/layout"
	ws "github.com/abhisek/mathsheet/internal/worksheet"
)

const spinnerInterval = 120 * time.Millisecond

const (
	focusLevel = iota
	focusTopic
	focusDifficulty
	focusGenerate
	focusCount
)

// Options configures a WorksheetScreen.
type Options struct {
	// OutputDir is where downloads are written. Defaults to ".".
	OutputDir string

	// Logout ends the session and returns the screen to show next.
	Logout func() screen.Screen
}

// WorksheetScreen is the main screen: pick a selection, generate, preview
// and download. All state comes from the session controller.
type WorksheetScreen struct {
	sess    *session.Session
	opts    Options
	pickers [3]components.Picker
	focus   int

	upgrade components.Menu
	// requested is a UI-only latch set when enter is pressed, before the
	// controller reaches Generating. It only drives the spinner.
	requested bool
	spinner int
	scroll  int
	status  string
	errMsg  string
}

var _ screen.Screen = (*WorksheetScreen)(nil)
var _ screen.KeyHintProvider = (*WorksheetScreen)(nil)
var _ screen.AccountProvider = (*WorksheetScreen)(nil)

// New creates the worksheet screen for sess.
func New(sess *session.Session, opts Options) *WorksheetScreen {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	s := &WorksheetScreen{
		sess: sess,
		opts: opts,
		pickers: [3]components.Picker{
			components.NewPicker("Level", names(ws.AllLevels())),
			components.NewPicker("Topic", names(ws.AllTopics())),
			components.NewPicker("Difficulty", names(ws.AllDifficulties())),
		},
		upgrade: components.NewMenu([]components.MenuItem{
			{Label: "Upgrade Now (" + entitlement.DefaultOffer.Price + ")", Action: func() tea.Cmd { return msgCmd(upgradeMsg{}) }},
			{Label: "Cancel", Action: func() tea.Cmd { return msgCmd(dismissMsg{}) }},
		}),
	}
	s.setFocus(focusLevel)
	return s
}

func names[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (s *WorksheetScreen) Init() tea.Cmd {
	return nil
}

func (s *WorksheetScreen) Title() string {
	return "Worksheet"
}

func (s *WorksheetScreen) Account() (string, string) {
	v := s.sess.Controller.View()
	return v.User.Email, v.UsageLabel
}

func (s *WorksheetScreen) KeyHints() []layout.KeyHint {
	v := s.sess.Controller.View()
	switch {
	case v.ShowUpgrade:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.generating(v):
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
	}
	if v.HasWorksheet {
		hints = append(hints,
			layout.KeyHint{Key: "Q", Description: "Save questions"},
			layout.KeyHint{Key: "A", Description: "Save answers"},
			layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Log out"})
}

func (s *WorksheetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return s.handleGenerated(msg)

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("Could not save: %v", msg.Err)
		} else {
			s.errMsg = ""
			s.status = "Saved " + msg.Path
		}
		return s, nil

	case spinnerTickMsg:
		if !s.requested {
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()

	case upgradeMsg:
		if err := s.sess.Controller.Upgrade(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.status = "Upgraded. Enjoy unlimited worksheets!"
		return s, nil

	case dismissMsg:
		s.sess.Controller.DismissUpgrade()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *WorksheetScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	v := s.sess.Controller.View()

	if v.ShowUpgrade {
		if msg.String() == "esc" {
			return s, msgCmd(dismissMsg{})
		}
		var cmd tea.Cmd
		s.upgrade, cmd = s.upgrade.Update(msg)
		return s, cmd
	}

	if msg.String() == "ctrl+l" {
		return s, s.logout()
	}
	if s.generating(v) {
		return s, nil
	}

	switch msg.String() {
	case "up", "k", "shift+tab":
		s.setFocus((s.focus - 1 + focusCount) % focusCount)
	case "down", "j", "tab":
		s.setFocus((s.focus + 1) % focusCount)
	case "enter":
		return s, s.generate()
	case "q", "Q":
		if v.HasWorksheet {
			return s, s.save(false)
		}
	case "a", "A":
		if v.HasWorksheet {
			return s, s.save(true)
		}
	case "pgdown":
		s.scroll += 5
	case "pgup":
		s.scroll = max(0, s.scroll-5)
	default:
		if s.focus < len(s.pickers) {
			s.pickers[s.focus], _ = s.pickers[s.focus].Update(msg)
		}
	}
	return s, nil
}

func (s *WorksheetScreen) setFocus(f int) {
	s.focus = f
	for i := range s.pickers {
		s.pickers[i].Focused = i == f
	}
}

func (s *WorksheetScreen) selection() (ws.Selection, error) {
	return ws.ParseSelection(s.pickers[0].Value(), s.pickers[1].Value(), s.pickers[2].Value())
}

// generate starts a generation in the background.
func (s *WorksheetScreen) generate() tea.Cmd {
	sel, err := s.selection()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.status, s.errMsg = "", ""
	s.requested = true

	ctrl := s.sess.Controller
	return tea.Batch(
		func() tea.Msg {
			out, err := ctrl.Generate(context.Background(), sel)
			return generatedMsg{Outcome: out, Err: err}
		},
		spinnerTick(),
	)
}

func (s *WorksheetScreen) generating(v session.View) bool {
	return s.requested || v.Generating
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *WorksheetScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	s.requested = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.scroll = 0
	switch {
	case msg.Outcome.State == session.StateBlocked:
		s.upgrade.Selected = 0
	case msg.Outcome.Fallback:
		s.status = "The question service was unavailable, so a standard practice set is shown."
	default:
		s.status = "Worksheet ready."
	}
	return s, nil
}

func (s *WorksheetScreen) save(includeAnswers bool) tea.Cmd {
	ctrl := s.sess.Controller
	current := ctrl.Worksheet()
	if current == nil {
		return nil
	}
	path := filepath.Join(s.opts.OutputDir, export.Filename(current, includeAnswers, "pdf"))

	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return savedMsg{Err: err}
		}
		if err := ctrl.Download(f, includeAnswers); err != nil {
			f.Close()
			return savedMsg{Err: err}
		}
		if err := f.Close(); err != nil {
			return savedMsg{Err: err}
		}
		return savedMsg{Path: path}
	}
}

func (s *WorksheetScreen) logout() tea.Cmd {
	if s.opts.Logout == nil {
		return tea.Quit
	}
	next := s.opts.Logout()
	return msgCmd(router.ResetScreenMsg{Screen: next})
}
