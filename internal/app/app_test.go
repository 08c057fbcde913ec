package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathsheet/internal/questiongen"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, worksheet.Selection) questiongen.Result {
	return questiongen.Result{Questions: questiongen.FallbackQuestions(), Fallback: true}
}

func newTestModel(t *testing.T) (AppModel, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(nopGenerator{}, session.DefaultManagerConfig())
	m := newAppModel(Options{Sessions: mgr, OutputDir: t.TempDir(), SkipSplash: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel), mgr
}

// send delivers msg and follows any router navigation it produces.
func send(m AppModel, msg tea.Msg) AppModel {
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	if cmd != nil {
		if next := cmd(); next != nil {
			if _, isBatch := next.(tea.BatchMsg); !isBatch {
				updated, _ = m.Update(next)
				m = updated.(AppModel)
			}
		}
	}
	return m
}

func TestLoginFlowReachesWorksheet(t *testing.T) {
	m, mgr := newTestModel(t)

	if title := m.router.Active().Title(); title != "Log in" {
		t.Fatalf("expected login screen, got %q", title)
	}

	for _, r := range "ann@example.com" {
		updated, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		m = updated.(AppModel)
	}
	m = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if title := m.router.Active().Title(); title != "Worksheet" {
		t.Fatalf("expected worksheet screen, got %q", title)
	}
	if mgr.Len() != 1 {
		t.Errorf("expected one session, got %d", mgr.Len())
	}

	frame := m.render()
	if !strings.Contains(frame, "ann@example.com") || !strings.Contains(frame, "0/3 free sheets used") {
		t.Errorf("header should show account:\n%s", frame)
	}

	m = send(m, tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if title := m.router.Active().Title(); title != "Log in" {
		t.Errorf("expected login after logout, got %q", title)
	}
	if mgr.Len() != 0 {
		t.Errorf("expected session destroyed, %d left", mgr.Len())
	}
}

func TestSplashLeadsToLogin(t *testing.T) {
	mgr := session.NewManager(nopGenerator{}, session.DefaultManagerConfig())
	m := newAppModel(Options{Sessions: mgr})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(AppModel)

	m = send(m, tea.KeyPressMsg{Code: ' ', Text: " "})
	if title := m.router.Active().Title(); title != "Log in" {
		t.Errorf("expected login after splash, got %q", title)
	}
}

func TestTooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	out := updated.(AppModel).render()
	if !strings.Contains(out, "Terminal too small") {
		t.Errorf("expected min size message, got %q", out)
	}
}

func TestRunRequiresManager(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected error without session manager")
	}
}
