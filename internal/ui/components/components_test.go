package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestPicker_Cycles(t *testing.T) {
	p := NewPicker("Level", []string{"P1", "P2", "P3"})
	p.Focused = true

	p, _ = p.Update(key(tea.KeyRight))
	if p.Value() != "P2" {
		t.Errorf("expected P2, got %q", p.Value())
	}
	p, _ = p.Update(key(tea.KeyLeft))
	p, _ = p.Update(key(tea.KeyLeft))
	if p.Value() != "P3" {
		t.Errorf("expected wrap to P3, got %q", p.Value())
	}
}

func TestPicker_IgnoresKeysWhenBlurred(t *testing.T) {
	p := NewPicker("Level", []string{"P1", "P2"})
	p, _ = p.Update(key(tea.KeyRight))
	if p.Value() != "P1" {
		t.Errorf("blurred picker should not move, got %q", p.Value())
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "Upgrade", Action: func() tea.Cmd { fired = "upgrade"; return nil }},
		{Label: "Later", Disabled: true},
		{Label: "Cancel", Action: func() tea.Cmd { fired = "cancel"; return nil }},
	})

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 2 {
		t.Fatalf("expected disabled item skipped, selected=%d", m.Selected)
	}
	m.Update(key(tea.KeyEnter))
	if fired != "cancel" {
		t.Errorf("expected cancel action, got %q", fired)
	}
}

func TestUsageMeter(t *testing.T) {
	out := NewUsageMeter(2, 3, 30).View()
	if !strings.Contains(out, "2/3 free") {
		t.Errorf("meter missing count: %q", out)
	}
}

func TestTextInput_ErrorClearsOnTyping(t *testing.T) {
	ti := NewTextInput("Email", "you@example.com", 64)
	ti.SetError("a valid email address is required")
	if !strings.Contains(ti.View(), "valid email") {
		t.Fatal("expected error in view")
	}

	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if ti.Err() != "" {
		t.Errorf("expected error cleared, got %q", ti.Err())
	}
	if ti.Value() != "a" {
		t.Errorf("expected typed value, got %q", ti.Value())
	}
}

func TestButton_BusyHidesFocusMarker(t *testing.T) {
	b := NewButton("Generate Worksheet")
	b.Focused = true
	if !strings.Contains(b.View(), "▸") {
		t.Error("focused button should show marker")
	}
	b.Busy = true
	if strings.Contains(b.View(), "▸") {
		t.Error("busy button should not show marker")
	}
}
