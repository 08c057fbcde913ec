package worksheet

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/entitlement"
	"github.com/abhisek/mathsheet/internal/export"
	"github.com/abhisek/mathsheet/internal/session"
	"github.com/abhisek/mathsheet/internal/ui/components"
	"github.com/abhisek/mathsheet/internal/ui/theme"
	ws "github.com/abhisek/mathsheet/internal/worksheet"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *WorksheetScreen) View(width, height int) string {
	v := s.sess.Controller.View()
	if v.ShowUpgrade {
		return s.renderUpgrade(width, height)
	}

	form := s.renderForm(v, width)
	formHeight := lipgloss.Height(form)

	previewHeight := height - formHeight - 1
	if previewHeight < 3 || v.Worksheet == nil {
		return form
	}
	return form + "\n" + s.renderPreview(v, width, previewHeight)
}

func (s *WorksheetScreen) renderForm(v session.View, width int) string {
	var b strings.Builder

	for _, p := range s.pickers {
		b.WriteString(p.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	btn := components.NewButton("Generate Worksheet")
	btn.Focused = s.focus == focusGenerate
	if s.generating(v) {
		btn.Label = spinnerFrames[s.spinner%len(spinnerFrames)] + " Generating..."
		btn.Busy = true
	}
	b.WriteString(btn.View())

	if !v.User.IsPaid {
		b.WriteString("   ")
		b.WriteString(components.NewUsageMeter(v.User.FreeWorksheetsUsed, v.User.MaxFreeWorksheets, 28).View())
	}
	b.WriteString("\n")

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Failure.Render(s.errMsg))
	case s.status != "" && v.Fallback:
		b.WriteString(theme.Warning.Render(s.status))
	case s.status != "":
		b.WriteString(theme.Hint.Render(s.status))
	}

	return lipgloss.NewStyle().Width(width).Padding(1, 2, 0).Render(b.String())
}

func (s *WorksheetScreen) renderPreview(v session.View, width, height int) string {
	lines := previewLines(v.Worksheet, width-6)

	maxScroll := max(0, len(lines)-height+2)
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := min(len(lines), s.scroll+height-2)
	body := strings.Join(lines[s.scroll:end], "\n")

	return lipgloss.NewStyle().
		Width(width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(body)
}

// previewLines lays out the worksheet with answers and working steps.
func previewLines(w *ws.Worksheet, width int) []string {
	doc := export.Build(w, true)
	wrap := lipgloss.NewStyle().Width(max(20, width))

	lines := []string{
		theme.Title.Render(doc.Title),
		theme.Hint.Render(doc.Generated),
		"",
	}
	for _, e := range doc.Entries {
		q := wrap.Render(fmt.Sprintf("%d. %s", e.Number, e.Question))
		lines = append(lines, strings.Split(theme.Body.Render(q), "\n")...)
		lines = append(lines, "   "+theme.Answer.Render("Answer: "+e.Answer))
		for _, step := range e.Working {
			lines = append(lines, theme.Hint.Render("     • "+step))
		}
		lines = append(lines, "")
	}
	return lines
}

func (s *WorksheetScreen) renderUpgrade(width, height int) string {
	offer := entitlement.DefaultOffer

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Warning.Render(entitlement.BlockedNotice),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Upgrade to Premium"),
		theme.Body.Render(offer.Headline),
		theme.Answer.Render(offer.Price+"  ·  "+offer.Benefit),
		"",
		s.upgrade.View(),
	)

	dialog := theme.Dialog.Width(min(width-4, 64)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
