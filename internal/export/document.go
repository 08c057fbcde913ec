// Package export renders worksheets as printable documents.
package export

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

// DateLayout is how the generation date is printed.
const DateLayout = "2 January 2006"

// Document is the layout-independent form of a worksheet: what goes on the
// page, in order. Exporters only decide how it looks.
type Document struct {
	Title       string
	Subtitle    string
	Generated   string
	WithAnswers bool
	Entries     []Entry
}

// Entry is one numbered question. Answer and Working are empty unless the
// document was built with answers.
type Entry struct {
	Number   int
	Question string
	Answer   string
	Working  []string
}

// Build lays out ws. Questions keep their worksheet order.
func Build(ws *worksheet.Worksheet, includeAnswers bool) Document {
	doc := Document{
		Title:       ws.Title,
		Subtitle:    fmt.Sprintf("Level %s  |  %s  |  %s", ws.Level, ws.Topic, ws.Difficulty),
		Generated:   "Generated on " + ws.CreatedAt.Format(DateLayout),
		WithAnswers: includeAnswers,
		Entries:     make([]Entry, len(ws.Questions)),
	}
	for i, q := range ws.Questions {
		e := Entry{Number: i + 1, Question: q.Text}
		if includeAnswers {
			e.Answer = q.Answer
			e.Working = append([]string(nil), q.WorkingSteps...)
		}
		doc.Entries[i] = e
	}
	return doc
}

// Filename suggests a download name such as "p3-fractions-medium-answers.pdf".
func Filename(ws *worksheet.Worksheet, includeAnswers bool, ext string) string {
	kind := "questions"
	if includeAnswers {
		kind = "answers"
	}
	base := strings.ToLower(fmt.Sprintf("%s-%s-%s", ws.Level, ws.Topic, ws.Difficulty))
	base = strings.ReplaceAll(base, " ", "-")
	return fmt.Sprintf("%s-%s.%s", base, kind, strings.TrimPrefix(ext, "."))
}
