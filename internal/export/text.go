package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

// TextExporter renders a worksheet as UTF-8 plain text.
type TextExporter struct{}

func (e *TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (e *TextExporter) Extension() string { return "txt" }

func (e *TextExporter) Export(w io.Writer, ws *worksheet.Worksheet, includeAnswers bool) error {
	doc := Build(ws, includeAnswers)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, doc.Title)
	fmt.Fprintln(bw, strings.Repeat("=", len([]rune(doc.Title))))
	fmt.Fprintln(bw, doc.Subtitle)
	fmt.Fprintln(bw, doc.Generated)
	fmt.Fprintln(bw)
	if doc.WithAnswers {
		fmt.Fprintln(bw, "ANSWER KEY")
	} else {
		fmt.Fprintln(bw, "Name: ________________  Date: ____________")
	}

	for _, e := range doc.Entries {
		fmt.Fprintf(bw, "\n%d. %s\n", e.Number, e.Question)
		if !doc.WithAnswers {
			fmt.Fprintf(bw, "\n   Answer: ________________\n")
			continue
		}
		fmt.Fprintf(bw, "   Answer: %s\n", e.Answer)
		if len(e.Working) > 0 {
			fmt.Fprintln(bw, "   Working:")
			for _, step := range e.Working {
				fmt.Fprintf(bw, "     %s\n", step)
			}
		}
	}

	return bw.Flush()
}
