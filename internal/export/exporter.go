package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

// Exporter writes a worksheet in one document format.
type Exporter interface {
	Export(w io.Writer, ws *worksheet.Worksheet, includeAnswers bool) error

	// ContentType is the MIME type of the output.
	ContentType() string

	// Extension is the file extension without the dot.
	Extension() string
}

// ForFormat returns the exporter for "pdf" or "txt".
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "pdf":
		return NewPDFExporter(), nil
	case "txt", "text":
		return &TextExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q: must be pdf or txt", format)
	}
}
