package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/mathsheet/internal/worksheet"
)

const (
	pdfFont       = "Helvetica"
	lineHeight    = 6.0
	answerSpace   = 22.0
	workingIndent = 8.0
)

// PDFExporter renders A4 worksheets with fpdf's core fonts. Text goes
// through a cp1252 translator so symbols like × and ÷ survive.
type PDFExporter struct {
	// Compress toggles stream compression. Tests turn it off to inspect
	// the page content.
	Compress bool
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{Compress: true}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Extension() string { return "pdf" }

func (e *PDFExporter) Export(w io.Writer, ws *worksheet.Worksheet, includeAnswers bool) error {
	doc := Build(ws, includeAnswers)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.Compress)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("mathsheet", false)
	pdf.SetCreationDate(ws.CreatedAt)
	pdf.SetModificationDate(ws.CreatedAt)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	writeHeader(pdf, tr, doc)
	for _, entry := range doc.Entries {
		writeEntry(pdf, tr, entry, doc.WithAnswers)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeHeader(pdf *fpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFont, "", 11)
	pdf.CellFormat(0, lineHeight, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr(doc.Generated), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if doc.WithAnswers {
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(0, lineHeight, "Answer Key", "", 1, "C", false, 0, "")
	} else {
		pdf.CellFormat(0, lineHeight, "Name: ______________________    Class: ________    Date: ____________", "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeEntry(pdf *fpdf.Fpdf, tr func(string) string, e Entry, withAnswers bool) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.MultiCell(0, lineHeight+1, tr(fmt.Sprintf("%d. %s", e.Number, e.Question)), "", "L", false)

	pdf.SetFont(pdfFont, "", 11)
	if !withAnswers {
		pdf.Ln(answerSpace)
		pdf.CellFormat(0, lineHeight, "Answer: ______________________", "", 1, "R", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.MultiCell(0, lineHeight, tr("Answer: "+e.Answer), "", "L", false)
	if len(e.Working) > 0 {
		pdf.CellFormat(0, lineHeight, "Working:", "", 1, "L", false, 0, "")
		left, _, _, _ := pdf.GetMargins()
		for _, step := range e.Working {
			pdf.SetX(left + workingIndent)
			pdf.MultiCell(0, lineHeight, tr(step), "", "L", false)
		}
	}
	pdf.Ln(5)
}
