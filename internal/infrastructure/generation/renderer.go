package generation

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"manifiesto_bot/internal/domain/entities"
)

const (
	documentTitle   = "MANIFIESTO ELECTRONICO DE CARGA"
	pdfContentType  = "application/pdf"
	labelColumnMM   = 55.0
	valueColumnMM   = 125.0
	rowHeightMM     = 9.0
	headerHeightMM  = 12.0
	footerTextColor = 110
)

// Sheet is everything printed on one manifiesto.
type Sheet struct {
	DocumentID  string
	SessionID   string
	Values      map[entities.FieldName]string
	Fee         int64
	GeneratedAt time.Time
}

// Renderer turns a Sheet into a single page PDF.
type Renderer struct {
	location *time.Location
}

func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{location: loc}
}

// Render lays the nine fields out in prompting order. Missing values render
// as empty cells.
func (r *Renderer) Render(sheet Sheet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(documentTitle, true)
	pdf.SetCreator("manifiesto_bot", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, headerHeightMM, documentTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("No. "+sheet.DocumentID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Expedido: "+sheet.GeneratedAt.In(r.location).Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFillColor(230, 230, 230)
	for _, f := range entities.FieldOrder {
		spec := f.Spec()
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelColumnMM, rowHeightMM, tr(spec.Label), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(valueColumnMM, rowHeightMM, tr(sheet.Values[f]), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Valor del servicio: "+formatCOP(sheet.Fee)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(footerTextColor, footerTextColor, footerTextColor)
	pdf.CellFormat(0, 6, tr("Sesión "+sheet.SessionID), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCOP(amount int64) string {
	return "$" + strings.ReplaceAll(humanize.Comma(amount), ",", ".") + " COP"
}

func fileName(documentID string) string {
	return fmt.Sprintf("manifiesto-%s.pdf", documentID)
}
