package reportgen

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Page dimensions in points.
var pageSizes = map[string]gofpdf.SizeType{
	"A4":     {Wd: 595.28, Ht: 841.89},
	"Letter": {Wd: 612, Ht: 792},
	"Legal":  {Wd: 612, Ht: 1008},
	"A3":     {Wd: 841.89, Ht: 1190.55},
}

const (
	pdfDefaultMargin = 50.0
	pdfRowHeight     = 20.0
	pdfTitleSize     = 18.0
	pdfSubtitleSize  = 12.0
	pdfBodySize      = 10.0
	pdfFooterSize    = 9.0
	// Rows stop this far above the bottom margin so the footer has room.
	pdfFooterReserve = 20.0
)

// pdfLayout is computed once per document from the options.
type pdfLayout struct {
	pageW, pageH             float64
	top, right, bottom, left float64
	contentW                 float64
	colW                     float64
}

// PDFExporter renders rows as a paginated PDF table. Unlike the printer
// adapters, every visible column gets an equal share of the content width.
type PDFExporter struct{}

// Export lays out the document: optional title block, a bold filled header
// row, then data rows advancing a vertical cursor. When the next row would
// cross into the footer reserve, the current page is finished (footer drawn,
// page number assigned in completion order) and the header row is redrawn on
// a fresh page.
func (e *PDFExporter) Export(ctx context.Context, rows []interface{}, cols []Column, opts Options) (*ExportResult, error) {
	started := time.Now()
	o := DefaultPDFOptions()
	if v, ok := opts.(PDFOptions); ok {
		o = v
	}

	size, ok := pageSizes[o.PageSize]
	if !ok {
		size = pageSizes["A4"]
	}
	if strings.EqualFold(o.Orientation, "landscape") {
		size.Wd, size.Ht = size.Ht, size.Wd
	}

	layout := pdfLayout{
		pageW:  size.Wd,
		pageH:  size.Ht,
		top:    marginOrDefault(o.MarginTop),
		right:  marginOrDefault(o.MarginRight),
		bottom: marginOrDefault(o.MarginBottom),
		left:   marginOrDefault(o.MarginLeft),
	}
	layout.contentW = layout.pageW - layout.left - layout.right

	visible := VisibleColumns(cols)
	if len(visible) > 0 {
		layout.colW = layout.contentW / float64(len(visible))
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    size,
	})
	pdf.SetMargins(layout.left, layout.top, layout.right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := layout.top

	if o.Title != "" {
		pdf.SetFont("Helvetica", "B", pdfTitleSize)
		pdf.SetXY(layout.left, y)
		pdf.CellFormat(layout.contentW, pdfTitleSize+6, o.Title, "", 0, "C", false, 0, "")
		y += pdfTitleSize + 10
	}
	if o.Subtitle != "" {
		pdf.SetFont("Helvetica", "", pdfSubtitleSize)
		pdf.SetXY(layout.left, y)
		pdf.CellFormat(layout.contentW, pdfSubtitleSize+4, o.Subtitle, "", 0, "C", false, 0, "")
		y += pdfSubtitleSize + 8
	}
	if o.Timestamp {
		pdf.SetFont("Helvetica", "", pdfBodySize)
		pdf.SetXY(layout.left, y)
		stamp := "Generated: " + time.Now().Format("2006-01-02 15:04:05")
		pdf.CellFormat(layout.contentW, pdfBodySize+4, stamp, "", 0, "R", false, 0, "")
		y += pdfBodySize + 8
	}

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", pdfBodySize)
		pdf.SetFillColor(224, 224, 224)
		pdf.SetXY(layout.left, y)
		for _, col := range visible {
			pdf.CellFormat(layout.colW, pdfRowHeight, truncateToWidth(pdf, col.Header, layout.colW-4), "1", 0, "L", true, 0, "")
		}
		y += pdfRowHeight
	}
	drawFooter := func(page int) {
		if !o.PageNumbers {
			return
		}
		pdf.SetFont("Helvetica", "", pdfFooterSize)
		pdf.SetXY(layout.left, layout.pageH-layout.bottom-pdfFooterReserve+4)
		pdf.CellFormat(layout.contentW, pdfFooterSize+2, fmt.Sprintf("Page %d", page), "", 0, "C", false, 0, "")
	}

	drawHeader()

	page := 1
	pdf.SetFont("Helvetica", "", pdfBodySize)
	for _, row := range rows {
		if y+pdfRowHeight > layout.pageH-layout.bottom-pdfFooterReserve {
			drawFooter(page)
			page++
			pdf.AddPage()
			y = layout.top
			drawHeader()
			pdf.SetFont("Helvetica", "", pdfBodySize)
		}
		pdf.SetXY(layout.left, y)
		for _, col := range visible {
			text := FormatValue(ResolveValue(row, col), col)
			pdf.CellFormat(layout.colW, pdfRowHeight, truncateToWidth(pdf, text, layout.colW-4), "1", 0, "L", false, 0, "")
		}
		y += pdfRowHeight
	}

	if o.Watermark != "" {
		pdf.SetFont("Helvetica", "B", 48)
		pdf.SetTextColor(210, 210, 210)
		w := pdf.GetStringWidth(o.Watermark)
		pdf.SetXY((layout.pageW-w)/2, layout.pageH/2)
		pdf.CellFormat(w, 50, o.Watermark, "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	drawFooter(page)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
	}

	filename := fmt.Sprintf("export-%d.pdf", time.Now().UnixMilli())
	return newExportResult(buf.Bytes(), MIMETypePDF, filename, len(rows), started), nil
}

func marginOrDefault(m float64) float64 {
	if m <= 0 {
		return pdfDefaultMargin
	}
	return m
}

// truncateToWidth shortens text to fit maxW points, appending an ellipsis.
func truncateToWidth(pdf *gofpdf.Fpdf, text string, maxW float64) string {
	if pdf.GetStringWidth(text) <= maxW {
		return text
	}
	const ellipsis = "..."
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if pdf.GetStringWidth(string(runes)+ellipsis) <= maxW {
			return string(runes) + ellipsis
		}
	}
	return ellipsis
}
