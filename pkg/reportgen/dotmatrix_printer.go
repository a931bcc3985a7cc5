package reportgen

import (
	"fmt"
	"strings"
	"time"
)

const dotMatrixMinColWidth = 6

// DotMatrixPrinter renders rows as ASCII-bordered text for impact printers.
// Only plain ASCII border characters are used, no Unicode box drawing.
// Pure and safe for concurrent use.
type DotMatrixPrinter struct{}

// Print builds the bordered document. Lines are joined with CRLF. The
// condensed flag only changes the declared encoding name; the emitted
// characters stay the same.
func (p *DotMatrixPrinter) Print(rows []interface{}, cols []Column, opts Options) (*PrintResult, error) {
	o := DefaultDotMatrixOptions()
	if v, ok := opts.(DotMatrixOptions); ok {
		o = v
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 80
	}

	visible := VisibleColumns(cols)
	widths := columnCharWidths(visible, o.LineWidth, dotMatrixMinColWidth)
	border := borderLine(widths)

	lines := make([]string, 0, len(rows)+10)
	lines = append(lines, border)
	lines = append(lines, centerText("REPORT", o.LineWidth))
	lines = append(lines, centerText(time.Now().Format("2006-01-02 15:04:05"), o.LineWidth))
	lines = append(lines, border)
	lines = append(lines, borderedRow(headerCells(visible), widths))
	lines = append(lines, border)
	for _, row := range rows {
		lines = append(lines, borderedRow(rowCells(row, visible), widths))
	}
	lines = append(lines, border)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Total rows: %d", len(rows)))
	lines = append(lines, "Generated: "+time.Now().Format(time.RFC3339))

	text := strings.Join(lines, "\r\n")
	if o.FormFeed {
		text += "\f"
	}

	encoding := "utf-8"
	if o.Condensed {
		encoding = "ascii"
	}
	return &PrintResult{
		Success:    true,
		Bytes:      []byte(text),
		Encoding:   encoding,
		WidthChars: o.LineWidth,
	}, nil
}

// borderLine draws "+----+----+" matching the column widths.
func borderLine(widths []int) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteByte('+')
	}
	return sb.String()
}

// borderedRow draws "|cell|cell|" with each cell fitted to its width.
func borderedRow(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i, cell := range cells {
		sb.WriteString(fitCell(cell, widths[i]))
		sb.WriteByte('|')
	}
	return sb.String()
}
