package reportgen

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// ESC/POS command vocabulary. These byte sequences are the wire protocol of
// the printer and must not change.
var (
	escInit        = []byte{0x1B, 0x40}
	escBoldOn      = []byte{0x1B, 0x45, 0x01}
	escBoldOff     = []byte{0x1B, 0x45, 0x00}
	escAlignLeft   = []byte{0x1B, 0x61, 0x00}
	escAlignCenter = []byte{0x1B, 0x61, 0x01}
	escAlignRight  = []byte{0x1B, 0x61, 0x02}
	escFeedLine    = []byte{0x0A}
	escCutPartial  = []byte{0x1D, 0x56, 0x01}
)

func escFeedLines(n byte) []byte { return []byte{0x1B, 0x64, n} }

const (
	thermalMinColWidth = 4
	charsPerLine58mm   = 32
	charsPerLine80mm   = 48
	thermalTimestampf  = "Jan 2, 2006 3:04 PM"
)

// ThermalPrinter renders rows as an ESC/POS byte stream for thermal
// receipt printers. Pure and safe for concurrent use.
type ThermalPrinter struct{}

// Print builds the full receipt document: INIT, a framed title block, the
// bold header row, one line per record, the row total and the trailing
// feed/cut sequence.
func (p *ThermalPrinter) Print(rows []interface{}, cols []Column, opts Options) (*PrintResult, error) {
	o := DefaultThermalOptions()
	if v, ok := opts.(ThermalOptions); ok {
		o = v
	}
	if o.Encoding == "" {
		o.Encoding = "utf-8"
	}

	charsPerLine := charsPerLine80mm
	if o.PaperWidthMM == 58 {
		charsPerLine = charsPerLine58mm
	}

	visible := VisibleColumns(cols)
	widths := columnCharWidths(visible, charsPerLine, thermalMinColWidth)

	var buf bytes.Buffer
	buf.Write(escInit)

	doubleRule := strings.Repeat("=", charsPerLine)
	singleRule := strings.Repeat("-", charsPerLine)

	writeLine(&buf, escAlignLeft, doubleRule)
	buf.Write(escAlignCenter)
	buf.Write(escBoldOn)
	buf.WriteString("REPORT")
	buf.Write(escFeedLine)
	buf.Write(escBoldOff)
	buf.WriteString(time.Now().Format(thermalTimestampf))
	buf.Write(escFeedLine)
	writeLine(&buf, escAlignLeft, doubleRule)

	buf.Write(escBoldOn)
	writeLine(&buf, escAlignLeft, gridLine(headerCells(visible), widths))
	buf.Write(escBoldOff)
	writeLine(&buf, escAlignLeft, singleRule)

	for _, row := range rows {
		writeLine(&buf, escAlignLeft, gridLine(rowCells(row, visible), widths))
	}

	writeLine(&buf, escAlignLeft, doubleRule)
	writeLine(&buf, escAlignRight, fmt.Sprintf("Total: %d rows", len(rows)))
	writeLine(&buf, escAlignLeft, doubleRule)

	buf.Write(escFeedLines(3))
	if o.AutoCut {
		buf.Write(escCutPartial)
	}

	return &PrintResult{
		Success:    true,
		Bytes:      buf.Bytes(),
		Encoding:   o.Encoding,
		WidthChars: charsPerLine,
	}, nil
}

func writeLine(buf *bytes.Buffer, align []byte, text string) {
	buf.Write(align)
	buf.WriteString(text)
	buf.Write(escFeedLine)
}

// gridLine joins fitted cells with single spaces, framed by a leading and a
// trailing space so the separators plus cell widths fill the whole line.
func gridLine(cells []string, widths []int) string {
	fitted := make([]string, len(cells))
	for i, cell := range cells {
		fitted[i] = fitCell(cell, widths[i])
	}
	return " " + strings.Join(fitted, " ") + " "
}

func headerCells(visible []Column) []string {
	cells := make([]string, len(visible))
	for i, col := range visible {
		cells[i] = col.Header
	}
	return cells
}

func rowCells(row interface{}, visible []Column) []string {
	cells := make([]string, len(visible))
	for i, col := range visible {
		cells[i] = FormatValue(ResolveValue(row, col), col)
	}
	return cells
}
