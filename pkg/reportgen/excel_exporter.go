package reportgen

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	headerFillColor     = "E0E0E0" // light gray
	defaultColCharWidth = 15.0
	pixelsPerWidthUnit  = 7.0 // px -> character-width heuristic
)

// ExcelExporter renders rows into a single-worksheet workbook. Every data
// cell holds the already-formatted string from the value formatter, not a
// native numeric or date cell. That loses native sort/filter semantics and
// is the documented current behavior.
type ExcelExporter struct{}

// Export builds the workbook and returns the full buffer. No partial output
// is ever exposed; the non-streaming API is call, await, receive.
func (e *ExcelExporter) Export(ctx context.Context, rows []interface{}, cols []Column, opts Options) (*ExportResult, error) {
	started := time.Now()
	o := DefaultExcelOptions()
	if v, ok := opts.(ExcelOptions); ok {
		o = v
	}
	if o.SheetName == "" {
		o.SheetName = "Report"
	}

	visible := VisibleColumns(cols)

	f := excelize.NewFile()
	defer f.Close()
	sheet := o.SheetName
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
	}

	for i, col := range visible {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		width := defaultColCharWidth
		if col.Width > 0 {
			width = col.Width / pixelsPerWidthUnit
		}
		f.SetColWidth(sheet, colName, colName, width)

		// Column style first: SetColStyle overwrites cell styles, so the
		// header cell gets its own style afterwards.
		if col.Align != "" {
			alignStyle, aerr := f.NewStyle(&excelize.Style{
				Alignment: &excelize.Alignment{Horizontal: col.Align},
			})
			if aerr == nil {
				f.SetColStyle(sheet, colName, alignStyle)
			}
		}

		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col.Header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for r, row := range rows {
		for c, col := range visible {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, FormatValue(ResolveValue(row, col), col))
		}
	}

	if o.AutoFilter && len(visible) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(visible), len(rows)+1)
		if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
		}
	}

	if o.FreezeHeader {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
	}

	filename := fmt.Sprintf("export-%d.xlsx", time.Now().UnixMilli())
	return newExportResult(buf.Bytes(), MIMETypeExcel, filename, len(rows), started), nil
}
