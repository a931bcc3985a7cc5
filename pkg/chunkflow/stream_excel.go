package chunkflow

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

// StreamExcel writes the processor's rows into a workbook through
// excelize's stream writer, batch by batch. Row data spills to the stream
// writer's temp file as it is appended, so memory stays bounded by the
// batch size rather than the dataset. Returns the number of data rows.
func StreamExcel(ctx context.Context, w io.Writer, p *Processor, cols []reportgen.Column, opts reportgen.ExcelOptions) (int, error) {
	if opts.SheetName == "" {
		opts.SheetName = "Report"
	}
	visible := reportgen.VisibleColumns(cols)

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", opts.SheetName)

	sw, err := f.NewStreamWriter(opts.SheetName)
	if err != nil {
		return 0, fmt.Errorf("create stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return 0, err
	}

	header := make([]interface{}, len(visible))
	for i, col := range visible {
		header[i] = excelize.Cell{Value: col.Header, StyleID: headerStyle}
		width := 15.0
		if col.Width > 0 {
			width = col.Width / 7
		}
		sw.SetColWidth(i+1, i+1, width)
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := sw.SetRow(cell, header); err != nil {
		return 0, err
	}

	rowNum := 2
	written := 0
	for batch, berr := range p.Batches(ctx) {
		if berr != nil {
			return written, berr
		}
		for _, row := range batch {
			values := make([]interface{}, len(visible))
			for i, col := range visible {
				values[i] = reportgen.FormatValue(reportgen.ResolveValue(row, col), col)
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := sw.SetRow(cell, values); err != nil {
				return written, err
			}
			rowNum++
			written++
		}
	}

	if err := sw.Flush(); err != nil {
		return written, err
	}
	if err := f.Write(w); err != nil {
		return written, err
	}
	return written, nil
}
