package chunkflow

import (
	"context"
	"io"

	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

// StreamCSV writes the processor's rows to w one line at a time, re-using
// the CSV adapter's quoting and per-cell formatting rules. It returns the
// number of data rows written.
func StreamCSV(ctx context.Context, w io.Writer, p *Processor, cols []reportgen.Column, opts reportgen.CSVOptions) (int, error) {
	if opts.Delimiter == "" {
		opts.Delimiter = ","
	}
	visible := reportgen.VisibleColumns(cols)

	if opts.IncludeHeader {
		if _, err := io.WriteString(w, reportgen.CSVHeaderLine(visible, opts.Delimiter)+"\n"); err != nil {
			return 0, err
		}
	}

	written := 0
	for batch, err := range p.Batches(ctx) {
		if err != nil {
			return written, err
		}
		for _, row := range batch {
			if _, err := io.WriteString(w, reportgen.CSVRowLine(row, visible, opts.Delimiter)+"\n"); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}
