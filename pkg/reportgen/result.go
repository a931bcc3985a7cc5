package reportgen

import "time"

// MIME types for the document formats.
const (
	MIMETypeCSV   = "text/csv"
	MIMETypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypePDF   = "application/pdf"
)

// ExportResult is the outcome of a document export. Success is only ever
// set true: failures are returned as errors, never as a false flag.
type ExportResult struct {
	Success  bool
	Bytes    []byte
	MIMEType string
	Filename string
	ByteSize int
	RowCount int
	Duration time.Duration
}

// PrintResult is the outcome of a printer render.
type PrintResult struct {
	Success bool
	Bytes   []byte
	// Encoding is the declared character encoding of Bytes.
	Encoding string
	// WidthChars is the printer line width in characters.
	WidthChars int
}

func newExportResult(bytes []byte, mimeType, filename string, rows int, started time.Time) *ExportResult {
	return &ExportResult{
		Success:  true,
		Bytes:    bytes,
		MIMEType: mimeType,
		Filename: filename,
		ByteSize: len(bytes),
		RowCount: rows,
		Duration: time.Since(started),
	}
}
