package reportgen

// Format identifies one of the five supported output formats.
type Format string

const (
	CSV       Format = "csv"
	Excel     Format = "excel"
	PDF       Format = "pdf"
	Thermal   Format = "thermal"
	DotMatrix Format = "dotmatrix"
)

// String returns the format key.
func (f Format) String() string { return string(f) }

// Options is the closed, format-tagged option variant. Exactly the five
// per-format option structs implement it; the unexported method seals the
// set against outside implementations.
type Options interface {
	format() Format
}

// CSVOptions configures the CSV adapter.
type CSVOptions struct {
	// Delimiter joins cells on a line. Default ",".
	Delimiter string
	// IncludeHeader prepends the header row. Default on.
	IncludeHeader bool
	// Encoding is the declared output encoding, surfaced as the charset
	// parameter of the result MIME type. Declared only; cells are always
	// written as Go strings. Default "utf-8".
	Encoding string
}

func (CSVOptions) format() Format { return CSV }

// DefaultCSVOptions returns the documented defaults.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ",", IncludeHeader: true, Encoding: "utf-8"}
}

// ExcelOptions configures the Excel adapter.
type ExcelOptions struct {
	// SheetName names the single worksheet. Default "Report".
	SheetName string
	// AutoFilter adds a filter over the full header+data range.
	AutoFilter bool
	// FreezeHeader freezes the header row.
	FreezeHeader bool
}

func (ExcelOptions) format() Format { return Excel }

func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{SheetName: "Report"}
}

// PDFOptions configures the PDF adapter.
type PDFOptions struct {
	// Title is rendered centered and bold at 18pt when set.
	Title string
	// Subtitle is rendered centered at 12pt when set.
	Subtitle string
	// Timestamp adds a right-aligned "Generated: ..." line.
	Timestamp bool
	// Orientation is "portrait" (default) or "landscape".
	Orientation string
	// PageSize is one of A4 (default), Letter, Legal, A3.
	PageSize string
	// Margins in points. Zero means the 50pt default.
	MarginTop, MarginRight, MarginBottom, MarginLeft float64
	// PageNumbers enables the page footer. Default on.
	PageNumbers bool
	// Watermark is drawn once near the center of the final page.
	Watermark string
}

func (PDFOptions) format() Format { return PDF }

func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Orientation: "portrait",
		PageSize:    "A4",
		PageNumbers: true,
		Timestamp:   true,
	}
}

// ThermalOptions configures the ESC/POS adapter.
type ThermalOptions struct {
	// PaperWidthMM is the paper width: 58 gives 32 chars per line, 80 (and
	// anything else) gives 48. Default 80.
	PaperWidthMM int
	// AutoCut appends the partial-cut command. Default on.
	AutoCut bool
	// Encoding is the declared output encoding. Default "utf-8".
	Encoding string
}

func (ThermalOptions) format() Format { return Thermal }

func DefaultThermalOptions() ThermalOptions {
	return ThermalOptions{PaperWidthMM: 80, AutoCut: true, Encoding: "utf-8"}
}

// DotMatrixOptions configures the dot-matrix adapter.
type DotMatrixOptions struct {
	// LineWidth is the total line width in characters. Default 80.
	LineWidth int
	// FormFeed appends a form-feed character after the document.
	FormFeed bool
	// Condensed only switches the declared encoding name to ASCII; the
	// emitted characters are unchanged.
	Condensed bool
}

func (DotMatrixOptions) format() Format { return DotMatrix }

func DefaultDotMatrixOptions() DotMatrixOptions {
	return DotMatrixOptions{LineWidth: 80}
}
