package reportgen

import (
	"context"
	"fmt"
)

// Exporter turns rows plus columns into a complete document buffer.
type Exporter interface {
	Export(ctx context.Context, rows []interface{}, cols []Column, opts Options) (*ExportResult, error)
}

// Printer turns rows plus columns into a printer byte stream.
type Printer interface {
	Print(rows []interface{}, cols []Column, opts Options) (*PrintResult, error)
}

// Registry is the fixed mapping from format keys to adapter instances. The
// format set is closed at five members; this is not a plugin system. All
// adapters are stateless, so one registry serves concurrent callers.
type Registry struct {
	exporters map[Format]Exporter
	printers  map[Format]Printer
}

// NewRegistry builds the registry with one instance of each adapter.
func NewRegistry() *Registry {
	return &Registry{
		exporters: map[Format]Exporter{
			CSV:   &CSVExporter{},
			Excel: &ExcelExporter{},
			PDF:   &PDFExporter{},
		},
		printers: map[Format]Printer{
			Thermal:   &ThermalPrinter{},
			DotMatrix: &DotMatrixPrinter{},
		},
	}
}

// Supports reports whether the format key maps to any adapter.
func (r *Registry) Supports(format Format) bool {
	_, exp := r.exporters[format]
	_, prn := r.printers[format]
	return exp || prn
}

// SupportsExport reports whether the format maps to a document exporter.
func (r *Registry) SupportsExport(format Format) bool {
	_, ok := r.exporters[format]
	return ok
}

// Export renders a document format (csv, excel, pdf).
func (r *Registry) Export(ctx context.Context, format Format, rows []interface{}, cols []Column, opts Options) (*ExportResult, error) {
	exporter, ok := r.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return exporter.Export(ctx, rows, cols, opts)
}

// Print renders a physical-printer format (thermal, dotmatrix).
func (r *Registry) Print(format Format, rows []interface{}, cols []Column, opts Options) (*PrintResult, error) {
	printer, ok := r.printers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return printer.Print(rows, cols, opts)
}

// GenerateResult carries the outcome of Generate: exactly one of Export or
// Print is set depending on the format family.
type GenerateResult struct {
	Export *ExportResult
	Print  *PrintResult
}

// Generate is the single entry point: document formats route to the export
// registry, printer formats to the print registry.
func (r *Registry) Generate(ctx context.Context, format Format, rows []interface{}, cols []Column, opts Options) (*GenerateResult, error) {
	if _, ok := r.exporters[format]; ok {
		res, err := r.Export(ctx, format, rows, cols, opts)
		if err != nil {
			return nil, err
		}
		return &GenerateResult{Export: res}, nil
	}
	if _, ok := r.printers[format]; ok {
		res, err := r.Print(format, rows, cols, opts)
		if err != nil {
			return nil, err
		}
		return &GenerateResult{Print: res}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
