package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

// ReportTemplate is a persisted report definition: the column schema, the
// target format and its options, resolved by id.
type ReportTemplate struct {
	ID      string
	Name    string
	Format  reportgen.Format
	Columns []reportgen.Column
	Options reportgen.Options
}

// templateSpec is the YAML shape of a template file.
type templateSpec struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Format  string        `yaml:"format"`
	Columns []ColumnSpec  `yaml:"columns"`
	Options FormatOptions `yaml:"options"`
}

// ColumnSpec is the serialized shape of a column, shared by YAML templates
// and the JSON request bodies of the ad-hoc export endpoints.
type ColumnSpec struct {
	ID      string  `yaml:"id" json:"id"`
	Header  string  `yaml:"header" json:"header"`
	Key     string  `yaml:"key" json:"key"`
	Width   float64 `yaml:"width" json:"width"`
	Align   string  `yaml:"align" json:"align"`
	Format  string  `yaml:"format" json:"format"`
	Pattern string  `yaml:"pattern" json:"pattern"`
	Hidden  bool    `yaml:"hidden" json:"hidden"`
}

// FormatOptions is the union of per-format option keys; only the keys
// matching the target format are honored.
type FormatOptions struct {
	Delimiter     string `yaml:"delimiter" json:"delimiter"`
	IncludeHeader *bool  `yaml:"include_header" json:"include_header"`

	SheetName    string `yaml:"sheet_name" json:"sheet_name"`
	AutoFilter   bool   `yaml:"auto_filter" json:"auto_filter"`
	FreezeHeader bool   `yaml:"freeze_header" json:"freeze_header"`

	Title        string  `yaml:"title" json:"title"`
	Subtitle     string  `yaml:"subtitle" json:"subtitle"`
	Orientation  string  `yaml:"orientation" json:"orientation"`
	PageSize     string  `yaml:"page_size" json:"page_size"`
	Watermark    string  `yaml:"watermark" json:"watermark"`
	PageNumbers  *bool   `yaml:"page_numbers" json:"page_numbers"`
	Timestamp    *bool   `yaml:"timestamp" json:"timestamp"`
	MarginTop    float64 `yaml:"margin_top" json:"margin_top"`
	MarginRight  float64 `yaml:"margin_right" json:"margin_right"`
	MarginBottom float64 `yaml:"margin_bottom" json:"margin_bottom"`
	MarginLeft   float64 `yaml:"margin_left" json:"margin_left"`

	PaperWidthMM int    `yaml:"paper_width_mm" json:"paper_width_mm"`
	AutoCut      *bool  `yaml:"auto_cut" json:"auto_cut"`
	Encoding     string `yaml:"encoding" json:"encoding"`

	LineWidth int  `yaml:"line_width" json:"line_width"`
	FormFeed  bool `yaml:"form_feed" json:"form_feed"`
	Condensed bool `yaml:"condensed" json:"condensed"`
}

// TemplateService loads report templates from a directory of YAML files and
// serves them by id.
type TemplateService struct {
	mu        sync.RWMutex
	templates map[string]*ReportTemplate
}

// NewTemplateService scans dir for *.yaml / *.yml template files. A missing
// directory is not an error; the service just starts empty.
func NewTemplateService(dir string) (*TemplateService, error) {
	s := &TemplateService{templates: map[string]*ReportTemplate{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tpl, err := ParseTemplate(raw)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", entry.Name(), err)
		}
		s.templates[tpl.ID] = tpl
	}
	return s, nil
}

// ParseTemplate decodes one YAML template document.
func ParseTemplate(raw []byte) (*ReportTemplate, error) {
	var spec templateSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if spec.ID == "" {
		return nil, fmt.Errorf("template id is required")
	}

	format := reportgen.Format(strings.ToLower(spec.Format))
	return &ReportTemplate{
		ID:      spec.ID,
		Name:    spec.Name,
		Format:  format,
		Columns: BuildColumns(spec.Columns),
		Options: BuildOptions(format, spec.Options),
	}, nil
}

// GetTemplate returns the template with the given id, or nil.
func (s *TemplateService) GetTemplate(id string) *ReportTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates[id]
}

// ListTemplates returns all loaded templates.
func (s *TemplateService) ListTemplates() []*ReportTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ReportTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	return out
}

// BuildColumns converts serialized column specs into engine columns.
func BuildColumns(specs []ColumnSpec) []reportgen.Column {
	cols := make([]reportgen.Column, len(specs))
	for i, c := range specs {
		cols[i] = reportgen.Column{
			ID:      c.ID,
			Header:  c.Header,
			Key:     c.Key,
			Width:   c.Width,
			Align:   c.Align,
			Format:  reportgen.ValueFormat(c.Format),
			Pattern: c.Pattern,
			Hidden:  c.Hidden,
		}
	}
	return cols
}

// BuildOptions maps serialized options onto the format-tagged variant for
// the given format.
func BuildOptions(format reportgen.Format, o FormatOptions) reportgen.Options {
	switch format {
	case reportgen.CSV:
		opts := reportgen.DefaultCSVOptions()
		if o.Delimiter != "" {
			opts.Delimiter = o.Delimiter
		}
		if o.IncludeHeader != nil {
			opts.IncludeHeader = *o.IncludeHeader
		}
		if o.Encoding != "" {
			opts.Encoding = o.Encoding
		}
		return opts
	case reportgen.Excel:
		opts := reportgen.DefaultExcelOptions()
		if o.SheetName != "" {
			opts.SheetName = o.SheetName
		}
		opts.AutoFilter = o.AutoFilter
		opts.FreezeHeader = o.FreezeHeader
		return opts
	case reportgen.PDF:
		opts := reportgen.DefaultPDFOptions()
		opts.Title = o.Title
		opts.Subtitle = o.Subtitle
		if o.Orientation != "" {
			opts.Orientation = o.Orientation
		}
		if o.PageSize != "" {
			opts.PageSize = o.PageSize
		}
		opts.Watermark = o.Watermark
		if o.PageNumbers != nil {
			opts.PageNumbers = *o.PageNumbers
		}
		if o.Timestamp != nil {
			opts.Timestamp = *o.Timestamp
		}
		opts.MarginTop = o.MarginTop
		opts.MarginRight = o.MarginRight
		opts.MarginBottom = o.MarginBottom
		opts.MarginLeft = o.MarginLeft
		return opts
	case reportgen.Thermal:
		opts := reportgen.DefaultThermalOptions()
		if o.PaperWidthMM > 0 {
			opts.PaperWidthMM = o.PaperWidthMM
		}
		if o.AutoCut != nil {
			opts.AutoCut = *o.AutoCut
		}
		if o.Encoding != "" {
			opts.Encoding = o.Encoding
		}
		return opts
	case reportgen.DotMatrix:
		opts := reportgen.DefaultDotMatrixOptions()
		if o.LineWidth > 0 {
			opts.LineWidth = o.LineWidth
		}
		opts.FormFeed = o.FormFeed
		opts.Condensed = o.Condensed
		return opts
	default:
		return nil
	}
}
