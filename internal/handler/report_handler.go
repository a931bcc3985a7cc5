package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/report_engine_sample/reportsvc/internal/service"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/service/serviceutils"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

// ReportHandler exposes the render engine over HTTP: ad-hoc exports and
// prints, template-driven exports, and async jobs.
type ReportHandler struct {
	registry  *reportgen.Registry
	templates *service.TemplateService
	jobs      *service.JobService
	sources   map[string]chunkflow.Fetcher
	batchSize int
}

func NewReportHandler(registry *reportgen.Registry, templates *service.TemplateService, jobs *service.JobService, sources map[string]chunkflow.Fetcher, batchSize int) *ReportHandler {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ReportHandler{
		registry:  registry,
		templates: templates,
		jobs:      jobs,
		sources:   sources,
		batchSize: batchSize,
	}
}

// renderRequest is the JSON body of the ad-hoc export/print endpoints.
type renderRequest struct {
	Rows    []map[string]interface{} `json:"rows"`
	Columns []service.ColumnSpec     `json:"columns"`
	Options service.FormatOptions    `json:"options"`
}

func (r *renderRequest) rows() []interface{} {
	out := make([]interface{}, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row
	}
	return out
}

// ExportHandler handles POST /export/:format with rows, columns and options
// in the body and responds with the generated file.
func (h *ReportHandler) ExportHandler(c echo.Context) error {
	format := reportgen.Format(c.Param("format"))

	var req renderRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	opts := service.BuildOptions(format, req.Options)
	res, err := h.registry.Export(c.Request().Context(), format, req.rows(), service.BuildColumns(req.Columns), opts)
	if err != nil {
		return exportError(c, err)
	}
	return writeExport(c, res)
}

// PrintHandler handles POST /print/:format and responds with the raw
// printer byte stream.
func (h *ReportHandler) PrintHandler(c echo.Context) error {
	format := reportgen.Format(c.Param("format"))

	var req renderRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	opts := service.BuildOptions(format, req.Options)
	res, err := h.registry.Print(format, req.rows(), service.BuildColumns(req.Columns), opts)
	if err != nil {
		return exportError(c, err)
	}

	c.Response().Header().Set("X-Printer-Encoding", res.Encoding)
	c.Response().Header().Set("X-Printer-Width", strconv.Itoa(res.WidthChars))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, res.Bytes)
}

// ListTemplatesHandler handles GET /templates.
func (h *ReportHandler) ListTemplatesHandler(c echo.Context) error {
	type entry struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Format string `json:"format"`
	}
	templates := h.templates.ListTemplates()
	out := make([]entry, 0, len(templates))
	for _, t := range templates {
		out = append(out, entry{ID: t.ID, Name: t.Name, Format: t.Format.String()})
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "templates", out)
}

// TemplateExportHandler handles GET /templates/:id/export?source=<name>.
// The template supplies columns, format and options; the named data source
// supplies the rows.
func (h *ReportHandler) TemplateExportHandler(c echo.Context) error {
	tpl := h.templates.GetTemplate(c.Param("id"))
	if tpl == nil {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Unknown template", nil)
	}
	fetch, err := h.source(c.QueryParam("source"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), nil)
	}

	ctx := c.Request().Context()
	processor := chunkflow.New(fetch, chunkflow.WithBatchSize(h.batchSize))
	rows, err := processor.CollectAll(ctx)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadGateway, "Data source failed", err)
	}

	res, err := h.registry.Generate(ctx, tpl.Format, rows, tpl.Columns, tpl.Options)
	if err != nil {
		return exportError(c, err)
	}
	if res.Print != nil {
		c.Response().Header().Set("X-Printer-Encoding", res.Print.Encoding)
		c.Response().Header().Set("X-Printer-Width", strconv.Itoa(res.Print.WidthChars))
		return c.Blob(http.StatusOK, echo.MIMEOctetStream, res.Print.Bytes)
	}
	return writeExport(c, res.Export)
}

// SubmitJobHandler handles POST /jobs/:format: the rows from the body (or a
// named source) are rendered asynchronously.
func (h *ReportHandler) SubmitJobHandler(c echo.Context) error {
	format := reportgen.Format(c.Param("format"))

	var req renderRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	var fetch chunkflow.Fetcher
	if name := c.QueryParam("source"); name != "" {
		var err error
		if fetch, err = h.source(name); err != nil {
			return serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), nil)
		}
	} else {
		fetch = chunkflow.SliceFetcher(req.rows())
	}

	opts := service.BuildOptions(format, req.Options)
	job, err := h.jobs.Submit(c.Request().Context(), format, service.BuildColumns(req.Columns), opts, fetch, h.batchSize)
	if err != nil {
		return exportError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusAccepted, "job submitted", map[string]string{"id": job.ID})
}

// JobStatusHandler handles GET /jobs/:id.
func (h *ReportHandler) JobStatusHandler(c echo.Context) error {
	job := h.jobs.Get(c.Param("id"))
	if job == nil {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Unknown job", nil)
	}
	out := map[string]interface{}{
		"id":        job.ID,
		"status":    job.Status,
		"processed": job.Processed,
		"total":     job.Total,
	}
	if job.Error != "" {
		out["error"] = job.Error
	}
	if job.Result != nil {
		out["filename"] = job.Result.Filename
		out["byte_size"] = job.Result.ByteSize
		out["row_count"] = job.Result.RowCount
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "job", out)
}

// JobResultHandler handles GET /jobs/:id/result, returning the rendered
// document of a completed job.
func (h *ReportHandler) JobResultHandler(c echo.Context) error {
	job := h.jobs.Get(c.Param("id"))
	if job == nil {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Unknown job", nil)
	}
	if job.Status != service.JobCompleted || job.Result == nil {
		return serviceutils.ResponseError(c, http.StatusConflict, fmt.Sprintf("Job is %s", job.Status), nil)
	}
	return writeExport(c, job.Result)
}

func (h *ReportHandler) source(name string) (chunkflow.Fetcher, error) {
	if name == "" {
		return nil, fmt.Errorf("query parameter source is required")
	}
	fetch, ok := h.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown data source %q", name)
	}
	return fetch, nil
}

func writeExport(c echo.Context, res *reportgen.ExportResult) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, res.Filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(res.ByteSize))
	return c.Blob(http.StatusOK, res.MIMEType, res.Bytes)
}

func exportError(c echo.Context, err error) error {
	if errors.Is(err, reportgen.ErrUnsupportedFormat) {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Unsupported format", err)
	}
	return serviceutils.ResponseError(c, http.StatusInternalServerError, "Render failed", err)
}
