package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/report_engine_sample/reportsvc/internal/logger"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/service"
	"github.com/locvowork/report_engine_sample/reportsvc/internal/service/serviceutils"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/chunkflow"
	"github.com/locvowork/report_engine_sample/reportsvc/pkg/reportgen"
)

// StreamCSVHandler handles GET /templates/:id/stream/csv?source=<name>. Rows
// go from the data source straight to the response, one page at a time.
func (h *ReportHandler) StreamCSVHandler(c echo.Context) error {
	tpl, fetch, ok := h.streamTarget(c)
	if !ok {
		return nil
	}

	opts := reportgen.DefaultCSVOptions()
	if o, ok := tpl.Options.(reportgen.CSVOptions); ok {
		opts = o
	}
	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}

	c.Response().Header().Set(echo.HeaderContentType, reportgen.MIMETypeCSV+"; charset="+opts.Encoding)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, tpl.ID))
	c.Response().WriteHeader(http.StatusOK)

	processor := chunkflow.New(fetch, chunkflow.WithBatchSize(h.batchSize))
	rows, err := chunkflow.StreamCSV(c.Request().Context(), c.Response(), processor, tpl.Columns, opts)
	if err != nil {
		// Headers are gone; all we can do is log and drop the connection.
		logger.ErrorLog(c.Request().Context(), fmt.Sprintf("csv stream aborted after %d rows: %v", rows, err))
		return err
	}
	return nil
}

// StreamExcelHandler handles GET /templates/:id/stream/excel?source=<name>.
// The workbook is built through the incremental stream writer, so memory
// stays bounded by the batch size.
func (h *ReportHandler) StreamExcelHandler(c echo.Context) error {
	tpl, fetch, ok := h.streamTarget(c)
	if !ok {
		return nil
	}

	opts := reportgen.DefaultExcelOptions()
	if o, ok := tpl.Options.(reportgen.ExcelOptions); ok {
		opts = o
	}

	c.Response().Header().Set(echo.HeaderContentType, reportgen.MIMETypeExcel)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, tpl.ID))
	c.Response().WriteHeader(http.StatusOK)

	processor := chunkflow.New(fetch, chunkflow.WithBatchSize(h.batchSize))
	rows, err := chunkflow.StreamExcel(c.Request().Context(), c.Response(), processor, tpl.Columns, opts)
	if err != nil {
		logger.ErrorLog(c.Request().Context(), fmt.Sprintf("excel stream aborted after %d rows: %v", rows, err))
		return err
	}
	return nil
}

// streamTarget resolves the template and source, writing the error
// response itself when either is missing.
func (h *ReportHandler) streamTarget(c echo.Context) (*service.ReportTemplate, chunkflow.Fetcher, bool) {
	tpl := h.templates.GetTemplate(c.Param("id"))
	if tpl == nil {
		serviceutils.ResponseError(c, http.StatusNotFound, "Unknown template", nil)
		return nil, nil, false
	}
	fetch, err := h.source(c.QueryParam("source"))
	if err != nil {
		serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), nil)
		return nil, nil, false
	}
	return tpl, fetch, true
}
