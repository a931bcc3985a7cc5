package reportgen

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExport(t *testing.T) {
	e := &ExcelExporter{}
	res, err := e.Export(context.Background(), productRows(), productColumns(), DefaultExcelOptions())
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, MIMETypeExcel, res.MIMEType)
	assert.Equal(t, 3, res.RowCount)
	assert.True(t, strings.HasSuffix(res.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Report"}, f.GetSheetList())

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Product", "Price"}, rows[0])
	assert.Equal(t, []string{"Tea Kettle", "$29.99"}, rows[1])
	assert.Equal(t, []string{"Espresso Machine", "$199.99"}, rows[3])
}

func TestExcelSheetNameAndHidden(t *testing.T) {
	cols := append(productColumns(), Column{ID: "internal", Header: "Internal", Hidden: true})
	opts := ExcelOptions{SheetName: "Catalog"}

	e := &ExcelExporter{}
	res, err := e.Export(context.Background(), productRows(), cols, opts)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Catalog"}, f.GetSheetList())

	rows, err := f.GetRows("Catalog")
	require.NoError(t, err)
	// hidden column contributes nothing, not even an empty header cell
	assert.Equal(t, []string{"Product", "Price"}, rows[0])
}

func TestExcelAutoFilterAndFreeze(t *testing.T) {
	opts := ExcelOptions{SheetName: "Report", AutoFilter: true, FreezeHeader: true}

	e := &ExcelExporter{}
	res, err := e.Export(context.Background(), productRows(), productColumns(), opts)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	defer f.Close()

	panes, err := f.GetPanes("Report")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestExcelEmptyRows(t *testing.T) {
	e := &ExcelExporter{}
	res, err := e.Export(context.Background(), nil, productColumns(), DefaultExcelOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, res.RowCount)

	f, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Product", "Price"}, rows[0])
}
