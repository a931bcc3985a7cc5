package reportgen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []Column {
	return []Column{
		{ID: "name", Header: "Product"},
		{ID: "price", Header: "Price", Format: FormatCurrency},
	}
}

func productRows() []interface{} {
	return []interface{}{
		map[string]interface{}{"name": "Tea Kettle", "price": 29.99},
		map[string]interface{}{"name": "Toaster", "price": 49.99},
		map[string]interface{}{"name": "Espresso Machine", "price": 199.99},
	}
}

func TestCSVExport(t *testing.T) {
	e := &CSVExporter{}
	res, err := e.Export(context.Background(), productRows(), productColumns(), DefaultCSVOptions())
	require.NoError(t, err)
	require.True(t, res.Success)

	lines := strings.Split(string(res.Bytes), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"Product","Price"`, lines[0])
	assert.Equal(t, `"Tea Kettle","$29.99"`, lines[1])
	assert.Equal(t, `"Toaster","$49.99"`, lines[2])
	assert.Equal(t, `"Espresso Machine","$199.99"`, lines[3])

	// no trailing newline
	assert.False(t, strings.HasSuffix(string(res.Bytes), "\n"))

	assert.Equal(t, MIMETypeCSV+"; charset=utf-8", res.MIMEType)
	assert.Equal(t, 3, res.RowCount)
	assert.Equal(t, len(res.Bytes), res.ByteSize)
	assert.True(t, strings.HasPrefix(res.Filename, "export-"))
	assert.True(t, strings.HasSuffix(res.Filename, ".csv"))
}

func TestCSVQuoting(t *testing.T) {
	cols := []Column{{ID: "note", Header: "Note"}}
	rows := []interface{}{
		map[string]interface{}{"note": `said "hi", left`},
		map[string]interface{}{},
	}

	e := &CSVExporter{}
	res, err := e.Export(context.Background(), rows, cols, DefaultCSVOptions())
	require.NoError(t, err)

	lines := strings.Split(string(res.Bytes), "\n")
	assert.Equal(t, `"said ""hi"", left"`, lines[1])
	// missing values still produce a quoted empty cell
	assert.Equal(t, `""`, lines[2])
}

func TestCSVOptions(t *testing.T) {
	e := &CSVExporter{}

	t.Run("NoHeader", func(t *testing.T) {
		res, err := e.Export(context.Background(), productRows(), productColumns(), CSVOptions{Delimiter: ","})
		require.NoError(t, err)
		lines := strings.Split(string(res.Bytes), "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, `"Tea Kettle","$29.99"`, lines[0])
	})

	t.Run("SemicolonDelimiter", func(t *testing.T) {
		res, err := e.Export(context.Background(), productRows(), productColumns(), CSVOptions{Delimiter: ";", IncludeHeader: true})
		require.NoError(t, err)
		lines := strings.Split(string(res.Bytes), "\n")
		assert.Equal(t, `"Product";"Price"`, lines[0])
	})

	t.Run("HiddenColumn", func(t *testing.T) {
		cols := productColumns()
		cols[1].Hidden = true
		res, err := e.Export(context.Background(), productRows(), cols, DefaultCSVOptions())
		require.NoError(t, err)
		lines := strings.Split(string(res.Bytes), "\n")
		assert.Equal(t, `"Product"`, lines[0])
		assert.Equal(t, `"Tea Kettle"`, lines[1])
	})

	t.Run("DeclaredEncoding", func(t *testing.T) {
		opts := DefaultCSVOptions()
		opts.Encoding = "windows-1252"
		res, err := e.Export(context.Background(), productRows(), productColumns(), opts)
		require.NoError(t, err)
		// declared only; the bytes are unchanged
		assert.Equal(t, MIMETypeCSV+"; charset=windows-1252", res.MIMEType)
		assert.Contains(t, string(res.Bytes), `"$29.99"`)
	})

	t.Run("EmptyRows", func(t *testing.T) {
		res, err := e.Export(context.Background(), nil, productColumns(), DefaultCSVOptions())
		require.NoError(t, err)
		assert.Equal(t, `"Product","Price"`, string(res.Bytes))
		assert.Equal(t, 0, res.RowCount)
	})
}
