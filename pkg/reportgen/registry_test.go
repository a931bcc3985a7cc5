package reportgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySupports(t *testing.T) {
	r := NewRegistry()

	for _, format := range []Format{CSV, Excel, PDF, Thermal, DotMatrix} {
		assert.True(t, r.Supports(format), format)
	}
	assert.False(t, r.Supports("xml"))
	assert.False(t, r.Supports(""))

	assert.True(t, r.SupportsExport(CSV))
	assert.False(t, r.SupportsExport(Thermal))
}

func TestRegistryUnsupportedFormat(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	_, err := r.Export(ctx, "xml", productRows(), productColumns(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), `"xml"`)

	_, err = r.Print("csv", productRows(), productColumns(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = r.Generate(ctx, "xml", productRows(), productColumns(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestRegistryGenerateRouting(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	t.Run("DocumentFormat", func(t *testing.T) {
		res, err := r.Generate(ctx, CSV, productRows(), productColumns(), DefaultCSVOptions())
		require.NoError(t, err)
		require.NotNil(t, res.Export)
		assert.Nil(t, res.Print)
		assert.Equal(t, MIMETypeCSV+"; charset=utf-8", res.Export.MIMEType)
	})

	t.Run("PrinterFormat", func(t *testing.T) {
		res, err := r.Generate(ctx, Thermal, productRows(), productColumns(), DefaultThermalOptions())
		require.NoError(t, err)
		require.NotNil(t, res.Print)
		assert.Nil(t, res.Export)
		assert.Equal(t, 48, res.Print.WidthChars)
	})
}

func TestRegistryNilOptions(t *testing.T) {
	// adapters fall back to their defaults when no options are given
	r := NewRegistry()
	res, err := r.Export(context.Background(), CSV, productRows(), productColumns(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.RowCount)
}
