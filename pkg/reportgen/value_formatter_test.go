package reportgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatValueNumber(t *testing.T) {
	col := Column{Format: FormatNumber}

	assert.Equal(t, "1,234,567", FormatValue(1234567, col))
	assert.Equal(t, "-1,234.5", FormatValue(-1234.5, col))
	assert.Equal(t, "999", FormatValue(999, col))
	assert.Equal(t, "1,000", FormatValue(1000, col))
	// fractional digits carry through untouched
	assert.Equal(t, "29.99", FormatValue(29.99, col))
	// non-numeric input degrades to the raw string
	assert.Equal(t, "n/a", FormatValue("n/a", col))
}

func TestFormatValueCurrency(t *testing.T) {
	col := Column{Format: FormatCurrency}

	assert.Equal(t, "$29.99", FormatValue(29.99, col))
	assert.Equal(t, "$1,234.50", FormatValue(1234.5, col))
	// sign precedes the symbol
	assert.Equal(t, "-$100.00", FormatValue(-100, col))

	col.Pattern = "EUR"
	assert.Equal(t, "€50.00", FormatValue(50, col))
	col.Pattern = "JPY"
	assert.Equal(t, "¥1,000.00", FormatValue(1000, col))
	// unknown codes fall back to "CODE " prefix
	col.Pattern = "CHF"
	assert.Equal(t, "CHF 12.00", FormatValue(12, col))
}

func TestFormatValueDate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

	t.Run("TimeValue", func(t *testing.T) {
		assert.Equal(t, "2024-03-15", FormatValue(ts, Column{Format: FormatDate}))
		assert.Equal(t, "2024-03-15 14:30:45", FormatValue(ts, Column{Format: FormatDateTime}))
	})

	t.Run("CustomPattern", func(t *testing.T) {
		col := Column{Format: FormatDate, Pattern: "dd/MM/yyyy"}
		assert.Equal(t, "15/03/2024", FormatValue(ts, col))
	})

	t.Run("StringInput", func(t *testing.T) {
		col := Column{Format: FormatDate}
		assert.Equal(t, "2024-03-15", FormatValue("2024-03-15T14:30:45Z", col))
		// unparseable strings pass through
		assert.Equal(t, "not a date", FormatValue("not a date", col))
	})

	t.Run("NilPointer", func(t *testing.T) {
		var p *time.Time
		assert.Equal(t, "", FormatValue(p, Column{Format: FormatDate}))
	})
}

func TestFormatValueBoolean(t *testing.T) {
	col := Column{Format: FormatBoolean}

	assert.Equal(t, "Yes", FormatValue(true, col))
	assert.Equal(t, "No", FormatValue(false, col))
	assert.Equal(t, "No", FormatValue(0, col))
	assert.Equal(t, "Yes", FormatValue(1, col))
	assert.Equal(t, "No", FormatValue("", col))
	// non-empty strings are truthy, including "no"
	assert.Equal(t, "Yes", FormatValue("no", col))
	assert.Equal(t, "", FormatValue(nil, col))
}

func TestFormatValuePercentage(t *testing.T) {
	col := Column{Format: FormatPercentage}

	assert.Equal(t, "12.50%", FormatValue(0.125, col))
	assert.Equal(t, "100.00%", FormatValue(1, col))
	assert.Equal(t, "0.00%", FormatValue(0, col))
	assert.Equal(t, "maybe", FormatValue("maybe", col))
}

func TestFormatValueText(t *testing.T) {
	col := Column{}

	assert.Equal(t, "", FormatValue(nil, col))
	assert.Equal(t, "hello", FormatValue("hello", col))
	assert.Equal(t, "42", FormatValue(42, col))
	assert.Equal(t, "3.14", FormatValue(3.14, col))
}
