package reportgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnCharWidths(t *testing.T) {
	t.Run("WidthsFillTheLine", func(t *testing.T) {
		cols := []Column{
			{Header: "Product"},
			{Header: "Qty"},
			{Header: "Price"},
		}
		for _, lineWidth := range []int{32, 48, 80} {
			widths := columnCharWidths(cols, lineWidth, 4)
			sum := 0
			for _, w := range widths {
				assert.GreaterOrEqual(t, w, 4)
				sum += w
			}
			// one separator before, between and after the columns
			assert.Equal(t, lineWidth-(len(cols)+1), sum)
		}
	})

	t.Run("ExplicitWidthsBias", func(t *testing.T) {
		cols := []Column{
			{Header: "A", Width: 30},
			{Header: "B", Width: 10},
		}
		widths := columnCharWidths(cols, 48, 4)
		assert.Greater(t, widths[0], widths[1])
	})

	t.Run("NoColumns", func(t *testing.T) {
		assert.Nil(t, columnCharWidths(nil, 48, 4))
	})

	t.Run("ManyColumnsNarrowLine", func(t *testing.T) {
		// the minimum cannot be honored for 7 columns on a 40-char line;
		// widths must still be non-negative and fill the budget exactly
		cols := make([]Column, 7)
		for i := range cols {
			cols[i] = Column{Header: "Col"}
		}
		for _, lineWidth := range []int{40, 32, 16, 8} {
			widths := columnCharWidths(cols, lineWidth, 6)
			sum := 0
			for _, w := range widths {
				assert.GreaterOrEqual(t, w, 0)
				sum += w
			}
			want := lineWidth - (len(cols) + 1)
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, sum, "lineWidth %d", lineWidth)
		}
	})

	t.Run("ClampOvershootIsReconciled", func(t *testing.T) {
		// one dominant weight floors the rest to zero before the clamp;
		// the clamped overshoot must come back out of the wide column
		cols := []Column{
			{Header: "A", Width: 100},
			{Header: "B", Width: 1},
			{Header: "C", Width: 1},
			{Header: "D", Width: 1},
		}
		widths := columnCharWidths(cols, 30, 4)
		sum := 0
		for _, w := range widths {
			assert.GreaterOrEqual(t, w, 4)
			sum += w
		}
		assert.Equal(t, 30-(len(cols)+1), sum)
	})
}

func TestFitCell(t *testing.T) {
	// pads short text to the exact width
	assert.Equal(t, "abc   ", fitCell("abc", 6))
	// truncates with a single trailing ellipsis at the exact width
	assert.Equal(t, "abcde…", fitCell("abcdefghij", 6))
	assert.Equal(t, "", fitCell("anything", 0))
	assert.Equal(t, "abcdef", fitCell("abcdef", 6))
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  hi  ", centerText("hi", 6))
	assert.Equal(t, " hi  ", centerText("hi", 5))
	assert.Equal(t, "toolong", centerText("toolong", 3))
}

func TestRightText(t *testing.T) {
	assert.Equal(t, "    hi", rightText("hi", 6))
	assert.Equal(t, "toolong", rightText("toolong", 3))
}
