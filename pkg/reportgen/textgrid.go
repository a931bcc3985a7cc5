package reportgen

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const defaultHeaderWeight = 8

// columnCharWidths splits a character-cell line proportionally across the
// visible columns. Weight is the explicit column width when set, otherwise
// max(header length, 8). One separator character sits before, between and
// after the columns, so the widths plus len(cols)+1 always equal lineWidth.
// Each column gets at least minWidth when the budget allows it; with too
// many columns for the line the minimum is abandoned and the budget splits
// evenly instead. Widths are never negative.
func columnCharWidths(cols []Column, lineWidth, minWidth int) []int {
	if len(cols) == 0 {
		return nil
	}

	available := lineWidth - (len(cols) + 1)
	if available < 0 {
		available = 0
	}

	// The minimum cannot be honored for every column; an even split is
	// the best that can be done.
	if available < len(cols)*minWidth {
		widths := make([]int, len(cols))
		base := available / len(cols)
		for i := range widths {
			widths[i] = base
		}
		widths[len(widths)-1] += available - base*len(cols)
		return widths
	}

	weights := make([]int, len(cols))
	total := 0
	for i, col := range cols {
		w := int(col.Width)
		if w <= 0 {
			w = runewidth.StringWidth(col.Header)
			if w < defaultHeaderWeight {
				w = defaultHeaderWeight
			}
		}
		weights[i] = w
		total += w
	}

	widths := make([]int, len(cols))
	sum := 0
	for i, w := range weights {
		cw := w * available / total
		if cw < minWidth {
			cw = minWidth
		}
		widths[i] = cw
		sum += cw
	}

	// Flooring leaves a shortfall, clamping can overshoot. The shortfall
	// goes to the last column; the overshoot is clawed back round-robin
	// from columns still above the minimum.
	if sum < available {
		widths[len(widths)-1] += available - sum
		sum = available
	}
	for i := 0; sum > available; i = (i + 1) % len(widths) {
		if widths[i] > minWidth {
			widths[i]--
			sum--
		}
	}
	return widths
}

// fitCell pads the text right to exactly width characters, truncating with
// a single trailing ellipsis when it does not fit.
func fitCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}

// centerText centers the text within width, padding with spaces.
func centerText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}

// rightText right-aligns the text within width.
func rightText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", width-w) + text
}
