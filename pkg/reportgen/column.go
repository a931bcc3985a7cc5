package reportgen

import (
	"reflect"
	"strings"
)

// ValueFormat selects how a cell value is rendered.
type ValueFormat string

const (
	FormatText       ValueFormat = "text"
	FormatNumber     ValueFormat = "number"
	FormatCurrency   ValueFormat = "currency"
	FormatDate       ValueFormat = "date"
	FormatDateTime   ValueFormat = "datetime"
	FormatBoolean    ValueFormat = "boolean"
	FormatPercentage ValueFormat = "percentage"
)

// Alignment values accepted by Column.Align.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Column describes one output field of a report, independent of any single
// row. Columns are constructed fresh per render call and never mutated by
// the adapters. ID uniqueness is not enforced.
type Column struct {
	// ID identifies the column and doubles as the fallback lookup key.
	ID string
	// Header is the text rendered in the header row.
	Header string
	// Key is an optional dot-path into the row ("customer.address.city").
	Key string
	// Accessor is an optional derivation function. It takes priority over
	// the ID fallback but not over an explicit Key.
	Accessor func(row interface{}) interface{}
	// Width is the requested display width in pixels. Zero means default.
	Width float64
	// Align is one of left/center/right. Empty means the adapter default.
	Align string
	// Format selects the value formatter. Empty means text.
	Format ValueFormat
	// Pattern overrides the format: a date/time pattern for date kinds, a
	// currency code for currency.
	Pattern string
	// Hidden columns never contribute to output.
	Hidden bool
}

// VisibleColumns filters out hidden columns. The returned slice is freshly
// allocated so adapters can index it without touching the caller's slice.
func VisibleColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

// ResolveValue extracts the raw cell value for a column from an opaque row.
// Resolution order: explicit Key path, then the Accessor function, then the
// column ID as a direct key. A missing value resolves to nil.
func ResolveValue(row interface{}, col Column) interface{} {
	if col.Key != "" {
		return lookupPath(row, col.Key)
	}
	if col.Accessor != nil {
		return col.Accessor(row)
	}
	return lookupPath(row, col.ID)
}

// lookupPath walks a dot-separated path through maps and structs. Any nil or
// missing segment short-circuits to nil.
func lookupPath(row interface{}, path string) interface{} {
	current := row
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}
		current = lookupField(current, segment)
	}
	return current
}

func lookupField(item interface{}, field string) interface{} {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		mv := v.MapIndex(reflect.ValueOf(field))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		f := v.FieldByName(field)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	default:
		return nil
	}
}
