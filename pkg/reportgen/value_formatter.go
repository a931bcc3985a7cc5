package reportgen

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatePattern     = "yyyy-MM-dd"
	defaultDateTimePattern = "yyyy-MM-dd HH:mm:ss"
	defaultCurrencyCode    = "USD"
)

// FormatValue renders a raw cell value as a string according to the column's
// format kind. It is total: unparseable input degrades to the plain
// stringified value, never an error. Nil resolves to the empty string.
func FormatValue(value interface{}, col Column) string {
	if value == nil {
		return ""
	}

	switch col.Format {
	case FormatNumber:
		return formatNumber(value)
	case FormatCurrency:
		return formatCurrency(value, col.Pattern)
	case FormatDate:
		return formatDate(value, col.Pattern, defaultDatePattern)
	case FormatDateTime:
		return formatDate(value, col.Pattern, defaultDateTimePattern)
	case FormatBoolean:
		if isTruthy(value) {
			return "Yes"
		}
		return "No"
	case FormatPercentage:
		f, ok := toFloat(value)
		if !ok {
			return stringify(value)
		}
		return strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
	default:
		return stringify(value)
	}
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatNumber groups the integer digits and keeps whatever fractional
// digits the raw value carries. Non-numeric input passes through unchanged.
func formatNumber(value interface{}) string {
	s := stringify(value)
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return s
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	out := sign + groupThousands(intPart)
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// formatCurrency renders a grouped two-decimal amount with the currency
// symbol prefixed. Negative sign precedes the symbol: -100 -> "-$100.00".
func formatCurrency(value interface{}, code string) string {
	f, ok := toFloat(value)
	if !ok {
		return stringify(value)
	}
	if code == "" {
		code = defaultCurrencyCode
	}
	symbol, ok := currencySymbols[strings.ToUpper(code)]
	if !ok {
		symbol = strings.ToUpper(code) + " "
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	fixed := strconv.FormatFloat(f, 'f', 2, 64)
	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]
	return sign + symbol + groupThousands(intPart) + "." + fracPart
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// parse layouts tried for string date input, most specific first.
var dateParseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC1123,
}

func formatDate(value interface{}, pattern, fallbackPattern string) string {
	if pattern == "" {
		pattern = fallbackPattern
	}
	layout := convertDatePattern(pattern)

	switch v := value.(type) {
	case time.Time:
		return v.Format(layout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(layout)
	case string:
		for _, parse := range dateParseLayouts {
			if t, err := time.Parse(parse, v); err == nil {
				return t.Format(layout)
			}
		}
		return v
	default:
		return stringify(value)
	}
}

var patternReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// convertDatePattern maps the template-style date pattern tokens
// (yyyy-MM-dd HH:mm:ss) onto a Go reference layout.
func convertDatePattern(pattern string) string {
	return patternReplacer.Replace(pattern)
}

// isTruthy mirrors loose truthiness: empty strings, zero numbers, false and
// nil are falsy, everything else (including the string "no") is truthy.
func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return !rv.IsNil()
	default:
		return true
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
			return float64(rv.Uint()), true
		case reflect.Float32, reflect.Float64:
			return rv.Float(), true
		}
		return 0, false
	}
}
