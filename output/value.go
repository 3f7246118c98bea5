package output

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vegasq/parquet2csv/table"
)

const (
	dateLayout    = "2006-01-02"
	secondsLayout = "2006-01-02 15:04:05"
	utcSuffix     = "+00:00"
)

var fractionLayouts = map[int]string{
	3: ".000",
	6: ".000000",
	9: ".000000000",
}

// columnStyle holds the rendering choices shared by every value of a column.
type columnStyle struct {
	schema table.ColumnSchema
	// digits of fractional seconds written for timestamps: 0, 3, 6 or 9
	fraction  int
	datesOnly bool
	// integer columns holding nulls are written as floats
	intsAsFloats bool
}

// newColumnStyle settles the rendering of col from all of its values, the
// way a dataframe picks one dtype and one timestamp precision per column.
func newColumnStyle(col *table.Column) columnStyle {
	s := columnStyle{schema: col.Schema()}
	if s.schema.Repeated {
		return s
	}

	switch s.schema.Kind {
	case table.KindInt, table.KindUint:
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				s.intsAsFloats = true
				break
			}
		}
	case table.KindTimestamp, table.KindInt96:
		seen := false
		s.datesOnly = !s.schema.AdjustedToUTC
		for i := 0; i < col.Len(); i++ {
			t, ok := col.Value(i).(time.Time)
			if !ok {
				continue
			}
			seen = true
			s.fraction = max(s.fraction, fractionDigits(t))
			if !isMidnight(t) {
				s.datesOnly = false
			}
		}
		if !seen {
			s.datesOnly = false
		}
	}
	return s
}

// format converts one cell of the column to its CSV text.
func (s columnStyle) format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []any:
		return formatList(val, s.schema)
	case table.Struct:
		return formatStruct(val, s.schema)
	case table.Map:
		return formatMap(val, s.schema)
	case int64:
		if s.intsAsFloats {
			return formatFloat(float64(val), 64)
		}
		return strconv.FormatInt(val, 10)
	case uint64:
		if s.intsAsFloats {
			return formatFloat(float64(val), 64)
		}
		return strconv.FormatUint(val, 10)
	case time.Time:
		return s.formatTime(val)
	default:
		return formatScalar(v, s.schema)
	}
}

func (s columnStyle) formatTime(t time.Time) string {
	t = t.UTC()
	if s.schema.Kind == table.KindDate || s.datesOnly {
		return t.Format(dateLayout)
	}
	out := t.Format(secondsLayout + fractionLayouts[s.fraction])
	if s.schema.AdjustedToUTC {
		out += utcSuffix
	}
	return out
}

// formatValue converts a single value to its CSV text without looking at
// the rest of its column.
//
// Nulls and NaN become empty fields, booleans are written as True/False,
// integral floats keep a trailing ".0", repeated values are written as a
// bracketed list, groups as a dict and maps as a list of pairs.
func formatValue(v any, cs table.ColumnSchema) string {
	s := columnStyle{schema: cs}
	if t, ok := v.(time.Time); ok {
		s.fraction = fractionDigits(t)
	}
	return s.format(v)
}

func formatScalar(v any, cs table.ColumnSchema) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case string:
		return val
	case []byte:
		if utf8.Valid(val) {
			return string(val)
		}
		return base64.StdEncoding.EncodeToString(val)
	case time.Time:
		return formatValue(val, cs)
	case time.Duration:
		return formatClock(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatFloat writes the shortest representation that round-trips at the
// given bit size. Exponent notation is used outside [1e-4, 1e16).
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// fractionDigits returns how many fractional second digits t needs.
func fractionDigits(t time.Time) int {
	ns := t.Nanosecond()
	switch {
	case ns%1000 != 0:
		return 9
	case ns%1000000 != 0:
		return 6
	case ns != 0:
		return 3
	default:
		return 0
	}
}

func isMidnight(t time.Time) bool {
	t = t.UTC()
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// formatClock renders a time of day as HH:MM:SS with a six digit fraction,
// or nine digits when the value carries sub-microsecond precision.
func formatClock(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	frac := d - s*time.Second

	clock := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	switch {
	case frac == 0:
		return clock
	case frac%time.Microsecond == 0:
		return fmt.Sprintf("%s.%06d", clock, frac/time.Microsecond)
	default:
		return fmt.Sprintf("%s.%09d", clock, int64(frac))
	}
}

func formatList(list []any, cs table.ColumnSchema) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, elem := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(reprValue(elem, cs))
	}
	sb.WriteByte(']')
	return sb.String()
}

// formatStruct writes a group as {'name': value, ...}.
func formatStruct(s table.Struct, cs table.ColumnSchema) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		var field table.ColumnSchema
		if i < len(cs.Fields) {
			field = cs.Fields[i]
		}
		sb.WriteString(quote(field.Name))
		sb.WriteString(": ")
		sb.WriteString(reprValue(v, field))
	}
	sb.WriteByte('}')
	return sb.String()
}

// formatMap writes a map as a list of (key, value) pairs.
func formatMap(m table.Map, cs table.ColumnSchema) string {
	var key, value table.ColumnSchema
	if len(cs.Fields) == 2 {
		key, value = cs.Fields[0], cs.Fields[1]
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		sb.WriteString(reprValue(e.Key, key))
		sb.WriteString(", ")
		sb.WriteString(reprValue(e.Value, value))
		sb.WriteByte(')')
	}
	sb.WriteByte(']')
	return sb.String()
}

// reprValue renders a value nested inside a list, group or map.
func reprValue(v any, cs table.ColumnSchema) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return quote(val)
	case float32:
		return nestedFloat(float64(val), 32)
	case float64:
		return nestedFloat(val, 64)
	default:
		return formatValue(v, cs)
	}
}

// nestedFloat differs from formatFloat only in spelling out NaN, which would
// otherwise vanish inside a container.
func nestedFloat(f float64, bitSize int) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return formatFloat(f, bitSize)
}

// quote wraps s in single quotes, or double quotes when s contains only
// single ones.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
