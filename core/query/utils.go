package query

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/asaidimu/go-lister/core/schema"
)

// ToFloat64 converts a value of various numeric types to a float64. Numeric
// strings are parsed. It returns the converted value and whether the
// conversion succeeded.
func ToFloat64(v any) (float64, bool) {
	if n, ok := schema.Number(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

// ToText renders a field value as the text searched and compared by the engine.
func ToText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// Equal compares a record value with a filter value. Numbers compare by value
// regardless of their Go type.
func Equal(got any, want FilterValue) bool {
	if gn, ok := schema.Number(got); ok {
		wn, ok := schema.Number(want)
		return ok && gn == wn
	}
	switch g := got.(type) {
	case string:
		w, ok := want.(string)
		return ok && g == w
	case bool:
		w, ok := want.(bool)
		return ok && g == w
	case nil:
		return want == nil
	}
	return reflect.DeepEqual(got, want)
}
