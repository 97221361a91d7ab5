package form

import (
	"strconv"
	"strings"
	"time"
)

// Values is the flat field set of a form. Raw input holds string,
// []string or bool values; validated output additionally holds int,
// float64 and time.Time for numeric and date fields.
type Values map[string]any

// Clone returns a shallow copy with list values duplicated.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if l, ok := val.([]string); ok {
			val = append([]string(nil), l...)
		}
		out[k] = val
	}
	return out
}

func (v Values) String(name string) string {
	return toString(v[name])
}

func toString(raw any) string {
	switch x := raw.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(DateLayout)
	case []string:
		return strings.Join(x, ", ")
	}
	return ""
}

func (v Values) Strings(name string) []string {
	switch x := v[name].(type) {
	case []string:
		return x
	case string:
		return splitList(x)
	}
	return nil
}

func (v Values) Bool(name string) bool {
	switch x := v[name].(type) {
	case bool:
		return x
	case string:
		b, _ := parseBool(x)
		return b
	}
	return false
}

func (v Values) Int(name string) int {
	switch x := v[name].(type) {
	case int:
		return x
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(x))
		return n
	}
	return 0
}

func (v Values) Float(name string) float64 {
	switch x := v[name].(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		f, _ := parseDecimal(x)
		return f
	}
	return 0
}

func (v Values) Time(name string) time.Time {
	switch x := v[name].(type) {
	case time.Time:
		return x
	case string:
		t, _ := time.Parse(DateLayout, strings.TrimSpace(x))
		return t
	}
	return time.Time{}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, true
	case "false", "no", "n", "0", "off", "":
		return false, true
	}
	return false, false
}

// parseDecimal accepts both "2.5" and the Norwegian "2,5".
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
