package vm

import (
	"strconv"
	"strings"
)

// Render converts a value to its display string per §4.5: integers and
// big_integers in base 10, floats with default decimal rendering, strings
// copied as-is, booleans as true/false, arrays bracketed and
// comma-separated (recursing into elements), and null as the literal
// "null".
func Render(v Value) string {
	switch v.Tag {
	case TagInt:
		return strconv.FormatInt(v.I, 10)
	case TagBigInt:
		return v.Big.String()
	case TagFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	case TagString:
		if v.Str == nil {
			return ""
		}
		return string(v.Str.Bytes)
	case TagBool:
		if v.Bl {
			return "true"
		}
		return "false"
	case TagArray:
		if v.Arr == nil {
			return "[]"
		}
		parts := make([]string, len(v.Arr.Elems))
		for i, elem := range v.Arr.Elems {
			parts[i] = Render(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TagNull:
		return "null"
	default:
		return ""
	}
}
