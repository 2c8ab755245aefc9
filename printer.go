// printer.go: value stringification, including explicit NaN/Infinity
// rendering.
package wisp

import (
	"math"
	"strconv"
	"strings"
)

// Stringify renders v the way `print` and the REPL's last-value echo do.
func Stringify(v Value) string {
	switch v.Tag {
	case VNone:
		return "None"
	case VBool:
		if v.AsBool() {
			return "True"
		}
		return "False"
	case VInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case VFloat:
		return stringifyFloat(v.AsFloat())
	case VString:
		return v.AsString()
	case VFunction:
		return "<function " + v.AsFunction().Name + ">"
	default:
		return ""
	}
}

func stringifyFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
