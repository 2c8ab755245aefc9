// errors.go: supplementary source-snippet rendering for diagnostics.
//
// LexError, ParseError, RuntimeError, and AssertionError (defined in
// lexer.go, parser.go, and interpreter.go respectively) each already
// produce a complete diagnostic line from their Error() method. Render
// adds one optional line of source context below that — the line the
// error occurred on, with a caret under the column when one is known. It
// is strictly additive: the CLI always prints err.Error() first; Render's
// output, if any, follows it.
package wisp

import (
	"fmt"
	"strings"
)

// Render returns a source snippet for err against src — the offending line,
// followed by a caret line when the column is known — or "" if err carries
// no usable line/column or src has no matching line.
func Render(err error, src string) string {
	var line, col int
	haveCol := false

	switch e := err.(type) {
	case *LexError:
		line, col, haveCol = e.Line, e.Col, true
	case *ParseError:
		line = e.Line
	case *RuntimeError:
		line = e.Line
	case *AssertionError:
		line = e.Line
	default:
		return ""
	}

	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%4d | %s", line, lineTxt)
	if haveCol {
		pad := col - 1
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(&b, "\n     | %s^", strings.Repeat(" ", pad))
	}
	return b.String()
}
