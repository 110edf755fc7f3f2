/* Package ucdparse provides a parser for Unicode Character Database files.

Package ucdparse provides a parser for Unicode Character Database files, the
format of which is defined in http://www.unicode.org/reports/tr44/. See
http://www.unicode.org/Public/UCD/latest/ucd/ for example files.

Every data line of a UCD file starts with a code point or a range of code
points, followed by semicolon-separated fields and an optional comment:

   3001..3003     ; W  # Po     [3] IDEOGRAPHIC COMMA..DITTO MARK

Lines starting with '#' and empty lines are skipped.
*/
package ucdparse

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Token subsumes the properties of a data line of UCD input.
type Token struct {
	LineNo   int      // line number within the input source, starting at 1
	runeFrom rune     // first/single rune
	runeTo   rune     // final rune of range (may be identical to runeFrom)
	Fields   []string // fields following the code point column, trimmed
	Comment  string   // rest-of-line comment of data item lines
}

func (token *Token) String() string {
	return fmt.Sprintf("token[line %d %#U..%#U %#v]", token.LineNo,
		token.runeFrom, token.runeTo, token.Fields)
}

// Field gets field #i (1…n) from the current data item. Field #1 is the
// first field after the code point column.
func (token *Token) Field(i int) string {
	if i > 0 && i <= len(token.Fields) {
		return token.Fields[i-1]
	}
	return ""
}

// Range gets the character range from the current data item.
func (token *Token) Range() (from, to rune) {
	return token.runeFrom, token.runeTo
}

// IsRange is true if the data item covers more than one code point.
func (token *Token) IsRange() bool {
	return token.runeTo > token.runeFrom
}

func splitComment(line string) (data, comment string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}
