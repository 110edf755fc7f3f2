package uax11

import (
	"sync"
	"unicode"

	"github.com/emirpasic/gods/trees/redblacktree"
	"golang.org/x/text/unicode/rangetable"
)

// Class is the display width class of a code point, in terminal columns.
type Class int8

// Width classes. The numeric value of a class is its width in columns.
const (
	Zero   Class = 0 // control characters and zero-width marks
	Narrow Class = 1 // ordinary printable characters
	Wide   Class = 2 // East Asian Wide and Fullwidth characters
)

// ambiguous is the internal class for category A. It is resolved to Narrow
// or Wide by a Context.
const ambiguous Class = 3

// span is a range of code points sharing a width class. Spans are keyed by
// their low bound in the width table.
type span struct {
	lo, hi rune
	class  Class
}

// Characters which take up no space in addition to general categories
// Mn, Me, Cf and Cc: zero width space, Hangul medial vowels and final
// consonants (which combine with a preceding initial consonant).
var _Zero_Extra = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x1160, 0x11ff, 1},
		{0x200b, 0x200b, 1},
		{0xd7b0, 0xd7ff, 1},
	},
}

var zeroWidth = rangetable.Merge(unicode.Mn, unicode.Me, unicode.Cf, unicode.Cc, _Zero_Extra)

// Width table construction scans code points up to here individually.
// Planes 4 to 13 are unassigned, plane 14 holds tags and variation selectors.
const (
	scanLimit    = 0x3ffff
	plane14Lo    = 0xe0000
	plane14Hi    = 0xe0fff
	pua15Lo      = 0xf0000 // planes 15 and 16: private use, category A
	pua15Hi      = 0xffffd
	pua16Lo      = 0x100000
	pua16Hi      = 0x10fffd
	softHyphen   = 0x00ad
	surrogateLo  = 0xd800
	surrogateHi  = 0xdfff
	asciiLimit   = 0x80
)

var asciiClasses [asciiLimit]Class

var widthTable struct {
	once sync.Once
	tree *redblacktree.Tree // lo -> span, non-narrow spans only
}

func init() {
	for i := range asciiClasses {
		if i < 0x20 || i == 0x7f {
			asciiClasses[i] = Zero
		} else {
			asciiClasses[i] = Narrow
		}
	}
}

// SetupWidthTable builds the width table. It is called automatically on the
// first width lookup; clients may call it beforehand to avoid the one-time
// delay. Calling it more than once is a no-op.
func SetupWidthTable() {
	widthTable.once.Do(func() {
		widthTable.tree = buildWidthTable()
		T().Infof("UAX#11 width table set up with %d spans", widthTable.tree.Size())
	})
}

func buildWidthTable() *redblacktree.Tree {
	tree := redblacktree.NewWithIntComparator()
	cur := span{lo: -1}
	put := func(r rune, c Class) {
		if cur.lo >= 0 && c == cur.class && r == cur.hi+1 {
			cur.hi = r
			return
		}
		if cur.lo >= 0 && cur.class != Narrow {
			tree.Put(int(cur.lo), cur)
		}
		cur = span{lo: r, hi: r, class: c}
	}
	for r := rune(asciiLimit); r <= scanLimit; r++ {
		put(r, classify(r))
	}
	for r := rune(plane14Lo); r <= plane14Hi; r++ {
		put(r, classify(r))
	}
	// noncharacters at the end of each plane stay narrow
	put(pua15Lo, ambiguous)
	cur.hi = pua15Hi
	put(pua15Hi+1, Narrow)
	put(pua16Lo, ambiguous)
	cur.hi = pua16Hi
	put(pua16Hi+1, Narrow) // flush
	return tree
}

// classify derives the width class of r from Unicode properties.
// Zero-width properties take precedence, as many combining marks are
// categorized as A by UAX#11.
func classify(r rune) Class {
	if r == softHyphen || (r >= surrogateLo && r <= surrogateHi) {
		return Narrow
	}
	if unicode.Is(zeroWidth, r) {
		return Zero
	}
	switch WidthCategory(r) {
	case W, F:
		return Wide
	case A:
		return ambiguous
	}
	return Narrow
}

// classOf looks up the width class of r in the width table.
func classOf(r rune) Class {
	if r >= 0 && r < asciiLimit {
		return asciiClasses[r]
	}
	SetupWidthTable()
	node, found := widthTable.tree.Floor(int(r))
	if !found {
		return Narrow
	}
	sp := node.Value.(span)
	if r > sp.hi {
		return Narrow
	}
	return sp.class
}

// ClassOf returns the width class of r. Ambiguous characters are resolved
// within context; a nil context is treated as LatinContext.
func ClassOf(r rune, context *Context) Class {
	return Class(RuneWidth(r, context))
}
