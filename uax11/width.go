package uax11

import (
	"unicode"

	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/unistring/u8"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Category is one of 6 char categories as defined in UAX#11.
type Category int8

// East_Asian_Width properties
const (
	N  Category = iota // Neutral (Not East Asian)
	A                  // East Asian Ambiguous
	W                  // East Asian Wide
	Na                 // East Asian Narrow
	H                  // East Asian Halfwidth
	F                  // East Asian Fullwidth
)

func (cat Category) String() string {
	switch cat {
	case N:
		return "N"
	case A:
		return "A"
	case W:
		return "W"
	case Na:
		return "Na"
	case H:
		return "H"
	case F:
		return "F"
	}
	return "?"
}

// WidthCategory returns the width category of a single rune as proposed by the UAX#11
// standard. Please note that this is most probably not what clients will want to use in
// full-grown international applications, as it is preferable to work on graphemes
// rather than on runes. This function is nevertheless provided as a low
// level API function corresponding to UAX#11 section 6.
//
// Returns one of N, A, Na, W, H, F.
//
func WidthCategory(r rune) Category {
	cat := consultEAWTables(r)
	return cat
}

// Context represents information about the typesetting environment.
//
// From UAX#11:
// The term context as used here includes extra information such as explicit
// markup, knowledge of the source code page, font information, or language and
// script identification
//
// Contexts are read-only after creation and may be shared between goroutines.
// Clients creating a Context literal should set either ForceEastAsian or Locale;
// the resolver will then be derived on every width lookup, which is slower than
// using ContextFromLocale.
//
type Context struct {
	ForceEastAsian bool            // force East Asian context
	Script         language.Script // ISO 15924 script identifier
	Locale         string          // ISO 639/3166 locale string
	resolve        resolver
}

// EastAsianContext is a context for East Asian languages.
var EastAsianContext = makeEastAsianContext()

// LatinContext is a context for western languages.
var LatinContext = makeLatinContext()

func makeEastAsianContext() *Context {
	ctx := &Context{
		ForceEastAsian: true,
		Script:         language.MustParseScript("Hant"),
		Locale:         "zh-Hant",
		resolve:        resolveToWide,
	}
	return ctx
}

func makeLatinContext() *Context {
	ctx := &Context{
		ForceEastAsian: false,
		Script:         language.MustParseScript("Latn"),
		Locale:         "en-US",
		resolve:        resolveToNarrow,
	}
	return ctx
}

// IsEastAsian is true if ambiguous characters are resolved to wide in this context.
func (ctx *Context) IsEastAsian() bool {
	return ctx.resolver()(A) == W
}

// resolver maps category A to a definite category, leaving all others untouched.
type resolver func(Category) Category

func resolveToNarrow(cat Category) Category {
	if cat == A {
		return Na
	}
	return cat
}

func resolveToWide(cat Category) Category {
	if cat == A {
		return W
	}
	return cat
}

func (ctx *Context) resolver() resolver {
	if ctx == nil {
		return resolveToNarrow
	}
	if ctx.ForceEastAsian {
		return resolveToWide
	}
	if ctx.resolve != nil {
		return ctx.resolve
	}
	if ctx.Locale == "" {
		return resolveToNarrow
	}
	lang := language.Make(ctx.Locale)
	script := ctx.Script
	if script == (language.Script{}) {
		script, _ = lang.Script()
	}
	return findResolver(script, lang)
}

func findResolver(script language.Script, lang language.Tag) resolver {
	scrcode := script.String()
	switch scrcode {
	case
		// East Asian
		"Bopo", "Hanb", "Hani", "Hans",
		"Hant", "Hang", "Hira", "Kana",
		"Lana", "Kitl", "Kits", "Nkdb",
		"Nkgb", "Plrd",
		// South East Asian
		"Batk", "Beng", "Bugi", "Mymr",
		"Cham", "Java", "Khmr", "Laoo",
		"Lisu", "Mtei", "Thai", "Yiii",
		"Bali", "Khar", "Rjng", "Roro",
		"Tglg", "Wole", "Buhd", "Tagb":
		return resolveToWide
	}
	_, _, confidence := eaMatch.Match(lang)
	if confidence == language.No {
		return resolveToNarrow
	}
	return resolveToWide
}

var eaMatch = language.NewMatcher([]language.Tag{
	language.Chinese, // The first language is used as fallback.
	language.Japanese,
	language.Korean,
	language.Vietnamese,
	language.Thai,
	language.Mongolian,
	language.Burmese,
	language.Khmer,
})

// ContextFromLocale creates a context for a BCP 47 locale string such as
// "ja-JP" or "de-CH". Unparsable locales result in a Latin context.
func ContextFromLocale(locale string) *Context {
	lang, err := language.Parse(locale)
	if err != nil {
		T().Infof("UAX#11 cannot parse locale %q: %v", locale, err)
		return LatinContext
	}
	script, _ := lang.Script()
	return &Context{
		Script:  script,
		Locale:  lang.String(),
		resolve: findResolver(script, lang),
	}
}

// ContextFromEnvironment creates a context from the user's locale settings.
// If no locale can be detected, "en-US" is assumed.
func ContextFromEnvironment() *Context {
	userLocale, err := jj.DetectIETF()
	if err != nil {
		T().Errorf("UAX#11 cannot detect user locale: %v", err)
		userLocale = "en-US"
		T().Infof("UAX#11 sets default user locale %v", userLocale)
	} else {
		T().Infof("UAX#11 detected user locale %v", userLocale)
	}
	lang := language.Make(userLocale)
	script, _ := lang.Script()
	ctx := &Context{
		Script:  script,
		Locale:  userLocale,
		resolve: findResolver(script, lang),
	}
	return ctx
}

// RuneWidth returns the display width of a single rune in terms of
// `en`s, where 1en stands for 1/2em, i.e. half a full width character.
// Runes outside the Unicode code space are given a width of 1.
//
// If a nil context is given, LatinContext is assumed.
//
// Returns either 0, 1 (narrow character) or 2 (wide character).
func RuneWidth(r rune, context *Context) int {
	c := classOf(r)
	if c == ambiguous {
		if context.resolver()(A) == W {
			return 2
		}
		return 1
	}
	return int(c)
}

// Width returns the width of a grapheme, given as a byte slice, in terms of
// `en`s, where 1en stands for 1/2em, i.e. half a full width character.
// If grphm is empty or just a zero width rune, a width of 0 is returned.
// Bytes which are not valid UTF-8 count 1 each.
//
// Width does not find grapheme boundaries; all of grphm is considered
// to be a single grapheme and the result is capped at 2.
//
// If an empty context is given, LatinContext is assumed.
//
// Returns either 0, 1 (narrow character) or 2 (wide character).
func Width(grphm []byte, context *Context) int {
	if len(grphm) == 0 {
		return 0
	}
	w := 0
	var sc u8.Scanner
	sc.Init(grphm)
	for sc.Next() && w < 2 {
		res := sc.Result()
		if !res.Valid() {
			w++
			continue
		}
		w += RuneWidth(res.Rune, context)
	}
	if w > 2 {
		return 2
	}
	return w
}

// ---------------------------------------------------------------------------

// UAX#11:
//  - The unassigned code points in the following blocks default to "W":
//         CJK Unified Ideographs Extension A: U+3400..U+4DBF
//         CJK Unified Ideographs:             U+4E00..U+9FFF
//         CJK Compatibility Ideographs:       U+F900..U+FAFF
//  - All undesignated code points in Planes 2 and 3, whether inside or
//      outside of allocated blocks, default to "W":
//         Plane 2:                            U+20000..U+2FFFD
//         Plane 3:                            U+30000..U+3FFFD
var _CJK_Default_W = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x3400, 0x4dbf, 1},
		{0x4e00, 0x9fff, 1},
		{0xf900, 0xfaff, 1},
	},
	R32: []unicode.Range32{
		{0x20000, 0x2fffd, 1},
		{0x30000, 0x3fffd, 1},
	},
}

func consultEAWTables(r rune) Category {
	if r < 0 || r > u8.MaxRune {
		return N
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianAmbiguous:
		return A
	case width.EastAsianWide:
		return W
	case width.EastAsianNarrow:
		return Na
	case width.EastAsianHalfwidth:
		return H
	case width.EastAsianFullwidth:
		return F
	}
	if unicode.Is(_CJK_Default_W, r) {
		return W
	}
	// UAX#11:
	//  - All code points, assigned or unassigned, that are not listed
	//      explicitly are given the value "N".
	return N
}
