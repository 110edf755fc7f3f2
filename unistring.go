package unistring

import (
	"github.com/npillmayer/unistring/u8"
	"github.com/npillmayer/unistring/uax11"
)

// RuneCount returns the number of code points in s. Counting stops at the
// first NUL byte or at the end of s, whichever comes first.
//
// Bytes which are not part of a well-formed UTF-8 sequence count as one
// code point each.
func RuneCount(s []byte) int {
	var sc u8.Scanner
	sc.StopAtNUL(true).Init(s)
	n := 0
	for sc.Next() {
		n++
	}
	return n
}

// RuneCountString is RuneCount for strings.
func RuneCountString(s string) int {
	return RuneCount([]byte(s))
}

// RuneCountN returns the number of code points within the first n bytes of s.
// NUL bytes are counted as code points. n is clamped to [0…len(s)].
//
// Bytes which are not part of a well-formed UTF-8 sequence count as one
// code point each. This holds for a sequence cut off at n as well.
func RuneCountN(s []byte, n int) int {
	s = window(s, n)
	var sc u8.Scanner
	sc.Init(s)
	cnt := 0
	for sc.Next() {
		cnt++
	}
	return cnt
}

// Width returns the number of terminal columns occupied by s[:end], where
// characters of ambiguous East Asian width are narrow. end is clamped to
// [0…len(s)] and should be positioned at the start of a code point.
//
// See WidthIn.
func Width(s []byte, end int) int {
	return WidthIn(uax11.LatinContext, s, end)
}

// WidthString is Width for all of a string.
func WidthString(s string) int {
	b := []byte(s)
	return Width(b, len(b))
}

// WidthIn returns the number of terminal columns occupied by s[:end], as
// seen within a typesetting context. A nil context is treated as
// uax11.LatinContext.
//
// Control characters, including NUL, and zero width marks count 0, wide
// and fullwidth characters count 2, everything else counts 1. Bytes which
// are not part of a well-formed UTF-8 sequence count 1 each; this includes
// a sequence cut off by end.
//
// Width is additive: for any k positioned at the start of a code point,
// WidthIn(ctx, s, end) == WidthIn(ctx, s, k) + WidthIn(ctx, s[k:], end-k).
func WidthIn(ctx *uax11.Context, s []byte, end int) int {
	s = window(s, end)
	var sc u8.Scanner
	sc.Init(s)
	w := 0
	for sc.Next() {
		res := sc.Result()
		if !res.Valid() {
			w++
			continue
		}
		w += uax11.RuneWidth(res.Rune, ctx)
	}
	return w
}

// CharLen returns the number of bytes (1…4) of the code point starting at
// s[off]. Bytes which do not start a well-formed UTF-8 sequence within s have
// length 1. CharLen lets clients step through text one character at a time:
//
//   for off := 0; off < len(s); off += unistring.CharLen(s, off) {
//       …
//   }
//
// If off is outside of s, 0 is returned.
func CharLen(s []byte, off int) int {
	if off < 0 || off >= len(s) {
		return 0
	}
	return u8.Len(s[off:])
}

// ByteLen returns the number of bytes in s before the first NUL byte, i.e.
// the length of s interpreted as a C string. If s contains no NUL byte,
// len(s) is returned.
func ByteLen(s []byte) int {
	for i, b := range s {
		if b == 0 {
			return i
		}
	}
	return len(s)
}

func window(s []byte, n int) []byte {
	if n < 0 {
		CT().Debugf("unistring: negative length %d treated as 0", n)
		return s[:0]
	}
	if n > len(s) {
		CT().Debugf("unistring: length %d exceeds buffer of %d bytes", n, len(s))
		return s
	}
	return s[:n]
}
