package u8

import (
	"errors"
	"fmt"
)

// Invalid is the code point reported for bytes which do not form a
// well-formed UTF-8 sequence.
const Invalid rune = -1

// MaxRune is the largest legal Unicode code point.
const MaxRune rune = 0x10FFFF

// UTFMax is the maximum number of bytes of a UTF-8 encoded code point.
const UTFMax = 4

// ErrInvalidSequence flags bytes which are not well-formed UTF-8.
var ErrInvalidSequence = errors.New("u8: invalid UTF-8 sequence")

// InvalidSequenceError is returned by Result.Err for invalid input. It
// carries the lead byte where decoding failed.
type InvalidSequenceError struct {
	Lead byte
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("u8: invalid UTF-8 sequence at byte %#02x", e.Lead)
}

// Unwrap makes errors.Is(err, ErrInvalidSequence) hold.
func (e *InvalidSequenceError) Unwrap() error {
	return ErrInvalidSequence
}

// Result is the outcome of a single decoding step.
//
// Size is the number of bytes consumed. It is 1 for invalid sequences, and
// 0 only if there was no input at all.
type Result struct {
	Rune rune
	Size int
	lead byte
}

// Valid is true if Rune holds a decoded code point.
func (res Result) Valid() bool {
	return res.Rune != Invalid
}

// Err returns nil for valid results and an *InvalidSequenceError otherwise.
// An empty input is reported as ErrInvalidSequence.
func (res Result) Err() error {
	if res.Valid() {
		return nil
	}
	if res.Size == 0 {
		return ErrInvalidSequence
	}
	return &InvalidSequenceError{Lead: res.lead}
}

func (res Result) String() string {
	if !res.Valid() {
		return fmt.Sprintf("<invalid %#02x>", res.lead)
	}
	return fmt.Sprintf("%#U(%d)", res.Rune, res.Size)
}

const (
	tx = 0x80 // 1000 0000
	t2 = 0xC0 // 1100 0000
	t3 = 0xE0 // 1110 0000
	t4 = 0xF0 // 1111 0000
	t5 = 0xF8 // 1111 1000

	maskx = 0x3F // 0011 1111
	mask2 = 0x1F // 0001 1111
	mask3 = 0x0F // 0000 1111
	mask4 = 0x07 // 0000 0111

	locb = 0x80 // lowest continuation byte
	hicb = 0xBF // highest continuation byte
)

// RuneStart reports whether b may start an encoded code point, i.e. is not
// a continuation byte.
func RuneStart(b byte) bool {
	return b&t2 != tx
}

// SeqLen returns the sequence length announced by the high bits of a lead
// byte: 1 for 0xxxxxxx, 2 for 110xxxxx, 3 for 1110xxxx and 4 for 11110xxx.
// Continuation bytes and bytes 0xF8…0xFF announce nothing and yield 0.
//
// A legal announcement does not imply a legal sequence; 0xC0 announces an
// overlong 2-byte sequence, for example.
func SeqLen(lead byte) int {
	switch {
	case lead < tx:
		return 1
	case lead < t2:
		return 0
	case lead < t3:
		return 2
	case lead < t4:
		return 3
	case lead < t5:
		return 4
	}
	return 0
}

// Decode decodes the code point at the start of s. The sequence must fit
// into s, i.e. len(s) acts as the end bound.
//
// Decode does not allocate. For malformed input it returns Rune == Invalid
// and Size == 1, with the exception of empty input, where Size is 0.
func Decode(s []byte) Result {
	n := len(s)
	if n == 0 {
		return Result{Rune: Invalid}
	}
	b0 := s[0]
	if b0 < tx {
		return Result{Rune: rune(b0), Size: 1, lead: b0}
	}
	size := SeqLen(b0)
	if size == 0 || n < size {
		return invalid(b0)
	}
	lo, hi := byte(locb), byte(hicb)
	switch b0 {
	case 0xC0, 0xC1: // overlong 2-byte
		return invalid(b0)
	case 0xE0: // overlong 3-byte
		lo = 0xA0
	case 0xED: // surrogates
		hi = 0x9F
	case 0xF0: // overlong 4-byte
		lo = 0x90
	case 0xF4: // > U+10FFFF
		hi = 0x8F
	case 0xF5, 0xF6, 0xF7:
		return invalid(b0)
	}
	b1 := s[1]
	if b1 < lo || hi < b1 {
		return invalid(b0)
	}
	if size == 2 {
		return Result{Rune: rune(b0&mask2)<<6 | rune(b1&maskx), Size: 2, lead: b0}
	}
	b2 := s[2]
	if b2 < locb || hicb < b2 {
		return invalid(b0)
	}
	if size == 3 {
		r := rune(b0&mask3)<<12 | rune(b1&maskx)<<6 | rune(b2&maskx)
		return Result{Rune: r, Size: 3, lead: b0}
	}
	b3 := s[3]
	if b3 < locb || hicb < b3 {
		return invalid(b0)
	}
	r := rune(b0&mask4)<<18 | rune(b1&maskx)<<12 | rune(b2&maskx)<<6 | rune(b3&maskx)
	return Result{Rune: r, Size: 4, lead: b0}
}

// DecodeString is like Decode, but operates on a string.
func DecodeString(s string) Result {
	var buf [UTFMax]byte
	n := copy(buf[:], s)
	return Decode(buf[:n])
}

// Len returns the number of bytes of the code point at the start of s,
// without exposing the decoded value. Invalid sequences have length 1,
// empty input has length 0.
func Len(s []byte) int {
	return Decode(s).Size
}

func invalid(lead byte) Result {
	return Result{Rune: Invalid, Size: 1, lead: lead}
}
