package u8

// Scanner steps through a byte buffer one code point at a time.
// Successive calls to Next() visit every code point exactly once and stop
// exactly at the end of the buffer or, if requested, at the first NUL byte.
//
// The zero value is an empty scanner; call Init before use.
// A Scanner never copies or retains the buffer beyond its own lifetime.
type Scanner struct {
	buf       []byte
	pos, next int
	res       Result
	stopAtNUL bool
}

// NewScanner creates a scanner for buf.
func NewScanner(buf []byte) *Scanner {
	sc := &Scanner{}
	sc.Init(buf)
	return sc
}

// Init (re-)initializes a scanner for buf. The NUL-termination mode is kept.
func (sc *Scanner) Init(buf []byte) {
	sc.buf = buf
	sc.pos, sc.next = 0, 0
	sc.res = Result{Rune: Invalid}
}

// StopAtNUL switches NUL-termination on or off. With NUL-termination on, a
// zero byte ends the scan and is not reported as a code point.
func (sc *Scanner) StopAtNUL(on bool) *Scanner {
	sc.stopAtNUL = on
	return sc
}

// Next decodes the next code point. It returns false when the end of the
// buffer (or a NUL byte, see StopAtNUL) has been reached.
func (sc *Scanner) Next() bool {
	if sc.next >= len(sc.buf) {
		return false
	}
	if sc.stopAtNUL && sc.buf[sc.next] == 0 {
		return false
	}
	sc.pos = sc.next
	sc.res = Decode(sc.buf[sc.pos:])
	sc.next += sc.res.Size
	return true
}

// Result returns the most recent decoding result.
func (sc *Scanner) Result() Result {
	return sc.res
}

// Bytes returns the bytes of the most recent code point. The slice
// aliases the scanner's buffer.
func (sc *Scanner) Bytes() []byte {
	return sc.buf[sc.pos:sc.next]
}

// Pos returns the byte offset of the most recent code point.
func (sc *Scanner) Pos() int {
	return sc.pos
}

// End returns the byte offset just past the most recent code point, which
// is where the next call to Next() will start decoding.
func (sc *Scanner) End() int {
	return sc.next
}
