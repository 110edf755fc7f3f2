/*
Package unistring measures UTF-8 encoded text.

Description

Package unistring provides the handful of measurements a program needs to
lay out Unicode text on a fixed-pitch output device such as a terminal:

   RuneCount     number of code points, C-string style (up to a NUL byte)
   RuneCountN    number of code points within the first n bytes
   Width         number of terminal columns, up to a byte offset
   CharLen       number of bytes of the code point at a byte offset
   ByteLen       number of bytes up to a NUL byte

All of them operate on raw bytes, as they come from a file, a socket or the
linear memory of an embedded runtime. None of them returns an error: bytes
which are not well-formed UTF-8 are counted as a single character of width 1
each, so that every measurement is total. Clients which have to reject
malformed input should validate it beforehand, e.g. with utf8.Valid.

The functions are pure; they neither retain their input nor keep any state,
and may be called from concurrent goroutines without synchronization.

Display Width

Column widths follow Unicode Standard Annex #11, "East Asian Width", with
non-spacing marks and control characters counting as 0 and wide and fullwidth
characters counting as 2. Characters of East Asian Ambiguous width are
narrow by default; WidthIn accepts a uax11.Context to have them wide:

  w := unistring.WidthIn(uax11.ContextForEncoding("EUC-JP"), buf, len(buf))

Please refer to package uax11 for details.

What is not covered

There is no normalization, no collation, no case-folding and no grapheme
clustering. Widths are summed per code point; emoji sequences joined by
ZWJ will therefore be wider than what most terminals display.

Sub-packages

Package u8 contains the UTF-8 decoder which all measurements are based on.
Package uax11 holds the width table and typesetting contexts.
Package host exposes the measurements to WebAssembly guests running in a
wazero runtime.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package unistring

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
