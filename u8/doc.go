/*
Package u8 decodes UTF-8 byte sequences one code point at a time.

The decoder is permissive: a byte which does not start a well-formed
UTF-8 sequence is reported as an invalid code point of size 1. This lets
callers which count or measure text step over garbage without ever getting
stuck, and without having to handle errors. Clients which need to know
about malformed input may check Result.Valid() or Result.Err().

Recognized as invalid are

   - continuation bytes (10xxxxxx) where a lead byte is expected
   - lead bytes 0xF8…0xFF, which do not announce any legal sequence length
   - truncated sequences, i.e. fewer continuation bytes than announced
   - overlong encodings (0xC0, 0xC1, 0xE0 0x80…0x9F, 0xF0 0x80…0x8F)
   - UTF-16 surrogate halves U+D800…U+DFFF
   - values beyond U+10FFFF

Stepping through a Buffer

Scanner provides an interface similar to bufio.Scanner:

  var sc u8.Scanner
  sc.Init(buf)
  for sc.Next() {
      r := sc.Result()
      …
  }

A scanner may be told to stop at the first NUL byte, mimicking C strings.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package u8
