/*
Package host makes the measurement functions of package unistring available
to WebAssembly guests running in a wazero runtime.

The host module (named "unistring" by default) exports the following
functions, all operating on the linear memory of the calling guest. Pointers,
lengths and results are i32 values.

   u8_strlen(ptr) -> count      code points up to the first NUL
   u8_mbsnlen(ptr, n) -> count  code points within n bytes
   u8_strwidth(ptr, end) -> w   display columns of the bytes [ptr, end)
   u8_mblen(ptr, n) -> len      length (1…4) of the code point at ptr, 0 for n = 0
   u8_bytelen(ptr) -> bytes     bytes up to the first NUL

NUL-terminated strings without a terminator end at the end of guest memory.
A pointer or length reaching outside of guest memory, a negative length, or
an end address before the start address is an error on the guest's side. The
guest is trapped; the error returned to the host by the call is a *BoundsError
and matches ErrOutOfBounds.

Usage

  rt := wazero.NewRuntime(ctx)
  defer rt.Close(ctx)
  if _, err := host.Instantiate(ctx, rt, host.WithContext(uax11.EastAsianContext)); err != nil {
      …
  }
  // instantiate guest modules importing "unistring"

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package host
