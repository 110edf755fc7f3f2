package uax11

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Canonical WHATWG names of legacy East Asian encodings. Text coming from one
// of these encodings has been written for fixed-pitch fonts where ambiguous
// characters take up a full cell.
var eaEncodings = map[string]bool{
	"euc-jp":      true,
	"iso-2022-jp": true,
	"shift_jis":   true,
	"gbk":         true,
	"gb18030":     true,
	"big5":        true,
	"euc-kr":      true,
}

// Encodings unknown to the WHATWG index, but East Asian nevertheless.
var eaEncodingsExtra = map[string]bool{
	"CP932":      true,
	"CP949":      true,
	"EUC-TW":     true,
	"JOHAB":      true,
	"BIG5-HKSCS": true,
}

// ContextForEncoding returns a context suitable for text which has been
// converted from the legacy character encoding named enc. Encoding names are
// matched case-insensitively and aliases are accepted ("sjis", "gb2312").
//
// For East Asian encodings, EastAsianContext is returned. For anything else,
// including "UTF-8" and unknown names, LatinContext is returned.
func ContextForEncoding(enc string) *Context {
	if e, err := htmlindex.Get(enc); err == nil {
		name, err := htmlindex.Name(e)
		if err == nil && eaEncodings[name] {
			T().Debugf("UAX#11 encoding %q is East Asian (%s)", enc, name)
			return EastAsianContext
		}
		return LatinContext
	}
	if eaEncodingsExtra[strings.ToUpper(strings.TrimSpace(enc))] {
		return EastAsianContext
	}
	return LatinContext
}
