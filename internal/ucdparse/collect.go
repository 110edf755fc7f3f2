package ucdparse

import (
	"sort"
	"unicode"
)

// RangeTableCollector is a type to collect character ranges during iteration of
// UCD files and turn them into a unicode.RangeTable.
type RangeTableCollector struct {
	Cat    string // character category
	ranges [][2]rune
}

// Append a range of runes to a range table collector. A single
// character is denoted by l == r.
//
func (rt *RangeTableCollector) Append(l, r rune) {
	rt.ranges = append(rt.ranges, [2]rune{l, r})
}

// Table creates a range table from the ranges collected so far. Adjacent and
// overlapping ranges are merged.
func (rt *RangeTableCollector) Table() *unicode.RangeTable {
	ranges := make([][2]rune, len(rt.ranges))
	copy(ranges, rt.ranges)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	table := &unicode.RangeTable{}
	var lo, hi rune = -1, -1
	flush := func() {
		if lo < 0 {
			return
		}
		if hi <= 0xFFFF {
			table.R16 = append(table.R16, unicode.Range16{Lo: uint16(lo), Hi: uint16(hi), Stride: 1})
			if hi <= unicode.MaxLatin1 {
				table.LatinOffset++
			}
			return
		}
		if lo <= 0xFFFF { // split at the 16 bit boundary
			table.R16 = append(table.R16, unicode.Range16{Lo: uint16(lo), Hi: 0xFFFF, Stride: 1})
			lo = 0x10000
		}
		table.R32 = append(table.R32, unicode.Range32{Lo: uint32(lo), Hi: uint32(hi), Stride: 1})
	}
	for _, r := range ranges {
		if lo >= 0 && r[0] <= hi+1 {
			if r[1] > hi {
				hi = r[1]
			}
			continue
		}
		flush()
		lo, hi = r[0], r[1]
	}
	flush()
	return table
}

// Collect parses UCD input and returns one range table collector per
// value of field #i.
func Collect(p *Parser, i int) (map[string]*RangeTableCollector, error) {
	collectors := make(map[string]*RangeTableCollector)
	for p.Next() {
		cat := p.Token.Field(i)
		rt := collectors[cat]
		if rt == nil {
			rt = &RangeTableCollector{Cat: cat}
			collectors[cat] = rt
		}
		rt.Append(p.Token.Range())
	}
	return collectors, p.Err()
}
