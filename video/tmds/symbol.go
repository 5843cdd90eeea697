// This file is part of dmgdvi.
//
// dmgdvi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dmgdvi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dmgdvi.  If not, see <https://www.gnu.org/licenses/>.

package tmds

import (
	"math/bits"
)

// Symbol is a ten bit TMDS character.
type Symbol uint16

// SymbolBits is the number of bits in a Symbol.
const SymbolBits = 10

// SymbolMask masks the ten bits of a Symbol.
const SymbolMask = 0x3ff

// Disparity returns the number of one bits minus the number of zero bits in
// the symbol.
func Disparity(s Symbol) int {
	return bits.OnesCount16(uint16(s&SymbolMask))*2 - SymbolBits
}

// Entry is a Symbol in the low ten bits together with the disparity of the
// symbol as a six bit two's complement field at bit 26.
type Entry uint32

const disparityShift = 26

func makeEntry(s Symbol) Entry {
	return Entry(uint32(s&SymbolMask) | (uint32(Disparity(s))&0x3f)<<disparityShift)
}

// Symbol returns the TMDS character of the entry.
func (e Entry) Symbol() Symbol {
	return Symbol(e & SymbolMask)
}

// Disparity returns the disparity field of the entry.
func (e Entry) Disparity() int {
	return int(int32(e) >> disparityShift)
}

// Variants are the two DC balanced forms of a channel value.
type Variants struct {
	// sent while running disparity is >= 0. disparity of symbol is <= 0
	Negative Entry

	// sent while running disparity is < 0. disparity of symbol is >= 0
	Positive Entry
}

// Select returns the variant for the running disparity.
func (v Variants) Select(running int) Entry {
	if running >= 0 {
		return v.Negative
	}
	return v.Positive
}

var table [256]Variants

func init() {
	for v := range table {
		table[v] = variants(uint8(v))
	}
	for v := range pairs {
		pairs[v] = pairFor(uint8(v))
	}
}

// Lookup returns the variants for the channel value.
func Lookup(v uint8) Variants {
	return table[v]
}

// minimise returns the nine bit transition minimised code for the value.
// Bit 8 is set if the code was produced by XOR and clear for XNOR.
func minimise(v uint8) uint16 {
	ones := bits.OnesCount8(v)
	xnor := ones > 4 || (ones == 4 && v&0x01 == 0)

	q := uint16(v & 0x01)
	for i := 1; i < 8; i++ {
		b := (q>>(i-1))&0x01 ^ uint16(v>>i)&0x01
		if xnor {
			b ^= 0x01
		}
		q |= b << i
	}

	if !xnor {
		q |= 0x100
	}

	return q
}

func variants(v uint8) Variants {
	q := Symbol(minimise(v))

	// bit 9 set means the low eight bits are inverted
	inverted := q ^ 0x2ff

	if bits.OnesCount8(uint8(q)) == 4 {
		// the low eight bits are balanced. both variants are the same and
		// bit 9 is the complement of bit 8
		if q&0x100 == 0 {
			q = inverted
		}
		e := makeEntry(q)
		return Variants{Negative: e, Positive: e}
	}

	// more ones than zeros in the low eight bits means the inverted form is
	// the negative variant
	if bits.OnesCount8(uint8(q)) > 4 {
		return Variants{Negative: makeEntry(inverted), Positive: makeEntry(q)}
	}
	return Variants{Negative: makeEntry(q), Positive: makeEntry(inverted)}
}

// Decode returns the channel value of a TMDS data character.
func Decode(s Symbol) uint8 {
	d := uint8(s)
	if s&0x200 != 0 {
		d = ^d
	}

	v := d & 0x01
	for i := 1; i < 8; i++ {
		b := (d>>i ^ d>>(i-1)) & 0x01
		if s&0x100 == 0 {
			b ^= 0x01
		}
		v |= b << i
	}

	return v
}
