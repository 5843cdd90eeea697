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

// Pair is two symbols with disparities that cancel. The first symbol is in
// the low ten bits and the second symbol in the next ten bits, the layout of
// a serializer word carrying two symbols.
type Pair uint32

// First returns the first symbol of the pair.
func (p Pair) First() Symbol {
	return Symbol(p & SymbolMask)
}

// Second returns the second symbol of the pair.
func (p Pair) Second() Symbol {
	return Symbol(p>>SymbolBits) & SymbolMask
}

var pairs [256]Pair

// PairFor returns the balanced pair for the channel value.
func PairFor(v uint8) Pair {
	return pairs[v]
}

// pairFor searches for a balanced pair. The first symbol is one of the
// variants of the value itself. The second is a variant of a value with the
// same top six bits, trying the nearest values first. A balanced pair exists
// for every eight bit value.
func pairFor(v uint8) Pair {
	group := v &^ 0x03

	var near [4]uint8
	n := 0
	for d := 0; d < 4 && n < 4; d++ {
		if lo := int(v) - d; d > 0 && lo >= int(group) {
			near[n] = uint8(lo)
			n++
		}
		if hi := int(v) + d; hi <= int(group)+3 {
			near[n] = uint8(hi)
			n++
		}
	}

	own := table[v]
	for _, a := range [2]Entry{own.Negative, own.Positive} {
		for _, w := range near {
			cand := table[w]
			for _, b := range [2]Entry{cand.Negative, cand.Positive} {
				if a.Disparity()+b.Disparity() == 0 {
					return Pair(uint32(a.Symbol()) | uint32(b.Symbol())<<SymbolBits)
				}
			}
		}
	}

	panic("tmds: no balanced pair")
}
