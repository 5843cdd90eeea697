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

package tmds_test

import (
	"testing"

	"github.com/dmgdvi/dmgdvi/video/tmds"
	"github.com/dmgdvi/dmgdvi/test"
)

// every entry in the table must decode back to the channel value
func TestTableRoundTrip(t *testing.T) {
	for v := range 256 {
		vr := tmds.Lookup(uint8(v))

		test.ExpectEquality(t, tmds.Decode(vr.Negative.Symbol()), uint8(v), "negative", v)
		test.ExpectEquality(t, tmds.Decode(vr.Positive.Symbol()), uint8(v), "positive", v)

		// disparity field matches the symbol
		test.ExpectEquality(t, vr.Negative.Disparity(), tmds.Disparity(vr.Negative.Symbol()), v)
		test.ExpectEquality(t, vr.Positive.Disparity(), tmds.Disparity(vr.Positive.Symbol()), v)

		test.ExpectSuccess(t, vr.Negative.Disparity() <= 0, "negative disparity", v)
		test.ExpectSuccess(t, vr.Positive.Disparity() >= 0, "positive disparity", v)
	}
}

func TestKnownSymbols(t *testing.T) {
	vr := tmds.Lookup(0x00)
	test.ExpectEquality(t, vr.Negative.Symbol(), tmds.Symbol(0x100))
	test.ExpectEquality(t, vr.Positive.Symbol(), tmds.Symbol(0x3ff))
	test.ExpectEquality(t, vr.Negative.Disparity(), -8)
	test.ExpectEquality(t, vr.Positive.Disparity(), 10)

	vr = tmds.Lookup(0xfe)
	test.ExpectEquality(t, vr.Negative.Symbol(), tmds.Symbol(0x000))
	test.ExpectEquality(t, vr.Positive.Symbol(), tmds.Symbol(0x2ff))

	// selection follows the sign of the running disparity
	test.ExpectEquality(t, vr.Select(0), vr.Negative)
	test.ExpectEquality(t, vr.Select(4), vr.Negative)
	test.ExpectEquality(t, vr.Select(-1), vr.Positive)
}

func TestPairs(t *testing.T) {
	for v := range 256 {
		p := tmds.PairFor(uint8(v))

		// first symbol is exact, second symbol is in the same six bit group
		test.ExpectEquality(t, tmds.Decode(p.First()), uint8(v), "first", v)
		test.ExpectEquality(t, tmds.Decode(p.Second())&^0x03, uint8(v)&^0x03, "second", v)

		test.ExpectEquality(t, tmds.Disparity(p.First())+tmds.Disparity(p.Second()), 0, "balance", v)
	}

	test.ExpectEquality(t, tmds.PairFor(0x00), tmds.Pair(0x0007fd00))
	test.ExpectEquality(t, tmds.PairFor(0xff), tmds.Pair(0x000bfe00))
	test.ExpectEquality(t, tmds.PairFor(0x4e), tmds.Pair(0x000a426f))
}

func TestDecodeAllSymbols(t *testing.T) {
	// decoding is defined for every ten bit value, including those that the
	// encoder never produces
	for s := range 1024 {
		_ = tmds.Decode(tmds.Symbol(s))
	}
	test.ExpectEquality(t, tmds.Disparity(0x3ff), 10)
	test.ExpectEquality(t, tmds.Disparity(0x000), -10)
	test.ExpectEquality(t, tmds.Disparity(0x01f), 0)
}
