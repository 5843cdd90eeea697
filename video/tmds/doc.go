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

// Package tmds computes the ten bit TMDS characters of the DVI data period.
//
// The symbol table holds, for every eight bit channel value, the transition
// minimised code in its two DC balanced forms. The Negative variant never has
// more ones than zeros and is sent while the running disparity of the channel
// is zero or positive. The Positive variant never has more zeros than ones and
// is sent while the running disparity is negative. Each table Entry carries
// the disparity of its symbol in the top six bits, so that a running count can
// be kept by adding entries.
//
// For palette encoding, where each captured pixel is repeated an even number
// of times, every channel value also has a Pair of symbols whose disparities
// cancel. The first symbol of the pair encodes the channel value exactly; the
// second encodes a value that differs only in the two least significant bits.
// A stream built from pairs never drifts, whatever the pattern of pixels.
//
// The Encoder type turns a row of packed shades and a palette into the three
// channel word arrays of one scanline.
package tmds
