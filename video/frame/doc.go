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

// Package frame defines the packed frame format shared by the capture
// decoder, the frame exchange and the scanline driver.
//
// A frame stores four shades per byte, row-major, most significant pair
// first. Pixel x of row y is found at byte y*Width/4 + x/4 and shifted
// (3 - x%4) * 2 bits to the right. Shade 0 is the lightest entry of the
// palette and shade 3 the darkest.
//
// The Pool type holds the fixed set of frame slots. Slots are allocated once
// when the pool is created and are referred to by index.
package frame
