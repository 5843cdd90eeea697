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

package exchange

import (
	"encoding/binary"
)

// the low bit of every two bit lane
const lanesLow = 0x5555555555555555

// blend64 is Blend() for eight bytes. The ghost of the lanes that are not
// lightest is the dark shade
func blend64(cur uint64, ghost uint64) (uint64, uint64) {
	nz := (cur | cur>>1) & lanesLow
	mask := nz | nz<<1
	return cur | (ghost &^ mask), nz << 1
}

// Blend the packed frame data in dst with the ghost. The ghost is updated for
// the next frame.
//
// Pixels of the lightest shade take the ghost shade. The ghost of every other
// pixel becomes the dark shade and the ghost of lightest pixels is cleared.
// The effect is of a fading trail left by moving objects, similar to the slow
// response of the original display.
func Blend(dst []byte, ghost []byte) {
	n := min(len(dst), len(ghost))

	i := 0
	for ; i+8 <= n; i += 8 {
		c := binary.LittleEndian.Uint64(dst[i:])
		g := binary.LittleEndian.Uint64(ghost[i:])
		c, g = blend64(c, g)
		binary.LittleEndian.PutUint64(dst[i:], c)
		binary.LittleEndian.PutUint64(ghost[i:], g)
	}

	for ; i < n; i++ {
		c, g := blend64(uint64(dst[i]), uint64(ghost[i]))
		dst[i] = byte(c)
		ghost[i] = byte(g)
	}
}
