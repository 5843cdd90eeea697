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

// Package exchange hands completed frames from the capture decoder to the
// scanline output driver without locks.
//
// The Manager runs in the capture context. When the decoder completes a slot
// the Manager optionally blends the slot with the ghost of the previous
// frames, lets the Overlay draw on it, publishes it as the display slot and
// re-arms the decoder with a slot that the output context is not reading.
//
// The output context reads the display slot with Acquire() and Release().
// Acquire() publishes a hazard index that the Manager will not re-arm while
// it is held. With a pool of two slots a re-arm may have to wait for
// Release(). The Manager never blocks on the reader and instead retries the
// re-arm the next time it is serviced.
package exchange
