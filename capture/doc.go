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

// Package capture reconstructs packed frames from the native pixel bus of
// the handheld.
//
// The bus is sampled as a stream of Lines values, one byte per sample. The
// protocol is one frame-sync pulse followed by the rows of the frame. Each
// row is one row-sync pulse followed by one pixel-clock edge per pixel, the
// shade of the pixel being on the two data lines at the strobe edge.
//
// The Protocol type is the state machine that counts frames, rows and pixels
// and packs shades into the target frame. It knows nothing about where the
// samples come from. Two decoders drive it:
//
// The Sequencer reads samples continuously from an io.Reader. This is the
// equivalent of a hardware state machine streaming into memory and is the
// preferred decoder.
//
// The BitBang decoder waits for a frame-sync edge on a Pins implementation
// and then reads the frame to completion one sample at a time.
//
// Both decoders implement the Decoder interface. A frame slot is armed with
// BeginCapture() and the armed slot is latched at the next frame-sync. A
// frame that does not have the expected number of rows, or has a row with
// too few pixels, is abandoned and the same slot is captured again from the
// next frame-sync. A completed slot is not written to again until it is armed
// again.
package capture
