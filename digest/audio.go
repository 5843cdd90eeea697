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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

const audioBufferLength = 1024 + sha1.Size

const audioBufferStart = sha1.Size

// Audio generates a SHA-1 value of a stream of audio samples.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{}
	dig.buffer = make([]uint8, audioBufferLength)
	dig.bufferCt = audioBufferStart
	return dig
}

// Hash implements the Digest interface. Samples not yet flushed are not
// included.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.bufferCt = audioBufferStart
}

// Write implements the io.Writer interface so that the Audio digest can be
// used as the destination of raw PCM data.
func (dig *Audio) Write(p []byte) (int, error) {
	for _, b := range p {
		dig.buffer[dig.bufferCt] = b
		dig.bufferCt++
		if dig.bufferCt >= audioBufferLength {
			dig.Flush()
		}
	}
	return len(p), nil
}

// Samples adds signed sixteen bit samples to the digest.
func (dig *Audio) Samples(samples []int16) {
	var b [2]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint16(b[:], uint16(s))
		_, _ = dig.Write(b[:])
	}
}

// Flush the buffered samples into the digest.
func (dig *Audio) Flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = audioBufferStart
}
