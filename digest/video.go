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

	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// Video generates a SHA-1 value of the symbols of every output frame. It
// implements the serializer.Sink interface.
type Video struct {
	digest   [sha1.Size]byte
	words    []byte
	lineLen  int
	frameNum int
	frames   int
}

// NewVideo creates a digest for the output mode.
func NewVideo(out specification.Output) *Video {
	dig := &Video{
		lineLen: out.OutputWords() * tmds.NumChannels * 4,
	}

	// room for the previous digest followed by every word of every scanline
	dig.words = make([]byte, sha1.Size+dig.lineLen*out.Scanlines())

	return dig
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames included in the digest.
func (dig *Video) Frames() int {
	return dig.frames
}

// BeginFrame implements the serializer.Sink interface.
func (dig *Video) BeginFrame(frameNum int) {
	dig.frameNum = frameNum
}

// Scanline implements the serializer.Sink interface.
func (dig *Video) Scanline(row int, sl *tmds.Scanline) {
	i := sha1.Size + row*dig.lineLen
	if row < 0 || i+dig.lineLen > len(dig.words) {
		return
	}
	for _, ch := range sl.Channels {
		for _, w := range ch {
			binary.LittleEndian.PutUint32(dig.words[i:], uint32(w))
			i += 4
		}
	}
}

// EndFrame implements the serializer.Sink interface.
func (dig *Video) EndFrame() error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the frame data
	copy(dig.words, dig.digest[:])
	dig.digest = sha1.Sum(dig.words)
	dig.frames++
	return nil
}
