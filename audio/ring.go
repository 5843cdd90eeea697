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

package audio

import (
	"sync/atomic"

	"github.com/dmgdvi/dmgdvi/curated"
)

// Sample is a single stereo sample. Left channel first.
type Sample [2]int16

// BadRingSize is returned by NewRing() if the size is not a power of two.
const BadRingSize = curated.Sentinel("audio: ring size %d is not a power of two")

// Ring is a single producer, single consumer ring of samples.
type Ring struct {
	buf  []Sample
	mask uint32

	// free running counters. the difference between them is the number of
	// samples waiting to be read
	read  atomic.Uint32
	write atomic.Uint32
}

// NewRing is the preferred method of initialisation for the Ring type.
func NewRing(size int) (*Ring, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, BadRingSize.Errorf(size)
	}
	return &Ring{
		buf:  make([]Sample, size),
		mask: uint32(size - 1),
	}, nil
}

// Len returns the capacity of the ring.
func (r *Ring) Len() int {
	return len(r.buf)
}

// ReadSize returns the number of samples waiting to be read.
func (r *Ring) ReadSize() int {
	return int(r.write.Load() - r.read.Load())
}

// WriteSize returns the number of samples that can be written without
// overwriting unread samples.
func (r *Ring) WriteSize() int {
	return len(r.buf) - r.ReadSize()
}

// Write samples to the ring. Returns the number of samples written, which
// will be less than len(s) if the ring is full.
func (r *Ring) Write(s []Sample) int {
	n := min(len(s), r.WriteSize())
	w := r.write.Load()
	for i := range n {
		r.buf[(w+uint32(i))&r.mask] = s[i]
	}
	r.write.Store(w + uint32(n))
	return n
}

// Read samples from the ring into dst. Returns the number of samples read.
func (r *Ring) Read(dst []Sample) int {
	n := min(len(dst), r.ReadSize())
	rd := r.read.Load()
	for i := range n {
		dst[i] = r.buf[(rd+uint32(i))&r.mask]
	}
	r.read.Store(rd + uint32(n))
	return n
}
