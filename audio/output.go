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
	"github.com/dmgdvi/dmgdvi/digest"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// SampleSink receives samples taken from the ring.
type SampleSink interface {
	Samples([]Sample) error
}

// Output drains the ring once per output frame. It implements the Sink
// interface of the serializer package.
type Output struct {
	ring  *Ring
	sinks []SampleSink
	dig   *digest.Audio
	buf   []Sample
	mono  []int16
	total int
}

// NewOutput is the preferred method of initialisation for the Output type.
func NewOutput(ring *Ring) *Output {
	return &Output{
		ring: ring,
		buf:  make([]Sample, ring.Len()),
		mono: make([]int16, 0, ring.Len()*2),
	}
}

// AddSink adds a destination for the samples drained from the ring.
func (out *Output) AddSink(s SampleSink) {
	out.sinks = append(out.sinks, s)
}

// SetDigest adds the samples drained from the ring to the audio digest.
func (out *Output) SetDigest(dig *digest.Audio) {
	out.dig = dig
}

// Total returns the number of samples drained since the Output was created.
func (out *Output) Total() int {
	return out.total
}

// BeginFrame implements the serializer.Sink interface.
func (out *Output) BeginFrame(_ int) {
}

// Scanline implements the serializer.Sink interface.
func (out *Output) Scanline(_ int, _ *tmds.Scanline) {
}

// EndFrame implements the serializer.Sink interface.
func (out *Output) EndFrame() error {
	n := out.ring.Read(out.buf)
	if n == 0 {
		return nil
	}
	out.total += n

	s := out.buf[:n]
	for _, k := range out.sinks {
		if err := k.Samples(s); err != nil {
			return err
		}
	}

	if out.dig != nil {
		out.mono = out.mono[:0]
		for _, v := range s {
			out.mono = append(out.mono, v[0], v[1])
		}
		out.dig.Samples(out.mono)
	}

	return nil
}
