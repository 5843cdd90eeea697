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

package frame

import (
	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

// MinSlots is the smallest number of slots a Pool may have. One slot is
// always the capture target and one is always the display source.
const MinSlots = 2

// TooFewSlots is returned by NewPool when the number of slots is less than
// MinSlots.
const TooFewSlots = curated.Sentinel("frame: pool needs at least %d slots (%d requested)")

// Pool is a fixed set of frame slots. The slots are never reallocated.
type Pool struct {
	spec  specification.Capture
	slots []*Frame
}

// NewPool allocates n frames with the geometry of the capture specification.
func NewPool(spec specification.Capture, n int) (*Pool, error) {
	if n < MinSlots {
		return nil, TooFewSlots.Errorf(MinSlots, n)
	}

	p := &Pool{
		spec:  spec,
		slots: make([]*Frame, n),
	}

	for i := range p.slots {
		f, err := NewFrame(spec)
		if err != nil {
			return nil, curated.Errorf("frame: %v", err)
		}
		p.slots[i] = f
	}

	return p, nil
}

// Len returns the number of slots in the pool.
func (p *Pool) Len() int {
	return len(p.slots)
}

// Slot returns the frame for the slot index.
func (p *Pool) Slot(i int) *Frame {
	return p.slots[i]
}

// Spec returns the capture specification the pool was created with.
func (p *Pool) Spec() specification.Capture {
	return p.spec
}
