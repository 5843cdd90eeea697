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

package capture

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmgdvi/dmgdvi/video/frame"
)

// Decoder is the interface shared by the capture strategies.
type Decoder interface {
	// BeginCapture arms the slot to be the target of the next frame. Calling
	// the function again with the same slot is harmless.
	BeginCapture(slot int)

	// FrameReady returns true if a completed frame has not yet been taken.
	FrameReady() bool

	// TakeCompletedFrame returns the slot of the most recently completed
	// frame and false is there isn't one. The slot will not be written to
	// again until it is armed with BeginCapture().
	TakeCompletedFrame() (int, bool)

	// Completed is signalled, without blocking the decoder, every time a
	// frame is completed.
	Completed() <-chan struct{}

	// Run the decoder until the context is cancelled or the sample source is
	// exhausted.
	Run(ctx context.Context) error

	// Stats returns a snapshot of the decoder counters.
	Stats() Stats
}

// Stats is a snapshot of decoder counters.
type Stats struct {
	Completed    uint64
	ShortRows    uint64
	ShortFrames  uint64
	Missed       uint64
	TrailingRows uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("completed %d, short rows %d, short frames %d, missed %d, trailing rows %d",
		s.Completed, s.ShortRows, s.ShortFrames, s.Missed, s.TrailingRows)
}

const noSlot = -1

// handshake is the arming and completion logic common to all decoders.
type handshake struct {
	pool *frame.Pool

	armed     atomic.Int32
	completed atomic.Int32
	done      chan struct{}

	// the slot currently being captured into. only accessed by the decoder
	capturing int

	completedCt   atomic.Uint64
	shortRowCt    atomic.Uint64
	shortFrameCt  atomic.Uint64
	missedCt      atomic.Uint64
	trailingRowCt atomic.Uint64
}

func (h *handshake) init(pool *frame.Pool) {
	h.pool = pool
	h.armed.Store(noSlot)
	h.completed.Store(noSlot)
	h.done = make(chan struct{}, 1)
	h.capturing = noSlot
}

// BeginCapture implements the Decoder interface.
func (h *handshake) BeginCapture(slot int) {
	if slot < 0 || slot >= h.pool.Len() {
		return
	}
	h.armed.Store(int32(slot))
}

// FrameReady implements the Decoder interface.
func (h *handshake) FrameReady() bool {
	return h.completed.Load() != noSlot
}

// TakeCompletedFrame implements the Decoder interface.
func (h *handshake) TakeCompletedFrame() (int, bool) {
	s := h.completed.Swap(noSlot)
	return int(s), s != noSlot
}

// Completed implements the Decoder interface.
func (h *handshake) Completed() <-chan struct{} {
	return h.done
}

// Stats implements the Decoder interface.
func (h *handshake) Stats() Stats {
	return Stats{
		Completed:    h.completedCt.Load(),
		ShortRows:    h.shortRowCt.Load(),
		ShortFrames:  h.shortFrameCt.Load(),
		Missed:       h.missedCt.Load(),
		TrailingRows: h.trailingRowCt.Load(),
	}
}

// event updates the handshake in response to protocol events.
func (h *handshake) event(p *Protocol, ev Event) {
	if ev == 0 {
		return
	}

	if ev&EventShortRow != 0 {
		h.shortRowCt.Add(1)
	}
	if ev&EventShortFrame != 0 {
		h.shortFrameCt.Add(1)
	}
	if ev&EventTrailingRow != 0 {
		h.trailingRowCt.Add(1)
	}

	if ev&EventFrameComplete != 0 {
		// disarm the completed slot so that it is not overwritten by the next
		// frame. the slot might have been rearmed already in which case the
		// swap fails and the new target stands
		h.armed.CompareAndSwap(int32(h.capturing), noSlot)
		h.completed.Store(int32(h.capturing))
		h.completedCt.Add(1)
		h.capturing = noSlot
		select {
		case h.done <- struct{}{}:
		default:
		}
	}

	if ev&EventFrameSync != 0 {
		slot := int(h.armed.Load())
		if slot == noSlot {
			h.capturing = noSlot
			h.missedCt.Add(1)
			return
		}
		h.capturing = slot
		p.Start(h.pool.Slot(slot).Pix)
	}
}
