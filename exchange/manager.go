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
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/logger"
	"github.com/dmgdvi/dmgdvi/video/frame"
)

// Overlay implementations draw on a completed frame before it is published.
// Draw() is called in the capture context.
type Overlay interface {
	Draw(f *frame.Frame)
}

// Options for NewManager().
type Options struct {
	// blending is enabled from the start
	Blend bool

	// drawn on every frame before publication. can be nil
	Overlay Overlay

	// displayed until the first frame is completed. can be nil
	Splash *frame.Frame
}

// Stats is a snapshot of the exchange counters.
type Stats struct {
	Published  uint64
	Blended    uint64
	RearmWaits uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("published %d, blended %d, rearm waits %d", s.Published, s.Blended, s.RearmWaits)
}

const noSlot = -1

// Manager moves frames between the decoder and the output context.
type Manager struct {
	pool *frame.Pool
	dec  capture.Decoder

	// the slot that is safe to display and the slot the output context has
	// acquired
	display atomic.Int32
	hazard  atomic.Int32

	blend      atomic.Bool
	clearGhost atomic.Bool
	ghost      []byte

	overlay Overlay

	// a re-arm could not be made because the reader holds the only
	// candidate slot. released is signalled by Release() while waiting is
	// true
	pending  bool
	waiting  atomic.Bool
	released chan struct{}

	// the decoder counters at the previous publication
	prevDecoder capture.Stats

	published  atomic.Uint64
	blended    atomic.Uint64
	rearmWaits atomic.Uint64
}

// SplashMismatch is returned by NewManager() if the splash frame does not have
// the geometry of the pool.
const SplashMismatch = curated.Sentinel("exchange: splash: %v")

// NewManager creates a manager for the frames of the pool. The decoder is armed
// with the first slot.
func NewManager(pool *frame.Pool, dec capture.Decoder, opts Options) (*Manager, error) {
	m := &Manager{
		pool:     pool,
		dec:      dec,
		ghost:    make([]byte, pool.Spec().FrameBytes()),
		overlay:  opts.Overlay,
		released: make(chan struct{}, 1),
	}
	m.display.Store(noSlot)
	m.hazard.Store(noSlot)
	m.blend.Store(opts.Blend)

	// the splash is placed in the last slot because the first slot is the
	// first capture target
	if opts.Splash != nil {
		last := pool.Slot(pool.Len() - 1)
		if err := last.CopyFrom(opts.Splash); err != nil {
			return nil, SplashMismatch.Errorf(err)
		}
		m.display.Store(int32(pool.Len() - 1))
	}

	dec.BeginCapture(0)

	return m, nil
}

// SetBlendEnabled turns frame blending on or off. The ghost is cleared before
// the next frame is published when blending is turned off. Safe to call from
// any goroutine.
func (m *Manager) SetBlendEnabled(enabled bool) {
	if !enabled {
		m.clearGhost.Store(true)
	}
	m.blend.Store(enabled)
}

// BlendEnabled returns true if frame blending is enabled.
func (m *Manager) BlendEnabled() bool {
	return m.blend.Load()
}

// Display returns the slot index of the frame being displayed. Returns -1 if
// there is no frame to display.
func (m *Manager) Display() int {
	return int(m.display.Load())
}

// Stats returns a snapshot of the exchange counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Published:  m.published.Load(),
		Blended:    m.blended.Load(),
		RearmWaits: m.rearmWaits.Load(),
	}
}

// Acquire the display frame. Returns false if there is nothing to display.
// Release() must be called when the reader has finished with the frame. Must
// only be called from the output context.
func (m *Manager) Acquire() (*frame.Frame, bool) {
	for {
		d := m.display.Load()
		if d == noSlot {
			return nil, false
		}
		m.hazard.Store(d)

		// the display may have been published again between the load and the
		// hazard store. if so the hazard might have been missed by the
		// manager and the reader tries again
		if m.display.Load() == d {
			return m.pool.Slot(int(d)), true
		}
	}
}

// Release the frame returned by Acquire().
func (m *Manager) Release() {
	m.hazard.Store(noSlot)
	if m.waiting.Load() {
		select {
		case m.released <- struct{}{}:
		default:
		}
	}
}

// Service handles a completed frame if there is one and retries a pending
// re-arm. It does not block. Returns true if anything was done. Must only be
// called from the capture context.
func (m *Manager) Service() bool {
	done := false
	if m.pending {
		done = m.rearm()
	}

	slot, ok := m.dec.TakeCompletedFrame()
	if !ok {
		return done
	}

	m.publish(slot)
	return true
}

func (m *Manager) publish(slot int) {
	f := m.pool.Slot(slot)

	if m.clearGhost.Swap(false) {
		clear(m.ghost)
	}
	if m.blend.Load() {
		Blend(f.Pix, m.ghost)
		m.blended.Add(1)
	}

	if m.overlay != nil {
		m.overlay.Draw(f)
	}

	m.display.Store(int32(slot))
	m.published.Add(1)
	m.logDecoder()

	m.pending = true
	m.rearm()
}

// logDecoder logs changes to the fault counters of the decoder.
func (m *Manager) logDecoder() {
	st := m.dec.Stats()
	d := capture.Stats{
		ShortRows:   st.ShortRows - m.prevDecoder.ShortRows,
		ShortFrames: st.ShortFrames - m.prevDecoder.ShortFrames,
		Missed:      st.Missed - m.prevDecoder.Missed,
	}
	m.prevDecoder = st

	if d.ShortRows > 0 || d.ShortFrames > 0 {
		logger.Logf(logger.Allow, "capture", "discarded frames: %d short rows, %d short frames", d.ShortRows, d.ShortFrames)
	}
	if d.Missed > 0 {
		logger.Logf(logger.Allow, "capture", "missed %d frames", d.Missed)
	}
}

// rearm the decoder with a slot that is neither being displayed nor held by
// the reader.
func (m *Manager) rearm() bool {
	// waiting is set before the hazard is read. a Release() that is not seen
	// here will see the waiting flag and signal the released channel
	m.waiting.Store(true)

	n := m.pool.Len()
	d := int(m.display.Load())
	h := int(m.hazard.Load())

	for i := range n {
		s := (d + 1 + i) % n
		if s != d && s != h {
			m.dec.BeginCapture(s)
			m.pending = false
			m.waiting.Store(false)
			return true
		}
	}

	m.rearmWaits.Add(1)
	return false
}

// Run services the decoder until the context is cancelled. Must be run in the
// capture context.
func (m *Manager) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.dec.Completed():
		case <-m.released:
		}
		for m.Service() {
		}
	}
}

// Ghost returns the ghost buffer. The ghost must only be read in the capture
// context.
func (m *Manager) Ghost() []byte {
	return m.ghost
}
