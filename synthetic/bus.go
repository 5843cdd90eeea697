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

package synthetic

import (
	"io"

	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/limiter"
	"github.com/dmgdvi/dmgdvi/video/frame"
)

// Timing of the generated bus. Values are in samples.
type Timing struct {
	// width of the frame-sync and row-sync pulses
	SyncSamples int

	// idle samples between the row-sync pulse and the first pixel
	PorchSamples int

	// number of row-sync pulses without pixels after the last row of a
	// frame
	BlankRows int
}

// DefaultTiming has the ten blank rows of the DMG vertical blank.
var DefaultTiming = Timing{
	SyncSamples:  2,
	PorchSamples: 2,
	BlankRows:    10,
}

// Fault is a defect injected into one frame of the bus.
type Fault int

// List of valid Fault values.
const (
	NoFault Fault = iota

	// the middle row of the frame is missing its last pixel
	ShortRow

	// the last row of the frame is missing and there are no blank rows
	ShortFrame
)

// Faults describes how often faults are injected. A value of zero means the
// fault is never injected.
type Faults struct {
	ShortRowEvery   int
	ShortFrameEvery int
}

// AppendFrame appends the samples for one frame of the bus to dst.
func AppendFrame(dst []byte, f *frame.Frame, cfg capture.Config, timing Timing, fault Fault) []byte {
	// the clock rests at the strobe level. the first level of each pixel is
	// the opposite so that the second sample is the strobe edge
	idle := capture.Lines(0)
	pre := capture.PixelClock
	if cfg.Strobe == capture.Rising {
		idle = capture.PixelClock
		pre = 0
	}
	post := idle

	pulse := func(l capture.Lines) {
		for range timing.SyncSamples {
			dst = append(dst, byte(l|idle))
		}
		for range max(timing.PorchSamples, 1) {
			dst = append(dst, byte(idle))
		}
	}

	pulse(capture.FrameSync)

	rows := f.Height
	if fault == ShortFrame {
		rows--
	}

	for y := range rows {
		pulse(capture.RowSync)

		cols := f.Width
		if fault == ShortRow && y == f.Height/2 {
			cols--
		}

		for x := range cols {
			d := capture.Lines(0).WithShade(f.Shade(x, y), cfg.SwapData)
			dst = append(dst, byte(pre|d), byte(post|d))
		}
		dst = append(dst, byte(idle))
	}

	if fault != ShortFrame {
		for range timing.BlankRows {
			pulse(capture.RowSync)
		}
	}

	return dst
}

// Bus is an io.Reader of bus samples generated from a pattern.
type Bus struct {
	cfg     capture.Config
	timing  Timing
	faults  Faults
	pattern Pattern
	frame   *frame.Frame

	lmtr *limiter.Limiter

	// number of frames generated so far and the number of frames after
	// which the bus reports io.EOF. no limit if zero
	frameNum int
	limit    int

	pending []byte
	pos     int
}

// NewBus creates a generator for the pattern.
func NewBus(cfg capture.Config, pattern Pattern) (*Bus, error) {
	f, err := frame.NewFrame(cfg.Spec)
	if err != nil {
		return nil, err
	}
	return &Bus{
		cfg:     cfg,
		timing:  DefaultTiming,
		pattern: pattern,
		frame:   f,
	}, nil
}

// SetTiming changes the timing of frames generated after the call.
func (b *Bus) SetTiming(t Timing) {
	b.timing = t
}

// SetFaults changes how often faults are injected.
func (b *Bus) SetFaults(f Faults) {
	b.faults = f
}

// SetLimit sets the number of frames after which the bus is exhausted. Zero
// means the bus is never exhausted.
func (b *Bus) SetLimit(frames int) {
	b.limit = frames
}

// SetLimiter paces the generation of frames. A nil limiter generates frames
// as quickly as they are read.
func (b *Bus) SetLimiter(lmtr *limiter.Limiter) {
	b.lmtr = lmtr
}

// FrameNum returns the number of frames generated so far.
func (b *Bus) FrameNum() int {
	return b.frameNum
}

// Current returns the frame most recently painted by the pattern.
func (b *Bus) Current() *frame.Frame {
	return b.frame
}

func (b *Bus) faultFor(n int) Fault {
	// frame numbers count from one for the purpose of fault injection so
	// that the first frame is never faulty
	n++
	if b.faults.ShortFrameEvery > 0 && n%b.faults.ShortFrameEvery == 0 {
		return ShortFrame
	}
	if b.faults.ShortRowEvery > 0 && n%b.faults.ShortRowEvery == 0 {
		return ShortRow
	}
	return NoFault
}

func (b *Bus) next() {
	if b.lmtr != nil {
		b.lmtr.CheckTick()
	}
	b.pattern(b.frame, b.frameNum)
	b.pending = AppendFrame(b.pending[:0], b.frame, b.cfg, b.timing, b.faultFor(b.frameNum))
	b.pos = 0
	b.frameNum++
}

// Read implements the io.Reader interface. A single call to Read() never
// returns samples from more than one frame.
func (b *Bus) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if b.pos >= len(b.pending) {
		if b.limit > 0 && b.frameNum >= b.limit {
			return 0, io.EOF
		}
		b.next()
	}

	n := copy(p, b.pending[b.pos:])
	b.pos += n
	return n, nil
}
