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
	"strings"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

// Lines is one sample of the bus.
type Lines uint8

// List of bus lines.
const (
	FrameSync Lines = 1 << iota
	RowSync
	PixelClock
	Data0
	Data1
)

// AllLines is a mask of all valid lines.
const AllLines = FrameSync | RowSync | PixelClock | Data0 | Data1

func (l Lines) String() string {
	s := strings.Builder{}
	for _, n := range []struct {
		line Lines
		name string
	}{
		{FrameSync, "FS"}, {RowSync, "RS"}, {PixelClock, "CLK"}, {Data0, "D0"}, {Data1, "D1"},
	} {
		if l&n.line != 0 {
			if s.Len() > 0 {
				s.WriteRune('|')
			}
			s.WriteString(n.name)
		}
	}
	if s.Len() == 0 {
		return "-"
	}
	return s.String()
}

// Shade returns the shade on the data lines. If swapped is true then Data0 is
// the most significant bit.
func (l Lines) Shade(swapped bool) frame.Shade {
	d0 := frame.Shade(l>>3) & 0x01
	d1 := frame.Shade(l>>4) & 0x01
	if swapped {
		return d0<<1 | d1
	}
	return d1<<1 | d0
}

// WithShade returns the lines with the data lines set to the shade. The
// inverse of Shade().
func (l Lines) WithShade(s frame.Shade, swapped bool) Lines {
	l &^= Data0 | Data1
	hi := Lines(s>>1) & 0x01
	lo := Lines(s) & 0x01
	if swapped {
		hi, lo = lo, hi
	}
	return l | lo<<3 | hi<<4
}

// Edge is the polarity of a clock edge.
type Edge int

// List of valid Edge values.
const (
	Falling Edge = iota
	Rising
)

func (e Edge) String() string {
	if e == Rising {
		return "rising"
	}
	return "falling"
}

// Config for the capture decoders.
type Config struct {
	Spec specification.Capture

	// the pixel clock edge on which the data lines are sampled
	Strobe Edge

	// the data lines are wired in reverse order
	SwapData bool
}

// DefaultConfig is the configuration for the DMG bus. The pixel clock is
// sampled on the falling edge and the data lines arrive crossed.
var DefaultConfig = Config{
	Spec:     specification.CaptureDMG,
	Strobe:   Falling,
	SwapData: true,
}

// Configuration faults.
const (
	BadGeometry  = curated.Sentinel("capture: geometry %dx%d is not supported")
	PoolMismatch = curated.Sentinel("capture: pool of %dx%d frames does not match capture of %dx%d")
)

func (cfg Config) validate() error {
	if cfg.Spec.Width <= 0 || cfg.Spec.Width%frame.PixelsPerByte != 0 || cfg.Spec.Height <= 0 {
		return BadGeometry.Errorf(cfg.Spec.Width, cfg.Spec.Height)
	}
	return nil
}
