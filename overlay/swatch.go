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

package overlay

import (
	"sync/atomic"

	"github.com/dmgdvi/dmgdvi/video/frame"
)

// DefaultDuration is the number of frames the swatch is shown for by Show()
// when the duration is zero or less.
const DefaultDuration = 120

// geometry of the swatch. squares are byte aligned so that they can be
// drawn with packed bytes
const (
	originX    = 4
	originY    = 4
	squareSize = 8
	outline    = 1
)

// Swatch shows the four shades of the palette. It implements the Overlay
// interface of the exchange package.
type Swatch struct {
	remaining atomic.Int32
}

// NewSwatch is the preferred method of initialisation for the Swatch type.
func NewSwatch() *Swatch {
	return &Swatch{}
}

// Show the swatch for the specified number of frames. Showing the swatch
// while it is already visible restarts the count.
func (sw *Swatch) Show(frames int) {
	if frames <= 0 {
		frames = DefaultDuration
	}
	sw.remaining.Store(int32(frames))
}

// Hide the swatch immediately.
func (sw *Swatch) Hide() {
	sw.remaining.Store(0)
}

// Visible returns true if the swatch will be drawn on the next frame.
func (sw *Swatch) Visible() bool {
	return sw.remaining.Load() > 0
}

// Draw the swatch onto the frame if it is visible. Frames that are too small
// for the swatch are left untouched but still count towards the duration.
func (sw *Swatch) Draw(f *frame.Frame) {
	for {
		r := sw.remaining.Load()
		if r <= 0 {
			return
		}
		if sw.remaining.CompareAndSwap(r, r-1) {
			break
		}
	}

	w := frame.NumShades * squareSize
	if originX+w+outline > f.Width || originY+squareSize+outline > f.Height {
		return
	}

	// outline in the darkest shade so that the lightest square is visible
	for y := originY - outline; y < originY+squareSize+outline; y++ {
		for x := originX - outline; x < originX+w+outline; x++ {
			f.SetShade(x, y, frame.Darkest)
		}
	}

	const pixelsPerByte = 4
	for y := originY; y < originY+squareSize; y++ {
		row := f.Row(y)
		for s := range frame.NumShades {
			b := (originX + s*squareSize) / pixelsPerByte
			for i := range squareSize / pixelsPerByte {
				row[b+i] = frame.Repeat(frame.Shade(s))
			}
		}
	}
}
