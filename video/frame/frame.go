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
	"bytes"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

// Shade is a two bit index into a four entry palette.
type Shade uint8

// List of named shades.
const (
	Lightest Shade = iota
	Light
	Dark
	Darkest
)

// NumShades is the number of distinct shades.
const NumShades = 4

// PixelsPerByte is the number of shades packed into each byte of a frame.
const PixelsPerByte = 4

// Sentinel errors
const (
	BadWidth  = curated.Sentinel("frame: width (%d) is not a multiple of four")
	BadHeight = curated.Sentinel("frame: height (%d) is not positive")
	BadCopy   = curated.Sentinel("frame: cannot copy %dx%d frame to %dx%d frame")
)

// Frame is a packed frame of shades.
type Frame struct {
	Width  int
	Height int

	// Pix is the packed pixel data. length is Width * Height / 4
	Pix []byte

	stride int
}

// NewFrame creates a frame with the geometry of the capture specification.
// All pixels are initialised to the Lightest shade.
func NewFrame(spec specification.Capture) (*Frame, error) {
	if spec.Width <= 0 || spec.Width%PixelsPerByte != 0 {
		return nil, BadWidth.Errorf(spec.Width)
	}
	if spec.Height <= 0 {
		return nil, BadHeight.Errorf(spec.Height)
	}
	return &Frame{
		Width:  spec.Width,
		Height: spec.Height,
		Pix:    make([]byte, spec.FrameBytes()),
		stride: spec.RowBytes(),
	}, nil
}

// Stride is the number of bytes in each row.
func (f *Frame) Stride() int {
	return f.stride
}

// Row returns the packed bytes of row y. The returned slice is part of the
// frame and is not a copy.
func (f *Frame) Row(y int) []byte {
	i := y * f.stride
	return f.Pix[i : i+f.stride : i+f.stride]
}

// Shade returns the shade of the pixel at x, y. Coordinates outside the frame
// return Lightest.
func (f *Frame) Shade(x, y int) Shade {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return Lightest
	}
	b := f.Pix[y*f.stride+x>>2]
	return Shade(b>>((3-uint(x&3))*2)) & 0x03
}

// SetShade sets the shade of the pixel at x, y. Coordinates outside the frame
// are ignored.
func (f *Frame) SetShade(x, y int, s Shade) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	i := y*f.stride + x>>2
	shift := (3 - uint(x&3)) * 2
	mask := byte(0x03 << shift)
	f.Pix[i] = (f.Pix[i] &^ mask) | (byte(s&0x03) << shift)
}

// Fill sets every pixel in the frame to the shade.
func (f *Frame) Fill(s Shade) {
	b := Repeat(s)
	for i := range f.Pix {
		f.Pix[i] = b
	}
}

// FillRow sets every pixel in row y to the shade.
func (f *Frame) FillRow(y int, s Shade) {
	b := Repeat(s)
	r := f.Row(y)
	for i := range r {
		r[i] = b
	}
}

// CopyFrom copies the content of another frame of the same geometry.
func (f *Frame) CopyFrom(g *Frame) error {
	if f.Width != g.Width || f.Height != g.Height {
		return BadCopy.Errorf(g.Width, g.Height, f.Width, f.Height)
	}
	copy(f.Pix, g.Pix)
	return nil
}

// Equal returns true if both frames have the same geometry and content.
func (f *Frame) Equal(g *Frame) bool {
	if f.Width != g.Width || f.Height != g.Height {
		return false
	}
	return bytes.Equal(f.Pix, g.Pix)
}

// Repeat returns a byte with all four pixels set to the shade.
func Repeat(s Shade) byte {
	s &= 0x03
	return byte(s<<6 | s<<4 | s<<2 | s)
}

// Pack returns the byte for four consecutive pixels, leftmost first.
func Pack(a, b, c, d Shade) byte {
	return byte((a&3)<<6 | (b&3)<<4 | (c&3)<<2 | (d & 3))
}

// Unpack returns the shade at position i (0 to 3, leftmost first) of a packed
// byte.
func Unpack(b byte, i int) Shade {
	return Shade(b>>((3-uint(i&3))*2)) & 0x03
}
