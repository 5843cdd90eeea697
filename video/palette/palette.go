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

package palette

import (
	"fmt"
	"image/color"
)

// RGB is a 24 bit colour in the form 0xRRGGBB.
type RGB uint32

// Red returns the red channel value.
func (c RGB) Red() uint8 {
	return uint8(c >> 16)
}

// Green returns the green channel value.
func (c RGB) Green() uint8 {
	return uint8(c >> 8)
}

// Blue returns the blue channel value.
func (c RGB) Blue() uint8 {
	return uint8(c)
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 255}.RGBA()
}

// Luminance returns the perceived brightness of the colour in the range 0 to
// 255.
func (c RGB) Luminance() float64 {
	return 0.299*float64(c.Red()) + 0.587*float64(c.Green()) + 0.114*float64(c.Blue())
}

func (c RGB) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// FromColor converts any color.Color to RGB. Alpha is ignored.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB((r>>8)<<16 | (g>>8)<<8 | b>>8)
}

// NumColors is the number of entries in a palette.
const NumColors = 4

// BorderIndex is the palette entry used for border pixels.
const BorderIndex = 3

// Palette is an ordered set of four colours, lightest first.
type Palette struct {
	Name   string
	Colors [NumColors]RGB
}

func (p *Palette) String() string {
	return fmt.Sprintf("%s %v", p.Name, p.Colors)
}

// Border returns the colour used for border pixels.
func (p *Palette) Border() RGB {
	return p.Colors[BorderIndex]
}

// Nearest returns the index of the palette entry closest to the colour.
func (p *Palette) Nearest(c color.Color) int {
	q := FromColor(c)
	best := 0
	bestDist := -1
	for i, e := range p.Colors {
		dr := int(e.Red()) - int(q.Red())
		dg := int(e.Green()) - int(q.Green())
		db := int(e.Blue()) - int(q.Blue())
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ColorPalette returns the palette as a color.Palette, suitable for use with
// an image.Paletted.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, NumColors)
	for i, c := range p.Colors {
		cp[i] = color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 255}
	}
	return cp
}
