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
	"slices"
	"strings"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/frame"
)

// Pattern paints frame number n of a test pattern into f.
type Pattern func(f *frame.Frame, n int)

// Solid fills the frame with a single shade.
func Solid(s frame.Shade) Pattern {
	return func(f *frame.Frame, _ int) {
		f.Fill(s)
	}
}

// AlternatingRows paints even rows with shade a and odd rows with shade b.
func AlternatingRows(a, b frame.Shade) Pattern {
	return func(f *frame.Frame, _ int) {
		for y := range f.Height {
			if y&1 == 0 {
				f.FillRow(y, a)
			} else {
				f.FillRow(y, b)
			}
		}
	}
}

// Bars paints four vertical bars, lightest on the left.
func Bars() Pattern {
	return func(f *frame.Frame, _ int) {
		w := f.Width / frame.NumShades
		for y := range f.Height {
			for x := range f.Width {
				s := min(x/w, frame.NumShades-1)
				f.SetShade(x, y, frame.Shade(s))
			}
		}
	}
}

// Checkerboard paints alternating squares of the lightest and darkest shades.
// The board is inverted every second.
func Checkerboard(size int) Pattern {
	size = max(size, 1)
	return func(f *frame.Frame, n int) {
		invert := (n/60)&1 == 1
		for y := range f.Height {
			for x := range f.Width {
				dark := ((x/size)+(y/size))&1 == 1
				if dark != invert {
					f.SetShade(x, y, frame.Darkest)
				} else {
					f.SetShade(x, y, frame.Lightest)
				}
			}
		}
	}
}

// Scroll paints diagonal stripes of all four shades that move one pixel to
// the right every frame.
func Scroll() Pattern {
	return func(f *frame.Frame, n int) {
		for y := range f.Height {
			for x := range f.Width {
				f.SetShade(x, y, frame.Shade(((x+y-n)/8)&0x03))
			}
		}
	}
}

// Bounce paints a darkest square that moves diagonally and bounces off the
// edges of the frame. The square leaves a ghost when blending is enabled.
func Bounce(size int) Pattern {
	size = max(size, 1)
	return func(f *frame.Frame, n int) {
		f.Fill(frame.Lightest)

		x := pingpong(n*2, f.Width-size)
		y := pingpong(n, f.Height-size)
		for j := range size {
			for i := range size {
				f.SetShade(x+i, y+j, frame.Darkest)
			}
		}
	}
}

// pingpong moves the position back and forth between zero and limit.
func pingpong(p int, limit int) int {
	if limit <= 0 {
		return 0
	}
	p %= limit * 2
	if p > limit {
		return limit*2 - p
	}
	return p
}

// Patterns is the list of named patterns available from the command line.
var Patterns = map[string]Pattern{
	"solid":        Solid(frame.Light),
	"rows":         AlternatingRows(frame.Lightest, frame.Darkest),
	"bars":         Bars(),
	"checkerboard": Checkerboard(8),
	"scroll":       Scroll(),
	"bounce":       Bounce(16),
}

// UnknownPattern is returned by SearchPattern.
const UnknownPattern = curated.Sentinel("synthetic: unknown pattern (%s)")

// PatternNames returns the names of the patterns in alphabetical order.
func PatternNames() []string {
	n := make([]string, 0, len(Patterns))
	for k := range Patterns {
		n = append(n, k)
	}
	slices.Sort(n)
	return n
}

// SearchPattern returns the named pattern. The search is case insensitive.
func SearchPattern(name string) (Pattern, error) {
	if p, ok := Patterns[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, UnknownPattern.Errorf(name)
}
