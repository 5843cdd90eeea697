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
	"image"
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/dmgdvi/dmgdvi/curated"
)

// NoColors is returned by FromImage if the image produces no colours.
const NoColors = curated.Sentinel("palette: no colours in image")

// FromImage creates a palette from the four most representative colours in
// the image. The colours are sorted by luminance, lightest first. If the
// image has fewer than four distinct colours the darkest colour is repeated.
func FromImage(name string, img image.Image) (Palette, error) {
	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, NumColors), img)
	if len(cp) == 0 {
		return Palette{}, NoColors.Errorf()
	}

	cols := make([]RGB, 0, NumColors)
	for _, c := range cp {
		cols = append(cols, FromColor(c))
	}

	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Luminance() > cols[j].Luminance()
	})

	p := Palette{Name: name}
	for i := range p.Colors {
		if i < len(cols) {
			p.Colors[i] = cols[i]
		} else {
			p.Colors[i] = cols[len(cols)-1]
		}
	}

	return p, nil
}
