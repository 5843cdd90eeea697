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

// Package specification contains the definitions of the captured source
// geometry and of the DVI output modes supported by dmgdvi.
//
// An output mode fixes the horizontal scale factor, the vertical repeat and
// the number of symbols packed into each serializer word. From these the
// output word count, the number of source scanlines requested per frame and
// the vertical centering offset are derived.
package specification

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmgdvi/dmgdvi/curated"
)

// Capture is the geometry of the captured source.
type Capture struct {
	ID     string
	Width  int
	Height int

	// frames per second of the source
	RefreshRate float32
}

// CaptureDMG is the native pixel bus of the original handheld.
var CaptureDMG = Capture{
	ID:          "DMG",
	Width:       160,
	Height:      144,
	RefreshRate: 59.73,
}

// RowBytes is the number of packed bytes in each row of the capture.
func (c Capture) RowBytes() int {
	return c.Width / 4
}

// FrameBytes is the number of packed bytes in a complete frame.
func (c Capture) FrameBytes() int {
	return c.Width * c.Height / 4
}

// Output defines a DVI output mode.
type Output struct {
	ID string

	// the visible portion of the DVI raster in pixels and lines
	ActivePixels int
	ActiveLines  int

	// total lines including vertical blanking. used to calculate the
	// interval between scanline requests
	TotalLines int

	// horizontal scale factor applied to every captured pixel
	Scale int

	// number of DVI lines each scanline request covers
	VerticalRepeat int

	// number of ten bit symbols packed into one serializer word
	SymbolsPerWord int

	RefreshRate float32
}

// OutputWords is the number of serializer words per channel per scanline.
func (o Output) OutputWords() int {
	return o.ActivePixels / o.SymbolsPerWord
}

// Scanlines is the number of scanline requests per output frame.
func (o Output) Scanlines() int {
	return o.ActiveLines / o.VerticalRepeat
}

// VerticalOffset is the scanline request index at which row zero of the
// capture appears.
func (o Output) VerticalOffset(c Capture) int {
	return (o.Scanlines() - c.Height) / 2
}

// ScanlineInterval is the time between successive scanline requests.
func (o Output) ScanlineInterval() time.Duration {
	if o.RefreshRate <= 0 || o.TotalLines <= 0 {
		return 0
	}
	line := float64(time.Second) / float64(o.RefreshRate) / float64(o.TotalLines)
	return time.Duration(line * float64(o.VerticalRepeat))
}

func (o Output) String() string {
	return fmt.Sprintf("%s (x%d/x%d)", o.ID, o.Scale, o.VerticalRepeat)
}

// The output modes. The 640x480 mode fills the whole raster with no
// horizontal border. The 800x600 mode centres the same image with border
// columns either side.
var (
	Output640x480 = Output{
		ID:             "640x480",
		ActivePixels:   640,
		ActiveLines:    480,
		TotalLines:     525,
		Scale:          4,
		VerticalRepeat: 3,
		SymbolsPerWord: 2,
		RefreshRate:    60.0,
	}

	Output800x600 = Output{
		ID:             "800x600",
		ActivePixels:   800,
		ActiveLines:    600,
		TotalLines:     628,
		Scale:          4,
		VerticalRepeat: 4,
		SymbolsPerWord: 2,
		RefreshRate:    60.0,
	}

	Output640x480x2 = Output{
		ID:             "640x480x2",
		ActivePixels:   640,
		ActiveLines:    480,
		TotalLines:     525,
		Scale:          2,
		VerticalRepeat: 2,
		SymbolsPerWord: 2,
		RefreshRate:    60.0,
	}
)

// OutputList is the list of output modes that can be selected by ID.
var OutputList = []Output{Output640x480, Output800x600, Output640x480x2}

// UnknownOutput is returned by SearchOutput when no mode matches the ID.
const UnknownOutput = curated.Sentinel("specification: unknown output mode (%s)")

// SearchOutput returns the output mode with the specified ID. The search is
// case insensitive.
func SearchOutput(id string) (Output, error) {
	for _, o := range OutputList {
		if strings.EqualFold(o.ID, id) {
			return o, nil
		}
	}
	return Output{}, UnknownOutput.Errorf(id)
}
