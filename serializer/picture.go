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

package serializer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// Picture faults.
const (
	NoPicture     = curated.Sentinel("picture: no frame to save")
	PictureExists = curated.Sentinel("picture: image file (%s) already exists")
	PictureSave   = curated.Sentinel("picture: %v")
)

// Picture is a Sink that decodes the symbols back to RGB pixels, as a DVI
// receiver would see them.
type Picture struct {
	out    specification.Output
	width  int
	height int

	// the image being written to until EndFrame() is called
	curr    *image.RGBA
	currNum int

	// last complete frame. critical section because Borrow() and Save() can
	// be called from any goroutine
	crit    sync.Mutex
	last    *image.RGBA
	lastNum int
}

// NewPicture creates a Picture for the output mode. The image has one pixel
// for every symbol and one line for every DVI line.
func NewPicture(out specification.Output) *Picture {
	pic := &Picture{
		out:    out,
		width:  out.OutputWords() * out.SymbolsPerWord,
		height: out.Scanlines() * out.VerticalRepeat,
	}
	pic.curr = image.NewRGBA(image.Rect(0, 0, pic.width, pic.height))
	return pic
}

// BeginFrame implements the Sink interface.
func (pic *Picture) BeginFrame(frameNum int) {
	pic.currNum = frameNum
}

// offset of each channel in an RGBA pixel
var channelOffset = [tmds.NumChannels]int{
	tmds.Blue:  2,
	tmds.Green: 1,
	tmds.Red:   0,
}

// Scanline implements the Sink interface.
func (pic *Picture) Scanline(row int, sl *tmds.Scanline) {
	y := row * pic.out.VerticalRepeat
	if y < 0 || y >= pic.height {
		return
	}

	line := pic.curr.Pix[y*pic.curr.Stride : y*pic.curr.Stride+pic.width*4]
	spw := pic.out.SymbolsPerWord

	for ch, words := range sl.Channels {
		o := channelOffset[ch]
		x := 0
		for _, w := range words {
			for k := range spw {
				if x >= pic.width {
					break
				}
				s := tmds.Symbol(w>>(k*tmds.SymbolBits)) & tmds.SymbolMask
				line[x*4+o] = tmds.Decode(s)
				x++
			}
		}
	}
	for x := range pic.width {
		line[x*4+3] = 0xff
	}

	// repeated lines
	for r := 1; r < pic.out.VerticalRepeat && y+r < pic.height; r++ {
		copy(pic.curr.Pix[(y+r)*pic.curr.Stride:], line)
	}
}

// EndFrame implements the Sink interface.
func (pic *Picture) EndFrame() error {
	pic.crit.Lock()
	defer pic.crit.Unlock()

	if pic.last == nil {
		pic.last = image.NewRGBA(pic.curr.Rect)
	}
	pic.last, pic.curr = pic.curr, pic.last
	pic.lastNum = pic.currNum
	return nil
}

// Borrow the last complete frame. The image must not be retained after the
// function returns. The image is nil if there is no complete frame yet.
func (pic *Picture) Borrow(f func(img *image.RGBA, frameNum int)) {
	pic.crit.Lock()
	defer pic.crit.Unlock()
	f(pic.last, pic.lastNum)
}

// Save the last complete frame as a PNG file. The name of the file is the
// base name followed by the frame number. Existing files are not
// overwritten. Returns the name of the file.
func (pic *Picture) Save(fileNameBase string) (string, error) {
	pic.crit.Lock()
	defer pic.crit.Unlock()

	if pic.last == nil {
		return "", NoPicture.Errorf()
	}

	name := fmt.Sprintf("%s_%d.png", fileNameBase, pic.lastNum)

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", PictureExists.Errorf(name)
		}
		return "", PictureSave.Errorf(err)
	}
	defer f.Close()

	if err := png.Encode(f, pic.last); err != nil {
		return "", PictureSave.Errorf(err)
	}

	return name, nil
}
