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

// Package splash builds the frame shown on the output before the first
// capture completes. The frame is either the built-in checkerboard or an
// image file scaled to the capture geometry and mapped to the four shades of
// a palette.
package splash

import (
	"image"
	"os"

	// image formats accepted by Load()
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/synthetic"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

// Sentinel errors returned by the splash package.
const (
	SplashOpen   = curated.Sentinel("splash: %v")
	SplashDecode = curated.Sentinel("splash: %s: %v")
	SplashEmpty  = curated.Sentinel("splash: image has no pixels")
)

// the size of the squares in the built-in splash
const checkerSize = 8

// Default returns the built-in splash frame.
func Default(spec specification.Capture) (*frame.Frame, error) {
	f, err := frame.NewFrame(spec)
	if err != nil {
		return nil, err
	}
	synthetic.Checkerboard(checkerSize)(f, 0)
	return f, nil
}

// Load decodes the image file and returns it as a splash frame.
func Load(path string, pal *palette.Palette, spec specification.Capture) (*frame.Frame, error) {
	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img, pal, spec)
}

// Decode the image file. The file can be a GIF, JPEG, PNG or BMP.
func Decode(path string) (image.Image, error) {
	fl, err := os.Open(path)
	if err != nil {
		return nil, SplashOpen.Errorf(err)
	}
	defer fl.Close()

	img, _, err := image.Decode(fl)
	if err != nil {
		return nil, SplashDecode.Errorf(path, err)
	}

	return img, nil
}

// FromImage scales the image to fit the capture geometry, keeping the aspect
// ratio, and maps every pixel to the nearest colour of the palette. Space not
// covered by the image is filled with the lightest shade.
func FromImage(img image.Image, pal *palette.Palette, spec specification.Capture) (*frame.Frame, error) {
	src := img.Bounds()
	if src.Empty() {
		return nil, SplashEmpty.Errorf()
	}

	f, err := frame.NewFrame(spec)
	if err != nil {
		return nil, err
	}

	cp := pal.ColorPalette()
	dst := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), cp)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(cp[frame.Lightest]), image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, fit(src, dst.Bounds()), img, src, draw.Over, nil)

	for y := range f.Height {
		for x := range f.Width {
			f.SetShade(x, y, frame.Shade(dst.ColorIndexAt(x, y)))
		}
	}

	return f, nil
}

// fit returns the largest rectangle with the aspect ratio of src that fits in
// dst, centered.
func fit(src, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()

	w, h := dw, sh*dw/sw
	if h > dh {
		w, h = sw*dh/sh, dh
	}
	w = max(w, 1)
	h = max(h, 1)

	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Image returns the frame as a paletted image using the colours of the
// palette.
func Image(f *frame.Frame, pal *palette.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), pal.ColorPalette())
	for y := range f.Height {
		for x := range f.Width {
			img.SetColorIndex(x, y, uint8(f.Shade(x, y)))
		}
	}
	return img
}
