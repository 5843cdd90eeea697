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

package splash_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmgdvi/dmgdvi/splash"
	"github.com/dmgdvi/dmgdvi/test"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

func uniform(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDefault(t *testing.T) {
	f, err := splash.Default(specification.CaptureDMG)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Shade(0, 0), frame.Lightest)
	test.ExpectEquality(t, f.Shade(8, 0), frame.Darkest)
	test.ExpectEquality(t, f.Shade(8, 8), frame.Lightest)
}

func TestFromImage(t *testing.T) {
	pal := &palette.Schemes[0]

	// a square image is pillarboxed
	f, err := splash.FromImage(uniform(16, 16, color.Black), pal, specification.CaptureDMG)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Shade(0, 0), frame.Lightest)
	test.ExpectEquality(t, f.Shade(10, 0), frame.Darkest)
	test.ExpectEquality(t, f.Shade(80, 72), frame.Darkest)
	test.ExpectEquality(t, f.Shade(149, 143), frame.Darkest)
	test.ExpectEquality(t, f.Shade(159, 143), frame.Lightest)

	_, err = splash.FromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)), pal, specification.CaptureDMG)
	test.ExpectSuccess(t, splash.SplashEmpty.In(err))

	img := splash.Image(f, pal)
	test.ExpectEquality(t, img.ColorIndexAt(80, 72), uint8(frame.Darkest))
	test.ExpectEquality(t, img.ColorIndexAt(0, 0), uint8(frame.Lightest))
}

func TestLoad(t *testing.T) {
	pal := &palette.Schemes[0]
	dir := t.TempDir()

	// a wide image is letterboxed
	fn := filepath.Join(dir, "splash.png")
	fl, err := os.Create(fn)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, png.Encode(fl, uniform(320, 144, color.RGBA{R: 0x4e, G: 0x4c, B: 0x4e, A: 0xff})))
	test.DemandSuccess(t, fl.Close())

	f, err := splash.Load(fn, pal, specification.CaptureDMG)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f.Shade(80, 0), frame.Lightest)
	test.ExpectEquality(t, f.Shade(80, 72), frame.Shade(2))
	test.ExpectEquality(t, f.Shade(0, 72), frame.Shade(2))
	test.ExpectEquality(t, f.Shade(80, 143), frame.Lightest)

	_, err = splash.Load(filepath.Join(dir, "missing.png"), pal, specification.CaptureDMG)
	test.ExpectSuccess(t, splash.SplashOpen.In(err))

	bad := filepath.Join(dir, "bad.png")
	test.DemandSuccess(t, os.WriteFile(bad, []byte("not an image"), 0o600))
	_, err = splash.Load(bad, pal, specification.CaptureDMG)
	test.ExpectSuccess(t, splash.SplashDecode.In(err))
}
