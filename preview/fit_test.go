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

package preview

import (
	"testing"

	"github.com/dmgdvi/dmgdvi/test"
)

func TestFit(t *testing.T) {
	expect := func(ww, wh, pw, ph, x, y, w, h int) {
		t.Helper()
		gx, gy, gw, gh := fit(ww, wh, pw, ph)
		test.ExpectEquality(t, gx, x)
		test.ExpectEquality(t, gy, y)
		test.ExpectEquality(t, gw, w)
		test.ExpectEquality(t, gh, h)
	}

	// exact fit
	expect(640, 480, 640, 480, 0, 0, 640, 480)

	// wide window is pillarboxed
	expect(1280, 480, 640, 480, 320, 0, 640, 480)

	// tall window is letterboxed
	expect(640, 960, 640, 480, 0, 240, 640, 480)

	// no picture
	expect(800, 600, 0, 0, 0, 0, 800, 600)
}
