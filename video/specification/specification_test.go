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

package specification_test

import (
	"testing"
	"time"

	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/test"
)

func TestOutputGeometry(t *testing.T) {
	dmg := specification.CaptureDMG

	o := specification.Output640x480
	test.ExpectEquality(t, o.OutputWords(), 320)
	test.ExpectEquality(t, o.Scanlines(), 160)
	test.ExpectEquality(t, o.VerticalOffset(dmg), 8)

	o = specification.Output800x600
	test.ExpectEquality(t, o.OutputWords(), 400)
	test.ExpectEquality(t, o.Scanlines(), 150)
	test.ExpectEquality(t, o.VerticalOffset(dmg), 3)

	o = specification.Output640x480x2
	test.ExpectEquality(t, o.OutputWords(), 320)
	test.ExpectEquality(t, o.Scanlines(), 240)
	test.ExpectEquality(t, o.VerticalOffset(dmg), 48)

	test.ExpectEquality(t, dmg.RowBytes(), 40)
	test.ExpectEquality(t, dmg.FrameBytes(), 5760)
}

func TestScanlineInterval(t *testing.T) {
	o := specification.Output640x480
	d := o.ScanlineInterval()

	// three lines of a 525 line raster at 60Hz is a little under 100us
	test.ExpectSuccess(t, d > 90*time.Microsecond && d < 100*time.Microsecond)

	o.RefreshRate = 0
	test.ExpectEquality(t, o.ScanlineInterval(), time.Duration(0))
}

func TestSearchOutput(t *testing.T) {
	o, err := specification.SearchOutput("800X600")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, o.ID, "800x600")

	_, err = specification.SearchOutput("1920x1080")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, specification.UnknownOutput.In(err))
}
