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

package prefs_test

import (
	"testing"

	"github.com/dmgdvi/dmgdvi/prefs"
	"github.com/dmgdvi/dmgdvi/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("video.blend::false")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "video.blend::false")

	// surrounding space is removed
	prefs.PushCommandLineStack("   video.blend:: false ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "video.blend::false")

	// remaining entries are sorted
	prefs.PushCommandLineStack("video.blend::false; palette.index::4")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "palette.index::4; video.blend::false")

	// invalid entries are ignored
	prefs.PushCommandLineStack("video.blend")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	prefs.PushCommandLineStack("video.blend;palette.index::4")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "palette.index::4")

	// a taken value is no longer in the group
	prefs.PushCommandLineStack("video.blend::false;palette_index")
	ok, _ := prefs.GetCommandLinePref("palette_index")
	test.ExpectFailure(t, ok)
	ok, v := prefs.GetCommandLinePref("video.blend")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "false")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("foo::bar")
	prefs.PushCommandLineStack("baz::qux")

	// only the top group is consulted
	ok, _ := prefs.GetCommandLinePref("foo")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
