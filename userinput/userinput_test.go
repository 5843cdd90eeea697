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

package userinput_test

import (
	"testing"

	"github.com/dmgdvi/dmgdvi/test"
	"github.com/dmgdvi/dmgdvi/userinput"
)

func TestChords(t *testing.T) {
	var c userinput.Controllers

	press := func(b userinput.Button, down bool) userinput.Intent {
		return c.HandleEvent(userinput.EventButton{Button: b, Down: down})
	}

	// without SELECT the buttons do nothing
	test.ExpectEquality(t, press(userinput.ButtonLeft, true), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonLeft, false), userinput.NoIntent)

	test.ExpectEquality(t, press(userinput.ButtonSelect, true), userinput.NoIntent)
	test.ExpectSuccess(t, c.Buttons().Pressed(userinput.ButtonSelect))

	// the chord completes on release
	test.ExpectEquality(t, press(userinput.ButtonLeft, true), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonLeft, false), userinput.PalettePrev)
	test.ExpectEquality(t, press(userinput.ButtonRight, true), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonRight, false), userinput.PaletteNext)
	test.ExpectEquality(t, press(userinput.ButtonHome, true), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonHome, false), userinput.BlendToggle)

	// a release without a press is not a chord
	test.ExpectEquality(t, press(userinput.ButtonHome, false), userinput.NoIntent)

	// other buttons are not chords
	test.ExpectEquality(t, press(userinput.ButtonA, true), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonA, false), userinput.NoIntent)

	// releasing SELECT first cancels the chord
	test.ExpectEquality(t, press(userinput.ButtonRight, true), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonSelect, false), userinput.NoIntent)
	test.ExpectEquality(t, press(userinput.ButtonRight, false), userinput.NoIntent)

	test.ExpectEquality(t, press(userinput.NumButtons, true), userinput.NoIntent)
	test.ExpectFailure(t, c.Buttons().Pressed(userinput.NumButtons))
}

func TestKeyboard(t *testing.T) {
	var c userinput.Controllers

	key := func(k string, down bool, mod userinput.KeyMod) userinput.Intent {
		return c.HandleEvent(userinput.EventKeyboard{Key: k, Down: down, Mod: mod})
	}

	test.ExpectEquality(t, key("]", true, userinput.KeyModNone), userinput.PaletteNext)
	test.ExpectEquality(t, key("]", false, userinput.KeyModNone), userinput.NoIntent)
	test.ExpectEquality(t, key("[", true, userinput.KeyModNone), userinput.PalettePrev)
	test.ExpectEquality(t, key("B", true, userinput.KeyModNone), userinput.BlendToggle)
	test.ExpectEquality(t, key("B", true, userinput.KeyModCtrl), userinput.NoIntent)
	test.ExpectEquality(t, key("P", true, userinput.KeyModNone), userinput.Snapshot)
	test.ExpectEquality(t, key("Escape", true, userinput.KeyModNone), userinput.Quit)

	// unknown keys are not handled
	test.ExpectEquality(t, key("F12", true, userinput.KeyModNone), userinput.NoIntent)
	test.ExpectFailure(t, c.LastKeyHandled)

	// keys mapped to buttons make chords
	test.ExpectEquality(t, key("Backspace", true, userinput.KeyModNone), userinput.NoIntent)
	test.ExpectSuccess(t, c.LastKeyHandled)
	test.ExpectEquality(t, key("Right", true, userinput.KeyModNone), userinput.NoIntent)
	test.ExpectEquality(t, key("Right", false, userinput.KeyModNone), userinput.PaletteNext)

	test.ExpectEquality(t, c.HandleEvent(userinput.EventQuit{}), userinput.Quit)
	test.ExpectEquality(t, c.HandleEvent(42), userinput.NoIntent)
}

func TestStrings(t *testing.T) {
	test.ExpectEquality(t, userinput.BlendToggle.String(), "blend toggle")
	test.ExpectEquality(t, userinput.NoIntent.String(), "none")
	test.ExpectEquality(t, userinput.ButtonSelect.String(), "SELECT")
}
