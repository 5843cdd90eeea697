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

package userinput

// Button identifies a handheld button.
type Button int

// List of valid Button values. HOME is the extra button of the capture board.
const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonHome
	NumButtons
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonSelect:
		return "SELECT"
	case ButtonStart:
		return "START"
	case ButtonUp:
		return "UP"
	case ButtonDown:
		return "DOWN"
	case ButtonLeft:
		return "LEFT"
	case ButtonRight:
		return "RIGHT"
	case ButtonHome:
		return "HOME"
	}
	return "unknown button"
}

// Buttons is the pressed state of every button.
type Buttons struct {
	pressed [NumButtons]bool
}

// Pressed returns true if the button is currently held down.
func (bt *Buttons) Pressed(b Button) bool {
	if b < 0 || b >= NumButtons {
		return false
	}
	return bt.pressed[b]
}

// Update the state of a button and return the intent of any completed chord.
// A chord completes when LEFT, RIGHT or HOME is released while SELECT is
// held.
func (bt *Buttons) Update(b Button, down bool) Intent {
	if b < 0 || b >= NumButtons {
		return NoIntent
	}

	wasDown := bt.pressed[b]
	bt.pressed[b] = down

	if down || !wasDown || !bt.pressed[ButtonSelect] {
		return NoIntent
	}

	switch b {
	case ButtonLeft:
		return PalettePrev
	case ButtonRight:
		return PaletteNext
	case ButtonHome:
		return BlendToggle
	}

	return NoIntent
}
