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

// keys that are handheld buttons
var buttonKeys = map[string]Button{
	"X":         ButtonA,
	"Z":         ButtonB,
	"Backspace": ButtonSelect,
	"Return":    ButtonStart,
	"Up":        ButtonUp,
	"Down":      ButtonDown,
	"Left":      ButtonLeft,
	"Right":     ButtonRight,
	"Home":      ButtonHome,
}

// keys that produce an intent directly when pressed without a modifier
var hotKeys = map[string]Intent{
	"[":      PalettePrev,
	"]":      PaletteNext,
	"B":      BlendToggle,
	"P":      Snapshot,
	"Q":      Quit,
	"Escape": Quit,
}

// Controllers keeps track of user input.
type Controllers struct {
	buttons Buttons

	// whether or not the last HandleEvent() was for an event that was
	// consumed as an input
	LastKeyHandled bool
}

// Buttons returns the state of the handheld buttons.
func (c *Controllers) Buttons() *Buttons {
	return &c.buttons
}

// HandleEvent translates the event into an intent. Events that are not
// an intent return NoIntent.
func (c *Controllers) HandleEvent(ev Event) Intent {
	c.LastKeyHandled = true

	switch ev := ev.(type) {
	case EventQuit:
		return Quit
	case EventButton:
		return c.buttons.Update(ev.Button, ev.Down)
	case EventKeyboard:
		return c.keyboard(ev)
	}

	c.LastKeyHandled = false
	return NoIntent
}

func (c *Controllers) keyboard(ev EventKeyboard) Intent {
	if b, ok := buttonKeys[ev.Key]; ok {
		return c.buttons.Update(b, ev.Down)
	}

	if ev.Down && ev.Mod == KeyModNone {
		if in, ok := hotKeys[ev.Key]; ok {
			return in
		}
	}

	c.LastKeyHandled = false
	return NoIntent
}
