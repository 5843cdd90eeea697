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

// Event represents all the different type of events that can occur.
type Event interface{}

// EventQuit is sent when the user wants to stop the pipeline.
type EventQuit struct{}

// KeyMod identifies the modifier key held down while another key is pressed.
type KeyMod int

// List of valid KeyMod values.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// EventKeyboard is the data for a keyboard event.
type EventKeyboard struct {
	Key  string
	Down bool
	Mod  KeyMod
}

// EventButton is a change in state of a handheld button.
type EventButton struct {
	Button Button
	Down   bool
}
