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

package terminal

import (
	"strings"

	"github.com/dmgdvi/dmgdvi/userinput"
)

// list of ASCII codes for non-alphanumeric characters
const (
	keyInterrupt      = 3
	keyBackspace      = 8
	keyCarriageReturn = 13
	keyEsc            = 27
	keyDelete         = 127
)

// list of ASCII code for characters that can follow keyEsc
const (
	escCursor = '['
	escHome   = 'H'
)

// list of ASCII code for characters that can follow escCursor
const (
	cursorUp       = 'A'
	cursorDown     = 'B'
	cursorForward  = 'C'
	cursorBackward = 'D'
	cursorHome     = 'H'
)

// Decoder translates bytes read from a raw mode terminal into events. Escape
// sequences may be split across calls to Decode().
type Decoder struct {
	esc []byte
}

func press(key string) []userinput.Event {
	return []userinput.Event{
		userinput.EventKeyboard{Key: key, Down: true},
		userinput.EventKeyboard{Key: key, Down: false},
	}
}

// Decode the bytes and return the events.
func (dec *Decoder) Decode(b []byte) []userinput.Event {
	var evs []userinput.Event

	for _, c := range b {
		if len(dec.esc) > 0 {
			dec.esc = append(dec.esc, c)
			if ev, done := dec.escape(); done {
				evs = append(evs, ev...)
				dec.esc = dec.esc[:0]
			}
			continue
		}

		switch c {
		case keyInterrupt:
			evs = append(evs, userinput.EventQuit{})
		case keyEsc:
			dec.esc = append(dec.esc, c)
		case keyBackspace, keyDelete:
			evs = append(evs, press("Backspace")...)
		case keyCarriageReturn:
			evs = append(evs, press("Return")...)
		default:
			if c >= ' ' && c < keyDelete {
				evs = append(evs, press(strings.ToUpper(string(rune(c))))...)
			}
		}
	}

	return evs
}

// escape returns the events for the escape sequence collected so far and
// whether the sequence is complete. Unknown sequences produce no events.
func (dec *Decoder) escape() ([]userinput.Event, bool) {
	if len(dec.esc) < 2 {
		return nil, false
	}

	switch dec.esc[1] {
	case escHome:
		return press("Home"), true
	case escCursor:
		if len(dec.esc) < 3 {
			return nil, false
		}
		switch dec.esc[2] {
		case cursorUp:
			return press("Up"), true
		case cursorDown:
			return press("Down"), true
		case cursorForward:
			return press("Right"), true
		case cursorBackward:
			return press("Left"), true
		case cursorHome:
			return press("Home"), true
		}
		return nil, true
	case keyEsc:
		// two escapes is a single press of the escape key
		return press("Escape"), true
	}

	return nil, true
}

// Flush returns a pending lone escape as a press of the escape key. Called
// when no more bytes are immediately available. A partial escape sequence
// remains pending.
func (dec *Decoder) Flush() []userinput.Event {
	if len(dec.esc) == 1 {
		dec.esc = dec.esc[:0]
		return press("Escape")
	}
	return nil
}
