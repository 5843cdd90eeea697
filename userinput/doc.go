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

// Package userinput translates input from the user into intents for the
// pipeline. Input arrives as Events from a GUI (the preview window) or from
// the terminal. The Controllers type turns events into Intents.
//
// The handheld buttons are supported as well as keyboard hotkeys. Buttons
// control the pipeline with chords: while SELECT is held, releasing LEFT or
// RIGHT steps through the palettes and releasing HOME toggles frame blending.
//
// The GUI implementation in use during development was SDL and so keyboard
// key names follow SDL scancode names.
package userinput
