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

// Package overlay draws on-screen information over captured frames before
// they are published for display.
//
// The only overlay is the palette swatch: the four shades drawn as a strip
// of squares in the top-left corner. The swatch is shown for a number of
// frames after a palette change so the user can see the new colours even
// when the captured picture uses only some of them.
package overlay
