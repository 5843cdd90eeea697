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

// Package palette defines the four colour palettes that map captured shades
// to RGB. The Selector type holds the list of available palettes and the
// index of the active palette. The active palette is swapped as a whole and
// can be read by the scanline driver without a lock while it is changed.
//
// Palette entries are ordered from lightest to darkest. Shade 3, the darkest
// entry, is also the colour of the border either side of and above and below
// the captured image. For a custom palette the darkest entry is only the
// darkest by convention.
package palette
