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

// Intent is the action requested by the user.
type Intent int

// List of valid Intent values.
const (
	NoIntent Intent = iota
	PalettePrev
	PaletteNext
	BlendToggle
	Snapshot
	Quit
)

func (in Intent) String() string {
	switch in {
	case PalettePrev:
		return "palette prev"
	case PaletteNext:
		return "palette next"
	case BlendToggle:
		return "blend toggle"
	case Snapshot:
		return "snapshot"
	case Quit:
		return "quit"
	}
	return "none"
}
