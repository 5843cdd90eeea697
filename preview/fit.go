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

package preview

// fit returns the viewport that shows a picture of size pw by ph as large as
// possible in a window of size ww by wh, centered and with the aspect ratio
// preserved.
func fit(ww, wh, pw, ph int) (x, y, w, h int) {
	if pw <= 0 || ph <= 0 {
		return 0, 0, ww, wh
	}

	w, h = ww, ph*ww/pw
	if h > wh {
		w, h = pw*wh/ph, wh
	}

	return (ww - w) / 2, (wh - h) / 2, w, h
}
