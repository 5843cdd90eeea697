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

// Package preview shows the output of the serializer in a window on the host
// machine. The picture is the DVI output decoded back to pixels by the
// serializer's Picture sink and is drawn with OpenGL 2.1 as a single textured
// quad, scaled to fit the window with the aspect ratio preserved.
//
// SDL requires that the window is serviced from the main thread. Run() locks
// the goroutine to its thread and should be called from the main goroutine.
//
// Keyboard events in the window are forwarded as userinput events.
package preview
