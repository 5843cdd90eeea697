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

// Package pipeline owns every part of the running system: the capture
// decoder, the frame exchange, the scanline driver, the serializer and the
// optional audio pump. It is created with New() and started with Run().
//
// Work is divided between contexts, each a goroutine:
//
//	decoder        reads the bus and fills frame slots
//	context A      the exchange manager and user input intents
//	context B      the scanline driver and the cooperative audio tick
//	serializer     requests scanlines at the output interval
//
// All state that the user can change (palette and frame blending) is changed
// through the Pipeline and is persisted with the prefs package when a
// preferences file is configured.
package pipeline
