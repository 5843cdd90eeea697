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

// Package statsview is a wrapper for the statsview package. It is only
// available when built with the statsview build tag. Use Available() to check
// whether launching a server is possible.
//
// The server shows the runtime statistics of the running pipeline: heap
// usage, goroutine count and GC pauses. Useful when checking that the
// capture and encoder loops do not allocate.
package statsview
