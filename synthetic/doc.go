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

// Package synthetic generates the samples of the pixel bus from test
// patterns. It stands in for the handheld when there is no capture hardware
// or recording available and is used by the tests of the capture and pipeline
// packages.
//
// Faults can be injected into the generated stream in order to exercise the
// recovery of the capture decoders.
package synthetic
