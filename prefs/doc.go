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

// Package prefs stores user preferences and persists them between sessions.
//
// Preference values are one of the types Bool, Int, Float, String or Generic.
// The zero value of the first four types is ready to use. Generic must be
// created with NewGeneric().
//
// Values are associated with a key using a Disk instance and saved in a plain
// text file, one "key :: value" entry per line.
//
//	var blend prefs.Bool
//	dsk, _ := prefs.NewDisk(pth)
//	_ = dsk.Add("video.blend", &blend)
//	_ = dsk.Load(false)
//
// A Disk saves entries written by other Disk instances using the same file.
// Only the keys added to the saving instance are updated.
//
// Command line overrides are pushed with PushCommandLineStack(). Disk.Load()
// takes any matching value from the top of the stack in preference to the
// value in the file.
//
// All value types are safe to read and write from more than one goroutine.
// Hooks are called on the goroutine that calls Set().
package prefs
