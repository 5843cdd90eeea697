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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. For example:
//
//	e := curated.Errorf("tmds: output width (%d) narrower than content (%d)", 300, 320)
//
//	if curated.Is(e, "tmds: output width (%d) narrower than content (%d)") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("pipeline: %v", e)
//
//	if curated.Has(f, "tmds: output width (%d) narrower than content (%d)") {
//		fmt.Println("true")
//	}
//
// In this example, the call to Is(f, ...) would return false because error f
// was created with the pattern "pipeline: %v".
//
// Patterns that are tested for by other packages should be stored as an
// exported const string, suitably named and commented. The Sentinel type is
// a convenience for this.
//
//	const BadWidth = curated.Sentinel("frame: width (%d) not a multiple of four")
//
//	err := BadWidth.Errorf(161)
//	if curated.Is(err, BadWidth.Pattern()) { ... }
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For the purposes of this package we think of
// chains as being composed of parts separted by the sub-string ': '. For
// example:
//
//	part 1: part 2: part 3
//
// Curated errors also implement Unwrap() so that errors.Is() and errors.As()
// from the standard library can see through to any wrapped error value.
package curated
