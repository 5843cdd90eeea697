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


package test

import (
	"strings"
	"sync"
)

// Writer collects output for comparison with expected strings. It is safe to
// write to from more than one goroutine, which is the case for log echoes and
// the stats server.
type Writer struct {
	crit sync.Mutex
	buf  strings.Builder
}

func (tw *Writer) Write(p []byte) (int, error) {
	tw.crit.Lock()
	defer tw.crit.Unlock()
	return tw.buf.Write(p)
}

// Clear discards everything written so far.
func (tw *Writer) Clear() {
	tw.crit.Lock()
	defer tw.crit.Unlock()
	tw.buf.Reset()
}

// Compare returns true if the collected output is exactly s.
func (tw *Writer) Compare(s string) bool {
	return tw.String() == s
}

// Lines returns the collected output split into lines. A trailing newline
// does not produce an empty final line.
func (tw *Writer) Lines() []string {
	s := strings.TrimSuffix(tw.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (tw *Writer) String() string {
	tw.crit.Lock()
	defer tw.crit.Unlock()
	return tw.buf.String()
}
