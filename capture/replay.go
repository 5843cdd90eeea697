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

package capture

import (
	"io"
	"os"

	"github.com/dmgdvi/dmgdvi/curated"
)

// Replay faults.
const (
	ReplayOpen  = curated.Sentinel("capture: replay: %v")
	ReplayEmpty = curated.Sentinel("capture: replay: %s contains no samples")
)

// Replay is a file of recorded samples, one byte per sample.
type Replay struct {
	f    *os.File
	loop bool
}

// OpenReplay opens a file of recorded samples. If loop is true then reading
// continues from the start of the file once the end has been reached.
func OpenReplay(path string, loop bool) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReplayOpen.Errorf(err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ReplayOpen.Errorf(err)
	}
	if st.Size() == 0 {
		f.Close()
		return nil, ReplayEmpty.Errorf(path)
	}

	return &Replay{f: f, loop: loop}, nil
}

// Read implements the io.Reader interface.
func (r *Replay) Read(p []byte) (int, error) {
	n, err := r.f.Read(p)
	if err == io.EOF && r.loop {
		if _, serr := r.f.Seek(0, io.SeekStart); serr != nil {
			return n, serr
		}
		if n == 0 {
			return r.f.Read(p)
		}
		return n, nil
	}
	return n, err
}

// Close implements the io.Closer interface.
func (r *Replay) Close() error {
	return r.f.Close()
}

// Record returns a reader that writes every sample read from src to the file
// at path. The returned close function must be called when recording is
// finished.
func Record(src io.Reader, path string) (io.Reader, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, ReplayOpen.Errorf(err)
	}
	return io.TeeReader(src, f), f.Close, nil
}
