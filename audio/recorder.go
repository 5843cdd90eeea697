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

package audio

import (
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/logger"
)

// RecorderError is returned by the functions of the Recorder type.
const RecorderError = curated.Sentinel("audio: recorder: %v")

// the wav format code for uncompressed pcm data
const wavFormatPCM = 1

// Recorder writes samples to a sixteen bit stereo WAV file.
type Recorder struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
	buf      *goaudio.IntBuffer
	samples  int
}

// NewRecorder creates the file and prepares it for writing samples. The file
// must be closed with Close() for it to be valid.
func NewRecorder(filename string) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, RecorderError.Errorf(err)
	}

	rec := &Recorder{
		filename: filename,
		f:        f,
		enc:      wav.NewEncoder(f, SampleRate, 16, 2, wavFormatPCM),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: 2,
				SampleRate:  SampleRate,
			},
			SourceBitDepth: 16,
		},
	}

	logger.Logf(logger.Allow, "audio", "recording to %s", filename)

	return rec, nil
}

// Samples implements the SampleSink interface.
func (rec *Recorder) Samples(s []Sample) error {
	rec.buf.Data = rec.buf.Data[:0]
	for _, v := range s {
		rec.buf.Data = append(rec.buf.Data, int(v[0]), int(v[1]))
	}
	if err := rec.enc.Write(rec.buf); err != nil {
		return RecorderError.Errorf(err)
	}
	rec.samples += len(s)
	return nil
}

// Len returns the number of stereo samples written so far.
func (rec *Recorder) Len() int {
	return rec.samples
}

// Close finalises the WAV file.
func (rec *Recorder) Close() (rerr error) {
	defer func() {
		if err := rec.f.Close(); err != nil && rerr == nil {
			rerr = RecorderError.Errorf(err)
		}
	}()

	if err := rec.enc.Close(); err != nil {
		return RecorderError.Errorf(err)
	}

	logger.Logf(logger.Allow, "audio", "wrote %d samples to %s", rec.samples, rec.filename)

	return nil
}
