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
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/logger"
)

// Sentinel errors returned when loading audio files.
const (
	SourceOpen   = curated.Sentinel("audio: %v")
	SourceFormat = curated.Sentinel("audio: %s: unsupported file type")
	SourceDecode = curated.Sentinel("audio: %s: %v")
)

// one cycle of a sine wave. 32 entries at SampleRate is a 1kHz tone
var sine = [32]uint16{
	0x8000, 0x98f8, 0xb0fb, 0xc71c, 0xda82, 0xea6d, 0xf641, 0xfd89,
	0xffff, 0xfd89, 0xf641, 0xea6d, 0xda82, 0xc71c, 0xb0fb, 0x98f8,
	0x8000, 0x6707, 0x4f04, 0x38e3, 0x257d, 0x1592, 0x09be, 0x0276,
	0x0000, 0x0276, 0x09be, 0x1592, 0x257d, 0x38e3, 0x4f04, 0x6707,
}

// Tone is an ADC that produces a continuous 1kHz sine wave.
type Tone struct {
	phase int
}

// Read implements the ADC interface.
func (t *Tone) Read(dst []uint16) (int, error) {
	for i := range dst {
		dst[i] = sine[t.phase] >> 4
		t.phase = (t.phase + 1) % len(sine)
	}
	return len(dst), nil
}

// Silence is an ADC that produces no signal.
type Silence struct{}

// Read implements the ADC interface.
func (Silence) Read(dst []uint16) (int, error) {
	for i := range dst {
		dst[i] = adcMidpoint
	}
	return len(dst), nil
}

// PCM is an ADC that plays mono sixteen bit data. The data is resampled to
// SampleRate and repeats when the end is reached.
type PCM struct {
	data []int16
	rate int

	// position in data in 16.16 fixed point
	pos  uint64
	step uint64
}

// NewPCM is the preferred method of initialisation for the PCM type. The
// rate is the sample rate of the data.
func NewPCM(data []int16, rate int) *PCM {
	if rate <= 0 {
		rate = SampleRate
	}
	return &PCM{
		data: data,
		rate: rate,
		step: (uint64(rate) << 16) / SampleRate,
	}
}

// Len returns the number of samples in the PCM data at its original rate.
func (p *PCM) Len() int {
	return len(p.data)
}

// Rate returns the sample rate of the PCM data.
func (p *PCM) Rate() int {
	return p.rate
}

// Read implements the ADC interface.
func (p *PCM) Read(dst []uint16) (int, error) {
	if len(p.data) == 0 {
		return Silence{}.Read(dst)
	}

	end := uint64(len(p.data)) << 16
	for i := range dst {
		s := p.data[p.pos>>16]
		dst[i] = uint16((int32(s) + 32768) >> 4)
		p.pos += p.step
		if p.pos >= end {
			p.pos -= end
		}
	}
	return len(dst), nil
}

// LoadFile decodes a WAV or MP3 file into PCM data. The type of the file is
// decided by the file extension. The left channel of stereo files is used.
func LoadFile(path string) (*PCM, error) {
	var p *PCM
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		p, err = loadWAV(path)
	case ".mp3":
		p, err = loadMP3(path)
	default:
		return nil, SourceFormat.Errorf(path)
	}
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "audio", "%s: %d samples at %dHz", filepath.Base(path), p.Len(), p.Rate())

	return p, nil
}

func loadWAV(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SourceOpen.Errorf(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, SourceDecode.Errorf(path, "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, SourceDecode.Errorf(path, err)
	}

	chans := max(int(dec.NumChans), 1)
	depth := int(dec.BitDepth)

	data := make([]int16, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		v := buf.Data[i]
		switch {
		case depth == 8:
			// eight bit wav data is unsigned
			v = (v - 128) << 8
		case depth > 16:
			v >>= depth - 16
		}
		data = append(data, int16(v))
	}

	return NewPCM(data, int(dec.SampleRate)), nil
}

func loadMP3(path string) (*PCM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, SourceOpen.Errorf(err)
	}

	dec, err := mp3.NewDecoder(bytes.NewReader(raw))
	if err != nil {
		return nil, SourceDecode.Errorf(path, err)
	}

	// the decoded stream is always sixteen bit little endian stereo, four
	// bytes per sample
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, SourceDecode.Errorf(path, err)
	}

	data := make([]int16, 0, len(pcm)/4)
	for i := 0; i+4 <= len(pcm); i += 4 {
		data = append(data, int16(binary.LittleEndian.Uint16(pcm[i:])))
	}

	return NewPCM(data, dec.SampleRate()), nil
}
