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
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmgdvi/dmgdvi/logger"
)

// SampleRate of the audio output in Hz.
const SampleRate = 32000

// ChunkSamples is the number of samples read from the ADC on every tick.
const ChunkSamples = 64

// TickInterval is the time between chunks. ChunkSamples every TickInterval
// is the same as SampleRate.
const TickInterval = ChunkSamples * time.Second / SampleRate

// number of ticks between checks for budget overruns
const logTicks = 500

// the value read from the ADC when there is no signal
const adcMidpoint = 0x800

// ADC is the source of twelve bit unsigned samples.
type ADC interface {
	// Read fills dst with samples and returns the number of samples read.
	Read(dst []uint16) (int, error)
}

// Convert a twelve bit ADC sample to a signed sixteen bit sample.
func Convert(v uint16) int16 {
	return int16((int32(v&0x0fff) << 4) - 32768)
}

// PumpStats are the counters of the Pump.
type PumpStats struct {
	// chunks written to the ring
	Chunks int

	// ticks that arrived later than twice the interval
	Overruns int

	// chunks not written because the ring was full
	Full int

	// reads from the ADC that failed or were short. the missing samples
	// are replaced by silence
	Errors int
}

func (s PumpStats) String() string {
	return fmt.Sprintf("chunks %d, overruns %d, full %d, errors %d", s.Chunks, s.Overruns, s.Full, s.Errors)
}

// Pump moves samples from the ADC to the ring.
type Pump struct {
	adc  ADC
	ring *Ring
	now  func() time.Time

	last  time.Time
	ticks int

	adcBuf []uint16
	out    []Sample

	chunks   atomic.Int64
	overruns atomic.Int64
	full     atomic.Int64
	errors   atomic.Int64

	loggedOverruns int64
}

// NewPump is the preferred method of initialisation for the Pump type.
func NewPump(adc ADC, ring *Ring) *Pump {
	return &Pump{
		adc:    adc,
		ring:   ring,
		now:    time.Now,
		adcBuf: make([]uint16, ChunkSamples),
		out:    make([]Sample, ChunkSamples),
	}
}

// SetClock replaces the function used to read the current time.
func (p *Pump) SetClock(now func() time.Time) {
	p.now = now
}

// Stats returns a snapshot of the pump counters. Safe to call from any
// goroutine.
func (p *Pump) Stats() PumpStats {
	return PumpStats{
		Chunks:   int(p.chunks.Load()),
		Overruns: int(p.overruns.Load()),
		Full:     int(p.full.Load()),
		Errors:   int(p.errors.Load()),
	}
}

// Tick writes a chunk of samples to the ring if the interval since the
// previous chunk has passed. It must return quickly because it is called
// between scanline requests. The first call always writes a chunk.
func (p *Pump) Tick() {
	t := p.now()
	if !p.last.IsZero() {
		elapsed := t.Sub(p.last)
		if elapsed < TickInterval {
			return
		}
		if elapsed >= 2*TickInterval {
			p.overruns.Add(1)
		}
	}
	p.last = t

	p.ticks++
	if p.ticks >= logTicks {
		p.ticks = 0
		p.logOverruns()
	}

	if p.ring.WriteSize() < ChunkSamples {
		p.full.Add(1)
		return
	}

	n, err := p.adc.Read(p.adcBuf)
	if err != nil || n < ChunkSamples {
		p.errors.Add(1)
		for i := max(n, 0); i < ChunkSamples; i++ {
			p.adcBuf[i] = adcMidpoint
		}
	}

	for i, v := range p.adcBuf {
		s := Convert(v)
		p.out[i] = Sample{s, s}
	}
	p.ring.Write(p.out)
	p.chunks.Add(1)
}

func (p *Pump) logOverruns() {
	o := p.overruns.Load()
	if d := o - p.loggedOverruns; d > 0 {
		logger.Logf(logger.Allow, "audio", "%d budget overruns", d)
	}
	p.loggedOverruns = o
}
