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

// Package limiter paces a loop to a fixed rate. It is used to pace the frames
// of the serializer and of the synthetic bus generator.
//
// The limiter waits on a ticker but not on every call to CheckTick(). Ticks
// are grouped so that the ticker duration is never too short for the
// operating system to honour.
package limiter

import (
	"sync/atomic"
	"time"
)

// Limiter paces calls to CheckTick() to the requested rate.
type Limiter struct {
	// whether to wait in CheckTick()
	Active atomic.Bool

	// the requested rate in ticks per second
	Rate atomic.Value // float32

	// pulse that performs the limiting
	pulse *time.Ticker

	// number of ticks that make up one pulse of the ticker
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the rate measurement
	measuringPulse *time.Ticker

	// the measured rate is the number of ticks divided by the amount of
	// elapsed time since the previous measurement
	measureTime time.Time
	measureCt   int

	// the measured number of ticks per second
	Measured atomic.Value // float32

	// nudge the limiter so that it doesn't wait for the specified number of
	// ticks
	Nudge atomic.Int32
}

// the rate used by NewLimiter() if the requested rate is not valid
const defaultRate = 60.0

// NewLimiter is the preferred method of initialising a new instance of the
// Limiter type.
func NewLimiter(rate float32) *Limiter {
	lmtr := &Limiter{}
	lmtr.Active.Store(true)
	lmtr.Measured.Store(float32(0.0))

	lmtr.pulse = time.NewTicker(time.Millisecond * 16)
	lmtr.measuringPulse = time.NewTicker(time.Millisecond * 1000)

	lmtr.SetRate(rate)
	if lmtr.Rate.Load() == nil {
		lmtr.SetRate(defaultRate)
	}

	return lmtr
}

// SetRate sets the number of ticks per second. A rate of zero or less is
// ignored.
func (lmtr *Limiter) SetRate(rate float32) {
	if rate <= 0.0 {
		return
	}

	lmtr.Rate.Store(rate)

	// set scale and duration to wait according to requested rate
	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(rate/20)
	lmtr.pulse.Stop()
	lmtr.pulse.Reset(time.Duration(1000000000 / rate * float32(lmtr.pulseCtLimit)))

	// restart rate measurement
	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// CheckTick should be called once per iteration of the paced loop.
func (lmtr *Limiter) CheckTick() {
	lmtr.measureCt++

	nudge := lmtr.Nudge.Load()
	if nudge > 0 {
		lmtr.Nudge.Store(nudge - 1)
		return
	}

	if lmtr.Active.Load() {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// MeasureActual measures the rate on every tick of the measuring pulse.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.Measured.Store(m)

		// reset time and count ready for next measurement
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter's tickers. CheckTick() must not be called after Stop()
// unless the limiter is inactive.
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
