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

package synthetic_test

import (
	"context"
	"io"
	"testing"

	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/synthetic"
	"github.com/dmgdvi/dmgdvi/test"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

func TestPatterns(t *testing.T) {
	f, err := frame.NewFrame(specification.CaptureDMG)
	test.DemandSuccess(t, err)

	synthetic.AlternatingRows(frame.Lightest, frame.Darkest)(f, 0)
	test.ExpectEquality(t, f.Shade(10, 0), frame.Lightest)
	test.ExpectEquality(t, f.Shade(10, 1), frame.Darkest)
	test.ExpectEquality(t, f.Shade(159, 143), frame.Darkest)

	synthetic.Bars()(f, 0)
	test.ExpectEquality(t, f.Shade(0, 50), frame.Lightest)
	test.ExpectEquality(t, f.Shade(40, 50), frame.Light)
	test.ExpectEquality(t, f.Shade(80, 50), frame.Dark)
	test.ExpectEquality(t, f.Shade(159, 50), frame.Darkest)

	synthetic.Bounce(16)(f, 0)
	test.ExpectEquality(t, f.Shade(0, 0), frame.Darkest)
	test.ExpectEquality(t, f.Shade(16, 16), frame.Lightest)

	for _, n := range synthetic.PatternNames() {
		p, err := synthetic.SearchPattern(n)
		test.ExpectSuccess(t, err, n)
		p(f, 100)
	}

	_, err = synthetic.SearchPattern("noise")
	test.ExpectSuccess(t, synthetic.UnknownPattern.In(err))

	_, err = synthetic.SearchPattern("BARS")
	test.ExpectSuccess(t, err)
}

func TestBusLimit(t *testing.T) {
	bus, err := synthetic.NewBus(capture.DefaultConfig, synthetic.Scroll())
	test.DemandSuccess(t, err)
	bus.SetLimit(2)

	data, err := io.ReadAll(bus)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, bus.FrameNum(), 2)

	f, err := frame.NewFrame(specification.CaptureDMG)
	test.DemandSuccess(t, err)
	one := synthetic.AppendFrame(nil, f, capture.DefaultConfig, synthetic.DefaultTiming, synthetic.NoFault)
	test.ExpectEquality(t, len(data), len(one)*2)
}

func TestBusFaults(t *testing.T) {
	bus, err := synthetic.NewBus(capture.DefaultConfig, synthetic.Scroll())
	test.DemandSuccess(t, err)
	bus.SetLimit(6)
	bus.SetFaults(synthetic.Faults{
		ShortRowEvery:   2,
		ShortFrameEvery: 3,
	})

	pool, err := frame.NewPool(specification.CaptureDMG, 2)
	test.DemandSuccess(t, err)
	seq, err := capture.NewSequencer(bus, pool, capture.DefaultConfig)
	test.DemandSuccess(t, err)

	// the completed slot is never taken so only the first frame completes.
	// every frame-sync after that is missed whether the frame is faulty or
	// not
	seq.BeginCapture(0)
	err = seq.Run(context.Background())
	test.ExpectSuccess(t, capture.EndOfSource.In(err))

	st := seq.Stats()
	test.ExpectEquality(t, st.Completed, uint64(1))
	test.ExpectEquality(t, st.Missed, uint64(5))
}

func TestBusTiming(t *testing.T) {
	f, err := frame.NewFrame(specification.CaptureDMG)
	test.DemandSuccess(t, err)

	tm := synthetic.Timing{SyncSamples: 1, PorchSamples: 1, BlankRows: 0}
	samples := synthetic.AppendFrame(nil, f, capture.DefaultConfig, tm, synthetic.NoFault)

	// frame pulse, and for each row a row pulse, two samples per pixel and
	// one idle sample
	const w, h = 160, 144
	test.ExpectEquality(t, len(samples), 2+h*(2+w*2+1))
}
