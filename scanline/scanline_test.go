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

package scanline_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmgdvi/dmgdvi/scanline"
	"github.com/dmgdvi/dmgdvi/test"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

type frameSource struct {
	f    *frame.Frame
	held atomic.Bool
}

func (s *frameSource) Acquire() (*frame.Frame, bool) {
	if s.f == nil {
		return nil, false
	}
	s.held.Store(true)
	return s.f, true
}

func (s *frameSource) Release() {
	s.held.Store(false)
}

func newDriver(t *testing.T, src *frameSource) *scanline.Driver {
	t.Helper()

	out := specification.Output640x480
	enc, err := tmds.NewEncoder(tmds.Config{
		Width:          specification.CaptureDMG.Width,
		Scale:          out.Scale,
		SymbolsPerWord: out.SymbolsPerWord,
		OutputWords:    out.OutputWords(),
	})
	test.DemandSuccess(t, err)

	sel, err := palette.NewSelector(palette.Schemes)
	test.DemandSuccess(t, err)

	return scanline.NewDriver(enc, src, sel, out, out.VerticalOffset(specification.CaptureDMG))
}

// each row of the frame has the shade of its row number
func rowShades(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.NewFrame(specification.CaptureDMG)
	test.DemandSuccess(t, err)
	for y := range f.Height {
		f.FillRow(y, frame.Shade(y%4))
	}
	return f
}

const (
	lightestBlue = tmds.Word(0x000be407)
	darkestWord  = tmds.Word(0x0007fd00)
)

func TestRender(t *testing.T) {
	src := &frameSource{f: rowShades(t)}
	drv := newDriver(t, src)
	buf := tmds.NewScanline(320)

	// scanlines above and below the frame are border
	for _, row := range []int{0, 7, 152, 159, 160, 1000, -1} {
		resp := drv.Render(row, buf)
		test.ExpectSuccess(t, resp.Border, row)
		test.ExpectEquality(t, resp.Row, row)
		for ch := range tmds.NumChannels {
			test.ExpectEquality(t, buf.Channels[ch][0], darkestWord, row)
			test.ExpectEquality(t, buf.Channels[ch][319], darkestWord, row)
		}
		test.ExpectFailure(t, src.held.Load(), row)
	}

	// first row of the frame is lightest
	resp := drv.Render(8, buf)
	test.ExpectFailure(t, resp.Border)
	test.ExpectEquality(t, resp.Buf, buf)
	test.ExpectEquality(t, buf.Channels[tmds.Blue][0], lightestBlue)
	test.ExpectEquality(t, buf.Channels[tmds.Blue][319], lightestBlue)
	test.ExpectFailure(t, src.held.Load())

	// last row of the frame is darkest
	resp = drv.Render(151, buf)
	test.ExpectFailure(t, resp.Border)
	test.ExpectEquality(t, buf.Channels[tmds.Green][160], darkestWord)

	st := drv.Stats()
	test.ExpectEquality(t, st.Rendered, uint64(2))
	test.ExpectEquality(t, st.Borders, uint64(7))
}

func TestRenderWithoutFrame(t *testing.T) {
	drv := newDriver(t, &frameSource{})
	buf := tmds.NewScanline(320)

	resp := drv.Render(80, buf)
	test.ExpectSuccess(t, resp.Border)
	test.ExpectEquality(t, buf.Channels[tmds.Red][100], darkestWord)
}

func TestServe(t *testing.T) {
	src := &frameSource{f: rowShades(t)}
	drv := newDriver(t, src)

	var ticks atomic.Int32
	drv.SetTick(func() {
		ticks.Add(1)
	})

	q := scanline.NewQueue(4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- drv.Serve(ctx, q)
	}()

	for _, row := range []int{0, 8, 9} {
		q.Requests <- scanline.Request{Row: row, Buf: tmds.NewScanline(320)}
		resp := <-q.Responses
		test.ExpectEquality(t, resp.Row, row)
		test.ExpectEquality(t, resp.Border, row == 0)
	}

	cancel()
	test.ExpectSuccess(t, <-done)
	test.ExpectEquality(t, ticks.Load(), int32(3))
}

func TestQueueBuffers(t *testing.T) {
	q := scanline.NewQueue(4)
	test.ExpectEquality(t, q.Buffers(), 10)
	test.ExpectEquality(t, cap(q.Returns), q.Buffers())

	q = scanline.NewQueue(0)
	test.ExpectEquality(t, q.Buffers(), 4)
}

func TestServeDrops(t *testing.T) {
	drv := newDriver(t, &frameSource{f: rowShades(t)})
	q := scanline.NewQueue(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error)
	go func() {
		done <- drv.Serve(ctx, q)
	}()

	// the responses are not read. the first fills the response channel and
	// the second is dropped
	second := tmds.NewScanline(320)
	q.Requests <- scanline.Request{Row: 10, Buf: tmds.NewScanline(320)}
	q.Requests <- scanline.Request{Row: 11, Buf: second}

	for drv.Stats().Dropped == 0 && ctx.Err() == nil {
		time.Sleep(time.Millisecond)
	}
	test.ExpectEquality(t, drv.Stats().Dropped, uint64(1))

	resp := <-q.Responses
	test.ExpectEquality(t, resp.Row, 10)

	// the buffer of the dropped response is handed back
	select {
	case buf := <-q.Returns:
		test.ExpectSuccess(t, buf == second)
	case <-ctx.Done():
		t.Errorf("buffer of dropped response not returned")
	}

	// closing the request channel stops the driver
	close(q.Requests)
	test.ExpectSuccess(t, <-done)
}
