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

package exchange_test

import (
	"bytes"
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"testing/quick"
	"time"

	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/exchange"
	"github.com/dmgdvi/dmgdvi/synthetic"
	"github.com/dmgdvi/dmgdvi/test"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/specification"
)

// blendPixel is the per pixel definition of frame blending.
func blendPixel(cur, ghost frame.Shade) (frame.Shade, frame.Shade) {
	b := cur
	if cur == 0 {
		b = cur | ghost
	}
	g := frame.Shade(0)
	if cur > 0 {
		g = 2
	}
	return b, g
}

func TestBlendPixels(t *testing.T) {
	f := func(cur []byte, ghost []byte) bool {
		n := min(len(cur), len(ghost))
		cur = cur[:n]
		ghost = ghost[:n]

		wantCur := make([]byte, n)
		wantGhost := make([]byte, n)
		for i := range n {
			var c, g [4]frame.Shade
			for p := range 4 {
				c[p], g[p] = blendPixel(frame.Unpack(cur[i], p), frame.Unpack(ghost[i], p))
			}
			wantCur[i] = frame.Pack(c[0], c[1], c[2], c[3])
			wantGhost[i] = frame.Pack(g[0], g[1], g[2], g[3])
		}

		exchange.Blend(cur, ghost)
		return bytes.Equal(cur, wantCur) && bytes.Equal(ghost, wantGhost)
	}

	cfg := &quick.Config{
		MaxCount: 500,
	}
	test.ExpectSuccess(t, quick.Check(f, cfg))
}

func TestBlendIdempotent(t *testing.T) {
	rnd := rand.New(rand.NewPCG(10, 20))

	src := make([]byte, specification.CaptureDMG.FrameBytes())
	for i := range src {
		src[i] = byte(rnd.Uint32())
	}

	ghost := make([]byte, len(src))
	var outputs [3][]byte
	var ghosts [3][]byte
	for i := range outputs {
		outputs[i] = bytes.Clone(src)
		exchange.Blend(outputs[i], ghost)
		ghosts[i] = bytes.Clone(ghost)
	}

	// the ghost of a static frame converges after one frame and the blended
	// output after two
	test.ExpectSuccess(t, bytes.Equal(ghosts[0], ghosts[1]))
	test.ExpectSuccess(t, bytes.Equal(ghosts[1], ghosts[2]))
	test.ExpectSuccess(t, bytes.Equal(outputs[1], outputs[2]))

	// blending a frame with an empty ghost changes nothing
	test.ExpectSuccess(t, bytes.Equal(outputs[0], src))

	// lightest pixels of the converged output are light or dark only where
	// the ghost says so
	for i := range src {
		for p := range 4 {
			if frame.Unpack(src[i], p) == frame.Lightest {
				test.ExpectEquality(t, frame.Unpack(outputs[2][i], p), frame.Unpack(ghosts[1][i], p))
			}
		}
	}
}

// fakeDecoder is completed by the test.
type fakeDecoder struct {
	armed     int
	completed int
	done      chan struct{}
	arms      []int
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		armed:     -1,
		completed: -1,
		done:      make(chan struct{}, 1),
	}
}

func (d *fakeDecoder) BeginCapture(slot int) {
	d.armed = slot
	d.arms = append(d.arms, slot)
}

func (d *fakeDecoder) FrameReady() bool {
	return d.completed != -1
}

func (d *fakeDecoder) TakeCompletedFrame() (int, bool) {
	s := d.completed
	d.completed = -1
	return s, s != -1
}

func (d *fakeDecoder) Completed() <-chan struct{} {
	return d.done
}

func (d *fakeDecoder) Run(_ context.Context) error {
	return nil
}

func (d *fakeDecoder) Stats() capture.Stats {
	return capture.Stats{}
}

// complete the armed slot after filling it with the shade.
func (d *fakeDecoder) complete(pool *frame.Pool, s frame.Shade) bool {
	if d.armed == -1 {
		return false
	}
	pool.Slot(d.armed).Fill(s)
	d.completed = d.armed
	d.armed = -1
	return true
}

func newPool(t *testing.T, n int) *frame.Pool {
	t.Helper()
	pool, err := frame.NewPool(specification.CaptureDMG, n)
	test.DemandSuccess(t, err)
	return pool
}

func TestBeforeFirstFrame(t *testing.T) {
	pool := newPool(t, 2)
	dec := newFakeDecoder()
	m, err := exchange.NewManager(pool, dec, exchange.Options{})
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, m.Display(), -1)
	test.ExpectEquality(t, dec.armed, 0)
	_, ok := m.Acquire()
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, m.Service())
}

func TestSplash(t *testing.T) {
	pool := newPool(t, 3)
	dec := newFakeDecoder()

	splash, err := frame.NewFrame(specification.CaptureDMG)
	test.DemandSuccess(t, err)
	synthetic.Checkerboard(8)(splash, 0)

	m, err := exchange.NewManager(pool, dec, exchange.Options{Splash: splash})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Display(), 2)

	f, ok := m.Acquire()
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, f.Equal(splash))
	m.Release()

	// splash of the wrong size
	small, err := frame.NewFrame(specification.Capture{Width: 80, Height: 72})
	test.DemandSuccess(t, err)
	_, err = exchange.NewManager(pool, dec, exchange.Options{Splash: small})
	test.ExpectSuccess(t, exchange.SplashMismatch.In(err))
}

func TestPublish(t *testing.T) {
	pool := newPool(t, 3)
	dec := newFakeDecoder()
	m, err := exchange.NewManager(pool, dec, exchange.Options{})
	test.DemandSuccess(t, err)

	for i := range 10 {
		test.DemandSuccess(t, dec.complete(pool, frame.Shade(i%4)))
		test.ExpectSuccess(t, m.Service())

		f, ok := m.Acquire()
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, f.Shade(80, 72), frame.Shade(i%4), i)

		// the decoder is never armed with the displayed slot
		test.ExpectInequality(t, dec.armed, m.Display(), i)
		test.ExpectInequality(t, dec.armed, -1, i)
		m.Release()
	}

	test.ExpectEquality(t, m.Stats().Published, uint64(10))
	test.ExpectEquality(t, m.Stats().RearmWaits, uint64(0))
}

func TestHazard(t *testing.T) {
	pool := newPool(t, 3)
	dec := newFakeDecoder()
	m, err := exchange.NewManager(pool, dec, exchange.Options{})
	test.DemandSuccess(t, err)

	// slot 0 is published and is held by the reader
	dec.complete(pool, frame.Dark)
	m.Service()
	held, ok := m.Acquire()
	test.DemandSuccess(t, ok)
	heldSlot := m.Display()

	// the next two frames must not be captured into the held slot
	for range 4 {
		test.DemandSuccess(t, dec.complete(pool, frame.Light))
		m.Service()
		test.ExpectInequality(t, dec.armed, heldSlot)
		test.ExpectInequality(t, dec.armed, m.Display())
	}
	test.ExpectEquality(t, held.Shade(0, 0), frame.Dark)
	m.Release()
}

func TestPendingRearm(t *testing.T) {
	pool := newPool(t, 2)
	dec := newFakeDecoder()
	m, err := exchange.NewManager(pool, dec, exchange.Options{})
	test.DemandSuccess(t, err)

	// slot 0 is displayed and held by the reader
	dec.complete(pool, frame.Dark)
	test.ExpectSuccess(t, m.Service())
	test.ExpectEquality(t, dec.armed, 1)
	_, ok := m.Acquire()
	test.DemandSuccess(t, ok)

	// slot 1 completes. slot 0 is the only candidate and is held
	dec.complete(pool, frame.Light)
	test.ExpectSuccess(t, m.Service())
	test.ExpectEquality(t, m.Display(), 1)
	test.ExpectEquality(t, dec.armed, -1)
	test.ExpectEquality(t, m.Stats().RearmWaits, uint64(1))

	// still held
	test.ExpectFailure(t, m.Service())
	test.ExpectEquality(t, dec.armed, -1)

	// the release allows the re-arm
	m.Release()
	test.ExpectSuccess(t, m.Service())
	test.ExpectEquality(t, dec.armed, 0)
	test.ExpectFailure(t, m.Service())
}

type countingOverlay struct {
	frames int
}

func (o *countingOverlay) Draw(f *frame.Frame) {
	o.frames++
	f.SetShade(0, 0, frame.Darkest)
}

func TestBlendAndOverlay(t *testing.T) {
	pool := newPool(t, 3)
	dec := newFakeDecoder()
	ov := &countingOverlay{}
	m, err := exchange.NewManager(pool, dec, exchange.Options{Blend: true, Overlay: ov})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, m.BlendEnabled())

	dec.complete(pool, frame.Darkest)
	m.Service()
	dec.complete(pool, frame.Lightest)
	m.Service()

	// the lightest frame shows the ghost of the darkest frame. the overlay
	// drew on top of the blended frame
	f, _ := m.Acquire()
	test.ExpectEquality(t, f.Shade(80, 72), frame.Dark)
	test.ExpectEquality(t, f.Shade(0, 0), frame.Darkest)
	m.Release()
	test.ExpectEquality(t, ov.frames, 2)
	test.ExpectEquality(t, m.Stats().Blended, uint64(2))

	// turning blending off clears the ghost before the next frame
	m.SetBlendEnabled(false)
	test.ExpectFailure(t, m.BlendEnabled())
	dec.complete(pool, frame.Lightest)
	m.Service()
	test.ExpectSuccess(t, bytes.Equal(m.Ghost(), make([]byte, len(m.Ghost()))))
	f, _ = m.Acquire()
	test.ExpectEquality(t, f.Shade(80, 72), frame.Lightest)
	m.Release()

	// the ghost starts from nothing when blending is turned on again
	m.SetBlendEnabled(true)
	dec.complete(pool, frame.Lightest)
	m.Service()
	f, _ = m.Acquire()
	test.ExpectEquality(t, f.Shade(80, 72), frame.Lightest)
	m.Release()
}

// uniform frames are painted with a single shade that changes every frame. a
// torn frame would mix the shades of two frames.
func uniform(f *frame.Frame, n int) {
	f.Fill(frame.Shade(n % frame.NumShades))
}

func checkUniform(f *frame.Frame) bool {
	b := f.Pix[0]
	for _, c := range f.Pix {
		if c != b {
			return false
		}
	}
	return true
}

func TestNoTornFrames(t *testing.T) {
	for _, slots := range []int{2, 3, 4} {
		for _, blend := range []bool{false, true} {
			bus, err := synthetic.NewBus(capture.DefaultConfig, uniform)
			test.DemandSuccess(t, err)

			pool := newPool(t, slots)
			seq, err := capture.NewSequencer(bus, pool, capture.DefaultConfig)
			test.DemandSuccess(t, err)

			m, err := exchange.NewManager(pool, seq, exchange.Options{Blend: blend})
			test.DemandSuccess(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = seq.Run(ctx)
			}()
			go func() {
				defer wg.Done()
				_ = m.Run(ctx)
			}()

			rnd := rand.New(rand.NewPCG(uint64(slots), 1))
			var acquired, torn int
			for m.Stats().Published < 30 && ctx.Err() == nil {
				f, ok := m.Acquire()
				if !ok {
					time.Sleep(time.Microsecond)
					continue
				}
				acquired++
				if !checkUniform(f) {
					torn++
				}

				// hold the frame for a random time
				if rnd.IntN(4) == 0 {
					time.Sleep(time.Duration(rnd.IntN(200)) * time.Microsecond)
				}
				m.Release()
			}

			cancel()
			wg.Wait()

			test.ExpectEquality(t, torn, 0, slots, blend)
			test.ExpectSuccess(t, acquired > 0, slots, blend)
			test.ExpectSuccess(t, m.Stats().Published >= 30, slots, blend)
		}
	}
}
