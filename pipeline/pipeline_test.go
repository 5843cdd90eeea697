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

package pipeline_test

import (
	"bytes"
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmgdvi/dmgdvi/audio"
	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/pipeline"
	"github.com/dmgdvi/dmgdvi/synthetic"
	"github.com/dmgdvi/dmgdvi/test"
	"github.com/dmgdvi/dmgdvi/userinput"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// adc that always reads the midpoint
type quietADC struct{}

func (quietADC) Read(buf []uint16) (int, error) {
	for i := range buf {
		buf[i] = 0x800
	}
	return len(buf), nil
}

// sink that keeps the scanlines of the last complete frame
type scanlineSink struct {
	curr map[int]*tmds.Scanline
	last map[int]*tmds.Scanline
}

func (s *scanlineSink) BeginFrame(_ int) {
	s.curr = make(map[int]*tmds.Scanline)
}

func (s *scanlineSink) Scanline(row int, sl *tmds.Scanline) {
	c := tmds.NewScanline(len(sl.Channels[0]))
	c.CopyFrom(sl)
	s.curr[row] = c
}

func (s *scanlineSink) EndFrame() error {
	s.last = s.curr
	return nil
}

// expectWords checks that every word of every channel of the scanline has the
// expected value for the channel
func expectWords(t *testing.T, sl *tmds.Scanline, words int, golden [tmds.NumChannels]tmds.Word, tags ...any) {
	t.Helper()
	if sl == nil {
		t.Errorf("%v: missing scanline", tags)
		return
	}
	for ch := range tmds.NumChannels {
		test.ExpectEquality(t, len(sl.Channels[ch]), words, tags...)
		for i, w := range sl.Channels[ch] {
			if !test.ExpectEquality(t, w, golden[ch], append(tags, ch, i)...) {
				break
			}
		}
	}
}

func bus(t *testing.T, frames int) *synthetic.Bus {
	t.Helper()
	b, err := synthetic.NewBus(capture.DefaultConfig, synthetic.AlternatingRows(frame.Lightest, frame.Darkest))
	test.DemandSuccess(t, err)
	b.SetLimit(frames)
	return b
}

func run(t *testing.T, p *pipeline.Pipeline) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	test.DemandSuccess(t, p.Run(ctx))
	test.DemandSuccess(t, ctx.Err() == nil)
}

func pixel(p *pipeline.Pipeline, x, y int) [3]uint8 {
	var c [3]uint8
	p.Picture().Borrow(func(img *image.RGBA, _ int) {
		if img == nil {
			return
		}
		rgba := img.RGBAAt(x, y)
		c = [3]uint8{rgba.R, rgba.G, rgba.B}
	})
	return c
}

func TestEndToEnd(t *testing.T) {
	for _, s := range []pipeline.Strategy{pipeline.StrategySequencer, pipeline.StrategyBitBang} {
		cfg := pipeline.Config{
			Strategy:     s,
			Output:       specification.Output640x480,
			Deadline:     time.Second,
			SwatchFrames: -1,
			Digest:       true,
		}

		p, err := pipeline.New(cfg, bus(t, 3))
		test.DemandSuccess(t, err)
		sink := &scanlineSink{}
		p.AddSink(sink)
		run(t, p)

		st := p.Stats()
		test.ExpectSuccess(t, st.Exchange.Published > 0, s)
		test.ExpectSuccess(t, st.Serializer.Frames >= 2, s)
		test.ExpectEquality(t, p.VideoDigest().Frames(), int(st.Serializer.Frames), s)
		test.ExpectSuccess(t, p.AudioDigest() == nil, s)

		// symbols of the first and last scanlines of the capture and of the
		// border. the lightest shade of the BW palette is 0xf7f3f7 and the
		// darkest is black
		out := specification.Output640x480
		offset := out.VerticalOffset(specification.CaptureDMG)
		words := out.OutputWords()
		lightest := [tmds.NumChannels]tmds.Word{0x000be407, 0x000bee04, 0x000be407}
		darkest := [tmds.NumChannels]tmds.Word{0x0007fd00, 0x0007fd00, 0x0007fd00}

		test.DemandSuccess(t, sink.last != nil, s)
		expectWords(t, sink.last[offset], words, lightest, s, "first row")
		expectWords(t, sink.last[offset+1], words, darkest, s, "second row")
		expectWords(t, sink.last[offset+143], words, darkest, s, "last row")
		expectWords(t, sink.last[0], words, darkest, s, "top border")
		expectWords(t, sink.last[out.Scanlines()-1], words, darkest, s, "bottom border")

		// top and bottom border
		test.ExpectEquality(t, pixel(p, 100, 0), [3]uint8{0, 0, 0}, s)
		test.ExpectEquality(t, pixel(p, 100, 479), [3]uint8{0, 0, 0}, s)

		// first row of the frame is the lightest colour and the second row is
		// the darkest
		test.ExpectEquality(t, pixel(p, 0, 24), [3]uint8{0xf7, 0xf3, 0xf7}, s)
		test.ExpectEquality(t, pixel(p, 0, 27), [3]uint8{0, 0, 0}, s)

		// last row of the frame
		test.ExpectEquality(t, pixel(p, 0, 24+143*3), [3]uint8{0, 0, 0}, s)

		// a pipeline only runs once
		err = p.Run(context.Background())
		test.ExpectSuccess(t, pipeline.AlreadyRunning.In(err), s)
	}
}

func TestSplash(t *testing.T) {
	splash, err := frame.NewFrame(specification.CaptureDMG)
	test.DemandSuccess(t, err)
	splash.Fill(frame.Lightest)

	cfg := pipeline.Config{
		Splash:       splash,
		SwatchFrames: -1,
		Deadline:     time.Second,
	}

	// a source that never produces a frame
	p, err := pipeline.New(cfg, bytes.NewReader(nil))
	test.DemandSuccess(t, err)
	run(t, p)

	test.ExpectEquality(t, p.Stats().Exchange.Published, uint64(0))
	test.ExpectEquality(t, pixel(p, 0, 24), [3]uint8{0xf7, 0xf3, 0xf7})
}

func TestAudio(t *testing.T) {
	dir := t.TempDir()
	rec := filepath.Join(dir, "audio.wav")

	cfg := pipeline.Config{
		Deadline:     time.Second,
		SwatchFrames: -1,
		Audio:        quietADC{},
		AudioRecord:  rec,
		Digest:       true,
	}

	p, err := pipeline.New(cfg, bus(t, 3))
	test.DemandSuccess(t, err)
	run(t, p)

	test.ExpectSuccess(t, p.Stats().Audio.Chunks > 0)
	test.DemandSuccess(t, p.AudioDigest() != nil)

	// the recorder has been closed and the file is readable
	pcm, err := audio.LoadFile(rec)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, pcm.Len() > 0)
}

func TestConfig(t *testing.T) {
	_, err := pipeline.New(pipeline.Config{Slots: 1}, bytes.NewReader(nil))
	test.ExpectSuccess(t, pipeline.ConfigError.In(err))

	s, err := pipeline.SearchStrategy("BitBang")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, pipeline.StrategyBitBang)

	_, err = pipeline.SearchStrategy("pio")
	test.ExpectSuccess(t, pipeline.UnknownStrategy.In(err))
}

func TestApply(t *testing.T) {
	cfg := pipeline.Config{
		Palette:     len(palette.Schemes) - 1,
		SnapshotDir: t.TempDir(),
	}

	p, err := pipeline.New(cfg, bytes.NewReader(nil))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.PaletteIndex(), len(palette.Schemes)-1)

	test.ExpectSuccess(t, p.Apply(userinput.PaletteNext))
	test.ExpectEquality(t, p.PaletteIndex(), 0)
	test.ExpectSuccess(t, p.Apply(userinput.PalettePrev))
	test.ExpectEquality(t, p.PaletteIndex(), len(palette.Schemes)-1)

	test.ExpectEquality(t, p.BlendEnabled(), false)
	test.ExpectSuccess(t, p.Apply(userinput.BlendToggle))
	test.ExpectEquality(t, p.BlendEnabled(), true)

	// nothing has been output yet
	test.ExpectFailure(t, p.Apply(userinput.Snapshot))

	// quit before running is harmless
	test.ExpectSuccess(t, p.Apply(userinput.Quit))
}

func TestSnapshot(t *testing.T) {
	dir := t.TempDir()
	cfg := pipeline.Config{
		Deadline:     time.Second,
		SwatchFrames: -1,
		SnapshotDir:  dir,
	}

	p, err := pipeline.New(cfg, bus(t, 2))
	test.DemandSuccess(t, err)
	run(t, p)

	test.ExpectSuccess(t, p.Apply(userinput.Snapshot))

	entries, err := os.ReadDir(dir)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(entries), 1)
	test.ExpectSuccess(t, strings.HasPrefix(entries[0].Name(), "snapshot_"))
	test.ExpectSuccess(t, strings.HasSuffix(entries[0].Name(), ".png"))
}

func TestPrefs(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")
	cfg := pipeline.Config{PrefsFile: fn}

	p, err := pipeline.New(cfg, bytes.NewReader(nil))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.SetPalette(5), 5)
	p.SetBlendEnabled(true)

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "palette.index :: 5\n"))
	test.ExpectSuccess(t, strings.Contains(string(data), "video.blend :: true\n"))

	// the preferences are loaded by a new pipeline
	p, err = pipeline.New(cfg, bytes.NewReader(nil))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.PaletteIndex(), 5)
	test.ExpectEquality(t, p.BlendEnabled(), true)

	// out of range values wrap
	test.ExpectEquality(t, p.SetPalette(len(palette.Schemes)+1), 1)
}

func TestEvents(t *testing.T) {
	// a source that blocks forever
	src, w := io.Pipe()
	defer w.Close()

	p, err := pipeline.New(pipeline.Config{Deadline: time.Second}, src)
	test.DemandSuccess(t, err)

	done := make(chan error)
	go func() {
		done <- p.Run(context.Background())
	}()

	p.Events() <- userinput.EventKeyboard{Key: "]", Down: true}
	p.Events() <- userinput.EventQuit{}

	select {
	case err := <-done:
		test.ExpectSuccess(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("pipeline did not quit")
	}
	test.ExpectEquality(t, p.PaletteIndex(), 1)
}

func TestDumpGraph(t *testing.T) {
	p, err := pipeline.New(pipeline.Config{}, bytes.NewReader(nil))
	test.DemandSuccess(t, err)

	var b bytes.Buffer
	p.DumpGraph(&b)
	test.ExpectSuccess(t, b.Len() > 0)
}
