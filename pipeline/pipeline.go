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

package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmgdvi/dmgdvi/audio"
	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/digest"
	"github.com/dmgdvi/dmgdvi/exchange"
	"github.com/dmgdvi/dmgdvi/logger"
	"github.com/dmgdvi/dmgdvi/overlay"
	"github.com/dmgdvi/dmgdvi/prefs"
	"github.com/dmgdvi/dmgdvi/scanline"
	"github.com/dmgdvi/dmgdvi/serializer"
	"github.com/dmgdvi/dmgdvi/userinput"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// AlreadyRunning is returned by Run() if the pipeline has already been run.
const AlreadyRunning = curated.Sentinel("pipeline: already running")

// capacity of the user input event channel
const eventQueue = 16

// number of output frames delivered after the end of the source
const lingerFrames = 2

// Pipeline is the owning context object of the running system.
type Pipeline struct {
	cfg Config

	pool  *frame.Pool
	dec   capture.Decoder
	mgr   *exchange.Manager
	enc   *tmds.Encoder
	sel   *palette.Selector
	queue *scanline.Queue
	drv   *scanline.Driver
	ser   *serializer.Serializer
	pic   *serializer.Picture

	swatch *overlay.Swatch

	ring     *audio.Ring
	pump     *audio.Pump
	audioOut *audio.Output
	recorder *audio.Recorder

	videoDigest *digest.Video
	audioDigest *digest.Audio

	dsk         *prefs.Disk
	palettePref prefs.Int
	blendPref   prefs.Bool

	// only used by the input goroutine
	controllers userinput.Controllers
	events      chan userinput.Event

	running  atomic.Bool
	stopCrit sync.Mutex
	stop     context.CancelFunc
}

// New creates the pipeline. Configuration faults are returned here and
// never once the pipeline is running. The source supplies the bus samples,
// one byte per sample.
func New(cfg Config, src io.Reader) (*Pipeline, error) {
	if err := cfg.normalise(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:    cfg,
		events: make(chan userinput.Event, eventQueue),
	}

	var err error

	p.pool, err = frame.NewPool(cfg.Capture.Spec, cfg.Slots)
	if err != nil {
		return nil, ConfigError.Errorf(err)
	}

	switch cfg.Strategy {
	case StrategyBitBang:
		p.dec, err = capture.NewBitBang(capture.NewReaderPins(src), p.pool, cfg.Capture)
	default:
		p.dec, err = capture.NewSequencer(src, p.pool, cfg.Capture)
	}
	if err != nil {
		return nil, ConfigError.Errorf(err)
	}

	p.enc, err = tmds.NewEncoder(tmds.Config{
		Width:          cfg.Capture.Spec.Width,
		Scale:          cfg.Output.Scale,
		SymbolsPerWord: cfg.Output.SymbolsPerWord,
		OutputWords:    cfg.Output.OutputWords(),
		Mode:           cfg.Mode,
	})
	if err != nil {
		return nil, ConfigError.Errorf(err)
	}

	p.sel, err = palette.NewSelector(cfg.Palettes)
	if err != nil {
		return nil, ConfigError.Errorf(err)
	}
	p.sel.Set(cfg.Palette)

	opts := exchange.Options{
		Blend:  cfg.Blend,
		Splash: cfg.Splash,
	}
	if cfg.SwatchFrames >= 0 {
		p.swatch = overlay.NewSwatch()
		opts.Overlay = p.swatch
	}

	p.mgr, err = exchange.NewManager(p.pool, p.dec, opts)
	if err != nil {
		return nil, ConfigError.Errorf(err)
	}

	p.queue = scanline.NewQueue(cfg.QueueDepth)
	p.drv = scanline.NewDriver(p.enc, p.mgr, p.sel, cfg.Output, cfg.Output.VerticalOffset(cfg.Capture.Spec))

	blank := tmds.NewScanline(cfg.Output.OutputWords())
	p.enc.EncodeBorder(p.sel.Current(), blank)

	p.ser = serializer.New(p.queue, cfg.Output, serializer.Options{
		Deadline: cfg.Deadline,
		Blank:    blank,
	})
	p.pic = serializer.NewPicture(cfg.Output)
	p.ser.AddSink(p.pic)

	if cfg.Digest {
		p.videoDigest = digest.NewVideo(cfg.Output)
		p.ser.AddSink(p.videoDigest)
	}

	if cfg.Audio != nil {
		if err := p.attachAudio(); err != nil {
			return nil, err
		}
	}

	if err := p.bindPrefs(); err != nil {
		if p.recorder != nil {
			_ = p.recorder.Close()
		}
		return nil, err
	}

	logger.Logf(logger.Allow, "pipeline", "%s", cfg)

	return p, nil
}

func (p *Pipeline) attachAudio() error {
	var err error

	p.ring, err = audio.NewRing(DefaultRingSize)
	if err != nil {
		return ConfigError.Errorf(err)
	}

	p.pump = audio.NewPump(p.cfg.Audio, p.ring)
	p.drv.SetTick(p.pump.Tick)

	p.audioOut = audio.NewOutput(p.ring)
	if p.cfg.Digest {
		p.audioDigest = digest.NewAudio()
		p.audioOut.SetDigest(p.audioDigest)
	}

	if p.cfg.AudioRecord != "" {
		p.recorder, err = audio.NewRecorder(p.cfg.AudioRecord)
		if err != nil {
			return err
		}
		p.audioOut.AddSink(p.recorder)
	}

	p.ser.AddSink(p.audioOut)

	return nil
}

// Run the pipeline until the context is cancelled, the user quits or the
// source is exhausted. A pipeline can only be run once.
//
// A decoder blocked reading the source is abandoned when Run returns.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return AlreadyRunning.Errorf()
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	p.stopCrit.Lock()
	p.stop = stop
	p.stopCrit.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.capture(gctx, stop)
	})

	// context A
	g.Go(func() error {
		return p.mgr.Run(gctx)
	})
	g.Go(func() error {
		return p.input(gctx)
	})

	// context B
	g.Go(func() error {
		return p.drv.Serve(gctx, p.queue)
	})

	g.Go(func() error {
		return p.ser.Run(gctx)
	})

	err := g.Wait()

	if p.recorder != nil {
		if cerr := p.recorder.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	logger.Logf(logger.Allow, "pipeline", "stopped: %s", p.Stats())

	return err
}

// Stop the pipeline if it is running.
func (p *Pipeline) Stop() {
	p.stopCrit.Lock()
	defer p.stopCrit.Unlock()
	if p.stop != nil {
		p.stop()
	}
}

func (p *Pipeline) capture(ctx context.Context, stop context.CancelFunc) error {
	done := make(chan error, 1)
	go func() {
		done <- p.dec.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		if capture.EndOfSource.In(err) {
			logger.Log(logger.Allow, "pipeline", "end of source")
			p.linger(ctx)
			stop()
			return nil
		}
		return err
	}
}

// linger waits until the last completed frame has been taken by the exchange
// and delivered by the serializer.
func (p *Pipeline) linger(ctx context.Context) {
	tck := time.NewTicker(time.Millisecond)
	defer tck.Stop()

	for p.dec.FrameReady() {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
		}
	}

	target := p.ser.Stats().Frames + lingerFrames
	for p.ser.Stats().Frames < target {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
		}
	}
}

func (p *Pipeline) input(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-p.events:
			in := p.controllers.HandleEvent(ev)
			if err := p.Apply(in); err != nil {
				logger.Log(logger.Allow, "pipeline", err)
			}
		}
	}
}

// AddSink adds a sink to the serializer, after the picture and the digests.
// Must not be called while the pipeline is running.
func (p *Pipeline) AddSink(s serializer.Sink) {
	p.ser.AddSink(s)
}

// Events returns the channel on which user input events should be sent.
func (p *Pipeline) Events() chan<- userinput.Event {
	return p.events
}

// Picture returns the sink that decodes the output to an image.
func (p *Pipeline) Picture() *serializer.Picture {
	return p.pic
}

// VideoDigest returns the digest of the output. Nil if digests were not
// requested in the Config.
func (p *Pipeline) VideoDigest() *digest.Video {
	return p.videoDigest
}

// AudioDigest returns the digest of the audio output. Nil if digests were not
// requested or if there is no audio.
func (p *Pipeline) AudioDigest() *digest.Audio {
	return p.audioDigest
}

// Stats is a snapshot of the counters of every part of the pipeline.
type Stats struct {
	Capture    capture.Stats
	Exchange   exchange.Stats
	Driver     scanline.Stats
	Serializer serializer.Stats
	Audio      audio.PumpStats
}

func (s Stats) String() string {
	return fmt.Sprintf("capture [%s] exchange [%s] driver [%s] serializer [%s] audio [%s]",
		s.Capture, s.Exchange, s.Driver, s.Serializer, s.Audio)
}

// Stats returns a snapshot of the pipeline counters. Safe to call from any
// goroutine.
func (p *Pipeline) Stats() Stats {
	s := Stats{
		Capture:    p.dec.Stats(),
		Exchange:   p.mgr.Stats(),
		Driver:     p.drv.Stats(),
		Serializer: p.ser.Stats(),
	}
	if p.pump != nil {
		s.Audio = p.pump.Stats()
	}
	return s
}
