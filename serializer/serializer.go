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

// Package serializer is the consumer of the scanline queue. It requests every
// scanline of every output frame at a fixed interval and passes the symbols to
// its sinks.
//
// A scanline that does not arrive by its deadline is replaced by the last
// scanline that did. The serializer never stalls waiting for the driver.
package serializer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/limiter"
	"github.com/dmgdvi/dmgdvi/logger"
	"github.com/dmgdvi/dmgdvi/scanline"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// Sink receives the scanlines of every output frame. The scanline passed to
// Scanline() is only valid for the duration of the call.
type Sink interface {
	BeginFrame(frameNum int)
	Scanline(row int, sl *tmds.Scanline)
	EndFrame() error
}

// Options for New().
type Options struct {
	// time to wait for each response. the scanline interval of the output
	// mode if zero
	Deadline time.Duration

	// sent in place of a scanline before the first response has arrived.
	// zero words if nil
	Blank *tmds.Scanline
}

// Stats is a snapshot of the serializer counters.
type Stats struct {
	Frames    uint64
	Underruns uint64
	Stale     uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("frames %d, underruns %d, stale %d", s.Frames, s.Underruns, s.Stale)
}

// minimum time between log entries reporting repeated scanlines
const underrunLogPeriod = time.Second

// SinkError is returned by Frame() and Run() when a sink fails.
const SinkError = curated.Sentinel("serializer: sink: %v")

// Serializer requests scanlines from the queue.
type Serializer struct {
	q        *scanline.Queue
	out      specification.Output
	deadline time.Duration
	sinks    []Sink

	// buffers that are not in flight
	free []*tmds.Scanline

	// the last scanline to arrive in time
	last *tmds.Scanline

	timer *time.Timer

	frameNum int

	frames    atomic.Uint64
	underruns atomic.Uint64
	stale     atomic.Uint64

	prevUnderruns uint64
	underrunLog   *logger.Interval
}

// New creates a serializer for the output mode.
func New(q *scanline.Queue, out specification.Output, opts Options) *Serializer {
	words := out.OutputWords()

	ser := &Serializer{
		q:        q,
		out:      out,
		deadline: opts.Deadline,
		last:     tmds.NewScanline(words),
		timer:    time.NewTimer(time.Hour),

		underrunLog: logger.NewInterval(underrunLogPeriod),
	}
	ser.timer.Stop()

	if ser.deadline <= 0 {
		ser.deadline = out.ScanlineInterval()
	}
	if opts.Blank != nil {
		ser.last.CopyFrom(opts.Blank)
	}

	for range q.Buffers() {
		ser.free = append(ser.free, tmds.NewScanline(words))
	}

	return ser
}

// SetDeadline changes the time to wait for each response. Must not be called
// while the serializer is running.
func (ser *Serializer) SetDeadline(d time.Duration) {
	if d > 0 {
		ser.deadline = d
	}
}

// AddSink adds a sink to the serializer. Must not be called while the
// serializer is running.
func (ser *Serializer) AddSink(s Sink) {
	ser.sinks = append(ser.sinks, s)
}

// FreeBuffers returns the number of scanline buffers that are not in flight,
// after taking back the buffers returned by the driver. Must not be called
// while the serializer is running.
func (ser *Serializer) FreeBuffers() int {
	ser.reclaim()
	return len(ser.free)
}

// reclaim the buffers of responses dropped by the driver.
func (ser *Serializer) reclaim() {
	for {
		select {
		case buf := <-ser.q.Returns:
			ser.free = append(ser.free, buf)
		default:
			return
		}
	}
}

// Stats returns a snapshot of the serializer counters.
func (ser *Serializer) Stats() Stats {
	return Stats{
		Frames:    ser.frames.Load(),
		Underruns: ser.underruns.Load(),
		Stale:     ser.stale.Load(),
	}
}

// Frame requests and delivers one complete output frame. A frame interrupted
// by the context is not delivered and is not counted.
func (ser *Serializer) Frame(ctx context.Context) error {
	for _, s := range ser.sinks {
		s.BeginFrame(ser.frameNum)
	}

	for row := range ser.out.Scanlines() {
		sl := ser.scanline(ctx, row)
		if ctx.Err() != nil {
			return nil
		}
		for _, s := range ser.sinks {
			s.Scanline(row, sl)
		}
	}

	ser.frameNum++
	ser.frames.Add(1)

	var err error
	for _, s := range ser.sinks {
		if e := s.EndFrame(); e != nil && err == nil {
			err = SinkError.Errorf(e)
		}
	}

	// repeated scanlines are reported no more than once per period. the count
	// accumulates in the meantime
	if u := ser.underruns.Load(); u != ser.prevUnderruns && ser.underrunLog.AllowLogging() {
		logger.Logf(logger.Allow, "serializer", "%d scanlines repeated", u-ser.prevUnderruns)
		ser.prevUnderruns = u
	}

	return err
}

// collect a response and return its buffer to the free list. returns true if
// the response was for the requested row.
func (ser *Serializer) collect(resp scanline.Response, row int) bool {
	ser.free = append(ser.free, resp.Buf)
	if resp.Row != row {
		ser.stale.Add(1)
		return false
	}
	ser.last.CopyFrom(resp.Buf)
	return true
}

func (ser *Serializer) underrun() *tmds.Scanline {
	ser.underruns.Add(1)
	return ser.last
}

// scanline requests the row and waits for it until the deadline.
func (ser *Serializer) scanline(ctx context.Context, row int) *tmds.Scanline {
	ser.timer.Reset(ser.deadline)
	defer ser.timer.Stop()

	ser.reclaim()

	// all buffers are in flight. wait for one to come back
	for len(ser.free) == 0 {
		select {
		case resp := <-ser.q.Responses:
			ser.collect(resp, -1)
		case buf := <-ser.q.Returns:
			ser.free = append(ser.free, buf)
		case <-ser.timer.C:
			return ser.underrun()
		case <-ctx.Done():
			return ser.last
		}
	}

	buf := ser.free[len(ser.free)-1]
	ser.free = ser.free[:len(ser.free)-1]

	select {
	case ser.q.Requests <- scanline.Request{Row: row, Buf: buf}:
	case <-ser.timer.C:
		ser.free = append(ser.free, buf)
		return ser.underrun()
	case <-ctx.Done():
		ser.free = append(ser.free, buf)
		return ser.last
	}

	for {
		select {
		case resp := <-ser.q.Responses:
			if ser.collect(resp, row) {
				return ser.last
			}
		case b := <-ser.q.Returns:
			ser.free = append(ser.free, b)
			if b == buf {
				// the response to this request was dropped
				return ser.underrun()
			}
		case <-ser.timer.C:
			return ser.underrun()
		case <-ctx.Done():
			return ser.last
		}
	}
}

// Run delivers frames at the refresh rate of the output mode until the
// context is cancelled.
func (ser *Serializer) Run(ctx context.Context) error {
	lmtr := limiter.NewLimiter(ser.out.RefreshRate)
	defer lmtr.Stop()

	for ctx.Err() == nil {
		if err := ser.Frame(ctx); err != nil {
			return err
		}
		lmtr.CheckTick()
		lmtr.MeasureActual()
	}

	return nil
}
