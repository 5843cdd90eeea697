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

// Package scanline services the scanline requests of the serializer. Each
// request names an output scanline and carries the buffer to encode into. The
// response is always sent, with the border substituted for scanlines outside
// the captured frame and for when there is no frame to display.
package scanline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// FrameSource is the reader side of the frame exchange.
type FrameSource interface {
	Acquire() (*frame.Frame, bool)
	Release()
}

// PaletteSource provides the palette for each scanline.
type PaletteSource interface {
	Current() *palette.Palette
}

// Request for an output scanline.
type Request struct {
	Row int
	Buf *tmds.Scanline
}

// Response to a Request. Buf is the buffer of the Request.
type Response struct {
	Row    int
	Buf    *tmds.Scanline
	Border bool
}

// Queue connects the serializer to the Driver.
//
// The buffer of a response that could not be sent is handed back on Returns.
// Returns can hold every buffer of the queue so the send never blocks.
type Queue struct {
	Requests  chan Request
	Responses chan Response
	Returns   chan *tmds.Scanline
}

// NewQueue creates a Queue that can hold depth requests and responses.
func NewQueue(depth int) *Queue {
	depth = max(depth, 1)
	q := &Queue{
		Requests:  make(chan Request, depth),
		Responses: make(chan Response, depth),
	}
	q.Returns = make(chan *tmds.Scanline, q.Buffers())
	return q
}

// Buffers is the number of scanline buffers needed to keep the queue full:
// every request and response in the queue, plus one being rendered by the
// driver and one in transit.
func (q *Queue) Buffers() int {
	return cap(q.Requests) + cap(q.Responses) + 2
}

// Stats is a snapshot of the driver counters.
type Stats struct {
	Rendered uint64
	Borders  uint64
	Dropped  uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("rendered %d, borders %d, dropped %d", s.Rendered, s.Borders, s.Dropped)
}

// Driver encodes the scanlines of the display frame.
type Driver struct {
	enc      *tmds.Encoder
	frames   FrameSource
	palettes PaletteSource
	geom     specification.Output
	offset   int

	tick func()

	rendered atomic.Uint64
	borders  atomic.Uint64
	dropped  atomic.Uint64
}

// NewDriver creates a driver for the output mode. The captured frame starts at
// scanline offset.
func NewDriver(enc *tmds.Encoder, frames FrameSource, palettes PaletteSource, geom specification.Output, offset int) *Driver {
	return &Driver{
		enc:      enc,
		frames:   frames,
		palettes: palettes,
		geom:     geom,
		offset:   offset,
	}
}

// SetTick sets the function called by Serve() after every response. The
// function must return quickly. A nil function disables the tick.
func (drv *Driver) SetTick(tick func()) {
	drv.tick = tick
}

// Stats returns a snapshot of the driver counters.
func (drv *Driver) Stats() Stats {
	return Stats{
		Rendered: drv.rendered.Load(),
		Borders:  drv.borders.Load(),
		Dropped:  drv.dropped.Load(),
	}
}

// Render the scanline into buf.
func (drv *Driver) Render(row int, buf *tmds.Scanline) Response {
	pal := drv.palettes.Current()

	src := row - drv.offset
	if src < 0 || row >= drv.geom.Scanlines() {
		return drv.border(row, pal, buf)
	}

	f, ok := drv.frames.Acquire()
	if !ok {
		return drv.border(row, pal, buf)
	}
	if src >= f.Height {
		drv.frames.Release()
		return drv.border(row, pal, buf)
	}

	drv.enc.Encode(f.Row(src), pal, buf)
	drv.frames.Release()
	drv.rendered.Add(1)

	return Response{Row: row, Buf: buf}
}

func (drv *Driver) border(row int, pal *palette.Palette, buf *tmds.Scanline) Response {
	drv.enc.EncodeBorder(pal, buf)
	drv.borders.Add(1)
	return Response{Row: row, Buf: buf, Border: true}
}

// Serve requests from the queue until the context is cancelled or the request
// channel is closed. The response is dropped if the response channel is full
// and its buffer is sent on the Returns channel.
func (drv *Driver) Serve(ctx context.Context, q *Queue) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case req, ok := <-q.Requests:
			if !ok {
				return nil
			}

			resp := drv.Render(req.Row, req.Buf)
			select {
			case q.Responses <- resp:
			default:
				drv.dropped.Add(1)
				select {
				case q.Returns <- resp.Buf:
				default:
				}
			}

			if drv.tick != nil {
				drv.tick()
			}
		}
	}
}
