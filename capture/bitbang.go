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

package capture

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/dmgdvi/dmgdvi/video/frame"
)

// Pins is the primitive required by the BitBang decoder.
type Pins interface {
	// WaitForEdge blocks until an edge of the given polarity occurs on any of
	// the lines in the mask. Returns the sample on which the edge occurred.
	WaitForEdge(ctx context.Context, mask Lines, edge Edge) (Lines, error)

	// ReadBits returns the next sample of the bus.
	ReadBits() (Lines, error)
}

// BitBang is the edge driven decoder. It waits for the frame-sync edge and
// then reads the whole frame one sample at a time.
type BitBang struct {
	handshake
	pins  Pins
	proto *Protocol
}

// NewBitBang creates an edge driven decoder reading from pins and capturing
// into the slots of the pool.
func NewBitBang(pins Pins, pool *frame.Pool, cfg Config) (*BitBang, error) {
	proto, err := newProtocolForPool(pool, cfg)
	if err != nil {
		return nil, err
	}

	bb := &BitBang{
		pins:  pins,
		proto: proto,
	}
	bb.init(pool)

	return bb, nil
}

func (bb *BitBang) pinError(err error) error {
	if errors.Is(err, io.EOF) {
		return EndOfSource.Errorf()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return SourceError.Errorf(err)
}

// Run implements the Decoder interface. Returns nil if the context was
// cancelled and EndOfSource if the source was exhausted.
func (bb *BitBang) Run(ctx context.Context) error {
	for {
		l, err := bb.pins.WaitForEdge(ctx, FrameSync, Rising)
		if err != nil {
			return bb.pinError(err)
		}

		// the samples before the edge were not seen by the protocol
		bb.proto.Observe(l &^ FrameSync)
		bb.event(bb.proto, bb.proto.Feed(l))

		// run to completion. a frame-sync inside the frame restarts the
		// capture and the loop continues
		for bb.proto.Busy() {
			l, err = bb.pins.ReadBits()
			if err != nil {
				return bb.pinError(err)
			}
			bb.event(bb.proto, bb.proto.Feed(l))
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// the number of samples read while waiting for an edge before checking the
// context
const pinsContextCheck = 4096

// ReaderPins implements the Pins interface for a stream of samples.
type ReaderPins struct {
	r    *bufio.Reader
	prev Lines
}

// NewReaderPins creates a Pins implementation that reads one sample per byte
// from src.
func NewReaderPins(src io.Reader) *ReaderPins {
	return &ReaderPins{r: bufio.NewReaderSize(src, sequencerChunk)}
}

// ReadBits implements the Pins interface.
func (p *ReaderPins) ReadBits() (Lines, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		return 0, err
	}
	p.prev = Lines(b)
	return p.prev, nil
}

// WaitForEdge implements the Pins interface.
func (p *ReaderPins) WaitForEdge(ctx context.Context, mask Lines, edge Edge) (Lines, error) {
	for i := 0; ; i++ {
		if i%pinsContextCheck == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		prev := p.prev
		l, err := p.ReadBits()
		if err != nil {
			return 0, err
		}

		var e Lines
		if edge == Rising {
			e = l &^ prev
		} else {
			e = prev &^ l
		}
		if e&mask != 0 {
			return l, nil
		}
	}
}
