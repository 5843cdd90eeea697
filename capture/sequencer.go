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
	"context"
	"errors"
	"io"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/frame"
)

// EndOfSource is returned by Run() when the sample source is exhausted.
const EndOfSource = curated.Sentinel("capture: end of sample source")

// SourceError is returned by Run() when the sample source fails.
const SourceError = curated.Sentinel("capture: sample source: %v")

// the number of samples read from the source in one go
const sequencerChunk = 4096

// Sequencer is the streaming decoder. Samples are read in bulk from the
// source and fed to the protocol without interruption.
type Sequencer struct {
	handshake
	src   io.Reader
	proto *Protocol
	buf   []byte
}

// NewSequencer creates a streaming decoder reading samples from src and
// capturing into the slots of the pool.
func NewSequencer(src io.Reader, pool *frame.Pool, cfg Config) (*Sequencer, error) {
	proto, err := newProtocolForPool(pool, cfg)
	if err != nil {
		return nil, err
	}

	seq := &Sequencer{
		src:   src,
		proto: proto,
		buf:   make([]byte, sequencerChunk),
	}
	seq.init(pool)

	return seq, nil
}

func newProtocolForPool(pool *frame.Pool, cfg Config) (*Protocol, error) {
	ps := pool.Spec()
	if ps.Width != cfg.Spec.Width || ps.Height != cfg.Spec.Height {
		return nil, PoolMismatch.Errorf(ps.Width, ps.Height, cfg.Spec.Width, cfg.Spec.Height)
	}
	return NewProtocol(cfg)
}

// Run implements the Decoder interface. Returns nil if the context was
// cancelled and EndOfSource if the source was exhausted.
func (seq *Sequencer) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := seq.src.Read(seq.buf)
		for _, b := range seq.buf[:n] {
			seq.event(seq.proto, seq.proto.Feed(Lines(b)))
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return EndOfSource.Errorf()
			}
			return SourceError.Errorf(err)
		}
	}
}
