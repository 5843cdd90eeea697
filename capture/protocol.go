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

// Event is the result of feeding a sample to the Protocol. More than one
// event can occur on the same sample.
type Event uint8

// List of events.
const (
	// a frame-sync edge was seen. the caller should Start() the protocol if
	// a target is armed
	EventFrameSync Event = 1 << iota

	// the last pixel of the last row was written to the target
	EventFrameComplete

	// a row-sync edge was seen before all pixels of the row were received
	EventShortRow

	// a frame-sync edge was seen before all rows of the frame were received
	EventShortFrame

	// a row-sync edge was seen after the frame had completed
	EventTrailingRow
)

type protocolState int

const (
	// waiting for a frame-sync edge
	stateIdle protocolState = iota

	// waiting for a row-sync edge
	stateAwaitingRow

	// receiving pixels of a row
	stateInRow

	// frame is complete. waiting for the next frame-sync
	stateTrailing
)

// Protocol is the bus state machine. It does not allocate memory and is not
// safe to use from more than one goroutine.
type Protocol struct {
	width  int
	height int
	strobe Edge
	swap   bool

	prev  Lines
	state protocolState

	target []byte
	row    int
	col    int
	pos    int

	// shades are shifted into acc until there are four of them
	acc byte
	n   int
}

// NewProtocol creates a protocol state machine for the configuration.
func NewProtocol(cfg Config) (*Protocol, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Protocol{
		width:  cfg.Spec.Width,
		height: cfg.Spec.Height,
		strobe: cfg.Strobe,
		swap:   cfg.SwapData,
	}, nil
}

// Observe sets the previous sample without processing it. Used when samples
// have been skipped and the next call to Feed() must not see a false edge.
func (p *Protocol) Observe(l Lines) {
	p.prev = l
}

// Start capturing into the target from the next row-sync. The target must
// have room for the whole frame. Should be called in response to
// EventFrameSync.
func (p *Protocol) Start(target []byte) {
	p.target = target
	p.state = stateAwaitingRow
	p.row = 0
	p.col = 0
	p.pos = 0
	p.acc = 0
	p.n = 0
}

// Busy returns true if a frame is being captured.
func (p *Protocol) Busy() bool {
	return p.state == stateAwaitingRow || p.state == stateInRow
}

// Row returns the number of completed rows of the current frame.
func (p *Protocol) Row() int {
	return p.row
}

func (p *Protocol) abandon() {
	p.state = stateIdle
	p.target = nil
}

// Feed the next sample to the state machine.
func (p *Protocol) Feed(l Lines) Event {
	rise := l &^ p.prev
	fall := p.prev &^ l
	p.prev = l

	if rise&FrameSync != 0 {
		var ev Event
		if p.Busy() {
			ev = EventShortFrame
		}
		p.abandon()
		return ev | EventFrameSync
	}

	switch p.state {
	case stateIdle:
		return 0

	case stateTrailing:
		if rise&RowSync != 0 {
			return EventTrailingRow
		}
		return 0

	case stateAwaitingRow:
		if rise&RowSync != 0 {
			p.state = stateInRow
			p.col = 0
		}
		return 0
	}

	// stateInRow
	if rise&RowSync != 0 {
		p.abandon()
		return EventShortRow
	}

	strobe := fall
	if p.strobe == Rising {
		strobe = rise
	}
	if strobe&PixelClock == 0 {
		return 0
	}

	p.acc = p.acc<<2 | byte(l.Shade(p.swap))
	p.n++
	if p.n == 4 {
		p.target[p.pos] = p.acc
		p.pos++
		p.n = 0
		p.acc = 0
	}

	p.col++
	if p.col < p.width {
		return 0
	}

	p.row++
	if p.row < p.height {
		p.state = stateAwaitingRow
		return 0
	}

	p.state = stateTrailing
	p.target = nil
	return EventFrameComplete
}
