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
	"fmt"
	"strings"
	"time"

	"github.com/dmgdvi/dmgdvi/audio"
	"github.com/dmgdvi/dmgdvi/capture"
	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/frame"
	"github.com/dmgdvi/dmgdvi/video/palette"
	"github.com/dmgdvi/dmgdvi/video/specification"
	"github.com/dmgdvi/dmgdvi/video/tmds"
)

// Strategy selects the capture decoder.
type Strategy int

// List of valid Strategy values.
const (
	// samples are gathered in chunks and fed through the protocol machine
	StrategySequencer Strategy = iota

	// the decoder waits for the frame-sync edge and then polls the lines
	StrategyBitBang
)

func (s Strategy) String() string {
	switch s {
	case StrategySequencer:
		return "sequencer"
	case StrategyBitBang:
		return "bitbang"
	}
	return "unknown"
}

// UnknownStrategy is returned by SearchStrategy() when no strategy matches.
const UnknownStrategy = curated.Sentinel("pipeline: unknown capture strategy (%s)")

// SearchStrategy returns the strategy with the name. The search is case
// insensitive.
func SearchStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{StrategySequencer, StrategyBitBang} {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, UnknownStrategy.Errorf(name)
}

// ConfigError is returned by New() when the configuration is not usable.
const ConfigError = curated.Sentinel("pipeline: %v")

// Defaults used by New() for zero values in the Config.
const (
	DefaultSlots      = 3
	DefaultQueueDepth = 4
	DefaultRingSize   = 4096
)

// preference keys
const (
	prefPalette = "palette.index"
	prefBlend   = "video.blend"
)

// Config for New().
type Config struct {
	Capture  capture.Config
	Output   specification.Output
	Mode     tmds.Mode
	Strategy Strategy

	// number of frame slots. at least two
	Slots int

	// depth of the scanline queue
	QueueDepth int

	// the palettes that can be selected and the initial selection. the
	// built-in schemes if empty
	Palettes []palette.Palette
	Palette  int

	// frame blending from the start
	Blend bool

	// shown until the first capture completes. can be nil
	Splash *frame.Frame

	// number of frames the palette swatch is shown after a palette change.
	// the swatch is not used if negative
	SwatchFrames int

	// time the serializer waits for each scanline. the scanline interval of
	// the output mode if zero
	Deadline time.Duration

	// path of the preferences file. preferences are not persisted if empty
	PrefsFile string

	// source of audio samples. no audio if nil
	Audio audio.ADC

	// file to record the audio to. not recorded if empty
	AudioRecord string

	// collect SHA-1 digests of the output
	Digest bool

	// directory for snapshots. the current directory if empty
	SnapshotDir string
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s %s %s %s slots=%d", cfg.Capture.Spec.ID, cfg.Output, cfg.Mode, cfg.Strategy, cfg.Slots)
}

func (cfg *Config) normalise() error {
	if cfg.Capture.Spec.Width == 0 {
		cfg.Capture = capture.DefaultConfig
	}
	if cfg.Output.ID == "" {
		cfg.Output = specification.Output640x480
	}
	if cfg.Slots == 0 {
		cfg.Slots = DefaultSlots
	}
	if cfg.Slots < 2 {
		return ConfigError.Errorf(fmt.Sprintf("%d slots is too few", cfg.Slots))
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}
	if len(cfg.Palettes) == 0 {
		cfg.Palettes = palette.Schemes
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "."
	}
	return nil
}
