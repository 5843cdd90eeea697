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

package tmds

import (
	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/video/palette"
)

// Word is one serializer word of a channel. Each word carries one or two
// symbols, the first symbol in the least significant bits.
type Word uint32

// The three TMDS channels, numbered as the DVI lanes.
const (
	Blue = iota
	Green
	Red
	NumChannels
)

// Scanline is the output of the encoder for one scanline.
type Scanline struct {
	Channels [NumChannels][]Word
}

// NewScanline allocates a scanline of the number of words per channel.
func NewScanline(words int) *Scanline {
	sl := &Scanline{}
	for i := range sl.Channels {
		sl.Channels[i] = make([]Word, words)
	}
	return sl
}

// Words returns the number of words in each channel.
func (sl *Scanline) Words() int {
	return len(sl.Channels[0])
}

// CopyFrom copies the words of another scanline with the same number of
// words.
func (sl *Scanline) CopyFrom(o *Scanline) {
	for i := range sl.Channels {
		copy(sl.Channels[i], o.Channels[i])
	}
}

// Mode selects how symbols are chosen for each pixel.
type Mode int

// List of valid Mode values.
const (
	// each pixel is encoded as balanced pairs of symbols. stateless and
	// requires an even scale factor
	PairMode Mode = iota

	// each symbol is chosen according to the running disparity of the
	// channel. the running disparity is kept between calls
	FullRes
)

func (m Mode) String() string {
	switch m {
	case PairMode:
		return "pair"
	case FullRes:
		return "fullres"
	}
	return "unknown"
}

// Config describes the layout of the scanline.
type Config struct {
	// number of captured pixels in each row
	Width int

	// number of times each pixel is repeated horizontally
	Scale int

	// number of symbols in each serializer word. one or two
	SymbolsPerWord int

	// total number of words per channel, including the border
	OutputWords int

	Mode Mode
}

// Configuration faults returned by NewEncoder.
const (
	BadSymbolsPerWord = curated.Sentinel("tmds: symbols per word must be one or two (%d)")
	BadWidth          = curated.Sentinel("tmds: width (%d) is not a positive multiple of four")
	BadScale          = curated.Sentinel("tmds: scale (%d) must be at least one")
	NarrowOutput      = curated.Sentinel("tmds: output of %d words is narrower than the content (%d words)")
	UnevenBorder      = curated.Sentinel("tmds: border of %d words cannot be split evenly")
	OddScale          = curated.Sentinel("tmds: scale (%d) must be even for pair mode")
	SplitBorder       = curated.Sentinel("tmds: border of %d words splits a symbol pair")
)

// Encoder produces scanlines of TMDS words from packed rows.
//
// In PairMode an Encoder can be shared between goroutines. In FullRes mode
// the Encoder holds the running disparity of each channel and must only be
// used by one goroutine.
type Encoder struct {
	cfg Config

	rowBytes     int
	contentWords int
	borderWords  int

	// number of words per pixel in PairMode
	wordsPerPixel int

	// running disparity of each channel in FullRes mode
	disparity [NumChannels]int
}

// NewEncoder checks the configuration and returns an encoder for it.
// Configuration faults are always detected here and never when encoding.
func NewEncoder(cfg Config) (*Encoder, error) {
	if cfg.SymbolsPerWord != 1 && cfg.SymbolsPerWord != 2 {
		return nil, BadSymbolsPerWord.Errorf(cfg.SymbolsPerWord)
	}
	if cfg.Width <= 0 || cfg.Width%4 != 0 {
		return nil, BadWidth.Errorf(cfg.Width)
	}
	if cfg.Scale < 1 {
		return nil, BadScale.Errorf(cfg.Scale)
	}

	enc := &Encoder{
		cfg:          cfg,
		rowBytes:     cfg.Width / 4,
		contentWords: cfg.Width * cfg.Scale / cfg.SymbolsPerWord,
	}

	if cfg.OutputWords < enc.contentWords {
		return nil, NarrowOutput.Errorf(cfg.OutputWords, enc.contentWords)
	}
	border := cfg.OutputWords - enc.contentWords
	if border%2 != 0 {
		return nil, UnevenBorder.Errorf(border)
	}
	enc.borderWords = border / 2

	if cfg.Mode == PairMode {
		if cfg.Scale%2 != 0 {
			return nil, OddScale.Errorf(cfg.Scale)
		}
		if cfg.SymbolsPerWord == 1 && enc.borderWords%2 != 0 {
			return nil, SplitBorder.Errorf(enc.borderWords)
		}
		enc.wordsPerPixel = cfg.Scale / cfg.SymbolsPerWord
	}

	return enc, nil
}

// Config returns the configuration of the encoder.
func (enc *Encoder) Config() Config {
	return enc.cfg
}

// OutputWords is the number of words per channel in each scanline.
func (enc *Encoder) OutputWords() int {
	return enc.cfg.OutputWords
}

// ContentWords is the number of words per channel of captured content.
func (enc *Encoder) ContentWords() int {
	return enc.contentWords
}

// BorderWords is the number of border words either side of the content.
func (enc *Encoder) BorderWords() int {
	return enc.borderWords
}

// Reset clears the running disparity of every channel. The equivalent of a
// blanking period on a DVI link.
func (enc *Encoder) Reset() {
	enc.disparity = [NumChannels]int{}
}

// Disparity returns the running disparity of the channel. Always zero in
// PairMode.
func (enc *Encoder) Disparity(channel int) int {
	return enc.disparity[channel]
}

// channels splits the colour into the channel values in lane order.
func channels(c palette.RGB) [NumChannels]uint8 {
	return [NumChannels]uint8{Blue: c.Blue(), Green: c.Green(), Red: c.Red()}
}

// Encode the packed row with the palette. The row must be at least
// Width/4 bytes long and every channel of the scanline must have at least
// OutputWords words.
func (enc *Encoder) Encode(row []byte, pal *palette.Palette, sl *Scanline) {
	enc.encode(row[:enc.rowBytes], pal, sl)
}

// EncodeBorder fills the scanline with the border colour of the palette.
func (enc *Encoder) EncodeBorder(pal *palette.Palette, sl *Scanline) {
	enc.encode(nil, pal, sl)
}

// a nil row produces a border scanline
func (enc *Encoder) encode(row []byte, pal *palette.Palette, sl *Scanline) {
	if enc.cfg.Mode == FullRes {
		enc.encodeFullRes(row, pal, sl)
		return
	}
	enc.encodePairs(row, pal, sl)
}

// the words emitted for each shade of each channel. the two words alternate
// when there is one symbol per word
type pairLUT [NumChannels][palette.NumColors][2]Word

func (enc *Encoder) pairLUT(pal *palette.Palette, lut *pairLUT) {
	for s, c := range pal.Colors {
		for ch, v := range channels(c) {
			p := PairFor(v)
			if enc.cfg.SymbolsPerWord == 2 {
				lut[ch][s] = [2]Word{Word(p), Word(p)}
			} else {
				lut[ch][s] = [2]Word{Word(p.First()), Word(p.Second())}
			}
		}
	}
}

func (enc *Encoder) encodePairs(row []byte, pal *palette.Palette, sl *Scanline) {
	var lut pairLUT
	enc.pairLUT(pal, &lut)

	for ch := range NumChannels {
		out := sl.Channels[ch][:enc.cfg.OutputWords]
		l := &lut[ch]
		b := l[palette.BorderIndex]

		w := 0
		for ; w < enc.borderWords; w++ {
			out[w] = b[w&1]
		}

		for _, packed := range row {
			for shift := 6; shift >= 0; shift -= 2 {
				e := &l[(packed>>shift)&0x03]
				for k := range enc.wordsPerPixel {
					out[w] = e[k&1]
					w++
				}
			}
		}

		for k := 0; w < len(out); k++ {
			out[w] = b[k&1]
			w++
		}
	}
}

// packer assembles symbols into words for FullRes mode
type packer struct {
	out  []Word
	w    int
	half bool
	two  bool
	cur  Word
}

func (p *packer) push(s Symbol) {
	if !p.two {
		p.out[p.w] = Word(s)
		p.w++
		return
	}
	if !p.half {
		p.cur = Word(s)
		p.half = true
		return
	}
	p.out[p.w] = p.cur | Word(s)<<SymbolBits
	p.w++
	p.half = false
}

func (enc *Encoder) encodeFullRes(row []byte, pal *palette.Palette, sl *Scanline) {
	var lut [NumChannels][palette.NumColors]Variants
	for s, c := range pal.Colors {
		for ch, v := range channels(c) {
			lut[ch][s] = Lookup(v)
		}
	}

	spw := enc.cfg.SymbolsPerWord
	borderSymbols := enc.borderWords * spw
	outputSymbols := enc.cfg.OutputWords * spw

	for ch := range NumChannels {
		l := &lut[ch]
		b := &l[palette.BorderIndex]
		rd := enc.disparity[ch]
		p := packer{out: sl.Channels[ch][:enc.cfg.OutputWords], two: spw == 2}

		n := 0
		for ; n < borderSymbols; n++ {
			e := b.Select(rd)
			rd += e.Disparity()
			p.push(e.Symbol())
		}

		for _, packed := range row {
			for shift := 6; shift >= 0; shift -= 2 {
				v := &l[(packed>>shift)&0x03]
				for range enc.cfg.Scale {
					e := v.Select(rd)
					rd += e.Disparity()
					p.push(e.Symbol())
					n++
				}
			}
		}

		for ; n < outputSymbols; n++ {
			e := b.Select(rd)
			rd += e.Disparity()
			p.push(e.Symbol())
		}

		enc.disparity[ch] = rd
	}
}
