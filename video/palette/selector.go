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

package palette

import (
	"sync/atomic"

	"github.com/dmgdvi/dmgdvi/curated"
)

// EmptySelector is returned by NewSelector when the list of palettes is empty.
const EmptySelector = curated.Sentinel("palette: selector needs at least one palette")

// Selector is the list of palettes that can be selected and the index of the
// currently active palette.
//
// Selecting a palette is safe to do from any goroutine. The index and the
// palette are published together so that Index(), Current() and Selected()
// never disagree about the active palette.
type Selector struct {
	list   []*Palette
	active atomic.Pointer[selection]
}

// the active palette and its position in the list
type selection struct {
	index int
	pal   *Palette
}

// NewSelector creates a Selector for a copy of the list of palettes. The
// first palette in the list is active.
func NewSelector(list []Palette) (*Selector, error) {
	if len(list) == 0 {
		return nil, EmptySelector.Errorf()
	}

	sel := &Selector{
		list: make([]*Palette, len(list)),
	}
	for i := range list {
		p := list[i]
		sel.list[i] = &p
	}

	sel.Set(0)
	return sel, nil
}

// Wrap returns the index wrapped to the range 0 to n-1. An index of n wraps
// to zero and an index of -1 wraps to n-1.
func Wrap(index int, n int) int {
	index %= n
	if index < 0 {
		index += n
	}
	return index
}

// Set selects the palette at the index. Out of range values are wrapped. The
// selected index is returned.
func (sel *Selector) Set(index int) int {
	index = Wrap(index, len(sel.list))
	sel.active.Store(&selection{index: index, pal: sel.list[index]})
	return index
}

// Step selects the palette relative to the currently selected palette.
func (sel *Selector) Step(delta int) int {
	return sel.Set(sel.Index() + delta)
}

// Index returns the index of the currently selected palette.
func (sel *Selector) Index() int {
	return sel.active.Load().index
}

// Current returns the currently selected palette. The palette must not be
// modified.
func (sel *Selector) Current() *Palette {
	return sel.active.Load().pal
}

// Selected returns the index and the palette of the current selection as a
// single observation.
func (sel *Selector) Selected() (int, *Palette) {
	a := sel.active.Load()
	return a.index, a.pal
}

// Len returns the number of palettes in the selector.
func (sel *Selector) Len() int {
	return len(sel.list)
}

// Get returns the palette at the index. Out of range values are wrapped.
func (sel *Selector) Get(index int) *Palette {
	return sel.list[Wrap(index, len(sel.list))]
}
