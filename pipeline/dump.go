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
	"io"

	"github.com/bradleyjkemp/memviz"
)

type graphSlot struct {
	Index   int
	Display bool
}

type graph struct {
	Config       string
	PaletteIndex int
	Palette      string
	Blend        bool
	Display      int
	Slots        []graphSlot
	Stats        Stats
}

// DumpGraph writes a graphviz description of the pipeline state to the
// writer.
func (p *Pipeline) DumpGraph(w io.Writer) {
	idx, pal := p.sel.Selected()
	g := &graph{
		Config:       p.cfg.String(),
		PaletteIndex: idx,
		Palette:      pal.Name,
		Blend:        p.BlendEnabled(),
		Display:      p.mgr.Display(),
		Stats:        p.Stats(),
	}
	for i := 0; i < p.pool.Len(); i++ {
		g.Slots = append(g.Slots, graphSlot{Index: i, Display: i == g.Display})
	}
	memviz.Map(w, g)
}
