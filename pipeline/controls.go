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
	"path/filepath"
	"strings"

	"github.com/dmgdvi/dmgdvi/logger"
	"github.com/dmgdvi/dmgdvi/paths"
	"github.com/dmgdvi/dmgdvi/prefs"
	"github.com/dmgdvi/dmgdvi/userinput"
)

func (p *Pipeline) bindPrefs() error {
	p.palettePref.SetHookPost(func(v prefs.Value) error {
		p.sel.Set(v.(int))
		return nil
	})
	p.blendPref.SetHookPost(func(v prefs.Value) error {
		p.mgr.SetBlendEnabled(v.(bool))
		return nil
	})

	if err := p.palettePref.Set(p.cfg.Palette); err != nil {
		return ConfigError.Errorf(err)
	}
	if err := p.blendPref.Set(p.cfg.Blend); err != nil {
		return ConfigError.Errorf(err)
	}

	if p.cfg.PrefsFile != "" {
		var err error
		p.dsk, err = prefs.NewDisk(p.cfg.PrefsFile)
		if err != nil {
			return ConfigError.Errorf(err)
		}
		if err := p.dsk.Add(prefPalette, &p.palettePref); err != nil {
			return ConfigError.Errorf(err)
		}
		if err := p.dsk.Add(prefBlend, &p.blendPref); err != nil {
			return ConfigError.Errorf(err)
		}
		if err := p.dsk.Load(true); err != nil {
			return ConfigError.Errorf(err)
		}
	} else {
		for key, pref := range map[string]interface{ Set(prefs.Value) error }{
			prefPalette: &p.palettePref,
			prefBlend:   &p.blendPref,
		} {
			if ok, v := prefs.GetCommandLinePref(key); ok {
				if err := pref.Set(v); err != nil {
					return ConfigError.Errorf(err)
				}
			}
		}
	}

	// the stored index may be out of range for the palette list
	if idx := p.sel.Index(); idx != p.palettePref.Get().(int) {
		if err := p.palettePref.Set(idx); err != nil {
			return ConfigError.Errorf(err)
		}
	}

	return nil
}

func (p *Pipeline) save() {
	if p.dsk == nil {
		return
	}
	if err := p.dsk.Save(); err != nil {
		logger.Log(logger.Allow, "pipeline", err)
	}
}

// SetPalette selects the palette by index, wrapping out of range values.
// The selection is saved to the preferences file. Returns the selected index.
func (p *Pipeline) SetPalette(index int) int {
	index = p.sel.Set(index)
	if err := p.palettePref.Set(index); err != nil {
		logger.Log(logger.Allow, "pipeline", err)
	}
	if p.swatch != nil {
		p.swatch.Show(p.cfg.SwatchFrames)
	}
	p.save()
	logger.Logf(logger.Allow, "pipeline", "palette %d: %s", index, p.sel.Get(index).Name)
	return index
}

// PaletteIndex returns the index of the selected palette.
func (p *Pipeline) PaletteIndex() int {
	return p.sel.Index()
}

// SetBlendEnabled turns blending of consecutive frames on or off. The setting
// is saved to the preferences file.
func (p *Pipeline) SetBlendEnabled(enabled bool) {
	if err := p.blendPref.Set(enabled); err != nil {
		logger.Log(logger.Allow, "pipeline", err)
	}
	p.save()
}

// BlendEnabled returns whether frame blending is on.
func (p *Pipeline) BlendEnabled() bool {
	return p.blendPref.Get().(bool)
}

// Apply the intent. Safe to call from any goroutine.
func (p *Pipeline) Apply(in userinput.Intent) error {
	switch in {
	case userinput.PalettePrev:
		p.SetPalette(p.sel.Index() - 1)
	case userinput.PaletteNext:
		p.SetPalette(p.sel.Index() + 1)
	case userinput.BlendToggle:
		p.SetBlendEnabled(!p.BlendEnabled())
	case userinput.Snapshot:
		name := strings.ToLower(strings.ReplaceAll(p.sel.Current().Name, " ", "_"))
		fn, err := p.pic.Save(filepath.Join(p.cfg.SnapshotDir, paths.UniqueFilename("snapshot", name)))
		if err != nil {
			return err
		}
		logger.Logf(logger.Allow, "pipeline", "snapshot: %s", fn)
	case userinput.Quit:
		p.Stop()
	}
	return nil
}
