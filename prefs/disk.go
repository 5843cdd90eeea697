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

package prefs

import (
	"bufio"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dmgdvi/dmgdvi/curated"
)

// WarningBoilerPlate is written to the top of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand while dmgdvi is running ***"

// separates key and value on each line of the preferences file.
const keySep = " :: "

// Sentinel errors returned by the Disk type.
const (
	DuplicateKey = curated.Sentinel("prefs: key %q already added")
	InvalidKey   = curated.Sentinel("prefs: invalid key %q")
	DiskLoad     = curated.Sentinel("prefs: load: %v")
	DiskSave     = curated.Sentinel("prefs: save: %v")
	DiskValue    = curated.Sentinel("prefs: load: %s: %v")
)

// Disk represents preference values as stored on disk.
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, DiskLoad.Errorf("no path")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Path returns the file used by the Disk instance.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to list of values to store/load from disk.
func (dsk *Disk) Add(key string, p pref) error {
	if key == "" || strings.ContainsAny(key, " \t\n:") {
		return InvalidKey.Errorf(key)
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; ok {
		return DuplicateKey.Errorf(key)
	}
	dsk.entries[key] = p

	return nil
}

// Reset all values added to the Disk instance to their default values.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.snapshot() {
		if err := p.Reset(); err != nil {
			return err
		}
	}

	return nil
}

// Save current preference values to disk. Entries in the file that have not
// been added to this instance are preserved, unless they are defunct.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	stored, err := readFile(dsk.path)
	if err != nil && !os.IsNotExist(err) {
		return DiskSave.Errorf(err)
	}
	if stored == nil {
		stored = make(map[string]string)
	}

	for k, p := range dsk.entries {
		stored[k] = p.String()
	}

	keys := make([]string, 0, len(stored))
	for k := range stored {
		if !isDefunct(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var s strings.Builder
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, stored[k]))
	}

	tmp := dsk.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(s.String()), 0o600); err != nil {
		return DiskSave.Errorf(err)
	}
	if err := os.Rename(tmp, dsk.path); err != nil {
		return DiskSave.Errorf(err)
	}

	return nil
}

// Load preference values from disk. Values waiting on the top of the command
// line stack take priority over the values stored in the file.
//
// If saveOnFail is true and the file does not exist then the current values
// are saved to create the file.
func (dsk *Disk) Load(saveOnFail bool) error {
	stored, err := readFile(dsk.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return DiskLoad.Errorf(err)
		}
		if saveOnFail {
			if err := dsk.Save(); err != nil {
				return err
			}
		}
	}

	// hooks may call Save() so the entries are set without holding the lock
	entries := dsk.snapshot()

	for k, v := range stored {
		if p, ok := entries[k]; ok {
			if err := p.Set(v); err != nil {
				return DiskValue.Errorf(k, err)
			}
		}
	}

	for k, p := range entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return DiskValue.Errorf(k, err)
			}
		}
	}

	return nil
}

func (dsk *Disk) snapshot() map[string]pref {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()
	return maps.Clone(dsk.entries)
}

// readFile returns the key/value pairs in the preferences file. Lines that
// are not key/value pairs are ignored.
func readFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stored := make(map[string]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), keySep)
		if !ok {
			continue
		}
		stored[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	return stored, scanner.Err()
}
