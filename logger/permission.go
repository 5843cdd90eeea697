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

package logger

import (
	"sync"
	"time"
)

// Permission implementations decide whether a log request may create a new
// entry.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow permits every log request.
var Allow Permission = allow{}

// PermissionFunc adapts an ordinary function to the Permission interface.
type PermissionFunc func() bool

// AllowLogging implements the Permission interface.
func (f PermissionFunc) AllowLogging() bool {
	return f()
}

// Interval permits at most one log request per period. Used for counters that
// change on every frame.
type Interval struct {
	crit   sync.Mutex
	period time.Duration
	last   time.Time
}

// NewInterval is the preferred method of initialisation for the Interval type.
func NewInterval(period time.Duration) *Interval {
	return &Interval{period: period}
}

// AllowLogging implements the Permission interface. A successful call starts
// a new period.
func (iv *Interval) AllowLogging() bool {
	iv.crit.Lock()
	defer iv.crit.Unlock()

	now := time.Now()
	if !iv.last.IsZero() && now.Sub(iv.last) < iv.period {
		return false
	}
	iv.last = now
	return true
}
