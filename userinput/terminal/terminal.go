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

// Package terminal reads user input from a terminal in raw mode and sends it
// as userinput events. Use it when the pipeline runs without a preview
// window.
//
// The terminal has no key release so every key is sent as a press followed
// immediately by a release. SELECT can therefore not be held and the
// terminal relies on the hotkeys of the userinput package.
package terminal

import (
	"context"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/userinput"
)

// Sentinel errors returned by the terminal package.
const (
	NotTerminal   = curated.Sentinel("terminal: %s is not a terminal")
	TerminalError = curated.Sentinel("terminal: %v")
)

// Terminal is a raw mode terminal.
type Terminal struct {
	input   *os.File
	canAttr unix.Termios
	rawAttr unix.Termios
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The file is usually os.Stdin.
func NewTerminal(input *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(input.Fd())) {
		return nil, NotTerminal.Errorf(input.Name())
	}

	t := &Terminal{input: input}

	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
		return nil, TerminalError.Errorf(err)
	}
	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)

	return t, nil
}

// RawMode puts the terminal into raw mode.
func (t *Terminal) RawMode() error {
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.rawAttr); err != nil {
		return TerminalError.Errorf(err)
	}
	return nil
}

// CanonicalMode restores the terminal to the mode it was in when NewTerminal()
// was called.
func (t *Terminal) CanonicalMode() error {
	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr); err != nil {
		return TerminalError.Errorf(err)
	}
	return nil
}

// Size returns the width and height of the terminal in characters.
func (t *Terminal) Size() (int, int, error) {
	w, h, err := term.GetSize(int(t.input.Fd()))
	if err != nil {
		return 0, 0, TerminalError.Errorf(err)
	}
	return w, h, nil
}

// Run reads the terminal in raw mode and sends events until the context is
// cancelled or the user quits. The terminal is returned to canonical mode
// before Run returns.
//
// The reading goroutine remains blocked in Read() until the next key press
// after the context is cancelled.
func (t *Terminal) Run(ctx context.Context, events chan<- userinput.Event) error {
	if err := t.RawMode(); err != nil {
		return err
	}
	defer t.CanonicalMode()

	keys := make(chan []byte)
	errs := make(chan error, 1)

	go func() {
		b := make([]byte, 16)
		for {
			n, err := t.input.Read(b)
			if err != nil {
				errs <- err
				return
			}
			k := make([]byte, n)
			copy(k, b)
			select {
			case keys <- k:
			case <-ctx.Done():
				return
			}
		}
	}()

	var dec Decoder

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return TerminalError.Errorf(err)
		case k := <-keys:
			evs := dec.Decode(k)
			evs = append(evs, dec.Flush()...)
			for _, ev := range evs {
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
				if _, ok := ev.(userinput.EventQuit); ok {
					return nil
				}
			}
		}
	}
}
