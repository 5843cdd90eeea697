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

package preview

import (
	"context"
	"image"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dmgdvi/dmgdvi/curated"
	"github.com/dmgdvi/dmgdvi/limiter"
	"github.com/dmgdvi/dmgdvi/logger"
	"github.com/dmgdvi/dmgdvi/userinput"
)

// PreviewError is returned when the window cannot be created.
const PreviewError = curated.Sentinel("preview: %v")

// Source of the picture to show. The function is called with the most
// recent complete picture and its frame number.
type Source interface {
	Borrow(f func(img *image.RGBA, frameNum int))
}

// Window is the preview window.
type Window struct {
	src    Source
	window *sdl.Window
	glctx  sdl.GLContext

	tex       uint32
	create    bool
	lastFrame int
	picW      int
	picH      int
}

// NewWindow creates the window with a size suitable for the picture. Must be
// called from the same thread as Run().
func NewWindow(title string, src Source, width, height int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, PreviewError.Errorf(err)
	}

	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2); err != nil {
		sdl.Quit()
		return nil, PreviewError.Errorf(err)
	}
	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1); err != nil {
		sdl.Quit()
		return nil, PreviewError.Errorf(err)
	}

	win := &Window{
		src:       src,
		create:    true,
		lastFrame: -1,
	}

	var err error
	win.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, PreviewError.Errorf(err)
	}

	win.glctx, err = win.window.GLCreateContext()
	if err != nil {
		win.window.Destroy()
		sdl.Quit()
		return nil, PreviewError.Errorf(err)
	}

	if err := sdl.GLSetSwapInterval(1); err != nil {
		logger.Logf(logger.Allow, "preview", "vsync: %v", err)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, PreviewError.Errorf(err)
	}

	logger.Logf(logger.Allow, "preview", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "preview", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.GenTextures(1, &win.tex)
	gl.BindTexture(gl.TEXTURE_2D, win.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return win, nil
}

// Destroy the window and release SDL.
func (win *Window) Destroy() {
	if win.tex != 0 {
		gl.DeleteTextures(1, &win.tex)
		win.tex = 0
	}
	sdl.GLDeleteContext(win.glctx)
	if err := win.window.Destroy(); err != nil {
		logger.Logf(logger.Allow, "preview", "destroy: %v", err)
	}
	sdl.Quit()
}

// Run services the window until the context is cancelled or the window is
// closed. Events are sent without blocking and dropped if the channel is full.
func (win *Window) Run(ctx context.Context, events chan<- userinput.Event) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	lmtr := limiter.NewLimiter(60)
	defer lmtr.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !win.poll(events) {
			return nil
		}
		win.render()

		lmtr.CheckTick()
	}
}

// poll returns false if the window has been closed.
func (win *Window) poll(events chan<- userinput.Event) bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			send(events, userinput.EventQuit{})
			return false

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			send(events, userinput.EventKeyboard{
				Key:  sdl.GetScancodeName(ev.Keysym.Scancode),
				Down: ev.Type == sdl.KEYDOWN,
				Mod:  keyMod(sdl.GetModState()),
			})
		}
	}
	return true
}

func send(events chan<- userinput.Event, ev userinput.Event) {
	select {
	case events <- ev:
	default:
		logger.Log(logger.Allow, "preview", "dropped input event")
	}
}

func keyMod(m sdl.Keymod) userinput.KeyMod {
	switch {
	case m&(sdl.KMOD_LALT|sdl.KMOD_RALT) != 0:
		return userinput.KeyModAlt
	case m&(sdl.KMOD_LSHIFT|sdl.KMOD_RSHIFT) != 0:
		return userinput.KeyModShift
	case m&(sdl.KMOD_LCTRL|sdl.KMOD_RCTRL) != 0:
		return userinput.KeyModCtrl
	}
	return userinput.KeyModNone
}

func (win *Window) render() {
	win.upload()

	dw, dh := win.window.GLGetDrawableSize()
	gl.Viewport(0, 0, dw, dh)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if win.picW > 0 && win.picH > 0 {
		x, y, w, h := fit(int(dw), int(dh), win.picW, win.picH)
		gl.Viewport(int32(x), int32(y), int32(w), int32(h))

		gl.MatrixMode(gl.PROJECTION)
		gl.LoadIdentity()
		gl.Ortho(0, 1, 1, 0, -1, 1)
		gl.MatrixMode(gl.MODELVIEW)
		gl.LoadIdentity()

		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, win.tex)
		gl.Begin(gl.QUADS)
		gl.TexCoord2f(0, 0)
		gl.Vertex2f(0, 0)
		gl.TexCoord2f(1, 0)
		gl.Vertex2f(1, 0)
		gl.TexCoord2f(1, 1)
		gl.Vertex2f(1, 1)
		gl.TexCoord2f(0, 1)
		gl.Vertex2f(0, 1)
		gl.End()
		gl.Disable(gl.TEXTURE_2D)
	}

	win.window.GLSwap()
}

// upload the picture to the texture if it has changed since the last upload.
func (win *Window) upload() {
	win.src.Borrow(func(img *image.RGBA, frameNum int) {
		if img == nil || frameNum == win.lastFrame {
			return
		}
		win.lastFrame = frameNum

		sz := img.Bounds().Size()
		if sz.X != win.picW || sz.Y != win.picH {
			win.picW = sz.X
			win.picH = sz.Y
			win.create = true
		}

		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride)/4)
		defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

		gl.BindTexture(gl.TEXTURE_2D, win.tex)
		if win.create {
			win.create = false
			gl.TexImage2D(gl.TEXTURE_2D, 0,
				gl.RGBA, int32(sz.X), int32(sz.Y), 0,
				gl.RGBA, gl.UNSIGNED_BYTE,
				gl.Ptr(img.Pix))
		} else {
			gl.TexSubImage2D(gl.TEXTURE_2D, 0,
				0, 0, int32(sz.X), int32(sz.Y),
				gl.RGBA, gl.UNSIGNED_BYTE,
				gl.Ptr(img.Pix))
		}
	})
}
