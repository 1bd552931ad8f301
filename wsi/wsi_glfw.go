// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build glfw

package wsi

import (
	"errors"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/ares/event"
)

func init() {
	// GLFW must be used from the main thread.
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		slog.Warn("wsi: GLFW unavailable", "err", err)
		initDummy()
		return
	}
	newWindow = newWindowGLFW
	dispatch = glfw.PollEvents
	platform = GLFW
}

// windowGLFW implements Window using a GLFW window with
// an OpenGL ES 2.0 context.
type windowGLFW struct {
	event.Queue
	win           *glfw.Window
	width, height int
	title         string
	closed        bool
}

func newWindowGLFW(width, height int, title string) (Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Visible, glfw.False)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	w := &windowGLFW{
		win:    win,
		width:  width,
		height: height,
		title:  title,
	}
	win.SetKeyCallback(w.onKey)
	win.SetMouseButtonCallback(w.onButton)
	win.SetCursorPosCallback(w.onCursor)
	win.SetScrollCallback(w.onScroll)
	win.SetSizeCallback(w.onSize)
	win.SetCloseCallback(w.onClose)
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return w, nil
}

func (w *windowGLFW) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	var kind event.Type
	switch action {
	case glfw.Press:
		kind = event.KeyPress
	case glfw.Release:
		kind = event.KeyRelease
	default:
		return
	}
	w.Push(event.KeyEvent{Kind: kind, Key: keyFrom(int(key))})
}

func (w *windowGLFW) onButton(win *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	kind := event.TouchRelease
	if action == glfw.Press {
		kind = event.TouchPress
	}
	x, y := win.GetCursorPos()
	w.Push(event.TouchEvent{Kind: kind, Touch: touchFrom(int(btn)), X: float32(x), Y: float32(y)})
}

func (w *windowGLFW) onCursor(_ *glfw.Window, x, y float64) {
	w.Push(event.TouchEvent{Kind: event.TouchMove, X: float32(x), Y: float32(y)})
}

func (w *windowGLFW) onScroll(win *glfw.Window, _, yoff float64) {
	t := scrollFrom(yoff)
	if t == event.TouchNone {
		return
	}
	x, y := win.GetCursorPos()
	w.Push(event.TouchEvent{Kind: event.TouchPress, Touch: t, X: float32(x), Y: float32(y)})
}

func (w *windowGLFW) onSize(_ *glfw.Window, width, height int) {
	w.width, w.height = width, height
}

func (w *windowGLFW) onClose(*glfw.Window) {
	w.Push(event.SystemEvent{Kind: event.Close})
}

func (w *windowGLFW) Map() error {
	if w.closed {
		return errClosed
	}
	w.win.Show()
	return nil
}

func (w *windowGLFW) Unmap() error {
	if w.closed {
		return errClosed
	}
	w.win.Hide()
	return nil
}

func (w *windowGLFW) Resize(width, height int) error {
	if w.closed {
		return errClosed
	}
	w.win.SetSize(width, height)
	w.width, w.height = width, height
	return nil
}

func (w *windowGLFW) SetTitle(title string) error {
	if w.closed {
		return errClosed
	}
	w.win.SetTitle(title)
	w.title = title
	return nil
}

func (w *windowGLFW) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.win.Destroy()
	w.win = nil
	closeWindow(w)
}

func (w *windowGLFW) Width() int { return w.width }
func (w *windowGLFW) Height() int { return w.height }
func (w *windowGLFW) Title() string { return w.title }

func (w *windowGLFW) IsDeviceOpen() bool { return !w.closed && !w.win.ShouldClose() }

func (w *windowGLFW) Activate() error {
	if w.closed {
		return errClosed
	}
	w.win.MakeContextCurrent()
	return nil
}

func (w *windowGLFW) Deactivate() error {
	glfw.DetachCurrentContext()
	return nil
}

func (w *windowGLFW) Draw() error {
	if w.closed {
		return errClosed
	}
	w.win.SwapBuffers()
	return nil
}

func (w *windowGLFW) IsOpen() bool { return !w.closed || w.Len() > 0 }

func (w *windowGLFW) Poll() {
	if !w.closed {
		dispatch()
	}
}

var errClosed = errors.New("wsi: window closed")
