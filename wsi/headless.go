// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"errors"

	"github.com/gviegas/ares/event"
)

// Headless is a Window without a surface.
// Its device is open until it is closed, and the
// events pushed into it are delivered on Next.
type Headless struct {
	event.Queue
	width, height int
	title         string
	mapped        bool
	closed        bool
	frames        int
}

func newHeadless(width, height int, title string) (*Headless, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("wsi: invalid window size")
	}
	return &Headless{width: width, height: height, title: title}, nil
}

// Map implements Window.
func (w *Headless) Map() error { w.mapped = true; return nil }

// Unmap implements Window.
func (w *Headless) Unmap() error { w.mapped = false; return nil }

// Resize implements Window.
func (w *Headless) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("wsi: invalid window size")
	}
	w.width, w.height = width, height
	return nil
}

// SetTitle implements Window.
func (w *Headless) SetTitle(title string) error { w.title = title; return nil }

// Close implements Window.
// A Close event is queued.
func (w *Headless) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.Push(event.SystemEvent{Kind: event.Close})
	closeWindow(w)
}

// Width implements Window.
func (w *Headless) Width() int { return w.width }

// Height implements Window.
func (w *Headless) Height() int { return w.height }

// Title implements Window.
func (w *Headless) Title() string { return w.title }

// Mapped reports whether w is visible.
func (w *Headless) Mapped() bool { return w.mapped }

// IsDeviceOpen implements scene.DrawingContext.
func (w *Headless) IsDeviceOpen() bool { return !w.closed }

// Activate implements scene.DrawingContext.
func (w *Headless) Activate() error { return nil }

// Deactivate implements scene.DrawingContext.
func (w *Headless) Deactivate() error { return nil }

// Draw implements scene.DrawingContext.
// It counts presented frames.
func (w *Headless) Draw() error {
	if w.closed {
		return errors.New("wsi: draw on closed window")
	}
	w.frames++
	return nil
}

// Frames returns the number of presented frames.
func (w *Headless) Frames() int { return w.frames }

// IsOpen implements event.Source.
// It remains true until the queued events of a closed
// window are consumed.
func (w *Headless) IsOpen() bool { return !w.closed || w.Len() > 0 }

// Poll implements event.Source.
func (w *Headless) Poll() {}
