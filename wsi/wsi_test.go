// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"testing"

	"github.com/gviegas/ares/event"
)

func TestWSI(t *testing.T) {
	switch PlatformInUse() {
	case None:
		win, err := NewWindow(480, 360, "Will fail")
		if win != nil || err != errMissing {
			t.Fatalf("NewWindow: win, err\nhave %v, %v\nwant nil, %v", win, err, errMissing)
		}
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
		// Dummy Dispatch does nothing.
		Dispatch()
	default:
		win, err := NewWindow(480, 360, "My window")
		if err != nil {
			t.Logf("NewWindow (error): %v", err)
			return
		}
		if n := len(Windows()); n != 1 {
			t.Fatalf("len(Windows())\nhave %v\nwant 1", n)
		}
		win.Map()
		for i := 0; i < 10; i++ {
			win.Poll()
			win.Draw()
		}
		win.Close()
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
	}
}

func TestHeadless(t *testing.T) {
	if _, err := NewHeadless(0, 1, ""); err == nil {
		t.Fatal("NewHeadless: unexpected nil error")
	}
	win, err := NewHeadless(320, 240, "headless")
	if err != nil {
		t.Fatalf("NewHeadless failed:\n%#v", err)
	}
	if n := len(Windows()); n != 1 {
		t.Fatalf("len(Windows())\nhave %v\nwant 1", n)
	}
	if w, h := win.Width(), win.Height(); w != 320 || h != 240 {
		t.Fatalf("Width/Height\nhave %d, %d\nwant 320, 240", w, h)
	}
	win.Resize(64, 48)
	win.SetTitle("other")
	if w, h, s := win.Width(), win.Height(), win.Title(); w != 64 || h != 48 || s != "other" {
		t.Fatalf("Width/Height/Title\nhave %d, %d, %s\nwant 64, 48, other", w, h, s)
	}
	if !win.IsDeviceOpen() {
		t.Fatal("IsDeviceOpen: unexpected false")
	}
	win.Activate()
	win.Draw()
	win.Draw()
	hl := win.(*Headless)
	if n := hl.Frames(); n != 2 {
		t.Fatalf("Frames\nhave %d\nwant 2", n)
	}

	var d event.Dispatcher
	var got []event.Event
	d.Subscribe(event.AllEvents, func(e event.Event) { got = append(got, e) })
	hl.Push(event.KeyEvent{Kind: event.KeyPress, Key: event.KeyW})
	if !d.Process(win) {
		t.Fatal("Process: unexpected false")
	}
	win.Close()
	win.Close()
	if win.IsDeviceOpen() {
		t.Fatal("IsDeviceOpen: unexpected true")
	}
	if err := win.Draw(); err == nil {
		t.Fatal("Draw: unexpected nil error")
	}
	if n := len(Windows()); n != 0 {
		t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
	}
	// The Close event is still delivered.
	if !d.Process(win) {
		t.Fatal("Process: unexpected false")
	}
	if d.Process(win) {
		t.Fatal("Process: unexpected true")
	}
	want := []event.Event{
		event.KeyEvent{Kind: event.KeyPress, Key: event.KeyW},
		event.SystemEvent{Kind: event.Close},
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events\nhave %v\nwant %v", got, want)
	}
}

func TestKeyFrom(t *testing.T) {
	for _, x := range []struct {
		code int
		key  event.Key
	}{
		{65, event.KeyA},
		{87, event.KeyW},
		{90, event.KeyZ},
		{48, event.Key0},
		{57, event.Key9},
		{32, event.KeySpace},
		{256, event.KeyEsc},
		{265, event.KeyUp},
		{262, event.KeyRight},
		{91, event.KeyUnknown},
		{-1, event.KeyUnknown},
		{1000, event.KeyUnknown},
	} {
		if k := keyFrom(x.code); k != x.key {
			t.Fatalf("keyFrom(%d)\nhave %v\nwant %v", x.code, k, x.key)
		}
	}
	if x := touchFrom(1); x != event.TouchRight {
		t.Fatalf("touchFrom(1)\nhave %v\nwant %v", x, event.TouchRight)
	}
	if x := scrollFrom(-2); x != event.TouchScrollDown {
		t.Fatalf("scrollFrom(-2)\nhave %v\nwant %v", x, event.TouchScrollDown)
	}
}
