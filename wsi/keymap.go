// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/gviegas/ares/event"
)

// keyFrom returns the event.Key value that represents
// a GLFW key code.
// keymap is indexed by key code. Codes past its end
// are unknown.
func keyFrom(code int) event.Key {
	if code < 0 || code >= len(keymap) {
		return event.KeyUnknown
	}
	return keymap[code]
}

var keymap = [...]event.Key{
	32:  event.KeySpace,
	48:  event.Key0,
	49:  event.Key1,
	50:  event.Key2,
	51:  event.Key3,
	52:  event.Key4,
	53:  event.Key5,
	54:  event.Key6,
	55:  event.Key7,
	56:  event.Key8,
	57:  event.Key9,
	65:  event.KeyA,
	66:  event.KeyB,
	67:  event.KeyC,
	68:  event.KeyD,
	69:  event.KeyE,
	70:  event.KeyF,
	71:  event.KeyG,
	72:  event.KeyH,
	73:  event.KeyI,
	74:  event.KeyJ,
	75:  event.KeyK,
	76:  event.KeyL,
	77:  event.KeyM,
	78:  event.KeyN,
	79:  event.KeyO,
	80:  event.KeyP,
	81:  event.KeyQ,
	82:  event.KeyR,
	83:  event.KeyS,
	84:  event.KeyT,
	85:  event.KeyU,
	86:  event.KeyV,
	87:  event.KeyW,
	88:  event.KeyX,
	89:  event.KeyY,
	90:  event.KeyZ,
	256: event.KeyEsc,
	262: event.KeyRight,
	263: event.KeyLeft,
	264: event.KeyDown,
	265: event.KeyUp,
}

// touchFrom returns the event.Touch value that
// represents a GLFW mouse button.
func touchFrom(button int) event.Touch {
	switch button {
	case 0:
		return event.TouchLeft
	case 1:
		return event.TouchRight
	case 2:
		return event.TouchMiddle
	}
	return event.TouchNone
}

// scrollFrom returns the event.Touch value that
// represents a vertical scroll offset.
func scrollFrom(yoff float64) event.Touch {
	switch {
	case yoff > 0:
		return event.TouchScrollUp
	case yoff < 0:
		return event.TouchScrollDown
	}
	return event.TouchNone
}
