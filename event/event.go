// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package event defines input and system events and a
// Dispatcher that delivers them to subscribers.
package event

// Type is the type of an event.
// Types are bit flags, so a set of types can be used
// as a subscription filter.
type Type uint32

// Event types and filters.
const (
	NoEvent Type = 0

	Close     Type = 0x1
	AllSystem Type = 0xF

	KeyPress   Type = 0x10
	KeyRelease Type = 0x20
	AllKey     Type = 0xF0

	TouchPress   Type = 0x100
	TouchRelease Type = 0x200
	TouchMove    Type = 0x400
	AllTouch     Type = 0xF00

	Custom0   Type = 0x1000
	Custom1   Type = 0x2000
	Custom2   Type = 0x4000
	Custom3   Type = 0x8000
	AllCustom Type = 0xF000

	AllEvents Type = 0xFFFF
)

// Matches reports whether t is in filter.
func (t Type) Matches(filter Type) bool { return t&filter != 0 }

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case NoEvent:
		return "NoEvent"
	case Close:
		return "Close"
	case KeyPress:
		return "KeyPress"
	case KeyRelease:
		return "KeyRelease"
	case TouchPress:
		return "TouchPress"
	case TouchRelease:
		return "TouchRelease"
	case TouchMove:
		return "TouchMove"
	case Custom0:
		return "Custom0"
	case Custom1:
		return "Custom1"
	case Custom2:
		return "Custom2"
	case Custom3:
		return "Custom3"
	}
	return "Type(?)"
}

// Event is the interface that all events implement.
type Event interface {
	// Type returns the event's type.
	// It must be a single flag.
	Type() Type
}

// SystemEvent is an event of the AllSystem group.
type SystemEvent struct {
	Kind Type
}

// Type implements Event.
func (e SystemEvent) Type() Type { return e.Kind }

// KeyEvent is a KeyPress or KeyRelease event.
type KeyEvent struct {
	Kind Type
	Key  Key
}

// Type implements Event.
func (e KeyEvent) Type() Type { return e.Kind }

// TouchEvent is an event of the AllTouch group.
// X and Y are in window coordinates.
type TouchEvent struct {
	Kind  Type
	Touch Touch
	X, Y  float32
}

// Type implements Event.
func (e TouchEvent) Type() Type { return e.Kind }

// CustomEvent is an application-defined event.
type CustomEvent struct {
	Kind Type
	Data any
}

// Type implements Event.
func (e CustomEvent) Type() Type { return e.Kind }

// Key is the type of keyboard keys.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEsc
)

// Touch identifies the pointer button or wheel
// direction of a TouchEvent.
type Touch int

// Touch kinds.
// TouchNone is used by TouchMove events while no
// button is held.
const (
	TouchNone Touch = iota
	TouchLeft
	TouchMiddle
	TouchRight
	TouchScrollUp
	TouchScrollDown
)
