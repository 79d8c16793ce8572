package window

import "fmt"

// Key represents a keyboard key by its layout-independent symbol.
type Key int

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

	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
)

var keyNames = map[Key]string{
	KeyEscape:       "Escape",
	KeySpace:        "Space",
	KeyEnter:        "Enter",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeftShift:    "LShift",
	KeyRightShift:   "RShift",
	KeyLeftControl:  "LControl",
	KeyRightControl: "RControl",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyUnknown {
		return "Unknown"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// KeyState is the transition carried by a KeyEvent.
type KeyState int

const (
	KeyPressed KeyState = iota
	KeyReleased
)

func (s KeyState) String() string {
	if s == KeyReleased {
		return "released"
	}
	return "pressed"
}

// Event is one item of the platform event stream. The set of kinds is closed.
type Event interface {
	isEvent()
}

// ResizeEvent reports a new client size in physical pixels.
type ResizeEvent struct {
	Width, Height int
}

// CloseEvent reports that the user asked the window to close.
type CloseEvent struct{}

// KeyEvent reports a key transition. Key is KeyUnknown for keys without a
// mapping.
type KeyEvent struct {
	Key   Key
	State KeyState
}

// MouseMotionEvent reports pointer movement since the previous motion event.
type MouseMotionEvent struct {
	DX, DY float64
}

// WakeEvent is delivered after Events.Wake and carries nothing.
type WakeEvent struct{}

func (ResizeEvent) isEvent()      {}
func (CloseEvent) isEvent()       {}
func (KeyEvent) isEvent()         {}
func (MouseMotionEvent) isEvent() {}
func (WakeEvent) isEvent()        {}
