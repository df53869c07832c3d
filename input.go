package fortress

import "strings"

// EventType identifies the kind of an input event.
type EventType uint8

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerMove
	EventKeyPress
)

var eventTypeNames = [...]string{"pointerDown", "pointerUp", "pointerMove", "keyPress"}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Key is a semantic key press. Window bootstraps map physical keys onto
// these.
type Key uint8

const (
	KeyNone Key = iota
	KeySelectMilitary
	KeySelectChinese
	KeySelectGo
	KeyEndBuild
	KeyForceBattle
	KeyToggleDebug
	KeyRotateLeft
	KeyRotateRight
	KeyConfirm
	KeyBack
)

// keyNames holds the script names of each key, matching the keyboard
// layout the runner binds them to.
var keyNames = map[string]Key{
	"1":     KeySelectMilitary,
	"2":     KeySelectChinese,
	"3":     KeySelectGo,
	"s":     KeyEndBuild,
	"b":     KeyForceBattle,
	"d":     KeyToggleDebug,
	"left":  KeyRotateLeft,
	"right": KeyRotateRight,
	"enter": KeyConfirm,
	"esc":   KeyBack,
}

// ParseKey resolves a script key name, case-insensitively.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// InputEvent is one semantic input. Pointer events carry a position in
// world units; key presses carry a Key.
type InputEvent struct {
	Type EventType
	X, Y float64
	Key  Key
}

// Pos returns the pointer position.
func (e InputEvent) Pos() Vec2 { return Vec2{e.X, e.Y} }

// PointerDown builds a pointer-down event.
func PointerDown(x, y float64) InputEvent {
	return InputEvent{Type: EventPointerDown, X: x, Y: y}
}

// PointerUp builds a pointer-up event.
func PointerUp(x, y float64) InputEvent {
	return InputEvent{Type: EventPointerUp, X: x, Y: y}
}

// PointerMove builds a pointer-move event.
func PointerMove(x, y float64) InputEvent {
	return InputEvent{Type: EventPointerMove, X: x, Y: y}
}

// KeyPress builds a key-press event.
func KeyPress(k Key) InputEvent {
	return InputEvent{Type: EventKeyPress, Key: k}
}

// PointerTracker turns polled pointer state (position plus button held)
// into edge events: down on press, up on release, move while the position
// changes.
type PointerTracker struct {
	down         bool
	lastX, lastY float64
	seen         bool
}

// Update feeds one poll and returns the event it produced, if any.
func (t *PointerTracker) Update(x, y float64, pressed bool) (InputEvent, bool) {
	moved := !t.seen || x != t.lastX || y != t.lastY
	t.seen = true
	t.lastX, t.lastY = x, y

	switch {
	case pressed && !t.down:
		t.down = true
		return PointerDown(x, y), true
	case !pressed && t.down:
		t.down = false
		return PointerUp(x, y), true
	case moved:
		return PointerMove(x, y), true
	}
	return InputEvent{}, false
}

// Down reports whether the tracked pointer is held.
func (t *PointerTracker) Down() bool { return t.down }
