// Package input polls raw device state once per tick and derives edges.
package input

type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeySpace
	KeyEnter
	KeyEscape
	KeyM

	keyCount
)

var keyNames = [...]string{"left", "right", "up", "space", "enter", "escape", "m"}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Keys lists every key in the fixed set.
func Keys() []Key {
	out := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

// Source is raw level-triggered device state.
type Source interface {
	KeyDown(k Key) bool
	AnyKeyDown() bool
	Pointer() (x, y float64)
	PointerDown() bool
}

// Snapshot is device state captured for one tick.
type Snapshot struct {
	keys        [keyCount]bool
	Any         bool
	PointerX    float64
	PointerY    float64
	PointerDown bool
}

func Capture(src Source) Snapshot {
	var s Snapshot
	if src == nil {
		return s
	}
	for k := Key(0); k < keyCount; k++ {
		s.keys[k] = src.KeyDown(k)
	}
	s.Any = src.AnyKeyDown()
	s.PointerX, s.PointerY = src.Pointer()
	s.PointerDown = src.PointerDown()
	return s
}

func (s Snapshot) Down(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return s.keys[k]
}

// State pairs the current snapshot with the previous one.
type State struct {
	Cur  Snapshot
	Prev Snapshot
}

func (s State) Down(k Key) bool { return s.Cur.Down(k) }

// Pressed is true on the tick a key goes down.
func (s State) Pressed(k Key) bool { return s.Cur.Down(k) && !s.Prev.Down(k) }

func (s State) Released(k Key) bool { return !s.Cur.Down(k) && s.Prev.Down(k) }

func (s State) PointerPressed() bool { return s.Cur.PointerDown && !s.Prev.PointerDown }

func (s State) PointerReleased() bool { return !s.Cur.PointerDown && s.Prev.PointerDown }

// Active reports any key or pointer button held this tick.
func (s State) Active() bool { return s.Cur.Any || s.Cur.PointerDown }

func (s State) Pointer() (float64, float64) { return s.Cur.PointerX, s.Cur.PointerY }

// Tracker keeps the previous snapshot between polls.
type Tracker struct {
	prev Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Poll captures src and returns the state for this tick.
func (t *Tracker) Poll(src Source) State {
	cur := Capture(src)
	st := State{Cur: cur, Prev: t.prev}
	t.prev = cur
	return st
}

// Swallow makes everything currently held look old, so the next poll
// reports no rising edges for it.
func (t *Tracker) Swallow(src Source) {
	t.prev = Capture(src)
}
