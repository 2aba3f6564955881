package input

// Fake is a scriptable Source.
type Fake struct {
	Keys   map[Key]bool
	Other  bool
	X, Y   float64
	Button bool
}

func NewFake() *Fake {
	return &Fake{Keys: map[Key]bool{}}
}

func (f *Fake) KeyDown(k Key) bool { return f.Keys[k] }

func (f *Fake) AnyKeyDown() bool {
	if f.Other {
		return true
	}
	for _, down := range f.Keys {
		if down {
			return true
		}
	}
	return false
}

func (f *Fake) Pointer() (float64, float64) { return f.X, f.Y }

func (f *Fake) PointerDown() bool { return f.Button }

func (f *Fake) Press(keys ...Key) {
	for _, k := range keys {
		f.Keys[k] = true
	}
}

func (f *Fake) Release(keys ...Key) {
	for _, k := range keys {
		delete(f.Keys, k)
	}
}

// ReleaseAll lifts every key and the pointer button.
func (f *Fake) ReleaseAll() {
	clear(f.Keys)
	f.Other = false
	f.Button = false
}
