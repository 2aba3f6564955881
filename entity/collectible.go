package entity

// Collectible is the stage arrow waiting above the last platform.
type Collectible struct {
	Body
	Name      string
	Collected bool
}

func NewCollectible(x, y, w, h float64, name string) *Collectible {
	return &Collectible{Body: Body{X: x, Y: y, W: w, H: h}, Name: name}
}

// TryCollect marks the collectible taken when the player touches it and
// reports whether this call collected it.
func (c *Collectible) TryCollect(p *Player) bool {
	if c == nil || p == nil || c.Collected {
		return false
	}
	if !c.Touches(p.Body) {
		return false
	}
	c.Collected = true
	return true
}
