package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/houyi/common"
)

// Body is the positional core every entity embeds. Y grows downward.
type Body struct {
	X, Y float64
	W, H float64
	VX   float64
	VY   float64
}

// BB returns the body's box as a chipmunk bounding box (B is the top edge
// in screen space).
func (b Body) BB() cp.BB {
	return cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H}
}

// Overlaps reports strict overlap; touching edges do not count.
func (b Body) Overlaps(o Body) bool {
	return common.Overlap(b.X, b.W, o.X, o.W) && common.Overlap(b.Y, b.H, o.Y, o.H)
}

// Touches uses the chipmunk test, which includes shared edges.
func (b Body) Touches(o Body) bool {
	return b.BB().Intersects(o.BB())
}

func (b Body) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

func (b Body) Bottom() float64 { return b.Y + b.H }
func (b Body) Right() float64  { return b.X + b.W }

// Integrate advances position by velocity.
func (b *Body) Integrate() {
	b.X += b.VX
	b.Y += b.VY
}

// ClampTo keeps the body inside a w×h world.
func (b *Body) ClampTo(w, h float64) {
	b.X = common.Clamp(b.X, 0, w-b.W)
	b.Y = common.Clamp(b.Y, 0, h-b.H)
}

// OutOfBounds reports whether the body's origin left the w×h world.
func (b Body) OutOfBounds(w, h float64) bool {
	return b.X < 0 || b.X > w || b.Y < 0 || b.Y > h
}
