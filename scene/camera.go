package scene

import "github.com/milk9111/houyi/common"

// Camera follows a world point and keeps the view inside the world bounds.
type Camera struct {
	PosX float64
	PosY float64

	viewW float64
	viewH float64

	// smoothing factor (0..1); higher follows faster
	smooth float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera for a view of w by h pixels centred on the view.
func NewCamera(w, h float64) *Camera {
	return &Camera{viewW: w, viewH: h, smooth: 0.15, PosX: w / 2, PosY: h / 2}
}

func (c *Camera) SetWorldBounds(w, h float64) {
	if c == nil {
		return
	}
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	if c == nil {
		return
	}
	c.smooth = common.Clamp(f, 0, 1)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	if c == nil {
		return 0, 0
	}
	return c.PosX - c.viewW/2, c.PosY - c.viewH/2
}

// Update moves the camera toward the target. Call once per fixed step.
func (c *Camera) Update(targetX, targetY float64) {
	if c == nil {
		return
	}
	if c.smooth <= 0 {
		c.PosX, c.PosY = targetX, targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.bound()
}

// SnapTo places the camera immediately, e.g. when a stage is entered.
func (c *Camera) SnapTo(x, y float64) {
	if c == nil {
		return
	}
	c.PosX, c.PosY = x, y
	c.bound()
}

func (c *Camera) bound() {
	c.PosX = boundAxis(c.PosX, c.viewW/2, c.worldW)
	c.PosY = boundAxis(c.PosY, c.viewH/2, c.worldH)
}

func boundAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	lo, hi := half, world-half
	if hi < lo {
		// world smaller than view: centre on world
		return world / 2
	}
	return common.Clamp(pos, lo, hi)
}
