package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/houyi/common"
)

const (
	ProjectileWidth  = 30
	ProjectileHeight = 5
)

// Projectile is an arrow in flight.
type Projectile struct {
	Body
	Angle float64
}

// NewProjectile launches from (x, y) along angle. strength is clamped to [0,1].
func NewProjectile(x, y, angle, strength, speed float64) *Projectile {
	strength = common.Clamp(strength, 0, 1)
	v := cp.ForAngle(angle).Mult(speed * strength)
	return &Projectile{
		Body:  Body{X: x, Y: y, W: ProjectileWidth, H: ProjectileHeight, VX: v.X, VY: v.Y},
		Angle: angle,
	}
}

// Inert reports a projectile that would never move.
func (p *Projectile) Inert() bool {
	if p == nil {
		return true
	}
	return math.Abs(p.VX) < 1e-9 && math.Abs(p.VY) < 1e-9
}

// Step advances the projectile by one tick scaled by factor.
func (p *Projectile) Step(factor float64) {
	if p == nil {
		return
	}
	p.X += p.VX * factor
	p.Y += p.VY * factor
}

// Tip is the point used for hit tests.
func (p *Projectile) Tip() (float64, float64) {
	return p.X, p.Y
}
