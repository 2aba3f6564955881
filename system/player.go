package system

import (
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/prefabs"
)

// PlayerInput is the per-tick control state. JumpPressed is a rising edge.
type PlayerInput struct {
	Left        bool
	Right       bool
	JumpPressed bool
}

type PlayerPhysicsSystem struct {
	Gravity          float64
	Friction         float64
	MoveSpeed        float64
	JumpSpeed        float64
	DoubleJumpFactor float64
	WorldW           float64
	WorldH           float64
}

func NewPlayerPhysicsSystem(t prefabs.TuningSpec) *PlayerPhysicsSystem {
	return &PlayerPhysicsSystem{
		Gravity:          t.World.Gravity,
		Friction:         t.World.Friction,
		MoveSpeed:        t.Player.MoveSpeed,
		JumpSpeed:        t.Player.JumpSpeed,
		DoubleJumpFactor: t.Player.DoubleJumpFactor,
		WorldW:           t.World.Width,
		WorldH:           t.World.Height,
	}
}

// Update advances the player by one fixed tick.
func (s *PlayerPhysicsSystem) Update(p *entity.Player, in PlayerInput, platforms []entity.Platform, doubleJump bool) {
	if s == nil || p == nil {
		return
	}

	p.VY += s.Gravity

	p.VX = 0
	if in.Left {
		p.VX = -s.MoveSpeed
		p.Facing = entity.FacingLeft
	} else if in.Right {
		p.VX = s.MoveSpeed
		p.Facing = entity.FacingRight
	}

	if in.JumpPressed {
		switch {
		case p.Grounded:
			p.VY = -s.JumpSpeed
			p.Grounded = false
			p.JumpCount = 1
		case doubleJump && p.JumpCount == 1:
			p.VY = -s.JumpSpeed * s.DoubleJumpFactor
			p.JumpCount = 2
		}
	}

	p.VX *= s.Friction
	p.Integrate()

	p.Grounded = false
	for i := range platforms {
		if p.Overlaps(platforms[i].Body) {
			resolve(p, platforms[i].Body)
		}
	}

	p.ClampTo(s.WorldW, s.WorldH)
}

// resolve pushes the player out along the axis of least penetration. The
// chosen axis only applies when the velocity points into that face.
func resolve(p *entity.Player, b entity.Body) {
	left := p.Right() - b.X
	right := b.Right() - p.X
	top := p.Bottom() - b.Y
	bottom := b.Bottom() - p.Y

	least := min(left, right, top, bottom)
	switch {
	case least == top && p.VY >= 0:
		p.Y = b.Y - p.H
		p.VY = 0
		p.Grounded = true
		p.JumpCount = 0
	case least == bottom && p.VY <= 0:
		p.Y = b.Bottom()
		p.VY = 0
	case least == left && p.VX > 0:
		p.X = b.X - p.W
		p.VX = 0
	case least == right && p.VX < 0:
		p.X = b.Right()
		p.VX = 0
	}
}
