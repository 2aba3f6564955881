package system

import (
	"github.com/milk9111/houyi/common"
	"github.com/milk9111/houyi/entity"
)

type MovingPlatformSystem struct{}

func NewMovingPlatformSystem() *MovingPlatformSystem {
	return &MovingPlatformSystem{}
}

// Update moves every moving platform and bounces it at its range ends. dt is
// in milliseconds; a platform covers Speed units per fixed step.
func (s *MovingPlatformSystem) Update(platforms []entity.Platform, dt float64) {
	ticks := dt / common.TimeStep
	for i := range platforms {
		Step(&platforms[i], ticks)
	}
}

// Step advances a single moving platform by a number of fixed steps.
func Step(p *entity.Platform, ticks float64) {
	if p == nil || !p.Moving() {
		return
	}
	if p.Dir == 0 {
		p.Dir = 1
	}
	p.X += p.Speed * p.Dir * ticks
	if p.X <= p.StartX {
		p.X = p.StartX
		p.Dir = 1
	} else if p.X >= p.EndX {
		p.X = p.EndX
		p.Dir = -1
	}
}
