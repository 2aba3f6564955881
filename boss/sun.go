package boss

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/prefabs"
)

type Ray struct {
	Angle  float64
	Length float64
	Mod    float64
}

// Sun is one boss instance.
type Sun struct {
	entity.Body
	Stage    int
	Sprite   string
	Pattern  Pattern
	Rotation float64
	Rays     []Ray
	Opacity  float64
	Hit      bool

	tuning  prefabs.SunSpec
	region  Region
	rng     *rand.Rand
	elapsed float64
}

func newSun(x, y, size float64, stage int, sprite string, tuning prefabs.SunSpec, region Region, rng *rand.Rand) *Sun {
	s := &Sun{
		Body:    entity.Body{X: x, Y: y, W: size, H: size},
		Stage:   stage,
		Sprite:  sprite,
		Opacity: 1,
		tuning:  tuning,
		region:  region,
		rng:     rng,
	}
	radius := size / 2
	count := tuning.RayCount
	s.Rays = make([]Ray, 0, count)
	for i := 0; i < count; i++ {
		s.Rays = append(s.Rays, Ray{
			Angle:  float64(i) / float64(count) * 2 * math.Pi,
			Length: radius*0.5 + rng.Float64()*radius*0.3,
			Mod:    0.5 + rng.Float64()*1.5,
		})
	}
	return s
}

// Update advances the sun by dt milliseconds. Callers apply any time-slow
// factor before calling.
func (s *Sun) Update(dt float64) {
	if s == nil {
		return
	}
	s.elapsed += dt
	s.Rotation += s.tuning.RotationSpeed * dt
	step(s, dt)
	for i := range s.Rays {
		s.Rays[i].Angle += s.tuning.RaySpeed * s.Rays[i].Mod * dt
	}
}

// Elapsed is the pattern clock in ms.
func (s *Sun) Elapsed() float64 {
	if s == nil {
		return 0
	}
	return s.elapsed
}

// Decoys returns the illusion copies, which are never hit-testable.
func (s *Sun) Decoys() []entity.Body {
	if s == nil {
		return nil
	}
	if p, ok := s.Pattern.(*Illusion); ok {
		return p.Decoys
	}
	return nil
}

// HitBy reports whether box overlaps the real sun.
func (s *Sun) HitBy(box entity.Body) bool {
	if s == nil {
		return false
	}
	return s.Overlaps(box)
}
