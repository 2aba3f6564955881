package boss

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/houyi/entity"
)

// Kind names a movement pattern.
type Kind string

const (
	KindBob      Kind = "bob"
	KindOrbit    Kind = "orbit"
	KindErratic  Kind = "erratic"
	KindTeleport Kind = "teleport"
	KindIllusion Kind = "illusion"
	KindHide     Kind = "hide"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBob, KindOrbit, KindErratic, KindTeleport, KindIllusion, KindHide:
		return true
	}
	return false
}

// Pattern is the closed set of movement behaviours. Each variant carries only
// its own state.
type Pattern interface {
	Kind() Kind
	pattern()
}

type Bob struct {
	OriginY float64
	Amount  float64
	Speed   float64
}

type Orbit struct {
	CenterX, CenterY float64
	Radius           float64
	Speed            float64
	Phase            float64
}

type Erratic struct {
	Interval float64
	Ease     float64
	TargetX  float64
	TargetY  float64
	timer    float64
}

type Teleport struct {
	Interval float64
	timer    float64
}

type Illusion struct {
	Interval float64
	Max      int
	Decoys   []entity.Body
	timer    float64
}

type Hide struct {
	Interval      float64
	MinVisibility float64
	timer         float64
}

func (*Bob) Kind() Kind      { return KindBob }
func (*Orbit) Kind() Kind    { return KindOrbit }
func (*Erratic) Kind() Kind  { return KindErratic }
func (*Teleport) Kind() Kind { return KindTeleport }
func (*Illusion) Kind() Kind { return KindIllusion }
func (*Hide) Kind() Kind     { return KindHide }

func (*Bob) pattern()      {}
func (*Orbit) pattern()    {}
func (*Erratic) pattern()  {}
func (*Teleport) pattern() {}
func (*Illusion) pattern() {}
func (*Hide) pattern()     {}

// Region is the rectangle random placements are drawn from.
type Region struct {
	X, Y, W, H float64
}

func (r Region) Point(rng *rand.Rand) (float64, float64) {
	return r.X + rng.Float64()*r.W, r.Y + rng.Float64()*r.H
}

func (r Region) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// step advances the sun's pattern. elapsed is the pattern clock after dt
// has been added.
func step(s *Sun, dt float64) {
	switch p := s.Pattern.(type) {
	case *Bob:
		s.Y = p.OriginY + math.Sin(s.elapsed*p.Speed)*p.Amount
	case *Orbit:
		a := p.Phase + p.Speed*s.elapsed
		s.X = p.CenterX + math.Cos(a)*p.Radius
		s.Y = p.CenterY + math.Sin(a)*p.Radius
	case *Erratic:
		p.timer += dt
		if p.timer > p.Interval {
			p.TargetX, p.TargetY = s.region.Point(s.rng)
			p.timer = 0
		}
		dx, dy := p.TargetX-s.X, p.TargetY-s.Y
		if math.Hypot(dx, dy) > 1 {
			s.X += dx * p.Ease
			s.Y += dy * p.Ease
		}
	case *Teleport:
		p.timer += dt
		if p.timer > p.Interval {
			s.X, s.Y = s.region.Point(s.rng)
			p.timer = 0
		}
	case *Illusion:
		p.timer += dt
		if p.timer > p.Interval {
			p.timer = 0
			for p.Max > 0 && len(p.Decoys) >= p.Max {
				p.Decoys = p.Decoys[1:]
			}
			if p.Max > 0 {
				x, y := s.region.Point(s.rng)
				p.Decoys = append(p.Decoys, entity.Body{X: x, Y: y, W: s.W, H: s.H})
			}
		}
	case *Hide:
		p.timer += dt
		if p.timer > p.Interval {
			s.Opacity = math.Max(p.MinVisibility, s.rng.Float64())
			p.timer = 0
			s.X, s.Y = s.region.Point(s.rng)
		}
	}
}
