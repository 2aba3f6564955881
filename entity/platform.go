package entity

import "math"

type PlatformKind int

const (
	PlatformStatic PlatformKind = iota
	PlatformMoving
)

func (k PlatformKind) String() string {
	if k == PlatformMoving {
		return "moving"
	}
	return "static"
}

type Platform struct {
	Body
	Kind   PlatformKind
	StartX float64
	EndX   float64
	Speed  float64
	Dir    float64
	Decoy  bool
}

func NewStaticPlatform(x, y, w, h float64) Platform {
	return Platform{Body: Body{X: x, Y: y, W: w, H: h}, Kind: PlatformStatic}
}

// NewMovingPlatform builds a platform that bounces between startX and endX.
// A reversed range is normalised and the start position clamped into it.
func NewMovingPlatform(x, y, w, h, startX, endX, speed float64) Platform {
	lo, hi := math.Min(startX, endX), math.Max(startX, endX)
	p := Platform{
		Body:   Body{X: x, Y: y, W: w, H: h},
		Kind:   PlatformMoving,
		StartX: lo,
		EndX:   hi,
		Speed:  math.Abs(speed),
		Dir:    1,
	}
	if p.X < lo {
		p.X = lo
	}
	if p.X > hi {
		p.X = hi
	}
	return p
}

func (p Platform) Moving() bool { return p.Kind == PlatformMoving }
