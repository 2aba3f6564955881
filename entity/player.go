package entity

type Facing int

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

type AnimState int

const (
	AnimIdle AnimState = iota
	AnimRunning
	AnimJumping
	AnimFalling
)

func (a AnimState) String() string {
	switch a {
	case AnimRunning:
		return "running"
	case AnimJumping:
		return "jumping"
	case AnimFalling:
		return "falling"
	default:
		return "idle"
	}
}

const AnimFrames = 4

// Frame durations in ms per animation state.
var animFrameMS = map[AnimState]float64{
	AnimIdle:    125,
	AnimRunning: 100,
	AnimJumping: 200,
	AnimFalling: 200,
}

type Player struct {
	Body
	Grounded  bool
	JumpCount int
	Facing    Facing

	Anim       AnimState
	Frame      int
	frameTimer float64
}

func NewPlayer(x, y, w, h float64) *Player {
	return &Player{Body: Body{X: x, Y: y, W: w, H: h}, Facing: FacingRight}
}

// Animate picks the animation state from the current motion and advances the
// frame timer by dt milliseconds.
func (p *Player) Animate(dt float64) {
	if p == nil {
		return
	}
	next := p.Anim
	switch {
	case p.VY > 1:
		next = AnimFalling
	case p.VY < -1:
		next = AnimJumping
	case !p.Grounded:
		// apex of a jump keeps the airborne state
	case p.VX > 0.5 || p.VX < -0.5:
		next = AnimRunning
	default:
		next = AnimIdle
	}
	if next != p.Anim {
		p.Anim = next
		p.Frame = 0
		p.frameTimer = 0
		return
	}

	p.frameTimer += dt
	dur := animFrameMS[p.Anim]
	for dur > 0 && p.frameTimer >= dur {
		p.frameTimer -= dur
		p.Frame = (p.Frame + 1) % AnimFrames
	}
}
