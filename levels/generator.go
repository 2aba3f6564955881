package levels

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/prefabs"
)

// Limits are the reach of a single jump.
type Limits struct {
	MaxJumpHeight   float64
	MaxJumpDistance float64
}

// JumpLimits derives reach from the jump impulse, gravity and run speed.
func JumpLimits(jump, gravity, speed float64) Limits {
	h := jump * jump / (2 * gravity)
	return Limits{
		MaxJumpHeight:   h,
		MaxJumpDistance: speed * 2 * math.Sqrt(2*h/gravity),
	}
}

// Correction records a platform moved by the reachability pass.
type Correction struct {
	Index        int
	FromX, FromY float64
	ToX, ToY     float64
}

type Layout struct {
	Style       string
	Known       bool
	Platforms   []entity.Platform
	Corrections []Correction
	Collectible entity.Body
	ArrowIndex  int // platform the collectible sits above
	Limits      Limits
}

type Generator struct {
	catalog *Catalog
	tuning  prefabs.TuningSpec
	logger  *log.Logger
}

func NewGenerator(catalog *Catalog, tuning prefabs.TuningSpec, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{catalog: catalog, tuning: tuning, logger: logger}
}

// Limits returns the reach used for corrections.
func (g *Generator) Limits() Limits {
	return JumpLimits(g.tuning.Player.JumpSpeed, g.tuning.World.Gravity, g.tuning.Player.MoveSpeed)
}

// Generate builds the ground plus the style's platforms, corrects
// unreachable gaps in generation order and places the collectible above the
// marked platform, or the last one.
func (g *Generator) Generate(style string) Layout {
	w, h := g.tuning.World.Width, g.tuning.World.Height
	groundH := g.tuning.World.GroundHeight

	defs, known := g.catalog.Layout(style)
	if !known {
		g.logger.Warn("unknown platform style, using default layout", "style", style)
	}

	platforms := make([]entity.Platform, 0, len(defs)+1)
	platforms = append(platforms, entity.NewStaticPlatform(0, h-groundH, w, groundH))
	anchor := -1
	for _, d := range defs {
		if d.Arrow {
			anchor = len(platforms)
		}
		platforms = append(platforms, d.Platform())
	}
	if anchor < 0 {
		anchor = len(platforms) - 1
	}

	limits := g.Limits()
	corrections := Correct(platforms, limits, g.tuning.Platform.CorrectionLift)
	for _, c := range corrections {
		g.logger.Debug("corrected unreachable platform", "style", style, "index", c.Index,
			"from_x", c.FromX, "from_y", c.FromY, "to_x", c.ToX, "to_y", c.ToY)
	}

	under := platforms[anchor]
	cw, ch := g.tuning.Platform.CollectibleWidth, g.tuning.Platform.CollectibleHeight
	collectible := entity.Body{
		X: under.X + under.W/2 - cw/2,
		Y: under.Y - g.tuning.Platform.CollectibleLift,
		W: cw,
		H: ch,
	}

	return Layout{
		Style:       style,
		Known:       known,
		Platforms:   platforms,
		Corrections: corrections,
		Collectible: collectible,
		ArrowIndex:  anchor,
		Limits:      limits,
	}
}

// Correct walks consecutive pairs and pulls any platform that is too far
// below or too far sideways from its predecessor back into reach. Moving
// platforms carry their range along with them.
func Correct(platforms []entity.Platform, limits Limits, lift float64) []Correction {
	var out []Correction
	for i := 1; i < len(platforms); i++ {
		prev := platforms[i-1]
		curr := &platforms[i]
		dx := curr.X - prev.X
		dy := curr.Y - prev.Y
		if dy <= limits.MaxJumpHeight && math.Abs(dx) <= limits.MaxJumpDistance {
			continue
		}
		c := Correction{Index: i, FromX: curr.X, FromY: curr.Y}
		if dx > limits.MaxJumpDistance {
			dx = limits.MaxJumpDistance
		} else if dx < -limits.MaxJumpDistance {
			dx = -limits.MaxJumpDistance
		}
		newX := prev.X + dx
		if curr.Moving() {
			shift := newX - curr.X
			curr.StartX += shift
			curr.EndX += shift
		}
		curr.X = newX
		curr.Y = prev.Y - limits.MaxJumpHeight + lift
		c.ToX, c.ToY = curr.X, curr.Y
		out = append(out, c)
	}
	return out
}
