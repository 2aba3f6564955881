package boss

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/prefabs"
	"github.com/milk9111/houyi/story"
)

// Encounter is the set of suns fought in one archery scene, or shown behind
// a platforming stage.
type Encounter struct {
	Stage int
	Suns  []*Sun
}

func (e *Encounter) Update(dt float64) {
	if e == nil {
		return
	}
	for _, s := range e.Suns {
		s.Update(dt)
	}
}

// Strike marks the first un-hit sun overlapping box and returns its index.
func (e *Encounter) Strike(box entity.Body) (int, bool) {
	if e == nil {
		return -1, false
	}
	for i, s := range e.Suns {
		if s.Hit || !s.HitBy(box) {
			continue
		}
		s.Hit = true
		return i, true
	}
	return -1, false
}

// Cleared reports whether every sun has been hit.
func (e *Encounter) Cleared() bool {
	if e == nil || len(e.Suns) == 0 {
		return false
	}
	for _, s := range e.Suns {
		if !s.Hit {
			return false
		}
	}
	return true
}

func (e *Encounter) Remaining() int {
	if e == nil {
		return 0
	}
	n := 0
	for _, s := range e.Suns {
		if !s.Hit {
			n++
		}
	}
	return n
}

// Builder constructs encounters from stage data.
type Builder struct {
	table    *story.Table
	tuning   prefabs.TuningSpec
	selector Selector
	rng      *rand.Rand
	logger   *log.Logger
	fallback string
}

func NewBuilder(table *story.Table, tuning prefabs.TuningSpec, selector Selector, rng *rand.Rand, logger *log.Logger) *Builder {
	if selector == nil {
		selector = TableSelector{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{table: table, tuning: tuning, selector: selector, rng: rng, logger: logger}
}

// SetFallbackSprite names the sprite used when a stage carries none.
func (b *Builder) SetFallbackSprite(id string) {
	if b != nil {
		b.fallback = id
	}
}

// Selector reports the pattern selector in use.
func (b *Builder) Selector() Selector {
	if b == nil {
		return nil
	}
	return b.selector
}

type placement struct {
	x, y float64
}

// Archery builds the fight for stage n: one sun centred on the right side,
// or two stacked suns for twin stages.
func (b *Builder) Archery(n int) *Encounter {
	w, h := b.tuning.World.Width, b.tuning.World.Height
	sun := b.tuning.Sun
	cx := w - sun.ArcheryInsetX
	cy := h / 2
	return b.build(n, cx, cy, func(twin bool) []placement {
		if twin {
			return []placement{{cx, cy - sun.TwinSeparation}, {cx, cy + sun.TwinSeparation}}
		}
		return []placement{{cx, cy}}
	})
}

// Backdrop builds the decorative suns shown during platforming.
func (b *Builder) Backdrop(n int) *Encounter {
	w := b.tuning.World.Width
	sun := b.tuning.Sun
	cx := w - sun.BackdropInsetX
	cy := sun.BackdropY
	return b.build(n, cx, cy, func(twin bool) []placement {
		if twin {
			return []placement{{cx - sun.TwinSeparation, cy}, {cx + sun.TwinSeparation, cy}}
		}
		return []placement{{cx, cy}}
	})
}

func (b *Builder) build(n int, cx, cy float64, place func(twin bool) []placement) *Encounter {
	stage, ok := b.table.Lookup(n)
	if !ok {
		b.logger.Warn("unknown stage for sun, using first stage", "stage", n)
		stage = b.table.Stage(story.FirstStage)
	}

	spots := place(stage.Twin)
	size := b.tuning.Sun.Size
	if stage.Twin {
		size = b.tuning.Sun.TwinSize
	}
	kind := b.selector.Select(stage.Number, stage.Twin)
	region := b.region()

	enc := &Encounter{Stage: stage.Number, Suns: make([]*Sun, 0, len(spots))}
	for i, spot := range spots {
		sprite := stage.Sprite(i)
		if sprite == "" {
			sprite = b.fallback
		}
		s := newSun(spot.x, spot.y, size, stage.Number, sprite, b.tuning.Sun, region, b.rng)
		s.Pattern = b.pattern(kind, i, spot, cx, cy)
		enc.Suns = append(enc.Suns, s)
	}
	return enc
}

func (b *Builder) region() Region {
	sun := b.tuning.Sun
	return Region{
		X: b.tuning.World.Width - sun.RegionInsetX,
		Y: sun.RegionTop,
		W: sun.RegionWidth,
		H: sun.RegionHeight,
	}
}

// pattern builds the variant for the i-th sun. Orbiting suns keep their
// starting spot on the circle and alternate direction.
func (b *Builder) pattern(kind Kind, i int, spot placement, cx, cy float64) Pattern {
	sun := b.tuning.Sun
	switch kind {
	case KindOrbit:
		speed := sun.OrbitSpeed
		if i%2 == 1 {
			speed = -speed
		}
		phase := 0.0
		if spot.x != cx || spot.y != cy {
			phase = math.Atan2(spot.y-cy, spot.x-cx)
		}
		return &Orbit{CenterX: cx, CenterY: cy, Radius: sun.OrbitRadius, Speed: speed, Phase: phase}
	case KindErratic:
		return &Erratic{Interval: sun.ErraticMS, Ease: sun.ErraticEase, TargetX: spot.x, TargetY: spot.y}
	case KindTeleport:
		return &Teleport{Interval: sun.TeleportMS}
	case KindIllusion:
		return &Illusion{Interval: sun.IllusionMS, Max: sun.MaxIllusions}
	case KindHide:
		return &Hide{Interval: sun.HideMS, MinVisibility: sun.MinVisibility}
	default:
		return &Bob{OriginY: spot.y, Amount: sun.BobAmount, Speed: sun.BobSpeed}
	}
}
