package scene

import (
	"fmt"
	"math"

	"github.com/milk9111/houyi/boss"
	"github.com/milk9111/houyi/common"
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
	"golang.org/x/image/colornames"
)

// Bow is the aiming state.
type Bow struct {
	X, Y     float64
	Angle    float64
	Drawing  bool
	Strength float64
}

// Archery is the fight against the stage's sun or suns.
type Archery struct {
	Stage     story.Stage
	Encounter *boss.Encounter
	Bow       Bow
	Arrow     *entity.Projectile

	SlowActive bool
	SlowTimer  float64
}

func (*Archery) Kind() Kind { return KindArchery }
func (*Archery) state()     {}

func (m *Machine) enterArchery(n int) *Archery {
	stage := m.stage(n)
	t := m.deps.Tuning
	m.deps.Audio.PlayTrack("bgm_archery")
	return &Archery{
		Stage:     stage,
		Encounter: m.deps.Bosses.Archery(stage.Number),
		Bow:       Bow{X: t.Archery.BowX, Y: t.World.Height / 2},
	}
}

// Factor is the time scale applied to the suns and the draw.
func (s *Archery) Factor(m *Machine) float64 {
	if s.SlowActive {
		return m.deps.Tuning.Archery.TimeSlowFactor
	}
	return 1
}

func (s *Archery) update(m *Machine, dt float64, in input.State) State {
	t := m.deps.Tuning
	a := t.Archery

	adt := dt * s.Factor(m)
	if s.SlowActive {
		s.SlowTimer += dt
		if s.SlowTimer >= a.TimeSlowMS {
			s.SlowActive = false
		}
	}

	px, py := in.Pointer()
	s.Bow.Y = common.Clamp(py, a.BowMargin, t.World.Height-a.BowMargin)
	s.Bow.Angle = math.Atan2(py-s.Bow.Y, px-s.Bow.X)

	down := in.Cur.PointerDown
	if down && s.Arrow == nil && !s.Bow.Drawing {
		s.Bow.Drawing = true
	}
	if s.Bow.Drawing {
		s.Bow.Strength = math.Min(a.MaxDraw, s.Bow.Strength+a.DrawRate*adt/16)
		if !down {
			s.release(m)
		}
	}

	if s.Arrow != nil {
		s.Arrow.Step(1)
		if i, ok := s.Encounter.Strike(s.Arrow.Body); ok {
			m.deps.Audio.PlayEffect("sun_hit")
			m.deps.Logger.Debug("sun hit", "stage", s.Stage.Number, "sun", i, "remaining", s.Encounter.Remaining())
			s.reset()
			if s.Encounter.Cleared() {
				return m.enterDialogue(s.Stage.Number)
			}
		} else if s.Arrow.OutOfBounds(t.World.Width, t.World.Height) {
			s.reset()
		}
	}

	if m.progress.Abilities.TimeSlow && in.Down(input.KeySpace) && !s.SlowActive {
		s.SlowActive = true
		s.SlowTimer = 0
		m.deps.Audio.PlayEffect("time_slow")
	}

	s.Encounter.Update(adt)
	return nil
}

// release fires the drawn arrow. An undrawn bow launches nothing.
func (s *Archery) release(m *Machine) {
	a := m.deps.Tuning.Archery
	s.Bow.Drawing = false
	x := s.Bow.X + math.Cos(s.Bow.Angle)*a.ArrowOffset
	y := s.Bow.Y + math.Sin(s.Bow.Angle)*a.ArrowOffset
	arrow := entity.NewProjectile(x, y, s.Bow.Angle, s.Bow.Strength/a.MaxDraw, a.ArrowSpeed)
	if arrow.Inert() {
		s.reset()
		return
	}
	s.Arrow = arrow
	m.deps.Audio.PlayEffect("shoot_arrow")
}

func (s *Archery) reset() {
	s.Arrow = nil
	s.Bow.Drawing = false
	s.Bow.Strength = 0
}

func (s *Archery) draw(m *Machine, dst render.Surface) {
	_, h := dst.Size()
	maxDraw := m.deps.Tuning.Archery.MaxDraw
	dst.Clear(archerySky)
	for _, sun := range s.Encounter.Suns {
		m.drawSun(dst, sun)
	}

	dst.Save()
	dst.Translate(s.Bow.X, s.Bow.Y)
	dst.Rotate(s.Bow.Angle)
	dst.Line(0, -20, 25, 0, 2, colornames.White)
	dst.Line(25, 0, 0, 20, 2, colornames.White)
	pull := s.Bow.Strength / maxDraw * -15
	dst.Line(0, -20, pull, 0, 2, colornames.White)
	dst.Line(pull, 0, 0, 20, 2, colornames.White)
	dst.Restore()

	if s.Arrow != nil {
		dst.Save()
		dst.Translate(s.Arrow.X, s.Arrow.Y)
		dst.Rotate(s.Arrow.Angle)
		dst.FillRect(-5, -2, entity.ProjectileWidth, 4, colornames.White)
		dst.Line(25, 0, 15, -5, 2, colornames.White)
		dst.Line(25, 0, 15, 5, 2, colornames.White)
		dst.Restore()
	}

	dst.Text(fmt.Sprintf("Stage %d: %s", s.Stage.Number, s.Stage.Name), 20, 30, 20, render.AlignLeft, colornames.White)
	dst.Text(fmt.Sprintf("Arrow: %s", s.Stage.ArrowName), 20, 60, 20, render.AlignLeft, colornames.White)
	if m.progress.Abilities.TimeSlow {
		status := "Time Slow: Ready (Space)"
		if s.SlowActive {
			status = "Time Slow: Active"
		}
		dst.Text(status, 20, 90, 16, render.AlignLeft, colornames.White)
	}
	if s.Bow.Drawing {
		dst.FillRect(50, h-30, 200, 20, rgba(255, 255, 255, 0.5))
		dst.FillRect(50, h-30, 200*(s.Bow.Strength/maxDraw), 20, rgba(255, 0, 0, 0.8))
	}
}
