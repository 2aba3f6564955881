package scene

import (
	"fmt"

	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
)

// Ending is terminal: it types out the ending text then holds the credits.
type Ending struct {
	Outcome story.Ending
	Credits bool

	text    *typewriter
	fadeMS  float32
	fade    *gween.Tween
	alpha   float64
	elapsed float64
}

func (*Ending) Kind() Kind { return KindEnding }
func (*Ending) state()     {}

func (m *Machine) enterEnding() *Ending {
	m.progress.Stage = progress.StageEnding
	outcome := m.progress.Ending()
	m.deps.Audio.PlayTrack("bgm_ending")
	m.deps.Logger.Info("ending reached", "ending", outcome, "active_suns", m.progress.ActiveSuns)

	fadeMS := float32(m.deps.Tuning.Timing.FadeSeconds * 1000)
	if fadeMS <= 0 {
		fadeMS = 3200
	}
	s := &Ending{
		Outcome: outcome,
		text:    newTypewriter(m.deps.Narrative.EndingLines(outcome), m.deps.Tuning.Timing.TextCharMS),
		fadeMS:  fadeMS,
	}
	s.fade = gween.New(0, 1, s.fadeMS, ease.Linear)
	s.Credits = s.text.done()
	return s
}

func (s *Ending) Visible() string { return s.text.visible() }

func (s *Ending) Index() int { return s.text.index }

// Alpha is the fade-in level of the current line.
func (s *Ending) Alpha() float64 { return s.alpha }

func (s *Ending) update(m *Machine, dt float64, in input.State) {
	s.elapsed += dt
	if s.Credits {
		return
	}
	v, _ := s.fade.Update(float32(dt))
	s.alpha = float64(v)
	s.text.update(dt)

	if s.text.complete() && (in.PointerPressed() || in.Pressed(input.KeyEnter)) {
		if !s.text.next() {
			s.Credits = true
			m.deps.Logger.Info("credits", "arrows", len(m.progress.Arrows))
			return
		}
		s.fade = gween.New(0, 1, s.fadeMS, ease.Linear)
		s.alpha = 0
	}
}

func (s *Ending) draw(m *Machine, dst render.Surface) {
	w, h := dst.Size()
	if s.Outcome == story.EndingHarsh {
		dst.Clear(rgba(80, 100, 130, 1))
		dst.FillCircle(w/2, 100, 40, rgba(255, 220, 150, 0.8))
	} else {
		dst.Clear(rgba(120, 150, 180, 1))
		dst.FillCircle(w/2-80, 100, 40, rgba(255, 220, 150, 0.8))
		dst.FillCircle(w/2+80, 120, 30, rgba(255, 180, 120, 0.6))
	}

	if s.Credits {
		s.drawCredits(m, dst)
		return
	}

	dst.Save()
	dst.SetAlpha(s.alpha)
	drawWrapped(dst, s.text.visible(), 100, 250, 20, w-200, 30, colornames.White)
	dst.Restore()
	if s.text.complete() {
		dst.Text(m.deps.Narrative.ContinuePrompt, w-200, h-50, 16, render.AlignLeft, rgba(255, 255, 255, pulse(s.elapsed)))
	}
}

func (s *Ending) drawCredits(m *Machine, dst render.Surface) {
	w, _ := dst.Size()
	credits := m.deps.Narrative.Credits
	y := 220.0
	if len(credits) > 0 {
		dst.Text(credits[0], w/2, y, 32, render.AlignCenter, colornames.White)
		y += 50
	}
	if len(credits) > 1 {
		dst.Text(credits[1], w/2, y, 20, render.AlignCenter, colornames.Gold)
		y += 32
	}
	for _, arrow := range m.progress.Arrows {
		dst.Text(arrow, w/2, y, 18, render.AlignCenter, colornames.White)
		y += 26
	}
	if c, ok := m.progress.LastChoice(); ok {
		y += 16
		dst.Text(fmt.Sprintf("Choice: %s", c), w/2, y, 18, render.AlignCenter, colornames.Gold)
	}
}
