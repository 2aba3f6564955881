package scene

import (
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
)

const introFadeMS = 500

// Intro shows the opening lines one at a time.
type Intro struct {
	Lines []string
	Index int
	Timer float64

	lineMS float64
	fade   *gween.Tween
	alpha  float64
}

func (*Intro) Kind() Kind { return KindIntro }
func (*Intro) state()     {}

func (m *Machine) enterIntro() *Intro {
	m.progress.Stage = 0
	m.deps.Audio.PlayTrack("bgm_intro")
	lineMS := m.deps.Tuning.Timing.IntroLineMS
	if lineMS <= 0 {
		lineMS = 2000
	}
	return &Intro{
		Lines:  append([]string(nil), m.deps.Narrative.Intro...),
		lineMS: lineMS,
		fade:   gween.New(0, 1, introFadeMS, ease.Linear),
	}
}

// Line is the text currently on screen.
func (s *Intro) Line() string {
	if s.Index >= len(s.Lines) {
		return ""
	}
	return s.Lines[s.Index]
}

func (s *Intro) update(m *Machine, dt float64, in input.State) State {
	if in.Active() || s.Index >= len(s.Lines) {
		return m.enterPlatforming(story.FirstStage)
	}
	v, _ := s.fade.Update(float32(dt))
	s.alpha = float64(v)

	s.Timer += dt
	if s.Timer >= s.lineMS {
		s.Timer = 0
		s.Index++
		s.fade = gween.New(0, 1, introFadeMS, ease.Linear)
		s.alpha = 0
		if s.Index >= len(s.Lines) {
			return m.enterPlatforming(story.FirstStage)
		}
	}
	return nil
}

func (s *Intro) draw(m *Machine, dst render.Surface) {
	w, h := dst.Size()
	dst.Clear(colornames.Black)
	line := s.Line()
	if line == "" {
		return
	}
	dst.Save()
	dst.SetAlpha(s.alpha)
	dst.Text(line, w/2, h/2, 24, render.AlignCenter, colornames.White)
	dst.Restore()
}
