package scene

import (
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
	"golang.org/x/image/colornames"
)

// Dialogue types out the defeated sun's lines. After the final stage it
// waits on the moral choice.
type Dialogue struct {
	Stage story.Stage

	text    *typewriter
	elapsed float64
	pending <-chan progress.Choice
	asked   bool
}

func (*Dialogue) Kind() Kind { return KindDialogue }
func (*Dialogue) state()     {}

func (m *Machine) enterDialogue(n int) *Dialogue {
	stage := m.stage(n)
	lines := stage.Lines()
	if len(lines) == 0 {
		lines = []string{m.deps.Narrative.FallbackLine}
	}
	return &Dialogue{Stage: stage, text: newTypewriter(lines, m.deps.Tuning.Timing.TextCharMS)}
}

// Visible is the part of the current line typed so far.
func (s *Dialogue) Visible() string { return s.text.visible() }

// Index is the position of the current line.
func (s *Dialogue) Index() int { return s.text.index }

func (s *Dialogue) Complete() bool { return s.text.complete() }

// Waiting reports an outstanding choice request.
func (s *Dialogue) Waiting() bool { return s.asked }

func (s *Dialogue) update(m *Machine, dt float64, in input.State) State {
	s.elapsed += dt
	if s.text.done() {
		return s.finish(m)
	}

	s.text.update(dt)
	if s.text.complete() && (in.PointerPressed() || in.Pressed(input.KeyEnter)) {
		if !s.text.next() {
			return s.finish(m)
		}
	}
	return nil
}

func (s *Dialogue) finish(m *Machine) State {
	if s.Stage.Number < story.LastStage {
		return m.enterPlatforming(s.Stage.Number + 1)
	}
	if m.deps.Prompt == nil {
		m.deps.Logger.Warn("no choice prompt, sparing the last sun")
		m.progress.RecordChoice(progress.ChoiceSpare)
		return m.enterEnding()
	}
	if !s.asked {
		s.asked = true
		s.pending = m.deps.Prompt.Ask(moralPrompt(m.deps.Narrative))
		m.deps.Logger.Info("moral choice requested", "stage", s.Stage.Number)
	}

	select {
	case c, ok := <-s.pending:
		if !ok || !m.progress.RecordChoice(c) {
			m.deps.Logger.Warn("choice prompt gave no valid answer, sparing the last sun", "choice", c)
			m.progress.RecordChoice(progress.ChoiceSpare)
		}
		return m.enterEnding()
	default:
		return nil
	}
}

func (s *Dialogue) draw(m *Machine, dst render.Surface) {
	w, h := dst.Size()
	m.drawBackdrop(dst, s.Stage.Background, scorchedSky)
	dst.FillRect(0, 0, w, h, rgba(0, 0, 0, 0.7))
	if s.asked {
		return
	}

	dst.FillRect(100, h-200, w-200, 150, rgba(50, 50, 70, 0.8))
	dst.StrokeRect(100, h-200, w-200, 150, 3, rgba(255, 215, 0, 0.6))
	drawWrapped(dst, s.text.visible(), 120, h-170, 18, w-240, 25, colornames.White)
	if s.text.complete() {
		dst.Text(m.deps.Narrative.ContinuePrompt, w-230, h-70, 16, render.AlignLeft, rgba(255, 255, 255, pulse(s.elapsed)))
	}
}
