package scene

import (
	"io"
	"math"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/audio"
	"github.com/milk9111/houyi/boss"
	"github.com/milk9111/houyi/common"
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/prefabs"
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
)

type harness struct {
	m       *Machine
	fake    *input.Fake
	tracker *input.Tracker
	audio   *audio.Recorder
	rec     *render.Recorder
}

func newHarness(t *testing.T, prompt ChoicePrompt) *harness {
	t.Helper()
	logger := log.New(io.Discard)
	tuning, err := prefabs.LoadTuning("")
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	table, err := story.LoadTable(logger)
	if err != nil {
		t.Fatalf("load stages: %v", err)
	}
	narrative, err := story.LoadNarrative()
	if err != nil {
		t.Fatalf("load story: %v", err)
	}
	sink := &audio.Recorder{}
	m := New(Deps{
		Stages:    table,
		Narrative: narrative,
		Tuning:    tuning,
		Audio:     sink,
		Prompt:    prompt,
		Logger:    logger,
	}, nil)
	return &harness{
		m:       m,
		fake:    input.NewFake(),
		tracker: input.NewTracker(),
		audio:   sink,
		rec:     render.NewRecorder(tuning.World.Width, tuning.World.Height),
	}
}

func (h *harness) step() {
	h.m.Update(common.TimeStep, h.tracker.Poll(h.fake))
}

func (h *harness) steps(n int) {
	for i := 0; i < n; i++ {
		h.step()
	}
}

func (h *harness) click() {
	h.fake.Button = true
	h.step()
	h.fake.Button = false
	h.step()
}

func (h *harness) lineComplete() bool {
	switch s := h.m.Scene().(type) {
	case *Dialogue:
		return s.Complete() && !s.Waiting()
	case *Ending:
		return !s.Credits && s.text.complete()
	}
	return false
}

// readUntil types and acknowledges lines until the machine reaches kind.
func (h *harness) readUntil(t *testing.T, kind Kind) {
	t.Helper()
	for i := 0; i < 20000; i++ {
		if h.m.Kind() == kind {
			return
		}
		if h.lineComplete() {
			h.click()
			continue
		}
		h.step()
	}
	t.Fatalf("never reached %v, stuck in %v", kind, h.m.Kind())
}

func (h *harness) draw() {
	h.rec.Reset()
	h.m.Draw(h.rec)
}

func (h *harness) enter(s State) {
	h.m.transition(s)
}

// strike drops a motionless arrow onto the centre of sun i.
func (h *harness) strike(t *testing.T, i int) {
	t.Helper()
	a, ok := h.m.Scene().(*Archery)
	if !ok {
		t.Fatalf("scene = %v, want archery", h.m.Kind())
	}
	cx, cy := a.Encounter.Suns[i].Center()
	a.Arrow = entity.NewProjectile(cx-entity.ProjectileWidth/2, cy, 0, 0, 0)
	h.step()
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestIntro(t *testing.T) {
	t.Run("any key skips to stage one", func(t *testing.T) {
		h := newHarness(t, nil)
		h.fake.Other = true
		h.step()

		s, ok := h.m.Scene().(*Platforming)
		if !ok {
			t.Fatalf("scene = %v, want platforming", h.m.Kind())
		}
		if h.m.Progress().Stage != 1 {
			t.Fatalf("stage = %d, want 1", h.m.Progress().Stage)
		}
		ground := s.Platforms[0]
		if ground.Y != h.m.deps.Tuning.World.Height-50 || ground.X != 0 || ground.W != h.m.deps.Tuning.World.Width {
			t.Fatalf("ground = %+v", ground.Body)
		}
		if got := h.audio.Tracks; !slices.Equal(got, []string{"bgm_intro", "bgm_stage_1"}) {
			t.Fatalf("tracks = %v", got)
		}
	})

	t.Run("pointer skips", func(t *testing.T) {
		h := newHarness(t, nil)
		h.fake.Button = true
		h.step()
		if h.m.Kind() != KindPlatforming {
			t.Fatalf("scene = %v, want platforming", h.m.Kind())
		}
	})

	t.Run("lines advance on a timer", func(t *testing.T) {
		h := newHarness(t, nil)
		intro := h.m.Scene().(*Intro)
		lines := len(intro.Lines)

		h.steps(60)
		if intro.Index != 0 {
			t.Fatalf("index after 1s = %d, want 0", intro.Index)
		}
		h.steps(70)
		if intro.Index != 1 {
			t.Fatalf("index after 2.16s = %d, want 1", intro.Index)
		}
		h.steps(lines*130 + 10)
		if h.m.Kind() != KindPlatforming || h.m.Progress().Stage != 1 {
			t.Fatalf("scene = %v stage %d, want platforming stage 1", h.m.Kind(), h.m.Progress().Stage)
		}
	})

	t.Run("draws the current line", func(t *testing.T) {
		h := newHarness(t, nil)
		h.steps(10)
		h.draw()
		intro := h.m.Scene().(*Intro)
		if !slices.Contains(h.rec.Texts(), intro.Lines[0]) {
			t.Fatalf("texts = %v", h.rec.Texts())
		}
		if h.rec.Depth() != 0 {
			t.Fatalf("unbalanced save/restore: %d", h.rec.Depth())
		}
	})
}

func TestPlatforming(t *testing.T) {
	t.Run("resting player stays grounded", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.StartAt(1)
		s := h.m.Scene().(*Platforming)
		h.steps(120)
		if !s.Player.Grounded {
			t.Fatal("player not grounded after settling")
		}
		x, y := s.Player.X, s.Player.Y
		h.step()
		if !s.Player.Grounded || s.Player.X != x || s.Player.Y != y {
			t.Fatalf("player moved at rest: (%v,%v) -> (%v,%v)", x, y, s.Player.X, s.Player.Y)
		}
	})

	t.Run("collecting the arrow starts archery", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.StartAt(3)
		s := h.m.Scene().(*Platforming)
		s.Player.X = s.Arrow.X
		s.Player.Y = s.Arrow.Y - 20
		h.step()

		if h.m.Kind() != KindArchery {
			t.Fatalf("scene = %v, want archery", h.m.Kind())
		}
		p := h.m.Progress()
		if !slices.Equal(p.Arrows, []string{"Arrows of Balance"}) {
			t.Fatalf("arrows = %v", p.Arrows)
		}
		if !p.Abilities.DoubleJump {
			t.Fatal("stage 3 reward not unlocked")
		}
		if h.audio.Played("collect_arrow") != 1 || h.audio.LastTrack() != "bgm_archery" {
			t.Fatalf("audio = %+v", h.audio)
		}
	})

	t.Run("abilities survive later stages", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.Progress().Unlock(story.AbilityDoubleJump)
		for n := 4; n <= 9; n++ {
			h.m.StartAt(n)
			h.steps(5)
			if !h.m.Progress().Abilities.DoubleJump {
				t.Fatalf("double jump lost at stage %d", n)
			}
		}
	})

	t.Run("moving platforms stay in range", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.StartAt(2)
		s := h.m.Scene().(*Platforming)
		for i := 0; i < 600; i++ {
			h.step()
			for _, p := range s.Platforms {
				if p.Moving() && (p.X < p.StartX || p.X > p.EndX) {
					t.Fatalf("platform x %v outside [%v, %v]", p.X, p.StartX, p.EndX)
				}
			}
		}
	})

	t.Run("moving platform covers its speed each tick", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.StartAt(2)
		s := h.m.Scene().(*Platforming)
		p := &s.Platforms[1]
		if !p.Moving() || p.Speed != 1 {
			t.Fatalf("platform 1 = %+v, want the speed 1 mover", *p)
		}
		x := p.X
		h.step()
		if !near(p.X-x, 1) {
			t.Fatalf("moved %v in one tick, want 1", p.X-x)
		}
		h.steps(9)
		if !near(p.X-x, 10) {
			t.Fatalf("moved %v in ten ticks, want 10", p.X-x)
		}
	})

	t.Run("unknown start stage falls back", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.StartAt(42)
		s := h.m.Scene().(*Platforming)
		if s.Stage.Number != 1 {
			t.Fatalf("stage = %d, want 1", s.Stage.Number)
		}
	})

	t.Run("hud", func(t *testing.T) {
		h := newHarness(t, nil)
		h.m.Progress().UnlockAll()
		h.m.StartAt(1)
		h.step()
		h.draw()
		texts := h.rec.Texts()
		for _, want := range []string{"Stage 1: Pride", "Double Jump: Available", "Time Slow: Available"} {
			if !slices.Contains(texts, want) {
				t.Fatalf("texts = %v, missing %q", texts, want)
			}
		}
		if _, ok := h.rec.Find("fill_rect", func(c render.Call) bool { return c.Color == playerFill }); !ok {
			t.Fatal("no placeholder player drawn")
		}
		if h.rec.Depth() != 0 {
			t.Fatalf("unbalanced save/restore: %d", h.rec.Depth())
		}
	})
}

func TestArchery(t *testing.T) {
	t.Run("single sun hit starts dialogue", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		h.strike(t, 0)
		if h.m.Kind() != KindDialogue {
			t.Fatalf("scene = %v, want dialogue", h.m.Kind())
		}
		if h.audio.Played("sun_hit") != 1 {
			t.Fatalf("sun_hit played %d times", h.audio.Played("sun_hit"))
		}
	})

	t.Run("twins need both hits", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(3))
		a := h.m.Scene().(*Archery)
		if len(a.Encounter.Suns) != 2 {
			t.Fatalf("suns = %d, want 2", len(a.Encounter.Suns))
		}
		o0, ok0 := a.Encounter.Suns[0].Pattern.(*boss.Orbit)
		o1, ok1 := a.Encounter.Suns[1].Pattern.(*boss.Orbit)
		if !ok0 || !ok1 || o0.Speed != -o1.Speed || o0.Speed == 0 {
			t.Fatalf("patterns = %T %T", a.Encounter.Suns[0].Pattern, a.Encounter.Suns[1].Pattern)
		}

		h.strike(t, 0)
		if h.m.Kind() != KindArchery {
			t.Fatalf("scene = %v after one twin, want archery", h.m.Kind())
		}
		if a.Arrow != nil {
			t.Fatal("arrow survived its hit")
		}
		h.strike(t, 0)
		if a.Encounter.Remaining() != 1 {
			t.Fatalf("same sun counted twice, remaining %d", a.Encounter.Remaining())
		}
		h.strike(t, 1)
		if h.m.Kind() != KindDialogue {
			t.Fatalf("scene = %v, want dialogue", h.m.Kind())
		}
	})

	t.Run("draw and release", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		a := h.m.Scene().(*Archery)
		h.fake.X, h.fake.Y = 600, h.m.deps.Tuning.World.Height/2
		h.fake.Button = true
		h.steps(16)
		if !a.Bow.Drawing || a.Bow.Strength <= 0 {
			t.Fatalf("bow = %+v, want drawing", a.Bow)
		}
		h.fake.Button = false
		h.step()

		if a.Arrow == nil {
			t.Fatal("no arrow after release")
		}
		// the release tick still adds to the draw before firing
		want := a.Bow.Strength / 100 * 10
		if !near(a.Arrow.VX, want) || !near(a.Arrow.VY, 0) {
			t.Fatalf("velocity = (%v,%v), want (%v,0)", a.Arrow.VX, a.Arrow.VY, want)
		}
		if h.audio.Played("shoot_arrow") != 1 {
			t.Fatalf("shoot_arrow played %d times", h.audio.Played("shoot_arrow"))
		}
	})

	t.Run("strength caps at full draw", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		a := h.m.Scene().(*Archery)
		h.fake.Button = true
		h.steps(200)
		if a.Bow.Strength != 100 {
			t.Fatalf("strength = %v, want 100", a.Bow.Strength)
		}
	})

	t.Run("undrawn release is inert", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		a := h.m.Scene().(*Archery)
		a.Bow.Drawing = true
		a.release(h.m)
		if a.Arrow != nil || a.Bow.Drawing {
			t.Fatalf("inert shot left state %+v", a.Bow)
		}
		if h.audio.Played("shoot_arrow") != 0 {
			t.Fatal("inert shot played a sound")
		}
	})

	t.Run("missed arrow resets the bow", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		a := h.m.Scene().(*Archery)
		a.Arrow = entity.NewProjectile(5, 300, math.Pi, 1, 10)
		a.Bow.Strength = 50
		h.step()
		if a.Arrow != nil || a.Bow.Strength != 0 {
			t.Fatalf("arrow %v strength %v after leaving the world", a.Arrow, a.Bow.Strength)
		}
	})

	t.Run("time slow", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		a := h.m.Scene().(*Archery)

		h.fake.Press(input.KeySpace)
		h.step()
		if a.SlowActive {
			t.Fatal("time slow without the ability")
		}

		h.m.Progress().Unlock(story.AbilityTimeSlow)
		h.step()
		if !a.SlowActive || a.Factor(h.m) != 0.5 {
			t.Fatalf("slow = %v factor %v", a.SlowActive, a.Factor(h.m))
		}
		h.fake.Release(input.KeySpace)
		h.steps(290)
		if !a.SlowActive {
			t.Fatal("time slow ended early")
		}
		h.steps(20)
		if a.SlowActive {
			t.Fatal("time slow outlived its duration")
		}
		if h.audio.Played("time_slow") != 1 {
			t.Fatalf("time_slow played %d times", h.audio.Played("time_slow"))
		}
	})

	t.Run("hud", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterArchery(1))
		h.fake.Button = true
		h.steps(3)
		h.draw()
		texts := h.rec.Texts()
		for _, want := range []string{"Stage 1: Pride", "Arrow: Arrow of Humility"} {
			if !slices.Contains(texts, want) {
				t.Fatalf("texts = %v, missing %q", texts, want)
			}
		}
		if _, ok := h.rec.Find("fill_rect", func(c render.Call) bool { return c.X == 50 && c.W == 200 }); !ok {
			t.Fatal("no power meter while drawing")
		}
		if h.rec.Depth() != 0 {
			t.Fatalf("unbalanced save/restore: %d", h.rec.Depth())
		}
	})
}

func TestDialogue(t *testing.T) {
	t.Run("types and waits for a click", func(t *testing.T) {
		h := newHarness(t, nil)
		specs := []prefabs.StageSpec{{Number: 1, Name: "Pride", Dialogues: []string{"first line", "second line"}}}
		table, err := story.NewTable(specs, h.m.deps.Logger)
		if err != nil {
			t.Fatal(err)
		}
		h.m.ReplaceStory(table, h.m.deps.Narrative)
		h.enter(h.m.enterDialogue(1))
		d := h.m.Scene().(*Dialogue)
		h.steps(3)
		if d.Complete() || d.Visible() == "" {
			t.Fatalf("visible = %q complete = %v", d.Visible(), d.Complete())
		}
		h.click()
		if d.Index() != 0 {
			t.Fatal("click advanced an incomplete line")
		}
		for !d.Complete() {
			h.step()
		}
		h.fake.Button = true
		h.step()
		if d.Index() != 1 {
			t.Fatalf("index = %d, want 1", d.Index())
		}
		h.fake.Button = true
		h.steps(200)
		if d.Index() != 1 || h.m.Kind() != KindDialogue {
			t.Fatalf("held button advanced again: index %d scene %v", d.Index(), h.m.Kind())
		}
	})

	t.Run("continues to the next stage", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterDialogue(1))
		h.readUntil(t, KindPlatforming)
		if h.m.Progress().Stage != 2 || h.audio.LastTrack() != "bgm_stage_2" {
			t.Fatalf("stage %d track %q", h.m.Progress().Stage, h.audio.LastTrack())
		}
	})

	t.Run("empty dialogue uses the fallback line", func(t *testing.T) {
		h := newHarness(t, nil)
		specs := []prefabs.StageSpec{{Number: 1, Name: "Quiet"}}
		table, err := story.NewTable(specs, h.m.deps.Logger)
		if err != nil {
			t.Fatal(err)
		}
		h.m.ReplaceStory(table, h.m.deps.Narrative)
		h.enter(h.m.enterDialogue(1))
		d := h.m.Scene().(*Dialogue)
		h.steps(200)
		if d.Visible() != h.m.deps.Narrative.FallbackLine {
			t.Fatalf("visible = %q", d.Visible())
		}
	})

	t.Run("draw", func(t *testing.T) {
		h := newHarness(t, nil)
		h.enter(h.m.enterDialogue(1))
		h.steps(400)
		h.draw()
		if !slices.Contains(h.rec.Texts(), h.m.deps.Narrative.ContinuePrompt) {
			t.Fatalf("texts = %v", h.rec.Texts())
		}
		if _, ok := h.rec.Find("stroke_rect", func(c render.Call) bool { return c.X == 100 }); !ok {
			t.Fatal("no dialogue box border")
		}
	})
}

type countingPrompt struct {
	asks int
	ch   chan progress.Choice
}

func (p *countingPrompt) Ask(Prompt) <-chan progress.Choice {
	p.asks++
	return p.ch
}

func TestMoralChoice(t *testing.T) {
	tests := []struct {
		name    string
		prompt  func() ChoicePrompt
		suns    int
		choices []progress.Choice
		ending  story.Ending
	}{
		{"destroy", func() ChoicePrompt { return Answer(progress.ChoiceDestroy) }, 1, []progress.Choice{progress.ChoiceDestroy}, story.EndingHarsh},
		{"spare", func() ChoicePrompt { return Answer(progress.ChoiceSpare) }, 2, []progress.Choice{progress.ChoiceSpare}, story.EndingBalanced},
		{"no prompt", func() ChoicePrompt { return nil }, 2, []progress.Choice{progress.ChoiceSpare}, story.EndingBalanced},
		{"invalid answer", func() ChoicePrompt { return Answer("maybe") }, 2, []progress.Choice{progress.ChoiceSpare}, story.EndingBalanced},
		{"dismissed", func() ChoicePrompt {
			return PromptFunc(func(Prompt) <-chan progress.Choice {
				ch := make(chan progress.Choice)
				close(ch)
				return ch
			})
		}, 2, []progress.Choice{progress.ChoiceSpare}, story.EndingBalanced},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, tc.prompt())
			h.enter(h.m.enterDialogue(9))
			h.readUntil(t, KindEnding)

			p := h.m.Progress()
			if p.ActiveSuns != tc.suns || !slices.Equal(p.Choices, tc.choices) {
				t.Fatalf("suns %d choices %v", p.ActiveSuns, p.Choices)
			}
			e := h.m.Scene().(*Ending)
			if e.Outcome != tc.ending || p.Stage != progress.StageEnding {
				t.Fatalf("outcome %v stage %d", e.Outcome, p.Stage)
			}
			if h.audio.LastTrack() != "bgm_ending" {
				t.Fatalf("track = %q", h.audio.LastTrack())
			}
		})
	}

	t.Run("machine keeps running while the prompt is open", func(t *testing.T) {
		prompt := &countingPrompt{ch: make(chan progress.Choice, 1)}
		h := newHarness(t, prompt)
		h.enter(h.m.enterDialogue(9))
		d := h.m.Scene().(*Dialogue)
		for i := 0; i < 20000 && !d.Waiting(); i++ {
			if h.lineComplete() {
				h.click()
				continue
			}
			h.step()
		}
		if !d.Waiting() {
			t.Fatal("prompt never requested")
		}
		before := h.m.Ticks()
		h.steps(300)
		if h.m.Kind() != KindDialogue || h.m.Ticks() != before+300 {
			t.Fatalf("scene %v ticks %d", h.m.Kind(), h.m.Ticks())
		}
		prompt.ch <- progress.ChoiceDestroy
		h.step()
		if h.m.Kind() != KindEnding || prompt.asks != 1 {
			t.Fatalf("scene %v asks %d", h.m.Kind(), prompt.asks)
		}
	})
}

func TestEnding(t *testing.T) {
	h := newHarness(t, Answer(progress.ChoiceSpare))
	h.m.Progress().CollectArrow("Arrow of Humility")
	h.enter(h.m.enterDialogue(9))
	h.readUntil(t, KindEnding)
	e := h.m.Scene().(*Ending)

	t.Run("fades in", func(t *testing.T) {
		h.steps(96)
		if a := e.Alpha(); a < 0.4 || a > 0.6 {
			t.Fatalf("alpha after 1.6s = %v, want about 0.5", a)
		}
	})

	t.Run("credits after the last line", func(t *testing.T) {
		for i := 0; i < 20000 && !e.Credits; i++ {
			if h.lineComplete() {
				h.click()
				continue
			}
			h.step()
		}
		if !e.Credits {
			t.Fatal("credits never shown")
		}
		h.steps(300)
		h.click()
		if h.m.Kind() != KindEnding {
			t.Fatalf("ending exited to %v", h.m.Kind())
		}
		h.draw()
		texts := h.rec.Texts()
		for _, want := range []string{"Arrow of Humility", "Choice: spare"} {
			if !slices.Contains(texts, want) {
				t.Fatalf("texts = %v, missing %q", texts, want)
			}
		}
		if h.rec.Count("fill_circle") != 2 {
			t.Fatalf("balanced ending drew %d suns", h.rec.Count("fill_circle"))
		}
	})
}

func TestCamera(t *testing.T) {
	tests := []struct {
		name       string
		worldW     float64
		target     float64
		wantCenter float64
	}{
		{"world equals view", 1280, 900, 640},
		{"wide world follows", 3000, 1500, 1500},
		{"clamped at left edge", 3000, 10, 640},
		{"clamped at right edge", 3000, 2990, 2360},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(1280, 720)
			c.SetWorldBounds(tc.worldW, 720)
			c.SnapTo(tc.target, 360)
			if c.PosX != tc.wantCenter {
				t.Fatalf("pos = %v, want %v", c.PosX, tc.wantCenter)
			}
		})
	}
}
