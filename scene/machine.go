// Package scene runs the game flow: intro, platforming, archery, dialogue
// and the ending. Exactly one scene is active; entering a scene always
// builds it from scratch.
package scene

import (
	"image"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/audio"
	"github.com/milk9111/houyi/boss"
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/levels"
	"github.com/milk9111/houyi/prefabs"
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
	"github.com/milk9111/houyi/system"
)

type Kind int

const (
	KindIntro Kind = iota
	KindPlatforming
	KindArchery
	KindDialogue
	KindEnding
)

func (k Kind) String() string {
	switch k {
	case KindIntro:
		return "intro"
	case KindPlatforming:
		return "platforming"
	case KindArchery:
		return "archery"
	case KindDialogue:
		return "dialogue"
	case KindEnding:
		return "ending"
	}
	return "unknown"
}

// State is one of *Intro, *Platforming, *Archery, *Dialogue or *Ending.
type State interface {
	Kind() Kind
	state()
}

// Images resolves sprite ids. A miss means draw a placeholder.
type Images interface {
	Image(id string) (image.Image, bool)
}

// Deps are the collaborators the machine drives.
type Deps struct {
	Stages    *story.Table
	Narrative story.Narrative
	Tuning    prefabs.TuningSpec
	Layouts   *levels.Generator
	Bosses    *boss.Builder
	Audio     audio.Sink
	Images    Images
	Prompt    ChoicePrompt
	Logger    *log.Logger
	Rand      *rand.Rand
}

type Machine struct {
	deps     Deps
	progress *progress.Progress
	physics  *system.PlayerPhysicsSystem
	movers   *system.MovingPlatformSystem
	camera   *Camera
	scene    State
	ticks    int
}

// New builds a machine in the intro scene. p may be nil for a fresh run.
func New(deps Deps, p *progress.Progress) *Machine {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Audio == nil {
		deps.Audio = &audio.Recorder{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if deps.Stages == nil {
		table, err := story.LoadTable(deps.Logger)
		if err != nil {
			deps.Logger.Error("load stages", "err", err)
		}
		deps.Stages = table
	}
	if deps.Layouts == nil {
		catalog, err := levels.LoadCatalog()
		if err != nil {
			deps.Logger.Error("load layouts", "err", err)
		}
		deps.Layouts = levels.NewGenerator(catalog, deps.Tuning, deps.Logger)
	}
	if deps.Bosses == nil {
		deps.Bosses = boss.NewBuilder(deps.Stages, deps.Tuning, boss.TableSelector{}, deps.Rand, deps.Logger)
		deps.Bosses.SetFallbackSprite(deps.Narrative.FallbackSprite)
	}
	if p == nil {
		p = progress.New()
	}
	w, h := deps.Tuning.World.Width, deps.Tuning.World.Height
	m := &Machine{
		deps:     deps,
		progress: p,
		physics:  system.NewPlayerPhysicsSystem(deps.Tuning),
		movers:   system.NewMovingPlatformSystem(),
		camera:   NewCamera(w, h),
	}
	m.camera.SetWorldBounds(w, h)
	m.scene = m.enterIntro()
	return m
}

// StartAt skips ahead to the platforming scene of stage n.
func (m *Machine) StartAt(n int) {
	if m == nil {
		return
	}
	if n < story.FirstStage || n > story.LastStage {
		m.deps.Logger.Warn("start stage out of range, using first stage", "stage", n)
		n = story.FirstStage
	}
	m.transition(m.enterPlatforming(n))
}

func (m *Machine) Progress() *progress.Progress {
	if m == nil {
		return nil
	}
	return m.progress
}

func (m *Machine) Scene() State {
	if m == nil {
		return nil
	}
	return m.scene
}

func (m *Machine) Kind() Kind {
	if m == nil || m.scene == nil {
		return KindIntro
	}
	return m.scene.Kind()
}

// Ticks is the number of updates processed.
func (m *Machine) Ticks() int {
	if m == nil {
		return 0
	}
	return m.ticks
}

// ReplaceStory swaps in freshly loaded stage data. Scenes already running
// keep the values they copied on entry.
func (m *Machine) ReplaceStory(table *story.Table, narrative story.Narrative) {
	if m == nil || table == nil {
		return
	}
	m.deps.Stages = table
	m.deps.Narrative = narrative
	m.deps.Bosses = boss.NewBuilder(table, m.deps.Tuning, m.selector(), m.deps.Rand, m.deps.Logger)
	m.deps.Bosses.SetFallbackSprite(narrative.FallbackSprite)
}

// SetSelector swaps the boss pattern selector for encounters built from
// now on.
func (m *Machine) SetSelector(sel boss.Selector) {
	if m == nil {
		return
	}
	m.deps.Bosses = boss.NewBuilder(m.deps.Stages, m.deps.Tuning, sel, m.deps.Rand, m.deps.Logger)
	m.deps.Bosses.SetFallbackSprite(m.deps.Narrative.FallbackSprite)
}

func (m *Machine) selector() boss.Selector {
	if m.deps.Bosses != nil {
		if s := m.deps.Bosses.Selector(); s != nil {
			return s
		}
	}
	return boss.TableSelector{}
}

// Update advances the active scene by one fixed step of dt milliseconds.
func (m *Machine) Update(dt float64, in input.State) {
	if m == nil || m.scene == nil {
		return
	}
	m.ticks++

	var next State
	switch s := m.scene.(type) {
	case *Intro:
		next = s.update(m, dt, in)
	case *Platforming:
		next = s.update(m, dt, in)
	case *Archery:
		next = s.update(m, dt, in)
	case *Dialogue:
		next = s.update(m, dt, in)
	case *Ending:
		s.update(m, dt, in)
	}
	if next != nil {
		m.transition(next)
	}
}

// Draw renders the active scene.
func (m *Machine) Draw(dst render.Surface) {
	if m == nil || m.scene == nil || dst == nil {
		return
	}
	switch s := m.scene.(type) {
	case *Intro:
		s.draw(m, dst)
	case *Platforming:
		s.draw(m, dst)
	case *Archery:
		s.draw(m, dst)
	case *Dialogue:
		s.draw(m, dst)
	case *Ending:
		s.draw(m, dst)
	}
}

func (m *Machine) transition(next State) {
	from := m.Kind()
	m.scene = next
	m.deps.Logger.Info("scene transition", "from", from, "to", next.Kind(), "stage", m.progress.Stage)
}

func (m *Machine) stage(n int) story.Stage {
	return m.deps.Stages.Stage(n)
}
