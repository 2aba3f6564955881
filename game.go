package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/houyi/assets"
	"github.com/milk9111/houyi/audio"
	"github.com/milk9111/houyi/boss"
	"github.com/milk9111/houyi/common"
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/prefabs"
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/scene"
	"github.com/milk9111/houyi/story"
	"github.com/milk9111/houyi/ui"
)

// Config is the command line state.
type Config struct {
	Debug      bool
	Stage      int
	Abilities  bool
	Watch      bool
	TuningPath string
	Seed       uint64
	AssetsDir  string
}

type Game struct {
	cfg    Config
	logger *log.Logger
	tuning prefabs.TuningSpec
	seed   uint64

	machine *scene.Machine
	stepper *common.Stepper
	tracker *input.Tracker
	source  *input.EbitenSource
	surface *render.EbitenSurface
	mixer   *audio.Mixer
	overlay *ui.ChoiceOverlay
	watcher *prefabs.Watcher

	last   time.Time
	frames int
}

func NewGame(cfg Config, logger *log.Logger) (*Game, error) {
	tuning, err := prefabs.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, err
	}
	table, err := story.LoadTable(logger)
	if err != nil {
		return nil, err
	}
	narrative, err := story.LoadNarrative()
	if err != nil {
		return nil, err
	}
	assetTable, err := assets.Load(cfg.AssetsDir, logger)
	if err != nil {
		return nil, err
	}
	surface, err := render.NewEbitenSurface(tuning.World.Width, tuning.World.Height)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	ctx := ebaudio.NewContext(audio.SampleRate)
	mixer := audio.NewMixer(audio.EbitenLoader(ctx, assetTable, logger), logger)
	overlay := ui.NewChoiceOverlay(logger)
	bosses := boss.NewBuilder(table, tuning, loadSelector(logger), rng, logger)
	bosses.SetFallbackSprite(narrative.FallbackSprite)

	p := progress.New()
	if cfg.Abilities {
		p.UnlockAll()
	}
	machine := scene.New(scene.Deps{
		Stages:    table,
		Narrative: narrative,
		Tuning:    tuning,
		Bosses:    bosses,
		Audio:     mixer,
		Images:    assetTable,
		Prompt:    overlay,
		Logger:    logger,
		Rand:      rng,
	}, p)
	if cfg.Stage != 0 {
		machine.StartAt(cfg.Stage)
	}

	g := &Game{
		cfg:     cfg,
		logger:  logger,
		tuning:  tuning,
		seed:    seed,
		machine: machine,
		stepper: common.NewStepper(common.TimeStep),
		tracker: input.NewTracker(),
		source:  input.NewEbitenSource(),
		surface: surface,
		mixer:   mixer,
		overlay: overlay,
	}
	if cfg.Watch {
		w, err := prefabs.NewWatcher(logger, prefabs.Dirs()...)
		if err != nil {
			logger.Warn("prefab watch disabled", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadSelector prefers the pattern script and falls back to the built-in
// table when it cannot be compiled.
func loadSelector(logger *log.Logger) boss.Selector {
	sel, err := boss.NewScriptSelector(boss.PatternScript, logger)
	if err != nil {
		logger.Warn("pattern script unavailable, using built-in table", "err", err)
		return boss.TableSelector{}
	}
	return sel
}

func (g *Game) Close() {
	if g == nil || g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		g.logger.Warn("close prefab watcher", "err", err)
	}
}

func (g *Game) Update() error {
	g.frames++
	now := time.Now()
	elapsed := common.TimeStep
	if !g.last.IsZero() {
		elapsed = float64(now.Sub(g.last).Microseconds()) / 1000
	}
	g.last = now

	for _, name := range g.watcher.Drain() {
		g.reload(name)
	}

	if g.overlay.Open() {
		g.overlay.Update()
	}
	g.stepper.Advance(elapsed, g.tick)
	g.mixer.Update()
	return nil
}

func (g *Game) tick(dt float64) {
	if g.overlay.Open() {
		// the overlay owns the pointer while it is up
		if g.source.KeyDown(input.KeyEscape) {
			g.overlay.Dismiss()
		}
		g.tracker.Swallow(g.source)
		g.machine.Update(dt, input.State{})
		return
	}
	st := g.tracker.Poll(g.source)
	if st.Pressed(input.KeyM) {
		g.mixer.ToggleMute()
		g.logger.Info("audio", "muted", g.mixer.Muted())
	}
	g.machine.Update(dt, st)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)
	g.machine.Draw(g.surface)
	g.overlay.Draw(screen)

	if g.cfg.Debug {
		p := g.machine.Progress()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.1f  TPS %.1f  scene %s  stage %d  ticks %d  suns %d  muted %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.machine.Kind(), p.Stage, g.machine.Ticks(), p.ActiveSuns, g.mixer.Muted()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.tuning.World.Width, g.tuning.World.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.tuning.World.Width), int(g.tuning.World.Height)
}

type reloadKind int

const (
	reloadNone reloadKind = iota
	reloadStory
	reloadPatterns
	reloadTuning
)

func classifyReload(name string) reloadKind {
	switch filepath.Base(name) {
	case "stages.yaml", "story.yaml":
		return reloadStory
	case boss.PatternScript:
		return reloadPatterns
	case "tuning.yaml":
		return reloadTuning
	}
	return reloadNone
}

// reload applies an edited prefab. Failed parses keep the running data.
func (g *Game) reload(name string) {
	switch classifyReload(name) {
	case reloadStory:
		table, err := story.LoadTable(g.logger)
		if err != nil {
			g.logger.Error("reload stages", "file", name, "err", err)
			return
		}
		narrative, err := story.LoadNarrative()
		if err != nil {
			g.logger.Error("reload story", "file", name, "err", err)
			return
		}
		g.machine.ReplaceStory(table, narrative)
		g.logger.Info("story reloaded", "file", name, "stages", table.Len(), "disk", prefabs.OnDisk(filepath.Base(name)))
	case reloadPatterns:
		g.machine.SetSelector(loadSelector(g.logger))
		g.logger.Info("pattern script reloaded", "file", name)
	case reloadTuning:
		g.logger.Warn("tuning changes apply on restart", "file", name)
	}
}
