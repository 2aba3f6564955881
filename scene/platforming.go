package scene

import (
	"fmt"

	"github.com/milk9111/houyi/boss"
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/input"
	"github.com/milk9111/houyi/levels"
	"github.com/milk9111/houyi/render"
	"github.com/milk9111/houyi/story"
	"github.com/milk9111/houyi/system"
	"golang.org/x/image/colornames"
)

var scorchedSky = rgba(60, 30, 20, 1)

// Platforming is one stage's traversal level.
type Platforming struct {
	Stage     story.Stage
	Layout    levels.Layout
	Platforms []entity.Platform
	Player    *entity.Player
	Arrow     *entity.Collectible
	Backdrop  *boss.Encounter
	Elapsed   float64
}

func (*Platforming) Kind() Kind { return KindPlatforming }
func (*Platforming) state()     {}

func (m *Machine) enterPlatforming(n int) *Platforming {
	stage := m.stage(n)
	m.progress.Stage = stage.Number

	t := m.deps.Tuning
	layout := m.deps.Layouts.Generate(stage.PlatformStyle)
	player := entity.NewPlayer(t.Player.SpawnX, t.World.Height-t.Player.SpawnOffsetY, t.Player.Width, t.Player.Height)
	c := layout.Collectible
	s := &Platforming{
		Stage:     stage,
		Layout:    layout,
		Platforms: layout.Platforms,
		Player:    player,
		Arrow:     entity.NewCollectible(c.X, c.Y, c.W, c.H, stage.ArrowName),
		Backdrop:  m.deps.Bosses.Backdrop(stage.Number),
	}
	m.camera.SnapTo(player.Center())
	m.deps.Audio.PlayTrack(fmt.Sprintf("bgm_stage_%d", stage.Number))
	return s
}

func (s *Platforming) update(m *Machine, dt float64, in input.State) State {
	s.Elapsed += dt
	pin := system.PlayerInput{
		Left:        in.Down(input.KeyLeft),
		Right:       in.Down(input.KeyRight),
		JumpPressed: in.Pressed(input.KeyUp) || in.Pressed(input.KeySpace),
	}
	m.physics.Update(s.Player, pin, s.Platforms, m.progress.Abilities.DoubleJump)
	s.Player.Animate(dt)
	m.camera.Update(s.Player.Center())
	m.movers.Update(s.Platforms, dt)
	s.Backdrop.Update(dt)

	if s.Arrow.TryCollect(s.Player) {
		m.progress.CollectArrow(s.Stage.ArrowName)
		m.progress.Unlock(s.Stage.RewardAbility)
		m.deps.Audio.PlayEffect("collect_arrow")
		m.deps.Logger.Debug("arrow collected", "stage", s.Stage.Number, "arrow", s.Stage.ArrowName)
		return m.enterArchery(s.Stage.Number)
	}
	return nil
}

func (s *Platforming) draw(m *Machine, dst render.Surface) {
	m.drawBackdrop(dst, s.Stage.Background, scorchedSky)
	if s.Backdrop != nil {
		for _, sun := range s.Backdrop.Suns {
			m.drawSun(dst, sun)
		}
	}

	camX, camY := m.camera.ViewTopLeft()
	dst.Save()
	dst.Translate(-camX, -camY)
	for _, p := range s.Platforms {
		drawPlatform(dst, p, s.Elapsed)
	}
	if !s.Arrow.Collected {
		dst.FillRect(s.Arrow.X, s.Arrow.Y, s.Arrow.W, s.Arrow.H, colornames.White)
	}
	m.drawPlayer(dst, s.Player)
	dst.Restore()

	dst.Text(fmt.Sprintf("Stage %d: %s", s.Stage.Number, s.Stage.Name), 20, 30, 20, render.AlignLeft, colornames.White)
	if m.progress.Abilities.DoubleJump {
		dst.Text("Double Jump: Available", 20, 60, 16, render.AlignLeft, colornames.White)
	}
	if m.progress.Abilities.TimeSlow {
		dst.Text("Time Slow: Available", 20, 80, 16, render.AlignLeft, colornames.White)
	}
}
