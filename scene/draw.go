package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/milk9111/houyi/boss"
	"github.com/milk9111/houyi/entity"
	"github.com/milk9111/houyi/render"
	"golang.org/x/image/colornames"
)

var (
	platformTop    = color.RGBA{0x66, 0x44, 0x33, 0xff}
	platformMid    = color.RGBA{0x55, 0x33, 0x22, 0xff}
	platformBottom = color.RGBA{0x44, 0x22, 0x11, 0xff}
	playerFill     = color.RGBA{0x44, 0x88, 0xaa, 0xff}
	archerySky     = color.RGBA{0x00, 0x11, 0x33, 0xff}
)

// rgba builds a colour from 0-255 channels and a 0-1 alpha.
func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

// pulse oscillates between 0 and 1 on a 300 ms period.
func pulse(ms float64) float64 {
	return 0.5 + math.Sin(ms/300)*0.5
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// frame cuts the w by h cell at column col out of a sprite sheet. Images
// that cannot be cut, or are too small, are returned whole.
func frame(img image.Image, col, w, h int) image.Image {
	si, ok := img.(subImager)
	if !ok {
		return img
	}
	b := img.Bounds()
	r := image.Rect(col*w, 0, (col+1)*w, h).Add(b.Min)
	if !r.In(b) {
		r = image.Rect(0, 0, w, h).Add(b.Min)
		if !r.In(b) {
			return img
		}
	}
	return si.SubImage(r)
}

func (m *Machine) image(id string) (image.Image, bool) {
	if m.deps.Images == nil || id == "" {
		return nil, false
	}
	return m.deps.Images.Image(id)
}

func drawPlatform(dst render.Surface, p entity.Platform, elapsed float64) {
	if p.Decoy {
		dst.Save()
		dst.SetAlpha(0.5)
		defer dst.Restore()
	}
	third := p.H / 3
	dst.FillRect(p.X, p.Y, p.W, third, platformTop)
	dst.FillRect(p.X, p.Y+third, p.W, third, platformMid)
	dst.FillRect(p.X, p.Y+2*third, p.W, p.H-2*third, platformBottom)
	dst.FillRect(p.X, p.Y, p.W, 2, rgba(255, 255, 255, 0.1))
	if p.Moving() {
		glow := 0.3 + 0.2*math.Sin(elapsed/300)
		dst.StrokeRect(p.X, p.Y, p.W, p.H, 2, rgba(255, 200, 100, glow))
	}
}

// Player sheets hold 30x28 cells drawn at double size.
const (
	playerCellW = 30
	playerCellH = 28
	playerScale = 2
)

func (m *Machine) drawPlayer(dst render.Surface, p *entity.Player) {
	if img, ok := m.image("player"); ok {
		w, h := playerCellW*playerScale, playerCellH*playerScale
		x := p.X + (p.W-float64(w))/2
		y := p.Y + (p.H-float64(h))/2
		dst.DrawImage(frame(img, p.Frame, playerCellW, playerCellH), x, y, float64(w), float64(h), p.Facing == entity.FacingLeft)
		return
	}
	dst.FillRect(p.X, p.Y, p.W, p.H, playerFill)
	eyeX := p.X + p.W - 15
	if p.Facing == entity.FacingLeft {
		eyeX = p.X + 10
	}
	dst.FillRect(eyeX, p.Y+15, 5, 5, colornames.White)
}

func (m *Machine) drawSun(dst render.Surface, s *boss.Sun) {
	for _, d := range s.Decoys() {
		dst.Save()
		dst.SetAlpha(0.4)
		m.drawSunBody(dst, s, d)
		dst.Restore()
	}
	alpha := s.Opacity
	if s.Hit {
		alpha *= 0.3
	}
	dst.Save()
	dst.SetAlpha(alpha)
	m.drawSunBody(dst, s, s.Body)
	dst.Restore()
}

func (m *Machine) drawSunBody(dst render.Surface, s *boss.Sun, at entity.Body) {
	cx, cy := at.Center()
	dst.Save()
	defer dst.Restore()
	dst.Translate(cx, cy)
	dst.Rotate(s.Rotation)
	if img, ok := m.image(s.Sprite); ok {
		dst.DrawImage(img, -at.W/2, -at.H/2, at.W, at.H, false)
	} else {
		dst.FillRect(-at.W/2, -at.H/2, at.W, at.H, colornames.Red)
	}
	for _, r := range s.Rays {
		dst.Line(0, 0, math.Cos(r.Angle)*r.Length, math.Sin(r.Angle)*r.Length, 2, rgba(255, 200, 0, 0.3))
	}
}

// drawBackdrop fills the view with the stage background, or a colour when
// no image is available.
func (m *Machine) drawBackdrop(dst render.Surface, id string, fallback color.Color) {
	w, h := dst.Size()
	if img, ok := m.image(id); ok {
		dst.DrawImage(img, 0, 0, w, h, false)
		return
	}
	if img, ok := m.image(m.deps.Narrative.DefaultBackdrop); ok {
		dst.DrawImage(img, 0, 0, w, h, false)
		return
	}
	dst.Clear(fallback)
}
