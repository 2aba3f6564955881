package render

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

type state struct {
	geo   ebiten.GeoM
	alpha float64
}

// EbitenSurface draws onto an *ebiten.Image. Set Target before each frame.
type EbitenSurface struct {
	Target *ebiten.Image

	cur    state
	stack  []state
	pixel  *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
	images map[image.Image]*ebiten.Image
	w, h   float64
}

func NewEbitenSurface(w, h float64) (*EbitenSurface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &EbitenSurface{
		cur:    state{alpha: 1},
		pixel:  pixel,
		source: src,
		faces:  map[float64]*text.GoTextFace{},
		images: map[image.Image]*ebiten.Image{},
		w:      w,
		h:      h,
	}, nil
}

// Begin resets the transform stack and targets dst for the frame.
func (s *EbitenSurface) Begin(dst *ebiten.Image) {
	if s == nil {
		return
	}
	s.Target = dst
	s.cur = state{alpha: 1}
	s.stack = s.stack[:0]
}

func (s *EbitenSurface) Size() (float64, float64) { return s.w, s.h }

func (s *EbitenSurface) Clear(c color.Color) {
	if s == nil || s.Target == nil {
		return
	}
	s.Target.Fill(c)
}

func (s *EbitenSurface) colorScale(c color.Color) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	cs.ScaleAlpha(float32(s.cur.alpha))
	return cs
}

func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.Color) {
	if s == nil || s.Target == nil || w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.cur.geo)
	op.ColorScale = s.colorScale(c)
	s.Target.DrawImage(s.pixel, op)
}

func (s *EbitenSurface) StrokeRect(x, y, w, h, width float64, c color.Color) {
	s.FillRect(x, y, w, width, c)
	s.FillRect(x, y+h-width, w, width, c)
	s.FillRect(x, y, width, h, c)
	s.FillRect(x+w-width, y, width, h, c)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, c color.Color) {
	if s == nil || s.Target == nil {
		return
	}
	x, y := s.cur.geo.Apply(cx, cy)
	vector.FillCircle(s.Target, float32(x), float32(y), float32(r), s.faded(c), true)
}

func (s *EbitenSurface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	if s == nil || s.Target == nil {
		return
	}
	ax, ay := s.cur.geo.Apply(x0, y0)
	bx, by := s.cur.geo.Apply(x1, y1)
	vector.StrokeLine(s.Target, float32(ax), float32(ay), float32(bx), float32(by), float32(width), s.faded(c), true)
}

func (s *EbitenSurface) faded(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	k := s.cur.alpha
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}

func (s *EbitenSurface) DrawImage(img image.Image, x, y, w, h float64, flipX bool) {
	if s == nil || s.Target == nil || img == nil {
		return
	}
	eimg := s.ebitenImage(img)
	b := eimg.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if flipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(iw, 0)
	}
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.cur.geo)
	op.ColorScale.ScaleAlpha(float32(s.cur.alpha))
	op.Filter = ebiten.FilterLinear
	s.Target.DrawImage(eimg, op)
}

func (s *EbitenSurface) ebitenImage(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.images[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	s.images[img] = e
	return e
}

func (s *EbitenSurface) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.source, Size: size}
	s.faces[size] = f
	return f
}

func (s *EbitenSurface) Text(str string, x, y, size float64, align Align, c color.Color) {
	if s == nil || s.Target == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	switch align {
	case AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case AlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	op.GeoM.Translate(x, y-size)
	op.GeoM.Concat(s.cur.geo)
	op.ColorScale = s.colorScale(c)
	text.Draw(s.Target, str, s.face(size), op)
}

func (s *EbitenSurface) MeasureText(str string, size float64) float64 {
	if s == nil {
		return 0
	}
	w, _ := text.Measure(str, s.face(size), 0)
	return w
}

func (s *EbitenSurface) Save() {
	if s == nil {
		return
	}
	s.stack = append(s.stack, s.cur)
}

func (s *EbitenSurface) Restore() {
	if s == nil || len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate and Rotate prepend to the current transform so that later
// drawing happens in the new local space.
func (s *EbitenSurface) Translate(x, y float64) {
	if s == nil {
		return
	}
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(s.cur.geo)
	s.cur.geo = m
}

func (s *EbitenSurface) Rotate(theta float64) {
	if s == nil {
		return
	}
	var m ebiten.GeoM
	m.Rotate(theta)
	m.Concat(s.cur.geo)
	s.cur.geo = m
}

func (s *EbitenSurface) SetAlpha(a float64) {
	if s == nil {
		return
	}
	s.cur.alpha = math.Max(0, math.Min(1, a))
}
