// Package render defines the drawing surface the scenes paint on, an ebiten
// implementation of it and a recorder for headless tests.
package render

import (
	"image"
	"image/color"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a 2D canvas with a save/restore transform stack. Coordinates
// are in world units; Y grows downward.
type Surface interface {
	Size() (w, h float64)
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	Line(x0, y0, x1, y1, width float64, c color.Color)
	DrawImage(img image.Image, x, y, w, h float64, flipX bool)
	Text(s string, x, y, size float64, align Align, c color.Color)
	MeasureText(s string, size float64) float64

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)
	SetAlpha(a float64)
}

// Measurer is the subset of Surface needed for text layout.
type Measurer interface {
	MeasureText(s string, size float64) float64
}
