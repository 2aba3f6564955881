package render

import (
	"image"
	"image/color"
	"math"
	"unicode/utf8"
)

// Call is one recorded drawing operation.
type Call struct {
	Op    string
	X, Y  float64
	W, H  float64
	Text  string
	Size  float64
	Align Align
	Color color.Color
	Image image.Image
	FlipX bool
	Alpha float64
}

// Recorder is a Surface that records calls instead of drawing. Text is
// measured as half the font size per rune.
type Recorder struct {
	W, H  float64
	Calls []Call

	alpha float64
	stack []float64
	depth int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, alpha: 1}
}

func (r *Recorder) record(c Call) {
	c.Alpha = r.alpha
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear(c color.Color) { r.record(Call{Op: "clear", Color: c}) }

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record(Call{Op: "fill_rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.record(Call{Op: "stroke_rect", X: x, Y: y, W: w, H: h, Size: width, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.record(Call{Op: "fill_circle", X: cx, Y: cy, W: rad, H: rad, Color: c})
}

func (r *Recorder) Line(x0, y0, x1, y1, width float64, c color.Color) {
	r.record(Call{Op: "line", X: x0, Y: y0, W: x1 - x0, H: y1 - y0, Size: width, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64, flipX bool) {
	r.record(Call{Op: "image", X: x, Y: y, W: w, H: h, Image: img, FlipX: flipX})
}

func (r *Recorder) Text(s string, x, y, size float64, align Align, c color.Color) {
	r.record(Call{Op: "text", X: x, Y: y, Text: s, Size: size, Align: align, Color: c})
}

func (r *Recorder) MeasureText(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.alpha)
	r.depth++
	r.record(Call{Op: "save"})
}

func (r *Recorder) Restore() {
	if len(r.stack) > 0 {
		r.alpha = r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		r.depth--
	}
	r.record(Call{Op: "restore"})
}

func (r *Recorder) Translate(x, y float64) { r.record(Call{Op: "translate", X: x, Y: y}) }

func (r *Recorder) Rotate(theta float64) { r.record(Call{Op: "rotate", Size: theta}) }

func (r *Recorder) SetAlpha(a float64) {
	r.alpha = math.Max(0, math.Min(1, a))
	r.record(Call{Op: "alpha", Size: r.alpha})
}

// Depth is the number of unmatched Save calls.
func (r *Recorder) Depth() int { return r.depth }

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.alpha = 1
	r.stack = r.stack[:0]
	r.depth = 0
}

// Texts returns every string drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}

func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns the first call with the given op matching pred.
func (r *Recorder) Find(op string, pred func(Call) bool) (Call, bool) {
	for _, c := range r.Calls {
		if c.Op == op && (pred == nil || pred(c)) {
			return c, true
		}
	}
	return Call{}, false
}
