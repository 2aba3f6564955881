package scene

import (
	"image/color"

	"github.com/milk9111/houyi/render"
)

// typewriter reveals a list of lines one character at a time.
type typewriter struct {
	lines  []string
	index  int
	timer  float64
	charMS float64
	shown  int
}

func newTypewriter(lines []string, charMS float64) *typewriter {
	if charMS <= 0 {
		charMS = 30
	}
	return &typewriter{lines: lines, charMS: charMS}
}

func (t *typewriter) current() []rune {
	if t.index >= len(t.lines) {
		return nil
	}
	return []rune(t.lines[t.index])
}

func (t *typewriter) update(dt float64) {
	if t.done() || t.complete() {
		return
	}
	t.timer += dt
	line := t.current()
	t.shown = min(int(t.timer/t.charMS), len(line))
}

// complete reports whether the current line is fully shown.
func (t *typewriter) complete() bool {
	return t.shown >= len(t.current())
}

func (t *typewriter) done() bool {
	return t.index >= len(t.lines)
}

// next moves to the following line and reports whether one exists.
func (t *typewriter) next() bool {
	t.index++
	t.timer = 0
	t.shown = 0
	return !t.done()
}

func (t *typewriter) visible() string {
	line := t.current()
	return string(line[:min(t.shown, len(line))])
}

// drawWrapped draws s word-wrapped at (x, y), one row per lineHeight.
func drawWrapped(dst render.Surface, s string, x, y, size, maxWidth, lineHeight float64, c color.Color) {
	for i, row := range render.Wrap(dst, s, size, maxWidth) {
		dst.Text(row, x, y+float64(i)*lineHeight, size, render.AlignLeft, c)
	}
}
