package render

import (
	"image/color"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	r := NewRecorder(1280, 720)
	cases := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "   ", 100, nil},
		{"fits", "hello world", 200, []string{"hello world"}},
		// size 10 measures 5 per rune, so 50 fits ten runes.
		{"breaks", "aaaa bbbb cccc", 50, []string{"aaaa bbbb", "cccc"}},
		{"long word", "abcdefghijklmnop q", 50, []string{"abcdefghijklmnop", "q"}},
		{"no width", "a b c", 0, []string{"a b c"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Wrap(r, c.text, 10, c.width)
			if strings.Join(got, "|") != strings.Join(c.want, "|") {
				t.Fatalf("Wrap = %q, want %q", got, c.want)
			}
		})
	}
}

func TestRecorderAlphaStack(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Save()
	r.SetAlpha(0.5)
	r.FillRect(0, 0, 1, 1, color.White)
	r.Restore()
	r.FillRect(0, 0, 1, 1, color.White)

	var alphas []float64
	for _, c := range r.Calls {
		if c.Op == "fill_rect" {
			alphas = append(alphas, c.Alpha)
		}
	}
	if len(alphas) != 2 || alphas[0] != 0.5 || alphas[1] != 1 {
		t.Fatalf("unexpected alphas %v", alphas)
	}
	if r.Depth() != 0 {
		t.Fatalf("unbalanced save/restore")
	}
}

func TestRecorderQueries(t *testing.T) {
	r := NewRecorder(100, 100)
	r.Text("one", 0, 0, 10, AlignLeft, color.White)
	r.Text("two", 0, 0, 10, AlignCenter, color.White)
	r.FillRect(1, 2, 3, 4, color.Black)
	if got := r.Texts(); len(got) != 2 || got[1] != "two" {
		t.Fatalf("unexpected texts %v", got)
	}
	if r.Count("fill_rect") != 1 {
		t.Fatalf("expected one rect")
	}
	c, ok := r.Find("text", func(c Call) bool { return c.Align == AlignCenter })
	if !ok || c.Text != "two" {
		t.Fatalf("Find returned %+v", c)
	}
	r.Reset()
	if len(r.Calls) != 0 {
		t.Fatalf("expected reset")
	}
}
