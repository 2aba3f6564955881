package story

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/prefabs"
)

func TestLoadTable(t *testing.T) {
	tbl, err := LoadTable(log.New(io.Discard))
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if tbl.Len() != LastStage {
		t.Fatalf("expected %d stages, got %d", LastStage, tbl.Len())
	}

	cases := []struct {
		stage   int
		name    string
		style   string
		reward  Ability
		twin    bool
		sprites int
	}{
		{1, "Pride", "simple", AbilityNone, false, 1},
		{3, "Unity & Division", "upward movement, dual sides", AbilityDoubleJump, true, 2},
		{5, "Anger", "time-limited platforms", AbilityTimeSlow, false, 1},
		{9, "Sorrow", "most challenging, all previous mechanics", AbilityNone, false, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, ok := tbl.Lookup(c.stage)
			if !ok {
				t.Fatalf("stage %d missing", c.stage)
			}
			if s.Name != c.name || s.PlatformStyle != c.style || s.RewardAbility != c.reward || s.Twin != c.twin {
				t.Fatalf("unexpected stage %+v", s)
			}
			if len(s.Sprites) != c.sprites {
				t.Fatalf("expected %d sprites, got %d", c.sprites, len(s.Sprites))
			}
			if len(s.Dialogues) == 0 {
				t.Fatalf("expected dialogue lines")
			}
		})
	}
}

func TestStageFallsBackToFirst(t *testing.T) {
	tbl, err := LoadTable(log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, -3, 10, 42} {
		if _, ok := tbl.Lookup(n); ok {
			t.Fatalf("Lookup(%d) should fail", n)
		}
		if s := tbl.Stage(n); s.Number != 1 {
			t.Fatalf("Stage(%d) should fall back to stage 1, got %d", n, s.Number)
		}
	}
}

func TestNewTableRejectsGaps(t *testing.T) {
	specs := []prefabs.StageSpec{{Number: 1, Name: "a"}, {Number: 3, Name: "b"}}
	if _, err := NewTable(specs, nil); err == nil {
		t.Fatalf("expected error for out-of-order stage numbers")
	}
	if _, err := NewTable(nil, nil); err == nil {
		t.Fatalf("expected error for empty table")
	}
}

func TestStageValuesAreCopies(t *testing.T) {
	tbl, err := LoadTable(log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	s := tbl.Stage(1)
	lines := s.Lines()
	lines[0] = "changed"
	if tbl.Stage(1).Dialogues[0] == "changed" {
		t.Fatalf("Lines must return a copy")
	}
}

func TestSprite(t *testing.T) {
	s := Stage{Sprites: []string{"unity", "division"}}
	if s.Sprite(0) != "unity" || s.Sprite(1) != "division" || s.Sprite(5) != "division" {
		t.Fatalf("unexpected sprite selection")
	}
	if (Stage{}).Sprite(0) != "" {
		t.Fatalf("expected empty sprite for stage without sprites")
	}
}

func TestNarrativeEndings(t *testing.T) {
	n, err := LoadNarrative()
	if err != nil {
		t.Fatalf("LoadNarrative: %v", err)
	}
	if got := n.EndingLines(EndingHarsh); len(got) == 0 || got[0] != n.Harsh[0] {
		t.Fatalf("expected harsh lines")
	}
	if got := n.EndingLines(EndingBalanced); len(got) == 0 || got[0] != n.Balanced[0] {
		t.Fatalf("expected balanced lines")
	}
	if EndingHarsh.String() != "harsh" || EndingBalanced.String() != "balanced" {
		t.Fatalf("unexpected ending names")
	}
}
