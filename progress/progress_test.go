package progress

import (
	"testing"

	"github.com/milk9111/houyi/story"
)

func TestNew(t *testing.T) {
	p := New()
	if p.Stage != StageIntro || p.ActiveSuns != 10 || p.Abilities.DoubleJump || p.Abilities.TimeSlow {
		t.Fatalf("unexpected initial progress %+v", p)
	}
}

func TestUnlockMonotonic(t *testing.T) {
	p := New()
	rewards := []story.Ability{story.AbilityNone, story.AbilityNone, story.AbilityDoubleJump, story.AbilityNone, story.AbilityTimeSlow, story.AbilityNone}
	prev := p.Abilities
	for i, r := range rewards {
		p.Unlock(r)
		if prev.DoubleJump && !p.Abilities.DoubleJump || prev.TimeSlow && !p.Abilities.TimeSlow {
			t.Fatalf("step %d: ability revoked", i)
		}
		prev = p.Abilities
	}
	if !p.Has(story.AbilityDoubleJump) || !p.Has(story.AbilityTimeSlow) {
		t.Fatalf("expected both abilities")
	}
}

func TestChoiceEnding(t *testing.T) {
	cases := []struct {
		choice Choice
		suns   int
		ending story.Ending
	}{
		{ChoiceDestroy, 1, story.EndingHarsh},
		{ChoiceSpare, 2, story.EndingBalanced},
	}
	for _, c := range cases {
		t.Run(string(c.choice), func(t *testing.T) {
			p := New()
			if !p.RecordChoice(c.choice) {
				t.Fatalf("choice rejected")
			}
			if p.ActiveSuns != c.suns || p.Ending() != c.ending {
				t.Fatalf("got suns %d ending %v", p.ActiveSuns, p.Ending())
			}
			if last, ok := p.LastChoice(); !ok || last != c.choice {
				t.Fatalf("unexpected last choice %q", last)
			}
		})
	}
}

func TestInvalidChoiceIgnored(t *testing.T) {
	p := New()
	if p.RecordChoice("maybe") {
		t.Fatalf("invalid choice accepted")
	}
	if p.ActiveSuns != 10 || len(p.Choices) != 0 {
		t.Fatalf("progress changed by invalid choice")
	}
	if p.Ending() != story.EndingBalanced {
		t.Fatalf("untouched progress should not be harsh")
	}
}

func TestSnapshotIsDeep(t *testing.T) {
	p := New()
	p.CollectArrow("Arrow of Humility")
	snap := p.Snapshot()
	p.CollectArrow("Arrow of Sacrifice")
	if len(snap.Arrows) != 1 {
		t.Fatalf("snapshot shares arrow storage")
	}
}
