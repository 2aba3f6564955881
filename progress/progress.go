// Package progress tracks the run: current stage, unlocked abilities,
// collected arrows and the final choice.
package progress

import (
	"slices"

	"github.com/milk9111/houyi/story"
)

const (
	StageIntro  = 0
	StageEnding = 10

	InitialActiveSuns = 10
)

type Choice string

const (
	ChoiceDestroy Choice = "destroy"
	ChoiceSpare   Choice = "spare"
)

func (c Choice) Valid() bool { return c == ChoiceDestroy || c == ChoiceSpare }

// ActiveSuns is the number of suns left in the sky after the choice.
func (c Choice) ActiveSuns() int {
	if c == ChoiceDestroy {
		return 1
	}
	return 2
}

type Abilities struct {
	DoubleJump bool
	TimeSlow   bool
}

type Progress struct {
	Stage      int
	Abilities  Abilities
	Arrows     []string
	Choices    []Choice
	ActiveSuns int
}

func New() *Progress {
	return &Progress{Stage: StageIntro, ActiveSuns: InitialActiveSuns}
}

// Unlock grants an ability. Abilities are never revoked.
func (p *Progress) Unlock(a story.Ability) {
	if p == nil {
		return
	}
	switch a {
	case story.AbilityDoubleJump:
		p.Abilities.DoubleJump = true
	case story.AbilityTimeSlow:
		p.Abilities.TimeSlow = true
	}
}

func (p *Progress) UnlockAll() {
	p.Unlock(story.AbilityDoubleJump)
	p.Unlock(story.AbilityTimeSlow)
}

func (p *Progress) Has(a story.Ability) bool {
	if p == nil {
		return false
	}
	switch a {
	case story.AbilityDoubleJump:
		return p.Abilities.DoubleJump
	case story.AbilityTimeSlow:
		return p.Abilities.TimeSlow
	}
	return false
}

func (p *Progress) CollectArrow(name string) {
	if p == nil {
		return
	}
	p.Arrows = append(p.Arrows, name)
}

// RecordChoice stores the moral choice and sets the surviving sun count.
// Invalid choices are ignored.
func (p *Progress) RecordChoice(c Choice) bool {
	if p == nil || !c.Valid() {
		return false
	}
	p.Choices = append(p.Choices, c)
	p.ActiveSuns = c.ActiveSuns()
	return true
}

// LastChoice returns the most recent choice, if any.
func (p *Progress) LastChoice() (Choice, bool) {
	if p == nil || len(p.Choices) == 0 {
		return "", false
	}
	return p.Choices[len(p.Choices)-1], true
}

// Ending selects the closing narrative. A single surviving sun is the harsh
// ending; anything else is balanced.
func (p *Progress) Ending() story.Ending {
	if p != nil && p.ActiveSuns == 1 {
		return story.EndingHarsh
	}
	return story.EndingBalanced
}

// Snapshot returns a deep copy.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	out := *p
	out.Arrows = slices.Clone(p.Arrows)
	out.Choices = slices.Clone(p.Choices)
	return out
}
