// Package story holds the fixed narrative content: the nine stage
// definitions, the intro, the moral choice and the two endings.
package story

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/milk9111/houyi/prefabs"
)

const (
	FirstStage = 1
	LastStage  = 9
)

// Ability is a reward tag granted by clearing a stage.
type Ability string

const (
	AbilityNone       Ability = ""
	AbilityDoubleJump Ability = "doubleJump"
	AbilityTimeSlow   Ability = "timeSlowAbility"
)

// Stage is one immutable stage definition.
type Stage struct {
	Number           int
	Name             string
	Personality      string
	Environment      string
	Dialogues        []string
	ArrowName        string
	PlatformStyle    string
	SpecialChallenge string
	RewardAbility    Ability
	Twin             bool
	Sprites          []string
	Background       string
	Color            color.Color
}

// Sprite returns the sprite id for the i-th sun of the stage.
func (s Stage) Sprite(i int) string {
	if len(s.Sprites) == 0 {
		return ""
	}
	if i < 0 || i >= len(s.Sprites) {
		return s.Sprites[len(s.Sprites)-1]
	}
	return s.Sprites[i]
}

// Lines returns a copy of the stage dialogue.
func (s Stage) Lines() []string {
	return append([]string(nil), s.Dialogues...)
}

// Table is the stage data table indexed 1..9.
type Table struct {
	stages []Stage
	logger *log.Logger
}

// NewTable builds a table from stage specs. Stages must be numbered
// 1..len(specs) in order.
func NewTable(specs []prefabs.StageSpec, logger *log.Logger) (*Table, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("story: no stages defined")
	}
	stages := make([]Stage, 0, len(specs))
	for i, spec := range specs {
		if spec.Number != i+1 {
			return nil, fmt.Errorf("story: stage %q has number %d, expected %d", spec.Name, spec.Number, i+1)
		}
		var clr color.Color = color.NRGBA{R: 255, A: 255}
		if spec.Color != nil && spec.Color.Color != nil {
			clr = spec.Color.Color
		}
		stages = append(stages, Stage{
			Number:           spec.Number,
			Name:             spec.Name,
			Personality:      spec.Personality,
			Environment:      spec.Environment,
			Dialogues:        append([]string(nil), spec.Dialogues...),
			ArrowName:        spec.ArrowName,
			PlatformStyle:    spec.PlatformStyle,
			SpecialChallenge: spec.SpecialChallenge,
			RewardAbility:    Ability(spec.RewardAbility),
			Twin:             spec.Twin,
			Sprites:          append([]string(nil), spec.Sprites...),
			Background:       spec.Background,
			Color:            clr,
		})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Table{stages: stages, logger: logger}, nil
}

// LoadTable reads stages.yaml from the prefabs.
func LoadTable(logger *log.Logger) (*Table, error) {
	spec, err := prefabs.LoadSpec[prefabs.StagesSpec]("stages.yaml")
	if err != nil {
		return nil, err
	}
	return NewTable(spec.Stages, logger)
}

// Len returns the number of stages.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.stages)
}

// Lookup returns stage n. ok is false when n is out of range.
func (t *Table) Lookup(n int) (Stage, bool) {
	if t == nil || n < 1 || n > len(t.stages) {
		return Stage{}, false
	}
	return t.stages[n-1], true
}

// Stage returns stage n, substituting the first stage for unknown numbers.
func (t *Table) Stage(n int) Stage {
	if s, ok := t.Lookup(n); ok {
		return s
	}
	if t == nil || len(t.stages) == 0 {
		return Stage{}
	}
	t.logger.Warn("unknown stage, using first stage", "stage", n)
	return t.stages[0]
}

// Ending selects between the two closing narratives.
type Ending int

const (
	EndingBalanced Ending = iota
	EndingHarsh
)

func (e Ending) String() string {
	if e == EndingHarsh {
		return "harsh"
	}
	return "balanced"
}

// Narrative is the non-stage story content.
type Narrative struct {
	Intro           []string
	FallbackLine    string
	ContinuePrompt  string
	FallbackSprite  string
	DefaultBackdrop string
	ChoiceTitle     string
	ChoiceContext   string
	DestroyLabel    string
	SpareLabel      string
	Harsh           []string
	Balanced        []string
	Credits         []string
}

func NewNarrative(spec prefabs.StorySpec) Narrative {
	return Narrative{
		Intro:           append([]string(nil), spec.Intro...),
		FallbackLine:    spec.FallbackLine,
		ContinuePrompt:  spec.ContinuePrompt,
		FallbackSprite:  spec.FallbackSprite,
		DefaultBackdrop: spec.DefaultBackdrop,
		ChoiceTitle:     spec.Choice.Title,
		ChoiceContext:   spec.Choice.Context,
		DestroyLabel:    spec.Choice.Destroy,
		SpareLabel:      spec.Choice.Spare,
		Harsh:           append([]string(nil), spec.Endings.Harsh...),
		Balanced:        append([]string(nil), spec.Endings.Balanced...),
		Credits:         append([]string(nil), spec.Credits...),
	}
}

// LoadNarrative reads story.yaml from the prefabs.
func LoadNarrative() (Narrative, error) {
	spec, err := prefabs.LoadSpec[prefabs.StorySpec]("story.yaml")
	if err != nil {
		return Narrative{}, err
	}
	return NewNarrative(spec), nil
}

// EndingLines returns the text set for an ending.
func (n Narrative) EndingLines(e Ending) []string {
	if e == EndingHarsh {
		return n.Harsh
	}
	return n.Balanced
}
