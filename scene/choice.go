package scene

import (
	"github.com/milk9111/houyi/progress"
	"github.com/milk9111/houyi/story"
)

// Option is one button of a choice prompt.
type Option struct {
	Label  string
	Choice progress.Choice
}

type Prompt struct {
	Title   string
	Context string
	Options []Option
}

// ChoicePrompt asks the player to pick one option. The returned channel
// receives at most one value; it may be closed without a value when the
// prompt is dismissed.
type ChoicePrompt interface {
	Ask(p Prompt) <-chan progress.Choice
}

// PromptFunc adapts a function to ChoicePrompt.
type PromptFunc func(p Prompt) <-chan progress.Choice

func (f PromptFunc) Ask(p Prompt) <-chan progress.Choice { return f(p) }

// Answer returns a prompt that immediately resolves to c.
func Answer(c progress.Choice) ChoicePrompt {
	return PromptFunc(func(Prompt) <-chan progress.Choice {
		ch := make(chan progress.Choice, 1)
		ch <- c
		close(ch)
		return ch
	})
}

func moralPrompt(n story.Narrative) Prompt {
	return Prompt{
		Title:   n.ChoiceTitle,
		Context: n.ChoiceContext,
		Options: []Option{
			{Label: n.DestroyLabel, Choice: progress.ChoiceDestroy},
			{Label: n.SpareLabel, Choice: progress.ChoiceSpare},
		},
	}
}
