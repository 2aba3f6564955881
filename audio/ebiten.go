package audio

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/houyi/assets"
)

const SampleRate = 44100

// SoundSource supplies raw audio by id.
type SoundSource interface {
	Sound(id string) (assets.Sound, bool)
}

// EbitenLoader decodes assets into ebiten audio players.
func EbitenLoader(ctx *audio.Context, src SoundSource, logger *log.Logger) Loader {
	return func(id string) (Voice, bool) {
		if ctx == nil || src == nil {
			return nil, false
		}
		snd, ok := src.Sound(id)
		if !ok {
			return nil, false
		}
		p, err := newPlayer(ctx, snd)
		if err != nil {
			logger.Warn("audio decode failed", "id", id, "err", err)
			return nil, false
		}
		return p, true
	}
}

func newPlayer(ctx *audio.Context, snd assets.Sound) (*audio.Player, error) {
	reader := bytes.NewReader(snd.Data)
	switch snd.Format {
	case "wav":
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("audio: decode wav: %w", err)
		}
		return ctx.NewPlayer(stream)
	case "mp3":
		stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("audio: decode mp3: %w", err)
		}
		return ctx.NewPlayer(stream)
	default:
		// Already-decoded PCM in ebiten's native format.
		return ctx.NewPlayerFromBytes(snd.Data), nil
	}
}
