package audio

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

type fakeVoice struct {
	playing bool
	volume  float64
	plays   int
	rewinds int
}

func (v *fakeVoice) Play()               { v.playing = true; v.plays++ }
func (v *fakeVoice) Pause()              { v.playing = false }
func (v *fakeVoice) Rewind() error       { v.rewinds++; return nil }
func (v *fakeVoice) IsPlaying() bool     { return v.playing }
func (v *fakeVoice) SetVolume(x float64) { v.volume = x }

func newTestMixer() (*Mixer, map[string]*fakeVoice) {
	voices := map[string]*fakeVoice{}
	load := func(id string) (Voice, bool) {
		if id == "missing" {
			return nil, false
		}
		v := &fakeVoice{}
		voices[id] = v
		return v, true
	}
	m := NewMixer(load, log.New(io.Discard))
	m.FadeFrames = 3
	return m, voices
}

func TestTrackExclusiveWithFade(t *testing.T) {
	m, voices := newTestMixer()
	m.PlayTrack("bgm_intro")
	intro := voices["bgm_intro"]
	if !intro.playing || intro.volume != DefaultMusicVolume {
		t.Fatalf("expected intro playing at music volume, got %+v", intro)
	}

	m.PlayTrack("bgm_stage_1")
	if m.Current() != "bgm_stage_1" {
		t.Fatalf("expected pending stage track, got %q", m.Current())
	}
	for i := 0; i < 10; i++ {
		m.Update()
	}
	stage := voices["bgm_stage_1"]
	if intro.playing {
		t.Fatalf("old track should stop after fade")
	}
	if stage == nil || !stage.playing {
		t.Fatalf("new track should play after fade")
	}
}

func TestSameTrackNoRestart(t *testing.T) {
	m, voices := newTestMixer()
	m.PlayTrack("bgm_archery")
	m.PlayTrack("bgm_archery")
	if voices["bgm_archery"].plays != 1 {
		t.Fatalf("same track restarted")
	}
}

func TestLoopRestarts(t *testing.T) {
	m, voices := newTestMixer()
	m.PlayTrack("bgm_ending")
	v := voices["bgm_ending"]
	v.playing = false
	m.Update()
	if !v.playing || v.plays != 2 {
		t.Fatalf("expected loop restart, got %+v", v)
	}
}

func TestEffectsAndMute(t *testing.T) {
	m, voices := newTestMixer()
	m.PlayEffect("sun_hit")
	if v := voices["sun_hit"]; !v.playing || v.volume != DefaultEffectVolume {
		t.Fatalf("unexpected effect state %+v", v)
	}
	m.PlayTrack("bgm_intro")
	m.ToggleMute()
	if !m.Muted() || voices["bgm_intro"].volume != 0 {
		t.Fatalf("mute should silence music")
	}
	v := voices["sun_hit"]
	v.playing = false
	m.PlayEffect("sun_hit")
	if v.playing {
		t.Fatalf("muted effects should not play")
	}
	m.ToggleMute()
	if voices["bgm_intro"].volume != DefaultMusicVolume {
		t.Fatalf("unmute should restore music volume")
	}
}

func TestMissingSoundsAreNoOps(t *testing.T) {
	m, _ := newTestMixer()
	m.PlayEffect("missing")
	m.PlayTrack("missing")
	m.Update()
	if m.Current() != "missing" {
		t.Fatalf("unavailable track still becomes current, got %q", m.Current())
	}
	m.PlayTrack("bgm_intro")
	if m.Current() != "bgm_intro" {
		t.Fatalf("expected switch from unavailable track, got %q", m.Current())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var s Sink = &r
	s.PlayTrack("a")
	s.PlayTrack("b")
	s.PlayEffect("x")
	s.PlayEffect("x")
	if r.LastTrack() != "b" || r.Played("x") != 2 {
		t.Fatalf("unexpected recorder %+v", r)
	}
}
