// Package audio plays one exclusive music track with a fade between tracks,
// plus one-shot effects.
package audio

import (
	"strings"

	"github.com/charmbracelet/log"
)

const (
	DefaultMusicVolume  = 0.3
	DefaultEffectVolume = 0.5
	defaultFadeFrames   = 30
)

// Sink is what the scenes talk to.
type Sink interface {
	PlayTrack(id string)
	PlayEffect(id string)
}

// Voice is a playable stream. *audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(v float64)
}

// Loader opens a voice for an asset id. ok is false when the id cannot be
// played.
type Loader func(id string) (Voice, bool)

// Mixer implements Sink on top of a Loader. Update must be called once per
// tick to drive fades and looping.
type Mixer struct {
	load   Loader
	logger *log.Logger
	voices map[string]Voice
	failed map[string]bool

	MusicVolume  float64
	EffectVolume float64
	FadeFrames   int

	muted bool

	currentID string
	current   Voice
	volume    float64
	pendingID string
	fading    bool
	fadeStep  float64
}

func NewMixer(load Loader, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.Default()
	}
	return &Mixer{
		load:         load,
		logger:       logger,
		voices:       map[string]Voice{},
		failed:       map[string]bool{},
		MusicVolume:  DefaultMusicVolume,
		EffectVolume: DefaultEffectVolume,
		FadeFrames:   defaultFadeFrames,
	}
}

func (m *Mixer) voice(id string) (Voice, bool) {
	if v, ok := m.voices[id]; ok {
		return v, true
	}
	if m.failed[id] || m.load == nil {
		return nil, false
	}
	v, ok := m.load(id)
	if !ok || v == nil {
		m.failed[id] = true
		return nil, false
	}
	m.voices[id] = v
	return v, true
}

func (m *Mixer) musicLevel() float64 {
	if m.muted {
		return 0
	}
	return m.MusicVolume
}

// PlayTrack makes id the only music. Requesting the current track is a no-op.
func (m *Mixer) PlayTrack(id string) {
	if m == nil {
		return
	}
	id = strings.TrimSpace(id)
	if id == "" {
		m.Stop()
		return
	}
	if !m.fading && id == m.currentID && m.current != nil {
		return
	}
	if m.fading && id == m.pendingID {
		return
	}
	m.pendingID = id
	if m.current == nil {
		m.switchToPending()
		return
	}
	m.startFade()
}

// Stop fades out the current track.
func (m *Mixer) Stop() {
	if m == nil || m.current == nil {
		return
	}
	m.pendingID = ""
	m.startFade()
}

func (m *Mixer) startFade() {
	m.fading = true
	frames := m.FadeFrames
	if frames <= 0 {
		frames = defaultFadeFrames
	}
	m.fadeStep = m.volume / float64(frames)
	if m.fadeStep <= 0 {
		m.fadeStep = 1
	}
}

func (m *Mixer) switchToPending() {
	m.fading = false
	id := m.pendingID
	m.pendingID = ""
	m.currentID = ""
	m.current = nil
	m.volume = 0
	if id == "" {
		return
	}
	v, ok := m.voice(id)
	if !ok {
		m.logger.Debug("music track unavailable", "track", id)
		m.currentID = id
		return
	}
	m.currentID = id
	m.current = v
	m.volume = m.MusicVolume
	_ = v.Rewind()
	v.SetVolume(m.musicLevel())
	v.Play()
}

// Update advances any fade and restarts a finished looping track.
func (m *Mixer) Update() {
	if m == nil {
		return
	}
	if m.fading {
		if m.current == nil {
			m.switchToPending()
			return
		}
		m.volume -= m.fadeStep
		if m.volume > 0 {
			if !m.muted {
				m.current.SetVolume(m.volume)
			}
			return
		}
		m.current.SetVolume(0)
		m.current.Pause()
		_ = m.current.Rewind()
		m.switchToPending()
		return
	}
	if m.current != nil && !m.current.IsPlaying() {
		_ = m.current.Rewind()
		m.current.SetVolume(m.musicLevel())
		m.current.Play()
	}
}

// PlayEffect restarts the effect from the beginning.
func (m *Mixer) PlayEffect(id string) {
	if m == nil {
		return
	}
	v, ok := m.voice(id)
	if !ok {
		return
	}
	if m.muted {
		return
	}
	v.SetVolume(m.EffectVolume)
	_ = v.Rewind()
	v.Play()
}

func (m *Mixer) Muted() bool { return m != nil && m.muted }

// SetMuted silences music and effects without stopping the track.
func (m *Mixer) SetMuted(muted bool) {
	if m == nil {
		return
	}
	m.muted = muted
	if m.current != nil {
		m.current.SetVolume(m.musicLevel())
	}
}

func (m *Mixer) ToggleMute() {
	if m != nil {
		m.SetMuted(!m.muted)
	}
}

// Current returns the id of the track playing or about to play.
func (m *Mixer) Current() string {
	if m == nil {
		return ""
	}
	if m.fading {
		return m.pendingID
	}
	return m.currentID
}

// Recorder is a Sink that remembers every request.
type Recorder struct {
	Tracks  []string
	Effects []string
}

func (r *Recorder) PlayTrack(id string)  { r.Tracks = append(r.Tracks, id) }
func (r *Recorder) PlayEffect(id string) { r.Effects = append(r.Effects, id) }

// LastTrack is the most recent track request.
func (r *Recorder) LastTrack() string {
	if len(r.Tracks) == 0 {
		return ""
	}
	return r.Tracks[len(r.Tracks)-1]
}

func (r *Recorder) Played(effect string) int {
	n := 0
	for _, e := range r.Effects {
		if e == effect {
			n++
		}
	}
	return n
}
