package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	chimeLength = 350 * time.Millisecond
	tickLength  = 40 * time.Millisecond
)

// SoundManager plays the viewer's feedback sounds
// Every method is safe before Initialize and after Cleanup
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	muted       bool
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
	}
	sm.volume = &effects.Volume{Streamer: sm.mixer, Base: 2}
	return sm
}

// Initialize opens the speaker
// Failure leaves the manager silent; callers continue without audio
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup drops queued sounds and silences the manager
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close; an empty mixer streams silence
	sm.initialized = false
}

// SetMuted silences or restores output
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if sm.initialized {
		speaker.Lock()
	}
	sm.volume.Silent = muted
	if sm.initialized {
		speaker.Unlock()
	}
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// PlayToggle chimes a rising fifth when something is shown, a falling one when hidden
func (sm *SoundManager) PlayToggle(visible bool) {
	root, fifth := 660.0, 990.0
	if !visible {
		root, fifth = fifth, root
	}
	sm.play(beep.Seq(
		beep.Take(sampleRate.N(chimeLength/2), NewChimeGenerator(sampleRate, root)),
		beep.Take(sampleRate.N(chimeLength/2), NewChimeGenerator(sampleRate, fifth)),
	))
}

// PlayTick plays a short click for a slider step
func (sm *SoundManager) PlayTick() {
	sm.play(beep.Take(sampleRate.N(tickLength), NewTickGenerator(sampleRate, 1800)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ChimeGenerator generates a bell tone with an exponential decay
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewChimeGenerator creates a chime at freq Hz
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fundamental plus an inharmonic partial for the bell colour
		sample := 0.0
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.08 * math.Sin(2*math.Pi*g.freq*2.76*t)

		// 5ms attack, then decay
		attack := math.Min(t/0.005, 1.0)
		sample *= attack * math.Exp(-t*9)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// TickGenerator generates a short percussive click
type TickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewTickGenerator creates a tick sound generator
func NewTickGenerator(sr beep.SampleRate, freq float64) *TickGenerator {
	return &TickGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *TickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.15 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*120)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *TickGenerator) Err() error {
	return nil
}
