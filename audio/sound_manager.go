// Package audio synthesizes the clear chime and launch whoosh with beep.
package audio

import (
	"errors"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/constants"
)

var ErrAudioDisabled = errors.New("audio disabled")

// Output is the device the manager plays through
// speakerOutput is the real one; tests substitute a recorder
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Close()               { speaker.Close() }

// SoundManager owns the mixer feeding the output device
// All methods are safe before Initialize and after Cleanup
type SoundManager struct {
	mu          sync.Mutex
	cfg         config.Audio
	rate        beep.SampleRate
	out         Output
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      [2]int
}

// NewSoundManager creates a manager for the system speaker
func NewSoundManager(cfg config.Audio) *SoundManager {
	return NewSoundManagerWithOutput(cfg, speakerOutput{})
}

func NewSoundManagerWithOutput(cfg config.Audio, out Output) *SoundManager {
	return &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(constants.AudioSampleRate),
		out:   out,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the output device
// Returns ErrAudioDisabled without touching the device when audio is off
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}
	if err := sm.out.Init(sm.rate, sm.rate.N(constants.AudioBufferSize)); err != nil {
		return err
	}
	sm.out.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[audio] initialized at %d Hz", sm.rate)
	return nil
}

// Cleanup silences the mixer and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
	sm.out.Close()
	sm.initialized = false
}

// Play queues a one-shot effect; no-op when muted or uninitialized
func (sm *SoundManager) Play(st SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return false
	}
	s := SoundEffect(st, sm.rate, sm.cfg.Volume)
	if s == nil {
		return false
	}
	sm.out.Lock()
	sm.mixer.Add(s)
	sm.out.Unlock()
	sm.played[st]++
	return true
}

func (sm *SoundManager) PlayClear() bool  { return sm.Play(SoundChime) }
func (sm *SoundManager) PlayLaunch() bool { return sm.Play(SoundWhoosh) }

// ToggleMute flips the mute flag and returns the new state
// Muting drops anything still playing
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	if sm.muted && sm.initialized {
		sm.out.Lock()
		sm.mixer.Clear()
		sm.out.Unlock()
	}
	return sm.muted
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Played returns how many times st was queued
func (sm *SoundManager) Played(st SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if st < 0 || int(st) >= len(sm.played) {
		return 0
	}
	return sm.played[st]
}
