package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/gthrower/constants"
)

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveNoise
)

// SoundType identifies a one-shot effect
type SoundType int

const (
	SoundChime  SoundType = iota // Stage cleared
	SoundWhoosh                  // Glyph launched
)

func (s SoundType) String() string {
	switch s {
	case SoundChime:
		return "chime"
	case SoundWhoosh:
		return "whoosh"
	default:
		return "unknown"
	}
}

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator streams duration worth of a single wave at freq Hz
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s over duration; attack and release are clamped to fit
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: total - rel,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	limit := min(len(samples), e.total-e.position)
	n, ok = e.streamer.Stream(samples[:limit])

	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.position >= e.releaseStart && e.release > 0:
			vol = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; zero or less is silent since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, duration, release time.Duration, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration, WaveSine, rate)
	return NewEnvelope(osc, duration, constants.ChimeAttack, release, rate)
}

// CreateChimeSound plays a rising C major arpeggio with a soft fifth under the last note
func CreateChimeSound(rate beep.SampleRate, volume float64) beep.Streamer {
	last := beep.Mix(
		newVolume(note(1567.98, constants.ChimeNote3Duration, constants.ChimeLongRelease, rate), 0.7),
		newVolume(note(783.99, constants.ChimeNote3Duration, constants.ChimeLongRelease, rate), 0.3),
	)
	seq := beep.Seq(
		note(1046.50, constants.ChimeNote1Duration, constants.ChimeShortRelease, rate),
		note(1318.51, constants.ChimeNote2Duration, constants.ChimeShortRelease, rate),
		last,
	)
	return newVolume(seq, volume)
}

// CreateWhooshSound is a filtered noise burst for launches
func CreateWhooshSound(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewOscillator(0, constants.WhooshSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, constants.WhooshSoundDuration, constants.WhooshSoundAttack, constants.WhooshSoundRelease, rate)
	return newVolume(shaped, volume*0.5)
}

// SoundEffect builds a fresh streamer for st, nil when unknown
func SoundEffect(st SoundType, rate beep.SampleRate, volume float64) beep.Streamer {
	switch st {
	case SoundChime:
		return CreateChimeSound(rate, volume)
	case SoundWhoosh:
		return CreateWhooshSound(rate, volume)
	default:
		return nil
	}
}

// EffectDuration is the playback length of st
func EffectDuration(st SoundType) time.Duration {
	switch st {
	case SoundChime:
		return constants.ChimeNote1Duration + constants.ChimeNote2Duration + constants.ChimeNote3Duration
	case SoundWhoosh:
		return constants.WhooshSoundDuration
	default:
		return 0
	}
}
