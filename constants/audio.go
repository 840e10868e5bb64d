package constants

import "time"

// Audio Output
const (
	AudioSampleRate = 48000
	AudioBufferSize = 100 * time.Millisecond
	AudioVolume     = 0.6
)

// Clear Chime Timing
const (
	ChimeNote1Duration = 120 * time.Millisecond
	ChimeNote2Duration = 150 * time.Millisecond
	ChimeNote3Duration = 420 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeShortRelease  = 60 * time.Millisecond
	ChimeLongRelease   = 350 * time.Millisecond
)

// Launch Whoosh Timing
const (
	WhooshSoundDuration = 220 * time.Millisecond
	WhooshSoundAttack   = 60 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
)
