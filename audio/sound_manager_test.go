package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/gthrower/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	initErr error
	inits   int
	closed  int
	playing []beep.Streamer
}

func (f *fakeOutput) Init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s beep.Streamer) { f.playing = append(f.playing, s) }
func (f *fakeOutput) Lock()                {}
func (f *fakeOutput) Unlock()              {}
func (f *fakeOutput) Close()               { f.closed++ }

func enabled() config.Audio {
	return config.Audio{Enabled: true, Volume: 0.5}
}

func TestSoundManager_GracefulWithoutInit(t *testing.T) {
	sm := NewSoundManagerWithOutput(enabled(), &fakeOutput{})
	assert.NotPanics(t, func() {
		assert.False(t, sm.PlayClear())
		assert.False(t, sm.PlayLaunch())
		sm.Cleanup()
	})
	assert.Zero(t, sm.Played(SoundChime))
}

func TestSoundManager_DisabledSkipsDevice(t *testing.T) {
	out := &fakeOutput{}
	sm := NewSoundManagerWithOutput(config.Audio{Enabled: false}, out)
	assert.ErrorIs(t, sm.Initialize(), ErrAudioDisabled)
	assert.Zero(t, out.inits)
	assert.False(t, sm.Initialized())
}

func TestSoundManager_InitFailure(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	sm := NewSoundManagerWithOutput(enabled(), out)
	require.Error(t, sm.Initialize())
	assert.False(t, sm.Initialized())
	assert.False(t, sm.PlayClear())
}

func TestSoundManager_PlayAndCleanup(t *testing.T) {
	out := &fakeOutput{}
	sm := NewSoundManagerWithOutput(enabled(), out)
	require.NoError(t, sm.Initialize())
	require.NoError(t, sm.Initialize(), "second init is a no-op")
	assert.Equal(t, 1, out.inits)
	require.Len(t, out.playing, 1, "mixer handed to the device once")

	assert.True(t, sm.PlayLaunch())
	assert.True(t, sm.PlayClear())
	assert.True(t, sm.PlayClear())
	assert.Equal(t, 1, sm.Played(SoundWhoosh))
	assert.Equal(t, 2, sm.Played(SoundChime))
	assert.Equal(t, 3, sm.mixer.Len())

	sm.Cleanup()
	assert.Equal(t, 1, out.closed)
	assert.Zero(t, sm.mixer.Len())
	assert.False(t, sm.PlayClear())

	sm.Cleanup()
	assert.Equal(t, 1, out.closed)
}

func TestSoundManager_ToggleMute(t *testing.T) {
	sm := NewSoundManagerWithOutput(enabled(), &fakeOutput{})
	require.NoError(t, sm.Initialize())
	sm.PlayClear()

	assert.True(t, sm.ToggleMute())
	assert.True(t, sm.Muted())
	assert.Zero(t, sm.mixer.Len(), "mute drops queued sounds")
	assert.False(t, sm.PlayLaunch())

	assert.False(t, sm.ToggleMute())
	assert.True(t, sm.PlayLaunch())
}
