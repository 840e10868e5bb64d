package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	prev, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	inTempDir(t)

	logFile := setupLogging(false)
	assert.Nil(t, logFile)
	assert.Equal(t, io.Discard, log.Writer())

	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	inTempDir(t)

	logFile := setupLogging(true)
	require.NotNil(t, logFile)
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	log.Println("test log message")

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestSetupLogging_Rotation(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.MkdirAll(logDir, 0755))

	logPath := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	logFile := setupLogging(true)
	require.NotNil(t, logFile)
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)

	rotated := 0
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	inTempDir(t)

	logFile := setupLogging(true)
	require.NotNil(t, logFile)
	defer logFile.Close()

	out := log.Writer()
	assert.NotEqual(t, os.Stdout, out)
	assert.NotEqual(t, os.Stderr, out)
}
