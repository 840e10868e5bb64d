package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/gthrower/constants"
)

const (
	logDir      = constants.LogDir
	logFileName = constants.LogFileName
	maxLogSize  = constants.MaxLogSize
)

// setupLogging routes the standard logger to a file when debug is set
// The terminal owns stdout and stderr, so logs are discarded otherwise
// Returns the open file for the caller to close, nil when disabled
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("gthrower-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			// Truncate instead of growing without bound
			_ = os.Remove(logPath)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[main] logging started pid=%d", os.Getpid())
	return f
}
