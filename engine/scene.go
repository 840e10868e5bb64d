package engine

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var ErrUnknownScene = errors.New("unknown scene")

// Scene is one of the fixed screens; exactly one is active
type Scene uint8

const (
	SceneTitle Scene = iota
	SceneStageSelect
	SceneGame
	SceneClear
	sceneCount
)

var sceneNames = [sceneCount]string{
	SceneTitle:       "title",
	SceneStageSelect: "stageSelect",
	SceneGame:        "game",
	SceneClear:       "clear",
}

func (s Scene) String() string {
	if s < sceneCount {
		return sceneNames[s]
	}
	return "unknown"
}

// ParseScene resolves a transition request name, case-insensitive
func ParseScene(name string) (Scene, error) {
	for i, n := range sceneNames {
		if strings.EqualFold(n, name) {
			return Scene(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// SessionControl is the part of a session the scene manager drives
type SessionControl interface {
	Start() error
	Stop()
	State() SessionState
}

// SceneManager switches screens and ties the Game scene to the session
type SceneManager struct {
	active   Scene
	session  SessionControl
	onChange func(from, to Scene)
}

// NewSceneManager starts on the title screen
func NewSceneManager(session SessionControl) *SceneManager {
	return &SceneManager{active: SceneTitle, session: session}
}

// OnChange installs an observer for completed switches
func (m *SceneManager) OnChange(fn func(from, to Scene)) {
	m.onChange = fn
}

func (m *SceneManager) Active() Scene {
	return m.active
}

// Switch activates to; leaving Game stops the session and entering Game starts it
// A failed start restores the previous scene
func (m *SceneManager) Switch(to Scene) error {
	if to >= sceneCount {
		return fmt.Errorf("%w: %d", ErrUnknownScene, to)
	}
	from := m.active
	if to == from {
		return nil
	}

	if from == SceneGame {
		m.session.Stop()
	}
	m.active = to
	if to == SceneGame {
		if err := m.session.Start(); err != nil {
			m.active = from
			log.Printf("[scene] %s -> %s failed: %v", from, to, err)
			return err
		}
	}

	log.Printf("[scene] %s -> %s", from, to)
	if m.onChange != nil {
		m.onChange(from, to)
	}
	return nil
}

// Request switches by scene name
func (m *SceneManager) Request(name string) error {
	scene, err := ParseScene(name)
	if err != nil {
		return err
	}
	return m.Switch(scene)
}

// ClearReached moves to the Clear screen if the stage is still showing and cleared
func (m *SceneManager) ClearReached() {
	if m.active != SceneGame || m.session.State() != StateCleared {
		return
	}
	if err := m.Switch(SceneClear); err != nil {
		log.Printf("[scene] clear transition: %v", err)
	}
}
