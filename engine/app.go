package engine

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/constants"
	"github.com/lixenwraith/gthrower/core"
	"github.com/lixenwraith/gthrower/event"
	"github.com/lixenwraith/gthrower/input"
	"github.com/lixenwraith/gthrower/render"
	"github.com/lixenwraith/gthrower/status"
)

// targetQuit is the pseudo-scene a menu button uses to exit
const targetQuit = "quit"

// AudioDevice is the sound surface the app needs
type AudioDevice interface {
	Sound
	ToggleMute() bool
}

// AppDeps are optional collaborators; zero values get defaults
type AppDeps struct {
	Clock   Clock
	Audio   AudioDevice
	Metrics *status.Registry
	Rand    *rand.Rand
}

// App owns the terminal loop and everything a frame touches
// All state is confined to the goroutine running Run
type App struct {
	cfg      *config.Config
	screen   tcell.Screen
	clock    Clock
	hub      *event.Hub
	sched    *Scheduler
	session  *Session
	scenes   *SceneManager
	renderer *render.Renderer
	audio    AudioDevice
	metrics  *status.Registry
	keys     *input.KeyTable
	events   chan tcell.Event

	buttonDown bool
	menus      map[Scene]render.Menu
}

func NewApp(cfg *config.Config, screen tcell.Screen, deps AppDeps) (*App, error) {
	if screen == nil {
		return nil, ErrNoRenderTarget
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	hub := event.NewHub()
	sched := NewScheduler(clock.Now())
	renderer := render.NewRenderer(screen, hub, cfg.Canvas)

	var sound Sound
	if deps.Audio != nil {
		sound = deps.Audio
	}
	session, err := NewSession(cfg, SessionDeps{
		Hub:     hub,
		Sched:   sched,
		Target:  renderer,
		Sound:   sound,
		Metrics: metrics,
		Rand:    deps.Rand,
	})
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	resetKey := []rune(cfg.Keys.Reset)[0]
	a := &App{
		cfg:      cfg,
		screen:   screen,
		clock:    clock,
		hub:      hub,
		sched:    sched,
		session:  session,
		scenes:   NewSceneManager(session),
		renderer: renderer,
		audio:    deps.Audio,
		metrics:  metrics,
		keys:     input.DefaultKeyTable(resetKey),
		events:   make(chan tcell.Event, constants.InputChannelSize),
		menus:    defaultMenus(cfg),
	}

	sceneLabel := metrics.Label(status.KeyScene)
	sceneLabel.Store(a.scenes.Active().String())
	a.scenes.OnChange(func(_, to Scene) {
		sceneLabel.Store(to.String())
		a.buttonDown = false
	})
	session.OnCleared(a.scenes.ClearReached)
	session.SetPickRadius(renderer.ProbeRadius())
	return a, nil
}

func defaultMenus(cfg *config.Config) map[Scene]render.Menu {
	dwell := cfg.Goal.Dwell.Round(100 * time.Millisecond)
	return map[Scene]render.Menu{
		SceneTitle: {
			Title: "G T H R O W E R",
			Lines: []string{
				"Drag the glyph inside the circle and let go to throw it.",
				fmt.Sprintf("Rest it beside the peg for %s to clear the stage.", dwell),
			},
			Buttons: []render.Button{
				{Label: "Start", Target: SceneStageSelect.String()},
				{Label: "Quit", Target: targetQuit},
			},
		},
		SceneStageSelect: {
			Title: "SELECT STAGE",
			Lines: []string{"Enter or 1 to play, Esc to go back"},
			Buttons: []render.Button{
				{Label: "Stage 1", Target: SceneGame.String()},
				{Label: "Back", Target: SceneTitle.String()},
			},
		},
		SceneClear: {
			Title: "STAGE CLEAR",
			Lines: []string{"The glyph came to rest by the peg."},
			Buttons: []render.Button{
				{Label: "Stages", Target: SceneStageSelect.String()},
				{Label: "Title", Target: SceneTitle.String()},
			},
		},
	}
}

func (a *App) Scenes() *SceneManager { return a.scenes }

func (a *App) Session() *Session { return a.session }

func (a *App) Renderer() *render.Renderer { return a.renderer }

// Run polls the terminal and draws frames until a quit intent
func (a *App) Run() error {
	a.screen.EnableMouse()
	a.screen.HideCursor()

	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case a.events <- ev:
			case <-quit:
				return
			}
		}
	})

	ticker := time.NewTicker(a.cfg.Render.FrameInterval)
	defer ticker.Stop()
	defer a.Shutdown()

	a.Frame()
	for {
		select {
		case ev := <-a.events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

// Shutdown stops any running session
func (a *App) Shutdown() {
	a.session.Stop()
}

// HandleEvent applies one terminal event, false means quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.renderer.Resize()
		a.session.SetPickRadius(a.renderer.ProbeRadius())
	case *tcell.EventKey:
		return a.handleIntent(a.keys.Lookup(ev))
	case *tcell.EventMouse:
		return a.handleMouse(ev)
	}
	return true
}

func (a *App) handleIntent(intent input.IntentType) bool {
	scene := a.scenes.Active()
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentToggleMute:
		if a.audio != nil {
			log.Printf("[app] muted=%v", a.audio.ToggleMute())
		}
	case input.IntentConfirm:
		switch scene {
		case SceneTitle, SceneClear:
			a.switchTo(SceneStageSelect)
		case SceneStageSelect:
			a.switchTo(SceneGame)
		}
	case input.IntentBack:
		switch scene {
		case SceneStageSelect, SceneClear:
			a.switchTo(SceneTitle)
		case SceneGame:
			a.switchTo(SceneStageSelect)
		}
	case input.IntentStage1:
		if scene == SceneStageSelect || scene == SceneClear {
			a.switchTo(SceneGame)
		}
	case input.IntentResetMovable:
		if scene == SceneGame {
			a.session.ResetMovable()
		}
	}
	return true
}

func (a *App) switchTo(s Scene) {
	if err := a.scenes.Switch(s); err != nil {
		log.Printf("[app] switch to %s: %v", s, err)
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasDown := a.buttonDown
	a.buttonDown = pressed

	if a.scenes.Active() != SceneGame {
		if !pressed || wasDown {
			return true
		}
		target, ok := a.renderer.ButtonAt(x, y)
		if !ok {
			return true
		}
		if target == targetQuit {
			return false
		}
		if err := a.scenes.Request(target); err != nil {
			log.Printf("[app] button %s: %v", target, err)
		}
		return true
	}

	p := a.pointerWorld(x, y)
	switch {
	case pressed && !wasDown:
		a.hub.Emit(event.Event{Type: event.EventPointerDown, Point: p})
	case !pressed && wasDown:
		a.hub.Emit(event.Event{Type: event.EventPointerUp, Point: p})
	default:
		a.hub.Emit(event.Event{Type: event.EventPointerMove, Point: p})
	}
	return true
}

// pointerWorld clamps the cell onto the world grid so releases over the HUD still land
func (a *App) pointerWorld(x, y int) cp.Vector {
	v := a.renderer.Viewport()
	x = min(max(x, 0), v.Cols()-1)
	y = min(max(y, 0), v.Rows()-1)
	return v.CellToWorld(x, y)
}

// Frame advances scheduled jobs to the clock and draws the active scene
func (a *App) Frame() {
	a.sched.Advance(a.clock.Now())

	a.renderer.Clear()
	scene := a.scenes.Active()
	if scene == SceneGame {
		a.renderer.DrawWorld()
	} else {
		a.renderer.DrawMenu(a.menus[scene])
	}
	a.renderer.DrawHUD(a.hudText(scene))
	a.renderer.Show()
}

func (a *App) hudText(scene Scene) string {
	var b strings.Builder
	if scene == SceneGame {
		fmt.Fprintf(&b, "%s reset  esc back  m mute  q quit | ", a.cfg.Keys.Reset)
	}
	b.WriteString(a.metrics.Summary())
	return b.String()
}
