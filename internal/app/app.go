package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/pixcatch/internal/audio"
	"github.com/diegok/pixcatch/internal/config"
	"github.com/diegok/pixcatch/internal/engine"
	"github.com/diegok/pixcatch/internal/game"
	"github.com/diegok/pixcatch/internal/record"
	"github.com/diegok/pixcatch/internal/store"
	"github.com/diegok/pixcatch/internal/ui"
)

// Terminal cells are treated as 8x16 pixels when reporting the viewport
const (
	cellPixelWidth  = 8
	cellPixelHeight = 16
	nudgeFraction   = 0.1 // Keyboard step as a share of the field width
)

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg      *config.Config
	logger   *log.Logger
	logFile  *os.File
	screen   *ui.Screen
	renderer *ui.Renderer
	player   *audio.Player
	scores   *store.File
	engine   *engine.Engine
	pointer  *engine.Pointer

	snap      record.Snapshot
	haveSnap  bool
	layout    ui.Layout
	mouseDown bool

	quit     chan struct{}
	done     chan struct{}
	doneOnce sync.Once
	sigChan  chan os.Signal
	sigDone  chan struct{}
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:     cfg,
		logger:  log.New(io.Discard, "", 0),
		pointer: &engine.Pointer{},
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run is the main entry point for the application.
// It opens every resource, runs the engine and blocks until the player quits.
func (a *App) Run() error {
	if err := a.openLog(); err != nil {
		return err
	}

	a.player = audio.NewPlayer(a.cfg.Mute, a.logger)

	var highScores engine.HighScoreStore = store.NewMemory()
	if a.cfg.ScoresPath != "" {
		a.scores = store.Open(a.cfg.ScoresPath, a.logger)
		highScores = a.scores
	}

	screen, err := ui.InitScreen()
	if err != nil {
		a.cleanup()
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	a.watchSignals()

	seed := a.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.logger.Printf("app: seed %d, %d ticks per second", seed, a.cfg.FPS)

	w, h := a.screen.Size()
	a.engine = engine.New(engine.Options{
		Tuning:    a.cfg.Tuning,
		TickRate:  a.cfg.FPS,
		Rand:      rand.New(rand.NewSource(seed)),
		Store:     highScores,
		Presenter: a.player,
		Pointer:   a.pointer,
		Logger:    a.logger,
		Viewport:  viewportFor(w, h),
	})

	ctx, cancel := context.WithCancel(context.Background())
	go a.engine.Run(ctx)

	runErr := a.mainLoop()

	cancel()
	<-a.engine.Done()
	a.cleanup()

	return runErr
}

// watchSignals turns SIGINT/SIGTERM into a quit. The watcher exits when
// cleanup runs, whichever way the app stops.
func (a *App) watchSignals() {
	a.sigChan = make(chan os.Signal, 1)
	a.sigDone = make(chan struct{})
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(a.sigDone)
		select {
		case <-a.sigChan:
			close(a.quit)
		case <-a.done:
		}
	}()
}

func (a *App) openLog() error {
	if a.cfg.LogPath == "" {
		return nil
	}
	f, err := os.OpenFile(a.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f
	a.logger = log.New(f, "pixcatch ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// viewportFor converts a terminal size into the pixel viewport the engine
// lays the playfield out for
func viewportFor(cols, rows int) game.Viewport {
	return game.Viewport{
		Width:  float64(cols * cellPixelWidth),
		Height: float64(rows * cellPixelHeight),
	}
}

// mainLoop is the main event loop that handles all input and state updates.
func (a *App) mainLoop() error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	// Ticker for rendering at ~60fps
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}

		case snap := <-a.engine.Snapshots():
			a.setSnapshot(snap)

		case <-ticker.C:
			if a.haveSnap {
				a.renderer.Render(a.snap)
			}
		}
	}
}

func (a *App) setSnapshot(snap record.Snapshot) {
	a.snap = snap
	a.haveSnap = true
	a.relayout()
}

func (a *App) relayout() {
	if a.screen == nil {
		return
	}
	w, h := a.screen.Size()
	a.layout = ui.NewLayout(w, h, a.snap.FieldWidth, a.snap.FieldHeight)
}

// handleEvent processes keyboard and other events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.handleMouse(x, y, ev.Buttons())

	case *tcell.EventFocus:
		a.handleFocus(ev.Focused)

	case *tcell.EventResize:
		a.screen.Sync()
		w, h := a.screen.Size()
		a.engine.Resize(viewportFor(w, h))
		a.relayout()
	}

	return false
}

func (a *App) handleKey(key tcell.Key, r rune) bool {
	if ui.IsQuitKey(key, r) {
		return true
	}

	switch {
	case ui.IsStartKey(key, r):
		a.start()
	case ui.IsPauseKey(key, r):
		if a.snap.Paused {
			a.engine.Resume()
		} else {
			a.engine.Pause()
		}
	case ui.IsResetKey(key, r):
		a.engine.Reset()
	default:
		if dir := ui.NudgeDirection(key, r); dir != 0 && a.snap.Status == record.StatusPlaying {
			a.nudge(dir)
		}
	}
	return false
}

// nudge moves the pointer one step from the catcher's current centre
func (a *App) nudge(dir int) {
	centre := a.snap.Catcher.X + a.snap.Catcher.Width/2
	step := a.snap.FieldWidth * nudgeFraction
	a.pointer.Set(centre + float64(dir)*step)
}

// start begins a new game. A pointer left over from the previous game is
// dropped so the new catcher starts centred.
func (a *App) start() {
	if a.snap.Status == record.StatusPlaying {
		return
	}
	a.pointer.Clear()
	a.engine.Start()
}

func (a *App) handleMouse(x, y int, buttons tcell.ButtonMask) {
	pressed := buttons&tcell.Button1 != 0
	if pressed && !a.mouseDown {
		a.start()
	}
	a.mouseDown = pressed

	if !a.layout.TooSmall() {
		a.pointer.Set(a.layout.FieldX(x))
	}
}

func (a *App) handleFocus(focused bool) {
	if !focused {
		a.logger.Printf("app: focus lost, pausing")
		a.engine.Pause()
	}
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	// Flush the last high score before anything else goes away
	if a.scores != nil {
		a.scores.Close()
	}

	if a.player != nil {
		a.player.Close()
	}

	if a.screen != nil {
		a.screen.Fini()
	}

	if a.sigChan != nil {
		signal.Stop(a.sigChan)
	}
	a.doneOnce.Do(func() { close(a.done) })

	if a.logFile != nil {
		a.logFile.Close()
	}
}
