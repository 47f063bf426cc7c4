package engine

import (
	"context"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/diegok/pixcatch/internal/config"
	"github.com/diegok/pixcatch/internal/game"
	"github.com/diegok/pixcatch/internal/record"
	"github.com/diegok/pixcatch/internal/store"
)

// Engine constants
const (
	DefaultTickRate   = 60
	commandBufferSize = 16
)

// DefaultViewport lays out a desktop playfield until the host reports its size
var DefaultViewport = game.Viewport{Width: 1280, Height: 800}

// Options configures an Engine. Zero values are replaced by defaults; a
// tuning that fails validation is replaced by config.DefaultTuning.
type Options struct {
	Tuning    config.Tuning
	TickRate  int
	Rand      game.Rand
	Clock     Clock
	Store     HighScoreStore
	Presenter Presenter
	Pointer   PointerSource
	Logger    *log.Logger
	Viewport  game.Viewport
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdPause
	cmdResume
	cmdReset
	cmdResize
)

func (k commandKind) String() string {
	switch k {
	case cmdStart:
		return "start"
	case cmdPause:
		return "pause"
	case cmdResume:
		return "resume"
	case cmdReset:
		return "reset"
	case cmdResize:
		return "resize"
	}
	return "unknown"
}

type command struct {
	kind     commandKind
	viewport game.Viewport
}

// Engine owns one game session and drives it from a single goroutine.
// Lifecycle methods are safe to call from any goroutine; they queue a
// command that Run applies between ticks.
type Engine struct {
	tuning    config.Tuning
	interval  time.Duration
	rng       game.Rand
	clock     Clock
	store     HighScoreStore
	presenter Presenter
	pointer   PointerSource
	logger    *log.Logger

	// Owned by the Run goroutine
	session   game.Session
	paused    bool
	lastTick  time.Time
	highScore int
	newHigh   bool

	commands  chan command
	snapshots chan record.Snapshot
	done      chan struct{}
}

// New creates an idle engine. The stored high score is read once here and
// again on every Start.
func New(opts Options) *Engine {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Pointer == nil {
		opts.Pointer = &Pointer{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if err := opts.Tuning.Validate(); err != nil {
		if opts.Tuning != (config.Tuning{}) {
			opts.Logger.Printf("engine: using default tuning: %v", err)
		}
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Viewport == (game.Viewport{}) {
		opts.Viewport = DefaultViewport
	}

	e := &Engine{
		tuning:    opts.Tuning,
		interval:  time.Second / time.Duration(opts.TickRate),
		rng:       opts.Rand,
		clock:     opts.Clock,
		store:     opts.Store,
		presenter: opts.Presenter,
		pointer:   opts.Pointer,
		logger:    opts.Logger,
		session:   game.NewSession(game.ResolveGeometry(opts.Viewport)),
		commands:  make(chan command, commandBufferSize),
		snapshots: make(chan record.Snapshot, 1),
		done:      make(chan struct{}),
	}
	e.highScore = e.readHighScore()
	return e
}

// Snapshots delivers render output. Only the latest snapshot is kept.
func (e *Engine) Snapshots() <-chan record.Snapshot {
	return e.snapshots
}

// Done is closed once Run has returned and the ticker is released
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Start begins a play-through from Idle or GameOver
func (e *Engine) Start() { e.send(command{kind: cmdStart}) }

// Pause stops scheduling ticks without leaving Playing
func (e *Engine) Pause() { e.send(command{kind: cmdPause}) }

// Resume restarts ticks after Pause. Time spent paused is not counted.
func (e *Engine) Resume() { e.send(command{kind: cmdResume}) }

// Reset returns a finished session to Idle
func (e *Engine) Reset() { e.send(command{kind: cmdReset}) }

// Resize replaces the playfield geometry between ticks
func (e *Engine) Resize(v game.Viewport) {
	e.send(command{kind: cmdResize, viewport: v})
}

func (e *Engine) send(c command) {
	select {
	case e.commands <- c:
	case <-e.done:
	}
}

// Run drives the loop until ctx is cancelled. A ticker only exists while a
// session is Playing and not paused; it is always stopped before Run returns.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)

	var ticker Ticker
	var tickC <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	defer stopTicker()

	e.logger.Printf("engine: running at %v per tick", e.interval)
	e.publish()

	for {
		switch {
		case e.running() && ticker == nil:
			ticker = e.clock.NewTicker(e.interval)
			tickC = ticker.C()
		case !e.running() && ticker != nil:
			stopTicker()
		}

		select {
		case <-ctx.Done():
			e.logger.Printf("engine: stopped at tick %d", e.session.Tick)
			return nil
		case cmd := <-e.commands:
			e.apply(cmd)
		case now := <-tickC:
			e.Tick(now)
		}
	}
}

func (e *Engine) running() bool {
	return e.session.Status == record.StatusPlaying && !e.paused
}

// Tick runs one frame at now. It must only be called from the goroutine
// that owns the engine; Run does so on every ticker fire.
func (e *Engine) Tick(now time.Time) {
	if !e.running() {
		return
	}

	var elapsed time.Duration
	if !e.lastTick.IsZero() {
		elapsed = now.Sub(e.lastTick)
	}
	e.lastTick = now

	in := game.Input{Elapsed: elapsed}
	in.PointerX, in.HasPointer = e.pointer.CurrentPointer()

	next, events := game.Step(e.session, in, e.tuning, e.rng)
	e.session = next

	for _, ev := range events {
		switch ev.Type {
		case game.EventCatch:
			e.presenter.OnCatch(ev.Kind)
		case game.EventMiss:
			e.presenter.OnMiss()
		case game.EventGameOver:
			e.finish()
		}
	}

	e.publish()
}

func (e *Engine) apply(c command) {
	switch c.kind {
	case cmdStart:
		s, ok := e.session.Start()
		if !ok {
			e.logger.Printf("engine: start ignored while %v", e.session.Status)
			return
		}
		if hs := e.readHighScore(); hs > e.highScore {
			e.highScore = hs
		}
		e.session = s
		e.paused = false
		e.newHigh = false
		e.lastTick = time.Time{}

	case cmdPause:
		if e.session.Status != record.StatusPlaying || e.paused {
			return
		}
		e.paused = true

	case cmdResume:
		if !e.paused {
			return
		}
		e.paused = false
		e.lastTick = time.Time{}

	case cmdReset:
		s, ok := e.session.Reset()
		if !ok {
			e.logger.Printf("engine: reset ignored while %v", e.session.Status)
			return
		}
		e.session = s
		e.paused = false
		e.newHigh = false

	case cmdResize:
		g := game.ResolveGeometry(c.viewport)
		e.session = e.session.Resize(g)
		e.logger.Printf("engine: resized to %v playfield %gx%g", g.Class, g.Width, g.Height)
	}

	e.publish()
}

// finish settles the high score once a session ends
func (e *Engine) finish() {
	score := e.session.Score
	e.logger.Printf("engine: game over with score %d (best %d)", score, e.highScore)
	if score <= e.highScore {
		return
	}

	e.highScore = score
	e.newHigh = true
	e.store.Write(score)
	e.presenter.OnNewHighScore()
}

func (e *Engine) readHighScore() int {
	hs := e.store.Read()
	if hs < 0 {
		return 0
	}
	return hs
}

func (e *Engine) snapshot() record.Snapshot {
	snap := e.session.Snapshot(e.tuning.Catch.OpeningFraction)
	snap.Paused = e.paused
	snap.HighScore = e.highScore
	snap.NewHighScore = e.newHigh
	return snap
}

// publish replaces any unread snapshot with the current one
func (e *Engine) publish() {
	snap := e.snapshot()
	select {
	case e.snapshots <- snap:
	default:
		select {
		case <-e.snapshots:
		default:
		}
		select {
		case e.snapshots <- snap:
		default:
		}
	}
}
