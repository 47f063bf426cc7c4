package engine

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/diegok/pixcatch/internal/config"
	"github.com/diegok/pixcatch/internal/game"
	"github.com/diegok/pixcatch/internal/record"
	"github.com/diegok/pixcatch/internal/store"
)

type recordingPresenter struct {
	mu      sync.Mutex
	catches []record.Kind
	misses  int
	cheers  int
}

func (p *recordingPresenter) OnCatch(k record.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.catches = append(p.catches, k)
}

func (p *recordingPresenter) OnMiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.misses++
}

func (p *recordingPresenter) OnNewHighScore() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cheers++
}

type fakeTicker struct {
	c       chan time.Time
	once    sync.Once
	stopped chan struct{}
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop() { t.once.Do(func() { close(t.stopped) }) }

type fakeClock struct {
	created chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan *fakeTicker, 8)}
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	t := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	c.created <- t
	return t
}

func newTestEngine(st HighScoreStore, p Presenter, ptr PointerSource) *Engine {
	return New(Options{
		Tuning:    config.DefaultTuning(),
		Rand:      rand.New(rand.NewSource(1)),
		Clock:     newFakeClock(),
		Store:     st,
		Presenter: p,
		Pointer:   ptr,
	})
}

// startQuiet starts a session whose spawner will not fire during the test
func startQuiet(e *Engine, items ...game.Item) {
	e.apply(command{kind: cmdStart})
	e.session.Spawner = game.Spawner{}
	e.session.Items = items
}

func latest(t *testing.T, e *Engine) record.Snapshot {
	t.Helper()
	select {
	case s := <-e.Snapshots():
		return s
	default:
		t.Fatal("expected a published snapshot")
	}
	return record.Snapshot{}
}

func waitSnapshot(t *testing.T, e *Engine, match func(record.Snapshot) bool) record.Snapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-e.Snapshots():
			if match(s) {
				return s
			}
		case <-timeout:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	e := New(Options{Tuning: config.DefaultTuning()})

	if e.interval != time.Second/DefaultTickRate {
		t.Errorf("expected %v per tick, got %v", time.Second/DefaultTickRate, e.interval)
	}
	if e.session.Status != record.StatusIdle {
		t.Errorf("expected Idle, got %v", e.session.Status)
	}
	if e.session.Geometry.Class != game.ClassDesktop {
		t.Errorf("expected desktop layout, got %v", e.session.Geometry.Class)
	}
}

func TestNew_ZeroOptionsPlayable(t *testing.T) {
	e := New(Options{})

	e.apply(command{kind: cmdStart})
	for i := 0; i < 100; i++ {
		e.Tick(time.Unix(1, 0).Add(time.Duration(i) * 16 * time.Millisecond))
	}

	if e.session.Tick != 100 {
		t.Errorf("expected 100 ticks, got %d", e.session.Tick)
	}
	if len(e.session.Items) == 0 {
		t.Error("expected items to spawn with default tuning")
	}
	if e.tuning != config.DefaultTuning() {
		t.Errorf("expected default tuning, got %+v", e.tuning)
	}
}

func TestNew_InvalidTuningReplaced(t *testing.T) {
	bad := config.DefaultTuning()
	bad.Fall.BaseSpeed = math.NaN()

	e := New(Options{Tuning: bad})

	if e.tuning != config.DefaultTuning() {
		t.Errorf("expected invalid tuning replaced by defaults, got %+v", e.tuning)
	}
}

func TestNew_PreloadsHighScore(t *testing.T) {
	st := store.NewMemory()
	st.Write(42)

	e := newTestEngine(st, nil, nil)

	if snap := e.snapshot(); snap.HighScore != 42 {
		t.Errorf("expected HighScore=42, got %d", snap.HighScore)
	}
}

func TestEngine_Start(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	e.apply(command{kind: cmdStart})

	snap := latest(t, e)
	if snap.Status != record.StatusPlaying {
		t.Errorf("expected Playing, got %v", snap.Status)
	}
	if snap.Score != 0 || snap.Lives != 3 || len(snap.Items) != 0 {
		t.Errorf("expected fresh session, got score=%d lives=%d items=%d", snap.Score, snap.Lives, len(snap.Items))
	}
}

func TestEngine_TickIgnoredUnlessPlaying(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	e.Tick(time.Unix(10, 0))

	if e.session.Tick != 0 {
		t.Errorf("expected no tick while Idle, got %d", e.session.Tick)
	}
}

func TestEngine_CatchNotifiesPresenter(t *testing.T) {
	p := &recordingPresenter{}
	e := newTestEngine(nil, p, nil)
	// Desktop catcher spans [135, 215]; opening at 453.6
	startQuiet(e, game.Item{ID: 1, X: 135, Y: 400, Kind: record.KindRare, FallSpeed: 5})

	e.Tick(time.Unix(10, 0))

	if len(p.catches) != 1 || p.catches[0] != record.KindRare {
		t.Errorf("expected one rare catch, got %v", p.catches)
	}
	if e.session.Score != 3 {
		t.Errorf("expected Score=3, got %d", e.session.Score)
	}
}

func TestEngine_MissNotifiesPresenter(t *testing.T) {
	p := &recordingPresenter{}
	e := newTestEngine(nil, p, nil)
	startQuiet(e, game.Item{ID: 1, X: 0, Y: 499, FallSpeed: 2})

	e.Tick(time.Unix(10, 0))

	if p.misses != 1 {
		t.Errorf("expected one miss, got %d", p.misses)
	}
	if e.session.Lives != 2 {
		t.Errorf("expected Lives=2, got %d", e.session.Lives)
	}
}

func TestEngine_GameOverNewHighScore(t *testing.T) {
	st := store.NewMemory()
	st.Write(5)
	p := &recordingPresenter{}
	e := newTestEngine(st, p, nil)
	startQuiet(e, game.Item{ID: 1, X: 0, Y: 499, FallSpeed: 2})
	e.session.Lives = 1
	e.session.Score = 10

	e.Tick(time.Unix(10, 0))

	if e.session.Status != record.StatusGameOver {
		t.Fatalf("expected GameOver, got %v", e.session.Status)
	}
	if st.Read() != 10 {
		t.Errorf("expected stored high score 10, got %d", st.Read())
	}
	if p.cheers != 1 {
		t.Errorf("expected one celebration, got %d", p.cheers)
	}

	snap := latest(t, e)
	if snap.HighScore != 10 || !snap.NewHighScore {
		t.Errorf("expected new high score 10 in snapshot, got %d (new=%v)", snap.HighScore, snap.NewHighScore)
	}
}

func TestEngine_GameOverBelowHighScore(t *testing.T) {
	st := store.NewMemory()
	st.Write(50)
	p := &recordingPresenter{}
	e := newTestEngine(st, p, nil)
	startQuiet(e, game.Item{ID: 1, X: 0, Y: 499, FallSpeed: 2})
	e.session.Lives = 1
	e.session.Score = 10

	e.Tick(time.Unix(10, 0))

	if st.Read() != 50 {
		t.Errorf("expected stored high score to stay 50, got %d", st.Read())
	}
	if p.cheers != 0 {
		t.Errorf("expected no celebration, got %d", p.cheers)
	}
	if snap := e.snapshot(); snap.NewHighScore {
		t.Error("expected NewHighScore=false")
	}
}

func TestEngine_StartRefreshesHighScore(t *testing.T) {
	st := store.NewMemory()
	e := newTestEngine(st, nil, nil)

	st.Write(77)
	e.apply(command{kind: cmdStart})

	if e.highScore != 77 {
		t.Errorf("expected high score reloaded as 77, got %d", e.highScore)
	}
}

func TestEngine_StartWhilePlayingIgnored(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	startQuiet(e, game.Item{ID: 9, Y: 10, FallSpeed: 1})
	e.session.Score = 4

	e.apply(command{kind: cmdStart})

	if e.session.Score != 4 || len(e.session.Items) != 1 {
		t.Errorf("expected session untouched, got score=%d items=%d", e.session.Score, len(e.session.Items))
	}
}

func TestEngine_PauseStopsTicks(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	startQuiet(e)

	e.apply(command{kind: cmdPause})
	e.Tick(time.Unix(10, 0))

	if e.session.Tick != 0 {
		t.Errorf("expected no tick while paused, got %d", e.session.Tick)
	}
	if snap := latest(t, e); !snap.Paused || snap.Status != record.StatusPlaying {
		t.Errorf("expected paused Playing snapshot, got paused=%v status=%v", snap.Paused, snap.Status)
	}
}

func TestEngine_ResumeSkipsPausedTime(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	e.apply(command{kind: cmdStart})

	t0 := time.Unix(100, 0)
	e.Tick(t0) // First tick spawns immediately
	if e.session.NextID != 1 {
		t.Fatalf("expected first spawn, got NextID=%d", e.session.NextID)
	}

	e.apply(command{kind: cmdPause})
	e.apply(command{kind: cmdResume})
	e.Tick(t0.Add(10 * time.Second))

	if e.session.NextID != 1 {
		t.Errorf("expected paused time not to trigger a spawn, got NextID=%d", e.session.NextID)
	}
	if e.session.Tick != 2 {
		t.Errorf("expected two ticks, got %d", e.session.Tick)
	}
}

func TestEngine_PauseIgnoredWhenIdle(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	e.apply(command{kind: cmdPause})

	if e.paused {
		t.Error("expected pause to be ignored while Idle")
	}
}

func TestEngine_Reset(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	startQuiet(e)

	e.apply(command{kind: cmdReset})
	if e.session.Status != record.StatusPlaying {
		t.Errorf("expected reset ignored while Playing, got %v", e.session.Status)
	}

	e.session.Status = record.StatusGameOver
	e.session.Lives = 0
	e.apply(command{kind: cmdReset})
	if e.session.Status != record.StatusIdle || e.session.Lives != 3 {
		t.Errorf("expected fresh Idle session, got %v with %d lives", e.session.Status, e.session.Lives)
	}
}

func TestEngine_Resize(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	startQuiet(e)
	e.session.Catcher.X = 270

	e.apply(command{kind: cmdResize, viewport: game.Viewport{Width: 360, Height: 640}})

	g := e.session.Geometry
	if g.Class != game.ClassMobile {
		t.Errorf("expected mobile layout, got %v", g.Class)
	}
	if e.session.Catcher.X > g.Width-g.CatcherWidth {
		t.Errorf("catcher X %g outside %g wide field", e.session.Catcher.X, g.Width)
	}
}

func TestEngine_ReadsPointerEachTick(t *testing.T) {
	ptr := &Pointer{}
	e := newTestEngine(nil, nil, ptr)
	startQuiet(e)

	ptr.Set(1000)
	e.Tick(time.Unix(10, 0))
	if e.session.Catcher.X != 270 {
		t.Errorf("expected catcher clamped to 270, got %g", e.session.Catcher.X)
	}

	ptr.Set(100)
	e.Tick(time.Unix(11, 0))
	if e.session.Catcher.X != 60 {
		t.Errorf("expected catcher at 60, got %g", e.session.Catcher.X)
	}

	ptr.Clear()
	e.Tick(time.Unix(12, 0))
	if e.session.Catcher.X != 60 {
		t.Errorf("expected catcher to stay at 60, got %g", e.session.Catcher.X)
	}
}

func TestEngine_SnapshotsKeepLatest(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	e.publish()
	e.apply(command{kind: cmdStart})

	if n := len(e.Snapshots()); n != 1 {
		t.Fatalf("expected one buffered snapshot, got %d", n)
	}
	if snap := latest(t, e); snap.Status != record.StatusPlaying {
		t.Errorf("expected latest snapshot to be Playing, got %v", snap.Status)
	}
}

func TestEngine_Run(t *testing.T) {
	clock := newFakeClock()
	e := New(Options{
		Tuning: config.DefaultTuning(),
		Rand:   rand.New(rand.NewSource(1)),
		Clock:  clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx)

	waitSnapshot(t, e, func(s record.Snapshot) bool { return s.Status == record.StatusIdle })

	select {
	case <-clock.created:
		t.Fatal("expected no ticker while Idle")
	default:
	}

	e.Start()
	waitSnapshot(t, e, func(s record.Snapshot) bool { return s.Status == record.StatusPlaying })

	var tk *fakeTicker
	select {
	case tk = <-clock.created:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a ticker once Playing")
	}

	tk.c <- time.Unix(100, 0)
	snap := waitSnapshot(t, e, func(s record.Snapshot) bool { return s.Tick == 1 })
	if len(snap.Items) != 1 {
		t.Errorf("expected first tick to spawn, got %d items", len(snap.Items))
	}

	e.Pause()
	select {
	case <-tk.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("expected ticker stopped on pause")
	}

	e.Resume()
	var resumed *fakeTicker
	select {
	case resumed = <-clock.created:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a new ticker on resume")
	}

	cancel()
	select {
	case <-e.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after cancel")
	}
	select {
	case <-resumed.stopped:
	default:
		t.Error("expected ticker released when Run returns")
	}

	// Commands after shutdown must not block
	for i := 0; i < commandBufferSize*2; i++ {
		e.Start()
	}
}
