package engine

import (
	"time"

	"github.com/diegok/pixcatch/internal/record"
)

// HighScoreStore persists the best score. Implementations must degrade to
// 0 and a no-op when storage is unavailable, and Write must not block.
type HighScoreStore interface {
	Read() int
	Write(value int)
}

// Presenter receives fire-and-forget notifications from the loop
type Presenter interface {
	OnCatch(kind record.Kind)
	OnMiss()
	OnNewHighScore()
}

// NopPresenter ignores every notification
type NopPresenter struct{}

func (NopPresenter) OnCatch(record.Kind) {}
func (NopPresenter) OnMiss() {}
func (NopPresenter) OnNewHighScore() {}

// PointerSource reports the latest pointer x in playfield pixels
type PointerSource interface {
	CurrentPointer() (x float64, ok bool)
}

// Clock abstracts frame scheduling so tests can drive ticks by hand. Tick
// timestamps come from the ticker channel.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of time.Ticker the loop needs
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop() { r.t.Stop() }
