package audio

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/pixcatch/internal/record"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.3
)

// Player turns game notifications into short synthesized effects
type Player struct {
	enabled bool
	logger  *log.Logger
}

// NewPlayer opens the speaker unless muted. A speaker that fails to open
// leaves the player silent rather than failing the game.
func NewPlayer(muted bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	p := &Player{logger: logger}
	if muted {
		logger.Printf("audio: muted")
		return p
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		logger.Printf("audio: speaker unavailable: %v", err)
		return p
	}
	p.enabled = true
	return p
}

// Close shuts down the speaker
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}

// OnCatch plays a rising chirp, brighter and doubled for rare items
func (p *Player) OnCatch(kind record.Kind) {
	p.play(catchSound(kind))
}

// OnMiss plays a falling tone
func (p *Player) OnMiss() {
	p.play(missSound())
}

// OnNewHighScore plays a short fanfare
func (p *Player) OnNewHighScore() {
	p.play(fanfare())
}

func (p *Player) play(s beep.Streamer) {
	if !p.enabled {
		return
	}
	speaker.Play(s)
}

func catchSound(kind record.Kind) beep.Streamer {
	if kind == record.KindRare {
		return beep.Seq(
			sweep(1000, 1500, 80*time.Millisecond),
			sweep(1200, 1800, 100*time.Millisecond),
		)
	}
	return sweep(800, 1200, 150*time.Millisecond)
}

func missSound() beep.Streamer {
	return sweep(400, 150, 200*time.Millisecond)
}

func fanfare() beep.Streamer {
	return beep.Seq(
		squareWave(523, 90*time.Millisecond),
		squareWave(659, 90*time.Millisecond),
		squareWave(784, 90*time.Millisecond),
		squareWave(1047, 220*time.Millisecond),
	)
}

// sweep generates a sine glide from one frequency to another that fades out
// over its duration
func sweep(from, to float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	n := 0
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if n >= total {
				return i, i > 0
			}
			progress := float64(n) / float64(total)
			freq := from + (to-from)*progress
			val := math.Sin(phase) * volume * (1 - progress)
			samples[i][0] = val
			samples[i][1] = val
			phase += 2 * math.Pi * freq / float64(sampleRate)
			n++
		}
		return len(samples), true
	})
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	remaining := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if remaining <= 0 {
				return i, i > 0
			}
			val := volume * 0.6
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			remaining--
		}
		return len(samples), true
	})
}
