package game

import (
	"time"

	"github.com/diegok/pixcatch/internal/config"
	"github.com/diegok/pixcatch/internal/record"
)

// StartingLives is the number of misses a session can absorb
const StartingLives = 3

// EventType identifies something that happened during a tick
type EventType int

const (
	EventCatch EventType = iota
	EventMiss
	EventGameOver
)

// Event is emitted by Step for the caller to forward to the presentation
// layer and the high score store
type Event struct {
	Type   EventType
	ItemID int
	Kind   record.Kind
	Points int
}

// Input is everything the host feeds into one tick
type Input struct {
	PointerX   float64
	HasPointer bool
	Elapsed    time.Duration // Wall-clock time since the previous tick
}

// Session is one play-through. It is a value: Step and the lifecycle
// methods return a new Session and never mutate the receiver's items.
type Session struct {
	Status   record.Status
	Score    int
	Lives    int
	Tick     int
	NextID   int
	Items    []Item
	Catcher  Catcher
	Geometry Geometry
	Spawner  Spawner
}

// NewSession returns an idle session laid out for g
func NewSession(g Geometry) Session {
	return Session{
		Status:   record.StatusIdle,
		Lives:    StartingLives,
		Catcher:  NewCatcher(g),
		Geometry: g,
		Spawner:  NewSpawner(),
	}
}

// Start begins a fresh play-through. Valid from Idle or GameOver; from
// GameOver it implies a reset. Returns false (and s unchanged) otherwise.
func (s Session) Start() (Session, bool) {
	switch s.Status {
	case record.StatusIdle, record.StatusGameOver:
	default:
		return s, false
	}

	next := NewSession(s.Geometry)
	next.Status = record.StatusPlaying
	return next, true
}

// Reset clears a finished session back to Idle. Only valid from GameOver.
func (s Session) Reset() (Session, bool) {
	if s.Status != record.StatusGameOver {
		return s, false
	}
	return NewSession(s.Geometry), true
}

// Resize swaps in a new geometry between ticks. The catcher and any live
// items are re-clamped so nothing sits outside the new playfield.
func (s Session) Resize(g Geometry) Session {
	items := make([]Item, len(s.Items))
	maxX := g.Width - g.ItemSize
	for i, it := range s.Items {
		it.X = clamp(it.X, 0, maxX)
		items[i] = it
	}

	s.Items = items
	s.Geometry = g
	s.Catcher = s.Catcher.Fit(g)
	return s
}

// Step advances a Playing session by one tick: input, spawn, physics,
// collision, scoring. Non-playing sessions are returned unchanged.
func Step(s Session, in Input, t config.Tuning, rng Rand) (Session, []Event) {
	if s.Status != record.StatusPlaying {
		return s, nil
	}

	next := s
	next.Tick++

	if in.HasPointer {
		next.Catcher = TrackPointer(next.Catcher, in.PointerX, next.Geometry)
	}

	items := make([]Item, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)

	if next.Spawner.Advance(in.Elapsed, SpawnInterval(next.Score, t.Spawn)) {
		items = append(items, SpawnItem(next.NextID, next.Score, next.Geometry, t, rng))
		next.NextID++
	}

	Integrate(items)

	var events []Event
	kept := items[:0]
	for i, it := range items {
		if next.Status == record.StatusGameOver {
			kept = append(kept, items[i:]...)
			break
		}

		switch Classify(it, next.Catcher, next.Geometry, t.Catch.OpeningFraction) {
		case Caught:
			pts := Points(it.Kind, t.Scoring)
			next.Score += pts
			events = append(events, Event{Type: EventCatch, ItemID: it.ID, Kind: it.Kind, Points: pts})
		case Missed:
			next.Lives--
			events = append(events, Event{Type: EventMiss, ItemID: it.ID, Kind: it.Kind})
			if next.Lives <= 0 {
				next.Lives = 0
				next.Status = record.StatusGameOver
				events = append(events, Event{Type: EventGameOver})
			}
		default:
			kept = append(kept, it)
		}
	}
	next.Items = kept

	return next, events
}

// Snapshot converts the session into render output
func (s Session) Snapshot(openingFraction float64) record.Snapshot {
	items := make([]record.ItemState, len(s.Items))
	for i, it := range s.Items {
		items[i] = record.ItemState{
			ID:     it.ID,
			X:      it.X,
			Y:      it.Y,
			Size:   s.Geometry.ItemSize,
			Kind:   it.Kind,
			Flavor: it.Flavor,
		}
	}

	return record.Snapshot{
		Tick:         s.Tick,
		Status:       s.Status,
		Score:        s.Score,
		Lives:        s.Lives,
		MaxLives:     StartingLives,
		FieldWidth:   s.Geometry.Width,
		FieldHeight:  s.Geometry.Height,
		CatchZoneTop: s.Geometry.CatchZoneTop(openingFraction),
		Catcher: record.CatcherState{
			X:      s.Catcher.X,
			Width:  s.Catcher.Width,
			Height: s.Catcher.Height,
		},
		Items: items,
	}
}
