package record

import (
	"encoding/gob"
	"time"
)

// Kind decides how many points a caught item is worth
type Kind int

const (
	KindCommon Kind = 0
	KindRare   Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindCommon:
		return "common"
	case KindRare:
		return "rare"
	}
	return "unknown"
}

// Flavor is the cosmetic treat an item is drawn as
type Flavor int

const (
	FlavorCookie  Flavor = 0
	FlavorCupcake Flavor = 1
	FlavorHeart   Flavor = 2
)

// Status is the session state machine: Idle -> Playing -> GameOver -> Idle
type Status int

const (
	StatusIdle     Status = 0
	StatusPlaying  Status = 1
	StatusGameOver Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game over"
	}
	return "unknown"
}

// MessageType identifies the payload of a serialized Message
type MessageType int

const (
	MsgHighScore MessageType = iota
)

// Message is the wrapper for everything written through a Codec
type Message struct {
	Type    MessageType
	Payload interface{}
}

// ItemState is one falling item as seen by the presentation layer
type ItemState struct {
	ID     int
	X      float64
	Y      float64
	Size   float64
	Kind   Kind
	Flavor Flavor
}

// CatcherState is the catcher as seen by the presentation layer
type CatcherState struct {
	X      float64
	Width  float64
	Height float64
}

// Snapshot is the per-tick render output
type Snapshot struct {
	Tick         int
	Status       Status
	Paused       bool
	Score        int
	Lives        int
	MaxLives     int
	HighScore    int
	NewHighScore bool
	FieldWidth   float64
	FieldHeight  float64
	CatchZoneTop float64
	Catcher      CatcherState
	Items        []ItemState
}

// HighScore is the persisted best score
type HighScore struct {
	Value int
	SetAt time.Time
}

func init() {
	gob.Register(HighScore{})
}
