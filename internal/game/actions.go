package game

import (
	"time"

	"github.com/davidchappy/pathman/internal/entities"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

// Action is a request to change the session, applied by Game.Dispatch.
type Action interface {
	action()
}

// Tick advances the simulation by one step. Ignored unless playing.
type Tick struct {
	Delta time.Duration
}

// SetDirection steers the player. Ignored unless playing.
type SetDirection struct {
	Dir entities.Direction
}

// Toggle is the start/pause key: it starts from the intro, pauses and
// resumes, and starts a fresh session after the game ended.
type Toggle struct{}

// Resize reports the new viewport size.
type Resize struct {
	Width, Height float64
}

// Click records a pointer location for the debug marker.
type Click struct {
	At tm.Point
}

type ClearClick struct{}

// Frame records frame timing diagnostics.
type Frame struct {
	Timestamp time.Duration
	Delta     time.Duration
}

// Reset rebuilds the session from the blueprint and returns to the intro.
type Reset struct{}

func (Tick) action()         {}
func (SetDirection) action() {}
func (Toggle) action()       {}
func (Resize) action()       {}
func (Click) action()        {}
func (ClearClick) action()   {}
func (Frame) action()        {}
func (Reset) action()        {}
