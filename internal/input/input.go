// Package input turns raw key and touch events into game actions.
package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/davidchappy/pathman/internal/entities"
	"github.com/davidchappy/pathman/internal/game"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

// TapThreshold is the largest touch travel, in pixels, still read as a tap.
const TapThreshold = 10.0

var directionKeys = map[ebiten.Key]entities.Direction{
	ebiten.KeyArrowUp:    entities.DirUp,
	ebiten.KeyW:          entities.DirUp,
	ebiten.KeyArrowDown:  entities.DirDown,
	ebiten.KeyS:          entities.DirDown,
	ebiten.KeyArrowLeft:  entities.DirLeft,
	ebiten.KeyA:          entities.DirLeft,
	ebiten.KeyArrowRight: entities.DirRight,
	ebiten.KeyD:          entities.DirRight,
}

// DirectionForKey maps arrow keys and WASD to a direction.
func DirectionForKey(k ebiten.Key) (entities.Direction, bool) {
	d, ok := directionKeys[k]
	return d, ok
}

func IsToggleKey(k ebiten.Key) bool {
	return k == ebiten.KeySpace
}

// IsWindowKey reports whether the host keeps k for itself: F toggles
// fullscreen, Q and Escape quit.
func IsWindowKey(k ebiten.Key) bool {
	return k == ebiten.KeyF || k == ebiten.KeyQ || k == ebiten.KeyEscape
}

// waiting reports whether any key should start play.
func waiting(p game.Phase) bool {
	return p == game.PhaseIntro || p == game.PhaseOver || p == game.PhaseWon
}

// KeyActions translates keys released this frame. On the intro and end
// screens any key but a window key starts play; otherwise space toggles
// pause and direction keys steer while not paused.
func KeyActions(phase game.Phase, released []ebiten.Key) []game.Action {
	if len(released) == 0 {
		return nil
	}
	if waiting(phase) {
		for _, k := range released {
			if !IsWindowKey(k) {
				return []game.Action{game.Toggle{}}
			}
		}
		return nil
	}
	var out []game.Action
	for _, k := range released {
		if IsToggleKey(k) {
			out = append(out, game.Toggle{})
			if phase == game.PhasePlaying {
				phase = game.PhasePaused
			} else {
				phase = game.PhasePlaying
			}
			continue
		}
		if phase == game.PhasePaused {
			continue
		}
		if d, ok := DirectionForKey(k); ok {
			out = append(out, game.SetDirection{Dir: d})
		}
	}
	return out
}

// Gesture is a finished touch: either a tap or a swipe direction.
type Gesture struct {
	Dir entities.Direction
	Tap bool
}

// Classify reads a touch from start to end. The dominant axis of the
// travel picks the direction; ties go to the vertical axis.
func Classify(start, end tm.Point) Gesture {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if math.Hypot(dx, dy) < TapThreshold {
		return Gesture{Tap: true}
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Gesture{Dir: entities.DirRight}
		}
		return Gesture{Dir: entities.DirLeft}
	}
	if dy > 0 {
		return Gesture{Dir: entities.DirDown}
	}
	return Gesture{Dir: entities.DirUp}
}

// GestureActions translates a touch. A tap is the toggle input; a swipe
// steers while playing and starts play from the intro and end screens.
func GestureActions(phase game.Phase, g Gesture) []game.Action {
	switch {
	case g.Tap:
		return []game.Action{game.Toggle{}}
	case waiting(phase):
		return []game.Action{game.Toggle{}}
	case phase == game.PhasePlaying:
		return []game.Action{game.SetDirection{Dir: g.Dir}}
	}
	return nil
}
