package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/davidchappy/pathman/internal/input"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

// inputSource is what the session reads each update.
type inputSource interface {
	// Poll refreshes per-frame state. Called once per Update.
	Poll()
	PressedKeys() []ebiten.Key
	ReleasedKeys() []ebiten.Key
	// Click returns the pointer location of a left click released this frame.
	Click() (tm.Point, bool)
	// Gestures returns touches that ended this frame.
	Gestures() []input.Gesture
}

type touch struct {
	start, last tm.Point
}

// ebitenInput reads the keyboard, mouse and touch screen through ebiten.
type ebitenInput struct {
	pressed  []ebiten.Key
	released []ebiten.Key
	touches  map[ebiten.TouchID]*touch
	ids      []ebiten.TouchID
	gestures []input.Gesture
}

func newEbitenInput() *ebitenInput {
	return &ebitenInput{touches: make(map[ebiten.TouchID]*touch)}
}

func (in *ebitenInput) Poll() {
	in.pressed = inpututil.AppendJustPressedKeys(in.pressed[:0])
	in.released = inpututil.AppendJustReleasedKeys(in.released[:0])

	in.ids = inpututil.AppendJustPressedTouchIDs(in.ids[:0])
	for _, id := range in.ids {
		x, y := ebiten.TouchPosition(id)
		p := tm.Point{X: float64(x), Y: float64(y)}
		in.touches[id] = &touch{start: p, last: p}
	}

	in.ids = ebiten.AppendTouchIDs(in.ids[:0])
	active := make(map[ebiten.TouchID]bool, len(in.ids))
	for _, id := range in.ids {
		active[id] = true
		if t, ok := in.touches[id]; ok {
			x, y := ebiten.TouchPosition(id)
			t.last = tm.Point{X: float64(x), Y: float64(y)}
		}
	}

	in.gestures = in.gestures[:0]
	for id, t := range in.touches {
		if active[id] {
			continue
		}
		in.gestures = append(in.gestures, input.Classify(t.start, t.last))
		delete(in.touches, id)
	}
}

func (in *ebitenInput) PressedKeys() []ebiten.Key  { return in.pressed }
func (in *ebitenInput) ReleasedKeys() []ebiten.Key { return in.released }

func (in *ebitenInput) Click() (tm.Point, bool) {
	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return tm.Point{}, false
	}
	x, y := ebiten.CursorPosition()
	return tm.Point{X: float64(x), Y: float64(y)}, true
}

func (in *ebitenInput) Gestures() []input.Gesture { return in.gestures }
