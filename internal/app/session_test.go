package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidchappy/pathman/internal/entities"
	"github.com/davidchappy/pathman/internal/game"
	"github.com/davidchappy/pathman/internal/input"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

type fakeInput struct {
	queuedPressed  []ebiten.Key
	queuedReleased []ebiten.Key
	queuedClick    *tm.Point
	queuedGestures []input.Gesture

	pressed  []ebiten.Key
	released []ebiten.Key
	click    *tm.Point
	gestures []input.Gesture
}

func (f *fakeInput) Poll() {
	f.pressed, f.queuedPressed = f.queuedPressed, nil
	f.released, f.queuedReleased = f.queuedReleased, nil
	f.click, f.queuedClick = f.queuedClick, nil
	f.gestures, f.queuedGestures = f.queuedGestures, nil
}

func (f *fakeInput) PressedKeys() []ebiten.Key  { return f.pressed }
func (f *fakeInput) ReleasedKeys() []ebiten.Key { return f.released }
func (f *fakeInput) Gestures() []input.Gesture  { return f.gestures }

func (f *fakeInput) Click() (tm.Point, bool) {
	if f.click == nil {
		return tm.Point{}, false
	}
	return *f.click, true
}

type fakePublisher struct {
	mazes     int
	snapshots int
}

func (p *fakePublisher) PublishMaze(*tm.Maze) { p.mazes++ }
func (p *fakePublisher) Publish(*game.State)  { p.snapshots++ }

type harness struct {
	s     *Session
	in    *fakeInput
	pub   *fakePublisher
	now   time.Duration
	fulls []bool
}

// corridor: player at (2,1), one pellet ahead, a sealed pellet and a
// sealed ghost.
var corridor = []string{
	"G####",
	"##P.#",
	"####.",
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	bp, err := tm.ParseBlueprint("test", corridor)
	require.NoError(t, err)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	g, err := game.New(game.DefaultSettings(), bp, game.WithRand(rand.New(rand.NewSource(1))), game.WithLogger(quiet))
	require.NoError(t, err)

	h := &harness{in: &fakeInput{}, pub: &fakePublisher{}}
	h.s = New(g, append([]Option{WithLogger(quiet), WithPublisher(h.pub), WithID("test-session")}, opts...)...)
	h.s.input = h.in
	h.s.clock = func() time.Duration { return h.now }
	h.s.setFullscreen = func(on bool) { h.fulls = append(h.fulls, on) }
	h.s.Layout(800, 600)
	h.s.Run()
	return h
}

// frame advances the clock one 60 Hz frame and runs an update.
func (h *harness) frame(t *testing.T) {
	t.Helper()
	h.now += 16 * time.Millisecond
	require.NoError(t, h.s.Update())
}

func (h *harness) phase() game.Phase { return h.s.Game().Phase() }

func TestRunPublishesAndArms(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "test-session", h.s.ID())
	assert.Equal(t, 1, h.pub.mazes)
	assert.Equal(t, 1, h.pub.snapshots, "run presents once")
	assert.True(t, h.s.armed)
	assert.Equal(t, game.PhaseIntro, h.phase())
}

func TestAnyKeyStartsAndTicksAdvance(t *testing.T) {
	h := newHarness(t)
	h.frame(t) // baseline

	h.in.queuedReleased = []ebiten.Key{ebiten.KeyEnter}
	h.frame(t)
	require.Equal(t, game.PhasePlaying, h.phase())

	h.in.queuedReleased = []ebiten.Key{ebiten.KeyArrowRight}
	start := h.s.Game().State().Player.Pos.X
	for i := 0; i < 5; i++ {
		h.frame(t)
	}
	assert.Greater(t, h.s.Game().State().Player.Pos.X, start)
	assert.Equal(t, 62.5, h.s.Game().State().Debug.FPS)
}

func TestPauseIdlesAndResumeRestarts(t *testing.T) {
	h := newHarness(t)
	h.frame(t)
	h.in.queuedReleased = []ebiten.Key{ebiten.KeySpace}
	h.frame(t)
	require.Equal(t, game.PhasePlaying, h.phase())

	h.in.queuedReleased = []ebiten.Key{ebiten.KeySpace}
	h.frame(t)
	require.Equal(t, game.PhasePaused, h.phase())
	assert.False(t, h.s.armed, "paused frame does not re-arm")
	assert.Equal(t, game.DefaultSettings().Messages.Paused, h.s.Game().State().Overlay)

	published := h.pub.snapshots
	elapsed := h.s.Game().State().Elapsed
	for i := 0; i < 10; i++ {
		h.frame(t)
	}
	assert.Equal(t, published, h.pub.snapshots)
	assert.Equal(t, elapsed, h.s.Game().State().Elapsed)

	h.in.queuedReleased = []ebiten.Key{ebiten.KeySpace}
	h.frame(t) // resume sets a new baseline
	h.frame(t)
	assert.Equal(t, game.PhasePlaying, h.phase())
	assert.Equal(t, elapsed+16*time.Millisecond, h.s.Game().State().Elapsed, "the pause is not simulated")
}

func TestClickMarkerClearsAfterFourSeconds(t *testing.T) {
	h := newHarness(t)
	h.frame(t)

	h.in.queuedClick = &tm.Point{X: 10, Y: 10}
	h.frame(t)
	require.NotNil(t, h.s.Game().State().Debug.ClickLocation)

	h.now += 3 * time.Second
	h.frame(t)
	assert.NotNil(t, h.s.Game().State().Debug.ClickLocation)

	h.now += time.Second
	h.frame(t)
	assert.Nil(t, h.s.Game().State().Debug.ClickLocation)
}

func TestResetButtonRebuildsSession(t *testing.T) {
	h := newHarness(t)
	h.frame(t)
	h.in.queuedReleased = []ebiten.Key{ebiten.KeySpace}
	h.frame(t)
	before := h.s.Game().State()
	before.Score = 300

	h.in.queuedClick = &tm.Point{X: 700, Y: 100}
	h.frame(t)

	after := h.s.Game().State()
	assert.NotSame(t, before, after)
	assert.Equal(t, game.PhaseIntro, after.Phase)
	assert.Zero(t, after.Score)
	assert.True(t, h.s.driver.Running())
	assert.Equal(t, 2, h.pub.mazes)
}

func TestQuitKeyTerminates(t *testing.T) {
	h := newHarness(t)
	h.frame(t)

	h.in.queuedPressed = []ebiten.Key{ebiten.KeyQ}
	h.now += 16 * time.Millisecond
	err := h.s.Update()

	assert.ErrorIs(t, err, ebiten.Termination)
	assert.False(t, h.s.driver.Running())
	assert.False(t, h.s.attached)
}

func TestCancelledContextTerminates(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	h := newHarness(t, WithContext(ctx))
	h.frame(t)
	h.in.queuedReleased = []ebiten.Key{ebiten.KeySpace}
	h.frame(t)
	require.Equal(t, game.PhasePlaying, h.phase())

	cancel(errors.New("interrupt"))
	h.now += 16 * time.Millisecond
	assert.ErrorIs(t, h.s.Update(), ebiten.Termination)
	assert.False(t, h.s.driver.Running())
	assert.False(t, h.s.attached)

	assert.ErrorIs(t, h.s.Update(), ebiten.Termination, "stays terminated")
}

func TestFullscreenKeyLeavesIntro(t *testing.T) {
	h := newHarness(t)
	h.frame(t)
	h.in.queuedPressed = []ebiten.Key{ebiten.KeyF}
	h.frame(t)
	h.in.queuedReleased = []ebiten.Key{ebiten.KeyF}
	h.frame(t)

	assert.Equal(t, []bool{true}, h.fulls)
	assert.Equal(t, game.PhaseIntro, h.phase())
}

func TestQuitKeepsStateAndRunResumes(t *testing.T) {
	h := newHarness(t)
	h.frame(t)
	st := h.s.Game().State()

	h.s.Quit()
	h.frame(t)
	assert.Same(t, st, h.s.Game().State())
	assert.False(t, h.s.driver.Running())

	h.s.Run()
	assert.True(t, h.s.driver.Running())
	assert.Same(t, st, h.s.Game().State())
}

func TestFullscreenToggle(t *testing.T) {
	h := newHarness(t)
	h.in.queuedPressed = []ebiten.Key{ebiten.KeyF}
	h.frame(t)
	h.in.queuedPressed = []ebiten.Key{ebiten.KeyF}
	h.frame(t)
	assert.Equal(t, []bool{true, false}, h.fulls)
}

func TestSwipeSteers(t *testing.T) {
	h := newHarness(t)
	h.frame(t)
	h.in.queuedGestures = []input.Gesture{{Tap: true}}
	h.frame(t)
	require.Equal(t, game.PhasePlaying, h.phase())

	h.in.queuedGestures = []input.Gesture{{Dir: entities.DirRight}}
	h.frame(t)
	assert.True(t, h.s.Game().State().Player.Moving)
}

func TestLayoutResizesMaze(t *testing.T) {
	h := newHarness(t)
	w, hh := h.s.Layout(1024, 768)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, hh)

	b := h.s.Game().State().Maze.Bounds
	scale := h.s.Game().State().Scale
	assert.InDelta(t, 1024/scale/2, b.X+b.Width/2, 1e-9)
	assert.InDelta(t, 768/scale/2, b.Y+b.Height/2, 1e-9)

	w, hh = h.s.Layout(0, 0)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, hh)
}

func TestResetButtonBounds(t *testing.T) {
	b := resetButton(800)
	tests := []struct {
		p    tm.Point
		want bool
	}{
		{tm.Point{X: 680, Y: 86}, true},
		{tm.Point{X: 780, Y: 116}, true},
		{tm.Point{X: 730, Y: 100}, true},
		{tm.Point{X: 679, Y: 100}, false},
		{tm.Point{X: 730, Y: 117}, false},
		{tm.Point{X: 730, Y: 85}, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, b.Contains(tc.p), "%v", tc.p)
	}
}

func TestGhostColor(t *testing.T) {
	settings := game.DefaultSettings()
	st := &game.State{}

	assert.Equal(t, ghostColors[1], ghostColor(1, st, settings))

	st.PowerRemaining = 8 * time.Second
	assert.Equal(t, colorFrightened, ghostColor(1, st, settings))

	st.PowerRemaining = 2 * time.Second
	st.PrevFrame = 1100 * time.Millisecond
	assert.Equal(t, ghostColors[1], ghostColor(1, st, settings), "flashes back while the effect runs out")
	st.PrevFrame = 1300 * time.Millisecond
	assert.Equal(t, colorFrightened, ghostColor(1, st, settings))
}
