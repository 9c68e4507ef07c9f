// Package app hosts a game session in an ebiten window: it feeds input to
// the simulation, drives the frame loop and draws the state.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/davidchappy/pathman/internal/game"
	"github.com/davidchappy/pathman/internal/input"
	"github.com/davidchappy/pathman/internal/loop"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

// clickMarkerTTL is how long the debug click marker stays on screen.
const clickMarkerTTL = 4 * time.Second

// Publisher receives the session after every presented frame.
type Publisher interface {
	PublishMaze(m *tm.Maze)
	Publish(st *game.State)
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithPublisher streams the session, e.g. to spectators.
func WithPublisher(p Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

// WithDebug draws the click marker and the player's current cell.
func WithDebug(on bool) Option {
	return func(s *Session) { s.debug = on }
}

// WithID sets the session id reported to spectators.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithContext ends the session on the next update once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.ctx = ctx }
}

// Session implements ebiten.Game.
type Session struct {
	id        string
	ctx       context.Context
	game      *game.Game
	driver    *loop.Driver
	input     inputSource
	publisher Publisher
	log       *slog.Logger
	clock     func() time.Duration
	debug     bool

	setFullscreen func(bool)
	fullscreen    bool

	attached   bool
	armed      bool
	width      int
	height     int
	clickTimer loop.TimerID
}

func New(g *game.Game, opts ...Option) *Session {
	start := time.Now()
	s := &Session{
		ctx:           context.Background(),
		game:          g,
		input:         newEbitenInput(),
		log:           slog.Default(),
		clock:         func() time.Duration { return time.Since(start) },
		setFullscreen: ebiten.SetFullscreen,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.driver = loop.NewDriver(s, g, s.present, s.log)
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Game() *game.Game { return s.game }

// RequestFrame arms the driver callback for the next Update.
func (s *Session) RequestFrame() { s.armed = true }

// Run attaches input, presents the current state and starts the loop.
func (s *Session) Run() {
	if s.driver.Running() {
		return
	}
	s.attached = true
	if s.width > 0 && s.height > 0 {
		s.game.Dispatch(game.Resize{Width: float64(s.width), Height: float64(s.height)})
	}
	st := s.game.State()
	if s.publisher != nil {
		s.publisher.PublishMaze(st.Maze)
	}
	s.present()
	s.driver.Start()
	s.log.Info("session run", "phase", st.Phase, "maze", st.Maze.Name)
}

// Quit detaches input and stops the loop and its timers. The state is
// kept, so Run continues where the session left off.
func (s *Session) Quit() {
	s.attached = false
	s.armed = false
	s.driver.Stop()
	st := s.game.State()
	s.log.Info("session quit", "phase", st.Phase, "score", st.Score)
}

// Reset discards the session state and starts again from the intro.
func (s *Session) Reset() {
	s.Quit()
	s.game.Dispatch(game.Reset{})
	s.log.Info("session reset")
	s.Run()
}

func (s *Session) Update() error {
	if err := s.ctx.Err(); err != nil {
		if s.attached {
			s.log.Info("session interrupted", "reason", context.Cause(s.ctx))
			s.Quit()
		}
		return ebiten.Termination
	}
	ts := s.clock()
	if s.attached {
		s.input.Poll()
		if s.handleInput() {
			s.Quit()
			return ebiten.Termination
		}
	}
	if s.armed {
		s.armed = false
		s.driver.Frame(ts)
	} else {
		s.driver.Timers().Advance(ts)
	}
	return nil
}

func (s *Session) Draw(screen *ebiten.Image) {
	s.render(screen)
}

// Layout keeps the logical screen the size of the window and resizes the
// maze when the window changes.
func (s *Session) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(s.width, 1), max(s.height, 1)
	}
	if outsideWidth != s.width || outsideHeight != s.height {
		s.width, s.height = outsideWidth, outsideHeight
		s.game.Dispatch(game.Resize{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return s.width, s.height
}

// handleInput applies this frame's input and reports whether the player
// asked to quit.
func (s *Session) handleInput() bool {
	for _, k := range s.input.PressedKeys() {
		switch k {
		case ebiten.KeyF:
			s.fullscreen = !s.fullscreen
			s.setFullscreen(s.fullscreen)
		case ebiten.KeyQ, ebiten.KeyEscape:
			return true
		}
	}

	for _, a := range input.KeyActions(s.game.Phase(), s.input.ReleasedKeys()) {
		s.apply(a)
	}
	for _, g := range s.input.Gestures() {
		for _, a := range input.GestureActions(s.game.Phase(), g) {
			s.apply(a)
		}
	}
	if p, ok := s.input.Click(); ok {
		s.click(p)
	}
	return false
}

// apply dispatches a to the game and restarts an idle loop on resume.
func (s *Session) apply(a game.Action) {
	before := s.game.Phase()
	s.game.Dispatch(a)
	if before == game.PhasePaused && s.game.Phase() == game.PhasePlaying {
		s.driver.Resume()
	}
}

// click places the debug marker, clears it later and presses the reset
// button when hit.
func (s *Session) click(p tm.Point) {
	s.game.Dispatch(game.Click{At: p})
	timers := s.driver.Timers()
	timers.Cancel(s.clickTimer)
	s.clickTimer = timers.After(clickMarkerTTL, func() {
		s.game.Dispatch(game.ClearClick{})
	})
	if resetButton(s.width).Contains(p) {
		s.Reset()
	}
}

// present is the loop's redraw hook. Ebiten draws every frame on its
// own, so this only publishes.
func (s *Session) present() {
	if s.publisher != nil {
		s.publisher.Publish(s.game.State())
	}
}

type button struct {
	X, Y, Width, Height float64
}

func resetButton(screenWidth int) button {
	return button{X: float64(screenWidth) - 120, Y: 86, Width: 100, Height: 30}
}

func (b button) Contains(p tm.Point) bool {
	return p.X >= b.X && p.X <= b.X+b.Width && p.Y >= b.Y && p.Y <= b.Y+b.Height
}
