package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/davidchappy/pathman/internal/entities"
	"github.com/davidchappy/pathman/internal/pathfind"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhasePaused
	PhaseOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "game-over"
	case PhaseWon:
		return "game-won"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Debug holds introspection values for the renderer. Nothing in the
// simulation reads them.
type Debug struct {
	ClickLocation *tm.Point
	LastCell      tm.Coord
	FPS           float64
}

// State is one game session. It is rebuilt from the blueprint on reset,
// never patched back to its initial values.
type State struct {
	Maze         *tm.Maze
	Player       *entities.Player
	Ghosts       []*entities.Ghost
	Pellets      []entities.Pellet
	PowerPellets []entities.PowerPellet

	PowerRemaining time.Duration
	Score          int
	Phase          Phase
	Overlay        string

	PrevFrame    time.Duration
	HasPrevFrame bool
	Scale        float64

	// Elapsed is simulated play time; it drives the power pellet blink.
	Elapsed time.Duration
	// lifeMilestone counts extra-life thresholds already rewarded.
	lifeMilestone int

	Debug Debug
}

// Powered reports whether a power pellet effect is running.
func (s *State) Powered() bool {
	return s.PowerRemaining > 0
}

// Game owns the session state. All mutation goes through Dispatch and
// happens on the caller's goroutine; Game is not safe for concurrent use.
type Game struct {
	settings  Settings
	blueprint tm.Blueprint
	finder    *pathfind.Finder
	log       *slog.Logger
	state     *State
	viewW     float64
	viewH     float64
}

type Option func(*Game)

// WithRand seeds ghost route shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.finder = pathfind.New(rng) }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// New validates the blueprint and builds the first session in the intro
// phase. Maze errors are returned here so they can stop the program
// before the loop starts.
func New(settings Settings, bp tm.Blueprint, opts ...Option) (*Game, error) {
	g := &Game{
		settings:  settings,
		blueprint: bp,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.finder == nil {
		g.finder = pathfind.New(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	s, err := g.newState()
	if err != nil {
		return nil, err
	}
	g.state = s
	return g, nil
}

func (g *Game) newState() (*State, error) {
	m, err := tm.NewMaze(g.blueprint, g.settings.CellSize)
	if err != nil {
		return nil, err
	}
	player, err := entities.CreatePlayer(m, g.settings.PlayerSpeed, g.settings.StartingLives)
	if err != nil {
		return nil, fmt.Errorf("maze %q: %w", m.Name, err)
	}
	s := &State{
		Maze:         m,
		Player:       player,
		Ghosts:       entities.CreateGhosts(m, g.settings.GhostSpeed),
		Pellets:      entities.CreatePellets(m),
		PowerPellets: entities.CreatePowerPellets(m),
		Phase:        PhaseIntro,
		Overlay:      g.settings.Messages.Intro,
		Scale:        g.fitScale(m),
	}
	if g.viewW > 0 && g.viewH > 0 {
		m.Recenter(g.viewW/s.Scale, g.viewH/s.Scale)
	}
	return s, nil
}

// State exposes the session for reading. Callers must not mutate it.
func (g *Game) State() *State { return g.state }

func (g *Game) Phase() Phase { return g.state.Phase }

func (g *Game) Settings() Settings { return g.settings }

// Dispatch applies one action to the session.
func (g *Game) Dispatch(a Action) {
	switch a := a.(type) {
	case Tick:
		if g.state.Phase == PhasePlaying {
			g.Step(a.Delta)
		}
	case SetDirection:
		g.setDirection(a.Dir)
	case Toggle:
		g.toggle()
	case Resize:
		g.resize(a.Width, a.Height)
	case Click:
		p := a.At
		g.state.Debug.ClickLocation = &p
	case ClearClick:
		g.state.Debug.ClickLocation = nil
	case Frame:
		if a.Delta > 0 {
			g.state.Debug.FPS = float64(time.Second) / float64(a.Delta)
		}
		g.state.PrevFrame = a.Timestamp
		g.state.HasPrevFrame = true
	case Reset:
		g.reset()
	default:
		g.log.Warn("unknown action", "action", fmt.Sprintf("%T", a))
	}
}

func (g *Game) setPhase(p Phase, overlay string) {
	if g.state.Phase == p {
		return
	}
	g.log.Info("phase changed", "from", g.state.Phase, "to", p, "score", g.state.Score)
	g.state.Phase = p
	g.state.Overlay = overlay
}

func (g *Game) toggle() {
	switch g.state.Phase {
	case PhaseIntro:
		g.setPhase(PhasePlaying, "")
	case PhasePlaying:
		g.setPhase(PhasePaused, g.settings.Messages.Paused)
	case PhasePaused:
		g.setPhase(PhasePlaying, "")
	case PhaseOver, PhaseWon:
		g.reset()
		g.setPhase(PhasePlaying, "")
	}
}

func (g *Game) reset() {
	s, err := g.newState()
	if err != nil {
		// The blueprint was validated in New; it cannot fail here.
		panic(fmt.Sprintf("rebuild session: %v", err))
	}
	g.state = s
}

func (g *Game) setDirection(d entities.Direction) {
	if g.state.Phase != PhasePlaying || d == entities.DirNone {
		return
	}
	p := g.state.Player
	// Turning onto the other axis lines the player up with the corridor.
	if p.Dir == entities.DirNone || p.Dir.Horizontal() != d.Horizontal() {
		centre := g.state.Maze.CellCenter(g.state.Maze.CellOf(p.Pos))
		if d.Horizontal() {
			p.Pos.Y = centre.Y
		} else {
			p.Pos.X = centre.X
		}
	}
	p.Dir = d
	p.Moving = true
}

// resize recomputes scale and centres the maze in the scaled viewport.
func (g *Game) resize(w, h float64) {
	g.viewW, g.viewH = w, h
	g.state.Scale = g.fitScale(g.state.Maze)
	g.state.Maze.Recenter(w/g.state.Scale, h/g.state.Scale)
}

// fitScale is the largest zoom that keeps the maze plus a three cell margin
// for the HUD inside the viewport, never below 1.
func (g *Game) fitScale(m *tm.Maze) float64 {
	if g.viewW <= 0 || g.viewH <= 0 {
		return 1
	}
	w, h := m.PixelSize()
	margin := float64(3 * m.CellSize)
	s := math.Min(g.viewW/(w+margin), g.viewH/(h+margin))
	if s < 1 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return math.Floor(s*4) / 4
}
