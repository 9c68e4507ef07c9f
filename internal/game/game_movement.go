package game

import (
	"math"
	"time"

	"github.com/davidchappy/pathman/internal/entities"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

// Step runs one simulation tick. Callers normally go through Dispatch(Tick).
func (g *Game) Step(delta time.Duration) {
	s := g.state
	if s.Phase != PhasePlaying {
		return
	}
	s.Elapsed += delta

	g.updatePlayerMovement()
	g.updateGhosts()
	if s.Phase != PhasePlaying {
		return
	}
	g.updatePower(delta)
	g.handlePelletCollision()
	g.updatePhase()
}

func (g *Game) updatePlayerMovement() {
	s := g.state
	p := s.Player
	m := s.Maze
	p.Cell = m.CellOf(p.Pos)

	if p.Moving {
		g.animateMouth()
	}
	if p.Dir == entities.DirNone || !p.Moving {
		return
	}

	radius := g.settings.playerRadius()
	next := advance(p.Pos, p.Dir, p.Speed)
	s.Debug.LastCell = p.Cell

	if adj, near := approaching(m, &p.Body, radius); near && m.IsWall(adj) {
		p.Moving = false
		return
	}

	p.Pos = wrap(m, next, p.Dir, radius)
	p.Cell = m.CellOf(p.Pos)
}

// animateMouth swings the mouth between closed (0) and MouthMaxAngle.
func (g *Game) animateMouth() {
	p := g.state.Player
	if p.MouthOpening {
		p.MouthAngle -= g.settings.MouthSpeed
		if p.MouthAngle < g.settings.MouthMaxAngle {
			p.MouthAngle = g.settings.MouthMaxAngle
			p.MouthOpening = false
		}
		return
	}
	p.MouthAngle += g.settings.MouthSpeed
	if p.MouthAngle > 0 {
		p.MouthAngle = 0
		p.MouthOpening = true
	}
}

// updateGhosts moves every ghost one step along its route. Ghosts are
// processed in slice order and commit their cell as they go, so a ghost
// sees the new cells of the ghosts updated before it.
func (g *Game) updateGhosts() {
	s := g.state
	m := s.Maze
	radius := g.settings.ghostRadius()

	for i, gh := range s.Ghosts {
		if s.Phase != PhasePlaying {
			return
		}
		gh.Moving = true
		startCell := m.CellOf(gh.Pos)
		gh.Cell = startCell

		if len(gh.Path) == 0 {
			gh.Path = g.plan(gh)
		}
		if next, ok := gh.NextStep(); ok && next == gh.Cell {
			gh.Path = gh.Path[1:]
		}
		next, ok := gh.NextStep()
		if !ok {
			// No route yet; hold position and retry next tick.
			continue
		}
		gh.Dir = steer(m, gh, next)

		speed := gh.Speed
		if s.Powered() {
			speed *= g.settings.GhostPoweredSpeed
		}
		target := advance(gh.Pos, gh.Dir, speed)

		if adj, near := approaching(m, &gh.Body, radius); near {
			if adj == s.Player.Cell {
				if g.ghostMeetsPlayer(gh) {
					continue
				}
				g.halt(gh)
				continue
			}
			if m.IsWall(adj) || g.ghostAt(adj, i) {
				g.halt(gh)
				continue
			}
		}

		gh.Pos = wrap(m, target, gh.Dir, radius)
		gh.Cell = m.CellOf(gh.Pos)
		if gh.Cell != startCell {
			gh.Path = g.plan(gh)
		}
	}
}

// plan searches a fresh route from the ghost to the player. While a power
// pellet is active the search runs reversed so ghosts drift away.
func (g *Game) plan(gh *entities.Ghost) []tm.Coord {
	s := g.state
	return g.finder.FindPath(gh.Cell, s.Player.Cell, s.Maze, true, s.Powered())
}

// halt stops a ghost for this tick and drops its route.
func (g *Game) halt(gh *entities.Ghost) {
	gh.Moving = false
	gh.ClearPath()
}

// ghostAt reports whether any ghost other than skip occupies c.
func (g *Game) ghostAt(c tm.Coord, skip int) bool {
	for j, other := range g.state.Ghosts {
		if j != skip && other.Cell == c {
			return true
		}
	}
	return false
}

// steer picks the direction toward next. A ghost keeps its heading until it
// has reached the centre of next on its travel axis, which lines it up with
// the corridor before it turns.
func steer(m *tm.Maze, gh *entities.Ghost, next tm.Coord) entities.Direction {
	if next == gh.Cell {
		return gh.Dir
	}
	centre := m.CellCenter(next)
	dx := next.X - gh.Cell.X
	dy := next.Y - gh.Cell.Y

	var want entities.Direction
	if abs(dx) > abs(dy) {
		want = entities.DirRight
		if dx < 0 {
			want = entities.DirLeft
		}
	} else {
		want = entities.DirDown
		if dy < 0 {
			want = entities.DirUp
		}
	}

	switch gh.Dir {
	case entities.DirNone:
		return want
	case entities.DirRight:
		if gh.Pos.X < centre.X {
			return gh.Dir
		}
	case entities.DirLeft:
		if gh.Pos.X > centre.X {
			return gh.Dir
		}
	case entities.DirUp:
		if gh.Pos.Y > centre.Y {
			return gh.Dir
		}
	case entities.DirDown:
		if gh.Pos.Y < centre.Y {
			return gh.Dir
		}
	}
	return want
}

// approaching returns the cell a body is about to enter. near is false
// while the body is further than radius from the edge it is heading for.
func approaching(m *tm.Maze, b *entities.Body, radius float64) (adj tm.Coord, near bool) {
	cs := float64(m.CellSize)
	c := b.Cell
	left := float64(c.X) * cs
	top := float64(c.Y) * cs
	switch b.Dir {
	case entities.DirRight:
		return c.Add(1, 0), b.Pos.X >= left+cs-radius
	case entities.DirLeft:
		return c.Add(-1, 0), b.Pos.X <= left+radius
	case entities.DirUp:
		return c.Add(0, -1), b.Pos.Y <= top+radius
	case entities.DirDown:
		return c.Add(0, 1), b.Pos.Y >= top+cs-radius
	}
	return c, false
}

func advance(p tm.Point, d entities.Direction, speed float64) tm.Point {
	dx, dy := entities.DirDelta(d)
	return tm.Point{X: p.X + float64(dx)*speed, Y: p.Y + float64(dy)*speed}
}

// wrap moves a body that crossed a maze edge to the opposite edge. Only the
// travel axis changes.
func wrap(m *tm.Maze, p tm.Point, d entities.Direction, radius float64) tm.Point {
	w, h := m.PixelSize()
	switch {
	case d == entities.DirRight && p.X+radius > w:
		p.X = radius
	case d == entities.DirLeft && p.X-radius < 0:
		p.X = w - radius
	case d == entities.DirUp && p.Y-radius < 0:
		p.Y = h - radius
	case d == entities.DirDown && p.Y+radius > h:
		p.Y = radius
	}
	return p
}

func abs(v int) int {
	return int(math.Abs(float64(v)))
}
