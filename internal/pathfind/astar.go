// Package pathfind implements the grid A* search ghosts use to chase the
// player.
package pathfind

import (
	"math/rand"
	"slices"

	"github.com/davidchappy/pathman/internal/tilemap"
)

// Grid is the walkable surface searched by FindPath.
type Grid interface {
	Size() (w, h int)
	IsWall(c tilemap.Coord) bool
}

// Expansion order before shuffling: up, right, down, left.
var steps = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

type node struct {
	at     tilemap.Coord
	g, h   int
	parent int
}

func (n node) f() int { return n.g + n.h }

// Finder runs searches. The random source shuffles neighbour order; seed it
// for reproducible routes.
type Finder struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Finder {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Finder{rng: rng}
}

// FindPath searches from one cell to another over the 4-connected grid.
// The result excludes from, ends at to and is ordered nearest first. It is
// empty when to cannot be reached, when either end is a wall or outside
// the grid, or when from == to.
//
// With reversed set the open set yields the node with the largest f cost
// (ties: largest h) instead of the smallest, so the route wanders away from
// the target before closing in.
func (f *Finder) FindPath(from, to tilemap.Coord, grid Grid, randomize, reversed bool) []tilemap.Coord {
	w, h := grid.Size()
	inside := func(c tilemap.Coord) bool {
		return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
	}
	if from == to || !inside(from) || !inside(to) || grid.IsWall(from) || grid.IsWall(to) {
		return nil
	}

	// Arena: nodes reference their parent by index. index maps a cell to its
	// node, -1 when undiscovered.
	nodes := make([]node, 0, w*h/4+1)
	index := make([]int, w*h)
	for i := range index {
		index[i] = -1
	}
	closed := make([]bool, w*h)
	key := func(c tilemap.Coord) int { return c.Y*w + c.X }

	nodes = append(nodes, node{at: from, h: manhattan(from, to), parent: -1})
	index[key(from)] = 0
	open := []int{0}

	var order [4]int
	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if better(nodes[open[i]], nodes[open[best]], reversed) {
				best = i
			}
		}
		cur := open[best]
		open = slices.Delete(open, best, best+1)
		closed[key(nodes[cur].at)] = true

		if nodes[cur].at == to {
			return trace(nodes, cur)
		}

		order = [4]int{0, 1, 2, 3}
		if randomize {
			f.shuffle(order[:])
		}
		for _, s := range order {
			next := nodes[cur].at.Add(steps[s][0], steps[s][1])
			if !inside(next) || grid.IsWall(next) || closed[key(next)] {
				continue
			}
			g := nodes[cur].g + 1
			if i := index[key(next)]; i >= 0 {
				if g < nodes[i].g {
					nodes[i].g = g
					nodes[i].parent = cur
				}
				continue
			}
			nodes = append(nodes, node{at: next, g: g, h: manhattan(next, to), parent: cur})
			index[key(next)] = len(nodes) - 1
			open = append(open, len(nodes)-1)
		}
	}
	return nil
}

// better reports whether a should be expanded before b.
func better(a, b node, reversed bool) bool {
	if reversed {
		return a.f() > b.f() || (a.f() == b.f() && a.h > b.h)
	}
	return a.f() < b.f() || (a.f() == b.f() && a.h < b.h)
}

// shuffle is a Fisher–Yates shuffle driven by the finder's source.
func (f *Finder) shuffle(s []int) {
	for i := len(s) - 1; i > 0; i-- {
		j := f.rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func trace(nodes []node, end int) []tilemap.Coord {
	var path []tilemap.Coord
	for i := end; nodes[i].parent >= 0; i = nodes[i].parent {
		path = append(path, nodes[i].at)
	}
	slices.Reverse(path)
	return path
}

func manhattan(a, b tilemap.Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
