package entities

import "github.com/davidchappy/pathman/internal/tilemap"

type Ghost struct {
	Body
	ID    string
	Speed float64
	// Path holds the remaining steps toward the player, nearest first.
	Path []tilemap.Coord
}

// NextStep returns the head of the path.
func (g *Ghost) NextStep() (tilemap.Coord, bool) {
	if len(g.Path) == 0 {
		return tilemap.Coord{}, false
	}
	return g.Path[0], true
}

func (g *Ghost) ClearPath() {
	g.Path = nil
}

type Pellet struct {
	Pos  Point
	Cell tilemap.Coord
}

type PowerPellet struct {
	Pellet
	FlashOn bool
}
