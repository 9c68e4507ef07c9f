package entities

import "github.com/davidchappy/pathman/internal/tilemap"

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func DirDelta(d Direction) (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Reverse returns the opposite direction; DirNone stays DirNone.
func (d Direction) Reverse() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

type Point = tilemap.Point

// Body is the geometry shared by everything that moves.
type Body struct {
	Pos    Point
	Cell   tilemap.Coord
	Dir    Direction
	Moving bool
	Start  Point
}

// Respawn puts the body back on its start point, at rest.
func (b *Body) Respawn(m *tilemap.Maze) {
	b.Pos = b.Start
	b.Cell = m.CellOf(b.Pos)
	b.Dir = DirNone
	b.Moving = false
}

type Player struct {
	Body
	MouthAngle   float64
	MouthOpening bool
	Speed        float64
	ExtraLives   int
}
