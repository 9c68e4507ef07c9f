package tilemap

import (
	"errors"
	"fmt"
	"math"
)

type Cell int

const (
	Empty Cell = iota
	Pellet
	PowerPellet
	WallHorizontal
	WallVertical
	WallCornerTopLeft
	WallCornerTopRight
	WallCornerBottomLeft
	WallCornerBottomRight
	PlayerSpawn
	GhostSpawn
)

// IsWall reports whether c is one of the six wall variants.
func (c Cell) IsWall() bool {
	return c >= WallHorizontal && c <= WallCornerBottomRight
}

func (c Cell) valid() bool {
	return c >= Empty && c <= GhostSpawn
}

var (
	ErrEmptyMaze            = errors.New("maze has no cells")
	ErrRaggedRows           = errors.New("maze rows differ in length")
	ErrUnknownCell          = errors.New("maze contains an unknown cell type")
	ErrNoPlayerSpawn        = errors.New("maze has no player spawn")
	ErrMultiplePlayerSpawns = errors.New("maze has more than one player spawn")
	ErrNoGhostSpawn         = errors.New("maze has no ghost spawn")
)

// Coord is a grid coordinate (column, row).
type Coord struct {
	X, Y int
}

func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Point is a position in continuous pixel space.
type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Blueprint is the authored form of a maze.
type Blueprint struct {
	Name  string
	Cells [][]Cell
}

// Maze is the grid used by the simulation. Cells never change after
// NewMaze; only Bounds moves when the viewport is resized.
type Maze struct {
	Name     string
	Width    int
	Height   int
	CellSize int
	Cells    [][]Cell
	Bounds   Rect
}

// Dimensions returns the pixel size of a blueprint laid out with cellSize.
func Dimensions(bp Blueprint, cellSize int) (width, height int) {
	if len(bp.Cells) == 0 {
		return 0, 0
	}
	return len(bp.Cells[0]) * cellSize, len(bp.Cells) * cellSize
}

// NewMaze validates bp and copies it into a Maze anchored at the origin.
func NewMaze(bp Blueprint, cellSize int) (*Maze, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size %d: must be positive", cellSize)
	}
	if err := Validate(bp); err != nil {
		return nil, fmt.Errorf("maze %q: %w", bp.Name, err)
	}
	cells := make([][]Cell, len(bp.Cells))
	for y, row := range bp.Cells {
		cells[y] = append([]Cell(nil), row...)
	}
	w, h := Dimensions(bp, cellSize)
	return &Maze{
		Name:     bp.Name,
		Width:    len(cells[0]),
		Height:   len(cells),
		CellSize: cellSize,
		Cells:    cells,
		Bounds:   Rect{Width: float64(w), Height: float64(h)},
	}, nil
}

// Validate checks that bp is rectangular, uses known cell types and has
// exactly one player spawn and at least one ghost spawn.
func Validate(bp Blueprint) error {
	if len(bp.Cells) == 0 || len(bp.Cells[0]) == 0 {
		return ErrEmptyMaze
	}
	width := len(bp.Cells[0])
	players, ghosts := 0, 0
	for y, row := range bp.Cells {
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrRaggedRows)
		}
		for x, c := range row {
			if !c.valid() {
				return fmt.Errorf("cell (%d,%d) = %d: %w", x, y, c, ErrUnknownCell)
			}
			switch c {
			case PlayerSpawn:
				players++
			case GhostSpawn:
				ghosts++
			}
		}
	}
	switch {
	case players == 0:
		return ErrNoPlayerSpawn
	case players > 1:
		return fmt.Errorf("%d spawns: %w", players, ErrMultiplePlayerSpawns)
	case ghosts == 0:
		return ErrNoGhostSpawn
	}
	return nil
}

// Size returns the grid size in cells.
func (m *Maze) Size() (w, h int) {
	return m.Width, m.Height
}

// PixelSize returns the maze size in pixels.
func (m *Maze) PixelSize() (w, h float64) {
	return float64(m.Width * m.CellSize), float64(m.Height * m.CellSize)
}

// At returns the cell at c. ok is false when c lies outside the grid.
func (m *Maze) At(c Coord) (cell Cell, ok bool) {
	if c.Y < 0 || c.Y >= m.Height || c.X < 0 || c.X >= m.Width {
		return Empty, false
	}
	return m.Cells[c.Y][c.X], true
}

// IsWall reports whether c holds a wall. Coordinates outside the grid are
// open so that entities can leave through the edges and wrap around.
func (m *Maze) IsWall(c Coord) bool {
	cell, ok := m.At(c)
	return ok && cell.IsWall()
}

// CellCenter returns the pixel centre of c.
func (m *Maze) CellCenter(c Coord) Point {
	half := float64(m.CellSize) / 2
	return Point{
		X: float64(c.X*m.CellSize) + half,
		Y: float64(c.Y*m.CellSize) + half,
	}
}

// CellOf returns the grid cell containing p.
func (m *Maze) CellOf(p Point) Coord {
	cs := float64(m.CellSize)
	return Coord{X: int(math.Floor(p.X / cs)), Y: int(math.Floor(p.Y / cs))}
}

// Recenter moves Bounds so the maze sits in the middle of a viewport of the
// given size. Width and Height are recomputed from the grid.
func (m *Maze) Recenter(viewWidth, viewHeight float64) {
	w, h := m.PixelSize()
	m.Bounds = Rect{
		X:      viewWidth/2 - w/2,
		Y:      viewHeight/2 - h/2,
		Width:  w,
		Height: h,
	}
}

// ToScreen translates a maze-space point by the current bounds offset.
func (m *Maze) ToScreen(p Point) Point {
	return Point{X: p.X + m.Bounds.X, Y: p.Y + m.Bounds.Y}
}

// Find returns every coordinate holding cell type c, row-major.
func (m *Maze) Find(c Cell) []Coord {
	var out []Coord
	for y, row := range m.Cells {
		for x, cell := range row {
			if cell == c {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}
