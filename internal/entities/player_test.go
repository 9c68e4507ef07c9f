package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidchappy/pathman/internal/tilemap"
)

func TestDirDelta(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		wantDX int
		wantDY int
	}{
		{name: "none", dir: DirNone, wantDX: 0, wantDY: 0},
		{name: "up", dir: DirUp, wantDX: 0, wantDY: -1},
		{name: "down", dir: DirDown, wantDX: 0, wantDY: 1},
		{name: "left", dir: DirLeft, wantDX: -1, wantDY: 0},
		{name: "right", dir: DirRight, wantDX: 1, wantDY: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dx, dy := DirDelta(tc.dir)
			if dx != tc.wantDX || dy != tc.wantDY {
				t.Fatalf("DirDelta(%v) = (%d,%d), want (%d,%d)", tc.dir, dx, dy, tc.wantDX, tc.wantDY)
			}
			assert.Equal(t, tc.name, tc.dir.String())
		})
	}
}

func TestReverse(t *testing.T) {
	assert.Equal(t, DirDown, DirUp.Reverse())
	assert.Equal(t, DirUp, DirDown.Reverse())
	assert.Equal(t, DirRight, DirLeft.Reverse())
	assert.Equal(t, DirLeft, DirRight.Reverse())
	assert.Equal(t, DirNone, DirNone.Reverse())
	assert.True(t, DirLeft.Horizontal())
	assert.False(t, DirUp.Horizontal())
}

func testMaze(t *testing.T, rows ...string) *tilemap.Maze {
	t.Helper()
	bp, err := tilemap.ParseBlueprint("test", rows)
	require.NoError(t, err)
	m, err := tilemap.NewMaze(bp, 20)
	require.NoError(t, err)
	return m
}

func TestFactoriesPlaceEntitiesAtCellCentres(t *testing.T) {
	m := testMaze(t,
		"#######",
		"#P.o.G#",
		"#..G..#",
		"#######",
	)

	pellets := CreatePellets(m)
	require.Len(t, pellets, 6)
	assert.Equal(t, Point{X: 50, Y: 30}, pellets[0].Pos)
	assert.Equal(t, tilemap.Coord{X: 2, Y: 1}, pellets[0].Cell)

	power := CreatePowerPellets(m)
	require.Len(t, power, 1)
	assert.Equal(t, Point{X: 70, Y: 30}, power[0].Pos)
	assert.True(t, power[0].FlashOn)

	ghosts := CreateGhosts(m, 1)
	require.Len(t, ghosts, 2)
	assert.Equal(t, "ghost-0", ghosts[0].ID)
	assert.Equal(t, "ghost-1", ghosts[1].ID)
	assert.Equal(t, Point{X: 110, Y: 30}, ghosts[0].Pos)
	assert.Equal(t, ghosts[0].Pos, ghosts[0].Start)
	assert.Empty(t, ghosts[0].Path)
	assert.Equal(t, DirNone, ghosts[0].Dir)
	assert.False(t, ghosts[0].Moving)

	p, err := CreatePlayer(m, 1.5, 2)
	require.NoError(t, err)
	assert.Equal(t, Point{X: 30, Y: 30}, p.Pos)
	assert.Equal(t, p.Pos, p.Start)
	assert.Equal(t, tilemap.Coord{X: 1, Y: 1}, p.Cell)
	assert.Equal(t, 2, p.ExtraLives)
	assert.Equal(t, 1.5, p.Speed)
}

func TestCreatePlayerWithoutSpawn(t *testing.T) {
	// Bypass NewMaze validation to exercise the guard.
	m := &tilemap.Maze{Width: 2, Height: 1, CellSize: 20, Cells: [][]tilemap.Cell{{tilemap.Pellet, tilemap.GhostSpawn}}}
	_, err := CreatePlayer(m, 1, 0)
	assert.ErrorIs(t, err, ErrNoSpawn)
}

func TestRespawn(t *testing.T) {
	m := testMaze(t, "P...G")
	p, err := CreatePlayer(m, 1, 0)
	require.NoError(t, err)

	p.Pos = Point{X: 65, Y: 10}
	p.Cell = tilemap.Coord{X: 3}
	p.Dir = DirRight
	p.Moving = true
	p.Respawn(m)

	assert.Equal(t, p.Start, p.Pos)
	assert.Equal(t, tilemap.Coord{}, p.Cell)
	assert.Equal(t, DirNone, p.Dir)
	assert.False(t, p.Moving)
}

func TestGhostNextStep(t *testing.T) {
	g := &Ghost{}
	_, ok := g.NextStep()
	assert.False(t, ok)

	g.Path = []tilemap.Coord{{X: 1}, {X: 2}}
	next, ok := g.NextStep()
	assert.True(t, ok)
	assert.Equal(t, tilemap.Coord{X: 1}, next)

	g.ClearPath()
	assert.Empty(t, g.Path)
}
