package entities

import (
	"errors"
	"fmt"

	"github.com/davidchappy/pathman/internal/tilemap"
)

var ErrNoSpawn = errors.New("maze has no player spawn")

// CreatePellets places one pellet at the centre of every pellet cell.
func CreatePellets(m *tilemap.Maze) []Pellet {
	cells := m.Find(tilemap.Pellet)
	out := make([]Pellet, 0, len(cells))
	for _, c := range cells {
		out = append(out, Pellet{Pos: m.CellCenter(c), Cell: c})
	}
	return out
}

// CreatePowerPellets places a lit power pellet on every power pellet cell.
func CreatePowerPellets(m *tilemap.Maze) []PowerPellet {
	cells := m.Find(tilemap.PowerPellet)
	out := make([]PowerPellet, 0, len(cells))
	for _, c := range cells {
		out = append(out, PowerPellet{
			Pellet:  Pellet{Pos: m.CellCenter(c), Cell: c},
			FlashOn: true,
		})
	}
	return out
}

// CreateGhosts spawns a ghost on every ghost spawn cell with ids ghost-0,
// ghost-1, ... in row-major order.
func CreateGhosts(m *tilemap.Maze, speed float64) []*Ghost {
	cells := m.Find(tilemap.GhostSpawn)
	out := make([]*Ghost, 0, len(cells))
	for i, c := range cells {
		p := m.CellCenter(c)
		out = append(out, &Ghost{
			Body:  Body{Pos: p, Cell: c, Start: p},
			ID:    fmt.Sprintf("ghost-%d", i),
			Speed: speed,
		})
	}
	return out
}

// CreatePlayer spawns the player on the first player spawn cell.
func CreatePlayer(m *tilemap.Maze, speed float64, lives int) (*Player, error) {
	cells := m.Find(tilemap.PlayerSpawn)
	if len(cells) == 0 {
		return nil, ErrNoSpawn
	}
	p := m.CellCenter(cells[0])
	return &Player{
		Body:       Body{Pos: p, Cell: cells[0], Start: p},
		Speed:      speed,
		ExtraLives: lives,
	}, nil
}
