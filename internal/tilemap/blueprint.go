package tilemap

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Glyphs understood by ParseBlueprint:
//
//	#  wall, shaped from its wall neighbours
//	-  horizontal wall       |  vertical wall
//	[  top-left corner       ]  top-right corner
//	{  bottom-left corner    }  bottom-right corner
//	.  pellet                o  power pellet
//	P  player spawn          G  ghost spawn
//	   (space) empty
var glyphs = map[byte]Cell{
	' ': Empty,
	'.': Pellet,
	'o': PowerPellet,
	'-': WallHorizontal,
	'|': WallVertical,
	'[': WallCornerTopLeft,
	']': WallCornerTopRight,
	'{': WallCornerBottomLeft,
	'}': WallCornerBottomRight,
	'P': PlayerSpawn,
	'G': GhostSpawn,
}

const autoWall = '#'

var defaultMaze = []string{
	"###################",
	"#........#........#",
	"#o##.###.#.###.##o#",
	"#.................#",
	"#.##.#.#####.#.##.#",
	"#....#...#...#....#",
	"####.###.#.###.####",
	"####.#.......#.####",
	"    ...#GGG#...    ",
	"####.#.#####.#.####",
	"####.#.......#.####",
	"####.#.#####.#.####",
	"#........#........#",
	"#.##.###.#.###.##.#",
	"#o.#.....P.....#.o#",
	"##.#.#.#####.#.#.##",
	"#....#...#...#....#",
	"#.######.#.######.#",
	"#.................#",
	"###################",
}

// DefaultBlueprint returns the built-in maze. Row 8 is open at both ends
// and wraps around.
func DefaultBlueprint() Blueprint {
	bp, err := ParseBlueprint("classic", defaultMaze)
	if err != nil {
		panic(fmt.Sprintf("default maze: %v", err))
	}
	return bp
}

// ParseBlueprint converts ASCII rows into a Blueprint. Rows are not
// validated beyond glyph recognition; NewMaze does that.
func ParseBlueprint(name string, lines []string) (Blueprint, error) {
	if len(lines) == 0 {
		return Blueprint{}, ErrEmptyMaze
	}
	cells := make([][]Cell, len(lines))
	for y, line := range lines {
		cells[y] = make([]Cell, len(line))
		for x := 0; x < len(line); x++ {
			ch := line[x]
			if ch == autoWall {
				cells[y][x] = shapeWall(lines, x, y)
				continue
			}
			c, ok := glyphs[ch]
			if !ok {
				return Blueprint{}, fmt.Errorf("row %d col %d: glyph %q: %w", y, x, ch, ErrUnknownCell)
			}
			cells[y][x] = c
		}
	}
	return Blueprint{Name: name, Cells: cells}, nil
}

func isWallGlyph(lines []string, x, y int) bool {
	if y < 0 || y >= len(lines) || x < 0 || x >= len(lines[y]) {
		return false
	}
	ch := lines[y][x]
	if ch == autoWall {
		return true
	}
	c, ok := glyphs[ch]
	return ok && c.IsWall()
}

// shapeWall picks the wall variant for an auto wall from the walls around it.
func shapeWall(lines []string, x, y int) Cell {
	left := isWallGlyph(lines, x-1, y)
	right := isWallGlyph(lines, x+1, y)
	up := isWallGlyph(lines, x, y-1)
	down := isWallGlyph(lines, x, y+1)
	switch {
	case right && down && !left && !up:
		return WallCornerTopLeft
	case left && down && !right && !up:
		return WallCornerTopRight
	case right && up && !left && !down:
		return WallCornerBottomLeft
	case left && up && !right && !down:
		return WallCornerBottomRight
	case (up || down) && !left && !right:
		return WallVertical
	default:
		return WallHorizontal
	}
}

type blueprintFile struct {
	Name  string   `json:"name"`
	Cells [][]Cell `json:"cells,omitempty"`
	Rows  []string `json:"rows,omitempty"`
}

// LoadBlueprint reads a maze from disk. JSON files may carry either numeric
// "cells" or ASCII "rows"; any other extension is read as ASCII rows.
func LoadBlueprint(path string) (Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blueprint{}, fmt.Errorf("read maze: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return decodeBlueprint(name, data)
	}
	return parseText(name, data)
}

func decodeBlueprint(name string, data []byte) (Blueprint, error) {
	var f blueprintFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Blueprint{}, fmt.Errorf("decode maze: %w", err)
	}
	if f.Name != "" {
		name = f.Name
	}
	switch {
	case len(f.Cells) > 0:
		return Blueprint{Name: name, Cells: f.Cells}, nil
	case len(f.Rows) > 0:
		return ParseBlueprint(name, f.Rows)
	default:
		return Blueprint{}, errors.Join(ErrEmptyMaze, errors.New("json needs \"cells\" or \"rows\""))
	}
}

func parseText(name string, data []byte) (Blueprint, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ";") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return Blueprint{}, fmt.Errorf("scan maze: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return ParseBlueprint(name, lines)
}

// Glyph returns the blueprint character for c. Walls come back in their
// explicit form, so Rows round-trips through ParseBlueprint.
func (c Cell) Glyph() byte {
	for g, cell := range glyphs {
		if cell == c {
			return g
		}
	}
	return '?'
}

// Rows renders the grid as blueprint text.
func (m *Maze) Rows() []string {
	rows := make([]string, len(m.Cells))
	for y, row := range m.Cells {
		b := make([]byte, len(row))
		for x, c := range row {
			b[x] = c.Glyph()
		}
		rows[y] = string(b)
	}
	return rows
}
