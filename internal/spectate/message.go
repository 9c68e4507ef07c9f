package spectate

import (
	"encoding/json"

	"github.com/davidchappy/pathman/internal/entities"
	"github.com/davidchappy/pathman/internal/game"
	tm "github.com/davidchappy/pathman/internal/tilemap"
)

// Message is the envelope for everything sent to spectators.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	TypeMaze     = "maze"
	TypeSnapshot = "snapshot"
)

func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}

// MazeLayout is sent once to each spectator when it connects and again
// after a reset. Rows use the blueprint glyphs for walls and spawns.
type MazeLayout struct {
	Session  string   `json:"session"`
	Name     string   `json:"name"`
	CellSize int      `json:"cellSize"`
	Rows     []string `json:"rows"`
}

type Actor struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Col  int     `json:"col"`
	Row  int     `json:"row"`
	Dir  string  `json:"dir"`
	Move bool    `json:"moving"`
}

// Snapshot is the per-frame view of a session.
type Snapshot struct {
	Session      string  `json:"session"`
	Frame        uint64  `json:"frame"`
	Phase        string  `json:"phase"`
	Overlay      string  `json:"overlay,omitempty"`
	Score        int     `json:"score"`
	Lives        int     `json:"lives"`
	PowerMillis  int64   `json:"powerMs"`
	Player       Actor   `json:"player"`
	Ghosts       []Actor `json:"ghosts"`
	Pellets      int     `json:"pellets"`
	PowerPellets int     `json:"powerPellets"`
}

func actor(id string, b entities.Body) Actor {
	return Actor{
		ID:   id,
		X:    b.Pos.X,
		Y:    b.Pos.Y,
		Col:  b.Cell.X,
		Row:  b.Cell.Y,
		Dir:  b.Dir.String(),
		Move: b.Moving,
	}
}

// Capture copies what spectators need out of s.
func Capture(session string, frame uint64, s *game.State) Snapshot {
	snap := Snapshot{
		Session:      session,
		Frame:        frame,
		Phase:        s.Phase.String(),
		Overlay:      s.Overlay,
		Score:        s.Score,
		Lives:        s.Player.ExtraLives,
		PowerMillis:  s.PowerRemaining.Milliseconds(),
		Player:       actor("player", s.Player.Body),
		Ghosts:       make([]Actor, 0, len(s.Ghosts)),
		Pellets:      len(s.Pellets),
		PowerPellets: len(s.PowerPellets),
	}
	for _, gh := range s.Ghosts {
		snap.Ghosts = append(snap.Ghosts, actor(gh.ID, gh.Body))
	}
	return snap
}

// Layout renders the maze grid as blueprint text.
func Layout(session string, m *tm.Maze) MazeLayout {
	return MazeLayout{Session: session, Name: m.Name, CellSize: m.CellSize, Rows: m.Rows()}
}
