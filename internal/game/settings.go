package game

import "time"

// Messages are the overlay texts shown while the game is not playing.
type Messages struct {
	Intro    string
	Paused   string
	GameOver string
	GameWon  string
}

// Settings tunes the simulation. Speeds are pixels per tick.
type Settings struct {
	CellSize int

	PlayerSpeed   float64
	PlayerSize    float64
	MouthSpeed    float64
	MouthMaxAngle float64 // radians, negative: the widest the mouth opens
	StartingLives int

	GhostSpeed float64
	GhostSize  float64

	PelletSize      float64
	PowerPelletSize float64

	PelletPoints      int
	PowerPelletPoints int
	GhostPoints       int

	PowerDuration     time.Duration
	PowerSpeedBoost   float64
	GhostPoweredSpeed float64
	PowerWarning      time.Duration

	ExtraLifeEvery int
	ExtraLifeBonus int

	BlinkPeriod time.Duration

	Messages Messages
}

func DefaultSettings() Settings {
	return Settings{
		CellSize: 20,

		PlayerSpeed:   1.5,
		PlayerSize:    18,
		MouthSpeed:    0.1,
		MouthMaxAngle: -0.6,
		StartingLives: 2,

		GhostSpeed: 1,
		GhostSize:  20,

		PelletSize:      2,
		PowerPelletSize: 6,

		PelletPoints:      10,
		PowerPelletPoints: 50,
		GhostPoints:       200,

		PowerDuration:     10 * time.Second,
		PowerSpeedBoost:   1.5,
		GhostPoweredSpeed: 0.5,
		PowerWarning:      3 * time.Second,

		ExtraLifeEvery: 10000,
		ExtraLifeBonus: 100,

		BlinkPeriod: 500 * time.Millisecond,

		Messages: Messages{
			Intro:    "Welcome to Pathman! Press any key to start.",
			Paused:   "Paused. Press spacebar to continue.",
			GameOver: "Game over. Press any key to play again.",
			GameWon:  "You won! Press any key to play again.",
		},
	}
}

func (s Settings) playerRadius() float64 { return s.PlayerSize / 2 }
func (s Settings) ghostRadius() float64  { return s.GhostSize / 2 }
