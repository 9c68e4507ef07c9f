package game

import (
	"math"

	"github.com/davidchappy/pathman/internal/entities"
)

// handlePelletCollision removes every pellet the player overlaps and scores
// it. A power pellet also restarts the power timer at its full duration.
func (g *Game) handlePelletCollision() {
	s := g.state
	p := s.Player.Pos
	radius := g.settings.playerRadius()

	kept := s.Pellets[:0]
	for _, pel := range s.Pellets {
		if math.Hypot(p.X-pel.Pos.X, p.Y-pel.Pos.Y) < radius+g.settings.PelletSize {
			s.Score += g.settings.PelletPoints
			continue
		}
		kept = append(kept, pel)
	}
	s.Pellets = kept

	keptPower := s.PowerPellets[:0]
	for _, pel := range s.PowerPellets {
		if math.Hypot(p.X-pel.Pos.X, p.Y-pel.Pos.Y) < radius+g.settings.PowerPelletSize {
			s.Score += g.settings.PowerPelletPoints
			s.PowerRemaining = g.settings.PowerDuration
			g.log.Debug("power pellet eaten", "cell", pel.Cell, "score", s.Score)
			continue
		}
		keptPower = append(keptPower, pel)
	}
	s.PowerPellets = keptPower

	on := g.blinkOn()
	for i := range s.PowerPellets {
		s.PowerPellets[i].FlashOn = on
	}
}

// blinkOn is true for the first half of every blink period.
func (g *Game) blinkOn() bool {
	period := g.settings.BlinkPeriod
	if period <= 0 {
		return true
	}
	return g.state.Elapsed%period < period/2
}

// ghostMeetsPlayer resolves a ghost stepping into the player's cell. It
// returns true when the ghost was eaten.
func (g *Game) ghostMeetsPlayer(gh *entities.Ghost) bool {
	s := g.state
	if s.Powered() {
		gh.Respawn(s.Maze)
		gh.ClearPath()
		s.Score += g.settings.GhostPoints
		g.log.Info("ghost eaten", "ghost", gh.ID, "score", s.Score)
		return true
	}
	g.loseLife(gh)
	return false
}

// loseLife costs the player a life, or ends the game when none are left.
// Ghosts stay where they are.
func (g *Game) loseLife(by *entities.Ghost) {
	s := g.state
	p := s.Player
	if p.ExtraLives > 0 {
		p.ExtraLives--
		p.Respawn(s.Maze)
		g.log.Info("life lost", "ghost", by.ID, "lives", p.ExtraLives, "score", s.Score)
		return
	}
	g.log.Info("caught with no lives left", "ghost", by.ID, "score", s.Score)
	g.setPhase(PhaseOver, g.settings.Messages.GameOver)
}
