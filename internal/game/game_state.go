package game

import "time"

// updatePower counts the power pellet effect down and sets the player's
// speed for the next tick.
func (g *Game) updatePower(delta time.Duration) {
	s := g.state
	p := s.Player
	if s.PowerRemaining > 0 {
		s.PowerRemaining -= delta
	}
	if s.PowerRemaining > 0 {
		p.Speed = g.settings.PlayerSpeed * g.settings.PowerSpeedBoost
		return
	}
	s.PowerRemaining = 0
	p.Speed = g.settings.PlayerSpeed
}

// updatePhase ends the game once the maze is cleared and grants an extra
// life for every ExtraLifeEvery points.
func (g *Game) updatePhase() {
	s := g.state
	if len(s.Pellets) == 0 && len(s.PowerPellets) == 0 {
		g.setPhase(PhaseWon, g.settings.Messages.GameWon)
		return
	}
	g.grantExtraLife()
}

// grantExtraLife rewards each threshold once, however long the score
// stays on it.
func (g *Game) grantExtraLife() {
	s := g.state
	if g.settings.ExtraLifeEvery <= 0 {
		return
	}
	milestone := s.Score / g.settings.ExtraLifeEvery
	if milestone <= s.lifeMilestone {
		return
	}
	s.lifeMilestone = milestone
	s.Player.ExtraLives++
	s.Score += g.settings.ExtraLifeBonus
	g.log.Info("extra life", "lives", s.Player.ExtraLives, "score", s.Score)
}

// PowerWarning reports whether the power effect is about to run out.
func (s *State) PowerWarning(settings Settings) bool {
	return s.Powered() && s.PowerRemaining <= settings.PowerWarning
}
