package search

import "github.com/razv0n/soakbot/internal/model"

// wipeoutScore is the fixed reward or penalty when a side is eliminated.
const wipeoutScore = 10000.0

// evaluate scores a simulated state from the controlled side's perspective:
// wipeout dominates; otherwise a weighted blend of health, living-agent and
// bomb differentials, a positional in-range term, and territory control.
func evaluate(s *model.GameState) float64 {
	myAlive, enemyAlive, myHealth, enemyHealth := s.TeamTotals()
	if enemyAlive == 0 && myAlive > 0 {
		return wipeoutScore
	}
	if myAlive == 0 && enemyAlive > 0 {
		return -wipeoutScore
	}

	myBombs, enemyBombs := 0, 0
	for _, a := range s.Agents {
		if !a.Alive {
			continue
		}
		p, ok := s.Profiles[a.ID]
		if !ok {
			continue
		}
		if p.Owner == s.MyID {
			myBombs += a.Bombs
		} else {
			enemyBombs += a.Bombs
		}
	}

	score := float64(myHealth-enemyHealth) * 5.0
	score += float64(myAlive-enemyAlive) * 500.0
	score += float64(myBombs-enemyBombs) * 300.0

	enemies := s.Enemies()
	for _, a := range s.Mine() {
		p, ok := s.Profiles[a.ID]
		if !ok {
			continue
		}
		minDist := int(^uint(0) >> 1)
		for _, enemy := range enemies {
			if d := model.ManhattanDistance(a.Pos, enemy.Pos); d < minDist {
				minDist = d
			}
		}
		if minDist <= p.OptimalRange {
			score += 200.0
		}
		if minDist <= 2 {
			score += 100.0
		}
	}

	mine, theirs := territoryControl(s)
	score += float64(mine-theirs) * 2.0

	return score
}

// territoryControl counts tiles nearer to each side's agents. Agents at 50
// wetness or more project at double effective distance; dead agents project
// nothing.
func territoryControl(s *model.GameState) (mine, theirs int) {
	myAgents := s.Mine()
	enemyAgents := s.Enemies()
	if len(myAgents) == 0 && len(enemyAgents) == 0 {
		return 0, 0
	}

	for y := 0; y < s.Board.Height; y++ {
		for x := 0; x < s.Board.Width; x++ {
			tile := model.Position{X: x, Y: y}
			myBest := effectiveDistance(myAgents, tile)
			enemyBest := effectiveDistance(enemyAgents, tile)
			if myBest < enemyBest {
				mine++
			} else if enemyBest < myBest {
				theirs++
			}
		}
	}
	return mine, theirs
}

func effectiveDistance(agents []model.AgentState, tile model.Position) int {
	best := int(^uint(0) >> 2)
	for _, a := range agents {
		d := model.ManhattanDistance(a.Pos, tile)
		if a.Wetness >= 50 {
			d *= 2
		}
		if d < best {
			best = d
		}
	}
	return best
}
