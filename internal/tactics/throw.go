package tactics

import (
	"fmt"

	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
)

// splashTotal sums splash damage over living enemies around a landing tile
// and counts how many are hit.
func splashTotal(enemies []model.AgentState, bx, by int) (damage, hit int) {
	for _, enemy := range enemies {
		if model.ManhattanDistance(model.Position{X: bx, Y: by}, enemy.Pos) <= 1 {
			damage += combat.SplashBaseDamage
			hit++
		}
	}
	return damage, hit
}

// splashesAlly reports whether a landing tile would hit a living controlled
// agent other than the thrower.
func splashesAlly(s *model.GameState, throwerID, bx, by int) bool {
	for _, ally := range s.Mine() {
		if ally.ID == throwerID {
			continue
		}
		if model.ManhattanDistance(model.Position{X: bx, Y: by}, ally.Pos) <= 1 {
			return true
		}
	}
	return false
}

// BestThrow returns the highest-damage bomb throw for the agent, or a
// zero-value Hunker when no clean landing tile exists. Landings that splash
// another controlled agent are never proposed.
func (g *Generator) BestThrow(s *model.GameState, agent model.AgentState) model.Decision {
	best := hunkerDecision(agent.ID, 0, "cannot throw")
	if agent.Cooldown > 0 || agent.Bombs <= 0 {
		return best
	}

	enemies := s.Enemies()
	bestX, bestY, bestDamage := -1, -1, 0

	for _, enemy := range enemies {
		if model.ManhattanDistance(agent.Pos, enemy.Pos) > combat.ThrowRange {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				bx := enemy.Pos.X + dx
				by := enemy.Pos.Y + dy
				if !s.Board.InBounds(bx, by) {
					continue
				}
				throwDist := model.ManhattanDistance(agent.Pos, model.Position{X: bx, Y: by})
				if throwDist > combat.ThrowRange {
					continue
				}
				if splashesAlly(s, agent.ID, bx, by) {
					continue
				}
				damage, _ := splashTotal(enemies, bx, by)
				if damage > bestDamage {
					bestDamage = damage
					bestX, bestY = bx, by
				}
			}
		}
	}

	if bestDamage == 0 {
		return best
	}

	value := float64(bestDamage) * 20.0
	_, hit := splashTotal(enemies, bestX, bestY)
	if hit > 1 {
		value += float64(hit) * 500.0
	}

	return model.Decision{
		AgentID:        agent.ID,
		Action:         model.Throw(bestX, bestY),
		ExpectedValue:  value,
		ExpectedDamage: bestDamage,
		Rationale:      fmt.Sprintf("bomb (%d,%d) hits %d enemies for %d", bestX, bestY, hit, bestDamage),
	}
}
