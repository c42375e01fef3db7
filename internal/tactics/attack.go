package tactics

import (
	"fmt"

	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
)

// rangeBand is a closed distance interval carrying a score bonus.
type rangeBand struct {
	min   int
	max   int
	bonus float64
}

// attackClassBonus rewards each class for attacking inside its preferred
// engagement band. Classes missing from the table get no bonus.
var attackClassBonus = map[model.AgentClass][]rangeBand{
	model.ClassSniper:    {{min: 4, max: 99, bonus: 1000}, {min: 6, max: 6, bonus: 500}},
	model.ClassGunner:    {{min: 0, max: 2, bonus: 500}},
	model.ClassAssault:   {{min: 0, max: 3, bonus: 600}},
	model.ClassBerserker: {{min: 0, max: 2, bonus: 800}},
}

func classAttackBonus(class model.AgentClass, distance int) float64 {
	total := 0.0
	for _, band := range attackClassBonus[class] {
		if distance >= band.min && distance <= band.max {
			total += band.bonus
		}
	}
	return total
}

// BestAttack returns the highest-value direct attack for the agent, or a
// zero-value Hunker when no target is reachable or the agent is on cooldown.
func (g *Generator) BestAttack(s *model.GameState, agent model.AgentState) model.Decision {
	best := hunkerDecision(agent.ID, 0, "cannot attack")
	if agent.Cooldown > 0 {
		return best
	}
	prof, ok := s.Profiles[agent.ID]
	if !ok {
		return best
	}

	for _, enemy := range s.Enemies() {
		d := model.ManhattanDistance(agent.Pos, enemy.Pos)
		base := combat.AttackDamage(prof.SoakingPower, d, prof.OptimalRange)
		if base == 0 {
			continue
		}
		dmg := int(float64(base) * combat.CoverModifier(s.Board, agent.Pos, enemy.Pos))
		if dmg <= 0 {
			continue
		}

		value := float64(dmg) * 150.0
		if enemy.Wetness+dmg >= 100 {
			value += 8000.0
		} else {
			value += float64(enemy.Wetness+dmg) * 80.0
		}
		value += classAttackBonus(prof.Class, d)
		if enemy.Wetness > 50 {
			value *= 1.5
		}
		if enemy.Wetness > 80 {
			value *= 2.0
		}

		if value > best.ExpectedValue {
			best = model.Decision{
				AgentID:         agent.ID,
				Action:          model.Attack(enemy.ID),
				ExpectedValue:   value,
				ExpectedDamage:  dmg,
				KillProbability: combat.KillProbability(enemy.Wetness, dmg),
				Rationale:       fmt.Sprintf("focus enemy %d for %d damage at distance %d", enemy.ID, dmg, d),
			}
		}
	}
	return best
}
