package engine

import (
	"fmt"

	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
)

// focusFireThreshold is the fraction of the planned value a focus action
// must beat to override the plan.
const focusFireThreshold = 0.8

// focusFire swaps the planned action for a concentrated strike on the shared
// priority target when the strike scores close enough to the plan. Only ready
// agents are overridden.
func (o *Orchestrator) focusFire(s *model.GameState, agent model.AgentState, targetID int, planned model.Decision) model.Decision {
	if targetID < 0 || agent.Cooldown != 0 {
		return planned
	}
	target := s.Agent(targetID)
	if target == nil || !target.Alive {
		return planned
	}
	profile, ok := s.Profiles[agent.ID]
	if !ok {
		return planned
	}

	var best model.Decision
	bestValue := -1.0

	dist := model.ManhattanDistance(agent.Pos, target.Pos)

	if dist > 0 && dist <= profile.OptimalRange {
		dmg := combat.AttackDamage(profile.SoakingPower, dist, profile.OptimalRange)
		dmg = int(float64(dmg) * combat.CoverModifier(s.Board, agent.Pos, target.Pos))
		if dmg > 0 {
			value := float64(dmg * 200)
			kill := combat.KillProbability(target.Wetness, dmg)
			if kill >= 1.0 {
				value += 10000.0
			} else {
				value += float64((target.Wetness + dmg) * 100)
			}
			if value > bestValue {
				bestValue = value
				best = model.Decision{
					AgentID:         agent.ID,
					Action:          model.Attack(targetID),
					ExpectedValue:   value,
					ExpectedDamage:  dmg,
					KillProbability: kill,
					Rationale:       fmt.Sprintf("focus attack on agent %d", targetID),
				}
			}
		}
	}

	if agent.Bombs > 0 && target.Wetness < 80 && dist <= combat.ThrowRange {
		value := float64(combat.SplashBaseDamage * 150)
		kill := combat.KillProbability(target.Wetness, combat.SplashBaseDamage)
		if kill >= 1.0 {
			value += 8000.0
		}
		if value > bestValue {
			bestValue = value
			best = model.Decision{
				AgentID:         agent.ID,
				Action:          model.Throw(target.Pos.X, target.Pos.Y),
				ExpectedValue:   value,
				ExpectedDamage:  combat.SplashBaseDamage,
				KillProbability: kill,
				Rationale:       fmt.Sprintf("focus bomb on agent %d", targetID),
			}
		}
	}

	if bestValue > 0 && bestValue > planned.ExpectedValue*focusFireThreshold {
		return best
	}
	return planned
}
