package tactics

import (
	"fmt"

	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
)

// BestCompound evaluates move+attack and move+throw combinations from
// destination tiles up to two steps away, preferring tiles that close on the
// nearest enemy. Returns a zero-value Hunker when no combination beats it.
func (g *Generator) BestCompound(s *model.GameState, agent model.AgentState) model.Decision {
	best := hunkerDecision(agent.ID, 0, "no compound available")
	if agent.Cooldown > 0 {
		return best
	}
	prof, ok := s.Profiles[agent.ID]
	if !ok {
		return best
	}

	enemies := s.Enemies()
	target, minDist := closestEnemy(s, agent.Pos)
	destinations := compoundDestinations(s, agent, target, minDist)

	for _, dest := range destinations {
		// attack from the new position
		for _, enemy := range enemies {
			d := model.ManhattanDistance(dest, enemy.Pos)
			base := combat.AttackDamage(prof.SoakingPower, d, prof.OptimalRange)
			if base == 0 {
				continue
			}
			dmg := int(float64(base) * combat.CoverModifier(s.Board, dest, enemy.Pos))
			if dmg <= 0 {
				continue
			}

			value := float64(dmg) * 250.0
			if enemy.Wetness+dmg >= 100 {
				value += 15000.0
			} else {
				value += float64(enemy.Wetness+dmg) * 150.0
			}
			if d < model.ManhattanDistance(agent.Pos, enemy.Pos) {
				value += 2000.0
			}

			if value > best.ExpectedValue {
				best = model.Decision{
					AgentID:         agent.ID,
					Action:          model.MoveAttack(dest.X, dest.Y, enemy.ID),
					ExpectedValue:   value,
					ExpectedDamage:  dmg,
					KillProbability: combat.KillProbability(enemy.Wetness, dmg),
					Rationale:       fmt.Sprintf("advance to (%d,%d) then attack %d for %d", dest.X, dest.Y, enemy.ID, dmg),
				}
			}
		}

		// throw from the new position
		if agent.Bombs > 0 && agent.Wetness < 80 {
			if d := g.bestThrowFrom(s, agent, dest, enemies); d.ExpectedValue > best.ExpectedValue {
				best = d
			}
		}
	}

	return best
}

// compoundDestinations enumerates candidate destination tiles, closing tiles
// first with open terrain preferred over cover, falling back to the 8
// neighbors when no closing tile exists.
func compoundDestinations(s *model.GameState, agent model.AgentState, target *model.AgentState, minDist int) []model.Position {
	var preferred, fallback []model.Position

	if target != nil {
		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx := agent.Pos.X + dx
				ny := agent.Pos.Y + dy
				if !s.Board.InBounds(nx, ny) || s.OccupiedByOther(nx, ny, agent.ID) {
					continue
				}
				if model.ManhattanDistance(model.Position{X: nx, Y: ny}, target.Pos) >= minDist {
					continue
				}
				if s.Board.IsCover(nx, ny) {
					fallback = append(fallback, model.Position{X: nx, Y: ny})
				} else {
					preferred = append(preferred, model.Position{X: nx, Y: ny})
				}
			}
		}
	}
	if len(preferred) == 0 && len(fallback) == 0 {
		for _, step := range neighbor8 {
			nx := agent.Pos.X + step[0]
			ny := agent.Pos.Y + step[1]
			if !s.Board.InBounds(nx, ny) || s.OccupiedByOther(nx, ny, agent.ID) {
				continue
			}
			if s.Board.TileAt(nx, ny) == model.TileEmpty {
				preferred = append(preferred, model.Position{X: nx, Y: ny})
			} else {
				fallback = append(fallback, model.Position{X: nx, Y: ny})
			}
		}
	}
	return append(preferred, fallback...)
}

// bestThrowFrom scores bomb landings reachable from a prospective destination,
// accounting for splash onto the thrower's own landing position.
func (g *Generator) bestThrowFrom(s *model.GameState, agent model.AgentState, dest model.Position, enemies []model.AgentState) model.Decision {
	best := hunkerDecision(agent.ID, 0, "")

	for _, targetEnemy := range enemies {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				bx := targetEnemy.Pos.X + dx
				by := targetEnemy.Pos.Y + dy
				if !s.Board.InBounds(bx, by) {
					continue
				}
				if model.ManhattanDistance(dest, model.Position{X: bx, Y: by}) > combat.ThrowRange {
					continue
				}
				if splashesAlly(s, agent.ID, bx, by) {
					continue
				}

				total, hit := splashTotal(enemies, bx, by)
				if total == 0 {
					continue
				}

				selfDamage := 0
				if model.ManhattanDistance(dest, model.Position{X: bx, Y: by}) <= 1 {
					selfDamage = combat.SplashBaseDamage
					if agent.Wetness > 70 {
						selfDamage = combat.SplashBaseDamage / 2
					}
				}
				if float64(total) <= float64(selfDamage)*1.2 {
					continue
				}

				value := float64(total)*200.0 - float64(selfDamage)*100.0
				if hit > 1 {
					value += float64(hit) * 4000.0
				}
				oldDist := model.ManhattanDistance(agent.Pos, targetEnemy.Pos)
				newDist := model.ManhattanDistance(dest, targetEnemy.Pos)
				if newDist < oldDist {
					value += 1500.0
				}
				if selfDamage == 0 {
					value += 800.0
				}

				if value > best.ExpectedValue {
					best = model.Decision{
						AgentID:        agent.ID,
						Action:         model.MoveThrow(dest.X, dest.Y, bx, by),
						ExpectedValue:  value,
						ExpectedDamage: total,
						Rationale:      fmt.Sprintf("advance to (%d,%d) then bomb (%d,%d) hitting %d", dest.X, dest.Y, bx, by, hit),
					}
				}
			}
		}
	}
	return best
}
