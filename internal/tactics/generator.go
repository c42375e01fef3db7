// Package tactics produces scored candidate decisions for a single agent:
// attacks, bomb throws, movement, compound move+attack/throw, cover seeking
// and kiting. Every generator is side-effect free; the orchestrator and the
// search engine combine their outputs.
package tactics

import (
	"fmt"

	"github.com/razv0n/soakbot/internal/model"
)

// Generator produces candidate decisions. WetnessSlows mirrors the movement
// cost feature flag.
type Generator struct {
	WetnessSlows bool
}

// New returns a Generator with the given movement cost rule.
func New(wetnessSlows bool) *Generator {
	return &Generator{WetnessSlows: wetnessSlows}
}

func hunkerDecision(agentID int, value float64, rationale string) model.Decision {
	return model.Decision{
		AgentID:       agentID,
		Action:        model.Hunker(),
		ExpectedValue: value,
		Rationale:     rationale,
	}
}

// closestEnemy returns the nearest living enemy to the given position, or nil.
func closestEnemy(s *model.GameState, pos model.Position) (*model.AgentState, int) {
	enemies := s.Enemies()
	var best *model.AgentState
	bestDist := int(^uint(0) >> 1)
	for i := range enemies {
		d := model.ManhattanDistance(pos, enemies[i].Pos)
		if d < bestDist {
			bestDist = d
			best = &enemies[i]
		}
	}
	return best, bestDist
}

// Decide runs the full heuristic pipeline for one agent: gather all candidate
// families, apply the adversary-penalty adjustment, then apply the bomb
// urgency override for wounded bomb carriers.
func (g *Generator) Decide(s *model.GameState, agent model.AgentState) model.Decision {
	criticalUrgency := agent.Health() <= 40 && agent.Bombs > 0 && agent.Cooldown == 0

	bestAttack := g.BestAttack(s, agent)
	bestThrow := g.BestThrow(s, agent)
	if criticalUrgency && bestThrow.Action.Kind == model.ActionThrow {
		bestThrow.ExpectedValue *= 5.0
		bestThrow.Rationale = "critical bomb: " + bestThrow.Rationale
	}

	options := []model.Decision{
		bestAttack,
		bestThrow,
		g.BestCompound(s, agent),
		g.BestTacticalMove(s, agent),
		g.CoverMove(s, agent),
		g.KitingMove(s, agent),
	}
	options = append(options, g.SearchMoves(s, agent)...)

	optimal := g.AdjustForAdversary(s, agent, options)

	// spend bombs before going down
	if agent.Bombs > 0 && agent.Health() <= 50 && bestThrow.Action.Kind == model.ActionThrow {
		if bestThrow.ExpectedValue > optimal.ExpectedValue*0.5 {
			optimal = bestThrow
		}
	}

	return optimal
}

// AdjustForAdversary discounts each option by the opponent's expected
// retaliation pressure against the post-move position and returns the best
// surviving option. If nothing stays positive the agent hunkers.
func (g *Generator) AdjustForAdversary(s *model.GameState, agent model.AgentState, options []model.Decision) model.Decision {
	best := hunkerDecision(agent.ID, -1000, "")
	enemies := s.Enemies()

	for _, option := range options {
		total := option.ExpectedValue
		future := option.Action.Destination(agent.Pos)

		for sim := 0; sim < 10; sim++ {
			penalty := 0.0
			for _, enemy := range enemies {
				d := model.ManhattanDistance(future, enemy.Pos)
				if d <= 4 {
					penalty += 100.0
				}
				if d <= 2 {
					penalty += 200.0
				}
			}
			total -= penalty * 0.3
		}

		if total > best.ExpectedValue {
			best = option
			best.ExpectedValue = total
		}
	}

	if best.ExpectedValue < 0 {
		return hunkerDecision(agent.ID, 50, "retaliation risk too high")
	}
	return best
}

// Candidates returns the realizable candidate set used to size search tree
// children: best attack and throw when available, directed movement options,
// and a hunker fallback. With no living enemies only Hunker is returned.
func (g *Generator) Candidates(s *model.GameState, agent model.AgentState) []model.Decision {
	if !agent.Alive {
		return nil
	}
	if len(s.Enemies()) == 0 {
		return []model.Decision{hunkerDecision(agent.ID, 200, "no enemies left")}
	}

	var out []model.Decision
	if a := g.BestAttack(s, agent); a.Action.Kind == model.ActionAttack {
		out = append(out, a)
	}
	if t := g.BestThrow(s, agent); t.Action.Kind == model.ActionThrow {
		out = append(out, t)
	}
	out = append(out, g.SearchMoves(s, agent)...)
	out = append(out, hunkerDecision(agent.ID, 100, "hold position"))
	return out
}

func moveRationale(x, y int, value float64) string {
	return fmt.Sprintf("advance to (%d,%d) value=%d", x, y, int(value))
}
