package tactics

import (
	"fmt"
	"math"

	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
	"github.com/razv0n/soakbot/internal/util"
)

// neighbor8 is the 8-connected step set, clockwise from east.
var neighbor8 = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// moveClassBonus rewards each class for ending a step inside its preferred
// engagement band relative to an enemy.
var moveClassBonus = map[model.AgentClass]rangeBand{
	model.ClassSniper:    {min: 4, max: 6, bonus: 700},
	model.ClassBomber:    {min: 0, max: 4, bonus: 600},
	model.ClassBerserker: {min: 0, max: 2, bonus: 800},
	model.ClassGunner:    {min: 0, max: 4, bonus: 400},
	model.ClassAssault:   {min: 0, max: 4, bonus: 400},
}

// movementCap keeps movement scores strictly below the minimum meaningful
// attack score so movement never dominates an available attack.
const movementCap = 1500.0

// BestTacticalMove scores the 8 adjacent tiles and returns the best single
// step, or a zero-value Hunker when nothing improves the position.
func (g *Generator) BestTacticalMove(s *model.GameState, agent model.AgentState) model.Decision {
	best := hunkerDecision(agent.ID, 0, "no useful step")
	prof, ok := s.Profiles[agent.ID]
	if !ok {
		return best
	}

	for _, step := range neighbor8 {
		nx := agent.Pos.X + step[0]
		ny := agent.Pos.Y + step[1]
		if !s.Board.InBounds(nx, ny) || s.OccupiedByOther(nx, ny, agent.ID) {
			continue
		}

		value := 150.0
		cost := combat.MovementCost(agent.Wetness, g.WetnessSlows)
		if cost > 1 {
			value -= float64(cost-1) * 50.0
		}

		for _, enemy := range s.Enemies() {
			cur := model.ManhattanDistance(agent.Pos, enemy.Pos)
			next := model.ManhattanDistance(model.Position{X: nx, Y: ny}, enemy.Pos)

			if next <= prof.OptimalRange && cur > prof.OptimalRange {
				value += 1000.0
			}
			if next <= prof.OptimalRange {
				value += 500.0
			}
			if band, ok := moveClassBonus[prof.Class]; ok && next >= band.min && next <= band.max {
				value += band.bonus
			}
			if enemy.Wetness > 50 && next < cur {
				value += 300.0
			}
		}

		if value > movementCap {
			value = movementCap
		}
		if value > best.ExpectedValue {
			best = model.Decision{
				AgentID:       agent.ID,
				Action:        model.Move(nx, ny),
				ExpectedValue: value,
				Rationale:     moveRationale(nx, ny, value),
			}
		}
	}
	return best
}

// threatReport summarizes enemy pressure on one agent.
type threatReport struct {
	immediate       int
	damagePotential int
	underBombThreat bool
}

func assessThreats(s *model.GameState, agent model.AgentState) threatReport {
	var r threatReport
	for _, enemy := range s.Enemies() {
		d := model.ManhattanDistance(agent.Pos, enemy.Pos)
		if d <= 4 {
			r.immediate++
			r.damagePotential += 20
		}
		if enemy.Bombs > 0 && d <= 4 {
			r.damagePotential += 30
			r.underBombThreat = true
		}
	}
	return r
}

// CoverMove proposes a move to the nearest unoccupied cover tile within two
// steps when the threat rules fire, with a flat high-priority value.
// Returns a zero-value Hunker when no rule triggers or no tile is free.
func (g *Generator) CoverMove(s *model.GameState, agent model.AgentState) model.Decision {
	none := hunkerDecision(agent.ID, 0, "no cover needed")

	threats := assessThreats(s, agent)
	mine := s.Mine()
	enemies := s.Enemies()

	var reason string
	switch {
	case agent.Health() <= 50 && threats.immediate >= 2:
		reason = "low health with multiple threats"
	case threats.damagePotential >= 60:
		reason = "heavy incoming fire"
	case len(enemies) > len(mine)+1:
		reason = "outnumbered"
	case agent.Health() <= 70 && threats.underBombThreat:
		reason = "wounded under bomb threat"
	default:
		return none
	}

	bestDist := int(^uint(0) >> 1)
	bestX, bestY := -1, -1
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			cx := agent.Pos.X + dx
			cy := agent.Pos.Y + dy
			if !s.Board.IsCover(cx, cy) || s.OccupiedByOther(cx, cy, agent.ID) {
				continue
			}
			d := model.ManhattanDistance(agent.Pos, model.Position{X: cx, Y: cy})
			if d < bestDist {
				bestDist = d
				bestX, bestY = cx, cy
			}
		}
	}
	if bestX == -1 {
		return none
	}

	return model.Decision{
		AgentID:       agent.ID,
		Action:        model.Move(bestX, bestY),
		ExpectedValue: 3000.0,
		Rationale:     fmt.Sprintf("seek cover at (%d,%d): %s", bestX, bestY, reason),
	}
}

// KitingMove proposes a retreat for snipers lacking team advantage: move to a
// fixed preferred distance from the nearest enemy along the away vector.
// Non-sniper agents and confident snipers get a zero-value Hunker.
func (g *Generator) KitingMove(s *model.GameState, agent model.AgentState) model.Decision {
	none := hunkerDecision(agent.ID, 0, "no kiting")

	prof, ok := s.Profiles[agent.ID]
	if !ok || prof.Class != model.ClassSniper {
		return none
	}

	myAlive, enemyAlive, myHealth, enemyHealth := s.TeamTotals()
	bombersNearby := 0
	for _, enemy := range s.Enemies() {
		if enemy.Bombs > 0 && model.ManhattanDistance(agent.Pos, enemy.Pos) <= 6 {
			bombersNearby++
		}
	}

	teamAdvantage := myHealth >= enemyHealth && myAlive >= enemyAlive
	bomberThreat := bombersNearby > 0
	keepDistance := (!teamAdvantage && (agent.Health() <= 60 || bomberThreat)) ||
		(bomberThreat && agent.Health() <= 80)
	if !keepDistance {
		return none
	}

	enemy, _ := closestEnemy(s, agent.Pos)
	if enemy == nil {
		return none
	}

	const preferredDistance = 5
	dx := float64(agent.Pos.X - enemy.Pos.X)
	dy := float64(agent.Pos.Y - enemy.Pos.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return none
	}

	tx := enemy.Pos.X + int(dx/length*preferredDistance)
	ty := enemy.Pos.Y + int(dy/length*preferredDistance)
	tx = util.Clamp(tx, 0, s.Board.Width-1)
	ty = util.Clamp(ty, 0, s.Board.Height-1)
	if s.OccupiedByOther(tx, ty, agent.ID) {
		return none
	}

	return model.Decision{
		AgentID:       agent.ID,
		Action:        model.Move(tx, ty),
		ExpectedValue: 2500.0,
		Rationale:     fmt.Sprintf("sniper retreat to (%d,%d)", tx, ty),
	}
}

// SearchMoves generates the directed movement candidates used both by the
// heuristic pipeline and as search tree children: the 8 neighbors plus
// two-step extensions toward the nearest enemy, scored for closing distance
// and range fit. Degrades to a lone Hunker when every tile is blocked.
func (g *Generator) SearchMoves(s *model.GameState, agent model.AgentState) []model.Decision {
	prof, hasProf := s.Profiles[agent.ID]
	target, _ := closestEnemy(s, agent.Pos)

	var candidates []model.Position
	for _, step := range neighbor8 {
		nx := agent.Pos.X + step[0]
		ny := agent.Pos.Y + step[1]
		if s.Board.InBounds(nx, ny) {
			candidates = append(candidates, model.Position{X: nx, Y: ny})
		}
	}
	if target != nil {
		for stepLen := 1; stepLen <= 2; stepLen++ {
			for _, step := range neighbor8 {
				nx := agent.Pos.X + step[0]*stepLen
				ny := agent.Pos.Y + step[1]*stepLen
				if s.Board.InBounds(nx, ny) {
					candidates = append(candidates, model.Position{X: nx, Y: ny})
				}
			}
		}
	}

	var moves []model.Decision
	for _, c := range candidates {
		if s.OccupiedByOther(c.X, c.Y, agent.ID) {
			continue
		}

		value := 300.0
		if target != nil {
			oldDist := model.ManhattanDistance(agent.Pos, target.Pos)
			newDist := model.ManhattanDistance(c, target.Pos)

			if newDist < oldDist {
				value += 2000.0
			}
			if newDist > oldDist {
				value -= 1000.0
			}
			// advance along the x axis toward the target
			toward := util.Sign(target.Pos.X - agent.Pos.X)
			step := util.Sign(c.X - agent.Pos.X)
			if toward != 0 && step == toward {
				value += 1500.0
			}
			if toward != 0 && step == -toward {
				value -= 700.0
			}
			if hasProf {
				if newDist <= prof.OptimalRange {
					value += 3000.0
				}
				if newDist <= prof.OptimalRange+2 {
					value += 1000.0
				}
			}
		}

		moves = append(moves, model.Decision{
			AgentID:       agent.ID,
			Action:        model.Move(c.X, c.Y),
			ExpectedValue: value,
			Rationale:     moveRationale(c.X, c.Y, value),
		})
	}

	if len(moves) == 0 {
		moves = append(moves, hunkerDecision(agent.ID, 200, "no valid moves"))
	}
	return moves
}

