package search

import "github.com/razv0n/soakbot/internal/model"

// actionWeight maps action kinds to their base tactical weight in [-1, 1].
// Kill shots and multi-hit throws are upgraded at call time.
var actionWeight = map[model.ActionKind]float64{
	model.ActionAttack:     0.6,
	model.ActionMoveAttack: 0.6,
	model.ActionThrow:      0.4,
	model.ActionMoveThrow:  0.4,
	model.ActionMove:       0.1,
	model.ActionHunker:     -0.1,
}

// classPreferredDistance is the engagement distance each class positions for.
var classPreferredDistance = map[model.AgentClass]int{
	model.ClassSniper:    5,
	model.ClassBerserker: 2,
	model.ClassBomber:    3,
	model.ClassGunner:    3,
	model.ClassAssault:   3,
}

// tacticalPriority scores a candidate in [-1, 1] to bias selection before
// visit statistics accumulate: half action class, the rest positioning,
// territory shift, and survival pressure.
func tacticalPriority(s *model.GameState, agent model.AgentState, d model.Decision) float64 {
	tactical := actionWeight[d.Action.Kind]
	if d.KillProbability >= 1.0 {
		tactical = 1.0
	} else if (d.Action.Kind == model.ActionThrow || d.Action.Kind == model.ActionMoveThrow) &&
		d.ExpectedDamage > 30 {
		tactical = 0.7
	}

	dest := d.Action.Destination(agent.Pos)
	positioning := positioningScore(s, agent, dest)

	territory := 0.0
	if d.Action.Moves() {
		territory = territoryShift(s, agent.ID, dest)
	}

	survival := float64(100-agent.Wetness) / 100.0

	p := 0.5*tactical + 0.15*positioning + 0.2*territory + 0.15*survival
	if p > 1.0 {
		p = 1.0
	}
	if p < -1.0 {
		p = -1.0
	}
	return p
}

// positioningScore blends tile value, class distance fit, and ally spacing
// into [-1, 1].
func positioningScore(s *model.GameState, agent model.AgentState, pos model.Position) float64 {
	prof, ok := s.Profiles[agent.ID]
	if !ok {
		return 0
	}

	score := s.Board.StrategicValue(pos.X, pos.Y)

	if enemy, dist := nearestOf(s.Enemies(), pos); enemy != nil {
		preferred := classPreferredDistance[prof.Class]
		gap := dist - preferred
		if gap < 0 {
			gap = -gap
		}
		score += 0.5 - 0.125*float64(gap)
	}

	spacing := 4
	if prof.Class == model.ClassSniper {
		spacing = 6
	}
	for _, ally := range s.Mine() {
		if ally.ID == agent.ID {
			continue
		}
		if model.ManhattanDistance(pos, ally.Pos) < spacing/2 {
			score -= 0.2
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < -1.0 {
		score = -1.0
	}
	return score
}

// territoryShift estimates the normalized change in controlled tiles if the
// agent stood at pos instead of its current position.
func territoryShift(s *model.GameState, agentID int, pos model.Position) float64 {
	before, _ := territoryControl(s)

	moved := s.Clone()
	if a := moved.Agent(agentID); a != nil {
		a.Pos = pos
	}
	after, _ := territoryControl(moved)

	total := s.Board.Width * s.Board.Height
	if total == 0 {
		return 0
	}
	shift := float64(after-before) / float64(total)
	// scale so a few tiles of gain register meaningfully
	shift *= 10
	if shift > 1.0 {
		shift = 1.0
	}
	if shift < -1.0 {
		shift = -1.0
	}
	return shift
}

func nearestOf(agents []model.AgentState, pos model.Position) (*model.AgentState, int) {
	var best *model.AgentState
	bestDist := int(^uint(0) >> 1)
	for i := range agents {
		if d := model.ManhattanDistance(pos, agents[i].Pos); d < bestDist {
			bestDist = d
			best = &agents[i]
		}
	}
	return best, bestDist
}
