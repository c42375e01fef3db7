package search

import (
	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
)

// applyJoint applies one simultaneous turn of actions to the scratch state:
// moves update positions, attacks and throws apply damage and reset the
// actor's cooldown, hunkering halves incoming splash. All cooldowns then
// decrement by one.
func applyJoint(s *model.GameState, actions []model.Decision) {
	hunkered := make(map[int]bool)
	for _, d := range actions {
		if d.Action.Kind == model.ActionHunker {
			hunkered[d.AgentID] = true
		}
	}

	for _, d := range actions {
		actor := s.Agent(d.AgentID)
		if actor == nil || !actor.Alive {
			continue
		}

		act := d.Action
		if act.Moves() {
			if s.Board.InBounds(act.X, act.Y) && !s.OccupiedByOther(act.X, act.Y, actor.ID) {
				actor.Pos = model.Position{X: act.X, Y: act.Y}
			}
		}

		switch act.Kind {
		case model.ActionAttack, model.ActionMoveAttack:
			applyAttack(s, actor, act.TargetID)
		case model.ActionThrow, model.ActionMoveThrow:
			applyThrow(s, actor, act.BombX, act.BombY, hunkered)
		}
	}

	for i := range s.Agents {
		if s.Agents[i].Cooldown > 0 {
			s.Agents[i].Cooldown--
		}
	}
}

func applyAttack(s *model.GameState, actor *model.AgentState, targetID int) {
	if actor.Cooldown > 0 {
		return
	}
	prof, ok := s.Profiles[actor.ID]
	if !ok {
		return
	}
	target := s.Agent(targetID)
	if target == nil || !target.Alive {
		return
	}

	d := model.ManhattanDistance(actor.Pos, target.Pos)
	dmg := combat.AttackDamage(prof.SoakingPower, d, prof.OptimalRange)
	if dmg > 0 {
		dmg = int(float64(dmg) * combat.CoverModifier(s.Board, actor.Pos, target.Pos))
	}
	soak(target, dmg)
	actor.Cooldown = prof.ShootCooldown
}

func applyThrow(s *model.GameState, actor *model.AgentState, bx, by int, hunkered map[int]bool) {
	if actor.Cooldown > 0 || actor.Bombs <= 0 {
		return
	}
	prof, ok := s.Profiles[actor.ID]
	if !ok {
		return
	}

	landing := model.Position{X: bx, Y: by}
	for i := range s.Agents {
		target := &s.Agents[i]
		if !target.Alive {
			continue
		}
		dist := model.ManhattanDistance(landing, target.Pos)
		soak(target, combat.SplashDamage(dist, hunkered[target.ID]))
	}
	actor.Bombs--
	actor.Cooldown = prof.ShootCooldown
}

// soak applies damage, clamps wetness to [0, 100], and updates liveness.
func soak(target *model.AgentState, dmg int) {
	if dmg <= 0 {
		return
	}
	target.Wetness += dmg
	if target.Wetness >= 100 {
		target.Wetness = 100
		target.Alive = false
	}
}

// terminal reports whether either side has no living agents.
func terminal(s *model.GameState) bool {
	myAlive, enemyAlive, _, _ := s.TeamTotals()
	return myAlive == 0 || enemyAlive == 0
}

// greedyResponses builds the opponent candidate set: attack the nearest
// controlled agent when in range, otherwise close one axis step toward it,
// always with hunkering as an alternative.
func greedyResponses(s *model.GameState, agent model.AgentState) []model.Decision {
	var out []model.Decision

	var target *model.AgentState
	bestDist := int(^uint(0) >> 1)
	mine := s.Mine()
	for i := range mine {
		d := model.ManhattanDistance(agent.Pos, mine[i].Pos)
		if d < bestDist {
			bestDist = d
			target = &mine[i]
		}
	}

	if target != nil {
		prof, ok := s.Profiles[agent.ID]
		if ok && agent.Cooldown == 0 && bestDist <= prof.OptimalRange && bestDist > 0 {
			out = append(out, model.Decision{AgentID: agent.ID, Action: model.Attack(target.ID)})
		}

		// one axis step toward the target, x before y
		nx, ny := agent.Pos.X, agent.Pos.Y
		switch {
		case target.Pos.X > agent.Pos.X:
			nx++
		case target.Pos.X < agent.Pos.X:
			nx--
		case target.Pos.Y > agent.Pos.Y:
			ny++
		case target.Pos.Y < agent.Pos.Y:
			ny--
		}
		if (nx != agent.Pos.X || ny != agent.Pos.Y) &&
			s.Board.InBounds(nx, ny) && !s.OccupiedByOther(nx, ny, agent.ID) {
			out = append(out, model.Decision{AgentID: agent.ID, Action: model.Move(nx, ny)})
		}
	}

	out = append(out, model.Decision{AgentID: agent.ID, Action: model.Hunker()})
	return out
}
