package engine

import (
	"github.com/razv0n/soakbot/internal/model"
)

var neighborOffsets = [8][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// resolveCollisions enforces pairwise-distinct destinations. Decisions are
// walked in agent order; an agent whose destination is already claimed is
// redirected to a free adjacent tile, or hunkers in place when none exists.
func resolveCollisions(s *model.GameState, mine []model.AgentState, ordered []model.Decision) []model.Decision {
	claimed := make(map[model.Position]bool, len(ordered))
	byID := make(map[int]model.AgentState, len(mine))
	for _, a := range mine {
		byID[a.ID] = a
	}

	out := make([]model.Decision, len(ordered))
	for i, d := range ordered {
		agent, ok := byID[d.AgentID]
		if !ok {
			out[i] = d
			continue
		}
		dest := d.Action.Destination(agent.Pos)

		if claimed[dest] || blockedByOther(s, d.AgentID, dest, agent.Pos) {
			if alt, found := alternativeTile(s, claimed, dest); found {
				d = redirect(d, alt)
				dest = alt
			} else {
				d = model.Decision{
					AgentID:   d.AgentID,
					Action:    model.Hunker(),
					Rationale: "destination contested, holding position",
				}
				dest = agent.Pos
			}
		}

		claimed[dest] = true
		out[i] = d
	}
	return out
}

// blockedByOther reports whether moving to dest would land on another living
// agent. Staying in place is always allowed.
func blockedByOther(s *model.GameState, agentID int, dest, from model.Position) bool {
	if dest == from {
		return false
	}
	return s.OccupiedByOther(dest.X, dest.Y, agentID)
}

// alternativeTile finds a free in-bounds neighbor of the contested tile.
func alternativeTile(s *model.GameState, claimed map[model.Position]bool, contested model.Position) (model.Position, bool) {
	for _, off := range neighborOffsets {
		p := model.Position{X: contested.X + off[0], Y: contested.Y + off[1]}
		if !s.Board.InBounds(p.X, p.Y) {
			continue
		}
		if claimed[p] || s.Occupied(p.X, p.Y) {
			continue
		}
		return p, true
	}
	return model.Position{}, false
}

// redirect rewrites a decision's movement component to the new destination,
// preserving the secondary action where one exists.
func redirect(d model.Decision, dest model.Position) model.Decision {
	switch d.Action.Kind {
	case model.ActionMove:
		d.Action = model.Move(dest.X, dest.Y)
	case model.ActionMoveAttack:
		d.Action = model.MoveAttack(dest.X, dest.Y, d.Action.TargetID)
	case model.ActionMoveThrow:
		d.Action = model.MoveThrow(dest.X, dest.Y, d.Action.BombX, d.Action.BombY)
	}
	d.Rationale = "rerouted around contested tile"
	return d
}
