package protocol

import (
	"fmt"

	"github.com/razv0n/soakbot/internal/model"
)

// FormatDecision renders a decision as one action line. Plain actions carry a
// trailing hunker secondary; compound actions carry their real secondary.
func FormatDecision(d model.Decision) string {
	a := d.Action
	switch a.Kind {
	case model.ActionMove:
		return fmt.Sprintf("%d;MOVE %d %d; HUNKER_DOWN", d.AgentID, a.X, a.Y)
	case model.ActionAttack:
		return fmt.Sprintf("%d;ATTACK %d; HUNKER_DOWN", d.AgentID, a.TargetID)
	case model.ActionThrow:
		return fmt.Sprintf("%d;THROW %d %d; HUNKER_DOWN", d.AgentID, a.BombX, a.BombY)
	case model.ActionMoveAttack:
		return fmt.Sprintf("%d;MOVE %d %d; ATTACK %d", d.AgentID, a.X, a.Y, a.TargetID)
	case model.ActionMoveThrow:
		return fmt.Sprintf("%d;MOVE %d %d; THROW %d %d", d.AgentID, a.X, a.Y, a.BombX, a.BombY)
	default:
		return fmt.Sprintf("%d;HUNKER_DOWN", d.AgentID)
	}
}

// HunkerLine renders the safe default line for an agent id.
func HunkerLine(agentID int) string {
	return fmt.Sprintf("%d;HUNKER_DOWN", agentID)
}
