package model

import "fmt"

// ActionKind enumerates the primitive and compound actions an agent can take.
type ActionKind int

const (
	ActionHunker ActionKind = iota
	ActionMove
	ActionAttack
	ActionThrow
	ActionMoveAttack
	ActionMoveThrow
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	case ActionThrow:
		return "throw"
	case ActionMoveAttack:
		return "move_attack"
	case ActionMoveThrow:
		return "move_throw"
	default:
		return "hunker"
	}
}

// Action is one executable order for an agent. Move coordinates fill X/Y,
// attack targets fill TargetID, throw landing tiles fill BombX/BombY.
type Action struct {
	Kind     ActionKind
	X, Y     int
	TargetID int
	BombX    int
	BombY    int
}

// Hunker returns the do-nothing action.
func Hunker() Action { return Action{Kind: ActionHunker} }

// Move returns a movement action to (x, y).
func Move(x, y int) Action { return Action{Kind: ActionMove, X: x, Y: y} }

// Attack returns an attack action against the given agent.
func Attack(targetID int) Action { return Action{Kind: ActionAttack, TargetID: targetID} }

// Throw returns a bomb throw landing at (x, y).
func Throw(x, y int) Action { return Action{Kind: ActionThrow, BombX: x, BombY: y} }

// MoveAttack returns a move to (x, y) followed by an attack.
func MoveAttack(x, y, targetID int) Action {
	return Action{Kind: ActionMoveAttack, X: x, Y: y, TargetID: targetID}
}

// MoveThrow returns a move to (x, y) followed by a throw landing at (bx, by).
func MoveThrow(x, y, bx, by int) Action {
	return Action{Kind: ActionMoveThrow, X: x, Y: y, BombX: bx, BombY: by}
}

// Destination returns the position the agent occupies after the action,
// given its current position.
func (a Action) Destination(from Position) Position {
	switch a.Kind {
	case ActionMove, ActionMoveAttack, ActionMoveThrow:
		return Position{X: a.X, Y: a.Y}
	default:
		return from
	}
}

// Moves reports whether the action changes the agent's position.
func (a Action) Moves() bool {
	switch a.Kind {
	case ActionMove, ActionMoveAttack, ActionMoveThrow:
		return true
	default:
		return false
	}
}

// Decision is a scored candidate action with its expected outcome.
type Decision struct {
	AgentID         int
	Action          Action
	ExpectedValue   float64
	ExpectedDamage  int
	KillProbability float64
	Rationale       string
}

// String renders a compact human-readable form for logs.
func (d Decision) String() string {
	return fmt.Sprintf("agent=%d action=%s value=%.1f damage=%d kill=%.2f %s",
		d.AgentID, d.Action.Kind, d.ExpectedValue, d.ExpectedDamage, d.KillProbability, d.Rationale)
}
