package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razv0n/soakbot/internal/model"
	"github.com/razv0n/soakbot/internal/tactics"
)

func testState() *model.GameState {
	board := model.NewBoard(12, 6)
	profiles := map[int]model.AgentProfile{
		1: {ID: 1, Owner: 0, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16, SplashBombs: 1, Class: model.ClassGunner},
		2: {ID: 2, Owner: 0, ShootCooldown: 5, OptimalRange: 6, SoakingPower: 24, Class: model.ClassSniper},
		3: {ID: 3, Owner: 1, ShootCooldown: 1, OptimalRange: 4, SoakingPower: 16, SplashBombs: 1, Class: model.ClassGunner},
		4: {ID: 4, Owner: 1, ShootCooldown: 2, OptimalRange: 2, SoakingPower: 8, SplashBombs: 3, Class: model.ClassBomber},
	}
	return &model.GameState{
		Board:    board,
		MyID:     0,
		Turn:     5,
		Profiles: profiles,
		Agents: []model.AgentState{
			{ID: 1, Pos: model.Position{X: 1, Y: 2}, Alive: true},
			{ID: 2, Pos: model.Position{X: 0, Y: 4}, Alive: true},
			{ID: 3, Pos: model.Position{X: 9, Y: 2}, Alive: true, Wetness: 20},
			{ID: 4, Pos: model.Position{X: 10, Y: 4}, Alive: true, Bombs: 3},
		},
	}
}

func fixedEngine(iterations int) *Engine {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.MaxIterations = iterations
	cfg.Budget = time.Hour
	return New(cfg, tactics.New(true))
}

func TestEngine_Run_ProducesDecisionPerAgent(t *testing.T) {
	s := testState()
	eng := fixedEngine(400)

	decisions, stats := eng.Run(context.Background(), s)

	require.Len(t, decisions, 2)
	assert.Contains(t, decisions, 1)
	assert.Contains(t, decisions, 2)
	assert.Equal(t, 400, stats.Iterations)
}

func TestEngine_Run_DeterministicUnderFixedSeed(t *testing.T) {
	first, _ := fixedEngine(300).Run(context.Background(), testState())
	second, _ := fixedEngine(300).Run(context.Background(), testState())

	require.Equal(t, len(first), len(second))
	for id, d := range first {
		assert.Equal(t, d.Action, second[id].Action, "agent %d", id)
	}
}

func TestEngine_Run_SkipsDeadAgents(t *testing.T) {
	s := testState()
	s.Agents[0].Alive = false
	s.Agents[0].Wetness = 100

	decisions, _ := fixedEngine(100).Run(context.Background(), s)

	require.Len(t, decisions, 1)
	assert.Contains(t, decisions, 2)
}

func TestEngine_Run_InputStateUntouched(t *testing.T) {
	s := testState()
	before := make([]model.AgentState, len(s.Agents))
	copy(before, s.Agents)

	fixedEngine(200).Run(context.Background(), s)

	assert.Equal(t, before, s.Agents)
}

func TestApplyJoint_AttackAppliesDamageAndCooldown(t *testing.T) {
	s := testState()
	actions := []model.Decision{
		{AgentID: 1, Action: model.Attack(3)},
	}
	// distance 8 is out of range; bring the enemy closer first
	s.Agents[2].Pos = model.Position{X: 4, Y: 2}

	applyJoint(s, actions)

	target := s.Agent(3)
	// distance 3, power 16: floor(16 * 0.5) = 8 on top of 20
	assert.Equal(t, 28, target.Wetness)
	// cooldown set to the period, then the end-of-turn decrement applies
	assert.Equal(t, 0, s.Agent(1).Cooldown)
}

func TestApplyJoint_ThrowSplashesAndHalvesForHunkered(t *testing.T) {
	s := testState()
	s.Agents[2].Pos = model.Position{X: 5, Y: 2}
	s.Agents[3].Pos = model.Position{X: 5, Y: 3}
	s.Agents[0].Bombs = 1

	actions := []model.Decision{
		{AgentID: 1, Action: model.Throw(5, 2)},
		{AgentID: 4, Action: model.Hunker()},
	}
	applyJoint(s, actions)

	assert.Equal(t, 50, s.Agent(3).Wetness, "direct hit on agent 3")
	assert.Equal(t, 15, s.Agent(4).Wetness, "hunkered neighbor takes half")
	assert.Equal(t, 0, s.Agent(1).Bombs)
}

func TestApplyJoint_WetnessClampedAndKills(t *testing.T) {
	s := testState()
	s.Agents[2].Pos = model.Position{X: 2, Y: 2}
	s.Agents[2].Wetness = 95

	applyJoint(s, []model.Decision{{AgentID: 1, Action: model.Attack(3)}})

	target := s.Agent(3)
	assert.Equal(t, 100, target.Wetness)
	assert.False(t, target.Alive)
}

func TestGreedyResponses_AttackWhenInRange(t *testing.T) {
	s := testState()
	s.Agents[2].Pos = model.Position{X: 4, Y: 2}

	out := greedyResponses(s, *s.Agent(3))

	require.NotEmpty(t, out)
	assert.Equal(t, model.ActionAttack, out[0].Action.Kind)
	assert.Equal(t, 1, out[0].Action.TargetID)
}

func TestGreedyResponses_StepsTowardNearestWhenOutOfRange(t *testing.T) {
	s := testState()

	out := greedyResponses(s, *s.Agent(3))

	require.NotEmpty(t, out)
	assert.Equal(t, model.ActionMove, out[0].Action.Kind)
	assert.Equal(t, 8, out[0].Action.X, "x axis step toward agent 1")
	assert.Equal(t, 2, out[0].Action.Y)
}

func TestEvaluate_WipeoutDominates(t *testing.T) {
	s := testState()
	s.Agents[2].Alive = false
	s.Agents[3].Alive = false

	assert.Equal(t, wipeoutScore, evaluate(s))

	s = testState()
	s.Agents[0].Alive = false
	s.Agents[1].Alive = false
	assert.Equal(t, -wipeoutScore, evaluate(s))
}

func TestEvaluate_PrefersHealthierPosition(t *testing.T) {
	healthy := testState()

	hurt := testState()
	hurt.Agents[0].Wetness = 80
	hurt.Agents[1].Wetness = 80

	assert.Greater(t, evaluate(healthy), evaluate(hurt))
}

func TestTerritoryControl_WoundedProjectLess(t *testing.T) {
	s := testState()
	mineBefore, _ := territoryControl(s)

	s.Agents[0].Wetness = 60
	s.Agents[1].Wetness = 60
	mineAfter, _ := territoryControl(s)

	assert.Less(t, mineAfter, mineBefore)
}
