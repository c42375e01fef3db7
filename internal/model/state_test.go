package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *GameState {
	return &GameState{
		Board: NewBoard(8, 4),
		MyID:  0,
		Profiles: map[int]AgentProfile{
			1: {ID: 1, Owner: 0},
			2: {ID: 2, Owner: 1},
			3: {ID: 3, Owner: 1},
		},
		Agents: []AgentState{
			{ID: 1, Pos: Position{X: 0, Y: 0}, Alive: true},
			{ID: 2, Pos: Position{X: 5, Y: 2}, Alive: true, Wetness: 40},
			{ID: 3, Pos: Position{X: 7, Y: 3}, Alive: false, Wetness: 100},
		},
	}
}

func TestBoard_Bounds(t *testing.T) {
	b := NewBoard(8, 4)
	assert.True(t, b.InBounds(0, 0))
	assert.True(t, b.InBounds(7, 3))
	assert.False(t, b.InBounds(8, 0))
	assert.False(t, b.InBounds(0, 4))
	assert.False(t, b.InBounds(-1, 2))
	assert.Equal(t, TileEmpty, b.TileAt(-5, -5))
}

func TestManhattanDistance(t *testing.T) {
	assert.Equal(t, 0, ManhattanDistance(Position{1, 1}, Position{1, 1}))
	assert.Equal(t, 7, ManhattanDistance(Position{0, 0}, Position{4, 3}))
	assert.Equal(t, 7, ManhattanDistance(Position{4, 3}, Position{0, 0}))
}

func TestGameState_SidesExcludeDead(t *testing.T) {
	s := sampleState()

	require.Len(t, s.Mine(), 1)
	assert.Equal(t, 1, s.Mine()[0].ID)

	enemies := s.Enemies()
	require.Len(t, enemies, 1)
	assert.Equal(t, 2, enemies[0].ID)
}

func TestGameState_Occupancy(t *testing.T) {
	s := sampleState()
	assert.True(t, s.Occupied(5, 2))
	assert.False(t, s.Occupied(7, 3), "dead agents do not occupy")
	assert.False(t, s.OccupiedByOther(5, 2, 2))
	assert.True(t, s.OccupiedByOther(5, 2, 1))
}

func TestGameState_CloneIsIndependent(t *testing.T) {
	s := sampleState()
	c := s.Clone()

	c.Agents[0].Wetness = 99
	c.Agents[0].Pos = Position{X: 3, Y: 3}

	assert.Equal(t, 0, s.Agents[0].Wetness)
	assert.Equal(t, Position{X: 0, Y: 0}, s.Agents[0].Pos)
}

func TestAgentState_Health(t *testing.T) {
	assert.Equal(t, 100, AgentState{}.Health())
	assert.Equal(t, 60, AgentState{Wetness: 40}.Health())
	assert.Equal(t, 0, AgentState{Wetness: 120}.Health())
}
