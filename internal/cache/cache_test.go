package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razv0n/soakbot/internal/model"
)

func snapshot(x int) *model.GameState {
	return &model.GameState{
		Agents: []model.AgentState{
			{ID: 1, Pos: model.Position{X: x, Y: 0}, Alive: true},
			{ID: 2, Pos: model.Position{X: 5, Y: 2}, Alive: true, Wetness: 30},
		},
	}
}

func TestDecisionCache_PutAndGet(t *testing.T) {
	c := NewDecisionCache(8)
	key := Key(snapshot(1))

	_, ok := c.Get(key)
	assert.False(t, ok)

	decisions := map[int]model.Decision{1: {AgentID: 1, Action: model.Hunker()}}
	c.Put(key, decisions)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, decisions, got)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestKey_OrderIndependent(t *testing.T) {
	a := snapshot(3)
	b := &model.GameState{Agents: []model.AgentState{a.Agents[1], a.Agents[0]}}

	assert.Equal(t, Key(a), Key(b))
}

func TestKey_ExcludesDead(t *testing.T) {
	a := snapshot(3)
	b := snapshot(3)
	b.Agents = append(b.Agents, model.AgentState{ID: 9, Wetness: 100})

	assert.Equal(t, Key(a), Key(b))
}

func TestKey_DistinguishesStates(t *testing.T) {
	assert.NotEqual(t, Key(snapshot(1)), Key(snapshot(2)))
}

func TestKey_DistinguishesBombCounts(t *testing.T) {
	a := snapshot(1)
	b := snapshot(1)
	b.Agents[0].Bombs = 2

	assert.NotEqual(t, Key(a), Key(b))
}

func TestKey_SeparatesWetnessAndCooldown(t *testing.T) {
	a := snapshot(1)
	a.Agents[0].Wetness = 30
	a.Agents[0].Cooldown = 0

	b := snapshot(1)
	b.Agents[0].Wetness = 29
	b.Agents[0].Cooldown = 1

	assert.NotEqual(t, Key(a), Key(b))
}

func TestDecisionCache_EvictsOldest(t *testing.T) {
	c := NewDecisionCache(2)

	c.Put("a", nil)
	c.Put("b", nil)
	c.Put("c", nil)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestDecisionCache_Reset(t *testing.T) {
	c := NewDecisionCache(4)
	c.Put("a", nil)
	c.Reset()

	assert.Equal(t, 0, c.Len())
	hits, misses := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestDecisionCache_ConcurrentAccess(t *testing.T) {
	c := NewDecisionCache(64)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := Key(snapshot(n))
			c.Put(key, nil)
			c.Get(key)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}
