// Package cache provides a bounded memoization layer for per-agent decisions,
// keyed by a canonicalized snapshot of all agent states. Correctness never
// depends on hits; a miss always falls back to full computation.
package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/razv0n/soakbot/internal/model"
)

// DecisionCache caches finalized per-agent decisions for identical snapshots.
// Latency in the turn loop is critical, so lookups stay lock-cheap.
type DecisionCache struct {
	m       sync.Mutex
	entries map[string]map[int]model.Decision
	order   []string
	maxSize int

	hits   int
	misses int
}

// NewDecisionCache creates a cache bounded to maxSize snapshots. Sizes below
// one disable storage entirely.
func NewDecisionCache(maxSize int) *DecisionCache {
	return &DecisionCache{
		entries: make(map[string]map[int]model.Decision),
		maxSize: maxSize,
	}
}

// Key canonicalizes a game state: sorted per-agent snapshots so agent input
// order never changes the key. Every field that influences a decision gets
// its own slot; two states collide only when they are identical.
func Key(s *model.GameState) string {
	parts := make([]string, 0, len(s.Agents))
	for _, a := range s.Agents {
		if !a.Alive {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d,%d,%d,%d,%d",
			a.ID, a.Pos.X, a.Pos.Y, a.Cooldown, a.Bombs, a.Wetness))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Get returns the cached decisions for a snapshot key.
func (c *DecisionCache) Get(key string) (map[int]model.Decision, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	d, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return d, ok
}

// Put stores decisions for a snapshot key, evicting the oldest entry when
// the bound is reached.
func (c *DecisionCache) Put(key string, decisions map[int]model.Decision) {
	if c.maxSize < 1 {
		return
	}
	c.m.Lock()
	defer c.m.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = decisions
}

// Reset drops all entries and counters.
func (c *DecisionCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.entries = make(map[string]map[int]model.Decision)
	c.order = nil
	c.hits = 0
	c.misses = 0
}

// Stats returns hit and miss counts.
func (c *DecisionCache) Stats() (hits, misses int) {
	c.m.Lock()
	defer c.m.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached snapshots.
func (c *DecisionCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.entries)
}
