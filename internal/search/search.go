// Package search implements the cooperative multi-tree UCB search: every
// living agent on both sides owns an independent decision tree, all trees are
// descended together each iteration against a shared simulated state, and the
// joint outcome is backpropagated into each tree. Opponent candidates come
// from a fixed greedy rule, not a full adversarial solve.
package search

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/razv0n/soakbot/internal/model"
	"github.com/razv0n/soakbot/internal/tactics"
)

// Config bounds one search invocation.
type Config struct {
	MaxDepth        int
	Exploration     float64
	MinRandomVisits int
	MaxIterations   int
	Budget          time.Duration
	Seed            int64
}

// DefaultConfig mirrors the tuned competition parameters.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        6,
		Exploration:     1.4,
		MinRandomVisits: 8,
		MaxIterations:   10000,
		Budget:          85 * time.Millisecond,
	}
}

// Stats reports what one invocation did.
type Stats struct {
	Iterations int
	Elapsed    time.Duration
}

// budgetPollInterval is how many iterations run between clock checks.
const budgetPollInterval = 8

// node is one arena slot in a per-agent tree. Children are arena indices.
type node struct {
	parent   int
	children []int
	action   model.Decision
	visits   int
	total    float64
	priority float64
}

// tree is the per-agent decision tree, an arena of nodes with index 0 as root.
type tree struct {
	agentID int
	mine    bool
	nodes   []node
	low     float64
	high    float64
}

func newTree(agentID int, mine bool) *tree {
	return &tree{
		agentID: agentID,
		mine:    mine,
		nodes:   []node{{parent: -1}},
		low:     math.Inf(1),
		high:    math.Inf(-1),
	}
}

// scale normalizes scores by the observed spread, floored at 1.
func (t *tree) scale() float64 {
	if t.high <= t.low {
		return 1.0
	}
	s := t.high - t.low
	if s < 1.0 {
		return 1.0
	}
	return s
}

// Engine runs searches. A single Engine is reused across turns; it is not
// safe for concurrent use, matching the single-threaded turn loop.
type Engine struct {
	cfg Config
	gen *tactics.Generator
	rng *rand.Rand
}

// New creates a search engine. Seed 0 derives a seed from the clock.
func New(cfg Config, gen *tactics.Generator) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg: cfg,
		gen: gen,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Run grows all trees within the iteration and wall-clock budget and returns
// the selected decision per controlled agent plus search stats. Agents whose
// tree never expanded get a nominal Hunker fallback.
func (e *Engine) Run(ctx context.Context, s *model.GameState) (map[int]model.Decision, Stats) {
	start := time.Now()

	var trees []*tree
	for _, a := range s.Mine() {
		trees = append(trees, newTree(a.ID, true))
	}
	for _, a := range s.Enemies() {
		trees = append(trees, newTree(a.ID, false))
	}

	var stats Stats
loop:
	for it := 0; it < e.cfg.MaxIterations; it++ {
		if it%budgetPollInterval == 0 {
			if time.Since(start) >= e.cfg.Budget {
				break
			}
			select {
			case <-ctx.Done():
				break loop
			default:
			}
		}
		e.iterate(s, trees)
		stats.Iterations++
	}
	stats.Elapsed = time.Since(start)

	decisions := make(map[int]model.Decision)
	for _, t := range trees {
		if !t.mine {
			continue
		}
		decisions[t.agentID] = e.rootDecision(t)
	}
	return decisions, stats
}

// iterate runs one rollout: lockstep descent through every tree against a
// shared scratch state, then backpropagation of the joint evaluation.
func (e *Engine) iterate(s *model.GameState, trees []*tree) {
	scratch := s.Clone()
	cur := make([]int, len(trees))

	for depth := 0; depth < e.cfg.MaxDepth; depth++ {
		actions := make([]model.Decision, len(trees))

		for ti, t := range trees {
			n := &t.nodes[cur[ti]]
			if len(n.children) == 0 && n.visits >= 1 {
				e.expand(scratch, t, cur[ti])
				n = &t.nodes[cur[ti]]
			}
			if len(n.children) == 0 {
				actions[ti] = model.Decision{AgentID: t.agentID, Action: model.Hunker()}
				continue
			}
			ci := e.selectChild(t, cur[ti])
			cur[ti] = ci
			actions[ti] = t.nodes[ci].action
		}

		applyJoint(scratch, actions)
		if terminal(scratch) {
			break
		}
	}

	score := evaluate(scratch)
	for ti, t := range trees {
		v := score
		if !t.mine {
			v = -score
		}
		backprop(t, cur[ti], v)
	}
}

// expand generates children for a leaf from the leaf's simulated state.
// Controlled agents draw from the Action Generator; opponents draw from the
// greedy response rule.
func (e *Engine) expand(scratch *model.GameState, t *tree, ni int) {
	agent := scratch.Agent(t.agentID)
	if agent == nil || !agent.Alive {
		return
	}

	var candidates []model.Decision
	if t.mine {
		candidates = e.gen.Candidates(scratch, *agent)
	} else {
		candidates = greedyResponses(scratch, *agent)
	}

	for _, c := range candidates {
		child := node{
			parent:   ni,
			action:   c,
			priority: tacticalPriority(scratch, *agent, c),
		}
		t.nodes = append(t.nodes, child)
		t.nodes[ni].children = append(t.nodes[ni].children, len(t.nodes)-1)
	}
}

// selectChild picks a child: uniform random during warm-up, then unvisited
// children by descending priority, then upper-confidence.
func (e *Engine) selectChild(t *tree, ni int) int {
	n := &t.nodes[ni]

	if n.visits < e.cfg.MinRandomVisits {
		return n.children[e.rng.Intn(len(n.children))]
	}

	bestUnvisited := -1
	for _, ci := range n.children {
		c := &t.nodes[ci]
		if c.visits > 0 {
			continue
		}
		if bestUnvisited == -1 || c.priority > t.nodes[bestUnvisited].priority {
			bestUnvisited = ci
		}
	}
	if bestUnvisited != -1 {
		return bestUnvisited
	}

	scale := t.scale()
	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, ci := range n.children {
		c := &t.nodes[ci]
		avg := c.total / float64(c.visits) / scale
		explore := e.cfg.Exploration * math.Sqrt(math.Log(float64(n.visits))) / math.Sqrt(float64(c.visits))
		score := avg + explore + 0.3*c.priority
		if score > bestScore {
			bestScore = score
			best = ci
		}
	}
	return best
}

// backprop walks the selected path back to the root, accumulating reward and
// widening the tree's observed score bounds.
func backprop(t *tree, leaf int, score float64) {
	for ni := leaf; ni != -1; ni = t.nodes[ni].parent {
		t.nodes[ni].visits++
		t.nodes[ni].total += score
	}
	if score < t.low {
		t.low = score
	}
	if score > t.high {
		t.high = score
	}
}

// rootDecision picks the most-visited root child, falling back to Hunker when
// the tree never grew.
func (e *Engine) rootDecision(t *tree) model.Decision {
	root := &t.nodes[0]
	if len(root.children) == 0 {
		return model.Decision{
			AgentID:       t.agentID,
			Action:        model.Hunker(),
			ExpectedValue: 50,
			Rationale:     "search produced no candidates",
		}
	}
	best := root.children[0]
	for _, ci := range root.children {
		if t.nodes[ci].visits > t.nodes[best].visits {
			best = ci
		}
	}
	d := t.nodes[best].action
	if v := t.nodes[best].visits; v > 0 {
		d.ExpectedValue = t.nodes[best].total / float64(v)
	}
	return d
}
