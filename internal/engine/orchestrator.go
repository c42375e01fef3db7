// Package engine is the turn orchestrator: it picks the strategy mode,
// computes the shared priority target, applies focus-fire overrides, resolves
// movement collisions, and always emits the required number of action lines.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/razv0n/soakbot/internal/cache"
	"github.com/razv0n/soakbot/internal/combat"
	"github.com/razv0n/soakbot/internal/model"
	"github.com/razv0n/soakbot/internal/protocol"
	"github.com/razv0n/soakbot/internal/search"
	"github.com/razv0n/soakbot/internal/tactics"
)

// Mode names the strategy used for a turn.
const (
	ModeSearch    = "search"
	ModeHeuristic = "heuristic"
	ModeCached    = "cached"
	ModeFallback  = "fallback"
)

// Publisher receives orchestrator events. The engine publishes and never
// depends on whether anything listens.
type Publisher interface {
	Publish(name string, payload any)
}

// Options configures the orchestrator.
type Options struct {
	SearchMinAgents int
	SearchMinTurn   int
	Cache           *cache.DecisionCache
	Events          Publisher
	Logger          *slog.Logger
}

// Orchestrator turns one parsed game state into finalized action lines.
type Orchestrator struct {
	gen      *tactics.Generator
	searcher *search.Engine
	opts     Options
	log      *slog.Logger
}

// Result is one finished turn.
type Result struct {
	Lines            []string
	Decisions        []model.Decision
	Mode             string
	PriorityTargetID int
	Advantage        float64
	SearchStats      search.Stats
	Elapsed          time.Duration
}

// TurnEvent is the payload published under "turn.completed": the state the
// turn was computed from together with its result.
type TurnEvent struct {
	State  *model.GameState
	Result Result
}

// TurnStartEvent is published under "turn.started" before any computation.
type TurnStartEvent struct {
	Turn          int
	RequiredLines int
}

// New creates an orchestrator. Logger defaults to slog.Default.
func New(gen *tactics.Generator, searcher *search.Engine, opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.SearchMinAgents == 0 {
		opts.SearchMinAgents = 2
	}
	if opts.SearchMinTurn == 0 {
		opts.SearchMinTurn = 3
	}
	return &Orchestrator{gen: gen, searcher: searcher, opts: opts, log: log}
}

// Turn computes one turn's decisions. It never panics outward: any failure
// degrades to hunker lines for every controlled agent.
func (o *Orchestrator) Turn(ctx context.Context, s *model.GameState, requiredLines int) (res Result) {
	start := time.Now()

	if o.opts.Events != nil {
		o.opts.Events.Publish("turn.started", TurnStartEvent{Turn: s.Turn, RequiredLines: requiredLines})
	}

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("turn computation failed, emitting fallback", "panic", r)
			res = Result{
				Lines:   o.FallbackLines(s, requiredLines),
				Mode:    ModeFallback,
				Elapsed: time.Since(start),
			}
		}
	}()

	mine := s.Mine()
	enemies := s.Enemies()

	res.PriorityTargetID = priorityTarget(s)
	myAlive, enemyAlive, myHealth, enemyHealth := s.TeamTotals()
	res.Advantage = combat.TacticalAdvantage(myAlive, enemyAlive, myHealth, enemyHealth)

	var key string
	if o.opts.Cache != nil {
		key = cache.Key(s)
		if cached, ok := o.opts.Cache.Get(key); ok {
			o.log.Debug("decision cache hit", "key", key)
			return o.finalize(s, mine, cached, ModeCached, res, start, requiredLines)
		}
	}

	useSearch := len(mine) >= o.opts.SearchMinAgents &&
		len(enemies) >= 1 &&
		s.Turn >= o.opts.SearchMinTurn &&
		o.searcher != nil

	decisions := make(map[int]model.Decision, len(mine))
	mode := ModeHeuristic
	if useSearch {
		mode = ModeSearch
		var stats search.Stats
		decisions, stats = o.searcher.Run(ctx, s)
		res.SearchStats = stats
	}

	for _, agent := range mine {
		if _, ok := s.Profiles[agent.ID]; !ok {
			decisions[agent.ID] = model.Decision{
				AgentID:   agent.ID,
				Action:    model.Hunker(),
				Rationale: "no profile for agent",
			}
			continue
		}
		if _, ok := decisions[agent.ID]; !ok {
			decisions[agent.ID] = o.gen.Decide(s, agent)
		}
	}

	for _, agent := range mine {
		decisions[agent.ID] = o.focusFire(s, agent, res.PriorityTargetID, decisions[agent.ID])
	}

	if o.opts.Cache != nil {
		o.opts.Cache.Put(key, decisions)
	}

	return o.finalize(s, mine, decisions, mode, res, start, requiredLines)
}

// finalize resolves collisions, formats lines, pads to the required count,
// and publishes the turn event.
func (o *Orchestrator) finalize(s *model.GameState, mine []model.AgentState, decisions map[int]model.Decision, mode string, res Result, start time.Time, requiredLines int) Result {
	ordered := make([]model.Decision, 0, len(mine))
	for _, agent := range mine {
		d, ok := decisions[agent.ID]
		if !ok {
			d = model.Decision{AgentID: agent.ID, Action: model.Hunker(), Rationale: "no decision produced"}
		}
		ordered = append(ordered, d)
	}
	ordered = resolveCollisions(s, mine, ordered)

	lines := make([]string, 0, requiredLines)
	for _, d := range ordered {
		if len(lines) == requiredLines {
			break
		}
		lines = append(lines, protocol.FormatDecision(d))
	}
	defaultID := o.defaultAgentID(s, mine)
	for len(lines) < requiredLines {
		lines = append(lines, protocol.HunkerLine(defaultID))
	}

	res.Lines = lines
	res.Decisions = ordered
	res.Mode = mode
	res.Elapsed = time.Since(start)

	if o.opts.Events != nil {
		for _, d := range ordered {
			o.opts.Events.Publish("decision.made", d)
		}
		o.opts.Events.Publish("turn.completed", TurnEvent{State: s, Result: res})
	}
	o.log.Debug("turn finished",
		"mode", mode,
		"decisions", len(ordered),
		"iterations", res.SearchStats.Iterations,
		"elapsed", res.Elapsed)

	return res
}

// FallbackLines emits a hunker line for every known controlled agent, padded
// or truncated to the required count.
func (o *Orchestrator) FallbackLines(s *model.GameState, requiredLines int) []string {
	ids := make([]int, 0, len(s.Profiles))
	for id, p := range s.Profiles {
		if p.Owner == s.MyID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	lines := make([]string, 0, requiredLines)
	for _, id := range ids {
		if len(lines) == requiredLines {
			break
		}
		lines = append(lines, protocol.HunkerLine(id))
	}
	defaultID := 0
	if len(ids) > 0 {
		defaultID = ids[0]
	}
	for len(lines) < requiredLines {
		lines = append(lines, protocol.HunkerLine(defaultID))
	}
	return lines
}

// defaultAgentID picks the id used to pad surplus output slots.
func (o *Orchestrator) defaultAgentID(s *model.GameState, mine []model.AgentState) int {
	if len(mine) > 0 {
		return mine[0].ID
	}
	ids := make([]int, 0, len(s.Profiles))
	for id, p := range s.Profiles {
		if p.Owner == s.MyID {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0
	}
	sort.Ints(ids)
	return ids[0]
}

// priorityTarget scores opposing agents by bomb threat, accumulated damage,
// proximity, and imminent readiness; returns the best id or -1.
func priorityTarget(s *model.GameState) int {
	mine := s.Mine()
	bestID := -1
	bestScore := -1.0

	for _, enemy := range s.Enemies() {
		minDist := int(^uint(0) >> 1)
		for _, a := range mine {
			if d := model.ManhattanDistance(a.Pos, enemy.Pos); d < minDist {
				minDist = d
			}
		}

		score := float64(enemy.Bombs) * 3000.0
		if enemy.Wetness > 50 {
			score += float64(enemy.Wetness-50) * 60.0
		}
		if minDist < 10 {
			score += float64(10-minDist) * 100.0
		}
		if enemy.Cooldown <= 1 {
			score += 1500.0
		}

		if score > bestScore {
			bestScore = score
			bestID = enemy.ID
		}
	}
	return bestID
}
