package model

// GameState is the full observable state at the start of a turn.
type GameState struct {
	Board    *Board
	MyID     int
	Turn     int
	Profiles map[int]AgentProfile
	Agents   []AgentState
}

// Clone returns a deep copy suitable for simulation scratch work.
// Board and profiles are immutable and shared.
func (g *GameState) Clone() *GameState {
	agents := make([]AgentState, len(g.Agents))
	copy(agents, g.Agents)
	return &GameState{
		Board:    g.Board,
		MyID:     g.MyID,
		Turn:     g.Turn,
		Profiles: g.Profiles,
		Agents:   agents,
	}
}

// Agent returns a pointer to the state of the given agent, or nil.
func (g *GameState) Agent(id int) *AgentState {
	for i := range g.Agents {
		if g.Agents[i].ID == id {
			return &g.Agents[i]
		}
	}
	return nil
}

// Mine returns the living agents owned by the local player, in input order.
func (g *GameState) Mine() []AgentState {
	return g.side(true)
}

// Enemies returns the living agents owned by the opponent, in input order.
func (g *GameState) Enemies() []AgentState {
	return g.side(false)
}

func (g *GameState) side(mine bool) []AgentState {
	var out []AgentState
	for _, a := range g.Agents {
		if !a.Alive {
			continue
		}
		p, ok := g.Profiles[a.ID]
		if !ok {
			continue
		}
		if (p.Owner == g.MyID) == mine {
			out = append(out, a)
		}
	}
	return out
}

// Occupied reports whether a living agent stands on (x, y).
func (g *GameState) Occupied(x, y int) bool {
	for _, a := range g.Agents {
		if a.Alive && a.Pos.X == x && a.Pos.Y == y {
			return true
		}
	}
	return false
}

// OccupiedByOther reports whether a living agent other than selfID stands on (x, y).
func (g *GameState) OccupiedByOther(x, y, selfID int) bool {
	for _, a := range g.Agents {
		if a.Alive && a.ID != selfID && a.Pos.X == x && a.Pos.Y == y {
			return true
		}
	}
	return false
}

// TeamTotals returns alive counts and summed health for both sides.
func (g *GameState) TeamTotals() (myAlive, enemyAlive, myHealth, enemyHealth int) {
	for _, a := range g.Agents {
		if !a.Alive {
			continue
		}
		p, ok := g.Profiles[a.ID]
		if !ok {
			continue
		}
		if p.Owner == g.MyID {
			myAlive++
			myHealth += a.Health()
		} else {
			enemyAlive++
			enemyHealth += a.Health()
		}
	}
	return
}
