package model

// AgentClass is the inferred combat role of an agent.
type AgentClass int

const (
	ClassGunner AgentClass = iota
	ClassSniper
	ClassBomber
	ClassAssault
	ClassBerserker
)

// String returns the class name.
func (c AgentClass) String() string {
	switch c {
	case ClassSniper:
		return "sniper"
	case ClassBomber:
		return "bomber"
	case ClassAssault:
		return "assault"
	case ClassBerserker:
		return "berserker"
	default:
		return "gunner"
	}
}

// ClassifyAgent infers the combat role from an agent's fixed stats.
// The rules are ordered by specificity; the first match wins.
func ClassifyAgent(optimalRange, soakingPower, splashBombs int) AgentClass {
	switch {
	case optimalRange == 6 && soakingPower == 24:
		return ClassSniper
	case optimalRange == 2 && splashBombs >= 3:
		return ClassBomber
	case optimalRange == 2 && soakingPower == 32:
		return ClassBerserker
	case optimalRange == 4 && splashBombs >= 2:
		return ClassAssault
	default:
		return ClassGunner
	}
}

// AgentProfile holds the immutable per-match attributes of an agent.
type AgentProfile struct {
	ID            int
	Owner         int
	ShootCooldown int
	OptimalRange  int
	SoakingPower  int
	SplashBombs   int
	Class         AgentClass
}

// AgentState holds the mutable per-turn attributes of an agent.
type AgentState struct {
	ID       int
	Pos      Position
	Cooldown int
	Bombs    int
	Wetness  int
	Alive    bool
}

// Health returns the remaining capacity before elimination (100 - wetness),
// floored at zero.
func (s AgentState) Health() int {
	h := 100 - s.Wetness
	if h < 0 {
		return 0
	}
	return h
}

// Ready reports whether the agent can shoot or throw this turn.
func (s AgentState) Ready() bool {
	return s.Cooldown == 0
}
