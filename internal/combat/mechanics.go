// Package combat implements the pure combat mechanics: damage, splash,
// movement cost, cover protection, kill probability, and the team-level
// tactical advantage score. All functions are side-effect free.
package combat

import "math"

// SplashBaseDamage is the fixed damage a splash bomb deals to every agent
// within Manhattan distance 1 of the landing tile.
const SplashBaseDamage = 30

// ThrowRange is the maximum Manhattan distance a bomb can be thrown.
const ThrowRange = 4

// AttackDamage returns the wetness inflicted by a direct attack at the given
// Manhattan distance. Zero at distance 0 and beyond the optimal range, with
// linear falloff of 25% per step inside it.
func AttackDamage(power, distance, optimalRange int) int {
	if distance == 0 || distance > optimalRange {
		return 0
	}
	dmg := int(math.Floor(float64(power) * (1.0 - 0.25*float64(distance-1))))
	if dmg < 0 {
		return 0
	}
	return dmg
}

// SplashDamage returns the wetness inflicted on an agent at the given
// Manhattan distance from a bomb's landing tile. Hunkered agents take half.
func SplashDamage(splashDistance int, hunkered bool) int {
	if splashDistance > 1 {
		return 0
	}
	if hunkered {
		return SplashBaseDamage / 2
	}
	return SplashBaseDamage
}

// MovementCost returns the cost of one movement step for an agent with the
// given wetness. When wetnessSlows is off every step costs 1.
func MovementCost(wetness int, wetnessSlows bool) int {
	if !wetnessSlows {
		return 1
	}
	return int(math.Ceil(1.0 + float64(wetness)*0.01))
}

// KillProbability returns the probability that incoming damage eliminates an
// agent at the given wetness. Certain at 100 accumulated wetness.
func KillProbability(wetness, damage int) float64 {
	if wetness+damage >= 100 {
		return 1.0
	}
	return float64(wetness+damage) / 100.0
}

// TacticalAdvantage scores the overall team position in favor of "my" side.
// Weighted blend of the alive ratio and the health ratio.
func TacticalAdvantage(myAlive, enemyAlive, myHealth, enemyHealth int) float64 {
	aliveRatio := float64(myAlive) / math.Max(1, float64(enemyAlive))
	healthRatio := float64(myHealth) / math.Max(1, float64(enemyHealth))
	return 0.6*aliveRatio + 0.4*healthRatio
}
