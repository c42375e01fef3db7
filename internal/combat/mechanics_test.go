package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/razv0n/soakbot/internal/model"
)

func TestAttackDamage_LinearFalloff(t *testing.T) {
	tests := []struct {
		name         string
		power        int
		distance     int
		optimalRange int
		want         int
	}{
		{"point blank deals nothing", 16, 0, 4, 0},
		{"full power at distance 1", 16, 1, 4, 16},
		{"quarter falloff per step", 16, 2, 4, 12},
		{"half power at distance 3", 16, 3, 4, 8},
		{"edge of range", 16, 4, 4, 4},
		{"beyond range deals nothing", 16, 5, 4, 0},
		{"sniper full power", 24, 1, 6, 24},
		{"sniper at max range", 24, 6, 6, 0},
		{"berserker close up", 32, 2, 2, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttackDamage(tt.power, tt.distance, tt.optimalRange))
		})
	}
}

func TestAttackDamage_NeverNegative(t *testing.T) {
	for d := 0; d <= 10; d++ {
		assert.GreaterOrEqual(t, AttackDamage(8, d, 6), 0, "distance %d", d)
	}
}

func TestSplashDamage(t *testing.T) {
	assert.Equal(t, 30, SplashDamage(0, false))
	assert.Equal(t, 30, SplashDamage(1, false))
	assert.Equal(t, 0, SplashDamage(2, false))
	assert.Equal(t, 15, SplashDamage(0, true))
	assert.Equal(t, 15, SplashDamage(1, true))
	assert.Equal(t, 0, SplashDamage(2, true))
}

func TestMovementCost(t *testing.T) {
	assert.Equal(t, 1, MovementCost(0, true))
	assert.Equal(t, 2, MovementCost(1, true))
	assert.Equal(t, 2, MovementCost(50, true))
	assert.Equal(t, 2, MovementCost(99, true))
	assert.Equal(t, 1, MovementCost(99, false), "flag off means flat cost")
}

func TestKillProbability(t *testing.T) {
	assert.Equal(t, 1.0, KillProbability(90, 10))
	assert.Equal(t, 1.0, KillProbability(90, 20))
	assert.Equal(t, 0.5, KillProbability(30, 20))
	assert.Equal(t, 0.0, KillProbability(0, 0))
	assert.InDelta(t, 0.99, KillProbability(90, 9), 1e-9)
}

func TestTacticalAdvantage(t *testing.T) {
	// even match
	assert.InDelta(t, 1.0, TacticalAdvantage(2, 2, 150, 150), 1e-9)
	// outnumbering and healthier
	assert.Greater(t, TacticalAdvantage(3, 1, 250, 40), 1.0)
	// zero enemies must not divide by zero
	adv := TacticalAdvantage(2, 0, 180, 0)
	assert.InDelta(t, 0.6*2+0.4*180, adv, 1e-9)
}

func TestCoverModifier(t *testing.T) {
	board := model.NewBoard(10, 10)
	shooter := model.Position{X: 1, Y: 5}
	target := model.Position{X: 6, Y: 5}

	assert.Equal(t, 1.0, CoverModifier(board, shooter, target), "open ground")

	// light cover between shooter and target
	board.Tiles[5][5] = model.TileLightCover
	assert.Equal(t, 0.5, CoverModifier(board, shooter, target))

	// heavy cover dominates
	board.Tiles[4][5] = model.TileHeavyCover
	assert.Equal(t, 0.5, CoverModifier(board, shooter, target), "cover off axis does not block")
	board.Tiles[5][5] = model.TileHeavyCover
	assert.Equal(t, 0.25, CoverModifier(board, shooter, target))
}

func TestCoverModifier_FarSideDoesNotBlock(t *testing.T) {
	board := model.NewBoard(10, 10)
	shooter := model.Position{X: 1, Y: 5}
	target := model.Position{X: 6, Y: 5}

	// cover behind the target relative to the shooter
	board.Tiles[5][7] = model.TileHeavyCover
	assert.Equal(t, 1.0, CoverModifier(board, shooter, target))
}

func TestCoverModifier_VerticalAxis(t *testing.T) {
	board := model.NewBoard(10, 10)
	shooter := model.Position{X: 3, Y: 1}
	target := model.Position{X: 3, Y: 6}

	board.Tiles[5][3] = model.TileLightCover
	assert.Equal(t, 0.5, CoverModifier(board, shooter, target))
}
