package combat

import "github.com/razv0n/soakbot/internal/model"

// CoverModifier returns the damage multiplier an attack suffers from cover
// tiles adjacent to the target: 0.5 behind light cover, 0.25 behind heavy
// cover, 1.0 in the open. A tile only counts when it sits between shooter
// and target on the attack axis.
func CoverModifier(board *model.Board, shooter, target model.Position) float64 {
	best := 1.0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			cx := target.X + dx
			cy := target.Y + dy
			if !board.InBounds(cx, cy) {
				continue
			}
			var mult float64
			switch board.TileAt(cx, cy) {
			case model.TileLightCover:
				mult = 0.5
			case model.TileHeavyCover:
				mult = 0.25
			default:
				continue
			}
			if blocksShot(shooter, target, cx, cy) && mult < best {
				best = mult
			}
		}
	}
	return best
}

// blocksShot reports whether the cover tile lies between shooter and target
// on the attack axis.
func blocksShot(shooter, target model.Position, cx, cy int) bool {
	if cy == target.Y {
		if cx == target.X+1 && shooter.X > target.X {
			return true
		}
		if cx == target.X-1 && shooter.X < target.X {
			return true
		}
	}
	if cx == target.X {
		if cy == target.Y+1 && shooter.Y > target.Y {
			return true
		}
		if cy == target.Y-1 && shooter.Y < target.Y {
			return true
		}
	}
	return false
}
