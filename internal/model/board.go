// Package model holds the core data types of the decision engine: the board,
// agent profiles and per-turn states, and the action/decision vocabulary.
package model

// Tile types on the board grid.
const (
	TileEmpty      = 0
	TileLightCover = 1
	TileHeavyCover = 2
)

// Position is a grid coordinate.
type Position struct {
	X int
	Y int
}

// ManhattanDistance returns the L1 distance between two positions.
func ManhattanDistance(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Board is the rectangular tile grid. Tiles are indexed [y][x].
type Board struct {
	Width  int
	Height int
	Tiles  [][]int
}

// NewBoard allocates an empty board of the given dimensions.
func NewBoard(width, height int) *Board {
	tiles := make([][]int, height)
	for y := range tiles {
		tiles[y] = make([]int, width)
	}
	return &Board{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// TileAt returns the tile type at (x, y), or TileEmpty when out of bounds.
func (b *Board) TileAt(x, y int) int {
	if !b.InBounds(x, y) {
		return TileEmpty
	}
	return b.Tiles[y][x]
}

// IsCover reports whether the tile at (x, y) provides cover.
func (b *Board) IsCover(x, y int) bool {
	t := b.TileAt(x, y)
	return t == TileLightCover || t == TileHeavyCover
}

// StrategicValue scores a tile for positioning in [0, 1]. Cover tiles score
// by protection strength, open tiles slightly higher toward the board center.
func (b *Board) StrategicValue(x, y int) float64 {
	switch b.TileAt(x, y) {
	case TileHeavyCover:
		return 1.0
	case TileLightCover:
		return 0.6
	}
	cx := float64(b.Width-1) / 2
	cy := float64(b.Height-1) / 2
	dx := float64(x) - cx
	if dx < 0 {
		dx = -dx
	}
	dy := float64(y) - cy
	if dy < 0 {
		dy = -dy
	}
	spread := cx + cy
	if spread <= 0 {
		return 0.3
	}
	return 0.3 * (1 - (dx+dy)/spread)
}
