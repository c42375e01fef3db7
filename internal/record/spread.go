package record

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/razv0n/soakbot/internal/model"
)

// TeamSpread returns the convex hull area of a team's positions. Collinear
// or degenerate formations yield zero.
func TeamSpread(positions []model.Position) float64 {
	if len(positions) < 3 {
		return 0
	}

	points := make([]geom.Point, 0, len(positions))
	for _, p := range positions {
		points = append(points, geom.NewPoint(geom.Coordinates{
			XY:   geom.XY{X: float64(p.X), Y: float64(p.Y)},
			Type: geom.DimXY,
		}))
	}

	hull := geom.NewMultiPoint(points).AsGeometry().ConvexHull()
	return hull.Area()
}
