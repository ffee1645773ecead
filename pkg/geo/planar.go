package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// Distance. straight line distance on the map plane.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

/*
BearingTo. heading from a to b in degrees, clockwise from north.
map coordinates grow downwards on the y axis, so north is -y.
*/
func BearingTo(a, b r2.Point) float64 {
	d := b.Sub(a)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	brng := math.Atan2(d.X, -d.Y) * 180.0 / math.Pi
	return math.Mod(brng+360.0, 360.0)
}

// PathLength. sum of the straight line legs.
func PathLength(points []r2.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
