package geo

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-polyline"
)

// PolylineFromPoints. encode map points as a google polyline, y first like a latitude.
func PolylineFromPoints(points []r2.Point) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Y, p.X})
	}
	return string(polyline.EncodeCoords(coords))
}

func PointsFromPolyline(s string) ([]r2.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	points := make([]r2.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, r2.Point{X: c[1], Y: c[0]})
	}
	return points, nil
}
