package spatialindex

import (
	"math"

	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. spatial index over intersection positions, used to snap a map click to the nearest intersection.
type Rtree struct {
	tr       *rtree.RTreeG[da.Index]
	topology *da.Topology
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Build(topology *da.Topology, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("intersections", topology.NumberOfIntersections()))
	rt.topology = topology

	topology.ForIntersections(func(idx da.Index, in da.Intersection) {
		p := in.GetPosition()
		point := [2]float64{p.X, p.Y}
		rt.tr.Insert(point, point, idx)
	})

	log.Info("R-tree spatial index built.")
}

// boxDistance. squared distance from (x, y) to the box, zero inside.
func boxDistance(x, y float64) func(min, max [2]float64, data da.Index, item bool) float64 {
	return func(min, max [2]float64, data da.Index, item bool) float64 {
		dx := math.Max(math.Max(min[0]-x, 0), x-max[0])
		dy := math.Max(math.Max(min[1]-y, 0), y-max[1])
		return dx*dx + dy*dy
	}
}

// NearestIntersection. nearest intersection to (x, y) and its euclidean distance.
func (rt *Rtree) NearestIntersection(x, y float64) (da.Index, float64, bool) {
	nearest := da.INVALID_INDEX
	nearestDist := math.Inf(1)

	rt.tr.Nearby(boxDistance(x, y), func(min, max [2]float64, data da.Index, dist float64) bool {
		nearest = data
		nearestDist = math.Sqrt(dist)
		return false
	})

	if nearest == da.INVALID_INDEX {
		return da.INVALID_INDEX, 0, false
	}
	return nearest, nearestDist, true
}

// SearchWithinRadius. intersections within radius of (x, y), nearest first.
func (rt *Rtree) SearchWithinRadius(x, y, radius float64) []da.Index {
	results := make([]da.Index, 0, 8)
	r2 := radius * radius
	rt.tr.Nearby(boxDistance(x, y), func(min, max [2]float64, data da.Index, dist float64) bool {
		if dist > r2 {
			return false
		}
		results = append(results, data)
		return true
	})
	return results
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}
