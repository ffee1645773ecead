package usecases

import (
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/engine/routing"
	"github.com/lintang-b-s/floodnav/pkg/flood"
)

type RoutingEngine interface {
	FindPath(startID, endID string, policy costfunction.Policy) routing.PathResult
	GetTopology() *da.Topology
	GetRoadLength(roadID string) float64
	GetFloodStore() *flood.Store
}

type SpatialIndex interface {
	NearestIntersection(x, y float64) (da.Index, float64, bool)
	SearchWithinRadius(x, y, radius float64) []da.Index
}
