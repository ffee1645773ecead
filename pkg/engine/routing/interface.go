package routing

import (
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
)

type Router interface {
	ShortestPath(s, t da.Index) PathResult
}

type Graph interface {
	NumberOfVertices() int
	OutEdges(u da.Index) []da.AdjacencyEdge
}

type Positions interface {
	EuclideanDistance(u, v da.Index) float64
}

var (
	_ Graph                       = (*da.AdjacencyGraph)(nil)
	_ Positions                   = (*da.Topology)(nil)
	_ costfunction.EdgeAttributes = da.AdjacencyEdge{}
)
