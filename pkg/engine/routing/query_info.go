package routing

import (
	"github.com/lintang-b-s/floodnav/pkg"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
)

// vertexRoadPair. predecessor of a vertex on its current best path and the road used to reach it.
type vertexRoadPair struct {
	vertex da.Index
	roadId string
	length float64
}

func newVertexRoadPair(vertex da.Index, roadId string, length float64) vertexRoadPair {
	return vertexRoadPair{vertex: vertex, roadId: roadId, length: length}
}

func (vr vertexRoadPair) getVertex() da.Index {
	return vr.vertex
}

func (vr vertexRoadPair) getRoadId() string {
	return vr.roadId
}

func (vr vertexRoadPair) getLength() float64 {
	return vr.length
}

type VertexInfo struct {
	cost     float64 // g-score
	parent   vertexRoadPair
	scanned  bool
	heapNode *da.PriorityQueueNode[da.Index]
}

func (vi *VertexInfo) GetCost() float64 {
	return vi.cost
}

func (vi *VertexInfo) update(cost float64, parent vertexRoadPair) {
	vi.cost = cost
	vi.parent = parent
}

func (vi *VertexInfo) Scan() {
	vi.scanned = true
}

func (vi *VertexInfo) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo) getParent() vertexRoadPair {
	return vi.parent
}

func initInfWeightVertexInfo(vs []VertexInfo) {
	for i := range vs {
		vs[i] = VertexInfo{
			cost:   pkg.INF_WEIGHT,
			parent: newVertexRoadPair(da.INVALID_INDEX, "", 0),
		}
	}
}
