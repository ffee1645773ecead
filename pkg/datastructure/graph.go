package datastructure

import "math"

type Index uint32

const (
	INVALID_INDEX Index = math.MaxUint32
)

// AdjacencyEdge. directed half of a road connection between two intersections.
type AdjacencyEdge struct {
	to     Index
	roadId string
	length float64
}

func NewAdjacencyEdge(to Index, roadId string, length float64) AdjacencyEdge {
	return AdjacencyEdge{
		to:     to,
		roadId: roadId,
		length: length,
	}
}

func (e AdjacencyEdge) GetTo() Index {
	return e.to
}

func (e AdjacencyEdge) GetRoadId() string {
	return e.roadId
}

func (e AdjacencyEdge) GetLength() float64 {
	return e.length
}

// AdjacencyGraph. adjacency list indexed by the dense intersection index of a Topology.
// every intersection of the topology has an entry, isolated ones have an empty list.
type AdjacencyGraph struct {
	adj      [][]AdjacencyEdge
	numEdges int
}

func newAdjacencyGraph(numVertices int) *AdjacencyGraph {
	adj := make([][]AdjacencyEdge, numVertices)
	for i := range adj {
		adj[i] = make([]AdjacencyEdge, 0)
	}
	return &AdjacencyGraph{adj: adj}
}

func (g *AdjacencyGraph) addUndirectedEdge(u, v Index, roadId string, length float64) {
	g.adj[u] = append(g.adj[u], NewAdjacencyEdge(v, roadId, length))
	g.adj[v] = append(g.adj[v], NewAdjacencyEdge(u, roadId, length))
	g.numEdges += 2
}

func (g *AdjacencyGraph) NumberOfVertices() int {
	return len(g.adj)
}

// NumberOfEdges. number of directed edges
func (g *AdjacencyGraph) NumberOfEdges() int {
	return g.numEdges
}

func (g *AdjacencyGraph) OutEdges(u Index) []AdjacencyEdge {
	if int(u) >= len(g.adj) {
		return nil
	}
	return g.adj[u]
}

func (g *AdjacencyGraph) ForOutEdgesOf(u Index, handle func(e AdjacencyEdge)) {
	for _, e := range g.OutEdges(u) {
		handle(e)
	}
}

func (g *AdjacencyGraph) HasEdge(u, v Index, roadId string) bool {
	for _, e := range g.OutEdges(u) {
		if e.to == v && e.roadId == roadId {
			return true
		}
	}
	return false
}
