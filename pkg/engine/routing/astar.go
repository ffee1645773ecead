package routing

import (
	"github.com/lintang-b-s/floodnav/pkg"
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/util"
)

/*
AstarSearch. A* over the intersection graph with flood dependent edge weights.

edge weights are evaluated during the search from the current severity of the road and the routing policy:
severity 3 roads are skipped under every policy, the safe policy inflates severity 1 and 2 roads.
the heuristic is the straight line distance to the target, it never overestimates because the policy
multipliers only increase the cost of an edge.

every search owns its g-scores, predecessors and open set, nothing is shared between calls.
*/
type AstarSearch struct {
	graph     Graph
	positions Positions
	levels    costfunction.SeverityLookup
	cost      costfunction.CostFunction

	info []VertexInfo
	pq   *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewAstarSearch(graph Graph, positions Positions, levels costfunction.SeverityLookup,
	cost costfunction.CostFunction) *AstarSearch {
	if levels == nil {
		levels = costfunction.NoFlood{}
	}
	if cost == nil {
		cost = costfunction.NewOptimalCostFunction()
	}
	return &AstarSearch{
		graph:     graph,
		positions: positions,
		levels:    levels,
		cost:      cost,
		pq:        da.NewFourAryHeap[da.Index](),
	}
}

func (as *AstarSearch) Preallocate() {
	n := as.graph.NumberOfVertices()
	as.info = make([]VertexInfo, n)
	initInfWeightVertexInfo(as.info)
	as.pq.Preallocate(n)
	as.numSettledNodes = 0
}

func (as *AstarSearch) validVertex(u da.Index) bool {
	return u != da.INVALID_INDEX && int(u) < as.graph.NumberOfVertices()
}

// ShortestPath. route from s to t. unknown endpoints and exhausted open sets both give an unreachable result.
func (as *AstarSearch) ShortestPath(s, t da.Index) PathResult {
	if !as.validVertex(s) || !as.validVertex(t) {
		return Unreachable()
	}
	if s == t {
		return PathResult{
			Roads:         []string{},
			Intersections: []da.Index{s},
			Found:         true,
		}
	}

	as.Preallocate()

	as.info[s].update(0, newVertexRoadPair(da.INVALID_INDEX, "", 0))
	sNode := da.NewPriorityQueueNode(as.positions.EuclideanDistance(s, t), s)
	as.info[s].heapNode = sNode
	as.pq.Insert(sNode)

	for !as.pq.IsEmpty() {
		node, _ := as.pq.ExtractMin()
		u := node.GetItem()

		if u == t {
			return as.reconstructPath(s, t)
		}

		as.info[u].Scan()
		as.numSettledNodes++

		as.relaxOutEdges(u, t)
	}

	res := Unreachable()
	res.NumSettledNodes = as.numSettledNodes
	return res
}

func (as *AstarSearch) relaxOutEdges(u, t da.Index) {
	uCost := as.info[u].GetCost()

	for _, e := range as.graph.OutEdges(u) {
		v := e.GetTo()
		if as.info[v].IsScanned() {
			continue
		}

		severity := as.levels.GetSeverity(e.GetRoadId())
		weight, passable := as.cost.GetWeight(e, severity)
		if !passable {
			continue
		}

		newCost := uCost + weight
		if newCost >= pkg.INF_WEIGHT || !da.Lt(newCost, as.info[v].GetCost()) {
			continue
		}

		as.info[v].update(newCost, newVertexRoadPair(u, e.GetRoadId(), e.GetLength()))

		priority := newCost + as.positions.EuclideanDistance(v, t)

		vNode := as.info[v].heapNode
		if vNode != nil && vNode.GetPos() >= 0 {
			// already in the open set
			_ = as.pq.DecreaseKey(vNode, priority)
			continue
		}

		vNode = da.NewPriorityQueueNode(priority, v)
		as.info[v].heapNode = vNode
		as.pq.Insert(vNode)
	}
}

// reconstructPath. walk the predecessors from t back to s, then reverse.
func (as *AstarSearch) reconstructPath(s, t da.Index) PathResult {
	roads := make([]string, 0)
	vertices := []da.Index{t}
	dist := 0.0

	cur := t
	for cur != s {
		parent := as.info[cur].getParent()
		roads = append(roads, parent.getRoadId())
		dist += parent.getLength()
		cur = parent.getVertex()
		vertices = append(vertices, cur)
	}

	return PathResult{
		Roads:           util.ReverseG(roads),
		Intersections:   util.ReverseG(vertices),
		Distance:        dist,
		Cost:            as.info[t].GetCost(),
		Found:           true,
		NumSettledNodes: as.numSettledNodes,
	}
}

// FindPath. one shot A* search on a freshly built graph.
func FindPath(graph Graph, positions Positions, s, t da.Index, levels costfunction.SeverityLookup,
	cost costfunction.CostFunction) PathResult {
	return NewAstarSearch(graph, positions, levels, cost).ShortestPath(s, t)
}
