package datastructure

import (
	"math"

	"github.com/lintang-b-s/floodnav/pkg"
)

/*
BuildAdjacencyGraph. build the intersection graph from the topology and the road length table.

intersections are vertices. for every road id, all intersections that list it are connected pairwise
(a clique, not a chain), so a long road split into sections through interior intersections still lets
any two of its intersections reach each other directly. roads that only cross on the map without a
shared intersection entry are never connected, coordinates play no part here.

the graph is allocated fresh on every call and never mutated afterwards.
*/
func BuildAdjacencyGraph(topology *Topology, lengths *RoadLengths) *AdjacencyGraph {
	n := topology.NumberOfIntersections()
	graph := newAdjacencyGraph(n)

	// road id -> intersections that list it, roads kept in order of first appearance
	roadOrder := make([]string, 0)
	roadToIntersections := make(map[string][]Index)

	topology.ForIntersections(func(idx Index, in Intersection) {
		for _, roadId := range in.roads {
			if _, ok := roadToIntersections[roadId]; !ok {
				roadOrder = append(roadOrder, roadId)
			}
			roadToIntersections[roadId] = append(roadToIntersections[roadId], idx)
		}
	})

	for _, roadId := range roadOrder {
		members := roadToIntersections[roadId]
		length := lengths.GetLength(roadId)

		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				graph.addUndirectedEdge(members[i], members[j], roadId, length)
			}
		}
	}

	return graph
}

// EstimateRoadLengths. length of each road = largest euclidean span between two intersections listing it.
// roads with a single incident intersection get the default length.
func EstimateRoadLengths(topology *Topology) map[string]float64 {
	roadToIntersections := make(map[string][]Index)
	topology.ForIntersections(func(idx Index, in Intersection) {
		for _, roadId := range in.roads {
			roadToIntersections[roadId] = append(roadToIntersections[roadId], idx)
		}
	})

	lengths := make(map[string]float64, len(roadToIntersections))
	for roadId, members := range roadToIntersections {
		if len(members) < 2 {
			lengths[roadId] = pkg.DEFAULT_ROAD_LENGTH
			continue
		}
		span := 0.0
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				span = math.Max(span, topology.EuclideanDistance(members[i], members[j]))
			}
		}
		lengths[roadId] = math.Ceil(span)
	}
	return lengths
}
