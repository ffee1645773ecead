package datastructure

import (
	"fmt"

	"github.com/golang/geo/r2"
	"golang.org/x/exp/slices"
)

// Intersection. a junction of the road network. the position is only used for the search heuristic,
// connectivity comes from the incident road ids alone.
type Intersection struct {
	id       string
	position r2.Point
	roads    []string
}

func NewIntersection(id string, x, y float64, roads []string) Intersection {
	return Intersection{
		id:       id,
		position: r2.Point{X: x, Y: y},
		roads:    dedupRoads(roads),
	}
}

func (i Intersection) GetID() string {
	return i.id
}

func (i Intersection) GetPosition() r2.Point {
	return i.position
}

func (i Intersection) GetRoads() []string {
	return slices.Clone(i.roads)
}

// dedupRoads. a road listed twice on the same intersection must not connect the intersection to itself.
func dedupRoads(roads []string) []string {
	seen := make(map[string]struct{}, len(roads))
	out := make([]string, 0, len(roads))
	for _, r := range roads {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Topology. static intersection table with a dense id<->index mapping built once at load.
type Topology struct {
	intersections []Intersection
	idToIndex     map[string]Index
}

func NewTopology(intersections []Intersection) (*Topology, error) {
	t := &Topology{
		intersections: make([]Intersection, len(intersections)),
		idToIndex:     make(map[string]Index, len(intersections)),
	}
	for i, in := range intersections {
		if in.id == "" {
			return nil, fmt.Errorf("intersection at position %d has an empty id", i)
		}
		if _, dup := t.idToIndex[in.id]; dup {
			return nil, fmt.Errorf("duplicate intersection id %s", in.id)
		}
		t.intersections[i] = in
		t.idToIndex[in.id] = Index(i)
	}
	return t, nil
}

func (t *Topology) NumberOfIntersections() int {
	return len(t.intersections)
}

func (t *Topology) GetIntersection(idx Index) Intersection {
	return t.intersections[idx]
}

func (t *Topology) GetIntersectionID(idx Index) string {
	return t.intersections[idx].id
}

func (t *Topology) GetPosition(idx Index) r2.Point {
	return t.intersections[idx].position
}

func (t *Topology) IndexOf(id string) (Index, bool) {
	idx, ok := t.idToIndex[id]
	return idx, ok
}

func (t *Topology) ForIntersections(handle func(idx Index, in Intersection)) {
	for i, in := range t.intersections {
		handle(Index(i), in)
	}
}

// RoadIDs. every road id referenced by the topology, sorted.
func (t *Topology) RoadIDs() []string {
	set := make(map[string]struct{})
	for _, in := range t.intersections {
		for _, r := range in.roads {
			set[r] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for r := range set {
		ids = append(ids, r)
	}
	slices.Sort(ids)
	return ids
}

// EuclideanDistance. straight line distance between two intersections in map units.
func (t *Topology) EuclideanDistance(u, v Index) float64 {
	return t.intersections[u].position.Sub(t.intersections[v].position).Norm()
}
