package routing

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTopology(t *testing.T, intersections ...da.Intersection) *da.Topology {
	t.Helper()
	topo, err := da.NewTopology(intersections)
	require.NoError(t, err)
	return topo
}

func mustIndex(t *testing.T, topo *da.Topology, id string) da.Index {
	t.Helper()
	idx, ok := topo.IndexOf(id)
	require.Truef(t, ok, "unknown intersection %s", id)
	return idx
}

func solve(t *testing.T, topo *da.Topology, lengths map[string]float64, from, to string,
	levels costfunction.SeverityMap, policy costfunction.Policy) PathResult {
	t.Helper()
	g := da.BuildAdjacencyGraph(topo, da.NewRoadLengths(lengths))
	return FindPath(g, topo, mustIndex(t, topo, from), mustIndex(t, topo, to), levels,
		costfunction.NewCostFunction(policy))
}

func xyzTopology(t *testing.T) *da.Topology {
	return buildTopology(t,
		da.NewIntersection("X", 0, 0, []string{"R1"}),
		da.NewIntersection("Y", 10, 0, []string{"R1", "R2"}),
		da.NewIntersection("Z", 15, 0, []string{"R2"}),
	)
}

func TestFindPathImpassableRoad(t *testing.T) {
	topo := xyzTopology(t)
	lengths := map[string]float64{"R1": 10, "R2": 5}
	levels := costfunction.SeverityMap{"R1": costfunction.SEVERITY_NORMAL, "R2": costfunction.SEVERITY_IMPASSABLE}

	for _, policy := range []costfunction.Policy{costfunction.OPTIMAL, costfunction.SAFE} {
		t.Run(policy.String(), func(t *testing.T) {
			res := solve(t, topo, lengths, "X", "Z", levels, policy)
			assert.False(t, res.Found)
			assert.Empty(t, res.Roads)

			res = solve(t, topo, lengths, "X", "Y", levels, policy)
			require.True(t, res.Found)
			assert.Equal(t, []string{"R1"}, res.Roads)
			assert.Equal(t, 10.0, res.Distance)
		})
	}
}

func TestFindPathMediumSeverityWithoutAlternative(t *testing.T) {
	topo := xyzTopology(t)
	lengths := map[string]float64{"R1": 10, "R2": 5}
	levels := costfunction.SeverityMap{"R2": costfunction.SEVERITY_MEDIUM}

	res := solve(t, topo, lengths, "X", "Z", levels, costfunction.SAFE)
	require.True(t, res.Found)
	assert.Equal(t, []string{"R1", "R2"}, res.Roads)
	assert.Equal(t, 15.0, res.Distance)
	assert.Equal(t, 60.0, res.Cost)

	x, y, z := mustIndex(t, topo, "X"), mustIndex(t, topo, "Y"), mustIndex(t, topo, "Z")
	assert.Equal(t, []da.Index{x, y, z}, res.Intersections)
}

func TestFindPathSameEndpoints(t *testing.T) {
	topo := xyzTopology(t)
	levels := costfunction.SeverityMap{"R1": costfunction.SEVERITY_IMPASSABLE, "R2": costfunction.SEVERITY_IMPASSABLE}

	for _, id := range []string{"X", "Y", "Z"} {
		res := solve(t, topo, nil, id, id, levels, costfunction.SAFE)
		assert.True(t, res.Found)
		assert.NotNil(t, res.Roads)
		assert.Empty(t, res.Roads)
	}
}

func TestFindPathInvalidEndpoint(t *testing.T) {
	topo := xyzTopology(t)
	g := da.BuildAdjacencyGraph(topo, da.NewRoadLengths(nil))
	x := mustIndex(t, topo, "X")

	res := FindPath(g, topo, x, da.INVALID_INDEX, nil, nil)
	assert.False(t, res.Found)

	res = FindPath(g, topo, da.Index(42), x, nil, nil)
	assert.False(t, res.Found)
}

func TestFindPathIsolatedIntersection(t *testing.T) {
	topo := buildTopology(t,
		da.NewIntersection("A", 0, 0, []string{"R1"}),
		da.NewIntersection("B", 1, 0, []string{"R1"}),
		da.NewIntersection("C", 2, 0, []string{"R9"}),
	)
	res := solve(t, topo, nil, "A", "C", nil, costfunction.OPTIMAL)
	assert.False(t, res.Found)
}

func TestFindPathUsesCliqueShortcut(t *testing.T) {
	// R1 lists A, M and B. A reaches B with the single road R1 instead of going through M.
	topo := buildTopology(t,
		da.NewIntersection("A", 0, 0, []string{"R1"}),
		da.NewIntersection("M", 5, 0, []string{"R1"}),
		da.NewIntersection("B", 10, 0, []string{"R1"}),
	)
	res := solve(t, topo, map[string]float64{"R1": 10}, "A", "B", nil, costfunction.OPTIMAL)
	require.True(t, res.Found)
	assert.Equal(t, []string{"R1"}, res.Roads)
}

// twoRouteTopology. S-T directly over SHORT, or S-M-T over LONG1 and LONG2.
func twoRouteTopology(t *testing.T) *da.Topology {
	return buildTopology(t,
		da.NewIntersection("S", 0, 0, []string{"SHORT", "LONG1"}),
		da.NewIntersection("M", 0, 0, []string{"LONG1", "LONG2"}),
		da.NewIntersection("T", 0, 0, []string{"SHORT", "LONG2"}),
	)
}

func TestFindPathSafePolicyBoundary(t *testing.T) {
	topo := twoRouteTopology(t)
	levels := costfunction.SeverityMap{"SHORT": costfunction.SEVERITY_MEDIUM}
	l1 := 10.0

	testCases := []struct {
		name       string
		longLength float64 // L2
		policy     costfunction.Policy
		want       []string
	}{
		{name: "safe L2 below 10xL1", longLength: 99, policy: costfunction.SAFE, want: []string{"LONG1", "LONG2"}},
		{name: "safe L2 above 10xL1", longLength: 101, policy: costfunction.SAFE, want: []string{"SHORT"}},
		{name: "optimal L2 below 10xL1", longLength: 99, policy: costfunction.OPTIMAL, want: []string{"SHORT"}},
		{name: "optimal L2 above 10xL1", longLength: 101, policy: costfunction.OPTIMAL, want: []string{"SHORT"}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			lengths := map[string]float64{"SHORT": l1, "LONG1": tt.longLength / 2, "LONG2": tt.longLength / 2}
			res := solve(t, topo, lengths, "S", "T", levels, tt.policy)
			require.True(t, res.Found)
			assert.Equal(t, tt.want, res.Roads)
		})
	}
}

func TestFindPathSafePolicyLowSeverity(t *testing.T) {
	topo := twoRouteTopology(t)
	levels := costfunction.SeverityMap{"SHORT": costfunction.SEVERITY_LOW}

	// 1.5 x 10 = 15 > 14
	lengths := map[string]float64{"SHORT": 10, "LONG1": 7, "LONG2": 7}
	res := solve(t, topo, lengths, "S", "T", levels, costfunction.SAFE)
	require.True(t, res.Found)
	assert.Equal(t, []string{"LONG1", "LONG2"}, res.Roads)
	assert.Equal(t, 14.0, res.Cost)

	lengths = map[string]float64{"SHORT": 10, "LONG1": 8, "LONG2": 8}
	res = solve(t, topo, lengths, "S", "T", levels, costfunction.SAFE)
	require.True(t, res.Found)
	assert.Equal(t, []string{"SHORT"}, res.Roads)
	assert.Equal(t, 15.0, res.Cost)
	assert.Equal(t, 10.0, res.Distance)
}

func TestFindPathDeterministicTies(t *testing.T) {
	// two routes of equal length, the one discovered first wins every time
	topo := buildTopology(t,
		da.NewIntersection("S", 0, 0, []string{"A1", "B1"}),
		da.NewIntersection("P", 0, 0, []string{"A1", "A2"}),
		da.NewIntersection("Q", 0, 0, []string{"B1", "B2"}),
		da.NewIntersection("T", 0, 0, []string{"A2", "B2"}),
	)

	var first []string
	for i := 0; i < 20; i++ {
		res := solve(t, topo, nil, "S", "T", nil, costfunction.OPTIMAL)
		require.True(t, res.Found)
		if first == nil {
			first = res.Roads
			continue
		}
		assert.Equal(t, first, res.Roads)
	}
	assert.Equal(t, []string{"A1", "A2"}, first)
}

type randomNetwork struct {
	topo    *da.Topology
	lengths map[string]float64
	levels  costfunction.SeverityMap
}

func newRandomNetwork(t *testing.T, rnd *rand.Rand, numIntersections, numRoads int) randomNetwork {
	intersections := make([]da.Intersection, numIntersections)
	for i := 0; i < numIntersections; i++ {
		roads := make([]string, 0)
		for r := 0; r < numRoads; r++ {
			if rnd.Float64() < 0.3 {
				roads = append(roads, fmt.Sprintf("R%d", r))
			}
		}
		intersections[i] = da.NewIntersection(fmt.Sprintf("J%02d", i), rnd.Float64()*100, rnd.Float64()*100, roads)
	}
	topo := buildTopology(t, intersections...)

	// lengths never below the straight line span of the road, keeps the heuristic admissible
	lengths := da.EstimateRoadLengths(topo)
	levels := costfunction.SeverityMap{}
	for roadId := range lengths {
		lengths[roadId] += float64(rnd.Intn(50))
		levels[roadId] = costfunction.Severity(rnd.Intn(4))
	}
	return randomNetwork{topo: topo, lengths: lengths, levels: levels}
}

// bruteForce. cheapest simple path cost by exhaustive dfs.
func bruteForce(g *da.AdjacencyGraph, s, t da.Index, levels costfunction.SeverityLookup,
	cost costfunction.CostFunction) float64 {
	best := math.Inf(1)
	visited := make([]bool, g.NumberOfVertices())

	var dfs func(u da.Index, acc float64)
	dfs = func(u da.Index, acc float64) {
		if acc >= best {
			return
		}
		if u == t {
			best = acc
			return
		}
		visited[u] = true
		for _, e := range g.OutEdges(u) {
			if visited[e.GetTo()] {
				continue
			}
			w, ok := cost.GetWeight(e, levels.GetSeverity(e.GetRoadId()))
			if !ok {
				continue
			}
			dfs(e.GetTo(), acc+w)
		}
		visited[u] = false
	}
	dfs(s, 0)
	return best
}

func TestFindPathMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for iter := 0; iter < 30; iter++ {
		net := newRandomNetwork(t, rnd, 8, 10)
		g := da.BuildAdjacencyGraph(net.topo, da.NewRoadLengths(net.lengths))

		for _, policy := range []costfunction.Policy{costfunction.OPTIMAL, costfunction.SAFE} {
			cf := costfunction.NewCostFunction(policy)
			for s := da.Index(0); s < 8; s++ {
				for tt := da.Index(0); tt < 8; tt++ {
					res := FindPath(g, net.topo, s, tt, net.levels, cf)
					want := bruteForce(g, s, tt, net.levels, cf)

					if math.IsInf(want, 1) {
						assert.Falsef(t, res.Found, "iter %d %s: %d -> %d should be unreachable", iter, policy, s, tt)
						continue
					}
					require.Truef(t, res.Found, "iter %d %s: %d -> %d should be reachable", iter, policy, s, tt)
					assert.InDeltaf(t, want, res.Cost, 1e-6, "iter %d %s: %d -> %d", iter, policy, s, tt)

					if policy == costfunction.OPTIMAL {
						assert.InDelta(t, res.Cost, res.Distance, 1e-6)
					}
					for _, roadId := range res.Roads {
						assert.NotEqual(t, costfunction.SEVERITY_IMPASSABLE, net.levels.GetSeverity(roadId))
					}
				}
			}
		}
	}
}
