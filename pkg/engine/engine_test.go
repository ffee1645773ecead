package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	topo, err := da.NewTopology([]da.Intersection{
		da.NewIntersection("X", 0, 0, []string{"R1"}),
		da.NewIntersection("Y", 10, 0, []string{"R1", "R2"}),
		da.NewIntersection("Z", 20, 0, []string{"R2", "R3"}),
		da.NewIntersection("W", 10, 5, []string{"R3", "R4"}),
		da.NewIntersection("V", 0, 5, []string{"R4", "R1"}),
	})
	require.NoError(t, err)
	lengths := da.NewRoadLengths(map[string]float64{"R1": 12, "R2": 10, "R3": 15, "R4": 10})
	return NewEngineFromData(topo, lengths, flood.NewStore(), zap.NewNop())
}

func TestEngineFindPathFollowsFloodStore(t *testing.T) {
	e := newTestEngine(t)

	res := e.FindPath("X", "Z", costfunction.OPTIMAL)
	require.True(t, res.Found)
	assert.Equal(t, []string{"R1", "R2"}, res.Roads)

	e.GetFloodStore().Replace(flood.NewSnapshot([]flood.Reading{
		{RoadID: "R2", Time: "08:00", Level: costfunction.SEVERITY_IMPASSABLE},
	}, time.Now()))

	res = e.FindPath("X", "Z", costfunction.OPTIMAL)
	require.True(t, res.Found)
	assert.Equal(t, []string{"R1", "R4", "R3"}, res.Roads)
	assert.Equal(t, 37.0, res.Distance)

	e.GetFloodStore().Replace(flood.NewSnapshot([]flood.Reading{
		{RoadID: "R2", Time: "08:05", Level: costfunction.SEVERITY_IMPASSABLE},
		{RoadID: "R3", Time: "08:05", Level: costfunction.SEVERITY_IMPASSABLE},
	}, time.Now()))

	res = e.FindPath("X", "Z", costfunction.SAFE)
	assert.False(t, res.Found)
}

func TestEngineFindPathUnknownIntersection(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name       string
		start, end string
	}{
		{"unknown start", "nope", "Z"},
		{"unknown end", "X", "nope"},
		{"empty ids", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.FindPath(tt.start, tt.end, costfunction.OPTIMAL)
			assert.False(t, res.Found)
			assert.Empty(t, res.Roads)
		})
	}
}

func TestEngineFindPathSameIntersection(t *testing.T) {
	e := newTestEngine(t)
	res := e.FindPath("Y", "Y", costfunction.SAFE)
	assert.True(t, res.Found)
	assert.Empty(t, res.Roads)
}

func TestEngineGetRoadLength(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, 15.0, e.GetRoadLength("R3"))
	assert.Equal(t, 10.0, e.GetRoadLength("unknown"))
}

func TestNewEngineFromFiles(t *testing.T) {
	dir := t.TempDir()
	topoPath := filepath.Join(dir, "junctions.json")
	lengthsPath := filepath.Join(dir, "road_lengths.json.bz2")

	e := newTestEngine(t)
	require.NoError(t, e.GetTopology().WriteTopology(topoPath))
	require.NoError(t, da.WriteRoadLengths(lengthsPath, map[string]float64{"R1": 12, "R2": 11}))

	loaded, err := NewEngine(topoPath, lengthsPath, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.GetTopology().NumberOfIntersections())
	assert.Equal(t, 11.0, loaded.GetRoadLength("R2"))

	res := loaded.FindPath("X", "Z", costfunction.OPTIMAL)
	require.True(t, res.Found)
	assert.Equal(t, 23.0, res.Distance)

	_, err = NewEngine(filepath.Join(dir, "missing.json"), lengthsPath, zap.NewNop())
	assert.Error(t, err)
}
