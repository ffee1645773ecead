package engine

import (
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/engine/routing"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"go.uber.org/zap"
)

// Engine. owns the static network data and the live flood store.
// the adjacency graph is rebuilt for every query, so a query always sees the current road lengths
// and exactly one flood snapshot.
type Engine struct {
	topology   *da.Topology
	lengths    *da.RoadLengths
	floodStore *flood.Store
	log        *zap.Logger
}

func NewEngine(topologyPath, roadLengthsPath string, log *zap.Logger) (*Engine, error) {
	log.Info("Starting flood aware routing engine...")

	log.Info("Reading topology from ", zap.String("topologyPath", topologyPath))
	topology, err := da.ReadTopology(topologyPath)
	if err != nil {
		return nil, err
	}

	log.Info("Reading road lengths from ", zap.String("roadLengthsPath", roadLengthsPath))
	lengths, err := da.ReadRoadLengths(roadLengthsPath)
	if err != nil {
		return nil, err
	}

	log.Info("Routing engine ready.", zap.Int("intersections", topology.NumberOfIntersections()),
		zap.Int("roads", len(topology.RoadIDs())), zap.Int("known_lengths", lengths.Len()))

	return NewEngineFromData(topology, lengths, flood.NewStore(), log), nil
}

func NewEngineFromData(topology *da.Topology, lengths *da.RoadLengths, store *flood.Store,
	log *zap.Logger) *Engine {
	if store == nil {
		store = flood.NewStore()
	}
	if lengths == nil {
		lengths = da.NewRoadLengths(nil)
	}
	return &Engine{
		topology:   topology,
		lengths:    lengths,
		floodStore: store,
		log:        log,
	}
}

// FindPath. route between two intersection ids. unknown ids give an unreachable result.
func (e *Engine) FindPath(startID, endID string, policy costfunction.Policy) routing.PathResult {
	s, sok := e.topology.IndexOf(startID)
	t, tok := e.topology.IndexOf(endID)
	if !sok || !tok {
		e.log.Debug("unknown intersection", zap.String("start", startID), zap.String("end", endID))
		return routing.Unreachable()
	}

	return e.FindPathWithLevels(s, t, policy, e.floodStore.Current())
}

// FindPathWithLevels. route between two intersection indices under the given flood levels.
func (e *Engine) FindPathWithLevels(s, t da.Index, policy costfunction.Policy,
	levels costfunction.SeverityLookup) routing.PathResult {
	graph := da.BuildAdjacencyGraph(e.topology, e.lengths)
	return routing.FindPath(graph, e.topology, s, t, levels, costfunction.NewCostFunction(policy))
}

func (e *Engine) GetTopology() *da.Topology {
	return e.topology
}

func (e *Engine) GetRoadLength(roadID string) float64 {
	return e.lengths.GetLength(roadID)
}

func (e *Engine) GetFloodStore() *flood.Store {
	return e.floodStore
}
