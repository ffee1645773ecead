package preprocessor

import (
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type Preprocessor struct {
	topology *da.Topology
	log      *zap.Logger
}

func NewPreprocessor(topology *da.Topology, log *zap.Logger) *Preprocessor {
	return &Preprocessor{
		topology: topology,
		log:      log,
	}
}

// Report. summary of one preprocessing run.
type Report struct {
	NumRoads        int
	NumEstimated    int
	NumKept         int
	NumComponents   int
	Isolated        []string
	LargestCompSize int
}

/*
PreProcessing. write the road length table used by the engine.
lengths already present in existing (measured ones) win over the estimate, every other road gets the
largest straight line span between its intersections, which keeps the euclidean heuristic admissible.
*/
func (p *Preprocessor) PreProcessing(existing *da.RoadLengths, outPath string) (Report, error) {
	p.log.Info("Starting preprocessing of the road network...")

	lengths := da.EstimateRoadLengths(p.topology)
	report := Report{NumRoads: len(lengths)}

	for _, roadID := range p.topology.RoadIDs() {
		if existing != nil && existing.Has(roadID) {
			lengths[roadID] = existing.GetLength(roadID)
			report.NumKept++
		}
	}
	report.NumEstimated = report.NumRoads - report.NumKept

	graph := da.BuildAdjacencyGraph(p.topology, da.NewRoadLengths(lengths))
	p.connectivity(graph, &report)

	p.log.Info("Road network connectivity", zap.Int("components", report.NumComponents),
		zap.Int("largest_component", report.LargestCompSize), zap.Strings("isolated", report.Isolated))

	p.log.Info("Writing road lengths", zap.String("path", outPath), zap.Int("estimated", report.NumEstimated),
		zap.Int("kept", report.NumKept))
	if err := da.WriteRoadLengths(outPath, lengths); err != nil {
		return report, err
	}
	return report, nil
}

// connectivity. connected components of the undirected intersection graph.
func (p *Preprocessor) connectivity(graph *da.AdjacencyGraph, report *Report) {
	n := graph.NumberOfVertices()
	visited := make([]bool, n)
	queue := make([]da.Index, 0, n)

	for s := 0; s < n; s++ {
		if visited[s] {
			continue
		}
		report.NumComponents++

		size := 0
		queue = append(queue[:0], da.Index(s))
		visited[s] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			size++
			graph.ForOutEdgesOf(u, func(e da.AdjacencyEdge) {
				if !visited[e.GetTo()] {
					visited[e.GetTo()] = true
					queue = append(queue, e.GetTo())
				}
			})
		}

		if size == 1 {
			report.Isolated = append(report.Isolated, p.topology.GetIntersectionID(da.Index(s)))
		}
		if size > report.LargestCompSize {
			report.LargestCompSize = size
		}
	}
	slices.Sort(report.Isolated)
}
