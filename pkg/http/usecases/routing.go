package usecases

import (
	"errors"
	"runtime"

	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/floodnav/pkg/concurrent"
	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/geo"
	"github.com/lintang-b-s/floodnav/pkg/guidance"
	"github.com/lintang-b-s/floodnav/pkg/util"
	"go.uber.org/zap"
)

var (
	ERRINTERSECTIONNOTFOUND = errors.New("intersection not found")
	ERRNOINTERSECTIONNEARBY = errors.New("no intersection near the given point")
)

// Route. a computed route in the shape the api hands out.
type Route struct {
	Start         string
	End           string
	Policy        costfunction.Policy
	Found         bool
	Roads         []string
	Intersections []string
	Legs          []Leg
	Directions    []guidance.DrivingDirection
	Distance      float64
	Cost          float64
	Polyline      string
}

// Leg. one hop of the route between two consecutive intersections.
type Leg struct {
	RoadID   string
	From, To string
	Severity costfunction.Severity
	Length   float64
	Bearing  float64
}

type RouteQuery struct {
	Start  string
	End    string
	Policy string
}

type Intersection struct {
	ID    string
	X, Y  float64
	Roads []string
}

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	numWorkers   int
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		numWorkers:   runtime.NumCPU(),
	}
}

// ShortestPath. route between two intersection ids under the current flood levels.
// unknown ids are ErrNotFound, an unknown policy is ErrBadParamInput, a missing route is not an error.
func (rs *RoutingService) ShortestPath(startID, endID, policyName string) (Route, error) {
	policy, err := costfunction.ParsePolicy(policyName)
	if err != nil {
		return Route{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid policy %q", policyName)
	}

	topology := rs.engine.GetTopology()
	for _, id := range []string{startID, endID} {
		if _, ok := topology.IndexOf(id); !ok {
			return Route{}, util.WrapErrorf(ERRINTERSECTIONNOTFOUND, util.ErrNotFound, "intersection %s not found", id)
		}
	}

	res := rs.engine.FindPath(startID, endID, policy)
	route := Route{
		Start:      startID,
		End:        endID,
		Policy:     policy,
		Found:      res.Found,
		Roads:      []string{},
		Legs:       []Leg{},
		Directions: []guidance.DrivingDirection{},
	}
	if !res.Found {
		rs.log.Debug("no route", zap.String("start", startID), zap.String("end", endID),
			zap.String("policy", policy.String()), zap.Int("settled", res.NumSettledNodes))
		route.Intersections = []string{}
		return route, nil
	}

	snapshot := rs.engine.GetFloodStore().Current()
	points := make([]r2.Point, 0, len(res.Intersections))
	route.Intersections = make([]string, 0, len(res.Intersections))
	for _, idx := range res.Intersections {
		route.Intersections = append(route.Intersections, topology.GetIntersectionID(idx))
		points = append(points, topology.GetPosition(idx))
	}
	for i, roadID := range res.Roads {
		route.Legs = append(route.Legs, Leg{
			RoadID:   roadID,
			From:     route.Intersections[i],
			To:       route.Intersections[i+1],
			Severity: snapshot.GetSeverity(roadID),
			Length:   rs.engine.GetRoadLength(roadID),
			Bearing:  geo.BearingTo(points[i], points[i+1]),
		})
	}
	guidanceLegs := make([]guidance.Leg, 0, len(route.Legs))
	for _, l := range route.Legs {
		guidanceLegs = append(guidanceLegs, guidance.Leg{RoadID: l.RoadID, From: l.From, To: l.To,
			Length: l.Length, Bearing: l.Bearing})
	}
	route.Directions = guidance.NewDirectionBuilder().GetDrivingDirections(guidanceLegs, endID)
	route.Roads = res.Roads
	route.Distance = res.Distance
	route.Cost = res.Cost
	route.Polyline = geo.PolylineFromPoints(points)

	return route, nil
}

// BatchShortestPath. solve every query on the worker pool. results keep the query order,
// a failed query carries its error instead of a route.
func (rs *RoutingService) BatchShortestPath(queries []RouteQuery) ([]Route, []error) {
	type result struct {
		route Route
		err   error
	}

	results := concurrent.RunAll(rs.numWorkers, queries, func(q RouteQuery) result {
		route, err := rs.ShortestPath(q.Start, q.End, q.Policy)
		return result{route: route, err: err}
	})

	routes := make([]Route, len(results))
	errs := make([]error, len(results))
	for i, r := range results {
		routes[i] = r.route
		errs[i] = r.err
	}
	return routes, errs
}

func (rs *RoutingService) Intersections() []Intersection {
	topology := rs.engine.GetTopology()
	out := make([]Intersection, 0, topology.NumberOfIntersections())
	for i := 0; i < topology.NumberOfIntersections(); i++ {
		out = append(out, rs.intersection(da.Index(i)))
	}
	return out
}

// NearestIntersection. snap a map point to the closest intersection.
func (rs *RoutingService) NearestIntersection(x, y float64) (Intersection, float64, error) {
	idx, dist, ok := rs.spatialIndex.NearestIntersection(x, y)
	if !ok {
		return Intersection{}, 0, util.WrapErrorf(ERRNOINTERSECTIONNEARBY, util.ErrNotFound,
			"no intersection near %f,%f", x, y)
	}
	return rs.intersection(idx), dist, nil
}

// IntersectionsWithinRadius. intersections around a map point, nearest first.
func (rs *RoutingService) IntersectionsWithinRadius(x, y, radius float64) []Intersection {
	idxs := rs.spatialIndex.SearchWithinRadius(x, y, radius)
	out := make([]Intersection, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, rs.intersection(idx))
	}
	return out
}

func (rs *RoutingService) intersection(idx da.Index) Intersection {
	in := rs.engine.GetTopology().GetIntersection(idx)
	p := in.GetPosition()
	return Intersection{ID: in.GetID(), X: p.X, Y: p.Y, Roads: in.GetRoads()}
}
