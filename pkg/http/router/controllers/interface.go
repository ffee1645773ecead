package controllers

import (
	"context"

	"github.com/lintang-b-s/floodnav/pkg/flood"
	"github.com/lintang-b-s/floodnav/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(startID, endID, policy string) (usecases.Route, error)
	BatchShortestPath(queries []usecases.RouteQuery) ([]usecases.Route, []error)
	Intersections() []usecases.Intersection
	NearestIntersection(x, y float64) (usecases.Intersection, float64, error)
	IntersectionsWithinRadius(x, y, radius float64) []usecases.Intersection
}

type FloodService interface {
	FloodLevels() usecases.FloodLevels
	RoadLevel(roadID string) flood.Reading
	Refresh(ctx context.Context) bool
	Subscribe() (<-chan *flood.Snapshot, func())
}
