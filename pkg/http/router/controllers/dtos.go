package controllers

import (
	"strings"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/flood"
	"github.com/lintang-b-s/floodnav/pkg/http/usecases"
	"github.com/lintang-b-s/floodnav/pkg/util"
)

type shortestPathRequest struct {
	Start  string `json:"start" validate:"required,max=64"`
	End    string `json:"end" validate:"required,max=64"`
	Policy string `json:"policy" validate:"omitempty,oneof=optimal safe"`
}

func (r *shortestPathRequest) normalize() {
	r.Start = strings.TrimSpace(r.Start)
	r.End = strings.TrimSpace(r.End)
	r.Policy = strings.ToLower(strings.TrimSpace(r.Policy))
}

func (r shortestPathRequest) toQuery() usecases.RouteQuery {
	return usecases.RouteQuery{Start: r.Start, End: r.End, Policy: r.Policy}
}

type batchShortestPathRequest struct {
	Queries []shortestPathRequest `json:"queries" validate:"required,min=1,max=256,dive"`
}

type nearestIntersectionRequest struct {
	X      float64 `validate:"min=-1000000,max=1000000"`
	Y      float64 `validate:"min=-1000000,max=1000000"`
	Radius float64 `validate:"min=0,max=100000"`
}

type legResponse struct {
	RoadID  string  `json:"road_id"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Level   uint8   `json:"level"`
	Length  float64 `json:"length"`
	Bearing float64 `json:"bearing"`
}

type drivingDirectionResponse struct {
	Instruction string  `json:"instruction"`
	Turn        string  `json:"turn"`
	RoadID      string  `json:"road_id,omitempty"`
	From        string  `json:"from"`
	Distance    float64 `json:"distance"`
}

type shortestPathResponse struct {
	Start         string                     `json:"start"`
	End           string                     `json:"end"`
	Policy        string                     `json:"policy"`
	Found         bool                       `json:"found"`
	Roads         []string                   `json:"roads"`
	Intersections []string                   `json:"intersections"`
	Legs          []legResponse              `json:"legs"`
	Directions    []drivingDirectionResponse `json:"directions"`
	Distance      float64                    `json:"distance"`
	Cost          float64                    `json:"cost"`
	Path          string                     `json:"path"`
}

func NewShortestPathResponse(route usecases.Route) shortestPathResponse {
	legs := make([]legResponse, 0, len(route.Legs))
	for _, l := range route.Legs {
		legs = append(legs, legResponse{
			RoadID:  l.RoadID,
			From:    l.From,
			To:      l.To,
			Level:   uint8(l.Severity),
			Length:  l.Length,
			Bearing: util.RoundFloat(l.Bearing, 2),
		})
	}
	directions := make([]drivingDirectionResponse, 0, len(route.Directions))
	for _, d := range route.Directions {
		directions = append(directions, drivingDirectionResponse{
			Instruction: d.Instruction,
			Turn:        d.Turn,
			RoadID:      d.RoadID,
			From:        d.From,
			Distance:    d.Distance,
		})
	}
	roads := route.Roads
	if roads == nil {
		roads = []string{}
	}
	intersections := route.Intersections
	if intersections == nil {
		intersections = []string{}
	}
	return shortestPathResponse{
		Start:         route.Start,
		End:           route.End,
		Policy:        route.Policy.String(),
		Found:         route.Found,
		Roads:         roads,
		Intersections: intersections,
		Legs:          legs,
		Directions:    directions,
		Distance:      route.Distance,
		Cost:          route.Cost,
		Path:          route.Polyline,
	}
}

type batchItemResponse struct {
	Route *shortestPathResponse `json:"route,omitempty"`
	Error string                `json:"error,omitempty"`
}

type intersectionResponse struct {
	ID    string   `json:"id"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Roads []string `json:"roads"`
}

func NewIntersectionResponse(in usecases.Intersection) intersectionResponse {
	roads := in.Roads
	if roads == nil {
		roads = []string{}
	}
	return intersectionResponse{ID: in.ID, X: in.X, Y: in.Y, Roads: roads}
}

func NewIntersectionsResponse(ins []usecases.Intersection) []intersectionResponse {
	out := make([]intersectionResponse, 0, len(ins))
	for _, in := range ins {
		out = append(out, NewIntersectionResponse(in))
	}
	return out
}

type nearestIntersectionResponse struct {
	Intersection intersectionResponse   `json:"intersection"`
	Distance     float64                `json:"distance"`
	Nearby       []intersectionResponse `json:"nearby,omitempty"`
}

type floodReadingResponse struct {
	RoadID string `json:"id"`
	Time   string `json:"time"`
	Level  uint8  `json:"level"`
}

func NewFloodReadingResponse(r flood.Reading) floodReadingResponse {
	return floodReadingResponse{RoadID: r.RoadID, Time: r.Time, Level: uint8(r.Level)}
}

type floodLevelsResponse struct {
	Readings       []floodReadingResponse `json:"readings"`
	LastUpdateTime string                 `json:"last_update_time"`
	FetchedAt      *time.Time             `json:"fetched_at,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

func NewFloodLevelsResponse(levels usecases.FloodLevels) floodLevelsResponse {
	readings := make([]floodReadingResponse, 0, len(levels.Readings))
	for _, r := range levels.Readings {
		readings = append(readings, NewFloodReadingResponse(r))
	}
	resp := floodLevelsResponse{
		Readings:       readings,
		LastUpdateTime: levels.LastUpdateTime,
		Error:          levels.Error,
	}
	if !levels.FetchedAt.IsZero() {
		fetchedAt := levels.FetchedAt
		resp.FetchedAt = &fetchedAt
	}
	return resp
}
