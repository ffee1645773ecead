package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/floodnav/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/floodnav/pkg/http/usecases"
	"go.uber.org/zap"
)

type routingAPI struct {
	responder
	routingService RoutingService
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		responder:      responder{log: log},
		routingService: routingService,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.POST("/computeRoutes/batch", api.batchShortestPath)
	group.GET("/intersections", api.intersections)
	group.GET("/intersections/nearest", api.nearestIntersection)
}

func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	query := r.URL.Query()
	request := shortestPathRequest{
		Start:  query.Get("start"),
		End:    query.Get("end"),
		Policy: query.Get("policy"),
	}
	request.normalize()

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, err := api.routingService.ShortestPath(request.Start, request.End, request.Policy)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) batchShortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request batchShortestPathRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	for i := range request.Queries {
		request.Queries[i].normalize()
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	queries := make([]usecases.RouteQuery, 0, len(request.Queries))
	for _, q := range request.Queries {
		queries = append(queries, q.toQuery())
	}

	routes, errs := api.routingService.BatchShortestPath(queries)

	items := make([]batchItemResponse, len(routes))
	for i := range routes {
		if errs[i] != nil {
			items[i].Error = errs[i].Error()
			continue
		}
		resp := NewShortestPathResponse(routes[i])
		items[i].Route = &resp
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": items}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) intersections(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := NewIntersectionsResponse(api.routingService.Intersections())
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *routingAPI) nearestIntersection(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestIntersectionRequest
		err     error
	)

	query := r.URL.Query()

	request.X, err = strconv.ParseFloat(query.Get("x"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("x is required and must be a valid float"))
		return
	}
	request.Y, err = strconv.ParseFloat(query.Get("y"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("y is required and must be a valid float"))
		return
	}
	if rad := query.Get("radius"); rad != "" {
		request.Radius, err = strconv.ParseFloat(rad, 64)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("radius must be a valid float"))
			return
		}
	}

	if err := validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	in, dist, err := api.routingService.NearestIntersection(request.X, request.Y)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := nearestIntersectionResponse{
		Intersection: NewIntersectionResponse(in),
		Distance:     dist,
	}
	if request.Radius > 0 {
		resp.Nearby = NewIntersectionsResponse(api.routingService.IntersectionsWithinRadius(request.X,
			request.Y, request.Radius))
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
