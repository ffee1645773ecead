package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/floodnav/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type floodAPI struct {
	responder
	floodService FloodService
}

func NewFloodAPI(floodService FloodService, log *zap.Logger) *floodAPI {
	return &floodAPI{
		responder:    responder{log: log},
		floodService: floodService,
	}
}

func (api *floodAPI) Routes(group *helper.RouteGroup) {
	group.GET("/floodLevels", api.floodLevels)
	group.GET("/floodLevels/:roadId", api.roadLevel)
	group.POST("/floodLevels/refresh", api.refresh)
}

func (api *floodAPI) floodLevels(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	resp := NewFloodLevelsResponse(api.floodService.FloodLevels())
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// roadLevel. a road without a reading is level 0.
func (api *floodAPI) roadLevel(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	reading := api.floodService.RoadLevel(p.ByName("roadId"))
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewFloodReadingResponse(reading)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *floodAPI) refresh(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	refreshed := api.floodService.Refresh(r.Context())
	status := http.StatusOK
	if !refreshed {
		status = http.StatusAccepted
	}

	resp := NewFloodLevelsResponse(api.floodService.FloodLevels())
	if err := api.writeJSON(w, status, envelope{"refreshed": refreshed, "data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
