package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	da "github.com/lintang-b-s/floodnav/pkg/datastructure"
	"github.com/lintang-b-s/floodnav/pkg/engine"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"github.com/lintang-b-s/floodnav/pkg/http/usecases"
	"github.com/lintang-b-s/floodnav/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (http.Handler, *flood.Store) {
	t.Helper()
	topo, err := da.NewTopology([]da.Intersection{
		da.NewIntersection("X", 0, 0, []string{"R1"}),
		da.NewIntersection("Y", 10, 0, []string{"R1", "R2"}),
		da.NewIntersection("Z", 15, 0, []string{"R2"}),
		da.NewIntersection("Q", 90, 90, nil),
	})
	require.NoError(t, err)

	store := flood.NewStore()
	e := engine.NewEngineFromData(topo, da.NewRoadLengths(map[string]float64{"R1": 10, "R2": 5}), store,
		zap.NewNop())
	rt := spatialindex.NewRtree()
	rt.Build(topo, zap.NewNop())

	api := NewAPI(zap.NewNop())
	h := api.Handler(false, usecases.NewRoutingService(zap.NewNop(), e, rt),
		usecases.NewFloodService(zap.NewNop(), store, nil))
	return h, store
}

type routeEnvelope struct {
	Data struct {
		Found         bool     `json:"found"`
		Policy        string   `json:"policy"`
		Roads         []string `json:"roads"`
		Intersections []string `json:"intersections"`
		Distance      float64  `json:"distance"`
		Cost          float64  `json:"cost"`
		Path          string   `json:"path"`
	} `json:"data"`
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestComputeRoutes(t *testing.T) {
	h, store := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/api/computeRoutes?start=X&end=Z&policy=SAFE", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp routeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Found)
	assert.Equal(t, "safe", resp.Data.Policy)
	assert.Equal(t, []string{"R1", "R2"}, resp.Data.Roads)
	assert.Equal(t, []string{"X", "Y", "Z"}, resp.Data.Intersections)
	assert.Equal(t, 15.0, resp.Data.Distance)
	assert.NotEmpty(t, resp.Data.Path)

	store.Replace(flood.NewSnapshot([]flood.Reading{
		{RoadID: "R2", Time: "10:00", Level: costfunction.SEVERITY_IMPASSABLE},
	}, time.Now()))

	rec = do(t, h, http.MethodGet, "/api/computeRoutes?start=X&end=Z", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = routeEnvelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Data.Found)
	assert.Empty(t, resp.Data.Roads)
}

func TestComputeRoutesErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"missing end", "/api/computeRoutes?start=X", http.StatusBadRequest},
		{"unknown policy", "/api/computeRoutes?start=X&end=Z&policy=fastest", http.StatusBadRequest},
		{"unknown intersection", "/api/computeRoutes?start=X&end=NOPE", http.StatusNotFound},
		{"nearest without coordinates", "/api/intersections/nearest?x=1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestComputeRoutesBatch(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"queries":[{"start":"X","end":"Z"},{"start":"X","end":"NOPE"},{"start":"X","end":"Q","policy":"safe"}]}`
	rec := do(t, h, http.MethodPost, "/api/computeRoutes/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data []struct {
			Route *struct {
				Found bool     `json:"found"`
				Roads []string `json:"roads"`
			} `json:"route"`
			Error string `json:"error"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	require.NotNil(t, resp.Data[0].Route)
	assert.Equal(t, []string{"R1", "R2"}, resp.Data[0].Route.Roads)
	assert.Nil(t, resp.Data[1].Route)
	assert.NotEmpty(t, resp.Data[1].Error)
	require.NotNil(t, resp.Data[2].Route)
	assert.False(t, resp.Data[2].Route.Found)

	rec = do(t, h, http.MethodPost, "/api/computeRoutes/batch", `{"queries":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/computeRoutes/batch", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestIntersectionsEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/api/intersections", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Data []struct {
			ID    string   `json:"id"`
			Roads []string `json:"roads"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Data, 4)
	assert.Equal(t, "X", list.Data[0].ID)
	assert.NotNil(t, list.Data[3].Roads)

	rec = do(t, h, http.MethodGet, "/api/intersections/nearest?x=14&y=1&radius=6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var nearest struct {
		Data struct {
			Intersection struct {
				ID string `json:"id"`
			} `json:"intersection"`
			Nearby []struct {
				ID string `json:"id"`
			} `json:"nearby"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nearest))
	assert.Equal(t, "Z", nearest.Data.Intersection.ID)
	require.Len(t, nearest.Data.Nearby, 2)
	assert.Equal(t, "Z", nearest.Data.Nearby[0].ID)
	assert.Equal(t, "Y", nearest.Data.Nearby[1].ID)
}

func TestFloodLevelsEndpoints(t *testing.T) {
	h, store := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/api/floodLevels", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"last_update_time":"---"`)

	store.Replace(flood.NewSnapshot([]flood.Reading{
		{RoadID: "R1", Time: "11:15", Level: costfunction.SEVERITY_LOW},
		{RoadID: "R2", Time: "11:16", Level: costfunction.SEVERITY_MEDIUM},
	}, time.Now()))

	rec = do(t, h, http.MethodGet, "/api/floodLevels", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var levels struct {
		Data struct {
			Readings []struct {
				ID    string `json:"id"`
				Level int    `json:"level"`
			} `json:"readings"`
			LastUpdateTime string `json:"last_update_time"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	assert.Equal(t, "11:15", levels.Data.LastUpdateTime)
	require.Len(t, levels.Data.Readings, 2)
	assert.Equal(t, 2, levels.Data.Readings[1].Level)

	rec = do(t, h, http.MethodGet, "/api/floodLevels/R9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":0`)

	rec = do(t, h, http.MethodPost, "/api/floodLevels/refresh", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestHeartbeat(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())
}

func TestLimitRejectsBurst(t *testing.T) {
	l := newIPRateLimiter(1, 2)
	h := limitWith(l, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/intersections", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	l.evict(time.Now().Add(time.Hour), time.Minute)
	assert.Empty(t, l.clients)
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"x-real-ip", map[string]string{"X-Real-IP": "1.2.3.4"}, "1.2.3.4"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "5.6.7.8, 9.9.9.9"}, "5.6.7.8"},
		{"garbage", map[string]string{"X-Real-IP": "not an ip"}, ""},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, realIP(req))
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
