package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/floodnav/pkg/concurrent"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"go.uber.org/zap"
)

// User. one websocket client following a route. the route is pushed again after every flood refresh.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub

	mu    sync.Mutex
	query *shortestPathRequest
}

func (u *User) readRequest() (*shortestPathRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &shortestPathRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// HandleRequest. read the next route request, remember it and answer with the current route.
func (u *User) HandleRequest() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	req.normalize()
	if err := validateRequest(req); err != nil {
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": err.Error(),
		}}
		return u.write(errResp)
	}

	u.mu.Lock()
	u.query = req
	u.mu.Unlock()

	return u.pushRoute()
}

// pushRoute. recompute the followed route, no-op until the user asked for one.
func (u *User) pushRoute() error {
	u.mu.Lock()
	query := u.query
	u.mu.Unlock()
	if query == nil {
		return nil
	}

	route, err := u.hub.routingService.ShortestPath(query.Start, query.End, query.Policy)
	if err != nil {
		return u.write(envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": err.Error(),
		}})
	}

	levels := u.hub.floodService.FloodLevels()
	return u.write(envelope{
		"data":             NewShortestPathResponse(route),
		"last_update_time": levels.LastUpdateTime,
	})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*User
	ns  map[uint]*User

	routingService RoutingService
	floodService   FloodService
	log            *zap.Logger

	pool *concurrent.Pool

	snapshots   <-chan *flood.Snapshot
	unsubscribe func()
}

func NewHub(pool *concurrent.Pool, routingService RoutingService, floodService FloodService,
	log *zap.Logger) *Hub {
	hub := &Hub{
		pool:           pool,
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
		floodService:   floodService,
		log:            log,
	}
	hub.snapshots, hub.unsubscribe = floodService.Subscribe()

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	// users are appended in id order
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
		user.conn.Close()
	}
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

// Run. push fresh routes to every following user whenever the flood levels change.
func (h *Hub) Run(ctx context.Context) {
	defer h.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-h.snapshots:
			if !ok {
				return
			}
			h.broadcast(snapshot)
		}
	}
}

func (h *Hub) broadcast(snapshot *flood.Snapshot) {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	h.log.Debug("pushing routes after flood refresh", zap.Int("users", len(users)),
		zap.String("last_update", snapshot.LastUpdateTime()))

	for _, user := range users {
		user := user
		h.pool.Schedule(func() {
			if err := user.pushRoute(); err != nil {
				h.log.Info("failed to push route, dropping user", zap.Error(err))
				h.Remove(user)
				user.conn.Close()
			}
		})
	}
}
