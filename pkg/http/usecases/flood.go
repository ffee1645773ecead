package usecases

import (
	"context"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	"github.com/lintang-b-s/floodnav/pkg/flood"
	"go.uber.org/zap"
)

type FloodLevels struct {
	Readings       []flood.Reading
	LastUpdateTime string
	FetchedAt      time.Time
	Error          string
}

type Refresher interface {
	Refresh(ctx context.Context) bool
}

type FloodService struct {
	log       *zap.Logger
	store     *flood.Store
	refresher Refresher
}

// NewFloodService. refresher may be nil when no sheet is configured.
func NewFloodService(log *zap.Logger, store *flood.Store, refresher Refresher) *FloodService {
	return &FloodService{
		log:       log,
		store:     store,
		refresher: refresher,
	}
}

func (fs *FloodService) FloodLevels() FloodLevels {
	snapshot := fs.store.Current()
	return FloodLevels{
		Readings:       snapshot.Readings(),
		LastUpdateTime: snapshot.LastUpdateTime(),
		FetchedAt:      snapshot.FetchedAt(),
		Error:          snapshot.Err(),
	}
}

// RoadLevel. reading of one road, a road without a reading is reported as normal.
func (fs *FloodService) RoadLevel(roadID string) flood.Reading {
	snapshot := fs.store.Current()
	if r, ok := snapshot.GetReading(roadID); ok {
		return r
	}
	return flood.Reading{RoadID: roadID, Level: costfunction.SEVERITY_NORMAL}
}

// Refresh. manual refresh, false when one is already running or no source is configured.
func (fs *FloodService) Refresh(ctx context.Context) bool {
	if fs.refresher == nil {
		fs.log.Debug("flood refresh requested but no source is configured")
		return false
	}
	return fs.refresher.Refresh(ctx)
}

func (fs *FloodService) Subscribe() (<-chan *flood.Snapshot, func()) {
	return fs.store.Subscribe()
}
