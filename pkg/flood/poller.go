package flood

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Poller. refreshes the store from the source on a fixed interval.
type Poller struct {
	source   Source
	store    *Store
	interval time.Duration
	limiter  *rate.Limiter
	log      *zap.Logger

	inFlight atomic.Bool
}

const DEFAULT_POLL_INTERVAL = 5 * time.Second

func NewPoller(source Source, store *Store, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DEFAULT_POLL_INTERVAL
	}
	return &Poller{
		source:   source,
		store:    store,
		interval: interval,
		// at most one outbound request per interval, with a burst for the manual refreshes
		limiter: rate.NewLimiter(rate.Every(interval), 2),
		log:     log,
	}
}

// Run. load immediately, then every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("starting flood level poller", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	go p.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("flood level poller stopped")
			return nil
		case <-ticker.C:
			go p.Refresh(ctx)
		}
	}
}

// Refresh. fetch once and replace the snapshot. returns false when another refresh is still running.
func (p *Poller) Refresh(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.log.Debug("previous flood refresh still running, skipping")
		return false
	}
	defer p.inFlight.Store(false)

	if err := p.limiter.Wait(ctx); err != nil {
		return false
	}

	readings, err := p.source.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.log.Error("failed to refresh flood levels", zap.Error(err))
		p.store.Clear(err)
		return true
	}

	snapshot := NewSnapshot(readings, time.Now())
	p.store.Replace(snapshot)
	p.log.Debug("flood levels refreshed", zap.Int("roads", snapshot.Len()),
		zap.String("last_update", snapshot.LastUpdateTime()))
	return true
}
