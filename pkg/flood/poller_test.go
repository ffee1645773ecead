package flood

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSource struct {
	calls    atomic.Int32
	readings []Reading
	err      error
	block    chan struct{}
}

func (f *fakeSource) Fetch(ctx context.Context) ([]Reading, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.readings, f.err
}

func TestPollerRefresh(t *testing.T) {
	store := NewStore()
	src := &fakeSource{readings: []Reading{{RoadID: "T1", Time: "08:00", Level: costfunction.SEVERITY_IMPASSABLE}}}
	p := NewPoller(src, store, time.Millisecond, zap.NewNop())

	assert.True(t, p.Refresh(context.Background()))
	assert.Equal(t, costfunction.SEVERITY_IMPASSABLE, store.Current().GetSeverity("T1"))

	// a failed refresh wipes the previous readings
	src.err = errors.New("timeout")
	src.readings = nil
	assert.True(t, p.Refresh(context.Background()))
	assert.Equal(t, costfunction.SEVERITY_NORMAL, store.Current().GetSeverity("T1"))
	assert.Equal(t, "timeout", store.Current().Err())
}

func TestPollerSkipsOverlappingRefresh(t *testing.T) {
	store := NewStore()
	src := &fakeSource{block: make(chan struct{})}
	p := NewPoller(src, store, time.Millisecond, zap.NewNop())

	done := make(chan bool)
	go func() { done <- p.Refresh(context.Background()) }()

	assert.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.False(t, p.Refresh(context.Background()))

	close(src.block)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	store := NewStore()
	src := &fakeSource{readings: []Reading{{RoadID: "T1", Time: "08:00", Level: costfunction.SEVERITY_LOW}}}
	p := NewPoller(src, store, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() { errCh <- p.Run(ctx) }()

	assert.Eventually(t, func() bool { return store.Current().GetSeverity("T1") == costfunction.SEVERITY_LOW },
		time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
